package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watch reloads path whenever it is written or replaced and delivers each
// valid result on the returned channel. Invalid edits are logged and
// skipped so the previous config stays in effect. The channel closes when
// ctx is done. Each reload applies overrides the same way Load does.
//
// The parent directory is watched rather than the file so editors that
// save by rename keep triggering reloads.
func Watch(ctx context.Context, path string, logger *log.Logger, overrides ...Override) (<-chan Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	out := make(chan Config, 1)
	go func() {
		defer close(out)
		defer w.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				cfg, err := Load(abs, overrides...)
				if err != nil {
					logger.Warn("config reload rejected", "path", abs, "err", err)
					continue
				}
				logger.Info("config reloaded", "path", abs)
				select {
				case out <- cfg:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Error("config watcher", "err", err)
			}
		}
	}()
	return out, nil
}
