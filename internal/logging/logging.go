// Package logging builds the structured logger shared by the shells.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/taigrr/cubes/internal/config"
)

// Prefix tags every line written by the cubes shells.
const Prefix = "cubes"

// New returns a logger writing to w at the given level.
func New(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          Prefix,
	})
	l.SetLevel(level)
	return l
}

// Open builds the logger described by cfg. With a log file configured,
// output is appended there and the returned closer closes it. Otherwise
// fallback receives the output (the terminal shell passes io.Discard since
// it owns the screen).
func Open(cfg config.Log, fallback io.Writer) (*log.Logger, io.Closer, error) {
	lvl, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}

	if cfg.File == "" {
		return New(fallback, lvl), nopCloser{}, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	l := New(f, lvl)
	l.SetFormatter(log.LogfmtFormatter)
	return l, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
