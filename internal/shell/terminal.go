package shell

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/cubes/internal/config"
	"github.com/taigrr/cubes/internal/input"
	"github.com/taigrr/cubes/pkg/render"
)

// keyAction maps a terminal key press to its bound action.
func keyAction(ev uv.KeyPressEvent) input.Action {
	for key, a := range input.Bindings {
		if ev.MatchString(key) {
			return a
		}
	}
	return input.None
}

// frameInterval is the ticker period for fps frames per second.
func frameInterval(fps int) time.Duration {
	return time.Second / time.Duration(fps)
}

// RunTerminal runs the interactive half-block view until the user quits or
// ctx is done. Input and config reloads are applied between frames. A nil
// reloads channel disables hot reload.
func RunTerminal(ctx context.Context, cfg config.Config, reloads <-chan config.Config, logger *log.Logger) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		if err := term.Shutdown(context.Background()); err != nil {
			logger.Warn("terminal shutdown", "err", err)
		}
	}()

	blit := render.NewTerminalRenderer(term, width, height)
	s, err := NewSession(cfg, width, height*2, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	actions := make(chan input.Action, 16)
	sizes := make(chan [2]int, 1)
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				select {
				case sizes <- [2]int{ev.Width, ev.Height}:
				case <-ctx.Done():
					return
				}
			case uv.KeyPressEvent:
				a := keyAction(ev)
				if a == input.None {
					continue
				}
				select {
				case actions <- a:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	fps := s.FPS()
	ticker := time.NewTicker(frameInterval(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case a := <-actions:
			if s.Handle(a) {
				logger.Info("quit")
				return nil
			}

		case size := <-sizes:
			width, height = size[0], size[1]
			term.Erase()
			term.Resize(width, height)
			blit = render.NewTerminalRenderer(term, width, height)
			s.Resize(blit.FramebufferSize())
			logger.Debug("resized", "cols", width, "rows", height)

		case next, ok := <-reloads:
			if !ok {
				reloads = nil
				continue
			}
			if err := s.Reload(next); err != nil {
				logger.Warn("config reload ignored", "err", err)
				continue
			}
			if s.FPS() != fps {
				fps = s.FPS()
				ticker.Reset(frameInterval(fps))
				logger.Debug("frame rate", "fps", fps)
			}

		case <-ticker.C:
			s.Frame()
			blit.Render(s.Framebuffer())
			if err := blit.Flush(); err != nil {
				return fmt.Errorf("flush: %w", err)
			}
		}
	}
}
