package shell

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// RenderFrames draws n consecutive frames and writes each one to dir as
// frame-0000.png, frame-0001.png and so on. It returns the written paths.
func RenderFrames(ctx context.Context, s *Session, n int, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	paths := make([]string, 0, n)
	for i := range n {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		stats := s.Frame()

		path := filepath.Join(dir, fmt.Sprintf("frame-%04d.png", i))
		if err := s.Framebuffer().SavePNG(path); err != nil {
			return paths, fmt.Errorf("write frame %d: %w", i, err)
		}
		s.log.Debug("wrote frame", "path", path, "drawn", stats.Drawn, "pixels", stats.Pixels)
		paths = append(paths, path)
	}
	return paths, nil
}
