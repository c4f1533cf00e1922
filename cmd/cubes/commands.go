package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/taigrr/cubes/internal/config"
	"github.com/taigrr/cubes/internal/logging"
	"github.com/taigrr/cubes/internal/scene"
	"github.com/taigrr/cubes/internal/shell"
	"github.com/taigrr/cubes/internal/window"
	"github.com/taigrr/cubes/pkg/models"
)

var errWatchNeedsConfig = errors.New("--watch needs --config")

// override applies the command-line flags on top of the file and
// environment.
func (f *rootFlags) override(cfg *config.Config) {
	if f.layout != "" {
		cfg.Scene.Layout = f.layout
	}
	if f.level != "" {
		cfg.Log.Level = f.level
	}
}

func (f *rootFlags) load() (config.Config, error) {
	return config.Load(f.config, f.override)
}

// setup loads the config and opens the logger; fallback receives log
// output when no log file is configured.
func (f *rootFlags) setup(fallback io.Writer) (config.Config, *log.Logger, io.Closer, error) {
	cfg, err := f.load()
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	logger, closer, err := logging.Open(cfg.Log, fallback)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	return cfg, logger, closer, nil
}

// watch starts hot reload when requested, keeping the flag overrides on
// every reload. The returned channel is nil otherwise.
func (f *rootFlags) watch(ctx context.Context, enabled bool, logger *log.Logger) (<-chan config.Config, error) {
	if !enabled {
		return nil, nil
	}
	if f.config == "" {
		return nil, errWatchNeedsConfig
	}
	return config.Watch(ctx, f.config, logger, f.override)
}

func newViewCmd(f *rootFlags) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Render in the terminal with half-block pixels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The terminal is the screen; logs go to the configured file only.
			cfg, logger, closer, err := f.setup(io.Discard)
			if err != nil {
				return err
			}
			defer closer.Close()

			reloads, err := f.watch(cmd.Context(), watch, logger)
			if err != nil {
				return err
			}
			return shell.RunTerminal(cmd.Context(), cfg, reloads, logger)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the config file on change")
	return cmd
}

func newWindowCmd(f *rootFlags) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "window",
		Short: "Render in a desktop window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, closer, err := f.setup(os.Stderr)
			if err != nil {
				return err
			}
			defer closer.Close()

			reloads, err := f.watch(cmd.Context(), watch, logger)
			if err != nil {
				return err
			}
			logger.Info("opening window", "width", cfg.Surface.Width, "height", cfg.Surface.Height)
			return window.Run(cmd.Context(), cfg, reloads, logger)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the config file on change")
	return cmd
}

func newRenderCmd(f *rootFlags) *cobra.Command {
	var (
		frames int
		out    string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render frames to PNG files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if frames <= 0 {
				return fmt.Errorf("--frames must be positive, got %d", frames)
			}
			cfg, logger, closer, err := f.setup(os.Stderr)
			if err != nil {
				return err
			}
			defer closer.Close()

			s, err := shell.NewSession(cfg, cfg.Surface.Width, cfg.Surface.Height, logger)
			if err != nil {
				return err
			}
			paths, err := shell.RenderFrames(cmd.Context(), s, frames, out)
			if err != nil {
				return err
			}
			logger.Info("rendered", "frames", len(paths), "dir", out)
			return nil
		},
	}
	cmd.Flags().IntVarP(&frames, "frames", "n", 1, "number of frames")
	cmd.Flags().StringVarP(&out, "out", "o", "frames", "output directory")
	return cmd
}

func newExportCmd(f *rootFlags) *cobra.Command {
	var (
		out   string
		angle float64
		local bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the scene as binary glTF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, closer, err := f.setup(os.Stderr)
			if err != nil {
				return err
			}
			defer closer.Close()

			sc, err := scene.New(cfg.Scene.Layout)
			if err != nil {
				return err
			}
			sc.SetAngle(angle)

			exp := models.NewGLTFExporter()
			exp.BakeTransforms = !local
			if err := exp.Save(out, sc.Cubes()...); err != nil {
				return err
			}
			logger.Info("exported", "path", out, "cubes", len(sc.Cubes()), "triangles", sc.TriangleCount())
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "cubes.glb", "output file")
	cmd.Flags().Float64Var(&angle, "angle", 0, "spin angle in degrees")
	cmd.Flags().BoolVar(&local, "local", false, "keep model-space vertices and write transforms on the nodes")
	return cmd
}
