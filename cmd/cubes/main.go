// cubes - software-rasterized spinning cubes
//
// Draws a field of cubes with a CPU pipeline (transform, back-face cull,
// scan-line fill, depth test) into a terminal, a desktop window, PNG
// frames, or exports the scene as binary glTF.
//
// Controls (view and window):
//
//	W/S         - Move forward/back
//	A/D         - Strafe left/right
//	Space/K     - Move up/down
//	Arrows      - Pitch and yaw
//	P           - Toggle spin
//	M           - Toggle wireframe
//	V           - Toggle depth buffer / painter's ordering
//	Q, Esc      - Quit
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(Version)); err != nil {
		stop()
		os.Exit(1)
	}
}

// flags shared by every subcommand.
type rootFlags struct {
	config string
	layout string
	level  string
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	root := &cobra.Command{
		Use:   "cubes",
		Short: "Software-rasterized spinning cubes",
		Long: "cubes renders a scene of cubes entirely on the CPU: model, view and\n" +
			"perspective transforms, back-face culling, scan-line fill and a\n" +
			"depth buffer, shown in the terminal, in a window or as PNG frames.",
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.config, "config", "c", "", "TOML config file")
	pf.StringVar(&f.layout, "layout", "", "scene layout: single or grid")
	pf.StringVar(&f.level, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newViewCmd(f),
		newWindowCmd(f),
		newRenderCmd(f),
		newExportCmd(f),
	)
	return root
}
