// Package shell drives the renderer from the outside: it owns the pixel
// surface, depth buffer, camera and scene, and turns input and config
// reloads into state changes between frames.
package shell

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/taigrr/cubes/internal/config"
	"github.com/taigrr/cubes/internal/input"
	"github.com/taigrr/cubes/internal/scene"
	"github.com/taigrr/cubes/pkg/render"
)

// axisLength is the world length of each axis drawn when axes are on.
const axisLength = 2.0

// Session is one running view of a scene. It is not safe for concurrent
// use; shells feed it from their frame loop.
type Session struct {
	Scene   *scene.Scene
	Camera  *render.Camera
	Spinner *scene.Spinner

	cfg   config.Config
	bg    render.Color
	log   *log.Logger
	fb    *render.Framebuffer
	depth *render.DepthBuffer
	rast  *render.Rasterizer
	rate  frameRate
}

// NewSession builds a session drawing into a width x height framebuffer.
func NewSession(cfg config.Config, width, height int, logger *log.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sc, err := scene.New(cfg.Scene.Layout)
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}

	s := &Session{
		Scene:   sc,
		Camera:  cfg.NewCamera(),
		Spinner: scene.NewSpinner(cfg.Scene.FPS, cfg.Scene.Step, cfg.Scene.Spin),
		cfg:     cfg,
		log:     logger,
		rate:    frameRate{since: time.Now()},
	}
	s.bg, _ = cfg.BackgroundColor()
	s.Resize(width, height)

	logger.Debug("session ready",
		"layout", cfg.Scene.Layout,
		"cubes", len(sc.Cubes()),
		"width", width,
		"height", height)
	return s, nil
}

// Resize replaces the surface and depth buffer. Options set through
// Handle survive.
func (s *Session) Resize(width, height int) {
	opts := s.cfg.RenderOptions()
	if s.rast != nil {
		opts = s.rast.Options
	}
	s.fb = render.NewFramebuffer(width, height)
	s.depth = s.cfg.NewDepthBuffer(width, height)
	s.rast = render.NewRasterizer(s.fb, s.depth, opts)
}

// Framebuffer returns the surface the last frame was drawn into.
func (s *Session) Framebuffer() *render.Framebuffer { return s.fb }

// Options returns the current rasterizer options.
func (s *Session) Options() render.Options { return s.rast.Options }

// Handle applies one input action and reports whether the shell should
// quit.
func (s *Session) Handle(a input.Action) bool {
	if a.Camera() {
		input.Apply(s.Camera, a, s.cfg.Camera.MoveStep, s.cfg.Camera.TurnStep)
		return false
	}
	switch a {
	case input.None:
	case input.Quit:
		return true
	case input.ToggleSpin:
		s.Spinner.Toggle()
		s.log.Debug("spin", "on", s.Spinner.Spinning())
	case input.ToggleMode:
		s.rast.Mode = input.NextMode(s.rast.Mode)
		s.log.Debug("render mode", "mode", s.rast.Mode)
	case input.ToggleVisibility:
		s.rast.Visibility = input.NextVisibility(s.rast.Visibility)
		s.log.Debug("visibility", "mode", s.rast.Visibility)
	}
	return false
}

// Reload applies a new config without disturbing the camera pose or the
// spin angle. A layout change rebuilds the scene; surface size changes
// wait for the next resize. Mode and visibility toggled through Handle
// are kept unless the new config changes them.
func (s *Session) Reload(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Scene.Layout != s.cfg.Scene.Layout {
		sc, err := scene.New(cfg.Scene.Layout)
		if err != nil {
			return err
		}
		sc.SetAngle(s.Scene.Angle())
		s.Scene = sc
	}
	if cfg.Scene.Step != s.cfg.Scene.Step || cfg.Scene.FPS != s.cfg.Scene.FPS {
		s.Spinner = scene.NewSpinner(cfg.Scene.FPS, cfg.Scene.Step, s.Spinner.Spinning())
	}

	opts := cfg.RenderOptions()
	if cfg.Render.Mode == s.cfg.Render.Mode {
		opts.Mode = s.rast.Mode
	}
	if cfg.Render.Visibility == s.cfg.Render.Visibility {
		opts.Visibility = s.rast.Visibility
	}

	s.cfg = cfg
	s.bg, _ = cfg.BackgroundColor()
	s.depth.Epsilon = cfg.Render.DepthEpsilon
	s.rast.Options = opts
	return nil
}

// FPS returns the configured frame rate.
func (s *Session) FPS() int { return s.cfg.Scene.FPS }

// Frame advances the spin, redraws the scene and returns its statistics.
func (s *Session) Frame() render.FrameStats {
	s.Scene.Tick(s.Spinner.Next())

	s.fb.Clear(s.bg)
	s.depth.Clear()
	stats := s.rast.RenderFrame(s.Camera, s.Scene.Meshes()...)
	if s.cfg.Render.Axes {
		s.rast.DrawAxes(s.Camera, axisLength)
	}

	if fps, ok := s.rate.tick(time.Now()); ok {
		s.log.Debug("frame",
			"fps", fmt.Sprintf("%.1f", fps),
			"triangles", stats.Triangles,
			"culled", stats.Culled,
			"clipped", stats.Clipped,
			"drawn", stats.Drawn,
			"pixels", stats.Pixels)
	}
	return stats
}

// frameRate measures frames per second over one-second windows.
type frameRate struct {
	frames int
	since  time.Time
}

// tick counts a frame and returns the rate once a second has elapsed.
func (r *frameRate) tick(now time.Time) (float64, bool) {
	r.frames++
	elapsed := now.Sub(r.since)
	if elapsed < time.Second {
		return 0, false
	}
	fps := float64(r.frames) / elapsed.Seconds()
	r.frames = 0
	r.since = now
	return fps, true
}
