// Package config resolves the settings shared by every cubes shell.
//
// Values come from, in order: built-in defaults, an optional TOML file and
// CUBES_* environment variables. The result is validated before use.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"

	"github.com/taigrr/cubes/pkg/math3d"
	"github.com/taigrr/cubes/pkg/render"
)

// EnvPrefix prefixes every environment override, e.g. CUBES_CAMERA_FOV.
const EnvPrefix = "CUBES"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Render mode, visibility and layout names accepted in config files.
const (
	ModeFilled    = "filled"
	ModeWireframe = "wireframe"

	VisibilityDepth   = "depth"
	VisibilityPainter = "painter"

	LayoutSingle = "single"
	LayoutGrid   = "grid"
)

// Config is the full set of settings, one section per TOML table.
type Config struct {
	Surface Surface `toml:"surface" envconfig:"SURFACE"`
	Camera  Camera  `toml:"camera" envconfig:"CAMERA"`
	Render  Render  `toml:"render" envconfig:"RENDER"`
	Scene   Scene   `toml:"scene" envconfig:"SCENE"`
	Log     Log     `toml:"log" envconfig:"LOG"`
}

// Surface sizes the pixel target for the window and headless shells. The
// terminal shell sizes itself from the terminal.
type Surface struct {
	Width      int     `toml:"width" envconfig:"WIDTH"`
	Height     int     `toml:"height" envconfig:"HEIGHT"`
	Scale      float64 `toml:"scale" envconfig:"SCALE"` // 0 = half the shorter side
	Background string  `toml:"background" envconfig:"BACKGROUND"`
}

// Camera is the starting pose, projection and movement steps.
type Camera struct {
	FOV      float64 `toml:"fov" envconfig:"FOV"`
	Aspect   float64 `toml:"aspect" envconfig:"ASPECT"`
	Near     float64 `toml:"near" envconfig:"NEAR"`
	Far      float64 `toml:"far" envconfig:"FAR"`
	X        float64 `toml:"x" envconfig:"X"`
	Y        float64 `toml:"y" envconfig:"Y"`
	Z        float64 `toml:"z" envconfig:"Z"`
	MoveStep float64 `toml:"move_step" envconfig:"MOVE_STEP"`
	TurnStep float64 `toml:"turn_step" envconfig:"TURN_STEP"`
}

// Render selects the drawing modes and the shading terms.
type Render struct {
	Mode          string  `toml:"mode" envconfig:"MODE"`
	Visibility    string  `toml:"visibility" envconfig:"VISIBILITY"`
	Outline       bool    `toml:"outline" envconfig:"OUTLINE"`
	Axes          bool    `toml:"axes" envconfig:"AXES"`
	CullThreshold float64 `toml:"cull_threshold" envconfig:"CULL_THRESHOLD"`
	DepthEpsilon  float64 `toml:"depth_epsilon" envconfig:"DEPTH_EPSILON"`
	Ambient       float64 `toml:"ambient" envconfig:"AMBIENT"`
	Diffuse       float64 `toml:"diffuse" envconfig:"DIFFUSE"`
}

// Scene picks the cube layout and how it spins.
type Scene struct {
	Layout string  `toml:"layout" envconfig:"LAYOUT"`
	Spin   bool    `toml:"spin" envconfig:"SPIN"`
	Step   float64 `toml:"step" envconfig:"STEP"` // degrees per tick
	FPS    int     `toml:"fps" envconfig:"FPS"`
}

// Log sets the logger level and an optional file to append to.
type Log struct {
	Level string `toml:"level" envconfig:"LEVEL"`
	File  string `toml:"file" envconfig:"FILE"`
}

// Default returns the built-in settings: a 500x500 surface watching the
// cube grid from z=10 with a 90 degree field of view.
func Default() Config {
	return Config{
		Surface: Surface{
			Width:      500,
			Height:     500,
			Background: "0,0,0",
		},
		Camera: Camera{
			FOV:      90,
			Aspect:   1,
			Near:     0.01,
			Far:      500,
			Z:        10,
			MoveStep: 1,
			TurnStep: 10,
		},
		Render: Render{
			Mode:         ModeFilled,
			Visibility:   VisibilityDepth,
			Outline:      true,
			DepthEpsilon: render.DefaultDepthEpsilon,
			Ambient:      35,
			Diffuse:      220,
		},
		Scene: Scene{
			Layout: LayoutGrid,
			Spin:   true,
			Step:   3,
			FPS:    60,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Override adjusts a config after the file and environment layers, the
// way command-line flags do.
type Override func(*Config)

// Load resolves the configuration: defaults, then the file (an empty path
// skips it), then the environment, then each override in order.
func Load(path string, overrides ...Override) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("environment: %w", err)
	}
	for _, o := range overrides {
		o(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("%s: %w: %s", path, ErrInvalid, strict.String())
		}
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Validate reports the first setting that cannot drive a render.
func (c Config) Validate() error {
	switch {
	case c.Surface.Width <= 0 || c.Surface.Height <= 0:
		return fmt.Errorf("%w: surface %dx%d", ErrInvalid, c.Surface.Width, c.Surface.Height)
	case c.Surface.Scale < 0:
		return fmt.Errorf("%w: negative surface scale %v", ErrInvalid, c.Surface.Scale)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("%w: fov %v outside (0, 180)", ErrInvalid, c.Camera.FOV)
	case c.Camera.Aspect <= 0:
		return fmt.Errorf("%w: aspect %v", ErrInvalid, c.Camera.Aspect)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: clip planes near=%v far=%v", ErrInvalid, c.Camera.Near, c.Camera.Far)
	case c.Render.DepthEpsilon < 0:
		return fmt.Errorf("%w: negative depth epsilon", ErrInvalid)
	case c.Scene.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.Scene.FPS)
	}

	if _, err := c.Mode(); err != nil {
		return err
	}
	if _, err := c.Visibility(); err != nil {
		return err
	}
	if c.Scene.Layout != LayoutSingle && c.Scene.Layout != LayoutGrid {
		return fmt.Errorf("%w: layout %q", ErrInvalid, c.Scene.Layout)
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// Mode maps the configured render mode name.
func (c Config) Mode() (render.RenderMode, error) {
	switch c.Render.Mode {
	case ModeFilled:
		return render.ModeFilled, nil
	case ModeWireframe:
		return render.ModeWireframe, nil
	}
	return 0, fmt.Errorf("%w: render mode %q", ErrInvalid, c.Render.Mode)
}

// Visibility maps the configured hidden-surface strategy name.
func (c Config) Visibility() (render.VisibilityMode, error) {
	switch c.Render.Visibility {
	case VisibilityDepth:
		return render.VisibilityDepth, nil
	case VisibilityPainter:
		return render.VisibilityPainter, nil
	}
	return 0, fmt.Errorf("%w: visibility %q", ErrInvalid, c.Render.Visibility)
}

// BackgroundColor parses the "R,G,B" background.
func (c Config) BackgroundColor() (render.Color, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(c.Surface.Background, "%d,%d,%d", &r, &g, &b); err != nil {
		return render.Color{}, fmt.Errorf("%w: background %q: %v", ErrInvalid, c.Surface.Background, err)
	}
	return render.RGB(r, g, b), nil
}

// LogLevel parses the configured log level.
func (c Config) LogLevel() (log.Level, error) {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, c.Log.Level)
	}
	return lvl, nil
}

// RenderOptions builds rasterizer options. The config must be valid.
func (c Config) RenderOptions() render.Options {
	opts := render.DefaultOptions()
	opts.Scale = c.Surface.Scale
	opts.CullThreshold = c.Render.CullThreshold
	opts.Outline = c.Render.Outline
	opts.Light.Ambient = c.Render.Ambient
	opts.Light.Diffuse = c.Render.Diffuse
	opts.Mode, _ = c.Mode()
	opts.Visibility, _ = c.Visibility()
	return opts
}

// NewCamera builds the starting camera.
func (c Config) NewCamera() *render.Camera {
	cam := render.NewCamera(c.Camera.FOV, c.Camera.Aspect, c.Camera.Near, c.Camera.Far)
	cam.SetPosition(math3d.V3(c.Camera.X, c.Camera.Y, c.Camera.Z))
	return cam
}

// NewDepthBuffer builds a depth buffer using the configured epsilon.
func (c Config) NewDepthBuffer(width, height int) *render.DepthBuffer {
	d := render.NewDepthBuffer(width, height)
	d.Epsilon = c.Render.DepthEpsilon
	return d
}
