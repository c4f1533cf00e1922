package config

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/taigrr/cubes/pkg/math3d"
	"github.com/taigrr/cubes/pkg/render"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cubes.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[surface]
width = 320
height = 200
background = "30,30,40"

[camera]
fov = 60
z = 25

[render]
mode = "wireframe"
visibility = "painter"

[scene]
layout = "single"
spin = false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Surface.Width != 320 || cfg.Surface.Height != 200 {
		t.Errorf("surface = %+v", cfg.Surface)
	}
	if cfg.Camera.FOV != 60 || cfg.Camera.Z != 25 {
		t.Errorf("camera = %+v", cfg.Camera)
	}
	// Untouched keys keep their defaults.
	if cfg.Camera.Near != 0.01 || cfg.Render.Ambient != 35 {
		t.Errorf("defaults lost: %+v %+v", cfg.Camera, cfg.Render)
	}
	if cfg.Scene.Spin {
		t.Error("spin = true, want false from file")
	}

	bg, err := cfg.BackgroundColor()
	if err != nil || bg != render.RGB(30, 30, 40) {
		t.Errorf("background = %v, %v", bg, err)
	}
	opts := cfg.RenderOptions()
	if opts.Mode != render.ModeWireframe || opts.Visibility != render.VisibilityPainter {
		t.Errorf("options = %+v", opts)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
[camera]
fov = 60
zoom = 3
`)
	_, err := Load(path)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want not-exist", err)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[camera]\nfov = 60\n")
	t.Setenv("CUBES_CAMERA_FOV", "75")
	t.Setenv("CUBES_SCENE_LAYOUT", "single")
	t.Setenv("CUBES_RENDER_OUTLINE", "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Camera.FOV != 75 {
		t.Errorf("fov = %v, want 75 from the environment", cfg.Camera.FOV)
	}
	if cfg.Scene.Layout != LayoutSingle {
		t.Errorf("layout = %q", cfg.Scene.Layout)
	}
	if cfg.Render.Outline {
		t.Error("outline = true, want false from the environment")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Surface.Width = 0 }},
		{"negative scale", func(c *Config) { c.Surface.Scale = -1 }},
		{"flat fov", func(c *Config) { c.Camera.FOV = 180 }},
		{"zero aspect", func(c *Config) { c.Camera.Aspect = 0 }},
		{"near behind eye", func(c *Config) { c.Camera.Near = 0 }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.001 }},
		{"negative epsilon", func(c *Config) { c.Render.DepthEpsilon = -0.1 }},
		{"unknown mode", func(c *Config) { c.Render.Mode = "points" }},
		{"unknown visibility", func(c *Config) { c.Render.Visibility = "zsort" }},
		{"unknown layout", func(c *Config) { c.Scene.Layout = "ring" }},
		{"zero fps", func(c *Config) { c.Scene.FPS = 0 }},
		{"bad background", func(c *Config) { c.Surface.Background = "black" }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestConfigBuilders(t *testing.T) {
	cfg := Default()
	cfg.Render.DepthEpsilon = 0.5

	cam := cfg.NewCamera()
	if cam.Position != math3d.V3(0, 0, 10) || cam.FOV != 90 {
		t.Errorf("camera = %+v", cam)
	}
	if d := cfg.NewDepthBuffer(4, 4); d.Epsilon != 0.5 {
		t.Errorf("depth epsilon = %v, want 0.5", d.Epsilon)
	}
	if lvl, _ := cfg.LogLevel(); lvl != log.InfoLevel {
		t.Errorf("log level = %v", lvl)
	}
}

func TestWatchReloads(t *testing.T) {
	path := writeConfig(t, "[scene]\nlayout = \"grid\"\n")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := Watch(ctx, path, log.New(io.Discard))
	if err != nil {
		t.Fatal(err)
	}

	// A rejected edit first, then a valid one.
	if err := os.WriteFile(path, []byte("[scene]\nlayout = \"ring\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[scene]\nlayout = \"single\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-updates:
			// Truncation may surface a transient empty file, which
			// decodes to defaults.
			if cfg.Scene.Layout == LayoutSingle {
				cancel()
				for range updates {
				}
				return
			}
		case <-timeout:
			t.Fatal("no reload within 5s")
		}
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, "[scene]\nlayout = \"grid\"\n[log]\nlevel = \"warn\"\n")
	t.Setenv("CUBES_SCENE_LAYOUT", "grid")

	single := func(c *Config) { c.Scene.Layout = LayoutSingle }
	cfg, err := Load(path, single)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scene.Layout != LayoutSingle {
		t.Errorf("layout = %q, want the override", cfg.Scene.Layout)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log level = %q, want the file value", cfg.Log.Level)
	}

	bad := func(c *Config) { c.Scene.Layout = "ring" }
	if _, err := Load(path, bad); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load with invalid override = %v, want ErrInvalid", err)
	}
}

func TestWatchKeepsOverrides(t *testing.T) {
	path := writeConfig(t, "[scene]\nlayout = \"grid\"\n")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	single := func(c *Config) { c.Scene.Layout = LayoutSingle }
	updates, err := Watch(ctx, path, log.New(io.Discard), single)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[scene]\nlayout = \"grid\"\nstep = 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-updates:
			if cfg.Scene.Layout != LayoutSingle {
				t.Fatalf("reload layout = %q, want the override", cfg.Scene.Layout)
			}
			if cfg.Scene.Step == 5 {
				cancel()
				for range updates {
				}
				return
			}
		case <-timeout:
			t.Fatal("no reload within 5s")
		}
	}
}
