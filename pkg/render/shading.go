package render

import (
	"math"

	"github.com/taigrr/cubes/pkg/math3d"
)

// Light is a single directional light plus a constant ambient floor.
// Ambient and Diffuse are in 0-255 channel units.
type Light struct {
	Direction math3d.Vec3 // camera space, pointing toward the light
	Ambient   float64
	Diffuse   float64
}

// DefaultLight is a headlight: straight from the viewer into the scene.
func DefaultLight() Light {
	return Light{
		Direction: math3d.V3(0, 0, 1),
		Ambient:   35,
		Diffuse:   220,
	}
}

// Shade returns base lit by l for a surface with the given unit normal.
// A white base yields the grey level floor(max(0, n·L)*Diffuse)+Ambient.
func (l Light) Shade(normal math3d.Vec3, base Color) Color {
	intensity := max(0, normal.Dot(l.Direction.Normalize()))
	level := math.Floor(intensity*l.Diffuse) + l.Ambient
	return Color{
		R: channel(base.R, level),
		G: channel(base.G, level),
		B: channel(base.B, level),
		A: base.A,
	}
}

func channel(c uint8, level float64) uint8 {
	v := level * float64(c) / 255
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
