// Package scene holds the cubes being animated and how they are laid out.
package scene

import (
	"fmt"
	"math"

	"github.com/taigrr/cubes/pkg/math3d"
	"github.com/taigrr/cubes/pkg/models"
	"github.com/taigrr/cubes/pkg/render"
)

// Layout names.
const (
	Single = "single"
	Grid   = "grid"
)

const (
	gridCount   = 100
	gridColumns = 10
	gridSpacing = 5.0
	gridHeight  = 3.0
)

// Scene is a fixed set of cubes sharing one spin angle.
type Scene struct {
	Layout string

	angle     float64 // degrees
	cubes     []*models.Mesh
	renderers []render.MeshRenderer
}

// New builds the cubes for layout. Single is one cube at the origin; grid
// is a 10x10 field at height 3 with 5 units between neighbours.
func New(layout string) (*Scene, error) {
	var cubes []*models.Mesh
	switch layout {
	case Single:
		cubes = []*models.Mesh{models.NewCube()}
	case Grid:
		cubes = make([]*models.Mesh, gridCount)
		for i := range cubes {
			c := models.NewCube()
			c.Name = fmt.Sprintf("cube-%02d", i)
			c.SetTranslation(math3d.Translate(gridPosition(i)))
			cubes[i] = c
		}
	default:
		return nil, fmt.Errorf("unknown layout %q", layout)
	}

	s := &Scene{Layout: layout, cubes: cubes}
	s.renderers = make([]render.MeshRenderer, len(cubes))
	for i, c := range cubes {
		s.renderers[i] = c
	}
	return s, nil
}

func gridPosition(i int) math3d.Vec3 {
	return math3d.V3(float64(i/gridColumns)*gridSpacing, gridHeight, float64(i%gridColumns)*gridSpacing)
}

// Meshes returns the cubes in draw order.
func (s *Scene) Meshes() []render.MeshRenderer { return s.renderers }

// Cubes returns the underlying meshes.
func (s *Scene) Cubes() []*models.Mesh { return s.cubes }

// Angle returns the current spin in degrees, in [0, 360).
func (s *Scene) Angle() float64 { return s.angle }

// Tick advances the spin by deg degrees and sets every cube's rotation to
// RotateY of the new angle.
func (s *Scene) Tick(deg float64) {
	s.SetAngle(s.angle + deg)
}

// SetAngle sets the spin directly.
func (s *Scene) SetAngle(deg float64) {
	s.angle = math.Mod(deg, 360)
	if s.angle < 0 {
		s.angle += 360
	}
	r := math3d.RotateY(s.angle)
	for _, c := range s.cubes {
		c.SetRotation(r)
	}
}

// TriangleCount returns the number of triangles submitted per frame.
func (s *Scene) TriangleCount() int {
	n := 0
	for _, c := range s.cubes {
		n += c.TriangleCount()
	}
	return n
}
