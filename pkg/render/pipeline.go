package render

import (
	"image/color"

	"github.com/taigrr/cubes/pkg/math3d"
)

// MeshRenderer is the interface for meshes that can be drawn.
// This interface allows drawing meshes without importing the models package.
type MeshRenderer interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) math3d.Vec3
	GetFace(i int) [3]int
	ScaleMatrix() math3d.Matrix
	RotationMatrix() math3d.Matrix
	TranslationMatrix() math3d.Matrix
	BaseColor() color.RGBA
}

// Viewport maps normalized device coordinates to pixels with one uniform
// scale, so the image keeps its proportions on any surface shape.
type Viewport struct {
	Scale   float64
	CenterX float64
	CenterY float64
}

// NewViewport centres on a width x height surface. A scale of zero or less
// uses half the shorter side.
func NewViewport(width, height int, scale float64) Viewport {
	if scale <= 0 {
		scale = float64(min(width, height)) / 2
	}
	return Viewport{
		Scale:   scale,
		CenterX: float64(width) / 2,
		CenterY: float64(height) / 2,
	}
}

// TransformVertices returns the mesh vertices in camera space. Each point
// is homogenized then carried through scale, rotation, translation and
// view, in that order.
func TransformVertices(mesh MeshRenderer, view math3d.Matrix) []math3d.Vec3 {
	scale := mesh.ScaleMatrix()
	rot := mesh.RotationMatrix()
	trans := mesh.TranslationMatrix()

	out := make([]math3d.Vec3, mesh.VertexCount())
	for i := range out {
		p := math3d.Point(mesh.GetVertex(i))
		p = scale.Mul(p)
		p = rot.Mul(p)
		p = trans.Mul(p)
		p = view.Mul(p)
		out[i] = p.Vec3()
	}
	return out
}

// Project maps a camera-space point to the screen. X and Y are pixels, with
// Y flipped so camera +Y points toward row 0. Z is the clip w, the
// distance in front of the camera.
func Project(perspective math3d.Matrix, vp Viewport, v math3d.Vec3) math3d.Vec3 {
	clip := perspective.Apply(math3d.V4(v.X, v.Y, v.Z, 1))
	ndc := clip.PerspectiveDivide()
	return math3d.V3(
		ndc.X*vp.Scale+vp.CenterX,
		-ndc.Y*vp.Scale+vp.CenterY,
		clip.W,
	)
}

// ProjectVertices projects every camera-space vertex.
func ProjectVertices(cam *Camera, vp Viewport, camSpace []math3d.Vec3) []math3d.Vec3 {
	p := cam.Perspective()
	out := make([]math3d.Vec3, len(camSpace))
	for i, v := range camSpace {
		out[i] = Project(p, vp, v)
	}
	return out
}

// behindNear reports whether any vertex of a projected triangle is closer
// than the near plane. Such triangles are skipped whole.
func behindNear(near float64, s0, s1, s2 math3d.Vec3) bool {
	return s0.Z < near || s1.Z < near || s2.Z < near
}
