package render

import (
	"github.com/taigrr/cubes/pkg/math3d"
)

// DrawWireframe renders the edges of one mesh's front-facing triangles
// without depth testing.
func (r *Rasterizer) DrawWireframe(cam *Camera, mesh MeshRenderer) {
	r.target.SetColor(mesh.BaseColor())
	for _, t := range r.visible(cam, r.Viewport(), mesh) {
		s := t.screen
		for i := range 3 {
			a, b := s[i], s[(i+1)%3]
			r.target.DrawLine(int(a.X), int(a.Y), int(b.X), int(b.Y))
		}
		r.Stats.Drawn++
	}
}

// DrawLine3D draws a world-space segment. Segments with an endpoint
// closer than the near plane are skipped.
func (r *Rasterizer) DrawLine3D(cam *Camera, p1, p2 math3d.Vec3, color Color) {
	view := cam.ViewMatrix()
	vp := r.Viewport()
	a := Project(cam.Perspective(), vp, view.Apply(math3d.V4(p1.X, p1.Y, p1.Z, 1)).Vec3())
	b := Project(cam.Perspective(), vp, view.Apply(math3d.V4(p2.X, p2.Y, p2.Z, 1)).Vec3())
	if a.Z < cam.Near || b.Z < cam.Near {
		return
	}

	r.target.SetColor(color)
	r.target.DrawLine(int(a.X), int(a.Y), int(b.X), int(b.Y))
}

// DrawAxes draws the world coordinate axes at the origin.
func (r *Rasterizer) DrawAxes(cam *Camera, length float64) {
	origin := math3d.Vec3{}
	r.DrawLine3D(cam, origin, math3d.V3(length, 0, 0), RGB(255, 0, 0)) // X axis
	r.DrawLine3D(cam, origin, math3d.V3(0, length, 0), RGB(0, 255, 0)) // Y axis
	r.DrawLine3D(cam, origin, math3d.V3(0, 0, length), RGB(0, 0, 255)) // Z axis
}
