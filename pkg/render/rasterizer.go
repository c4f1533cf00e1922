package render

import (
	"cmp"

	"golang.org/x/exp/slices"

	"github.com/taigrr/cubes/pkg/math3d"
)

// VisibilityMode selects how hidden surfaces are resolved.
type VisibilityMode int

const (
	VisibilityDepth   VisibilityMode = iota // per-pixel depth test
	VisibilityPainter                       // sort triangles far to near, no depth test
)

func (v VisibilityMode) String() string {
	if v == VisibilityPainter {
		return "painter"
	}
	return "depth"
}

// RenderMode selects what is drawn for each visible triangle.
type RenderMode int

const (
	ModeFilled    RenderMode = iota // shaded fill plus depth-tested outline
	ModeWireframe                   // edges only
)

func (m RenderMode) String() string {
	if m == ModeWireframe {
		return "wireframe"
	}
	return "filled"
}

// Options configures a Rasterizer.
type Options struct {
	Scale         float64 // pixels per NDC unit; 0 uses half the shorter side
	CullThreshold float64 // faces with n·(eye-v0) <= threshold are culled
	Light         Light
	Visibility    VisibilityMode
	Mode          RenderMode
	Outline       bool // draw triangle edges after the fill
}

// DefaultOptions returns the stock pipeline settings.
func DefaultOptions() Options {
	return Options{
		Light:   DefaultLight(),
		Outline: true,
	}
}

// FrameStats counts the work done for one frame.
type FrameStats struct {
	Meshes    int // meshes submitted
	Triangles int // triangles considered
	Culled    int // back-facing triangles skipped
	Clipped   int // triangles skipped for crossing the near plane
	Drawn     int // triangles rasterized
	Pixels    int // fill pixels and outline points written
}

// Rasterizer draws meshes into a Surface. The surface and depth buffer are
// owned by the caller, which clears them between frames.
type Rasterizer struct {
	Options
	Stats FrameStats // Statistics for the current frame

	target Surface
	depth  *DepthBuffer
}

// NewRasterizer creates a new rasterizer.
func NewRasterizer(target Surface, depth *DepthBuffer, opts Options) *Rasterizer {
	return &Rasterizer{
		Options: opts,
		target:  target,
		depth:   depth,
	}
}

// Viewport returns the screen mapping for the current target.
func (r *Rasterizer) Viewport() Viewport {
	w, h := r.target.Size()
	return NewViewport(w, h, r.Scale)
}

// ResetStats resets the frame statistics (call once per frame).
func (r *Rasterizer) ResetStats() {
	r.Stats = FrameStats{}
}

// triangle is a visible, projected and shaded triangle ready to rasterize.
type triangle struct {
	screen [3]math3d.Vec3
	color  Color
	depth  float64 // mean view distance, for painter's ordering
}

// visible runs the geometry stages for one mesh and returns its
// front-facing triangles in mesh order.
func (r *Rasterizer) visible(cam *Camera, vp Viewport, mesh MeshRenderer) []triangle {
	camSpace := TransformVertices(mesh, cam.ViewMatrix())
	screen := ProjectVertices(cam, vp, camSpace)
	base := mesh.BaseColor()

	r.Stats.Meshes++
	out := make([]triangle, 0, mesh.TriangleCount())
	for i := range mesh.TriangleCount() {
		r.Stats.Triangles++
		f := mesh.GetFace(i)
		s0, s1, s2 := screen[f[0]], screen[f[1]], screen[f[2]]
		if behindNear(cam.Near, s0, s1, s2) {
			r.Stats.Clipped++
			continue
		}

		c0 := camSpace[f[0]]
		n := FaceNormal(c0, camSpace[f[1]], camSpace[f[2]])
		if !Facing(n, c0, r.CullThreshold) {
			r.Stats.Culled++
			continue
		}

		out = append(out, triangle{
			screen: [3]math3d.Vec3{s0, s1, s2},
			color:  r.Light.Shade(n, base),
			depth:  (s0.Z + s1.Z + s2.Z) / 3,
		})
	}
	return out
}

// drawTriangle fills a triangle and outlines it when enabled. A nil depth
// buffer skips the depth test.
func (r *Rasterizer) drawTriangle(t triangle, depth *DepthBuffer) {
	s := t.screen
	r.target.SetColor(t.color)
	r.Stats.Pixels += FillTriangle(r.target, depth, s[0], s[1], s[2])
	if r.Outline {
		r.Stats.Pixels += DrawEdge(r.target, depth, s[0], s[1])
		r.Stats.Pixels += DrawEdge(r.target, depth, s[1], s[2])
		r.Stats.Pixels += DrawEdge(r.target, depth, s[2], s[0])
	}
	r.Stats.Drawn++
}

// DrawFilled renders one mesh with depth-tested scan-line fill and
// outlines.
func (r *Rasterizer) DrawFilled(cam *Camera, mesh MeshRenderer) {
	for _, t := range r.visible(cam, r.Viewport(), mesh) {
		r.drawTriangle(t, r.depth)
	}
}

// drawPainter draws every visible triangle of every mesh farthest first,
// letting nearer triangles overwrite.
func (r *Rasterizer) drawPainter(cam *Camera, meshes []MeshRenderer) {
	vp := r.Viewport()
	var all []triangle
	for _, m := range meshes {
		all = append(all, r.visible(cam, vp, m)...)
	}
	slices.SortStableFunc(all, func(a, b triangle) int {
		return cmp.Compare(b.depth, a.depth)
	})
	for _, t := range all {
		r.drawTriangle(t, nil)
	}
}

// RenderFrame draws meshes in order according to the configured modes and
// returns the frame statistics. The caller clears the surface and depth
// buffer beforehand.
func (r *Rasterizer) RenderFrame(cam *Camera, meshes ...MeshRenderer) FrameStats {
	r.ResetStats()
	switch {
	case r.Mode == ModeWireframe:
		for _, m := range meshes {
			r.DrawWireframe(cam, m)
		}
	case r.Visibility == VisibilityPainter:
		r.drawPainter(cam, meshes)
	default:
		for _, m := range meshes {
			r.DrawFilled(cam, m)
		}
	}
	return r.Stats
}
