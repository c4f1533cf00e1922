package render

import (
	"testing"

	"github.com/taigrr/cubes/pkg/math3d"
)

// recordingSurface implements Surface and remembers what was drawn.
type recordingSurface struct {
	w, h   int
	pen    Color
	pixels map[[2]int]Color
	writes map[[2]int]int
	spans  int
	rects  int
	lines  int
}

func newRecordingSurface(w, h int) *recordingSurface {
	return &recordingSurface{
		w:      w,
		h:      h,
		pixels: map[[2]int]Color{},
		writes: map[[2]int]int{},
	}
}

func (s *recordingSurface) Size() (int, int)        { return s.w, s.h }
func (s *recordingSurface) SetColor(c Color)        { s.pen = c }
func (s *recordingSurface) DrawLine(_, _, _, _ int) { s.lines++ }

func (s *recordingSurface) plot(x, y int) {
	if x < 0 || x >= s.w || y < 0 || y >= s.h {
		return
	}
	s.pixels[[2]int{x, y}] = s.pen
	s.writes[[2]int{x, y}]++
}

func (s *recordingSurface) FillRect(x, y, w, h int) {
	s.rects++
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			s.plot(px, py)
		}
	}
}

func (s *recordingSurface) DrawSpan(x0, x1, y int) {
	s.spans++
	for x := x0; x <= x1; x++ {
		s.plot(x, y)
	}
}

func TestFillTriangleLattice(t *testing.T) {
	a := math3d.V3(0, 0, 1)
	b := math3d.V3(4, 0, 1)
	c := math3d.V3(0, 4, 1)

	want := map[[2]int]bool{}
	for y := 0; y <= 4; y++ {
		for x := 0; x <= 4-y; x++ {
			want[[2]int{x, y}] = true
		}
	}

	orders := []struct {
		name       string
		v0, v1, v2 math3d.Vec3
	}{
		{"abc", a, b, c},
		{"acb", a, c, b},
		{"bac", b, a, c},
		{"bca", b, c, a},
		{"cab", c, a, b},
		{"cba", c, b, a},
	}

	for _, tt := range orders {
		t.Run(tt.name, func(t *testing.T) {
			s := newRecordingSurface(10, 10)
			n := FillTriangle(s, NewDepthBuffer(10, 10), tt.v0, tt.v1, tt.v2)
			if n != 15 {
				t.Errorf("pixels written = %d, want 15", n)
			}
			if len(s.pixels) != len(want) {
				t.Errorf("covered %d lattice points, want %d", len(s.pixels), len(want))
			}
			for p := range s.pixels {
				if !want[p] {
					t.Errorf("pixel %v outside the triangle", p)
				}
			}
			// One run per row: 5, 4, 3, 2, 1 pixels.
			if s.spans != 5 {
				t.Errorf("spans = %d, want 5", s.spans)
			}
		})
	}
}

func TestFillTriangleGeneralSplit(t *testing.T) {
	v0 := math3d.V3(2, 1, 3)
	v1 := math3d.V3(17, 8, 3)
	v2 := math3d.V3(6, 19, 3)

	s := newRecordingSurface(30, 30)
	n := FillTriangle(s, NewDepthBuffer(30, 30), v0, v1, v2)
	if n == 0 {
		t.Fatal("general triangle wrote no pixels")
	}
	if n != len(s.pixels) {
		t.Errorf("pixels written = %d, distinct pixels = %d", n, len(s.pixels))
	}
	for p, count := range s.writes {
		if count != 1 {
			t.Errorf("pixel %v written %d times", p, count)
		}
		if !insideTriangle(float64(p[0]), float64(p[1]), v0, v1, v2) {
			t.Errorf("pixel %v outside the triangle", p)
		}
	}
}

// insideTriangle is a closed edge-function test with a small tolerance.
func insideTriangle(x, y float64, a, b, c math3d.Vec3) bool {
	edge := func(p, q math3d.Vec3) float64 {
		return (q.X-p.X)*(y-p.Y) - (q.Y-p.Y)*(x-p.X)
	}
	e0, e1, e2 := edge(a, b), edge(b, c), edge(c, a)
	const tol = 1e-3
	return (e0 >= -tol && e1 >= -tol && e2 >= -tol) || (e0 <= tol && e1 <= tol && e2 <= tol)
}

func TestFillTriangleDegenerate(t *testing.T) {
	tests := []struct {
		name       string
		v0, v1, v2 math3d.Vec3
	}{
		{"zero height", math3d.V3(0, 3, 1), math3d.V3(5, 3, 1), math3d.V3(9, 3, 1)},
		{"single point", math3d.V3(2, 2, 1), math3d.V3(2, 2, 1), math3d.V3(2, 2, 1)},
		{"between rows", math3d.V3(0, 2.2, 1), math3d.V3(6, 2.4, 1), math3d.V3(3, 2.8, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newRecordingSurface(10, 10)
			if n := FillTriangle(s, NewDepthBuffer(10, 10), tt.v0, tt.v1, tt.v2); n != 0 {
				t.Errorf("pixels written = %d, want 0", n)
			}
			if s.spans != 0 {
				t.Errorf("spans = %d, want 0", s.spans)
			}
		})
	}
}

func TestFillTriangleDepthOrder(t *testing.T) {
	near := [3]math3d.Vec3{{X: 0, Y: 0, Z: 1}, {X: 8, Y: 0, Z: 1}, {X: 0, Y: 8, Z: 1}}
	far := [3]math3d.Vec3{{X: 0, Y: 0, Z: 5}, {X: 8, Y: 0, Z: 5}, {X: 0, Y: 8, Z: 5}}

	t.Run("far after near is hidden", func(t *testing.T) {
		s := newRecordingSurface(10, 10)
		d := NewDepthBuffer(10, 10)
		FillTriangle(s, d, near[0], near[1], near[2])
		if n := FillTriangle(s, d, far[0], far[1], far[2]); n != 0 {
			t.Errorf("far triangle wrote %d pixels", n)
		}
	})

	t.Run("near after far overwrites", func(t *testing.T) {
		s := newRecordingSurface(10, 10)
		d := NewDepthBuffer(10, 10)
		first := FillTriangle(s, d, far[0], far[1], far[2])
		if n := FillTriangle(s, d, near[0], near[1], near[2]); n != first {
			t.Errorf("near triangle wrote %d pixels, want %d", n, first)
		}
	})

	t.Run("nil depth writes everything", func(t *testing.T) {
		s := newRecordingSurface(10, 10)
		first := FillTriangle(s, nil, near[0], near[1], near[2])
		if n := FillTriangle(s, nil, far[0], far[1], far[2]); n != first {
			t.Errorf("second fill wrote %d pixels, want %d", n, first)
		}
	})
}

func TestFillTriangleClipsToSurface(t *testing.T) {
	s := newRecordingSurface(10, 10)
	n := FillTriangle(s, NewDepthBuffer(10, 10),
		math3d.V3(-20, -20, 2), math3d.V3(40, -5, 2), math3d.V3(0, 40, 2))
	if n == 0 {
		t.Fatal("triangle covering the surface wrote nothing")
	}
	if n != 100 {
		t.Errorf("pixels written = %d, want the whole 10x10 surface", n)
	}
}

func TestFillTriangleFarOffSurface(t *testing.T) {
	tests := []struct {
		name       string
		v0, v1, v2 math3d.Vec3
		minN, maxN int
	}{
		// Apex far above the surface, as a vertex just past a tiny near
		// plane projects. Rows 0..300 are nearly full width.
		{"apex far above", math3d.V3(250, -1e15, 1), math3d.V3(0, 300, 1), math3d.V3(500, 300, 1), 301 * 498, 301 * 500},
		{"apex far below", math3d.V3(250, 1e15, 1), math3d.V3(0, 200, 1), math3d.V3(500, 200, 1), 300 * 498, 300 * 500},
		{"entirely above", math3d.V3(0, -1e15, 1), math3d.V3(10, -5, 1), math3d.V3(20, -1, 1), 0, 0},
		{"entirely left", math3d.V3(-1e15, 0, 1), math3d.V3(-5, 10, 1), math3d.V3(-1, 20, 1), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newRecordingSurface(500, 500)
			n := FillTriangle(s, nil, tt.v0, tt.v1, tt.v2)
			if n < tt.minN || n > tt.maxN {
				t.Errorf("pixels written = %d, want %d..%d", n, tt.minN, tt.maxN)
			}
			if n != len(s.pixels) {
				t.Errorf("reported %d pixels, drew %d", n, len(s.pixels))
			}
		})
	}
}

func TestDrawEdge(t *testing.T) {
	t.Run("horizontal", func(t *testing.T) {
		s := newRecordingSurface(10, 10)
		n := DrawEdge(s, NewDepthBuffer(10, 10), math3d.V3(1, 2, 3), math3d.V3(5, 2, 3))
		if n != 5 || s.rects != 5 {
			t.Errorf("points = %d, rects = %d, want 5", n, s.rects)
		}
		// 2x2 markers: x 1..6, y 2..3
		if len(s.pixels) != 12 {
			t.Errorf("covered %d pixels, want 12", len(s.pixels))
		}
	})

	t.Run("diagonal reversed", func(t *testing.T) {
		s := newRecordingSurface(10, 10)
		n := DrawEdge(s, NewDepthBuffer(10, 10), math3d.V3(6, 6, 1), math3d.V3(2, 2, 1))
		if n != 5 {
			t.Errorf("points = %d, want 5", n)
		}
	})

	t.Run("single point", func(t *testing.T) {
		s := newRecordingSurface(10, 10)
		if n := DrawEdge(s, nil, math3d.V3(3, 3, 1), math3d.V3(3.7, 3.2, 1)); n != 1 {
			t.Errorf("points = %d, want 1", n)
		}
	})

	t.Run("hidden by nearer fill", func(t *testing.T) {
		s := newRecordingSurface(10, 10)
		d := NewDepthBuffer(10, 10)
		FillTriangle(s, d, math3d.V3(0, 0, 1), math3d.V3(9, 0, 1), math3d.V3(0, 9, 1))
		if n := DrawEdge(s, d, math3d.V3(0, 1, 4), math3d.V3(4, 1, 4)); n != 0 {
			t.Errorf("occluded edge drew %d points", n)
		}
	})

	t.Run("depth interpolates", func(t *testing.T) {
		s := newRecordingSurface(10, 10)
		d := NewDepthBuffer(10, 10)
		DrawEdge(s, d, math3d.V3(0, 0, 2), math3d.V3(4, 0, 6))
		if got := d.Depth(2, 0); got != 4 {
			t.Errorf("midpoint depth = %v, want 4", got)
		}
	})
}

func BenchmarkFillTriangle(b *testing.B) {
	fb := NewFramebuffer(200, 200)
	d := NewDepthBuffer(200, 200)
	v0 := math3d.V3(10, 5, 3)
	v1 := math3d.V3(190, 80, 4)
	v2 := math3d.V3(60, 195, 5)

	for b.Loop() {
		d.Clear()
		FillTriangle(fb, d, v0, v1, v2)
	}
}
