package render

import (
	"math"

	"github.com/taigrr/cubes/pkg/math3d"
)

// fragmentTest reports whether a fragment at (x, y) with depth z may be
// written, recording it if so.
type fragmentTest func(x, y int, z float64) bool

// testerFor returns the depth test, or a bounds-only test when depth is
// nil (painter's ordering).
func testerFor(target Surface, depth *DepthBuffer) fragmentTest {
	if depth != nil {
		return depth.TestAndSet
	}
	w, h := target.Size()
	return func(x, y int, _ float64) bool {
		return x >= 0 && x < w && y >= 0 && y < h
	}
}

type scanFill struct {
	target        Surface
	test          fragmentTest
	width, height int
}

// FillTriangle scan-converts a screen-space triangle (x, y in pixels, z
// depth) into target and returns the number of pixels written. Vertices may
// be in any order. With a nil depth buffer every in-bounds pixel is written.
func FillTriangle(target Surface, depth *DepthBuffer, v0, v1, v2 math3d.Vec3) int {
	if v1.Y < v0.Y {
		v0, v1 = v1, v0
	}
	if v2.Y < v0.Y {
		v0, v2 = v2, v0
	}
	if v2.Y < v1.Y {
		v1, v2 = v2, v1
	}
	if v0.Y == v2.Y {
		return 0
	}

	w, h := target.Size()
	f := scanFill{target: target, test: testerFor(target, depth), width: w, height: h}

	switch {
	case v1.Y == v2.Y:
		return f.flatTop(v0, v1, v2)
	case v0.Y == v1.Y:
		return f.flatBottom(v0, v1, v2)
	}

	// Split at v1's row along the long edge v0→v2.
	t := (v1.Y - v0.Y) / (v2.Y - v0.Y)
	v3 := v0.Lerp(v2, t)
	v3.Y = v1.Y
	return f.flatTop(v0, v1, v3) + f.flatBottom(v1, v3, v2)
}

// flatTop fills a triangle whose single vertex v0 is on the first row and
// whose v1, v2 share the last row.
func (f scanFill) flatTop(v0, v1, v2 math3d.Vec3) int {
	dy1 := v1.Y - v0.Y
	dy2 := v2.Y - v0.Y
	return f.rows(v0.Y, v2.Y,
		v0.X, v0.X, v0.Z, v0.Z,
		(v1.X-v0.X)/dy1, (v2.X-v0.X)/dy2,
		(v1.Z-v0.Z)/dy1, (v2.Z-v0.Z)/dy2,
	)
}

// flatBottom fills a triangle whose v0, v1 share the first row and whose
// single vertex v2 is on the last row.
func (f scanFill) flatBottom(v0, v1, v2 math3d.Vec3) int {
	dy1 := v2.Y - v0.Y
	dy2 := v2.Y - v1.Y
	return f.rows(v0.Y, v2.Y,
		v0.X, v1.X, v0.Z, v1.Z,
		(v2.X-v0.X)/dy1, (v2.X-v1.X)/dy2,
		(v2.Z-v0.Z)/dy1, (v2.Z-v1.Z)/dy2,
	)
}

// rows walks ceil(top)..floor(bottom), stepping both edges' x and depth
// once per row from their starting values. Rows above the surface are
// skipped in one step.
func (f scanFill) rows(top, bottom, xa, xb, za, zb, dxa, dxb, dza, dzb float64) int {
	first := math.Ceil(top)
	last := math.Min(math.Floor(bottom), float64(f.height-1))
	if first < 0 {
		skip := -first
		xa += dxa * skip
		xb += dxb * skip
		za += dza * skip
		zb += dzb * skip
		first = 0
	}
	if first > last {
		return 0
	}

	n := 0
	for y := int(first); y <= int(last); y++ {
		n += f.span(y, xa, xb, za, zb)
		xa += dxa
		xb += dxb
		za += dza
		zb += dzb
	}
	return n
}

// span tests every pixel of [ceil(left), floor(right)] on row y and emits
// each accepted run as one DrawSpan.
func (f scanFill) span(y int, xa, xb, za, zb float64) int {
	zl, zr := za, zb
	if xb < xa {
		xa, xb = xb, xa
		zl, zr = zb, za
	}
	left := math.Ceil(xa)
	right := math.Floor(xb)
	if left > right || right < 0 || left > float64(f.width-1) {
		return 0
	}

	zStep := (zr - zl) / (right - left + 1)
	z := zl
	if left < 0 {
		z += zStep * -left
		left = 0
	}
	minX := int(left)
	maxX := int(math.Min(right, float64(f.width-1)))

	n := 0
	run := -1
	for x := minX; x <= maxX; x++ {
		if f.test(x, y, z) {
			if run < 0 {
				run = x
			}
			n++
		} else if run >= 0 {
			f.target.DrawSpan(run, x-1, y)
			run = -1
		}
		z += zStep
	}
	if run >= 0 {
		f.target.DrawSpan(run, maxX, y)
	}
	return n
}

// DrawEdge walks the line a→b with an integer error accumulator, stepping
// depth evenly, and marks each accepted point with a 2x2 square. It
// returns the number of points drawn.
func DrawEdge(target Surface, depth *DepthBuffer, a, b math3d.Vec3) int {
	test := testerFor(target, depth)

	x0, y0 := int(a.X), int(a.Y)
	x1, y1 := int(b.X), int(b.Y)
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	zStep := (b.Z - a.Z) / float64(max(dx, dy, 1))
	z := a.Z

	n := 0
	for {
		if test(x0, y0, z) {
			target.FillRect(x0, y0, 2, 2)
			n++
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
		z += zStep
	}
	return n
}
