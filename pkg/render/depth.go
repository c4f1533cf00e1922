package render

import "math"

// DefaultDepthEpsilon is the margin by which a fragment must be nearer than
// the stored depth to win. Ties go to the fragment drawn first.
const DefaultDepthEpsilon = 0.1

// DepthBuffer holds the nearest accepted depth per pixel.
type DepthBuffer struct {
	Epsilon float64

	width, height int
	depth         []float64 // row-major
}

// NewDepthBuffer creates a cleared depth buffer.
func NewDepthBuffer(width, height int) *DepthBuffer {
	d := &DepthBuffer{
		Epsilon: DefaultDepthEpsilon,
		width:   width,
		height:  height,
		depth:   make([]float64, width*height),
	}
	d.Clear()
	return d
}

// Size returns the buffer dimensions.
func (d *DepthBuffer) Size() (int, int) {
	return d.width, d.height
}

// Clear resets every entry to +Inf (call before each frame).
func (d *DepthBuffer) Clear() {
	// Use copy-doubling for faster clearing
	n := len(d.depth)
	if n == 0 {
		return
	}
	d.depth[0] = math.Inf(1)
	for i := 1; i < n; i *= 2 {
		copy(d.depth[i:], d.depth[:i])
	}
}

// Depth returns the stored depth at (x, y), or +Inf out of bounds.
func (d *DepthBuffer) Depth(x, y int) float64 {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return math.Inf(1)
	}
	return d.depth[y*d.width+x]
}

// TestAndSet records z at (x, y) and reports true when z is nearer than the
// stored value by more than Epsilon. Out-of-bounds coordinates are
// rejected without a write.
func (d *DepthBuffer) TestAndSet(x, y int, z float64) bool {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return false
	}
	i := y*d.width + x
	if z < d.depth[i]-d.Epsilon {
		d.depth[i] = z
		return true
	}
	return false
}
