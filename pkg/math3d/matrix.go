package math3d

import (
	"fmt"
	"math"
)

// Matrix is a dense row-major matrix.
//
// Only 4x4 transforms and 4x1 homogeneous columns are built by this
// package, but the arithmetic works on any shape. Operations whose
// operand shapes do not agree panic: a mismatch is a programming error,
// never a runtime condition.
//
// Element (r, c) lives at Data[r*Cols+c]:
//
//	| 0  1  2  3  |
//	| 4  5  6  7  |
//	| 8  9  10 11 |
//	| 12 13 14 15 |
type Matrix struct {
	Rows, Cols int
	Data       []float64
}

// NewMatrix returns a zero matrix of the given shape.
func NewMatrix(rows, cols int) Matrix {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("math3d: invalid matrix shape %dx%d", rows, cols))
	}
	return Matrix{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

// FromRows builds a matrix from row slices of equal length.
func FromRows(rows ...[]float64) Matrix {
	if len(rows) == 0 {
		panic("math3d: FromRows needs at least one row")
	}
	m := NewMatrix(len(rows), len(rows[0]))
	for r, row := range rows {
		if len(row) != m.Cols {
			panic(fmt.Sprintf("math3d: row %d has %d columns, want %d", r, len(row), m.Cols))
		}
		copy(m.Data[r*m.Cols:], row)
	}
	return m
}

// Identity returns the 4x4 identity matrix.
func Identity() Matrix {
	m := NewMatrix(4, 4)
	m.Data[0], m.Data[5], m.Data[10], m.Data[15] = 1, 1, 1, 1
	return m
}

// Point returns v as a homogeneous 4x1 column with w = 1.
func Point(v Vec3) Matrix {
	return V4(v.X, v.Y, v.Z, 1).Column()
}

// At returns the element at (row, col).
func (m Matrix) At(row, col int) float64 {
	return m.Data[row*m.Cols+col]
}

// Set sets the element at (row, col).
func (m Matrix) Set(row, col int, val float64) {
	m.Data[row*m.Cols+col] = val
}

func (m Matrix) sameShape(op string, b Matrix) {
	if m.Rows != b.Rows || m.Cols != b.Cols {
		panic(fmt.Sprintf("math3d: %s of %dx%d and %dx%d", op, m.Rows, m.Cols, b.Rows, b.Cols))
	}
}

// Add returns the element-wise sum a + b.
func (a Matrix) Add(b Matrix) Matrix {
	a.sameShape("add", b)
	m := NewMatrix(a.Rows, a.Cols)
	for i := range m.Data {
		m.Data[i] = a.Data[i] + b.Data[i]
	}
	return m
}

// Sub returns the element-wise difference a - b.
func (a Matrix) Sub(b Matrix) Matrix {
	a.sameShape("sub", b)
	m := NewMatrix(a.Rows, a.Cols)
	for i := range m.Data {
		m.Data[i] = a.Data[i] - b.Data[i]
	}
	return m
}

// Mul returns the matrix product a * b. It panics unless a.Cols == b.Rows.
func (a Matrix) Mul(b Matrix) Matrix {
	if a.Cols != b.Rows {
		panic(fmt.Sprintf("math3d: mul of %dx%d and %dx%d", a.Rows, a.Cols, b.Rows, b.Cols))
	}
	m := NewMatrix(a.Rows, b.Cols)
	for row := range a.Rows {
		for col := range b.Cols {
			var sum float64
			for k := range a.Cols {
				sum += a.Data[row*a.Cols+k] * b.Data[k*b.Cols+col]
			}
			m.Data[row*m.Cols+col] = sum
		}
	}
	return m
}

// Transpose returns the transposed matrix.
func (m Matrix) Transpose() Matrix {
	t := NewMatrix(m.Cols, m.Rows)
	for r := range m.Rows {
		for c := range m.Cols {
			t.Data[c*t.Cols+r] = m.Data[r*m.Cols+c]
		}
	}
	return t
}

// Vec4 reads a 4x1 column. It panics on any other shape.
func (m Matrix) Vec4() Vec4 {
	if m.Rows != 4 || m.Cols != 1 {
		panic(fmt.Sprintf("math3d: vector from %dx%d matrix", m.Rows, m.Cols))
	}
	return Vec4{m.Data[0], m.Data[1], m.Data[2], m.Data[3]}
}

// Vec3 reads a 4x1 column and drops w. It panics on any other shape.
func (m Matrix) Vec3() Vec3 {
	return m.Vec4().Vec3()
}

// Apply transforms a homogeneous point by a 4x4 matrix.
func (m Matrix) Apply(v Vec4) Vec4 {
	return m.Mul(v.Column()).Vec4()
}

// Translate creates a translation matrix.
func Translate(v Vec3) Matrix {
	return FromRows(
		[]float64{1, 0, 0, v.X},
		[]float64{0, 1, 0, v.Y},
		[]float64{0, 0, 1, v.Z},
		[]float64{0, 0, 0, 1},
	)
}

// Scale creates a per-axis scaling matrix.
func Scale(v Vec3) Matrix {
	return FromRows(
		[]float64{v.X, 0, 0, 0},
		[]float64{0, v.Y, 0, 0},
		[]float64{0, 0, v.Z, 0},
		[]float64{0, 0, 0, 1},
	)
}

// ScaleUniform creates a uniform scaling matrix.
func ScaleUniform(s float64) Matrix {
	return Scale(V3(s, s, s))
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// RotateX creates a right-handed rotation of deg degrees around the X axis.
func RotateX(deg float64) Matrix {
	s, c := math.Sincos(Radians(deg))
	return FromRows(
		[]float64{1, 0, 0, 0},
		[]float64{0, c, -s, 0},
		[]float64{0, s, c, 0},
		[]float64{0, 0, 0, 1},
	)
}

// RotateY creates a right-handed rotation of deg degrees around the Y axis.
func RotateY(deg float64) Matrix {
	s, c := math.Sincos(Radians(deg))
	return FromRows(
		[]float64{c, 0, s, 0},
		[]float64{0, 1, 0, 0},
		[]float64{-s, 0, c, 0},
		[]float64{0, 0, 0, 1},
	)
}

// RotateZ creates a right-handed rotation of deg degrees around the Z axis.
func RotateZ(deg float64) Matrix {
	s, c := math.Sincos(Radians(deg))
	return FromRows(
		[]float64{c, -s, 0, 0},
		[]float64{s, c, 0, 0},
		[]float64{0, 0, 1, 0},
		[]float64{0, 0, 0, 1},
	)
}

// Perspective creates a perspective projection matrix.
// fovDeg is the vertical field of view in degrees, aspect is width/height.
// The resulting clip w is -z, the distance in front of the viewer.
func Perspective(fovDeg, aspect, near, far float64) Matrix {
	f := 1.0 / math.Tan(Radians(fovDeg)/2)
	nf := 1.0 / (near - far)

	return FromRows(
		[]float64{f / aspect, 0, 0, 0},
		[]float64{0, f, 0, 0},
		[]float64{0, 0, (far + near) * nf, 2 * far * near * nf},
		[]float64{0, 0, -1, 0},
	)
}
