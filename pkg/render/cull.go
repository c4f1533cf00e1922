package render

import "github.com/taigrr/cubes/pkg/math3d"

// FaceNormal returns the unit normal of a counter-clockwise triangle.
// Degenerate triangles yield the zero vector.
func FaceNormal(v0, v1, v2 math3d.Vec3) math3d.Vec3 {
	return v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
}

// Facing reports whether a camera-space triangle with the given normal
// faces the camera: the dot product of the normal and the direction from
// v0 to the eye must exceed threshold.
func Facing(normal, v0 math3d.Vec3, threshold float64) bool {
	return normal.Dot(v0.Negate()) > threshold
}
