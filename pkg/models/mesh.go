// Package models provides the mesh entities drawn by the cube renderer.
package models

import (
	"image/color"

	"github.com/taigrr/cubes/pkg/math3d"
)

// Mesh is a triangle mesh with a model transform split into scale,
// rotation and translation. Vertices and faces are fixed at construction;
// the three matrices are replaced wholesale by the setters and composed at
// draw time in the order scale, rotate, translate.
type Mesh struct {
	Name  string
	Color color.RGBA

	vertices []math3d.Vec3
	faces    [][3]int

	scale       math3d.Matrix
	rotation    math3d.Matrix
	translation math3d.Matrix
}

var cubeVertices = [8]math3d.Vec3{
	{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1},
	{X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1},
	{X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1},
}

// Counter-clockwise seen from outside, so cross(v1-v0, v2-v0) points out.
var cubeFaces = [12][3]int{
	{0, 2, 1}, {0, 3, 2}, // -Z
	{1, 6, 5}, {6, 1, 2}, // +X
	{5, 7, 4}, {5, 6, 7}, // +Z
	{4, 3, 0}, {4, 7, 3}, // -X
	{3, 6, 2}, {3, 7, 6}, // +Y
	{4, 1, 5}, {4, 0, 1}, // -Y
}

// NewMesh creates a mesh from vertices and triangle indices with identity
// transforms. The slices are copied.
func NewMesh(name string, vertices []math3d.Vec3, faces [][3]int) *Mesh {
	m := &Mesh{
		Name:        name,
		Color:       color.RGBA{255, 255, 255, 255},
		vertices:    make([]math3d.Vec3, len(vertices)),
		faces:       make([][3]int, len(faces)),
		scale:       math3d.Identity(),
		rotation:    math3d.Identity(),
		translation: math3d.Identity(),
	}
	copy(m.vertices, vertices)
	copy(m.faces, faces)
	return m
}

// NewCube creates the axis-aligned cube spanning [-1, 1] on every axis.
func NewCube() *Mesh {
	return NewMesh("cube", cubeVertices[:], cubeFaces[:])
}

// SetScale replaces the scale matrix.
func (m *Mesh) SetScale(s math3d.Matrix) { m.scale = s }

// SetRotation replaces the rotation matrix.
func (m *Mesh) SetRotation(r math3d.Matrix) { m.rotation = r }

// SetTranslation replaces the translation matrix.
func (m *Mesh) SetTranslation(t math3d.Matrix) { m.translation = t }

func (m *Mesh) ScaleMatrix() math3d.Matrix       { return m.scale }
func (m *Mesh) RotationMatrix() math3d.Matrix    { return m.rotation }
func (m *Mesh) TranslationMatrix() math3d.Matrix { return m.translation }

// ModelMatrix returns translation * rotation * scale.
func (m *Mesh) ModelMatrix() math3d.Matrix {
	return m.translation.Mul(m.rotation).Mul(m.scale)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.vertices)
}

// GetVertex returns the model-space position of vertex i.
// Implements render.MeshRenderer interface.
func (m *Mesh) GetVertex(i int) math3d.Vec3 {
	return m.vertices[i]
}

// GetFace returns the vertex indices for face i.
// Implements render.MeshRenderer interface.
func (m *Mesh) GetFace(i int) [3]int {
	return m.faces[i]
}

// BaseColor returns the unlit surface color.
// Implements render.MeshRenderer interface.
func (m *Mesh) BaseColor() color.RGBA {
	return m.Color
}

// WorldVertices returns every vertex with the model transform applied.
func (m *Mesh) WorldVertices() []math3d.Vec3 {
	model := m.ModelMatrix()
	out := make([]math3d.Vec3, len(m.vertices))
	for i, v := range m.vertices {
		out[i] = model.Mul(math3d.Point(v)).Vec3()
	}
	return out
}
