package models

import (
	"errors"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/cubes/pkg/math3d"
)

// ErrNoMeshes is returned when an export is requested for an empty scene.
var ErrNoMeshes = errors.New("no meshes to export")

// GLTFExporter writes meshes to a binary glTF document.
type GLTFExporter struct {
	// Options
	BakeTransforms bool // write world-space vertices instead of model space
	FlatNormals    bool // split vertices per face so each face carries its own normal
}

// NewGLTFExporter creates an exporter with default options.
func NewGLTFExporter() *GLTFExporter {
	return &GLTFExporter{
		BakeTransforms: true,
		FlatNormals:    true,
	}
}

// SaveGLB writes meshes to path as a .glb file using the default exporter.
func SaveGLB(path string, meshes ...*Mesh) error {
	return NewGLTFExporter().Save(path, meshes...)
}

// Save writes meshes to path as a .glb file.
func (e *GLTFExporter) Save(path string, meshes ...*Mesh) error {
	doc, err := e.Document(meshes...)
	if err != nil {
		return err
	}
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("save glb: %w", err)
	}
	return nil
}

// Document builds the in-memory glTF document: one node, mesh and
// material per input mesh.
func (e *GLTFExporter) Document(meshes ...*Mesh) (*gltf.Document, error) {
	if len(meshes) == 0 {
		return nil, ErrNoMeshes
	}

	doc := gltf.NewDocument()
	for i, m := range meshes {
		if err := e.addMesh(doc, m); err != nil {
			return nil, fmt.Errorf("mesh %d %q: %w", i, m.Name, err)
		}
	}
	return doc, nil
}

func (e *GLTFExporter) addMesh(doc *gltf.Document, m *Mesh) error {
	if m.TriangleCount() == 0 {
		return fmt.Errorf("mesh has no triangles")
	}

	verts := m.vertices
	if e.BakeTransforms {
		verts = m.WorldVertices()
	}

	var (
		positions [][3]float32
		normals   [][3]float32
		indices   []uint16
	)

	if e.FlatNormals {
		for _, f := range m.faces {
			v0, v1, v2 := verts[f[0]], verts[f[1]], verts[f[2]]
			n := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
			nf := [3]float32{float32(n.X), float32(n.Y), float32(n.Z)}
			for _, v := range [3]int{f[0], f[1], f[2]} {
				p := verts[v]
				indices = append(indices, uint16(len(positions)))
				positions = append(positions, [3]float32{float32(p.X), float32(p.Y), float32(p.Z)})
				normals = append(normals, nf)
			}
		}
	} else {
		for _, p := range verts {
			positions = append(positions, [3]float32{float32(p.X), float32(p.Y), float32(p.Z)})
		}
		for _, f := range m.faces {
			indices = append(indices, uint16(f[0]), uint16(f[1]), uint16(f[2]))
		}
	}

	attrs := map[string]int{
		gltf.POSITION: modeler.WritePosition(doc, positions),
	}
	if normals != nil {
		attrs[gltf.NORMAL] = modeler.WriteNormal(doc, normals)
	}

	c := m.Color
	doc.Materials = append(doc.Materials, &gltf.Material{
		Name: m.Name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{
				float64(c.R) / 255,
				float64(c.G) / 255,
				float64(c.B) / 255,
				float64(c.A) / 255,
			},
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(1),
		},
	})

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: m.Name,
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(modeler.WriteIndices(doc, indices)),
			Attributes: attrs,
			Material:   gltf.Index(len(doc.Materials) - 1),
		}},
	})

	node := &gltf.Node{
		Name: m.Name,
		Mesh: gltf.Index(len(doc.Meshes) - 1),
	}
	if !e.BakeTransforms {
		node.Matrix = columnMajor(m.ModelMatrix())
	}
	doc.Nodes = append(doc.Nodes, node)
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	return nil
}

// columnMajor flattens a 4x4 matrix in glTF order.
func columnMajor(m math3d.Matrix) [16]float64 {
	var out [16]float64
	copy(out[:], m.Transpose().Data)
	return out
}
