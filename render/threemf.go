package render

import (
	"fmt"
	"io"

	"github.com/hpinc/go3mf"
)

// Write3MF serializes m as a single-object 3MF package, per section 4.8.
// This is the bonus format pulled in from the rest of the retrieval pack
// (no sdfx lineage repo touches 3MF); go3mf's own encoder handles the OPC
// container and XML payload, so this function only has to build the
// in-memory Model.
func Write3MF(w io.Writer, m Mesh) error {
	model := &go3mf.Model{}
	model.Units = go3mf.UnitMillimeter

	mesh := &go3mf.Mesh{}
	for i := 0; i < m.VertexCount(); i++ {
		p := m.Position(uint32(i))
		mesh.Vertices.Vertex = append(mesh.Vertices.Vertex, go3mf.Point3D{
			float32(p.X), float32(p.Y), float32(p.Z),
		})
	}
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		mesh.Triangles.Triangle = append(mesh.Triangles.Triangle, go3mf.Triangle{
			V1: int(a), V2: int(b), V3: int(c),
		})
	}

	obj := &go3mf.Object{ID: 1, Mesh: mesh}
	model.Resources.Objects = append(model.Resources.Objects, obj)
	model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: 1})

	enc := go3mf.NewEncoder(w)
	if err := enc.Encode(model); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}
