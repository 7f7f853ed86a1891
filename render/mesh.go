package render

import "github.com/ifilot/gotessel/vec/v3"

// Mesh is the output of extraction: three flat, triplet-major arrays, which
// is also the layout both the PLY and STL writers consume directly.
type Mesh struct {
	Positions []float64 // len == 3*V
	Normals   []float64 // len == 3*V, each (x,y,z) triplet unit length
	Indices   []uint32  // len == 3*T
}

// VertexCount returns V, the number of distinct vertices.
func (m Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns T, the number of triangles.
func (m Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Position returns vertex i's position.
func (m Mesh) Position(i uint32) v3.Vec {
	o := 3 * i
	return v3.Vec{X: m.Positions[o], Y: m.Positions[o+1], Z: m.Positions[o+2]}
}

// Normal returns vertex i's normal.
func (m Mesh) Normal(i uint32) v3.Vec {
	o := 3 * i
	return v3.Vec{X: m.Normals[o], Y: m.Normals[o+1], Z: m.Normals[o+2]}
}

// Triangle returns the three vertex indices of triangle t.
func (m Mesh) Triangle(t int) (a, b, c uint32) {
	o := 3 * t
	return m.Indices[o], m.Indices[o+1], m.Indices[o+2]
}

// FaceNormal computes the outward face normal of triangle t as the average
// of its three vertex normals, renormalized, per section 6.3.
func (m Mesh) FaceNormal(t int) v3.Vec {
	a, b, c := m.Triangle(t)
	avg := m.Normal(a).Add(m.Normal(b)).Add(m.Normal(c)).DivScalar(3)
	if avg.Length() == 0 {
		return avg
	}
	return avg.Normalize()
}
