// Package v3i implements 3D integer vector operations, used for lattice
// indices and cell/grid dimensions.
package v3i

// Vec is a 3D integer vector.
type Vec struct {
	X, Y, Z int
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Volume returns the product of the components, i.e. the number of lattice
// samples spanned by dimensions X*Y*Z.
func (v Vec) Volume() int {
	return v.X * v.Y * v.Z
}

// Index returns the flat offset of (x, y, z) into a buffer laid out with X
// fastest-varying and Z slowest-varying, given dims v.
func (v Vec) Index(x, y, z int) int {
	return x + v.X*(y+v.Y*z)
}

// InBounds reports whether (x, y, z) is a valid sample index for dims v.
func (v Vec) InBounds(x, y, z int) bool {
	return x >= 0 && x < v.X && y >= 0 && y < v.Y && z >= 0 && z < v.Z
}
