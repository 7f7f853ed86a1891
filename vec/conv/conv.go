// Package conv converts between the float64 and integer 3-vector types.
package conv

import (
	"github.com/ifilot/gotessel/vec/v3"
	"github.com/ifilot/gotessel/vec/v3i"
)

// V3ToV3i truncates a float64 vector to an integer vector.
func V3ToV3i(v v3.Vec) v3i.Vec {
	return v3i.Vec{X: int(v.X), Y: int(v.Y), Z: int(v.Z)}
}

// V3iToV3 widens an integer vector to a float64 vector.
func V3iToV3(v v3i.Vec) v3.Vec {
	return v3.Vec{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}
