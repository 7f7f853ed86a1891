// Package field holds the scalar-field and lattice-basis types consumed by
// the marching-cubes extractor, plus validation and the central-difference
// gradient estimator. It is the discrete-lattice analogue of a continuous
// SDF3 evaluate callback.
package field

import (
	"fmt"
	"math"

	"github.com/ifilot/gotessel/vec/v3"
	"github.com/ifilot/gotessel/vec/v3i"
)

// Field is an immutable, flat scalar sample grid. Data is laid out with X
// fastest-varying and Z slowest-varying, matching section 3 of the spec.
type Field struct {
	Data []float64
	Dims v3i.Vec
}

// New validates dims and data and returns a Field, or one of
// ErrInvalidDimensions / ErrSizeMismatch / ErrNonFiniteInput.
func New(data []float64, dims [3]int) (Field, error) {
	for _, n := range dims {
		if n < 2 {
			return Field{}, fmt.Errorf("%w: dims=%v", ErrInvalidDimensions, dims)
		}
	}
	d := v3i.Vec{X: dims[0], Y: dims[1], Z: dims[2]}
	if len(data) != d.Volume() {
		return Field{}, fmt.Errorf("%w: len(field)=%d want %d", ErrSizeMismatch, len(data), d.Volume())
	}
	for idx, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Field{}, fmt.Errorf("%w: field[%d]=%v", ErrNonFiniteInput, idx, v)
		}
	}
	return Field{Data: data, Dims: d}, nil
}

// At returns the sample value at lattice index (x, y, z). The caller must
// ensure the index is in bounds; this is a hot path called per cell corner.
func (f Field) At(x, y, z int) float64 {
	return f.Data[f.Dims.Index(x, y, z)]
}

// clampIndex restricts i to [0, n-1], used to implement one-sided
// differences at boundary samples (section 4.3).
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

// Gradient returns the central-difference gradient of the field at lattice
// index (x, y, z), in lattice-index space (not yet corrected for the
// lattice basis — see field.Basis.InverseTranspose / render's gradient
// sampler for the Cartesian-space transform). Boundary samples fall back to
// one-sided differences, per section 4.3.
func (f Field) Gradient(x, y, z int) v3.Vec {
	gx := f.partial(x, y, z, 0)
	gy := f.partial(x, y, z, 1)
	gz := f.partial(x, y, z, 2)
	return v3.Vec{X: gx, Y: gy, Z: gz}
}

// partial computes the directional derivative along axis (0=x, 1=y, 2=z),
// using a central difference in the interior and a one-sided difference at
// either boundary.
func (f Field) partial(x, y, z, axis int) float64 {
	n := [3]int{f.Dims.X, f.Dims.Y, f.Dims.Z}[axis]
	idx := [3]int{x, y, z}[axis]

	sample := func(offset int) float64 {
		i, j, k := x, y, z
		v := clampIndex(idx+offset, n)
		switch axis {
		case 0:
			i = v
		case 1:
			j = v
		case 2:
			k = v
		}
		return f.At(i, j, k)
	}

	switch {
	case idx <= 0:
		return sample(1) - sample(0)
	case idx >= n-1:
		return sample(0) - sample(-1)
	default:
		return (sample(1) - sample(-1)) / 2
	}
}
