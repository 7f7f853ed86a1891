package field

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/ifilot/gotessel/vec/v3"
	"github.com/ifilot/gotessel/vec/v3i"
)

// singularDet is the determinant magnitude below which a basis is rejected,
// per spec section 6.4 (SingularBasis).
const singularDet = 1e-30

// Basis is the 3x3 lattice basis matrix, stored row-major as in section 6.1:
// the Cartesian position of lattice index (i,j,k) is
// B . (i/(Nx-1), j/(Ny-1), k/(Nz-1))^T.
type Basis struct {
	M [9]float64
}

// NewBasis builds a Basis from 9 row-major reals, validating finiteness and
// non-singularity.
func NewBasis(m [9]float64) (Basis, error) {
	b := Basis{M: m}
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Basis{}, fmt.Errorf("%w: basis entry %v", ErrNonFiniteInput, v)
		}
	}
	if d := math.Abs(b.det()); d < singularDet {
		return Basis{}, fmt.Errorf("%w: |det|=%g", ErrSingularBasis, d)
	}
	return b, nil
}

func (b Basis) dense() *mat.Dense {
	return mat.NewDense(3, 3, b.M[:])
}

func (b Basis) det() float64 {
	return mat.Det(b.dense())
}

// Det returns the determinant of the basis matrix.
func (b Basis) Det() float64 {
	return b.det()
}

// Inverse returns B^-1 as a row-major 3x3 array.
func (b Basis) Inverse() ([9]float64, error) {
	var inv mat.Dense
	if err := inv.Inverse(b.dense()); err != nil {
		return [9]float64{}, fmt.Errorf("%w: %v", ErrSingularBasis, err)
	}
	var out [9]float64
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r*3+c] = inv.At(r, c)
		}
	}
	return out, nil
}

// InverseTranspose returns (B^-1)^T as a row-major 3x3 array. This is the
// B-only factor of the Jacobian correction needed to transform a gradient
// computed in lattice index space into the true spatial gradient (section
// 4.3); the caller still needs to apply the per-axis (N_axis-1) factor
// contributed by the open-grid spacing, since the full Jacobian is B times
// that diagonal scaling, not B alone.
func (b Basis) InverseTranspose() ([9]float64, error) {
	inv, err := b.Inverse()
	if err != nil {
		return [9]float64{}, err
	}
	return [9]float64{
		inv[0], inv[3], inv[6],
		inv[1], inv[4], inv[7],
		inv[2], inv[5], inv[8],
	}, nil
}

// Apply computes B . v, treating v as a column vector.
func (b Basis) Apply(v v3.Vec) v3.Vec {
	m := b.M
	return v3.Vec{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		Y: m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		Z: m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// CartesianOf maps a lattice-index-space position (possibly fractional, as
// produced by edge interpolation) into Cartesian space, given the open-grid
// convention of section 3: spacing along axis i is B.e_i / (N_i - 1).
func (b Basis) CartesianOf(lat v3.Vec, dims v3i.Vec) v3.Vec {
	u := v3.Vec{
		X: divN(lat.X, dims.X),
		Y: divN(lat.Y, dims.Y),
		Z: divN(lat.Z, dims.Z),
	}
	return b.Apply(u)
}

func divN(x float64, n int) float64 {
	if n <= 1 {
		return 0
	}
	return x / float64(n-1)
}
