package render

import (
	"github.com/ifilot/gotessel/field"
	"github.com/ifilot/gotessel/vec/v3"
)

// epsGrad is the gradient-magnitude threshold below which the fallback
// normal kicks in, per section 4.3.
const epsGrad = 1e-12

// applyMat applies a row-major 3x3 matrix to v.
func applyMat(m [9]float64, v v3.Vec) v3.Vec {
	return v3.Vec{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		Y: m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		Z: m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// cartesianGradient computes the spatial (Cartesian) gradient of f at
// lattice index (x,y,z). The lattice->Cartesian map is x = B.S.idx with
// S = diag(1/(Nx-1), 1/(Ny-1), 1/(Nz-1)) (section 6.1), so the Jacobian is
// J = B.S and the true spatial gradient is J^-T . grad_idx(f) =
// B^-T . S^-1 . grad_idx(f): the index-space gradient is first scaled by
// diag(Nx-1,Ny-1,Nz-1) and then invT is applied to the result.
// invT alone (B^-T) is only correct when all three axis counts are equal;
// the per-axis (N-1) factor below corrects the general rectangular case.
// Gradients are evaluated at the two endpoint corners of an active edge when
// that edge's vertex is first created; there is no cache, so a corner shared
// by several active edges is recomputed for each of them, which is cheap
// relative to everything else per cell.
func cartesianGradient(f field.Field, invT [9]float64, x, y, z int) v3.Vec {
	g := f.Gradient(x, y, z)
	return applyMat(invT, v3.Vec{
		X: g.X * float64(f.Dims.X-1),
		Y: g.Y * float64(f.Dims.Y-1),
		Z: g.Z * float64(f.Dims.Z-1),
	})
}

// fallbackNormal is used when an interpolated gradient is too small to
// normalize reliably (section 4.3: "pathologically flat region").
var fallbackNormal = v3.Vec{X: 0, Y: 0, Z: 1}

// interpolateNormal linearly interpolates two corner gradients by t and
// renormalizes, falling back to fallbackNormal (and reporting so via the
// second return value) when the interpolated magnitude is too small.
func interpolateNormal(ga, gb v3.Vec, t float64) (v3.Vec, bool) {
	gi := ga.Lerp(gb, t)
	if gi.Length() < epsGrad {
		return fallbackNormal, true
	}
	return gi.Normalize(), false
}
