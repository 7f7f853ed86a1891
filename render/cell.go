package render

import (
	"fmt"
	"math"

	"github.com/ifilot/gotessel/field"
	"github.com/ifilot/gotessel/vec/conv"
	"github.com/ifilot/gotessel/vec/v3"
	"github.com/ifilot/gotessel/vec/v3i"
)

// epsT is the tolerance on the value difference |f(B)-f(A)| along an edge
// below which t falls back to the stable midpoint value, per section 4.2
// step 2.
const epsT = 1e-12

// extractionContext bundles everything needed to extract one cell, shared
// read-only across all workers.
type extractionContext struct {
	field field.Field
	basis field.Basis
	invT  [9]float64
	iso   float64
}

// cellCorner returns the lattice-index coordinates of corner c of cell
// (i,j,k).
func cellCorner(i, j, k, c int) (int, int, int) {
	o := cornerOffset[c]
	return i + o[0], j + o[1], k + o[2]
}

// config computes the 8-bit configuration index of cell (i,j,k): bit c is
// set iff corner c's value is strictly less than iso (the "inside"
// predicate, section 3).
func (ctx *extractionContext) config(i, j, k int) (cfg int, err error) {
	for c := 0; c < 8; c++ {
		x, y, z := cellCorner(i, j, k, c)
		v := ctx.field.At(x, y, z)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: cell (%d,%d,%d)", ErrNaNCell, i, j, k)
		}
		if v < ctx.iso {
			cfg |= 1 << uint(c)
		}
	}
	return cfg, nil
}

// edgeT computes the interpolation parameter along an edge from value fa to
// fb, with the stable fallback of section 4.2 step 2.
func edgeT(fa, fb, iso float64) float64 {
	d := fb - fa
	if math.Abs(d) < epsT {
		return 0.5
	}
	t := (iso - fa) / d
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// edgeVertex computes the position (lattice then Cartesian) and normal of
// the active edge e of cell (i,j,k). The owner-cell path calls it with owner
// coordinates (see dedup.go); the spatial path calls it with the cell being
// visited. It is a pure function of (ctx, i, j, k, e), so it can be safely
// recomputed by any worker regardless of which cell originally discovered
// the edge.
func (ctx *extractionContext) edgeVertex(i, j, k, e int) (pos, normal v3.Vec, flagged bool) {
	ca, cb := edgeCorners[e][0], edgeCorners[e][1]
	ia, ja, ka := cellCorner(i, j, k, ca)
	ib, jb, kb := cellCorner(i, j, k, cb)

	fa := ctx.field.At(ia, ja, ka)
	fb := ctx.field.At(ib, jb, kb)
	t := edgeT(fa, fb, ctx.iso)

	latA := conv.V3iToV3(v3i.Vec{X: ia, Y: ja, Z: ka})
	latB := conv.V3iToV3(v3i.Vec{X: ib, Y: jb, Z: kb})
	pos = ctx.basis.CartesianOf(latA.Lerp(latB, t), ctx.field.Dims)

	ga := cartesianGradient(ctx.field, ctx.invT, ia, ja, ka)
	gb := cartesianGradient(ctx.field, ctx.invT, ib, jb, kb)
	normal, flagged = interpolateNormal(ga, gb, t)
	return pos, normal, flagged
}
