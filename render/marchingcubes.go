// Package render implements the marching-cubes core (case tables, cell
// extraction, gradient sampling, vertex deduplication, and the extraction
// driver) plus mesh serializers. It takes its package name from the render
// package in github.com/deadsy/sdfx, but works on a pre-sampled lattice
// field rather than a continuous SDF: its entry point is Extract, which
// returns an indexed Mesh. It has no NewMarchingCubesUniform or ToTriangles
// equivalent.
package render

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/ifilot/gotessel/field"
	"github.com/ifilot/gotessel/vec/v3"
	"github.com/ifilot/gotessel/vec/v3i"
)

// Extract runs marching cubes over f using basis to map lattice indices to
// Cartesian space and iso as the isovalue, per sections 4 and 6.1. It
// validates iso and basis; field-level validation (dimensions, size,
// finiteness) is the caller's responsibility via field.New.
func Extract(f field.Field, basis field.Basis, iso float64, opts Options) (Mesh, error) {
	if math.IsNaN(iso) || math.IsInf(iso, 0) {
		return Mesh{}, fmt.Errorf("%w: isovalue=%v", field.ErrNonFiniteInput, iso)
	}
	invT, err := basis.InverseTranspose()
	if err != nil {
		return Mesh{}, err
	}
	ctx := &extractionContext{field: f, basis: basis, invT: invT, iso: iso}

	if opts.Dedup == DedupSpatial {
		return extractSpatial(ctx, opts)
	}
	return extractOwnerCell(ctx, opts)
}

// workerResult is one k-slab worker's local vertex table and triangle list
// (triangles reference vt-local indices, rewritten to global indices by the
// merge pass in extractOwnerCell).
type workerResult struct {
	vt   *vertexTable
	tris [][3]int
}

// sweepSlab extracts cells with k in [kStart, kEnd), in the canonical
// lexicographic order of section 4.5 (k outermost, j, i innermost).
func sweepSlab(ctx *extractionContext, kStart, kEnd int) (*workerResult, error) {
	dims := ctx.field.Dims
	vt := newVertexTable()
	var tris [][3]int

	for k := kStart; k < kEnd; k++ {
		for j := 0; j < dims.Y-1; j++ {
			for i := 0; i < dims.X-1; i++ {
				cfg, err := ctx.config(i, j, k)
				if err != nil {
					return nil, err
				}
				if cfg == 0 || cfg == 255 {
					continue
				}

				mask := edgeTable[cfg]
				var localEdge [12]int
				for e := 0; e < 12; e++ {
					if mask&(1<<uint(e)) == 0 {
						continue
					}
					key := ownerOf(i, j, k, e, dims)
					localEdge[e] = vt.getOrCreate(key, func() (v3.Vec, v3.Vec) {
						pos, normal, _ := ctx.edgeVertex(key.I, key.J, key.K, key.E)
						return pos, normal
					})
				}

				row := triTable[cfg]
				for t := 0; t+2 < len(row) && row[t] >= 0; t += 3 {
					a := localEdge[row[t]]
					b := localEdge[row[t+1]]
					c := localEdge[row[t+2]]
					if degenerate(vt, a, b, c) {
						continue
					}
					tris = append(tris, [3]int{a, c, b}) // reversed winding, see tables.go
				}
			}
		}
	}
	return &workerResult{vt: vt, tris: tris}, nil
}

// degenerate reports whether triangle (a,b,c) should be dropped: either two
// local indices coincide, or (section 4.2's "coincided at a corner"
// edge case) two distinct owner edges happened to resolve to the same
// Cartesian position.
func degenerate(vt *vertexTable, a, b, c int) bool {
	if a == b || b == c || a == c {
		return true
	}
	pa, pb, pc := vt.position(a), vt.position(b), vt.position(c)
	return pa == pb || pb == pc || pa == pc
}

// slabBounds splits [0, n) into count contiguous, near-equal ranges.
func slabBounds(n, count int) []int {
	bounds := make([]int, count+1)
	base, rem := n/count, n%count
	pos := 0
	for w := 0; w < count; w++ {
		bounds[w] = pos
		size := base
		if w < rem {
			size++
		}
		pos += size
	}
	bounds[count] = n
	return bounds
}

// extractOwnerCell is the default, reference extraction path: owner-cell
// canonicalized dedup, k-slab worker pool, deterministic serial merge.
func extractOwnerCell(ctx *extractionContext, opts Options) (Mesh, error) {
	dims := ctx.field.Dims
	nCellsK := dims.Z - 1

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > nCellsK {
		workers = nCellsK
	}
	if workers < 1 {
		workers = 1
	}

	bounds := slabBounds(nCellsK, workers)
	results := make([]*workerResult, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			results[w], errs[w] = sweepSlab(ctx, bounds[w], bounds[w+1])
		}(w)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return Mesh{}, err
		}
	}

	global := make(map[ownerKey]int)
	var positions, normals []float64
	localToGlobal := make([][]int, workers)

	for w, res := range results {
		localToGlobal[w] = make([]int, len(res.vt.keys))
		for local, key := range res.vt.keys {
			gIdx, ok := global[key]
			if !ok {
				gIdx = len(positions) / 3
				o := 3 * local
				positions = append(positions, res.vt.positions[o], res.vt.positions[o+1], res.vt.positions[o+2])
				normals = append(normals, res.vt.normals[o], res.vt.normals[o+1], res.vt.normals[o+2])
				global[key] = gIdx
			}
			localToGlobal[w][local] = gIdx
		}
	}

	var indices []uint32
	for w, res := range results {
		for _, tri := range res.tris {
			indices = append(indices,
				uint32(localToGlobal[w][tri[0]]),
				uint32(localToGlobal[w][tri[1]]),
				uint32(localToGlobal[w][tri[2]]),
			)
		}
	}

	return Mesh{Positions: positions, Normals: normals, Indices: indices}, nil
}

// extractSpatial is the rtree-backed epsilon-merge alternative (section
// 4.4, DESIGN.md §"render (spatial dedup variant)"). It runs single
// threaded: correctness of the spatial merge depends on every insertion
// being visible to every query, which a sharded worker pool would break.
func extractSpatial(ctx *extractionContext, opts Options) (Mesh, error) {
	dims := ctx.field.Dims
	tol := opts.SpatialTolerance
	if tol <= 0 {
		tol = maxSpacing(ctx.basis, dims) * 1e-6
	}
	ded := newDedupSpatial(tol)

	var indices []uint32
	for k := 0; k < dims.Z-1; k++ {
		for j := 0; j < dims.Y-1; j++ {
			for i := 0; i < dims.X-1; i++ {
				cfg, err := ctx.config(i, j, k)
				if err != nil {
					return Mesh{}, err
				}
				if cfg == 0 || cfg == 255 {
					continue
				}

				mask := edgeTable[cfg]
				var localEdge [12]int
				for e := 0; e < 12; e++ {
					if mask&(1<<uint(e)) == 0 {
						continue
					}
					pos, normal, _ := ctx.edgeVertex(i, j, k, e)
					localEdge[e] = ded.getOrCreate(pos, normal)
				}

				row := triTable[cfg]
				for t := 0; t+2 < len(row) && row[t] >= 0; t += 3 {
					a, b, c := localEdge[row[t]], localEdge[row[t+1]], localEdge[row[t+2]]
					if a == b || b == c || a == c {
						continue
					}
					indices = append(indices, uint32(a), uint32(c), uint32(b)) // reversed winding, see tables.go
				}
			}
		}
	}
	return Mesh{Positions: ded.positions, Normals: ded.normals, Indices: indices}, nil
}

// maxSpacing returns the largest per-axis Cartesian cell spacing, used as
// the basis for the default spatial dedup tolerance in section 4.4.
func maxSpacing(basis field.Basis, dims v3i.Vec) float64 {
	axes := [3]v3.Vec{{X: 1}, {Y: 1}, {Z: 1}}
	ns := [3]int{dims.X, dims.Y, dims.Z}
	max := 0.0
	for a := 0; a < 3; a++ {
		v := basis.Apply(axes[a])
		if ns[a] > 1 {
			v = v.DivScalar(float64(ns[a] - 1))
		}
		if l := v.Length(); l > max {
			max = l
		}
	}
	return max
}
