package render

import (
	"github.com/dhconnelly/rtreego"

	"github.com/ifilot/gotessel/vec/v3"
	"github.com/ifilot/gotessel/vec/v3i"
)

// ownerKey identifies a physical lattice edge by its canonical owner cell
// and the owner's local edge id, per section 4.4.
type ownerKey struct {
	I, J, K, E int
}

// edgeAxisPQ decodes edge id e into (axis, p, q): axis is the direction the
// edge runs (0=x, 1=y, 2=z) and (p, q) is the edge's position, in {0,1}^2,
// along the other two axes in cyclic order (axis+1, axis+2) mod 3. This
// lets ownerOf enumerate the (up to 4) cells that share a physical edge
// generically instead of hand-tabulating all 12 cases.
var edgeAxisPQ = [12][3]int{
	{0, 0, 0}, // e0
	{1, 0, 1}, // e1
	{0, 1, 0}, // e2
	{1, 0, 0}, // e3
	{0, 0, 1}, // e4
	{1, 1, 1}, // e5
	{0, 1, 1}, // e6
	{1, 1, 0}, // e7
	{2, 0, 0}, // e8
	{2, 1, 0}, // e9
	{2, 1, 1}, // e10
	{2, 0, 1}, // e11
}

// edgeFromAxisPQ is the inverse of edgeAxisPQ.
var edgeFromAxisPQ = map[[3]int]int{}

func init() {
	for e, apq := range edgeAxisPQ {
		edgeFromAxisPQ[apq] = e
	}
}

// ownerOf returns the canonical owner of edge e of cell (i,j,k): the
// numerically smallest (oi,oj,ok) tuple among all cells within dims that
// share the same physical lattice edge, together with that owner's local
// edge id. The candidate cells are enumerated through edgeAxisPQ above;
// TestOwnerOfIsSymmetricAcrossSharingCells checks section 4.4's e0 sample.
func ownerOf(i, j, k, e int, dims v3i.Vec) ownerKey {
	axis, p, q := edgeAxisPQ[e][0], edgeAxisPQ[e][1], edgeAxisPQ[e][2]
	axis1 := (axis + 1) % 3
	axis2 := (axis + 2) % 3

	coord := [3]int{i, j, k}
	cellsAlong := [3]int{dims.X - 1, dims.Y - 1, dims.Z - 1}

	base1 := coord[axis1] + p
	base2 := coord[axis2] + q

	best := ownerKey{I: -1}
	for _, c1 := range [2]int{base1 - 1, base1} {
		if c1 < 0 || c1 >= cellsAlong[axis1] {
			continue
		}
		for _, c2 := range [2]int{base2 - 1, base2} {
			if c2 < 0 || c2 >= cellsAlong[axis2] {
				continue
			}
			cand := coord
			cand[axis1] = c1
			cand[axis2] = c2
			oe := edgeFromAxisPQ[[3]int{axis, base1 - c1, base2 - c2}]
			key := ownerKey{I: cand[0], J: cand[1], K: cand[2], E: oe}
			if best.I == -1 || lessTuple(key, best) {
				best = key
			}
		}
	}
	return best
}

func lessTuple(a, b ownerKey) bool {
	if a.I != b.I {
		return a.I < b.I
	}
	if a.J != b.J {
		return a.J < b.J
	}
	return a.K < b.K
}

// vertexTable assigns a stable local index to each distinct owner-cell edge
// key, per section 4.4. It is the owner-cell canonicalization reference
// strategy; dedupSpatial below is the epsilon-merge alternative the spec
// explicitly sanctions.
type vertexTable struct {
	index     map[ownerKey]int
	keys      []ownerKey
	positions []float64
	normals   []float64
}

func newVertexTable() *vertexTable {
	return &vertexTable{index: make(map[ownerKey]int)}
}

// getOrCreate returns the local index for key, computing and appending a
// new vertex via compute only on first encounter.
func (vt *vertexTable) getOrCreate(key ownerKey, compute func() (v3.Vec, v3.Vec)) int {
	if idx, ok := vt.index[key]; ok {
		return idx
	}
	pos, normal := compute()
	idx := len(vt.positions) / 3
	vt.positions = append(vt.positions, pos.X, pos.Y, pos.Z)
	vt.normals = append(vt.normals, normal.X, normal.Y, normal.Z)
	vt.keys = append(vt.keys, key)
	vt.index[key] = idx
	return idx
}

func (vt *vertexTable) position(idx int) v3.Vec {
	o := 3 * idx
	return v3.Vec{X: vt.positions[o], Y: vt.positions[o+1], Z: vt.positions[o+2]}
}

// dedupSpatial is the rtreego-backed epsilon-merge alternative described in
// section 4.4 ("An epsilon-merge fallback ... is an acceptable
// implementation variant"). Unlike vertexTable it is not sharded per
// worker: its only caller, extractSpatial, uses it from a single goroutine,
// since correctness of the spatial merge depends on seeing every prior
// insertion. It holds no lock of its own.
type dedupSpatial struct {
	tree      *rtreego.Rtree
	tol       float64
	positions []float64
	normals   []float64
}

type spatialPoint struct {
	pos v3.Vec
	idx int
	tol float64
}

func (p *spatialPoint) Bounds() rtreego.Rect {
	r, _ := rtreego.NewRect(
		rtreego.Point{p.pos.X - p.tol, p.pos.Y - p.tol, p.pos.Z - p.tol},
		[]float64{2 * p.tol, 2 * p.tol, 2 * p.tol},
	)
	return r
}

func newDedupSpatial(tol float64) *dedupSpatial {
	if tol <= 0 {
		tol = 1e-9
	}
	return &dedupSpatial{tree: rtreego.NewTree(3, 25, 50), tol: tol}
}

// getOrCreate returns the index of the vertex at pos, merging into an
// existing vertex within tol if one is found.
func (d *dedupSpatial) getOrCreate(pos, normal v3.Vec) int {
	q, _ := rtreego.NewRect(
		rtreego.Point{pos.X - d.tol, pos.Y - d.tol, pos.Z - d.tol},
		[]float64{2 * d.tol, 2 * d.tol, 2 * d.tol},
	)
	for _, obj := range d.tree.SearchIntersect(q) {
		sp := obj.(*spatialPoint)
		if sp.pos.Sub(pos).Length() <= d.tol {
			return sp.idx
		}
	}
	idx := len(d.positions) / 3
	d.positions = append(d.positions, pos.X, pos.Y, pos.Z)
	d.normals = append(d.normals, normal.X, normal.Y, normal.Z)
	d.tree.Insert(&spatialPoint{pos: pos, idx: idx, tol: d.tol})
	return idx
}
