package render

// DedupStrategy selects how shared-edge vertices are collapsed, per section
// 4.4 and DESIGN.md's resolution of the architecture-dependent-counts open
// question.
type DedupStrategy int

const (
	// DedupOwnerCell is the reference strategy: exact canonicalization by
	// (owner cell, owner edge), giving stable counts independent of
	// floating-point rounding or worker count. Default.
	DedupOwnerCell DedupStrategy = iota

	// DedupSpatial is the epsilon-merge alternative sanctioned by section
	// 4.4, backed by an R-tree. Vertex counts may differ by a few percent
	// from DedupOwnerCell on the same input (section 8 scenario 2's V
	// ranges), but triangle counts remain exact.
	DedupSpatial
)

// Options configures an extraction run. The zero value is a valid default:
// owner-cell dedup, worker count equal to GOMAXPROCS.
type Options struct {
	// Workers caps the number of goroutines used to sweep k-slabs. <= 0
	// means runtime.GOMAXPROCS(0).
	Workers int

	// Dedup selects the vertex deduplication strategy.
	Dedup DedupStrategy

	// SpatialTolerance overrides the merge distance used by DedupSpatial.
	// <= 0 means max(spacing) * 1e-6, per section 4.4.
	SpatialTolerance float64
}
