// Package tessel implements gotessel, version 1.1.0 (see internal/version).
//
// It extracts a triangle mesh isosurface from a pre-sampled scalar field on
// a regular lattice, using the marching cubes algorithm: case-table driven
// per-cell triangulation, owner-cell vertex deduplication, and analytic
// gradient-based normal estimation. Field synthesis, mesh smoothing, and
// language bindings are explicitly out of scope; see SPEC_FULL.md.
package tessel

import (
	"github.com/ifilot/gotessel/field"
	"github.com/ifilot/gotessel/render"
	"github.com/ifilot/gotessel/vec/v3i"
)

// Re-exported sentinel errors, so callers need only import this package to
// use errors.Is against the full error set of section 6.4.
var (
	ErrInvalidDimensions = field.ErrInvalidDimensions
	ErrSizeMismatch      = field.ErrSizeMismatch
	ErrSingularBasis     = field.ErrSingularBasis
	ErrNonFiniteInput    = field.ErrNonFiniteInput
	ErrIO                = render.ErrIO
)

// Options configures an extraction run. It is a thin re-export of
// render.Options so callers of this package's single operation never need
// to import the render package directly for the common path.
type Options = render.Options

// DedupStrategy selects how shared-edge vertices are collapsed.
type DedupStrategy = render.DedupStrategy

const (
	DedupOwnerCell = render.DedupOwnerCell
	DedupSpatial   = render.DedupSpatial
)

// Mesh is the output of MarchingCubes: flat, triplet-major position/normal
// arrays and a flat triangle index array.
type Mesh = render.Mesh

// MarchingCubes is the single canonical operation of section 6.1:
// `marching_cubes(field, dims, basis, isovalue) → (positions, normals,
// indices)`. data is the flat scalar field (x fastest, z slowest, per
// section 3); dims is (Nx, Ny, Nz), each >= 2; basis is the row-major 3x3
// lattice-to-Cartesian matrix of section 6.1; iso is the isovalue.
//
// No dims-reversal flag is exposed (see DESIGN.md's resolution of the
// corresponding Open Question): callers passing (Nz, Ny, Nx) must reverse
// their own data, since silently guessing axis order would make extraction
// results depend on an unstated convention.
func MarchingCubes(data []float64, dims [3]int, basis [9]float64, iso float64, opts Options) (Mesh, error) {
	f, err := field.New(data, dims)
	if err != nil {
		return Mesh{}, err
	}
	b, err := field.NewBasis(basis)
	if err != nil {
		return Mesh{}, err
	}
	return render.Extract(f, b, iso, opts)
}

// Dims packs (Nx, Ny, Nz) into the v3i.Vec used internally by field and
// render; exposed for callers that want to validate dims before calling
// MarchingCubes.
func Dims(nx, ny, nz int) v3i.Vec {
	return v3i.Vec{X: nx, Y: ny, Z: nz}
}

// Field is the validated scalar field type consumed by the lower-level
// render package; most callers only need MarchingCubes, but the debug
// cross-section renderer (render.WriteCrossSectionSVG) and other
// field-level tooling operate on it directly.
type Field = field.Field

// Basis is the validated lattice-to-Cartesian basis type.
type Basis = field.Basis

// NewFieldAndBasis validates data/dims/basis the same way MarchingCubes
// does, without running extraction. It exists for callers of the debug
// cross-section path (render.WriteCrossSectionSVG), which needs a Field and
// Basis but produces no mesh.
func NewFieldAndBasis(data []float64, dims [3]int, basis [9]float64) (Field, Basis, error) {
	f, err := field.New(data, dims)
	if err != nil {
		return Field{}, Basis{}, err
	}
	b, err := field.NewBasis(basis)
	if err != nil {
		return Field{}, Basis{}, err
	}
	return f, b, nil
}
