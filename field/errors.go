package field

import "errors"

// Sentinel errors returned by validation and mid-run pathology checks. All
// are wrapped with additional context via fmt.Errorf("%w: ...", ...) at the
// call site, so callers should compare with errors.Is rather than ==.
var (
	// ErrInvalidDimensions is returned when dims has length != 3 or any
	// axis length is < 2.
	ErrInvalidDimensions = errors.New("tessel: invalid dimensions")

	// ErrSizeMismatch is returned when len(field) != Nx*Ny*Nz.
	ErrSizeMismatch = errors.New("tessel: field length does not match dimensions")

	// ErrSingularBasis is returned when |det(B)| < 1e-30.
	ErrSingularBasis = errors.New("tessel: singular lattice basis")

	// ErrNonFiniteInput is returned when a field sample, basis entry, or
	// the isovalue is NaN or +-Inf.
	ErrNonFiniteInput = errors.New("tessel: non-finite input")
)
