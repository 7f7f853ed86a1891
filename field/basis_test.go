package field_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ifilot/gotessel/field"
	"github.com/ifilot/gotessel/vec/v3"
	"github.com/ifilot/gotessel/vec/v3i"
)

func identityBasis(t *testing.T) field.Basis {
	t.Helper()
	b, err := field.NewBasis([9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	require.NoError(t, err)
	return b
}

func TestNewBasisRejectsNonFinite(t *testing.T) {
	m := [9]float64{1, 0, 0, 0, 1, 0, 0, 0, math.NaN()}
	_, err := field.NewBasis(m)
	require.ErrorIs(t, err, field.ErrNonFiniteInput)
}

func TestNewBasisRejectsSingular(t *testing.T) {
	m := [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 0}
	_, err := field.NewBasis(m)
	require.ErrorIs(t, err, field.ErrSingularBasis)
}

func TestIdentityBasisApplyAndDet(t *testing.T) {
	b := identityBasis(t)
	v := v3.Vec{X: 1, Y: 2, Z: 3}
	require.Equal(t, v, b.Apply(v))
	require.InDelta(t, 1.0, b.Det(), 1e-12)
}

func TestInverseAndInverseTransposeOfIdentity(t *testing.T) {
	b := identityBasis(t)

	inv, err := b.Inverse()
	require.NoError(t, err)
	require.Equal(t, [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}, inv)

	invT, err := b.InverseTranspose()
	require.NoError(t, err)
	require.Equal(t, [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}, invT)
}

func TestInverseOfScaledBasis(t *testing.T) {
	b, err := field.NewBasis([9]float64{2, 0, 0, 0, 4, 0, 0, 0, 8})
	require.NoError(t, err)

	inv, err := b.Inverse()
	require.NoError(t, err)
	require.InDelta(t, 0.5, inv[0], 1e-9)
	require.InDelta(t, 0.25, inv[4], 1e-9)
	require.InDelta(t, 0.125, inv[8], 1e-9)
}

func TestCartesianOfOpenGridConvention(t *testing.T) {
	b := identityBasis(t)
	dims := v3i.Vec{X: 3, Y: 3, Z: 3}

	// lattice index (2,0,0) is the last sample along X: Cartesian x = 2/(3-1) = 1.
	p := b.CartesianOf(v3.Vec{X: 2, Y: 0, Z: 0}, dims)
	require.InDelta(t, 1.0, p.X, 1e-12)
	require.InDelta(t, 0.0, p.Y, 1e-12)
}

func TestCartesianOfDegenerateAxisIsZero(t *testing.T) {
	b := identityBasis(t)
	dims := v3i.Vec{X: 1, Y: 3, Z: 3}
	p := b.CartesianOf(v3.Vec{X: 0, Y: 0, Z: 0}, dims)
	require.Equal(t, 0.0, p.X)
}
