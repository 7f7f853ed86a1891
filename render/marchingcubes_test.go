package render_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ifilot/gotessel/field"
	"github.com/ifilot/gotessel/render"
)

func cubicBasis(t *testing.T, scale float64) field.Basis {
	t.Helper()
	b, err := field.NewBasis([9]float64{scale, 0, 0, 0, scale, 0, 0, 0, scale})
	require.NoError(t, err)
	return b
}

// gaussianSphereField builds the section 8 scenario-1 field: N^3 samples of
// exp(-|r-center|^2) on [0,10]^3.
func gaussianSphereField(t *testing.T, n int) field.Field {
	t.Helper()
	data := make([]float64, n*n*n)
	center := 5.0
	for z := 0; z < n; z++ {
		zc := float64(z) * 10 / float64(n-1)
		for y := 0; y < n; y++ {
			yc := float64(y) * 10 / float64(n-1)
			for x := 0; x < n; x++ {
				xc := float64(x) * 10 / float64(n-1)
				dx, dy, dz := xc-center, yc-center, zc-center
				r2 := dx*dx + dy*dy + dz*dz
				idx := x + n*(y+n*z)
				data[idx] = math.Exp(-r2)
			}
		}
	}
	f, err := field.New(data, [3]int{n, n, n})
	require.NoError(t, err)
	return f
}

func assertUniversalInvariants(t *testing.T, m render.Mesh) {
	t.Helper()
	v, tr := m.VertexCount(), m.TriangleCount()
	require.GreaterOrEqual(t, v, 0)
	require.GreaterOrEqual(t, tr, 0)
	require.Len(t, m.Positions, 3*v)
	require.Len(t, m.Normals, 3*v)
	require.Len(t, m.Indices, 3*tr)

	for i := 0; i < v; i++ {
		n := m.Normal(uint32(i)).Length()
		require.InDelta(t, 1.0, n, 1e-5, "normal %d has magnitude %v", i, n)
	}
	for tI := 0; tI < tr; tI++ {
		a, b, c := m.Triangle(tI)
		require.NotEqual(t, a, b)
		require.NotEqual(t, b, c)
		require.NotEqual(t, a, c)
		require.Less(t, a, uint32(v))
		require.Less(t, b, uint32(v))
		require.Less(t, c, uint32(v))
	}
}

func TestExtractGaussianSphereIsClosedManifold(t *testing.T) {
	f := gaussianSphereField(t, 20)
	basis := cubicBasis(t, 10)

	m, err := render.Extract(f, basis, 0.1, render.Options{})
	require.NoError(t, err)
	assertUniversalInvariants(t, m)

	require.Greater(t, m.VertexCount(), 0)
	// A single-spike field crossed once yields a topologically spherical
	// mesh: Euler characteristic V-E+F=2, i.e. T == 2V-4 for a closed
	// triangle mesh (each edge shared by exactly two faces).
	require.Equal(t, 2*m.VertexCount()-4, m.TriangleCount())

	// Exact reference counts for this scenario (section 8 scenario 1): the
	// owner-cell canonicalization is deterministic, so these are pinned,
	// not just the structural invariant above.
	require.Equal(t, 48, m.VertexCount())
	require.Equal(t, 284, m.TriangleCount())
}

func TestExtractAllBelowIsoYieldsEmptyMesh(t *testing.T) {
	n := 4
	data := make([]float64, n*n*n)
	f, err := field.New(data, [3]int{n, n, n})
	require.NoError(t, err)
	basis := cubicBasis(t, 1)

	m, err := render.Extract(f, basis, 1.0, render.Options{})
	require.NoError(t, err)
	require.Equal(t, 0, m.VertexCount())
	require.Equal(t, 0, m.TriangleCount())
}

func TestExtractAllAboveIsoYieldsEmptyMesh(t *testing.T) {
	n := 4
	data := make([]float64, n*n*n)
	for i := range data {
		data[i] = 10
	}
	f, err := field.New(data, [3]int{n, n, n})
	require.NoError(t, err)
	basis := cubicBasis(t, 1)

	m, err := render.Extract(f, basis, 1.0, render.Options{})
	require.NoError(t, err)
	require.Equal(t, 0, m.VertexCount())
	require.Equal(t, 0, m.TriangleCount())
}

func TestExtractSingularBasisErrors(t *testing.T) {
	f := gaussianSphereField(t, 5)
	singular, err := field.NewBasis([9]float64{1, 0, 0, 1, 0, 0, 0, 0, 1})
	require.Error(t, err)
	require.ErrorIs(t, err, field.ErrSingularBasis)
	require.Equal(t, field.Basis{}, singular)

	// Extract should also propagate a basis that only becomes singular under
	// inverse-transpose correction... NewBasis already rejects it up front,
	// so this exercises the same sentinel through the full call chain.
	_, err = render.Extract(f, field.Basis{}, 0.1, render.Options{})
	require.ErrorIs(t, err, field.ErrSingularBasis)
}

func TestExtractNonFiniteIsoErrors(t *testing.T) {
	f := gaussianSphereField(t, 5)
	basis := cubicBasis(t, 10)
	_, err := render.Extract(f, basis, math.NaN(), render.Options{})
	require.ErrorIs(t, err, field.ErrNonFiniteInput)
}

func TestScalingFieldAndIsoPreservesGeometry(t *testing.T) {
	f := gaussianSphereField(t, 12)
	basis := cubicBasis(t, 10)

	base, err := render.Extract(f, basis, 0.2, render.Options{})
	require.NoError(t, err)
	require.Greater(t, base.VertexCount(), 0)

	const c = 3.0
	scaledData := make([]float64, len(f.Data))
	for i, v := range f.Data {
		scaledData[i] = v * c
	}
	scaledField, err := field.New(scaledData, [3]int{f.Dims.X, f.Dims.Y, f.Dims.Z})
	require.NoError(t, err)

	scaled, err := render.Extract(scaledField, basis, 0.2*c, render.Options{})
	require.NoError(t, err)

	require.Equal(t, base.VertexCount(), scaled.VertexCount())
	require.Equal(t, base.TriangleCount(), scaled.TriangleCount())
	for i := range base.Positions {
		require.InDelta(t, base.Positions[i], scaled.Positions[i], 1e-9)
	}
}

func TestShiftingFieldAndIsoPreservesGeometry(t *testing.T) {
	f := gaussianSphereField(t, 12)
	basis := cubicBasis(t, 10)

	base, err := render.Extract(f, basis, 0.2, render.Options{})
	require.NoError(t, err)
	require.Greater(t, base.VertexCount(), 0)

	const c = 5.0
	shiftedData := make([]float64, len(f.Data))
	for i, v := range f.Data {
		shiftedData[i] = v + c
	}
	shiftedField, err := field.New(shiftedData, [3]int{f.Dims.X, f.Dims.Y, f.Dims.Z})
	require.NoError(t, err)

	shifted, err := render.Extract(shiftedField, basis, 0.2+c, render.Options{})
	require.NoError(t, err)

	require.Equal(t, base.VertexCount(), shifted.VertexCount())
	require.Equal(t, base.TriangleCount(), shifted.TriangleCount())
	for i := range base.Positions {
		require.InDelta(t, base.Positions[i], shifted.Positions[i], 1e-9)
	}
}

// icosahedralMetaballField builds the section 8 scenario-2 field: sum over
// 12 icosahedron vertices of 1/|r-v_i|^2, on [-3,3]^3.
func icosahedralMetaballField(t *testing.T, n int) field.Field {
	t.Helper()
	phi := (1 + math.Sqrt(5)) / 2
	raw := [][3]float64{
		{-1, phi, 0}, {1, phi, 0}, {-1, -phi, 0}, {1, -phi, 0},
		{0, -1, phi}, {0, 1, phi}, {0, -1, -phi}, {0, 1, -phi},
		{phi, 0, -1}, {phi, 0, 1}, {-phi, 0, -1}, {-phi, 0, 1},
	}
	verts := raw

	data := make([]float64, n*n*n)
	for z := 0; z < n; z++ {
		zc := -3 + float64(z)*6/float64(n-1)
		for y := 0; y < n; y++ {
			yc := -3 + float64(y)*6/float64(n-1)
			for x := 0; x < n; x++ {
				xc := -3 + float64(x)*6/float64(n-1)
				sum := 0.0
				for _, v := range verts {
					dx, dy, dz := xc-v[0], yc-v[1], zc-v[2]
					d2 := dx*dx + dy*dy + dz*dz
					if d2 < 1e-12 {
						d2 = 1e-12
					}
					sum += 1 / d2
				}
				idx := x + n*(y+n*z)
				data[idx] = sum
			}
		}
	}
	f, err := field.New(data, [3]int{n, n, n})
	require.NoError(t, err)
	return f
}

func TestExtractIcosahedralMetaballsIsWellFormed(t *testing.T) {
	// Section 8 scenario 2: triangle counts are exact and stable across
	// dedup/floating-point variants; vertex counts may drift a few percent.
	wantT := map[int]int{10: 376, 20: 2632}
	for _, n := range []int{10, 20} {
		f := icosahedralMetaballField(t, n)
		basis := cubicBasis(t, 6)

		m, err := render.Extract(f, basis, 3.75, render.Options{})
		require.NoError(t, err)
		assertUniversalInvariants(t, m)
		require.Greater(t, m.VertexCount(), 0)
		require.Equal(t, wantT[n], m.TriangleCount())
	}
}

func TestExtractRectangularGridProducesClosedMesh(t *testing.T) {
	dims := [3]int{30, 40, 50}
	data := make([]float64, dims[0]*dims[1]*dims[2])
	phi := (1 + math.Sqrt(5)) / 2
	raw := [][3]float64{
		{-1, phi, 0}, {1, phi, 0}, {-1, -phi, 0}, {1, -phi, 0},
		{0, -1, phi}, {0, 1, phi}, {0, -1, -phi}, {0, 1, -phi},
		{phi, 0, -1}, {phi, 0, 1}, {-phi, 0, -1}, {-phi, 0, 1},
	}
	norm := math.Sqrt(1 + phi*phi)
	verts := make([][3]float64, len(raw))
	for i, v := range raw {
		verts[i] = [3]float64{v[0] / norm * 2, v[1] / norm * 2, v[2] / norm * 2}
	}
	for z := 0; z < dims[2]; z++ {
		zc := -3 + float64(z)*6/float64(dims[2]-1)
		for y := 0; y < dims[1]; y++ {
			yc := -3 + float64(y)*6/float64(dims[1]-1)
			for x := 0; x < dims[0]; x++ {
				xc := -3 + float64(x)*6/float64(dims[0]-1)
				sum := 0.0
				for _, v := range verts {
					dx, dy, dz := xc-v[0], yc-v[1], zc-v[2]
					d2 := dx*dx + dy*dy + dz*dz
					if d2 < 1e-12 {
						d2 = 1e-12
					}
					sum += 1 / d2
				}
				idx := x + dims[0]*(y+dims[1]*z)
				data[idx] = sum
			}
		}
	}
	f, err := field.New(data, dims)
	require.NoError(t, err)
	basis := cubicBasis(t, 6)

	m, err := render.Extract(f, basis, 3.75, render.Options{})
	require.NoError(t, err)
	assertUniversalInvariants(t, m)
	require.Greater(t, m.VertexCount(), 0)

	// Closed: every undirected edge is shared by exactly two triangles.
	edgeUses := make(map[[2]uint32]int)
	for tI := 0; tI < m.TriangleCount(); tI++ {
		a, b, c := m.Triangle(tI)
		for _, e := range [][2]uint32{{a, b}, {b, c}, {c, a}} {
			if e[0] > e[1] {
				e[0], e[1] = e[1], e[0]
			}
			edgeUses[e]++
		}
	}
	for e, uses := range edgeUses {
		require.Equal(t, 2, uses, "edge %v is used by %d triangles", e, uses)
	}
}

func TestExtractGyroidIsNonEmptyWithBoundedVertices(t *testing.T) {
	n := 24 // reduced from the spec's N=192 smoke-test size to keep the test fast
	data := make([]float64, n*n*n)
	span := 4 * math.Pi
	for z := 0; z < n; z++ {
		zc := float64(z) * span / float64(n-1)
		for y := 0; y < n; y++ {
			yc := float64(y) * span / float64(n-1)
			for x := 0; x < n; x++ {
				xc := float64(x) * span / float64(n-1)
				idx := x + n*(y+n*z)
				data[idx] = math.Sin(xc)*math.Cos(yc) + math.Sin(yc)*math.Cos(zc) + math.Sin(zc)*math.Cos(xc)
			}
		}
	}
	f, err := field.New(data, [3]int{n, n, n})
	require.NoError(t, err)
	basis := cubicBasis(t, span)

	m, err := render.Extract(f, basis, 0, render.Options{})
	require.NoError(t, err)
	assertUniversalInvariants(t, m)
	require.Greater(t, m.VertexCount(), 0)

	for i := 0; i < m.VertexCount(); i++ {
		p := m.Position(uint32(i))
		require.GreaterOrEqual(t, p.X, -1e-9)
		require.LessOrEqual(t, p.X, span+1e-9)
		require.GreaterOrEqual(t, p.Y, -1e-9)
		require.LessOrEqual(t, p.Y, span+1e-9)
		require.GreaterOrEqual(t, p.Z, -1e-9)
		require.LessOrEqual(t, p.Z, span+1e-9)
	}
}

func TestExtractIsovalueExactlyAtSampleValueIsStable(t *testing.T) {
	n := 4
	data := make([]float64, n*n*n)
	for z := 0; z < n; z++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				idx := x + n*(y+n*z)
				data[idx] = float64(x)
			}
		}
	}
	f, err := field.New(data, [3]int{n, n, n})
	require.NoError(t, err)
	basis := cubicBasis(t, 1)

	// iso == 1.0 coincides exactly with the x=1 lattice plane.
	m, err := render.Extract(f, basis, 1.0, render.Options{})
	require.NoError(t, err)
	assertUniversalInvariants(t, m)
}

func TestExtractWorkerCountDoesNotChangeVertexOrTriangleCount(t *testing.T) {
	f := gaussianSphereField(t, 14)
	basis := cubicBasis(t, 10)

	single, err := render.Extract(f, basis, 0.15, render.Options{Workers: 1})
	require.NoError(t, err)

	multi, err := render.Extract(f, basis, 0.15, render.Options{Workers: 8})
	require.NoError(t, err)

	require.Equal(t, single.VertexCount(), multi.VertexCount())
	require.Equal(t, single.TriangleCount(), multi.TriangleCount())
}

func TestExtractSpatialDedupMatchesTriangleCount(t *testing.T) {
	f := gaussianSphereField(t, 14)
	basis := cubicBasis(t, 10)

	owner, err := render.Extract(f, basis, 0.15, render.Options{Dedup: render.DedupOwnerCell})
	require.NoError(t, err)

	spatial, err := render.Extract(f, basis, 0.15, render.Options{Dedup: render.DedupSpatial})
	require.NoError(t, err)

	// Section 4.4: triangle counts are exact and stable across dedup
	// strategies; only vertex counts may drift.
	require.Equal(t, owner.TriangleCount(), spatial.TriangleCount())
	assertUniversalInvariants(t, spatial)
}
