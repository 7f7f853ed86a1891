package tessel_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ifilot/gotessel"
)

func TestMarchingCubesGaussianSphere(t *testing.T) {
	n := 16
	data := make([]float64, n*n*n)
	for z := 0; z < n; z++ {
		zc := float64(z) * 10 / float64(n-1)
		for y := 0; y < n; y++ {
			yc := float64(y) * 10 / float64(n-1)
			for x := 0; x < n; x++ {
				xc := float64(x) * 10 / float64(n-1)
				dx, dy, dz := xc-5, yc-5, zc-5
				idx := x + n*(y+n*z)
				data[idx] = math.Exp(-(dx*dx + dy*dy + dz*dz))
			}
		}
	}

	basis := [9]float64{10, 0, 0, 0, 10, 0, 0, 0, 10}
	mesh, err := tessel.MarchingCubes(data, [3]int{n, n, n}, basis, 0.1, tessel.Options{})
	require.NoError(t, err)
	require.Greater(t, mesh.VertexCount(), 0)
	require.Equal(t, 3*mesh.VertexCount(), len(mesh.Positions))
	require.Equal(t, 3*mesh.TriangleCount(), len(mesh.Indices))
}

func TestMarchingCubesRejectsInvalidDims(t *testing.T) {
	_, err := tessel.MarchingCubes(make([]float64, 8), [3]int{1, 2, 4}, [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}, 0, tessel.Options{})
	require.ErrorIs(t, err, tessel.ErrInvalidDimensions)
}

func TestMarchingCubesRejectsSingularBasis(t *testing.T) {
	data := make([]float64, 8)
	_, err := tessel.MarchingCubes(data, [3]int{2, 2, 2}, [9]float64{1, 0, 0, 1, 0, 0, 0, 0, 1}, 0, tessel.Options{})
	require.ErrorIs(t, err, tessel.ErrSingularBasis)
}

func TestNewFieldAndBasisForCrossSectionPath(t *testing.T) {
	data := make([]float64, 8)
	f, b, err := tessel.NewFieldAndBasis(data, [3]int{2, 2, 2}, [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	require.NoError(t, err)
	require.Equal(t, 2, f.Dims.X)
	require.Equal(t, 1.0, b.Det())
}

func TestDimsPacksComponents(t *testing.T) {
	d := tessel.Dims(3, 4, 5)
	require.Equal(t, 3, d.X)
	require.Equal(t, 4, d.Y)
	require.Equal(t, 5, d.Z)
}
