package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/ifilot/gotessel/field"
	"github.com/ifilot/gotessel/vec/v3"
)

const cellPixels = 8

// WriteCrossSectionSVG draws the lattice slice of f at index level along
// axis (0=x, 1=y, 2=z) as a grid of gray-scale cells, per section 4.9. Cells
// whose four corners straddle iso (some strictly below, some not) are
// outlined in red, giving a cheap human-checkable precursor to a full
// extraction run. It only reads f; basis is used solely to keep the debug
// image's aspect ratio roughly proportional to the Cartesian cell spacing.
func WriteCrossSectionSVG(w io.Writer, f field.Field, basis field.Basis, axis, level int, iso float64) error {
	dims := [3]int{f.Dims.X, f.Dims.Y, f.Dims.Z}
	u, v, n := axesExcluding(axis)
	nu, nv := dims[u], dims[v]
	if level < 0 || level >= dims[n] {
		return fmt.Errorf("%w: level=%d out of range for axis %d", field.ErrInvalidDimensions, level, axis)
	}

	aspect := crossSectionAspect(basis, u, v)
	width := (nu - 1) * cellPixels
	height := int(float64((nv-1)*cellPixels) * aspect)
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	canvas := svg.New(w)
	canvas.Start(width, height)

	lo, hi := fieldRange(f)
	for j := 0; j < nv-1; j++ {
		for i := 0; i < nu-1; i++ {
			corners := [4]float64{
				sampleSlice(f, axis, level, u, v, i, j),
				sampleSlice(f, axis, level, u, v, i+1, j),
				sampleSlice(f, axis, level, u, v, i+1, j+1),
				sampleSlice(f, axis, level, u, v, i, j+1),
			}
			avg := (corners[0] + corners[1] + corners[2] + corners[3]) / 4
			gray := grayLevel(avg, lo, hi)

			uStep := cellPixels
			vStep := int(float64(cellPixels) * aspect)
			if vStep < 1 {
				vStep = 1
			}
			x := i * uStep
			y := int(float64(j*cellPixels) * aspect)

			style := fmt.Sprintf("fill:rgb(%d,%d,%d);stroke:none", gray, gray, gray)
			if straddles(corners, iso) {
				style = fmt.Sprintf("fill:rgb(%d,%d,%d);stroke:red;stroke-width:1", gray, gray, gray)
			}
			canvas.Rect(x, y, uStep, vStep, style)
		}
	}

	canvas.End()
	return nil
}

// axesExcluding returns the two axes spanning the cross-section (u, v) and
// the axis held fixed (n), in a fixed cyclic order so output is stable.
func axesExcluding(axis int) (u, v, n int) {
	return (axis + 1) % 3, (axis + 2) % 3, axis
}

// sampleSlice reads f at the lattice point with coordinate level along axis
// and (i, j) along the (u, v) axes.
func sampleSlice(f field.Field, axis, level, u, v, i, j int) float64 {
	var idx [3]int
	idx[axis] = level
	idx[u] = i
	idx[v] = j
	return f.At(idx[0], idx[1], idx[2])
}

func crossSectionAspect(basis field.Basis, u, v int) float64 {
	var unitU, unitV v3.Vec
	setAxis(&unitU, u, 1)
	setAxis(&unitV, v, 1)
	lu := basis.Apply(unitU).Length()
	lv := basis.Apply(unitV).Length()
	if lu == 0 {
		return 1
	}
	return lv / lu
}

func setAxis(vec *v3.Vec, axis int, val float64) {
	switch axis {
	case 0:
		vec.X = val
	case 1:
		vec.Y = val
	case 2:
		vec.Z = val
	}
}

func grayLevel(val, lo, hi float64) int {
	if hi <= lo {
		return 128
	}
	t := (val - lo) / (hi - lo)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return int(math.Round(t * 255))
}

func fieldRange(f field.Field) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range f.Data {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func straddles(corners [4]float64, iso float64) bool {
	below, above := false, false
	for _, c := range corners {
		if c < iso {
			below = true
		} else {
			above = true
		}
	}
	return below && above
}
