package ggicon

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"
)

// Segment is one of N equal angular slices of the wedge ring.
//
// Angles are in degrees using the math convention: 0 points east and
// angles grow counter-clockwise. Segments run clockwise from the top, so
// End is always Start minus the sweep.
type Segment struct {
	Index int
	Start float64
	End   float64
	Color gg.RGBA
}

// Sweep returns the angular extent of the segment in degrees.
func (s Segment) Sweep() float64 {
	return s.Start - s.End
}

// Segments partitions the full circle into n equal wedges starting at the
// top and proceeding clockwise. Segment i spans
// [90 - i*360/n, 90 - (i+1)*360/n] and takes palette[i].
//
// Boundaries are computed from the index rather than accumulated, so
// consecutive segments share the exact same boundary value and the last
// one ends at exactly 90 - 360.
func Segments(n int, palette []gg.RGBA) ([]Segment, error) {
	if n < 1 {
		return nil, configErr("wedge count", fmt.Sprintf("%d, want >= 1", n))
	}
	if len(palette) != n {
		return nil, configErr("palette", fmt.Sprintf("%d colors for %d wedges", len(palette), n))
	}

	segs := make([]Segment, n)
	for i := range segs {
		segs[i] = Segment{
			Index: i,
			Start: boundary(i, n),
			End:   boundary(i+1, n),
			Color: palette[i],
		}
	}
	return segs, nil
}

// boundary returns the angle of the i-th wedge boundary out of n.
func boundary(i, n int) float64 {
	if i == n {
		return 90 - 360
	}
	return 90 - float64(i)*360/float64(n)
}

// canvasAngle converts a math-convention angle in degrees to the radian
// angle gg uses on a y-down canvas.
func canvasAngle(deg float64) float64 {
	return -deg * math.Pi / 180
}
