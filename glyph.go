package ggicon

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"
)

// MinSamples is the lowest sampling resolution accepted for a parametric
// glyph. Fewer points leave visible facets on a 512px canvas.
const MinSamples = 200

// DefaultSamples is used when Parametric.Samples is zero.
const DefaultSamples = 1000

// Glyph is the decorative mark drawn at the canvas center.
// The concrete kinds are Parametric, Char and Composite.
type Glyph interface {
	glyph()
}

// Curve maps t in [0, 2π) to a point in y-up coordinates.
type Curve func(t float64) (x, y float64)

// Parametric is a closed curve sampled into a polygon and filled.
//
// The sampled polygon is scaled so that its bounding box is Scale times
// the canvas width, and translated so the bounding box is centered on the
// canvas midpoint.
type Parametric struct {
	Curve   Curve
	Samples int
	Scale   float64
	Color   gg.RGBA
}

// Char is a single character rendered from a font, centered on the
// canvas midpoint. Size is in pixels.
type Char struct {
	Rune  rune
	Size  float64
	Color gg.RGBA
	Font  FontSpec
}

// Composite is a heart assembled from two circles over a downward
// triangle. Size is the half-width of the heart in pixels; Offset moves
// it from the canvas center (y-up).
type Composite struct {
	Size   float64
	Offset gg.Point
	Color  gg.RGBA
}

func (Parametric) glyph() {}
func (Char) glyph()       {}
func (Composite) glyph()  {}

// HeartCurve is the classic parametric heart:
//
//	x = 16 sin³t
//	y = 13 cos t − 5 cos 2t − 2 cos 3t − cos 4t
func HeartCurve(t float64) (x, y float64) {
	s := math.Sin(t)
	x = 16 * s * s * s
	y = 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)
	return x, y
}

// Heart returns a parametric heart glyph in the given color at the default
// resolution and a scale of 0.3 of the canvas.
func Heart(c gg.RGBA) Parametric {
	return Parametric{Curve: HeartCurve, Samples: DefaultSamples, Scale: 0.3, Color: c}
}

// SampleCurve evaluates curve at n evenly spaced parameters
// t = 2πi/n for i in [0, n). The result is in the curve's own y-up space.
func SampleCurve(curve Curve, n int) []gg.Point {
	pts := make([]gg.Point, n)
	for i := range pts {
		t := 2 * math.Pi * float64(i) / float64(n)
		x, y := curve(t)
		pts[i] = gg.Pt(x, y)
	}
	return pts
}

func (p Parametric) samples() int {
	if p.Samples == 0 {
		return DefaultSamples
	}
	return p.Samples
}

// validate checks the parameters and that the sampled curve spans a
// finite, non-degenerate area.
func (p Parametric) validate() error {
	if err := p.validateParams(); err != nil {
		return err
	}
	_, _, _, err := p.sample()
	return err
}

func (p Parametric) validateParams() error {
	if p.Curve == nil {
		return configErr("glyph curve", "nil")
	}
	if n := p.samples(); n < MinSamples {
		return configErr("glyph samples", fmt.Sprintf("%d, want >= %d", n, MinSamples))
	}
	if !positive(p.Scale) {
		return configErr("glyph scale", fmt.Sprintf("%g, want > 0", p.Scale))
	}
	return nil
}

// sample returns the curve sampled and flipped into y-down space, with
// its bounding box.
func (p Parametric) sample() (pts []gg.Point, lo, hi gg.Point, err error) {
	pts = SampleCurve(p.Curve, p.samples())
	lo = gg.Pt(math.Inf(1), math.Inf(1))
	hi = gg.Pt(math.Inf(-1), math.Inf(-1))
	for i := range pts {
		pts[i].Y = -pts[i].Y
		lo.X = math.Min(lo.X, pts[i].X)
		hi.X = math.Max(hi.X, pts[i].X)
		lo.Y = math.Min(lo.Y, pts[i].Y)
		hi.Y = math.Max(hi.Y, pts[i].Y)
	}
	w, h := hi.X-lo.X, hi.Y-lo.Y
	if !finite(w) || !finite(h) {
		return nil, lo, hi, configErr("glyph curve", "bounding box is not finite")
	}
	if !(w > 0) || !(h > 0) {
		return nil, lo, hi, configErr("glyph curve", "bounding box has no area")
	}
	return pts, lo, hi, nil
}

// Polygon returns the curve sampled, flipped into y-down canvas space,
// scaled and centered for a size×size canvas.
func (p Parametric) Polygon(size int) ([]gg.Point, error) {
	if err := p.validateParams(); err != nil {
		return nil, err
	}
	pts, lo, hi, err := p.sample()
	if err != nil {
		return nil, err
	}

	k := p.Scale * float64(size) / (hi.X - lo.X)
	mid := float64(size) / 2
	cx, cy := (lo.X+hi.X)/2, (lo.Y+hi.Y)/2
	for i := range pts {
		pts[i].X = mid + (pts[i].X-cx)*k
		pts[i].Y = mid + (pts[i].Y-cy)*k
	}
	return pts, nil
}

func (c Char) validate() error {
	if c.Rune == 0 {
		return configErr("glyph rune", "empty")
	}
	if !positive(c.Size) {
		return configErr("glyph size", fmt.Sprintf("%g, want > 0", c.Size))
	}
	return nil
}

func (c Composite) validate() error {
	if !positive(c.Size) {
		return configErr("glyph size", fmt.Sprintf("%g, want > 0", c.Size))
	}
	if !finitePoint(c.Offset) {
		return configErr("glyph offset", fmt.Sprintf("%v is not finite", c.Offset))
	}
	return nil
}
// substitute returns the parametric heart drawn when a font has no glyph
// for c.Rune. Its width matches the character's em size.
func (c Char) substitute(size int) Parametric {
	h := Heart(c.Color)
	h.Scale = 0.75 * c.Size / float64(size)
	return h
}
