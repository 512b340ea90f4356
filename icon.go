package ggicon

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/text/unicode/norm"
)

// Icon describes one icon composition.
//
// Offsets use y-up coordinates relative to the canvas center; positive Y
// moves up. Radii and sizes are in pixels.
type Icon struct {
	Size       int
	Background gg.RGBA

	// Backdrop is an optional disc drawn behind the wedges.
	Backdrop *Disc

	Wedges WedgeSpec

	// Halo is an optional disc drawn over the wedges, behind the glyph.
	Halo *Disc

	Glyph Glyph
	Label Label
}

// WedgeSpec describes the ring of equal wedges.
type WedgeSpec struct {
	Count   int
	Palette []gg.RGBA
	Radius  float64

	// Opacity multiplies the alpha of each palette color and of the
	// stroke. Zero means opaque.
	Opacity float64

	Stroke *Stroke
}

// Disc is a filled circle centered on the canvas.
type Disc struct {
	Radius float64
	Fill   gg.RGBA
	Stroke *Stroke
}

// Stroke is an outline color and width.
type Stroke struct {
	Color gg.RGBA
	Width float64
}

// Label is a line of text centered on an anchor point.
type Label struct {
	Text   string
	Offset gg.Point
	Size   float64
	Color  gg.RGBA
	Font   FontSpec
}

func (w WedgeSpec) opacity() float64 {
	if w.Opacity == 0 {
		return 1
	}
	return w.Opacity
}

// stroke returns the wedge outline with the wedge opacity applied, so
// translucent wedges get equally translucent edges.
func (w WedgeSpec) stroke() *Stroke {
	if w.Stroke == nil {
		return nil
	}
	s := *w.Stroke
	s.Color = withAlpha(s.Color, w.opacity())
	return &s
}

// normalized returns the label text in NFC form with surrounding space
// trimmed, so composed and decomposed input render identically.
func (l Label) normalized() string {
	return norm.NFC.String(strings.TrimSpace(l.Text))
}

// Validate reports the first configuration problem in the icon.
// Compose, Save and EncodeSVG call it before doing anything else.
func (ic *Icon) Validate() error {
	if ic.Size <= 0 {
		return configErr("size", fmt.Sprintf("%d, want > 0", ic.Size))
	}
	if _, err := Segments(ic.Wedges.Count, ic.Wedges.Palette); err != nil {
		return err
	}
	if !positive(ic.Wedges.Radius) {
		return configErr("wedge radius", fmt.Sprintf("%g, want > 0", ic.Wedges.Radius))
	}
	if o := ic.Wedges.Opacity; !(o >= 0 && o <= 1) {
		return configErr("wedge opacity", fmt.Sprintf("%g, want within [0, 1]", o))
	}
	if err := validateStroke("wedge stroke", ic.Wedges.Stroke); err != nil {
		return err
	}
	for _, d := range []struct {
		name string
		disc *Disc
	}{{"backdrop", ic.Backdrop}, {"halo", ic.Halo}} {
		if d.disc == nil {
			continue
		}
		if !positive(d.disc.Radius) {
			return configErr(d.name+" radius", fmt.Sprintf("%g, want > 0", d.disc.Radius))
		}
		if err := validateStroke(d.name+" stroke", d.disc.Stroke); err != nil {
			return err
		}
	}

	switch g := ic.Glyph.(type) {
	case nil:
	case Parametric:
		if err := g.validate(); err != nil {
			return err
		}
	case Char:
		if err := g.validate(); err != nil {
			return err
		}
	case Composite:
		if err := g.validate(); err != nil {
			return err
		}
	default:
		return configErr("glyph", fmt.Sprintf("unsupported kind %T", g))
	}

	if ic.Label.normalized() != "" {
		if !positive(ic.Label.Size) {
			return configErr("label size", fmt.Sprintf("%g, want > 0", ic.Label.Size))
		}
		if !finitePoint(ic.Label.Offset) {
			return configErr("label offset", fmt.Sprintf("%v is not finite", ic.Label.Offset))
		}
	}
	return nil
}

func validateStroke(field string, s *Stroke) error {
	if s != nil && !positive(s.Width) {
		return configErr(field, fmt.Sprintf("width %g, want > 0", s.Width))
	}
	return nil
}

// positive reports whether v is finite and above zero.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finitePoint(p gg.Point) bool {
	return finite(p.X) && finite(p.Y)
}

// Scaled returns a copy of the icon resized to size, with every radius,
// offset and font size scaled by the same factor.
func (ic Icon) Scaled(size int) Icon {
	if size <= 0 || size == ic.Size || ic.Size <= 0 {
		return ic
	}
	k := float64(size) / float64(ic.Size)
	out := ic
	out.Size = size
	out.Wedges.Radius *= k
	out.Wedges.Stroke = ic.Wedges.Stroke.scaled(k)
	out.Backdrop = ic.Backdrop.scaled(k)
	out.Halo = ic.Halo.scaled(k)

	switch g := ic.Glyph.(type) {
	case Char:
		g.Size *= k
		out.Glyph = g
	case Composite:
		g.Size *= k
		g.Offset = gg.Pt(g.Offset.X*k, g.Offset.Y*k)
		out.Glyph = g
	}

	out.Label.Size *= k
	out.Label.Offset = gg.Pt(ic.Label.Offset.X*k, ic.Label.Offset.Y*k)
	return out
}

func (d *Disc) scaled(k float64) *Disc {
	if d == nil {
		return nil
	}
	c := *d
	c.Radius *= k
	c.Stroke = d.Stroke.scaled(k)
	return &c
}

func (s *Stroke) scaled(k float64) *Stroke {
	if s == nil {
		return nil
	}
	c := *s
	c.Width *= k
	return &c
}
