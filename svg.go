package ggicon

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/gogpu/gg"
)

// EncodeSVG writes icon to w as an SVG document of icon.Size×icon.Size
// user units.
//
// Wedges, discs and parametric or composite glyphs become paths with the
// same geometry Compose rasterizes. Character glyphs and the label become
// <text> elements centered on their anchors, so the final look depends
// on the fonts available to the SVG renderer.
func EncodeSVG(w io.Writer, icon Icon, opts ...Option) error {
	if err := icon.Validate(); err != nil {
		return err
	}
	o := newOptions(opts)

	e := &svgEncoder{
		canvas: svg.New(w),
		mid:    float64(icon.Size) / 2,
	}
	e.canvas.Start(icon.Size, icon.Size)
	e.canvas.Rect(0, 0, icon.Size, icon.Size, fillStyle(icon.Background))

	if d := icon.Backdrop; d != nil {
		e.canvas.Path(e.circlePath(e.mid, e.mid, d.Radius), shapeStyle(d.Fill, d.Stroke))
	}

	segs, err := Segments(icon.Wedges.Count, icon.Wedges.Palette)
	if err != nil {
		return err
	}
	alpha, stroke := icon.Wedges.opacity(), icon.Wedges.stroke()
	for _, s := range segs {
		e.canvas.Path(e.wedgePath(icon.Wedges.Radius, s),
			shapeStyle(withAlpha(s.Color, alpha), stroke))
	}

	if d := icon.Halo; d != nil {
		e.canvas.Path(e.circlePath(e.mid, e.mid, d.Radius), shapeStyle(d.Fill, d.Stroke))
	}

	switch g := icon.Glyph.(type) {
	case Parametric:
		pts, err := g.Polygon(icon.Size)
		if err != nil {
			return err
		}
		e.canvas.Path(polygonPath(pts), fillStyle(g.Color))
	case Composite:
		x, y, s := e.mid+g.Offset.X, e.mid-g.Offset.Y, g.Size
		e.canvas.Path(e.circlePath(x-s/2, y, s/2)+e.circlePath(x+s/2, y, s/2)+
			polygonPath([]gg.Point{gg.Pt(x-s, y), gg.Pt(x+s, y), gg.Pt(x, y+s)}), fillStyle(g.Color))
	case Char:
		e.text(string(g.Rune), e.mid, e.mid, g.Size, g.Color, g.Font)
	}

	if s := icon.Label.normalized(); s != "" {
		l := icon.Label
		e.text(s, e.mid+l.Offset.X, e.mid-l.Offset.Y, l.Size, l.Color, l.Font)
	}

	e.canvas.End()
	o.logger.Debug("ggicon: svg encoded", "size", icon.Size, "wedges", len(segs))
	return nil
}

type svgEncoder struct {
	canvas *svg.SVG
	mid    float64
}

// wedgePath returns a pie slice path. Canvas angles grow clockwise on
// screen, which is SVG's positive sweep direction.
func (e *svgEncoder) wedgePath(r float64, s Segment) string {
	if s.Sweep() >= 360 {
		return e.circlePath(e.mid, e.mid, r)
	}
	a1, a2 := canvasAngle(s.Start), canvasAngle(s.End)
	large := 0
	if s.Sweep() > 180 {
		large = 1
	}
	return fmt.Sprintf("M%s %s L%s %s A%s %s 0 %d 1 %s %s Z",
		num(e.mid), num(e.mid),
		num(e.mid+r*math.Cos(a1)), num(e.mid+r*math.Sin(a1)),
		num(r), num(r), large,
		num(e.mid+r*math.Cos(a2)), num(e.mid+r*math.Sin(a2)))
}

// circlePath returns a full circle as two half arcs.
func (e *svgEncoder) circlePath(cx, cy, r float64) string {
	return fmt.Sprintf("M%s %s A%s %s 0 1 1 %s %s A%s %s 0 1 1 %s %s Z",
		num(cx-r), num(cy),
		num(r), num(r), num(cx+r), num(cy),
		num(r), num(r), num(cx-r), num(cy))
}

func (e *svgEncoder) text(s string, x, y, size float64, col gg.RGBA, f FontSpec) {
	family := "Go, sans-serif"
	if f.Family != "" {
		family = f.Family + ", " + family
	}
	hex, a := hexString(col)
	style := fmt.Sprintf("font-family:%s;font-size:%spx;font-weight:%s;fill:%s;fill-opacity:%s;"+
		"text-anchor:middle;dominant-baseline:central",
		family, num(size), cssWeight(f.Weight), hex, num(a))
	// svg.Text only takes integer coordinates; scaled anchors are fractional.
	w := e.canvas.Writer
	fmt.Fprintf(w, `<text x="%s" y="%s" style="`, num(x), num(y))
	_ = xml.EscapeText(w, []byte(style))
	fmt.Fprint(w, `">`)
	_ = xml.EscapeText(w, []byte(s))
	fmt.Fprintln(w, "</text>")
}

func polygonPath(pts []gg.Point) string {
	var b strings.Builder
	for i, p := range pts {
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString(" L")
		}
		b.WriteString(num(p.X))
		b.WriteByte(' ')
		b.WriteString(num(p.Y))
	}
	b.WriteString(" Z")
	return b.String()
}

func fillStyle(c gg.RGBA) string {
	hex, a := hexString(c)
	return fmt.Sprintf("fill:%s;fill-opacity:%s;stroke:none", hex, num(a))
}

func shapeStyle(fill gg.RGBA, s *Stroke) string {
	if s == nil {
		return fillStyle(fill)
	}
	fhex, fa := hexString(fill)
	shex, sa := hexString(s.Color)
	return fmt.Sprintf("fill:%s;fill-opacity:%s;stroke:%s;stroke-opacity:%s;stroke-width:%s",
		fhex, num(fa), shex, num(sa), num(s.Width))
}

func cssWeight(w Weight) string {
	if w == Bold {
		return "bold"
	}
	return "normal"
}

// num formats v with at most two decimals and no trailing zeros.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
