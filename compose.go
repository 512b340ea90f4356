package ggicon

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"log/slog"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// Raster is a finished icon bitmap of exactly Size×Size pixels.
type Raster struct {
	img *image.RGBA
}

// Image returns the bitmap. The caller must not modify it.
func (r *Raster) Image() image.Image {
	return r.img
}

// Bounds returns the bitmap bounds, always anchored at the origin.
func (r *Raster) Bounds() image.Rectangle {
	return r.img.Bounds()
}

// EncodePNG writes the bitmap as PNG to w.
func (r *Raster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.img)
}

// PNG returns the PNG encoding of the bitmap.
func (r *Raster) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Compose validates icon and draws it.
//
// Drawing order is background, backdrop, wedges, halo, glyph, label. The
// result is always exactly icon.Size pixels square; nothing is cropped to
// the drawn extents. Compose is deterministic: identical icons produce
// identical pixels.
func Compose(icon Icon, opts ...Option) (*Raster, error) {
	if err := icon.Validate(); err != nil {
		return nil, err
	}
	c := newComposer(icon, newOptions(opts))
	defer c.close()
	return c.run()
}

// composer holds the state of one Compose call.
type composer struct {
	icon  Icon
	opts  options
	log   *slog.Logger
	dc    *gg.Context
	mid   float64
	fonts []*Font
}

func newComposer(icon Icon, o options) *composer {
	return &composer{
		icon: icon,
		opts: o,
		log:  o.logger,
		dc:   gg.NewContext(icon.Size, icon.Size),
		mid:  float64(icon.Size) / 2,
	}
}

// close releases the drawing context and every font the call opened.
func (c *composer) close() {
	for _, f := range c.fonts {
		c.release("font", f)
	}
	c.fonts = nil
	c.release("context", c.dc)
}

// release closes r. The raster is already complete, so a failure is only
// logged.
func (c *composer) release(what string, r io.Closer) {
	if err := r.Close(); err != nil {
		c.log.Warn("ggicon: release failed", "resource", what, "err", err)
	}
}

func (c *composer) run() (*Raster, error) {
	ic := &c.icon
	c.dc.SetFillRule(gg.FillRuleNonZero)
	c.dc.ClearWithColor(ic.Background)

	steps := []struct {
		name string
		fn   func() error
	}{
		{"backdrop", func() error { return c.drawDisc(ic.Backdrop) }},
		{"wedges", c.drawWedges},
		{"halo", func() error { return c.drawDisc(ic.Halo) }},
		{"glyph", c.drawGlyph},
		{"label", c.drawLabel},
	}
	for _, s := range steps {
		if err := s.fn(); err != nil {
			return nil, fmt.Errorf("ggicon: draw %s: %w", s.name, err)
		}
	}

	src := c.dc.Image()
	img := image.NewRGBA(image.Rect(0, 0, ic.Size, ic.Size))
	draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)
	return &Raster{img: img}, nil
}

func (c *composer) setColor(col gg.RGBA) {
	c.dc.SetRGBA(col.R, col.G, col.B, col.A)
}

// fillStroke fills the current path and, if s is set, strokes it.
func (c *composer) fillStroke(fill gg.RGBA, s *Stroke) error {
	c.setColor(fill)
	if s == nil {
		return c.dc.Fill()
	}
	if err := c.dc.FillPreserve(); err != nil {
		return err
	}
	c.setColor(s.Color)
	c.dc.SetLineWidth(s.Width)
	return c.dc.Stroke()
}

func (c *composer) drawDisc(d *Disc) error {
	if d == nil {
		return nil
	}
	c.dc.DrawCircle(c.mid, c.mid, d.Radius)
	return c.fillStroke(d.Fill, d.Stroke)
}

func (c *composer) drawWedges() error {
	w := c.icon.Wedges
	segs, err := Segments(w.Count, w.Palette)
	if err != nil {
		return err
	}
	alpha, stroke := w.opacity(), w.stroke()
	for _, s := range segs {
		c.log.Debug("ggicon: wedge", "index", s.Index, "start", s.Start, "end", s.End)
		c.wedgePath(w.Radius, canvasAngle(s.Start), canvasAngle(s.End))
		if err := c.fillStroke(withAlpha(s.Color, alpha), stroke); err != nil {
			return err
		}
	}
	return nil
}

// wedgePath adds a closed pie slice from the canvas center spanning the
// canvas angles a1 to a2 (a2 > a1, radians, clockwise on screen).
// DrawArc continues the open subpath, so the slice stays one contour.
func (c *composer) wedgePath(r, a1, a2 float64) {
	cx, cy := c.mid, c.mid
	c.dc.MoveTo(cx, cy)
	c.dc.LineTo(cx+r*math.Cos(a1), cy+r*math.Sin(a1))
	c.dc.DrawArc(cx, cy, r, a1, a2)
	c.dc.ClosePath()
}

func (c *composer) drawGlyph() error {
	switch g := c.icon.Glyph.(type) {
	case nil:
		return nil
	case Parametric:
		return c.drawParametric(g)
	case Composite:
		return c.drawComposite(g)
	case Char:
		return c.drawChar(g)
	}
	return configErr("glyph", fmt.Sprintf("unsupported kind %T", c.icon.Glyph))
}

func (c *composer) drawParametric(p Parametric) error {
	pts, err := p.Polygon(c.icon.Size)
	if err != nil {
		return err
	}
	c.log.Debug("ggicon: parametric glyph", "samples", len(pts), "scale", p.Scale)
	c.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		c.dc.LineTo(pt.X, pt.Y)
	}
	c.dc.ClosePath()
	c.setColor(p.Color)
	return c.dc.Fill()
}

func (c *composer) drawComposite(g Composite) error {
	s := g.Size
	x, y := c.mid+g.Offset.X, c.mid-g.Offset.Y
	c.setColor(g.Color)

	c.dc.DrawCircle(x-s/2, y, s/2)
	if err := c.dc.Fill(); err != nil {
		return err
	}
	c.dc.DrawCircle(x+s/2, y, s/2)
	if err := c.dc.Fill(); err != nil {
		return err
	}
	c.dc.MoveTo(x-s, y)
	c.dc.LineTo(x+s, y)
	c.dc.LineTo(x, y+s)
	c.dc.ClosePath()
	return c.dc.Fill()
}

func (c *composer) drawChar(g Char) error {
	face, err := c.face(g.Font, g.Size)
	if err != nil {
		return err
	}
	if !face.HasGlyph(g.Rune) {
		c.log.Warn("ggicon: font has no glyph, drawing parametric heart",
			"rune", string(g.Rune), "font", face.Source().Name())
		return c.drawParametric(g.substitute(c.icon.Size))
	}
	c.drawCentered(face, string(g.Rune), c.mid, c.mid, g.Color)
	return nil
}

func (c *composer) drawLabel() error {
	l := c.icon.Label
	s := l.normalized()
	if s == "" {
		return nil
	}
	face, err := c.face(l.Font, l.Size)
	if err != nil {
		return err
	}
	c.drawCentered(face, s, c.mid+l.Offset.X, c.mid-l.Offset.Y, l.Color)
	return nil
}

// face resolves spec and keeps the font open until close.
func (c *composer) face(spec FontSpec, size float64) (text.Face, error) {
	f, err := c.opts.fonts.Resolve(spec)
	if err != nil {
		return nil, err
	}
	c.fonts = append(c.fonts, f)
	if f.Fallback {
		c.log.Debug("ggicon: using bundled font", "weight", spec.Weight)
	}
	return f.Source.Face(size), nil
}

// drawCentered draws s so that its advance box is horizontally centered
// on x and its ascent/descent box is vertically centered on y.
func (c *composer) drawCentered(face text.Face, s string, x, y float64, col gg.RGBA) {
	m := face.Metrics()
	c.dc.SetFont(face)
	c.setColor(col)
	c.dc.DrawString(s, x-face.Advance(s)/2, y+(m.Ascent-m.Descent)/2)
}
