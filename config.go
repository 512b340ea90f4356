package ggicon

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/gogpu/gg"
)

// fileConfig is the TOML form of an Icon. Every field is optional and
// overrides the base preset.
//
//	preset = "fixed"
//	size = 256
//
//	[wedges]
//	count = 3
//	palette = ["#1E40AF", "#3B82F6", "#93C5FD"]
//
//	[glyph]
//	kind = "heart"
//	color = "#FFFFFF"
//
//	[label]
//	text = "MMV"
//	offset = [0, -100]
type fileConfig struct {
	Preset     string       `toml:"preset"`
	Size       *int         `toml:"size"`
	Background *string      `toml:"background"`
	Backdrop   *discConfig  `toml:"backdrop"`
	Wedges     *wedgeConfig `toml:"wedges"`
	Halo       *discConfig  `toml:"halo"`
	Glyph      *glyphConfig `toml:"glyph"`
	Label      *labelConfig `toml:"label"`
}

type strokeConfig struct {
	Color string  `toml:"color"`
	Width float64 `toml:"width"`
}

type discConfig struct {
	Disabled bool          `toml:"disabled"`
	Radius   *float64      `toml:"radius"`
	Fill     *string       `toml:"fill"`
	Stroke   *strokeConfig `toml:"stroke"`
}

type wedgeConfig struct {
	Count   *int          `toml:"count"`
	Palette []string      `toml:"palette"`
	Radius  *float64      `toml:"radius"`
	Opacity *float64      `toml:"opacity"`
	Stroke  *strokeConfig `toml:"stroke"`
}

type fontConfig struct {
	Path   string `toml:"path"`
	Family string `toml:"family"`
	Weight string `toml:"weight"`
}

type glyphConfig struct {
	Kind    string      `toml:"kind"`
	Rune    string      `toml:"rune"`
	Size    float64     `toml:"size"`
	Scale   float64     `toml:"scale"`
	Samples int         `toml:"samples"`
	Color   string      `toml:"color"`
	Offset  []float64   `toml:"offset"`
	Font    *fontConfig `toml:"font"`
}

type labelConfig struct {
	Text   *string     `toml:"text"`
	Offset []float64   `toml:"offset"`
	Size   *float64    `toml:"size"`
	Color  *string     `toml:"color"`
	Font   *fontConfig `toml:"font"`
}

// LoadConfig reads a TOML icon description from path.
//
// The optional top-level preset key picks the base icon (default
// "fixed"); every other key overrides part of it. Unknown keys and
// malformed colors are configuration errors. The result is validated.
func LoadConfig(path string) (Icon, error) {
	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		var perr toml.ParseError
		if errors.As(err, &perr) {
			return Icon{}, fmt.Errorf("ggicon: %s: %w", path, &ConfigError{Field: "toml", Reason: perr.Message})
		}
		return Icon{}, fmt.Errorf("ggicon: read config: %w", err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return Icon{}, configErr("config keys", "unknown "+strings.Join(names, ", "))
	}

	icon, err := fc.build()
	if err != nil {
		return Icon{}, err
	}
	if err := icon.Validate(); err != nil {
		return Icon{}, err
	}
	Logger().Debug("ggicon: config loaded", "path", path, "preset", fc.Preset)
	return icon, nil
}

func (fc *fileConfig) build() (Icon, error) {
	name := fc.Preset
	if name == "" {
		name = "fixed"
	}
	icon, err := Preset(name)
	if err != nil {
		return Icon{}, err
	}

	if fc.Size != nil {
		icon = icon.Scaled(*fc.Size)
		icon.Size = *fc.Size
	}
	if fc.Background != nil {
		if icon.Background, err = colorField("background", *fc.Background); err != nil {
			return Icon{}, err
		}
	}
	if icon.Backdrop, err = fc.Backdrop.apply("backdrop", icon.Backdrop); err != nil {
		return Icon{}, err
	}
	if err := fc.Wedges.apply(&icon.Wedges); err != nil {
		return Icon{}, err
	}
	if icon.Halo, err = fc.Halo.apply("halo", icon.Halo); err != nil {
		return Icon{}, err
	}
	if fc.Glyph != nil {
		if icon.Glyph, err = fc.Glyph.build(); err != nil {
			return Icon{}, err
		}
	}
	if err := fc.Label.apply(&icon.Label); err != nil {
		return Icon{}, err
	}
	return icon, nil
}

func (dc *discConfig) apply(field string, base *Disc) (*Disc, error) {
	if dc == nil {
		return base, nil
	}
	if dc.Disabled {
		return nil, nil
	}
	d := Disc{Fill: White}
	if base != nil {
		d = *base
	}
	if dc.Radius != nil {
		d.Radius = *dc.Radius
	}
	if dc.Fill != nil {
		c, err := colorField(field+" fill", *dc.Fill)
		if err != nil {
			return nil, err
		}
		d.Fill = c
	}
	if dc.Stroke != nil {
		s, err := dc.Stroke.build(field + " stroke")
		if err != nil {
			return nil, err
		}
		d.Stroke = s
	}
	return &d, nil
}

func (wc *wedgeConfig) apply(w *WedgeSpec) error {
	if wc == nil {
		return nil
	}
	if wc.Count != nil {
		w.Count = *wc.Count
	}
	if wc.Palette != nil {
		p := make([]gg.RGBA, len(wc.Palette))
		for i, h := range wc.Palette {
			c, err := colorField(fmt.Sprintf("palette[%d]", i), h)
			if err != nil {
				return err
			}
			p[i] = c
		}
		w.Palette = p
	}
	if wc.Radius != nil {
		w.Radius = *wc.Radius
	}
	if wc.Opacity != nil {
		w.Opacity = *wc.Opacity
	}
	if wc.Stroke != nil {
		s, err := wc.Stroke.build("wedge stroke")
		if err != nil {
			return err
		}
		w.Stroke = s
	}
	return nil
}

func (sc *strokeConfig) build(field string) (*Stroke, error) {
	c, err := colorField(field, sc.Color)
	if err != nil {
		return nil, err
	}
	return &Stroke{Color: c, Width: sc.Width}, nil
}

func (gc *glyphConfig) build() (Glyph, error) {
	col := White
	if gc.Color != "" {
		var err error
		if col, err = colorField("glyph color", gc.Color); err != nil {
			return nil, err
		}
	}
	switch gc.Kind {
	case "none":
		return nil, nil
	case "", "heart":
		h := Heart(col)
		if gc.Scale != 0 {
			h.Scale = gc.Scale
		}
		if gc.Samples != 0 {
			h.Samples = gc.Samples
		}
		return h, nil
	case "char":
		r, n := utf8.DecodeRuneInString(gc.Rune)
		if r == utf8.RuneError || n != len(gc.Rune) {
			return nil, configErr("glyph rune", fmt.Sprintf("%q is not a single character", gc.Rune))
		}
		f, err := gc.Font.build()
		if err != nil {
			return nil, err
		}
		return Char{Rune: r, Size: gc.Size, Color: col, Font: f}, nil
	case "composite":
		off, err := pointField("glyph offset", gc.Offset)
		if err != nil {
			return nil, err
		}
		return Composite{Size: gc.Size, Offset: off, Color: col}, nil
	}
	return nil, configErr("glyph kind", fmt.Sprintf("%q, want heart, char, composite or none", gc.Kind))
}

func (lc *labelConfig) apply(l *Label) error {
	if lc == nil {
		return nil
	}
	if lc.Text != nil {
		l.Text = *lc.Text
	}
	if lc.Offset != nil {
		off, err := pointField("label offset", lc.Offset)
		if err != nil {
			return err
		}
		l.Offset = off
	}
	if lc.Size != nil {
		l.Size = *lc.Size
	}
	if lc.Color != nil {
		c, err := colorField("label color", *lc.Color)
		if err != nil {
			return err
		}
		l.Color = c
	}
	if lc.Font != nil {
		f, err := lc.Font.build()
		if err != nil {
			return err
		}
		l.Font = f
	}
	return nil
}

func (fc *fontConfig) build() (FontSpec, error) {
	if fc == nil {
		return FontSpec{}, nil
	}
	spec := FontSpec{Path: fc.Path, Family: fc.Family}
	switch strings.ToLower(fc.Weight) {
	case "", "regular", "normal":
	case "bold":
		spec.Weight = Bold
	default:
		return FontSpec{}, configErr("font weight", fmt.Sprintf("%q, want regular or bold", fc.Weight))
	}
	return spec, nil
}

func colorField(field, s string) (gg.RGBA, error) {
	c, err := ParseColor(s)
	if err != nil {
		return gg.RGBA{}, configErr(field, err.Error())
	}
	return c, nil
}

func pointField(field string, v []float64) (gg.Point, error) {
	switch len(v) {
	case 0:
		return gg.Point{}, nil
	case 2:
		return gg.Pt(v[0], v[1]), nil
	}
	return gg.Point{}, configErr(field, fmt.Sprintf("%d values, want [x, y]", len(v)))
}
