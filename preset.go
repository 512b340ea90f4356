package ggicon

import (
	"fmt"
	"sort"

	"github.com/gogpu/gg"
)

// DefaultSize is the side length of every built-in preset.
const DefaultSize = 512

// presets maps preset names to constructors. Each call builds fresh
// values so callers may modify the returned Icon.
var presets = map[string]func() Icon{
	// Light wedges over blue, white parametric heart, "MMV alpha" label.
	"alpha": func() Icon {
		return Icon{
			Size:       DefaultSize,
			Background: Blue,
			Wedges: WedgeSpec{
				Count:   5,
				Palette: mustPalette("#BFDBFE", "#BFDBFE", "#BFDBFE", "#BFDBFE", "#BFDBFE"),
				Radius:  200,
				Opacity: 0.6,
			},
			Glyph: Heart(White),
			Label: Label{
				Text:   "MMV alpha",
				Offset: gg.Pt(0, -156),
				Size:   50,
				Color:  White,
				Font:   FontSpec{Family: "DejaVu Sans", Weight: Bold},
			},
		}
	},

	// Dark-to-light wedges, white center disc, two-circle heart.
	"simple": func() Icon {
		return Icon{
			Size:       DefaultSize,
			Background: Blue,
			Wedges: WedgeSpec{
				Count:   5,
				Palette: mustPalette("#1E40AF", "#2563EB", "#3B82F6", "#60A5FA", "#93C5FD"),
				Radius:  180,
			},
			Halo:  &Disc{Radius: 80, Fill: White},
			Glyph: Composite{Size: 30, Offset: gg.Pt(0, 10), Color: Red},
			Label: Label{
				Text:   "MMV",
				Offset: gg.Pt(0, -150),
				Size:   60,
				Color:  White,
				Font:   FontSpec{Family: "Helvetica"},
			},
		}
	},

	// Navy backdrop, outlined translucent wedges, ringed halo, ♥ glyph.
	"fixed": func() Icon {
		return Icon{
			Size:       DefaultSize,
			Background: Blue,
			Backdrop:   &Disc{Radius: 240, Fill: Navy},
			Wedges: WedgeSpec{
				Count:   5,
				Palette: mustPalette("#60A5FA", "#93C5FD", "#BFDBFE", "#DBEAFE", "#EFF6FF"),
				Radius:  180,
				Opacity: 0.8,
				Stroke:  &Stroke{Color: White, Width: 2.8},
			},
			Halo: &Disc{
				Radius: 60,
				Fill:   White,
				Stroke: &Stroke{Color: Blue, Width: 4.2},
			},
			Glyph: Char{Rune: '♥', Size: 83, Color: Red, Font: FontSpec{Weight: Bold}},
			Label: Label{
				Text:   "MMV",
				Offset: gg.Pt(0, -200),
				Size:   67,
				Color:  White,
				Font:   FontSpec{Weight: Bold},
			},
		}
	},
}

// Preset returns a copy of the named built-in icon.
func Preset(name string) (Icon, error) {
	build, ok := presets[name]
	if !ok {
		return Icon{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return build(), nil
}

// PresetNames lists the built-in presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
