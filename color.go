package ggicon

import (
	"fmt"
	"strings"

	"github.com/gogpu/gg"
)

// Common colors used by the built-in presets.
var (
	White = gg.RGB(1, 1, 1)
	Blue  = mustColor("#3B82F6")
	Navy  = mustColor("#1E40AF")
	Red   = mustColor("#EF4444")
)

// ParseColor parses a hex color string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", each with an
// optional leading '#'.
//
// Unlike gg.Hex, which yields opaque black for malformed input,
// ParseColor reports an error so bad configuration is caught before
// drawing.
func ParseColor(s string) (gg.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return gg.RGBA{}, fmt.Errorf("ggicon: color %q: want 3, 4, 6 or 8 hex digits", s)
	}
	for i := 0; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return gg.RGBA{}, fmt.Errorf("ggicon: color %q: invalid hex digit %q", s, hex[i])
		}
	}
	return gg.Hex(hex), nil
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// mustColor is ParseColor for package-level literals.
func mustColor(s string) gg.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// mustPalette parses a list of hex literals.
func mustPalette(hex ...string) []gg.RGBA {
	p := make([]gg.RGBA, len(hex))
	for i, h := range hex {
		p[i] = mustColor(h)
	}
	return p
}

// withAlpha scales the alpha channel of c by a.
func withAlpha(c gg.RGBA, a float64) gg.RGBA {
	c.A *= a
	return c
}

// hexString formats c as "#RRGGBB" and returns the alpha separately,
// the form SVG attributes expect.
func hexString(c gg.RGBA) (string, float64) {
	to8 := func(v float64) int {
		n := int(v*255 + 0.5)
		if n < 0 {
			return 0
		}
		if n > 255 {
			return 255
		}
		return n
	}
	return fmt.Sprintf("#%02X%02X%02X", to8(c.R), to8(c.G), to8(c.B)), c.A
}
