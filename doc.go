// Package ggicon draws the MMV application icon: a ring of equal pie
// wedges around a heart, with a short text label, rendered with gg.
//
// # Quick Start
//
//	import "github.com/gogpu/ggicon"
//
//	icon, _ := ggicon.Preset("fixed")
//	if err := ggicon.Save("icon.png", icon); err != nil {
//	    log.Fatal(err)
//	}
//
// # Composition
//
// An Icon is drawn in a fixed order: background, optional backdrop disc,
// N wedges, optional halo disc, center glyph, label. Wedge i spans
// 90° − i·360°/N down to 90° − (i+1)·360°/N, so the first wedge starts at
// the top and the ring proceeds clockwise. The glyph is one of:
//   - Parametric: a sampled closed curve such as HeartCurve, filled
//   - Char: a single character from a font
//   - Composite: a heart built from two circles and a triangle
//
// # Coordinate System
//
// Icon offsets (Label.Offset, Composite.Offset) are y-up and relative to
// the canvas center, so (0, -156) is below the middle. Segment angles
// are degrees, 0 pointing east, counter-clockwise positive. Everything is
// converted to gg's y-down pixel space while drawing.
//
// # Output
//
// The raster is always exactly Size×Size pixels. There is no cropping to
// drawn extents. Compose is deterministic for identical input. Save
// writes through a temporary file so a failed call never leaves a
// partial image behind.
//
// # Fonts
//
// Labels and character glyphs name a preferred font by file or family.
// When it cannot be loaded the bundled Go fonts are used instead and a
// warning is logged; see ResolveFont and SetLogger.
package ggicon
