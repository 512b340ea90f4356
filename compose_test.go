package ggicon

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/gg"
)

// bundledFonts skips preferred font lookup so results do not depend on
// the fonts installed on the test machine.
var bundledFonts = WithFontResolver(FontResolverFunc(func(spec FontSpec) (*Font, error) {
	return ResolveFont(FontSpec{Weight: spec.Weight})
}))

var testPalette = []gg.RGBA{
	mustColor("#1E40AF"),
	mustColor("#DC2626"),
	mustColor("#16A34A"),
	mustColor("#F59E0B"),
	mustColor("#9333EA"),
}

// scenarioIcon is the 512px, five wedge, parametric heart, "MMV" icon.
func scenarioIcon() Icon {
	return Icon{
		Size:       512,
		Background: Blue,
		Wedges: WedgeSpec{
			Count:   5,
			Palette: testPalette,
			Radius:  200,
			Opacity: 0.6,
		},
		Glyph: Heart(White),
		Label: Label{Text: "MMV", Offset: gg.Pt(0, -156), Size: 48, Color: White},
	}
}

func rgb8(img image.Image, x, y int) [3]int {
	r, g, b, _ := img.At(x, y).RGBA()
	return [3]int{int(r >> 8), int(g >> 8), int(b >> 8)}
}

// over blends fg with alpha a over an opaque bg, in 8-bit channels.
func over(fg, bg gg.RGBA, a float64) [3]int {
	ch := func(f, b float64) int { return int(math.Round((f*a + b*(1-a)) * 255)) }
	return [3]int{ch(fg.R, bg.R), ch(fg.G, bg.G), ch(fg.B, bg.B)}
}

func near(got, want [3]int, tol int) bool {
	for i := range got {
		d := got[i] - want[i]
		if d < -tol || d > tol {
			return false
		}
	}
	return true
}

func TestComposeScenario(t *testing.T) {
	icon := scenarioIcon()
	r, err := Compose(icon, bundledFonts)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	data, err := r.PNG()
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 512 || b.Dy() != 512 {
		t.Fatalf("bounds = %v, want 512x512", b)
	}

	// Each wedge's middle, counting clockwise from the top.
	const sampleR = 125.0
	for i := 0; i < 5; i++ {
		mid := (90 - 72*float64(i) - 36) * math.Pi / 180
		x := int(256 + sampleR*math.Cos(mid))
		y := int(256 - sampleR*math.Sin(mid))
		want := over(testPalette[i], Blue, 0.6)
		if got := rgb8(img, x, y); !near(got, want, 4) {
			t.Errorf("wedge %d at (%d,%d) = %v, want %v", i, x, y, got, want)
		}
	}

	if got, want := rgb8(img, 4, 4), over(Blue, Blue, 1); !near(got, want, 1) {
		t.Errorf("corner = %v, want background %v", got, want)
	}
	if got := rgb8(img, 256, 256); !near(got, [3]int{255, 255, 255}, 2) {
		t.Errorf("center = %v, want white heart", got)
	}

	// The label sits in the lower third.
	if cx, cy, ok := inkCenter(img, image.Rect(100, 340, 412, 480), [3]int{255, 255, 255}); !ok {
		t.Error("no label ink found below the heart")
	} else if math.Abs(cx-256) > 4 || math.Abs(cy-412) > 10 {
		t.Errorf("label ink center = (%.1f, %.1f), want near (256, 412)", cx, cy)
	}
}

func TestComposeDeterministic(t *testing.T) {
	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			icon, err := Preset(name)
			if err != nil {
				t.Fatal(err)
			}
			a, err := Compose(icon, bundledFonts)
			if err != nil {
				t.Fatal(err)
			}
			b, err := Compose(icon, bundledFonts)
			if err != nil {
				t.Fatal(err)
			}
			pa, _ := a.PNG()
			pb, _ := b.PNG()
			if !bytes.Equal(pa, pb) {
				t.Error("identical icons produced different PNG bytes")
			}
		})
	}
}

func TestComposeFixedDimensions(t *testing.T) {
	for _, size := range []int{1, 17, 64, 512} {
		icon := Icon{
			Size:       size,
			Background: Blue,
			Wedges:     WedgeSpec{Count: 3, Palette: testPalette[:3], Radius: float64(size) * 2},
			Glyph:      Parametric{Curve: HeartCurve, Scale: 3, Color: Red},
			Label:      Label{Text: "a label much wider than any canvas here", Size: float64(size) + 40, Color: White},
		}
		r, err := Compose(icon, bundledFonts)
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		if b := r.Bounds(); b != image.Rect(0, 0, size, size) {
			t.Errorf("size %d: bounds = %v", size, b)
		}
	}
}

func TestComposeMirrorSymmetric(t *testing.T) {
	const size = 256
	icon := Icon{
		Size:       size,
		Background: Blue,
		Wedges: WedgeSpec{
			Count:   5,
			Palette: mustPalette("#BFDBFE", "#BFDBFE", "#BFDBFE", "#BFDBFE", "#BFDBFE"),
			Radius:  100,
			Opacity: 0.6,
		},
		Glyph: Heart(White),
	}
	r, err := Compose(icon, bundledFonts)
	if err != nil {
		t.Fatal(err)
	}
	img := r.Image()

	mismatched := 0
	for y := 0; y < size; y++ {
		for x := 0; x < size/2; x++ {
			if !near(rgb8(img, x, y), rgb8(img, size-1-x, y), 8) {
				mismatched++
			}
		}
	}
	if limit := size * size / 200; mismatched > limit {
		t.Errorf("%d pixels differ from their mirror image, want <= %d", mismatched, limit)
	}
}

func TestComposeCenteredText(t *testing.T) {
	tests := []struct {
		name  string
		glyph Glyph
		label Label
	}{
		{"label", nil, Label{Text: "MMV", Size: 48, Color: White, Font: FontSpec{Weight: Bold}}},
		{"char glyph", Char{Rune: '♥', Size: 80, Color: White, Font: FontSpec{Weight: Bold}}, Label{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			icon := Icon{
				Size:       256,
				Background: Navy,
				Wedges:     WedgeSpec{Count: 1, Palette: []gg.RGBA{Navy}, Radius: 10},
				Glyph:      tt.glyph,
				Label:      tt.label,
			}
			r, err := Compose(icon, bundledFonts)
			if err != nil {
				t.Fatal(err)
			}
			cx, cy, ok := inkCenter(r.Image(), r.Bounds(), [3]int{255, 255, 255})
			if !ok {
				t.Fatal("nothing drawn")
			}
			if math.Abs(cx-128) > 4 {
				t.Errorf("horizontal ink center = %.1f, want 128", cx)
			}
			if math.Abs(cy-128) > 12 {
				t.Errorf("vertical ink center = %.1f, want near 128", cy)
			}
		})
	}
}

func TestComposeMissingRuneFallsBackToHeart(t *testing.T) {
	icon := Icon{
		Size:       200,
		Background: Blue,
		Wedges:     WedgeSpec{Count: 1, Palette: []gg.RGBA{Blue}, Radius: 10},
		// Outside the Unicode ranges of the bundled Go fonts.
		Glyph: Char{Rune: '\U0001F600', Size: 80, Color: Red},
	}
	r, err := Compose(icon, bundledFonts)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := rgb8(r.Image(), 100, 100), over(Red, Red, 1); !near(got, want, 2) {
		t.Errorf("center = %v, want substitute heart %v", got, want)
	}
}

func TestComposeCompositeHeart(t *testing.T) {
	icon, err := Preset("simple")
	if err != nil {
		t.Fatal(err)
	}
	r, err := Compose(icon, bundledFonts)
	if err != nil {
		t.Fatal(err)
	}
	img := r.Image()
	red := over(Red, Red, 1)
	// Lobe centers at (256 ± 15, 246) and the triangle just above the tip.
	for _, p := range []image.Point{{241, 246}, {271, 246}, {256, 270}} {
		if got := rgb8(img, p.X, p.Y); !near(got, red, 2) {
			t.Errorf("heart at %v = %v, want %v", p, got, red)
		}
	}
	// Halo shows between the heart and the wedges.
	if got := rgb8(img, 256, 256-70); !near(got, [3]int{255, 255, 255}, 2) {
		t.Errorf("halo = %v, want white", got)
	}
}

func TestComposeStrokedDiscs(t *testing.T) {
	icon, err := Preset("fixed")
	if err != nil {
		t.Fatal(err)
	}
	r, err := Compose(icon, bundledFonts)
	if err != nil {
		t.Fatal(err)
	}
	img := r.Image()
	// Halo ring, backdrop beyond the wedges, backdrop edge.
	if got, want := rgb8(img, 256+60, 256), over(Blue, Blue, 1); !near(got, want, 6) {
		t.Errorf("halo ring = %v, want %v", got, want)
	}
	if got, want := rgb8(img, 256+210, 256), over(Navy, Navy, 1); !near(got, want, 2) {
		t.Errorf("backdrop = %v, want %v", got, want)
	}
}

func TestComposeWedgeStrokeOpacity(t *testing.T) {
	icon := Icon{
		Size:       200,
		Background: Navy,
		Wedges: WedgeSpec{
			Count:   1,
			Palette: []gg.RGBA{White},
			Radius:  50,
			Opacity: 0.5,
			Stroke:  &Stroke{Color: Red, Width: 10},
		},
	}
	r, err := Compose(icon, bundledFonts)
	if err != nil {
		t.Fatal(err)
	}
	// Outer half of the edge, past the fill.
	if got, want := rgb8(r.Image(), 100+53, 100), over(Red, Navy, 0.5); !near(got, want, 3) {
		t.Errorf("wedge edge = %v, want %v", got, want)
	}
}

func TestComposeInvalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Icon)
	}{
		{"palette mismatch", func(ic *Icon) { ic.Wedges.Palette = ic.Wedges.Palette[:4] }},
		{"flat curve", func(ic *Icon) {
			ic.Glyph = Parametric{Curve: func(float64) (float64, float64) { return 1, 1 }, Scale: 0.3}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			icon := scenarioIcon()
			tt.modify(&icon)
			r, err := Compose(icon, bundledFonts)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Compose() error = %v, want ErrInvalidConfig", err)
			}
			if strings.Contains(err.Error(), "draw") {
				t.Errorf("Compose() error = %v, want rejection before drawing", err)
			}
			if r != nil {
				t.Error("Compose() returned a raster with an error")
			}
		})
	}
}

// inkCenter returns the center of the bounding box of pixels within rect
// close to col. Glyph shapes weigh unevenly, so the box center is what
// reflects text placement.
func inkCenter(img image.Image, rect image.Rectangle, col [3]int) (x, y float64, ok bool) {
	var box image.Rectangle
	for py := rect.Min.Y; py < rect.Max.Y; py++ {
		for px := rect.Min.X; px < rect.Max.X; px++ {
			if near(rgb8(img, px, py), col, 40) {
				box = box.Union(image.Rect(px, py, px+1, py+1))
			}
		}
	}
	if box.Empty() {
		return 0, 0, false
	}
	return float64(box.Min.X+box.Max.X) / 2, float64(box.Min.Y+box.Max.Y) / 2, true
}

type failingCloser struct{}

func (failingCloser) Close() error { return errors.New("busy") }

func TestComposerReleaseLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	c := &composer{log: slog.New(slog.NewTextHandler(&buf, nil))}

	c.release("context", failingCloser{})

	out := buf.String()
	for _, want := range []string{"level=WARN", "release failed", "resource=context", "err=busy"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}
