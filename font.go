package ggicon

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/fontscan"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Weight selects the bundled fallback face.
type Weight int

const (
	Regular Weight = iota
	Bold
)

func (w Weight) String() string {
	if w == Bold {
		return "bold"
	}
	return "regular"
}

// FontSpec names the preferred font for a label or character glyph.
// Path wins over Family. With neither set, the bundled Go font of the
// requested Weight is used directly.
type FontSpec struct {
	Path   string
	Family string
	Weight Weight
}

// Font is a resolved font source.
type Font struct {
	Source *text.FontSource

	// Fallback reports whether the bundled Go font was used instead of
	// the preferred one.
	Fallback bool
}

// Close releases the font source.
func (f *Font) Close() error {
	if f == nil || f.Source == nil {
		return nil
	}
	return f.Source.Close()
}

// FontResolver turns a FontSpec into a usable font.
type FontResolver interface {
	Resolve(spec FontSpec) (*Font, error)
}

// FontResolverFunc adapts a function to FontResolver.
type FontResolverFunc func(spec FontSpec) (*Font, error)

// Resolve implements FontResolver.
func (f FontResolverFunc) Resolve(spec FontSpec) (*Font, error) { return f(spec) }

// errNoPreferredFont marks a spec that names no preferred font.
var errNoPreferredFont = errors.New("no preferred font")

// ResolveFont loads the preferred font of spec, falling back to the
// bundled Go font of the same weight. The fallback is a normal outcome,
// logged at Warn when a preferred font was named but unusable; an error
// is returned only if the bundled font itself cannot be parsed.
func ResolveFont(spec FontSpec) (*Font, error) {
	src, err := loadPreferred(spec)
	if err == nil {
		Logger().Debug("ggicon: font resolved", "name", src.Name())
		return &Font{Source: src}, nil
	}
	if !errors.Is(err, errNoPreferredFont) {
		Logger().Warn("ggicon: preferred font unavailable, using bundled font",
			"path", spec.Path, "family", spec.Family, "weight", spec.Weight, "err", err)
	}

	src, err = text.NewFontSource(bundled(spec.Weight))
	if err != nil {
		return nil, fmt.Errorf("ggicon: bundled %s font: %w", spec.Weight, err)
	}
	return &Font{Source: src, Fallback: true}, nil
}

func bundled(w Weight) []byte {
	if w == Bold {
		return gobold.TTF
	}
	return goregular.TTF
}

func loadPreferred(spec FontSpec) (*text.FontSource, error) {
	path := spec.Path
	if path == "" && spec.Family != "" {
		var err error
		if path, err = findSystemFont(spec.Family, spec.Weight); err != nil {
			return nil, err
		}
	}
	if path == "" {
		return nil, errNoPreferredFont
	}
	if isCollection(path) {
		return nil, fmt.Errorf("font collection %s not supported", path)
	}
	return text.NewFontSourceFromFile(path)
}

// findSystemFont returns the installed upright face of family closest to
// weight w. Font headers are read in place; no font index is written.
func findSystemFont(family string, w Weight) (string, error) {
	dirs, err := fontscan.DefaultFontDirectories(scanLogger{Logger()})
	if err != nil {
		return "", fmt.Errorf("font directories: %w", err)
	}
	return findFamily(dirs, family, w)
}

// findFamily walks dirs in lexical order and returns the best matching
// .ttf or .otf file. Ties keep the first file found.
func findFamily(dirs []string, family string, w Weight) (string, error) {
	want := familyKey(family)
	best, bestScore := "", math.Inf(1)
	for _, dir := range dirs {
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || !isFontFile(path) {
				return nil
			}
			desc, ok := describeFont(path)
			if !ok || familyKey(desc.Family) != want {
				return nil
			}
			if score := aspectDistance(desc.Aspect, w); score < bestScore {
				best, bestScore = path, score
			}
			return nil
		})
	}
	if best == "" {
		return "", fmt.Errorf("family %q not installed", family)
	}
	return best, nil
}

func describeFont(path string) (font.Description, bool) {
	f, err := os.Open(path)
	if err != nil {
		return font.Description{}, false
	}
	defer f.Close()
	ld, err := ot.NewLoader(f)
	if err != nil {
		return font.Description{}, false
	}
	desc, _ := font.Describe(ld, nil)
	return desc, true
}

// aspectDistance ranks a face against the requested weight. Slanted and
// condensed or expanded faces rank below any upright normal-width face.
func aspectDistance(a font.Aspect, w Weight) float64 {
	d := math.Abs(float64(a.Weight - w.fontWeight()))
	if a.Style != font.StyleNormal {
		d += 2000
	}
	if a.Stretch != 0 && a.Stretch != font.StretchNormal {
		d += 1000
	}
	return d
}

func (w Weight) fontWeight() font.Weight {
	if w == Bold {
		return font.WeightBold
	}
	return font.WeightNormal
}

// familyKey folds case and separators, so "DejaVu Sans" matches
// "dejavusans".
func familyKey(family string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(family))
}

func isFontFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf", ".otf":
		return true
	}
	return false
}

func isCollection(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttc", ".otc":
		return true
	}
	return false
}

// scanLogger forwards fontscan diagnostics to the package logger.
type scanLogger struct{ l *slog.Logger }

func (s scanLogger) Printf(format string, args ...interface{}) {
	s.l.Debug("ggicon: fontscan: " + fmt.Sprintf(format, args...))
}
