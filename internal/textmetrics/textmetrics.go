// Package textmetrics measures and rasterizes the small amount of text
// amiwb draws itself: window titles, menu labels, and icon labels. This
// replaces the Xft dependency named at spec.md §6's interface boundary.
package textmetrics

import (
	"image"
	"image/draw"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Face is a cached, sized font face plus its drawer-ready metrics.
type Face struct {
	face font.Face
	size float64
}

var (
	once   sync.Once
	parsed *truetype.Font
)

func builtinFont() *truetype.Font {
	once.Do(func() {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			panic("textmetrics: embedded font failed to parse: " + err.Error())
		}
		parsed = f
	})
	return parsed
}

// NewFace builds a Face at the given point size, using the corpus's
// built-in Go font as the default when no system font is configured (font
// loading/selection itself is an external collaborator per spec.md §1).
func NewFace(size float64) *Face {
	f := truetype.NewFace(builtinFont(), &truetype.Options{
		Size: size,
		DPI:  96,
	})
	return &Face{face: f, size: size}
}

// Width returns the pixel width of s when drawn with this face, used for
// icon-label truncation (spec.md §4.E) and menu/track layout (spec.md §4.F).
func (fc *Face) Width(s string) int {
	var w fixed.Int26_6
	for _, r := range s {
		adv, ok := fc.face.GlyphAdvance(r)
		if !ok {
			continue
		}
		w += adv
	}
	return w.Ceil()
}

// Height returns the line height (ascent+descent) for layout that needs a
// fixed row pitch, e.g. names-mode listing.
func (fc *Face) Height() int {
	m := fc.face.Metrics()
	return (m.Ascent + m.Descent).Ceil()
}

// Draw rasterizes s onto dst at baseline origin (x, y) in color c.
func (fc *Face) Draw(dst draw.Image, x, y int, s string, c image.Image) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  c,
		Face: fc.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// Truncate shortens label to at most max runes, appending ".." as amiwb's
// icon labels do (spec.md §4.E), without consulting pixel width — the
// caller re-measures with Width if it needs an exact fit.
func Truncate(label string, max int) string {
	r := []rune(label)
	if len(r) <= max {
		return label
	}
	if max <= 2 {
		return string(r[:max])
	}
	return string(r[:max-2]) + ".."
}
