package text

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
)

// ShapedGlyph is a glyph positioned on a line.
// X, Y is the glyph origin relative to the line start on the baseline,
// in pixels with Y growing downward.
type ShapedGlyph struct {
	GID      uint16
	X, Y     float64
	XAdvance float64
}

// Shaper converts a single line of text into positioned glyphs.
type Shaper interface {
	Shape(text string, src *FontSource, size float64) []ShapedGlyph
}

// BuiltinShaper positions glyphs using the font's cmap, advances and kern
// table through golang.org/x/image/font/sfnt. It does no ligature
// substitution or bidi reordering.
//
// BuiltinShaper is stateless and safe for concurrent use.
type BuiltinShaper struct{}

// Shape implements the Shaper interface.
func (BuiltinShaper) Shape(text string, src *FontSource, size float64) []ShapedGlyph {
	if text == "" {
		return nil
	}
	f, err := src.sfnt()
	if err != nil {
		return nil
	}

	var buf sfnt.Buffer
	ppem := floatToFixed(size)
	runes := []rune(text)
	result := make([]ShapedGlyph, 0, len(runes))

	var x float64
	prev := sfnt.GlyphIndex(0)
	for i, r := range runes {
		gid, err := f.GlyphIndex(&buf, r)
		if err != nil {
			gid = 0
		}

		if i > 0 {
			if kern, err := f.Kern(&buf, prev, gid, ppem, font.HintingNone); err == nil {
				x += fixedToFloat(kern)
			}
		}

		adv, err := f.GlyphAdvance(&buf, gid, ppem, font.HintingNone)
		if err != nil {
			adv = 0
		}

		result = append(result, ShapedGlyph{
			GID:      uint16(gid),
			X:        x,
			XAdvance: fixedToFloat(adv),
		})
		x += fixedToFloat(adv)
		prev = gid
	}
	return result
}

var (
	shaperMu     sync.RWMutex
	globalShaper Shaper = NewGoTextShaper()
)

// SetShaper sets the shaper used by Shapes when Props.Shaper is nil.
// Passing nil restores the default GoTextShaper.
//
// SetShaper is safe for concurrent use.
func SetShaper(s Shaper) {
	shaperMu.Lock()
	defer shaperMu.Unlock()
	if s == nil {
		s = NewGoTextShaper()
	}
	globalShaper = s
}

// GetShaper returns the current global shaper.
func GetShaper() Shaper {
	shaperMu.RLock()
	defer shaperMu.RUnlock()
	return globalShaper
}
