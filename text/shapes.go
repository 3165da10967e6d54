package text

import (
	"errors"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/unicode/norm"
)

// Props are the font properties that change a preview's shape.
type Props struct {
	// CharGap is extra space between glyphs, as a fraction of the em size.
	CharGap float64

	// LineGap is extra space between lines, as a fraction of the em size.
	LineGap float64

	// Skew shears glyphs horizontally: a point h pixels above the baseline
	// moves h*Skew pixels right. Zero keeps glyphs upright.
	Skew float64

	// Shaper overrides the global shaper. Nil uses GetShaper().
	Shaper Shaper
}

// Shapes converts text into an outline at size pixels per em.
//
// Lines are separated by '\n'. The first baseline is at y = 0 and each next
// line moves down by the font's line height plus LineGap. Text is
// NFC-normalized before shaping. When the shaper returns nothing for a
// non-empty line (for example go-text cannot parse the font), BuiltinShaper
// is used instead.
//
// Colored glyphs (emoji without outlines) are skipped. Any other glyph load
// failure is returned as a *GlyphError.
func Shapes(src *FontSource, s string, size float64, props Props) (*Outline, error) {
	if size <= 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return nil, ErrInvalidSize
	}
	f, err := src.sfnt()
	if err != nil {
		return nil, err
	}

	shaper := props.Shaper
	if shaper == nil {
		shaper = GetShaper()
	}

	loader := &outlineLoader{font: f}
	ppem := floatToFixed(size)

	lineHeight := size
	if m, err := f.Metrics(&loader.buffer, ppem, font.HintingNone); err == nil && m.Height > 0 {
		lineHeight = fixedToFloat(m.Height)
	}
	lineHeight += props.LineGap * size
	gap := props.CharGap * size

	out := &Outline{}
	for li, line := range strings.Split(norm.NFC.String(s), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}

		glyphs := shaper.Shape(line, src, size)
		if len(glyphs) == 0 {
			glyphs = BuiltinShaper{}.Shape(line, src, size)
		}

		baseline := float64(li) * lineHeight
		for gi, g := range glyphs {
			at := placement{
				originX: g.X + float64(gi)*gap,
				originY: baseline + g.Y,
				skew:    props.Skew,
			}
			if err := loader.appendGlyph(out, g.GID, ppem, at); err != nil {
				if errors.Is(err, sfnt.ErrColoredGlyph) {
					continue
				}
				return nil, err
			}
		}
	}
	return out, nil
}
