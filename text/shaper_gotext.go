package text

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
)

// GoTextShaper provides HarfBuzz-level text shaping using go-text/typesetting.
// It applies kerning, ligatures and right-to-left ordering, which the
// BuiltinShaper cannot do.
//
// GoTextShaper is safe for concurrent use. It caches parsed font.Font objects
// (which are thread-safe) and creates lightweight font.Face instances per
// Shape() call. The HarfbuzzShaper instances are pooled via sync.Pool since
// they are not concurrent-safe.
type GoTextShaper struct {
	shaperPool sync.Pool

	mu        sync.RWMutex
	fontCache map[*FontSource]*font.Font
}

// NewGoTextShaper creates a new GoTextShaper.
func NewGoTextShaper() *GoTextShaper {
	return &GoTextShaper{
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		fontCache: make(map[*FontSource]*font.Font),
	}
}

// Shape implements the Shaper interface.
// It returns nil when the text is empty or the font cannot be parsed by
// go-text, letting the caller fall back to another shaper.
func (s *GoTextShaper) Shape(text string, src *FontSource, size float64) []ShapedGlyph {
	if text == "" || src == nil {
		return nil
	}

	goTextFont, err := s.getOrCreateFont(src)
	if err != nil {
		return nil
	}
	face := font.NewFace(goTextFont)

	runes := []rune(text)
	dir := detectDirection(runes)

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      face,
		Size:      floatToFixed(size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := s.shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	s.shaperPool.Put(hb)

	return convertGlyphs(output.Glyphs)
}

// getOrCreateFont returns a cached go-text font.Font for src.
func (s *GoTextShaper) getOrCreateFont(src *FontSource) (*font.Font, error) {
	s.mu.RLock()
	if f, ok := s.fontCache[src]; ok {
		s.mu.RUnlock()
		return f, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if f, ok := s.fontCache[src]; ok {
		return f, nil
	}

	data := src.bytes()
	if len(data) == 0 {
		return nil, ErrSourceClosed
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	s.fontCache[src] = face.Font
	return face.Font, nil
}

// RemoveSource drops the cached parsed font for src.
func (s *GoTextShaper) RemoveSource(src *FontSource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.fontCache, src)
}

// detectDirection returns right-to-left when the first strong character
// is Hebrew or Arabic class, left-to-right otherwise.
func detectDirection(runes []rune) di.Direction {
	for _, r := range runes {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.R, bidi.AL:
			return di.DirectionRTL
		case bidi.L:
			return di.DirectionLTR
		}
	}
	return di.DirectionLTR
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func floatToFixed(size float64) fixed.Int26_6 {
	return fixed.Int26_6(size * 64)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

// convertGlyphs converts go-text output glyphs (in visual order) to pen
// positions.
func convertGlyphs(glyphs []shaping.Glyph) []ShapedGlyph {
	if len(glyphs) == 0 {
		return nil
	}

	result := make([]ShapedGlyph, len(glyphs))
	var x float64
	for i, g := range glyphs {
		adv := fixedToFloat(g.Advance)
		result[i] = ShapedGlyph{
			GID:      uint16(g.GlyphID), //nolint:gosec // sfnt glyph indices are uint16
			X:        x + fixedToFloat(g.XOffset),
			Y:        -fixedToFloat(g.YOffset),
			XAdvance: adv,
		}
		x += adv
	}
	return result
}
