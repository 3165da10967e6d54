package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNilSource is returned when a nil FontSource is used.
	ErrNilSource = errors.New("text: font source is nil")

	// ErrSourceClosed is returned when a closed FontSource is used.
	ErrSourceClosed = errors.New("text: font source is closed")

	// ErrInvalidSize is returned when the pixels-per-em size is not positive.
	ErrInvalidSize = errors.New("text: size must be positive")
)

// GlyphError reports a glyph whose outline could not be loaded.
type GlyphError struct {
	GID uint16
	Err error
}

func (e *GlyphError) Error() string {
	return "text: failed to load glyph outline: " + e.Err.Error()
}

func (e *GlyphError) Unwrap() error {
	return e.Err
}
