package styleatlas

import (
	"image"

	"github.com/gogpu/styleatlas/atlas"
	"github.com/gogpu/styleatlas/text"
)

// FontProps are the font properties of a style that affect its preview.
type FontProps struct {
	// SizeMM is the em size in millimetres.
	SizeMM float64

	// CharGap is extra space between glyphs, as a fraction of the em.
	CharGap float64

	// LineGap is extra space between lines, as a fraction of the em.
	LineGap float64

	// Skew shears glyphs horizontally (0 = upright).
	Skew float64
}

// Style is a named font style to preview.
type Style struct {
	// Name identifies the style. It is also the preview text when Text
	// is empty.
	Name string

	// Text is the preview text. Lines are separated by '\n'.
	Text string

	// Font is the style's font. Several styles may share one source.
	Font *text.FontSource

	Props FontProps
}

// PreviewText returns the text drawn for the style.
func (s Style) PreviewText() string {
	if s.Text != "" {
		return s.Text
	}
	return s.Name
}

// UV is a normalized texture coordinate.
type UV struct {
	U, V float32
}

// StyleImage describes one style's preview inside the atlas.
type StyleImage struct {
	Style Style

	// Bounds is the preview's shape bounding box in pixels, relative to the
	// first baseline, before cropping.
	Bounds text.Rect

	// TexSize is the preview size in the atlas after cropping.
	TexSize atlas.Size

	// Offset is the top-left corner of the preview in the atlas.
	Offset image.Point

	// UV0 and UV1 are the top-left and bottom-right texture coordinates.
	UV0, UV1 UV

	// Texture is the uploaded atlas. It is nil until the job is finalized
	// with an Uploader.
	Texture Texture
}

// StyleImages is the output of a build: one packed atlas for all styles.
type StyleImages struct {
	Width  int
	Height int

	// Pixels is the single-channel atlas, bounds (0, 0, Width, Height).
	Pixels *image.Alpha

	Images []StyleImage
}
