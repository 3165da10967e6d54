// Package text turns preview strings into vector shapes.
//
// The pipeline has three parts:
//
//   - FontSource: a parsed TTF/OTF font, shared across styles
//   - Shaper: positions glyphs for a line of text (HarfBuzz via
//     go-text/typesetting, with a kerning-only fallback)
//   - Shapes: loads glyph outlines with golang.org/x/image/font/sfnt and
//     places them on the pen positions, applying character gap, line gap
//     and skew
//
// # Example usage
//
//	source, err := text.NewFontSourceFromFile("Roboto-Regular.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer source.Close()
//
//	outline, err := text.Shapes(source, "Bold style", 32, text.Props{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	bounds := outline.Bounds // pixel space, y down, origin on the baseline
//
// Outlines are expressed in pixels for the requested pixels-per-em size, so
// they can be handed straight to a rasterizer.
package text
