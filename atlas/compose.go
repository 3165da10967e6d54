package atlas

import "image"

// Compose builds the atlas bitmap for layout.
//
// masks[i] is copied into layout.Tiles[i], reading from the mask's top-left
// corner. Mask pixels outside the tile rectangle are dropped, tile pixels
// not covered by the mask stay transparent. A nil mask leaves its tile
// empty; masks beyond len(layout.Tiles) are ignored.
//
// The result has bounds (0, 0, layout.Width, layout.Height).
func Compose(layout Layout, masks []*image.Alpha) *image.Alpha {
	dst := image.NewAlpha(image.Rect(0, 0, max(layout.Width, 0), max(layout.Height, 0)))
	if layout.IsEmpty() {
		return dst
	}

	for i, tile := range layout.Tiles {
		if i >= len(masks) || masks[i] == nil {
			continue
		}
		copyMask(dst, tile, masks[i])
	}
	return dst
}

// copyMask copies the overlap of src and tile row by row.
func copyMask(dst *image.Alpha, tile Tile, src *image.Alpha) {
	sb := src.Bounds()
	w := min(tile.Width, sb.Dx())
	h := min(tile.Height, sb.Dy())
	if w <= 0 || h <= 0 {
		return
	}

	for y := 0; y < h; y++ {
		srcOff := src.PixOffset(sb.Min.X, sb.Min.Y+y)
		dstOff := dst.PixOffset(tile.X, tile.Y+y)
		copy(dst.Pix[dstOff:dstOff+w], src.Pix[srcOff:srcOff+w])
	}
}
