package atlas

import "image"

// DefaultPadding is the number of transparent pixel rows between tiles.
const DefaultPadding = 1

// Size is the pixel size of a tile before packing.
type Size struct {
	Width, Height int
}

// Tile describes a packed tile.
type Tile struct {
	// Size is the tile size after cropping to the packer's MaxWidth.
	Size

	// X, Y is the top-left corner in atlas pixel space.
	X, Y int

	// UV coordinates [0, 1] for texture sampling.
	U0, V0, U1, V1 float32
}

// Bounds returns the tile rectangle in atlas pixel space.
func (t Tile) Bounds() image.Rectangle {
	return image.Rect(t.X, t.Y, t.X+t.Width, t.Y+t.Height)
}

// Layout is the result of packing: atlas dimensions and one Tile per input
// size, in input order.
type Layout struct {
	Width  int
	Height int
	Tiles  []Tile
}

// IsEmpty reports whether the atlas has no pixels.
func (l Layout) IsEmpty() bool {
	return l.Width <= 0 || l.Height <= 0
}

// Packer arranges tiles in a single vertical strip.
type Packer struct {
	// MaxWidth is the widest a tile may be. Wider tiles are cropped to
	// MaxWidth: their content is cut off on the right, not scaled.
	// Zero or negative means no limit.
	MaxWidth int

	// Padding is the gap in pixels between consecutive tiles.
	Padding int
}

// NewPacker creates a packer with the given width limit and the default
// one pixel padding.
func NewPacker(maxWidth int) *Packer {
	return &Packer{
		MaxWidth: maxWidth,
		Padding:  DefaultPadding,
	}
}

// Pack places sizes top to bottom, preserving order.
//
// The atlas height is the sum of tile heights plus Padding between each pair
// of tiles; the width is the widest (cropped) tile. An empty input yields a
// zero-sized layout. Negative dimensions are treated as zero.
func (p *Packer) Pack(sizes []Size) Layout {
	if len(sizes) == 0 {
		return Layout{}
	}

	padding := p.Padding
	if padding < 0 {
		padding = 0
	}

	tiles := make([]Tile, len(sizes))
	width, y := 0, 0
	for i, s := range sizes {
		w := max(s.Width, 0)
		h := max(s.Height, 0)
		if p.MaxWidth > 0 && w > p.MaxWidth {
			w = p.MaxWidth
		}

		if i > 0 {
			y += padding
		}
		tiles[i] = Tile{Size: Size{Width: w, Height: h}, X: 0, Y: y}
		y += h

		if w > width {
			width = w
		}
	}

	layout := Layout{Width: width, Height: y, Tiles: tiles}
	layout.assignUV()
	return layout
}

// assignUV divides each tile rectangle by the atlas dimensions.
func (l *Layout) assignUV() {
	for i := range l.Tiles {
		t := &l.Tiles[i]
		t.U0 = normalize(t.X, l.Width)
		t.V0 = normalize(t.Y, l.Height)
		t.U1 = normalize(t.X+t.Width, l.Width)
		t.V1 = normalize(t.Y+t.Height, l.Height)
	}
}

func normalize(v, total int) float32 {
	if total <= 0 {
		return 0
	}
	return float32(float64(v) / float64(total))
}

// Pack is a convenience wrapper around NewPacker(maxWidth).Pack(sizes).
func Pack(sizes []Size, maxWidth int) Layout {
	return NewPacker(maxWidth).Pack(sizes)
}
