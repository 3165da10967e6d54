// Package atlas packs rectangular preview bitmaps into a single texture
// atlas.
//
// Tiles are stacked top to bottom in the order given, separated by one
// transparent pixel row. The atlas is as wide as the widest tile and
// narrower tiles are left-aligned. Each tile receives its pixel offset and
// a normalized UV rectangle for texture sampling.
//
// # Usage
//
//	layout := atlas.Pack([]atlas.Size{{10, 5}, {20, 8}}, 256)
//	// layout.Width == 20, layout.Height == 14
//	// layout.Tiles[1].Y == 6
//
//	pixels := atlas.Compose(layout, masks)
//
// Packing is synchronous and keeps no state between calls.
package atlas
