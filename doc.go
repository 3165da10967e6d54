// Package styleatlas renders font-style previews into a packed texture
// atlas.
//
// # Overview
//
// A style editor shows every font style as a small image of its name drawn
// in that style. styleatlas shapes each preview text with the style's
// font, rasterizes it into an anti-aliased alpha mask, stacks the masks in
// one atlas and hands the atlas to a GPU uploader. Each preview gets its
// pixel offset and UV rectangle so it can be drawn from the shared texture.
//
// # Quick Start
//
//	font, err := text.NewFontSourceFromFile("Roboto-Regular.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	b, err := styleatlas.NewBuilder(styleatlas.WithDPI(144))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Close()
//
//	images, err := b.Build(ctx, []styleatlas.Style{
//	    {Name: "Regular", Font: font, Props: styleatlas.FontProps{SizeMM: 6}},
//	    {Name: "Wide", Font: font, Props: styleatlas.FontProps{SizeMM: 6, CharGap: 0.2}},
//	})
//
// # Background rebuilds
//
// StyleImagesJob splits the work in two: Process does the CPU work and can
// run on any goroutine, Finalize uploads the atlas through an Uploader and
// publishes the result to a StyleManager. The gpu package provides an
// Uploader backed by gogpu/wgpu.
//
// # Packages
//
//   - atlas: vertical strip packing and compositing
//   - text: font sources, shaping and outlines
//   - raster: anti-aliased mask rasterization
//   - gpu: texture upload
//   - camera: 3D to screen projection for selection logic
package styleatlas
