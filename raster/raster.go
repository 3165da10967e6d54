// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster renders text outlines into anti-aliased grayscale masks.
//
// Coverage is computed by golang.org/x/image/vector, which accumulates
// signed area per pixel. The mask is exactly the requested size; geometry
// outside it is clipped, which is how an over-wide preview gets cropped.
package raster

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/styleatlas/text"
)

// Rasterizer fills outlines into *image.Alpha masks.
// A Rasterizer reuses its coverage buffer between calls and must not be
// shared between goroutines.
type Rasterizer struct {
	z     vector.Rasterizer
	gamma float64
	lut   *[256]uint8
}

// NewRasterizer creates a rasterizer with the given gamma.
// Gamma 1 (or any non-positive or non-finite value) keeps coverage linear.
func NewRasterizer(gamma float64) *Rasterizer {
	r := &Rasterizer{gamma: 1}
	if gamma > 0 && !math.IsInf(gamma, 0) && gamma != 1 {
		r.gamma = gamma
		r.lut = gammaTable(gamma)
	}
	return r
}

// Gamma returns the effective gamma.
func (r *Rasterizer) Gamma() float64 {
	return r.gamma
}

// Rasterize fills o into a new mask with bounds (0, 0, size.X, size.Y).
// Outline coordinates are pixel coordinates in that mask.
// A nil or empty outline, or an empty size, yields a transparent mask.
func (r *Rasterizer) Rasterize(o *text.Outline, size image.Point) *image.Alpha {
	w, h := max(size.X, 0), max(size.Y, 0)
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 || o.IsEmpty() {
		return mask
	}

	r.z.Reset(w, h)
	r.z.DrawOp = draw.Src
	r.trace(o)
	r.z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	if r.lut != nil {
		for i, c := range mask.Pix {
			mask.Pix[i] = r.lut[c]
		}
	}
	return mask
}

// trace feeds the outline to the vector rasterizer, closing each contour.
func (r *Rasterizer) trace(o *text.Outline) {
	open := false
	for _, seg := range o.Segments {
		p := seg.Points
		switch seg.Op {
		case text.OutlineOpMoveTo:
			if open {
				r.z.ClosePath()
			}
			r.z.MoveTo(f32(p[0].X), f32(p[0].Y))
			open = true
		case text.OutlineOpLineTo:
			r.z.LineTo(f32(p[0].X), f32(p[0].Y))
		case text.OutlineOpQuadTo:
			r.z.QuadTo(f32(p[0].X), f32(p[0].Y), f32(p[1].X), f32(p[1].Y))
		case text.OutlineOpCubicTo:
			r.z.CubeTo(f32(p[0].X), f32(p[0].Y), f32(p[1].X), f32(p[1].Y), f32(p[2].X), f32(p[2].Y))
		}
	}
	if open {
		r.z.ClosePath()
	}
}

// Rasterize is a convenience wrapper that uses a fresh Rasterizer.
func Rasterize(o *text.Outline, size image.Point, gamma float64) *image.Alpha {
	return NewRasterizer(gamma).Rasterize(o, size)
}

// gammaTable maps linear coverage c to 255 * (c/255)^(1/gamma).
func gammaTable(gamma float64) *[256]uint8 {
	var lut [256]uint8
	inv := 1 / gamma
	for i := range lut {
		v := math.Pow(float64(i)/255, inv)*255 + 0.5
		lut[i] = uint8(min(v, 255))
	}
	return &lut
}

func f32(v float64) float32 {
	return float32(v)
}
