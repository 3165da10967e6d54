// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"image"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/styleatlas"
	"github.com/gogpu/wgpu/hal"
)

var (
	// ErrNilDevice is returned when the uploader has no device or queue.
	ErrNilDevice = errors.New("gpu: device or queue is nil")

	// ErrEmptyAtlas is returned when uploading an atlas without pixels.
	ErrEmptyAtlas = errors.New("gpu: atlas is empty")
)

// TextureUploader creates atlas textures on a hal device.
// Upload must be called on the goroutine that owns the device.
type TextureUploader struct {
	device hal.Device
	queue  hal.Queue
	label  string
}

var _ styleatlas.Uploader = (*TextureUploader)(nil)

// NewTextureUploader creates an uploader for device and queue.
func NewTextureUploader(device hal.Device, queue hal.Queue) (*TextureUploader, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	return &TextureUploader{device: device, queue: queue, label: "style_atlas"}, nil
}

// Upload copies pixels into a new R8Unorm texture.
func (u *TextureUploader) Upload(pixels *image.Alpha) (styleatlas.Texture, error) {
	if pixels == nil {
		return nil, ErrEmptyAtlas
	}
	b := pixels.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyAtlas
	}

	tex, err := u.device.CreateTexture(&hal.TextureDescriptor{
		Label:         u.label,
		Size:          hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatR8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create atlas texture: %w", err)
	}

	view, err := u.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         u.label + "_view",
		Format:        gputypes.TextureFormatR8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		u.device.DestroyTexture(tex)
		return nil, fmt.Errorf("gpu: create atlas texture view: %w", err)
	}

	sampler, err := u.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        u.label + "_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeNearest,
		MinFilter:    gputypes.FilterModeNearest,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		u.device.DestroyTextureView(view)
		u.device.DestroyTexture(tex)
		return nil, fmt.Errorf("gpu: create atlas sampler: %w", err)
	}

	u.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
		},
		tightRows(pixels),
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(w),
			RowsPerImage: uint32(h),
		},
		&hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
	)

	styleatlas.Logger().Debug("gpu: atlas texture created", "width", w, "height", h)

	return &Texture{
		device:  u.device,
		texture: tex,
		view:    view,
		sampler: sampler,
		width:   w,
		height:  h,
	}, nil
}

// tightRows returns the pixel rows without stride padding.
func tightRows(img *image.Alpha) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if img.Stride == w && b.Min == (image.Point{}) {
		return img.Pix[:w*h]
	}

	data := make([]byte, w*h)
	for y := range h {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(data[y*w:(y+1)*w], img.Pix[off:off+w])
	}
	return data
}

// Texture is an uploaded atlas with its view and sampler.
type Texture struct {
	device    hal.Device
	texture   hal.Texture
	view      hal.TextureView
	sampler   hal.Sampler
	width     int
	height    int
	destroyed atomic.Bool
}

var _ styleatlas.Texture = (*Texture)(nil)

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.height }

// View returns the texture view for bind groups, or nil after Destroy.
func (t *Texture) View() hal.TextureView {
	if t.destroyed.Load() {
		return nil
	}
	return t.view
}

// Sampler returns the nearest-filtering sampler, or nil after Destroy.
func (t *Texture) Sampler() hal.Sampler {
	if t.destroyed.Load() {
		return nil
	}
	return t.sampler
}

// Destroy releases the sampler, view and texture.
func (t *Texture) Destroy() {
	if !t.destroyed.CompareAndSwap(false, true) {
		return
	}
	if t.sampler != nil {
		t.device.DestroySampler(t.sampler)
	}
	if t.view != nil {
		t.device.DestroyTextureView(t.view)
	}
	if t.texture != nil {
		t.device.DestroyTexture(t.texture)
	}
}
