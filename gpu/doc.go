// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

// Package gpu uploads style preview atlases to the GPU through wgpu/hal.
//
// TextureUploader implements styleatlas.Uploader. It creates a single
// channel R8Unorm texture sized to the atlas, a view for binding and a
// nearest-filtered sampler, then copies the atlas rows with
// queue.WriteTexture.
//
//	uploader, err := gpu.NewTextureUploader(device, queue)
//	job, err := styleatlas.NewStyleImagesJob(builder, styleatlas.StyleImagesData{
//	    Styles:   styles,
//	    Result:   manager,
//	    Uploader: uploader,
//	})
//
// Build with the nogpu tag to exclude this package.
package gpu
