// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

// ErrNoHAL is returned when a device provider does not expose hal types.
var ErrNoHAL = errors.New("gpu: provider does not expose HAL device and queue")

// halProvider is implemented by providers that share their hal objects,
// such as gogpu windows.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// NewTextureUploaderFromProvider creates an uploader on a shared device.
// The provider must also implement HalDevice() any and HalQueue() any
// returning hal.Device and hal.Queue.
func NewTextureUploaderFromProvider(provider gpucontext.DeviceProvider) (*TextureUploader, error) {
	if provider == nil {
		return nil, ErrNilDevice
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, ErrNoHAL
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, ErrNoHAL
	}
	return NewTextureUploader(device, queue)
}
