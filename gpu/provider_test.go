// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

type mockQueue struct{}

type mockAdapter struct{}

// mockProvider implements gpucontext.DeviceProvider for testing.
type mockProvider struct{}

func (m *mockProvider) Device() gpucontext.Device             { return &mockDevice{} }
func (m *mockProvider) Queue() gpucontext.Queue               { return &mockQueue{} }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return &mockAdapter{} }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }
func (m *mockProvider) AdapterInfo() gpucontext.AdapterInfo   { return gpucontext.AdapterInfo{} }

// mockHALProvider also shares hal objects.
type mockHALProvider struct {
	mockProvider
	device hal.Device
	queue  hal.Queue
}

func (m *mockHALProvider) HalDevice() any { return m.device }
func (m *mockHALProvider) HalQueue() any  { return m.queue }

func TestNewTextureUploaderFromProvider(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	u, err := NewTextureUploaderFromProvider(&mockHALProvider{device: device, queue: queue})
	if err != nil {
		t.Fatalf("NewTextureUploaderFromProvider: %v", err)
	}
	if u.device != device || u.queue != queue {
		t.Error("device and queue not taken from provider")
	}

	tex, err := u.Upload(image.NewAlpha(image.Rect(0, 0, 8, 8)))
	if err != nil {
		t.Fatal(err)
	}
	tex.Destroy()
}

func TestMockProviders_ImplementDeviceProvider(t *testing.T) {
	var _ gpucontext.DeviceProvider = (*mockProvider)(nil)
	var _ gpucontext.DeviceProvider = (*mockHALProvider)(nil)
}

func TestNewTextureUploaderFromProvider_Errors(t *testing.T) {
	tests := []struct {
		name     string
		provider gpucontext.DeviceProvider
		want     error
	}{
		{"nil provider", nil, ErrNilDevice},
		{"no hal", &mockProvider{}, ErrNoHAL},
		{"nil hal objects", &mockHALProvider{}, ErrNoHAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTextureUploaderFromProvider(tt.provider); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}
