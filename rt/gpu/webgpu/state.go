// Package webgpu implements the gpu device contract on top of
// cogentcore/webgpu.
package webgpu

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var (
	ErrNoAdapter = errors.New("webgpu: no suitable adapter")
	ErrNoFormat  = errors.New("webgpu: surface reports no formats")
)

// GPUState owns the WebGPU objects bound to one window.
type GPUState struct {
	Instance *wgpu.Instance
	Surface  *wgpu.Surface
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Config   *wgpu.SurfaceConfiguration
}

// NewGPUState wraps window into a surface, picks an adapter (high
// performance preferred), requests the device and configures the surface
// for the current framebuffer size with vsync.
func NewGPUState(window *glfw.Window) (*GPUState, error) {
	instance := wgpu.CreateInstance(nil)
	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		surface.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: %v", ErrNoAdapter, err)
	}

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		adapter.Release()
		surface.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: request device: %w", err)
	}
	queue := device.GetQueue()

	caps := surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		device.Release()
		adapter.Release()
		surface.Release()
		instance.Release()
		return nil, ErrNoFormat
	}

	width, height := window.GetFramebufferSize()
	config := &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo, // vsync
		AlphaMode:   caps.AlphaModes[0],
	}
	if width > 0 && height > 0 {
		surface.Configure(adapter, device, config)
	}

	return &GPUState{
		Instance: instance,
		Surface:  surface,
		Adapter:  adapter,
		Device:   device,
		Queue:    queue,
		Config:   config,
	}, nil
}

// Backend returns the gpu contract views of the state. They share s and
// are valid until s is released.
func (s *GPUState) Backend() (*Device, *Queue, *Surface) {
	return &Device{state: s}, &Queue{queue: s.Queue}, &Surface{state: s, clear: wgpu.Color{A: 1}}
}

func (s *GPUState) Release() {
	if s.Queue != nil {
		s.Queue.Release()
	}
	if s.Device != nil {
		s.Device.Release()
	}
	if s.Adapter != nil {
		s.Adapter.Release()
	}
	if s.Surface != nil {
		s.Surface.Release()
	}
	if s.Instance != nil {
		s.Instance.Release()
	}
}
