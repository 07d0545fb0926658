//go:build windows

// Package webgpu implements the device contract on a GPU.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings.
package webgpu

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/artfadeev/sumbench/internal/device"
	"github.com/go-webgpu/webgpu/wgpu"
)

// Device runs the kernel catalog on the adapter WebGPU selects.
type Device struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	dev      *wgpu.Device
	queue    *wgpu.Queue

	// Shader and pipeline cache, keyed by kernel name and group size.
	shaders   map[string]*wgpu.ShaderModule
	pipelines map[string]*wgpu.ComputePipeline
	mu        sync.RWMutex

	adapterInfo *wgpu.AdapterInfoGo
}

// New creates a WebGPU device, preferring the high-performance adapter.
// Returns an error if WebGPU is not available or initialization fails.
func New() (d *Device, err error) {
	// Recover from panic if the wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			d = nil
			err = fmt.Errorf("webgpu: native library not available: %v", r)
		}
	}()

	instance, instanceErr := wgpu.CreateInstance(nil)
	if instanceErr != nil {
		return nil, fmt.Errorf("webgpu: failed to create instance: %w", instanceErr)
	}
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request adapter: %w", adapterErr)
	}

	// Adapter info is optional; Name() falls back when it is unavailable.
	adapterInfo, infoErr := adapter.GetInfo()
	if infoErr != nil {
		adapterInfo = nil
	}

	dev, devErr := adapter.RequestDevice(nil)
	if devErr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request device: %w", devErr)
	}

	queue := dev.GetQueue()
	if queue == nil {
		dev.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to get queue")
	}

	return &Device{
		instance:    instance,
		adapter:     adapter,
		dev:         dev,
		queue:       queue,
		shaders:     make(map[string]*wgpu.ShaderModule),
		pipelines:   make(map[string]*wgpu.ComputePipeline),
		adapterInfo: adapterInfo,
	}, nil
}

// IsAvailable checks if WebGPU is usable on this system.
func IsAvailable() (available bool) {
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return false
	}
	defer instance.Release()

	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		return false
	}
	adapter.Release()
	return true
}

// Name identifies the backend and its adapter.
func (d *Device) Name() string {
	if d.adapterInfo != nil {
		return fmt.Sprintf("WebGPU (%s %s)", d.adapterInfo.Vendor, d.adapterInfo.Device)
	}
	return "WebGPU"
}

// NewBuffer allocates a storage buffer of n uint32 elements.
func (d *Device) NewBuffer(n int) (device.Buffer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("webgpu: buffer size must be positive, got %d", n)
	}
	buf := d.dev.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst | wgpu.BufferUsageCopySrc,
		Size:  uint64(n) * 4,
	})
	return &buffer{dev: d, buf: buf, size: n}, nil
}

// Compile builds the named kernel's pipeline for the given group size.
// Shaders and pipelines are cached, so recompiling the same kernel is free.
func (d *Device) Compile(name string, groupSize int) (device.Kernel, error) {
	source, err := shaderSource(name, groupSize)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s_wg%d", name, groupSize)
	pipeline := d.getOrCreatePipeline(key, source)
	return &kernel{dev: d, name: name, pipeline: pipeline, groupSize: groupSize}, nil
}

// Release frees all WebGPU resources.
func (d *Device) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, p := range d.pipelines {
		p.Release()
	}
	d.pipelines = nil
	for _, s := range d.shaders {
		s.Release()
	}
	d.shaders = nil

	if d.queue != nil {
		d.queue.Release()
		d.queue = nil
	}
	if d.dev != nil {
		d.dev.Release()
		d.dev = nil
	}
	if d.adapter != nil {
		d.adapter.Release()
		d.adapter = nil
	}
	if d.instance != nil {
		d.instance.Release()
		d.instance = nil
	}
}

func (d *Device) getOrCreatePipeline(key, source string) *wgpu.ComputePipeline {
	d.mu.RLock()
	if pipeline, exists := d.pipelines[key]; exists {
		d.mu.RUnlock()
		return pipeline
	}
	d.mu.RUnlock()

	shader := d.dev.CreateShaderModuleWGSL(source)
	pipeline := d.dev.CreateComputePipelineSimple(nil, shader, "main")

	d.mu.Lock()
	d.shaders[key] = shader
	d.pipelines[key] = pipeline
	d.mu.Unlock()

	return pipeline
}

// createUniformBuffer creates a uniform buffer with 16-byte alignment.
func (d *Device) createUniformBuffer(data []byte) *wgpu.Buffer {
	size := uint64(len(data))
	alignedSize := (size + 15) &^ 15

	buf := d.dev.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:             alignedSize,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buf.GetMappedRange(0, alignedSize)
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), alignedSize)
	copy(mappedSlice, data)
	buf.Unmap()

	return buf
}
