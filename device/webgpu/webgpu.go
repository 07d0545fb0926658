//go:build windows

// Package webgpu provides the GPU compute device backed by WebGPU.
//
// WebGPU is a cross-platform compute API; this backend selects the
// high-performance adapter when one exists and compiles the reduction
// kernels to WGSL. Call Release() when done to free GPU resources.
package webgpu

import (
	"github.com/artfadeev/sumbench/device"
	internalwebgpu "github.com/artfadeev/sumbench/internal/device/webgpu"
)

// Device runs the kernel catalog on the selected GPU adapter.
type Device = internalwebgpu.Device

// Compile-time check that Device implements device.Device.
var _ device.Device = (*Device)(nil)

// New creates a WebGPU device.
//
// Returns an error if WebGPU initialization fails (e.g. no compatible GPU).
func New() (*Device, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU is available on the current system. It is
// useful for graceful fallback to the emulated device:
//
//	if webgpu.IsAvailable() {
//	    dev, _ = webgpu.New()
//	} else {
//	    dev = emu.New()
//	}
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
