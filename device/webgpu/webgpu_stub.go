//go:build !windows

// Package webgpu provides the GPU compute device backed by WebGPU.
//
// On platforms where the wgpu-native bindings are not built, the device is
// unavailable and callers fall back to the emulated backend.
package webgpu

import (
	"fmt"

	"github.com/artfadeev/sumbench/device"
)

// New reports that the WebGPU device is not built on this platform.
func New() (device.Device, error) {
	return nil, fmt.Errorf("webgpu: not built on this platform")
}

// IsAvailable reports whether WebGPU can be used on this system.
func IsAvailable() bool {
	return false
}
