// Package emu provides the software-emulated compute device.
//
// Groups are simulated with goroutine lanes and a cyclic barrier, so the
// whole kernel catalog can execute and be verified on machines without a
// GPU. It is a correctness backend, not a fast one.
package emu

import (
	"github.com/artfadeev/sumbench/device"
	internalemu "github.com/artfadeev/sumbench/internal/device/emu"
)

// Device runs the kernel catalog on the host CPU.
type Device = internalemu.Device

// Compile-time check that Device implements device.Device.
var _ device.Device = (*Device)(nil)

// New creates an emulated device using all available CPUs.
func New() *Device {
	return internalemu.New()
}
