// Package device exposes the compute-backend contract the benchmark driver
// dispatches reduction kernels through.
//
// Implementations:
//   - device/emu: software-emulated groups, runs anywhere
//   - device/webgpu: GPU compute via WebGPU
package device

import internaldevice "github.com/artfadeev/sumbench/internal/device"

// DefaultGroupSize is the number of lanes per cooperating group unless the
// driver overrides it.
const DefaultGroupSize = internaldevice.DefaultGroupSize

// Device is a compute backend able to run the reduction kernel catalog.
type Device = internaldevice.Device

// Buffer is a device-resident array of uint32 values.
type Buffer = internaldevice.Buffer

// Kernel is a compiled reduction kernel.
type Kernel = internaldevice.Kernel

// WorkSize describes one dispatch: lanes per group and total lanes.
type WorkSize = internaldevice.WorkSize
