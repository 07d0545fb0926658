// Package device defines the contract between the benchmark driver and a
// data-parallel compute backend.
//
// Implementations:
//   - device/emu: software-emulated groups (pure Go, runs anywhere)
//   - device/webgpu: GPU compute via WebGPU
//
// A backend exposes a catalog of named reduction kernels. The driver compiles
// a kernel once, then dispatches it repeatedly against an uploaded input
// buffer and a single-element result buffer.
package device

// DefaultGroupSize is the number of lanes per cooperating group unless the
// driver overrides it.
const DefaultGroupSize = 128

// ValuesPerWorkItem is how many input elements each lane of the looping
// kernels (sum_loop, sum_loop_coalesced) folds into its private accumulator.
const ValuesPerWorkItem = 64

// WorkSize describes one dispatch: lanes per group and total lanes.
// GlobalSize must be a multiple of GroupSize; lanes whose assigned range lies
// past the element count contribute nothing.
type WorkSize struct {
	GroupSize  int
	GlobalSize int
}

// Device is a compute backend able to run the reduction kernel catalog.
type Device interface {
	// Name identifies the backend (and adapter, where one exists).
	Name() string

	// NewBuffer allocates a device-resident buffer of n uint32 elements.
	NewBuffer(n int) (Buffer, error)

	// Compile prepares the named kernel for the given group size.
	// Unknown kernel names are an error.
	Compile(kernel string, groupSize int) (Kernel, error)

	// Release frees all backend resources.
	Release()
}

// Buffer is a device-resident array of uint32 values.
type Buffer interface {
	// Upload copies src into the buffer starting at element 0.
	Upload(src []uint32) error

	// Download copies len(dst) elements out of the buffer into dst.
	Download(dst []uint32) error

	// Release frees the buffer.
	Release()
}

// Kernel is a compiled reduction kernel. Dispatch blocks until the device has
// retired every lane; the caller observes the result via out.Download.
type Kernel interface {
	Dispatch(ws WorkSize, in, out Buffer, n int) error
}
