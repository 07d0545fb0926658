package reduce

import (
	"fmt"

	"github.com/artfadeev/sumbench/internal/device"
)

// DeviceReducer runs one strategy on a compute backend. Construction uploads
// the input once and compiles the kernel once; every Sum call is then a fresh
// trial: clear the result, dispatch, read back.
type DeviceReducer struct {
	strategy Strategy
	kernel   device.Kernel

	in  device.Buffer
	out device.Buffer

	n         int
	groupSize int
}

// NewDeviceReducer compiles strategy's kernel on dev and materializes input
// in device memory. The device-resident copy is write-once; Sum never
// touches it again.
func NewDeviceReducer(dev device.Device, strategy Strategy, input []uint32, groupSize int) (*DeviceReducer, error) {
	kernel, err := dev.Compile(strategy.Name, groupSize)
	if err != nil {
		return nil, fmt.Errorf("reduce: compile %s: %w", strategy.Name, err)
	}

	in, err := dev.NewBuffer(len(input))
	if err != nil {
		return nil, fmt.Errorf("reduce: allocate input buffer: %w", err)
	}
	if err := in.Upload(input); err != nil {
		in.Release()
		return nil, fmt.Errorf("reduce: upload input: %w", err)
	}

	out, err := dev.NewBuffer(1)
	if err != nil {
		in.Release()
		return nil, fmt.Errorf("reduce: allocate result buffer: %w", err)
	}

	return &DeviceReducer{
		strategy:  strategy,
		kernel:    kernel,
		in:        in,
		out:       out,
		n:         len(input),
		groupSize: groupSize,
	}, nil
}

func (r *DeviceReducer) Name() string { return r.strategy.Name }

// Sum runs one trial. The result buffer is zeroed first so nothing leaks
// across trials or strategies.
func (r *DeviceReducer) Sum() (uint32, error) {
	if err := r.out.Upload([]uint32{0}); err != nil {
		return 0, fmt.Errorf("reduce: %s: clear result: %w", r.strategy.Name, err)
	}

	ws := device.WorkSize{
		GroupSize:  r.groupSize,
		GlobalSize: r.strategy.GlobalSize(r.n, r.groupSize),
	}
	if err := r.kernel.Dispatch(ws, r.in, r.out, r.n); err != nil {
		return 0, fmt.Errorf("reduce: %s: dispatch: %w", r.strategy.Name, err)
	}

	result := make([]uint32, 1)
	if err := r.out.Download(result); err != nil {
		return 0, fmt.Errorf("reduce: %s: read result: %w", r.strategy.Name, err)
	}
	return result[0], nil
}

// Release frees the device buffers owned by the reducer.
func (r *DeviceReducer) Release() {
	r.in.Release()
	r.out.Release()
}
