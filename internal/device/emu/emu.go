// Package emu implements the device contract in software.
//
// A dispatch is modeled as a batch of fixed-size groups. Groups run in
// parallel across CPU workers; lanes inside a group run as goroutines
// synchronized by a cyclic barrier when the kernel stages values in
// group-local memory, and in plain index order otherwise. Atomic folds into
// the shared accumulator use sync/atomic.
//
// The emulation favors fidelity over speed: it exists so that every kernel in
// the catalog can be executed and verified on any machine, GPU or not.
package emu

import (
	"fmt"
	"runtime"

	"github.com/artfadeev/sumbench/internal/device"
	"github.com/artfadeev/sumbench/internal/parallel"
)

// Device runs the kernel catalog on the host CPU.
type Device struct {
	cfg parallel.Config
}

// New creates an emulated device using all available CPUs for group
// scheduling.
func New() *Device {
	cfg := parallel.DefaultConfig()
	cfg.MinChunkSize = 1 // groups are coarse units of work already
	return &Device{cfg: cfg}
}

// Name identifies the backend.
func (d *Device) Name() string {
	return fmt.Sprintf("Emulated (%d CPUs)", runtime.NumCPU())
}

// NewBuffer allocates a host-resident buffer of n uint32 elements.
func (d *Device) NewBuffer(n int) (device.Buffer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("emu: buffer size must be positive, got %d", n)
	}
	return &buffer{data: make([]uint32, n)}, nil
}

// Compile looks up the named kernel in the catalog.
func (d *Device) Compile(name string, groupSize int) (device.Kernel, error) {
	spec, ok := kernels[name]
	if !ok {
		return nil, fmt.Errorf("emu: unknown kernel %q", name)
	}
	if groupSize <= 0 {
		return nil, fmt.Errorf("emu: group size must be positive, got %d", groupSize)
	}
	if spec.pow2Group && groupSize&(groupSize-1) != 0 {
		return nil, fmt.Errorf("emu: kernel %q requires a power-of-two group size, got %d", name, groupSize)
	}
	return &kernel{dev: d, name: name, spec: spec}, nil
}

// Release frees backend resources. The emulated device holds none.
func (d *Device) Release() {}

type buffer struct {
	data []uint32
}

func (b *buffer) Upload(src []uint32) error {
	if len(src) > len(b.data) {
		return fmt.Errorf("emu: upload of %d elements exceeds buffer size %d", len(src), len(b.data))
	}
	copy(b.data, src)
	return nil
}

func (b *buffer) Download(dst []uint32) error {
	if len(dst) > len(b.data) {
		return fmt.Errorf("emu: download of %d elements exceeds buffer size %d", len(dst), len(b.data))
	}
	copy(dst, b.data)
	return nil
}

func (b *buffer) Release() {}

type kernel struct {
	dev  *Device
	name string
	spec kernelSpec
}

// Dispatch runs every group of the batch, blocking until all lanes have
// retired.
func (k *kernel) Dispatch(ws device.WorkSize, in, out device.Buffer, n int) error {
	src, ok := in.(*buffer)
	if !ok {
		return fmt.Errorf("emu: input buffer belongs to a different device")
	}
	dst, ok := out.(*buffer)
	if !ok {
		return fmt.Errorf("emu: output buffer belongs to a different device")
	}
	if ws.GroupSize <= 0 || ws.GlobalSize <= 0 || ws.GlobalSize%ws.GroupSize != 0 {
		return fmt.Errorf("emu: invalid work size %+v", ws)
	}
	if n > len(src.data) {
		return fmt.Errorf("emu: element count %d exceeds input buffer size %d", n, len(src.data))
	}

	numGroups := ws.GlobalSize / ws.GroupSize
	acc := &dst.data[0]
	parallel.For(numGroups, func(g int) {
		k.runGroup(g, ws.GroupSize, src.data, acc, n)
	}, k.dev.cfg)
	return nil
}

func (k *kernel) runGroup(groupID, groupSize int, in []uint32, acc *uint32, n int) {
	group := newGroup(groupSize, k.spec.usesBarrier)
	if k.spec.usesBarrier {
		group.runConcurrent(func(lid int) {
			k.spec.fn(k.invocation(group, groupID, groupSize, lid, in, acc, n))
		})
		return
	}
	// Without barriers lanes are independent; index order is as good as any.
	for lid := 0; lid < groupSize; lid++ {
		k.spec.fn(k.invocation(group, groupID, groupSize, lid, in, acc, n))
	}
}

func (k *kernel) invocation(g *Group, groupID, groupSize, lid int, in []uint32, acc *uint32, n int) *Invocation {
	return &Invocation{
		Global:    groupID*groupSize + lid,
		Local:     lid,
		GroupID:   groupID,
		GroupSize: groupSize,
		In:        in,
		N:         n,
		Group:     g,
		acc:       acc,
	}
}
