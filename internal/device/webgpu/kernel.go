//go:build windows

package webgpu

import (
	"encoding/binary"
	"fmt"

	"github.com/artfadeev/sumbench/internal/device"
	"github.com/go-webgpu/webgpu/wgpu"
)

type kernel struct {
	dev       *Device
	name      string
	pipeline  *wgpu.ComputePipeline
	groupSize int
}

// Dispatch submits one compute pass. The queue submit plus the subsequent
// mapped readback makes the call synchronous from the driver's perspective.
func (k *kernel) Dispatch(ws device.WorkSize, in, out device.Buffer, n int) error {
	src, ok := in.(*buffer)
	if !ok {
		return fmt.Errorf("webgpu: input buffer belongs to a different device")
	}
	dst, ok := out.(*buffer)
	if !ok {
		return fmt.Errorf("webgpu: output buffer belongs to a different device")
	}
	if ws.GroupSize != k.groupSize {
		return fmt.Errorf("webgpu: kernel %s compiled for group size %d, dispatched with %d", k.name, k.groupSize, ws.GroupSize)
	}
	if ws.GlobalSize <= 0 || ws.GlobalSize%ws.GroupSize != 0 {
		return fmt.Errorf("webgpu: invalid work size %+v", ws)
	}
	if n > src.size {
		return fmt.Errorf("webgpu: element count %d exceeds input buffer size %d", n, src.size)
	}

	// Params uniform: element count, 16-byte aligned.
	params := make([]byte, 16)
	binary.LittleEndian.PutUint32(params[0:4], uint32(n))
	bufferParams := k.dev.createUniformBuffer(params)
	defer bufferParams.Release()

	bindGroupLayout := k.pipeline.GetBindGroupLayout(0)
	bindGroup := k.dev.dev.CreateBindGroupSimple(bindGroupLayout, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, src.buf, 0, uint64(src.size)*4),
		wgpu.BufferBindingEntry(1, dst.buf, 0, uint64(dst.size)*4),
		wgpu.BufferBindingEntry(2, bufferParams, 0, 16),
	})
	defer bindGroup.Release()

	encoder := k.dev.dev.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)
	computePass.SetPipeline(k.pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)
	computePass.DispatchWorkgroups(uint32(ws.GlobalSize/ws.GroupSize), 1, 1)
	computePass.End()

	cmdBuffer := encoder.Finish(nil)
	k.dev.queue.Submit(cmdBuffer)

	return nil
}
