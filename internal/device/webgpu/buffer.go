//go:build windows

package webgpu

import (
	"fmt"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"
)

type buffer struct {
	dev  *Device
	buf  *wgpu.Buffer
	size int // elements
}

// Upload copies src into the buffer through the queue.
func (b *buffer) Upload(src []uint32) error {
	if len(src) > b.size {
		return fmt.Errorf("webgpu: upload of %d elements exceeds buffer size %d", len(src), b.size)
	}
	if len(src) == 0 {
		return nil
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(&src[0])), len(src)*4)
	b.dev.queue.WriteBuffer(b.buf, 0, data)
	return nil
}

// Download reads len(dst) elements back through a staging buffer, since
// storage buffers cannot be mapped directly.
func (b *buffer) Download(dst []uint32) error {
	if len(dst) > b.size {
		return fmt.Errorf("webgpu: download of %d elements exceeds buffer size %d", len(dst), b.size)
	}
	if len(dst) == 0 {
		return nil
	}
	size := uint64(len(dst)) * 4

	staging := b.dev.dev.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer staging.Release()

	encoder := b.dev.dev.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(b.buf, 0, staging, 0, size)
	cmdBuffer := encoder.Finish(nil)
	b.dev.queue.Submit(cmdBuffer)

	if err := staging.MapAsync(b.dev.dev, wgpu.MapModeRead, 0, size); err != nil {
		return fmt.Errorf("webgpu: failed to map staging buffer: %w", err)
	}

	mappedPtr := staging.GetMappedRange(0, size)
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	out := unsafe.Slice((*byte)(unsafe.Pointer(&dst[0])), size)
	copy(out, mappedSlice)
	staging.Unmap()

	return nil
}

func (b *buffer) Release() {
	if b.buf != nil {
		b.buf.Release()
		b.buf = nil
	}
}
