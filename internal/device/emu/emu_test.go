package emu

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artfadeev/sumbench/internal/device"
)

func dispatch(t *testing.T, dev *Device, name string, data []uint32, n, groupSize int) uint32 {
	t.Helper()

	k, err := dev.Compile(name, groupSize)
	require.NoError(t, err)

	in, err := dev.NewBuffer(len(data))
	require.NoError(t, err)
	require.NoError(t, in.Upload(data))

	out, err := dev.NewBuffer(1)
	require.NoError(t, err)
	require.NoError(t, out.Upload([]uint32{0}))

	globalSize := (n + groupSize - 1) / groupSize * groupSize
	if name == "sum_loop" || name == "sum_loop_coalesced" {
		lanes := (n + device.ValuesPerWorkItem - 1) / device.ValuesPerWorkItem
		globalSize = (lanes + groupSize - 1) / groupSize * groupSize
	}
	ws := device.WorkSize{GroupSize: groupSize, GlobalSize: globalSize}
	require.NoError(t, k.Dispatch(ws, in, out, n))

	result := make([]uint32, 1)
	require.NoError(t, out.Download(result))
	return result[0]
}

func TestDispatch_AllKernelsSumKnownData(t *testing.T) {
	dev := New()

	n := 1000
	data := make([]uint32, n)
	var want uint32
	for i := range data {
		data[i] = uint32(i + 1)
		want += data[i]
	}

	for name := range kernels {
		for _, groupSize := range []int{4, 16, 128} {
			got := dispatch(t, dev, name, data, n, groupSize)
			assert.Equal(t, want, got, "%s group=%d", name, groupSize)
		}
	}
}

func TestDispatch_LanesBeyondNContributeNothing(t *testing.T) {
	dev := New()

	// Poison the tail of the buffer: any kernel that reads past n will be
	// visibly wrong.
	n := 130
	data := make([]uint32, 256)
	var want uint32
	for i := range data {
		if i < n {
			data[i] = uint32(i + 1)
			want += data[i]
		} else {
			data[i] = 0xDEAD
		}
	}

	for name := range kernels {
		got := dispatch(t, dev, name, data, n, 128)
		assert.Equal(t, want, got, name)
	}
}

func TestDispatch_UnmaskedKernelIsCaughtByTheOracle(t *testing.T) {
	dev := New()

	// One element per lane with the boundary mask omitted: the classic
	// off-by-one the per-trial verification exists to catch.
	unmasked := kernelSpec{fn: func(inv *Invocation) {
		inv.AtomicAdd(inv.In[inv.Global])
	}}
	k := &kernel{dev: dev, name: "sum_unmasked", spec: unmasked}

	n := 100
	data := make([]uint32, 128)
	var want uint32
	for i := range data {
		data[i] = uint32(i + 1)
		if i < n {
			want += data[i]
		}
	}

	in, err := dev.NewBuffer(len(data))
	require.NoError(t, err)
	require.NoError(t, in.Upload(data))
	out, err := dev.NewBuffer(1)
	require.NoError(t, err)

	ws := device.WorkSize{GroupSize: 128, GlobalSize: 128}
	require.NoError(t, k.Dispatch(ws, in, out, n))

	result := make([]uint32, 1)
	require.NoError(t, out.Download(result))
	assert.NotEqual(t, want, result[0], "missing boundary mask must produce a detectable mismatch")
}

func TestCompile_UnknownKernel(t *testing.T) {
	dev := New()
	_, err := dev.Compile("sum_nope", 128)
	assert.Error(t, err)
}

func TestCompile_TreeRejectsNonPowerOfTwoGroup(t *testing.T) {
	dev := New()

	_, err := dev.Compile("sum_tree", 12)
	assert.Error(t, err)

	_, err = dev.Compile("sum_tree", 64)
	assert.NoError(t, err)
}

func TestDispatch_RejectsInvalidWorkSize(t *testing.T) {
	dev := New()

	k, err := dev.Compile("sum_global_atomic", 128)
	require.NoError(t, err)

	in, err := dev.NewBuffer(256)
	require.NoError(t, err)
	out, err := dev.NewBuffer(1)
	require.NoError(t, err)

	// GlobalSize not a multiple of GroupSize.
	err = k.Dispatch(device.WorkSize{GroupSize: 128, GlobalSize: 200}, in, out, 200)
	assert.Error(t, err)

	// Element count exceeding the input buffer.
	err = k.Dispatch(device.WorkSize{GroupSize: 128, GlobalSize: 512}, in, out, 512)
	assert.Error(t, err)
}

func TestBuffer_Bounds(t *testing.T) {
	dev := New()

	buf, err := dev.NewBuffer(4)
	require.NoError(t, err)

	assert.Error(t, buf.Upload(make([]uint32, 5)))
	assert.Error(t, buf.Download(make([]uint32, 5)))

	require.NoError(t, buf.Upload([]uint32{1, 2, 3, 4}))
	got := make([]uint32, 4)
	require.NoError(t, buf.Download(got))
	assert.Equal(t, []uint32{1, 2, 3, 4}, got)

	_, err = dev.NewBuffer(0)
	assert.Error(t, err)
}

func TestBarrier_MakesWritesVisible(t *testing.T) {
	const parties = 32
	b := newBarrier(parties)
	before := make([]int, parties)
	var failed sync.Map

	var wg sync.WaitGroup
	for i := 0; i < parties; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			before[i] = i + 1
			b.await()
			for j, v := range before {
				if v != j+1 {
					failed.Store(i, j)
				}
			}
		}(i)
	}
	wg.Wait()

	failed.Range(func(k, v any) bool {
		t.Errorf("lane %v observed stale slot %v after barrier", k, v)
		return true
	})
}

func TestBarrier_Reusable(t *testing.T) {
	const parties = 8
	const rounds = 50
	b := newBarrier(parties)
	counts := make([]int, parties)

	var wg sync.WaitGroup
	for i := 0; i < parties; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for r := 0; r < rounds; r++ {
				counts[i]++
				b.await()
			}
		}(i)
	}
	wg.Wait()

	for i, c := range counts {
		assert.Equal(t, rounds, c, "lane %d", i)
	}
}
