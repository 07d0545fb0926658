package emu

import "github.com/artfadeev/sumbench/internal/device"

// kernelSpec describes one catalog entry. usesBarrier selects the concurrent
// group runtime; pow2Group rejects group sizes the pairwise tree cannot halve.
type kernelSpec struct {
	fn          func(inv *Invocation)
	usesBarrier bool
	pow2Group   bool
}

// kernels is the catalog of reduction strategies, keyed by the same names the
// WebGPU backend compiles.
var kernels = map[string]kernelSpec{
	"sum_single":         {fn: sumSingle},
	"sum_global_atomic":  {fn: sumGlobalAtomic},
	"sum_loop":           {fn: sumLoop},
	"sum_loop_coalesced": {fn: sumLoopCoalesced},
	"sum_local":          {fn: sumLocal, usesBarrier: true},
	"sum_tree":           {fn: sumTree, usesBarrier: true, pow2Group: true},
}

// sumSingle sums everything on lane 0; every other lane idles. The parallel
// worst case.
func sumSingle(inv *Invocation) {
	if inv.Global != 0 {
		return
	}
	var sum uint32
	for i := 0; i < inv.N; i++ {
		sum += inv.In[i]
	}
	inv.AtomicAdd(sum)
}

// sumGlobalAtomic folds exactly one element per lane into the shared
// accumulator. Contention-bound.
func sumGlobalAtomic(inv *Invocation) {
	if inv.Global < inv.N {
		inv.AtomicAdd(inv.In[inv.Global])
	}
}

// sumLoop gives each lane a contiguous run of ValuesPerWorkItem elements.
// Lanes of one group touch addresses far apart, so reads do not coalesce.
func sumLoop(inv *Invocation) {
	base := inv.Global * device.ValuesPerWorkItem
	var sum uint32
	for i := 0; i < device.ValuesPerWorkItem; i++ {
		if idx := base + i; idx < inv.N {
			sum += inv.In[idx]
		}
	}
	inv.AtomicAdd(sum)
}

// sumLoopCoalesced covers the same per-lane element count as sumLoop, but
// neighboring lanes read neighboring addresses on every loop step.
func sumLoopCoalesced(inv *Invocation) {
	base := inv.GroupID * inv.GroupSize * device.ValuesPerWorkItem
	var sum uint32
	for i := 0; i < device.ValuesPerWorkItem; i++ {
		if idx := base + inv.Local + i*inv.GroupSize; idx < inv.N {
			sum += inv.In[idx]
		}
	}
	inv.AtomicAdd(sum)
}

// sumLocal stages one element per lane in group-local memory; after the
// barrier, lane 0 sums the staging area and folds the group total once.
func sumLocal(inv *Invocation) {
	var v uint32
	if inv.Global < inv.N {
		v = inv.In[inv.Global]
	}
	inv.Group.Local[inv.Local] = v
	inv.Group.Barrier()

	if inv.Local != 0 {
		return
	}
	var sum uint32
	for _, x := range inv.Group.Local {
		sum += x
	}
	inv.AtomicAdd(sum)
}

// sumTree combines staged values pairwise, halving the active lanes each
// step, until slot 0 holds the group total.
func sumTree(inv *Invocation) {
	var v uint32
	if inv.Global < inv.N {
		v = inv.In[inv.Global]
	}
	local := inv.Group.Local
	local[inv.Local] = v
	inv.Group.Barrier()

	for stride := inv.GroupSize / 2; stride > 0; stride /= 2 {
		if inv.Local < stride {
			local[inv.Local] += local[inv.Local+stride]
		}
		inv.Group.Barrier()
	}
	if inv.Local == 0 {
		inv.AtomicAdd(local[0])
	}
}
