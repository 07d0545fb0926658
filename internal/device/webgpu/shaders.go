//go:build windows

package webgpu

import (
	"fmt"

	"github.com/artfadeev/sumbench/internal/device"
)

// All kernels share one binding layout: the read-only input, the atomic u32
// result, and a uniform params block carrying the element count. Group size
// is baked into the WGSL at compile time, so shaders are cached per
// (kernel, group size) pair.

const shaderHeader = `
@group(0) @binding(0) var<storage, read> input: array<u32>;
@group(0) @binding(1) var<storage, read_write> result: atomic<u32>;

struct Params {
    n: u32,
}
@group(0) @binding(2) var<uniform> params: Params;
`

// shaderSource builds the WGSL for the named kernel at the given group size.
func shaderSource(name string, groupSize int) (string, error) {
	if groupSize <= 0 {
		return "", fmt.Errorf("webgpu: group size must be positive, got %d", groupSize)
	}
	switch name {
	case "sum_single":
		return sumSingleShader(groupSize), nil
	case "sum_global_atomic":
		return sumGlobalAtomicShader(groupSize), nil
	case "sum_loop":
		return sumLoopShader(groupSize), nil
	case "sum_loop_coalesced":
		return sumLoopCoalescedShader(groupSize), nil
	case "sum_local":
		return sumLocalShader(groupSize), nil
	case "sum_tree":
		if groupSize&(groupSize-1) != 0 {
			return "", fmt.Errorf("webgpu: kernel %q requires a power-of-two group size, got %d", name, groupSize)
		}
		return sumTreeShader(groupSize), nil
	default:
		return "", fmt.Errorf("webgpu: unknown kernel %q", name)
	}
}

// sumSingleShader sums everything on one lane; the parallel worst case.
func sumSingleShader(groupSize int) string {
	return shaderHeader + fmt.Sprintf(`
@compute @workgroup_size(%d)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    if (global_id.x != 0u) {
        return;
    }
    var sum: u32 = 0u;
    for (var i: u32 = 0u; i < params.n; i++) {
        sum = sum + input[i];
    }
    atomicAdd(&result, sum);
}
`, groupSize)
}

// sumGlobalAtomicShader folds one element per lane straight into the shared
// accumulator.
func sumGlobalAtomicShader(groupSize int) string {
	return shaderHeader + fmt.Sprintf(`
@compute @workgroup_size(%d)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.n) {
        atomicAdd(&result, input[idx]);
    }
}
`, groupSize)
}

// sumLoopShader gives each lane a contiguous run of elements; reads do not
// coalesce across a group.
func sumLoopShader(groupSize int) string {
	return shaderHeader + fmt.Sprintf(`
const VALUES_PER_WORKITEM: u32 = %du;

@compute @workgroup_size(%d)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let base = global_id.x * VALUES_PER_WORKITEM;
    var sum: u32 = 0u;
    for (var i: u32 = 0u; i < VALUES_PER_WORKITEM; i++) {
        let idx = base + i;
        if (idx < params.n) {
            sum = sum + input[idx];
        }
    }
    atomicAdd(&result, sum);
}
`, device.ValuesPerWorkItem, groupSize)
}

// sumLoopCoalescedShader covers the same per-lane element count as sumLoop,
// but neighboring lanes read neighboring addresses on every step.
func sumLoopCoalescedShader(groupSize int) string {
	return shaderHeader + fmt.Sprintf(`
const WORKGROUP_SIZE: u32 = %du;
const VALUES_PER_WORKITEM: u32 = %du;

@compute @workgroup_size(%d)
fn main(
    @builtin(workgroup_id) wg_id: vec3<u32>,
    @builtin(local_invocation_id) local_id: vec3<u32>
) {
    let base = wg_id.x * WORKGROUP_SIZE * VALUES_PER_WORKITEM + local_id.x;
    var sum: u32 = 0u;
    for (var i: u32 = 0u; i < VALUES_PER_WORKITEM; i++) {
        let idx = base + i * WORKGROUP_SIZE;
        if (idx < params.n) {
            sum = sum + input[idx];
        }
    }
    atomicAdd(&result, sum);
}
`, groupSize, device.ValuesPerWorkItem, groupSize)
}

// sumLocalShader stages one element per lane in workgroup memory; after the
// barrier lane 0 sums the staging area and folds the group total once.
func sumLocalShader(groupSize int) string {
	return shaderHeader + fmt.Sprintf(`
const WORKGROUP_SIZE: u32 = %du;

var<workgroup> staging: array<u32, %d>;

@compute @workgroup_size(%d)
fn main(
    @builtin(global_invocation_id) global_id: vec3<u32>,
    @builtin(local_invocation_id) local_id: vec3<u32>
) {
    var v: u32 = 0u;
    if (global_id.x < params.n) {
        v = input[global_id.x];
    }
    staging[local_id.x] = v;
    workgroupBarrier();

    if (local_id.x == 0u) {
        var sum: u32 = 0u;
        for (var i: u32 = 0u; i < WORKGROUP_SIZE; i++) {
            sum = sum + staging[i];
        }
        atomicAdd(&result, sum);
    }
}
`, groupSize, groupSize, groupSize)
}

// sumTreeShader combines staged values pairwise, halving active lanes each
// step, until slot 0 holds the group total.
func sumTreeShader(groupSize int) string {
	return shaderHeader + fmt.Sprintf(`
const WORKGROUP_SIZE: u32 = %du;

var<workgroup> staging: array<u32, %d>;

@compute @workgroup_size(%d)
fn main(
    @builtin(global_invocation_id) global_id: vec3<u32>,
    @builtin(local_invocation_id) local_id: vec3<u32>
) {
    var v: u32 = 0u;
    if (global_id.x < params.n) {
        v = input[global_id.x];
    }
    staging[local_id.x] = v;
    workgroupBarrier();

    for (var stride: u32 = WORKGROUP_SIZE / 2u; stride > 0u; stride = stride >> 1u) {
        if (local_id.x < stride) {
            staging[local_id.x] = staging[local_id.x] + staging[local_id.x + stride];
        }
        workgroupBarrier();
    }

    if (local_id.x == 0u) {
        atomicAdd(&result, staging[0]);
    }
}
`, groupSize, groupSize, groupSize)
}
