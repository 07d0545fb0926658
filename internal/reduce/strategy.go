package reduce

import "github.com/artfadeev/sumbench/internal/device"

// Strategy identifies one device-executed reduction algorithm. The name is
// the lookup key into the backend's kernel catalog; lanesFor is the
// strategy's work partition: how many lanes cover n elements before rounding
// up to a whole number of groups.
type Strategy struct {
	Name     string
	lanesFor func(n int) int
}

// GlobalSize returns the total dispatch size for n elements: the strategy's
// lane count rounded up to the nearest multiple of groupSize. Lanes past the
// partition contribute nothing.
func (s Strategy) GlobalSize(n, groupSize int) int {
	lanes := s.lanesFor(n)
	return (lanes + groupSize - 1) / groupSize * groupSize
}

func onePerElement(n int) int { return n }

func onePerChunk(n int) int {
	return (n + device.ValuesPerWorkItem - 1) / device.ValuesPerWorkItem
}

// Strategies is the full strategy set, in benchmark order. All six share one
// contract: for a fixed input they must produce the reference sum on every
// trial; they differ only in work partition and combination policy.
var Strategies = []Strategy{
	{Name: "sum_single", lanesFor: onePerElement},
	{Name: "sum_global_atomic", lanesFor: onePerElement},
	{Name: "sum_loop", lanesFor: onePerChunk},
	{Name: "sum_loop_coalesced", lanesFor: onePerChunk},
	{Name: "sum_local", lanesFor: onePerElement},
	{Name: "sum_tree", lanesFor: onePerElement},
}
