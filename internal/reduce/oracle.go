package reduce

import (
	"fmt"
	"math"
	"math/rand"
)

// MaxValue returns the largest element value for which no partial or total
// sum of n elements can exceed the uint32 accumulator range. The division is
// done in uint64 so the divisor cannot wrap for n past the uint32 range; for
// such n the bound degenerates to 0 and the invariant still holds.
func MaxValue(n int) uint32 {
	return uint32(uint64(math.MaxUint32) / uint64(n))
}

// GenerateInput produces the input sequence and its reference sum.
//
// Elements are drawn from a seeded source bounded by MaxValue(n), so the
// exact sequential total here is the ground truth every reducer is verified
// against. The sequence is generated once per run and never mutated.
func GenerateInput(n int, seed int64) ([]uint32, uint32, error) {
	if n <= 0 {
		return nil, 0, fmt.Errorf("reduce: input length must be positive, got %d", n)
	}

	rng := rand.New(rand.NewSource(seed))
	bound := int64(MaxValue(n)) + 1

	input := make([]uint32, n)
	var sum uint32
	for i := range input {
		input[i] = uint32(rng.Int63n(bound))
		sum += input[i]
	}
	return input, sum, nil
}
