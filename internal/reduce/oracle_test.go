package reduce

import (
	"math"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInput_Deterministic(t *testing.T) {
	a, sumA, err := GenerateInput(10000, 42)
	require.NoError(t, err)
	b, sumB, err := GenerateInput(10000, 42)
	require.NoError(t, err)

	assert.Equal(t, sumA, sumB, "same seed must reproduce the same sum")
	assert.Equal(t, a, b, "same seed must reproduce the same sequence")
}

func TestGenerateInput_SeedChangesSequence(t *testing.T) {
	a, _, err := GenerateInput(10000, 42)
	require.NoError(t, err)
	b, _, err := GenerateInput(10000, 43)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestGenerateInput_ReferenceSumMatchesSequentialTotal(t *testing.T) {
	input, sum, err := GenerateInput(16, 7)
	require.NoError(t, err)
	require.Len(t, input, 16)

	var want uint32
	for _, v := range input {
		want += v
	}
	assert.Equal(t, want, sum)
}

func TestGenerateInput_ElementsBounded(t *testing.T) {
	n := 16
	input, _, err := GenerateInput(n, 42)
	require.NoError(t, err)

	bound := MaxValue(n)
	for i, v := range input {
		assert.LessOrEqual(t, v, bound, "element %d exceeds the overflow-free bound", i)
	}
}

func TestGenerateInput_RejectsNonPositiveLength(t *testing.T) {
	_, _, err := GenerateInput(0, 42)
	assert.Error(t, err)

	_, _, err = GenerateInput(-5, 42)
	assert.Error(t, err)
}

func TestMaxValue_BeyondUint32Range(t *testing.T) {
	assert.Equal(t, uint32(2), MaxValue(math.MaxInt32))

	if bits.UintSize == 64 {
		// The divisor must not wrap when n itself exceeds the uint32 range;
		// the bound degenerates to 0 and summing stays overflow-free.
		n := int(uint64(1) << 32)
		assert.Equal(t, uint32(0), MaxValue(n))
		assert.Equal(t, uint32(1), MaxValue(n-1))
		assert.Equal(t, uint32(0), MaxValue(n+100))
	}
}

func TestMaxValue_NoOverflowPossible(t *testing.T) {
	// n elements of MaxValue(n) must fit a uint64 check against uint32 range.
	for _, n := range []int{1, 2, 16, 1000, 100_000_000} {
		total := uint64(n) * uint64(MaxValue(n))
		assert.LessOrEqual(t, total, uint64(1)<<32-1, "n=%d", n)
	}
}
