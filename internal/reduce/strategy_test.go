package reduce

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artfadeev/sumbench/internal/device"
)

func strategyByName(t *testing.T, name string) Strategy {
	t.Helper()
	for _, s := range Strategies {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("no strategy named %q", name)
	return Strategy{}
}

func TestGlobalSize_MultipleOfGroupSize(t *testing.T) {
	for _, s := range Strategies {
		for _, n := range []int{1, 15, 16, 17, 128, 1000, 100_000} {
			for _, g := range []int{4, 64, 128} {
				size := s.GlobalSize(n, g)
				assert.Zero(t, size%g, "%s n=%d g=%d", s.Name, n, g)
				assert.Positive(t, size, "%s n=%d g=%d", s.Name, n, g)
			}
		}
	}
}

func TestGlobalSize_OneLanePerElement(t *testing.T) {
	s := strategyByName(t, "sum_global_atomic")
	assert.Equal(t, 128, s.GlobalSize(100, 128))
	assert.Equal(t, 256, s.GlobalSize(129, 128))
}

func TestGlobalSize_LoopStrategiesPartitionByChunk(t *testing.T) {
	for _, name := range []string{"sum_loop", "sum_loop_coalesced"} {
		s := strategyByName(t, name)

		// ceil(1e4 / 64) = 157 lanes, rounded up to two groups of 128.
		assert.Equal(t, 256, s.GlobalSize(10_000, 128), name)

		// Lanes cover every element exactly once.
		lanes := s.GlobalSize(10_000, 128)
		assert.GreaterOrEqual(t, lanes*device.ValuesPerWorkItem, 10_000, name)
	}
}

func TestStrategies_NamesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range Strategies {
		assert.False(t, seen[s.Name], "duplicate strategy %q", s.Name)
		seen[s.Name] = true
	}
	assert.Len(t, Strategies, 6)
}
