// Package parallel provides fork-join execution utilities for the CPU
// reducers.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 1024,
	}
}

// WithWorkers returns a copy of DefaultConfig pinned to a fixed worker count.
// A count below 2 disables parallelism entirely.
func WithWorkers(workers int) Config {
	cfg := DefaultConfig()
	if workers < 1 {
		workers = 1
	}
	cfg.Enabled = workers > 1
	cfg.NumWorkers = workers
	return cfg
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// SumUint32 computes the sum of xs using a fork-join partition.
// Each worker accumulates a private partial sum over a contiguous chunk;
// partials are combined only after all workers have joined, so no shared
// state is touched during the parallel region. Unsigned addition is
// associative and commutative, so the result is identical to a strictly
// sequential sum for any worker count.
func SumUint32(xs []uint32, cfg Config) uint32 {
	n := len(xs)
	if !cfg.Enabled || n < cfg.MinChunkSize {
		var sum uint32
		for _, x := range xs {
			sum += x
		}
		return sum
	}

	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)
	numChunks := (n + chunkSize - 1) / chunkSize
	partials := make([]uint32, numChunks)

	var wg sync.WaitGroup
	for c := 0; c < numChunks; c++ {
		start := c * chunkSize
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(c, s, e int) {
			defer wg.Done()
			var sum uint32
			for i := s; i < e; i++ {
				sum += xs[i]
			}
			partials[c] = sum
		}(c, start, end)
	}
	wg.Wait()

	var total uint32
	for _, p := range partials {
		total += p
	}
	return total
}
