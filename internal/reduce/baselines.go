package reduce

import "github.com/artfadeev/sumbench/internal/parallel"

// Sequential is the single-accumulator CPU baseline: strictly ordered
// addition over all elements. It establishes the non-parallel cost floor.
type Sequential struct {
	input []uint32
}

// NewSequential creates the sequential baseline over input. The slice is
// shared read-only.
func NewSequential(input []uint32) *Sequential {
	return &Sequential{input: input}
}

func (s *Sequential) Name() string { return "cpu" }

func (s *Sequential) Sum() (uint32, error) {
	var sum uint32
	for _, v := range s.input {
		sum += v
	}
	return sum, nil
}

// Threaded is the fork-join CPU baseline: the index range is partitioned
// across workers, each keeps a private partial sum, and partials are combined
// after the join. Any disagreement with Sequential signals a race or a broken
// combine, never a numeric artifact.
type Threaded struct {
	input []uint32
	cfg   parallel.Config
}

// NewThreaded creates the thread-parallel baseline over input using cfg's
// worker pool.
func NewThreaded(input []uint32, cfg parallel.Config) *Threaded {
	return &Threaded{input: input, cfg: cfg}
}

func (t *Threaded) Name() string { return "cpu_threads" }

func (t *Threaded) Sum() (uint32, error) {
	return parallel.SumUint32(t.input, t.cfg), nil
}
