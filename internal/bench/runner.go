package bench

import (
	"fmt"

	"github.com/artfadeev/sumbench/internal/reduce"
)

// MismatchError reports a reducer whose result differs from the reference
// sum. It is the run's only correctness failure and is always fatal: no
// retry, no recovery.
type MismatchError struct {
	Name string
	Got  uint32
	Want uint32
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("bench: %s returned %d, reference sum is %d", e.Name, e.Got, e.Want)
}

// Stats is the aggregated timing record for one reducer.
type Stats struct {
	Name       string
	N          int     // elements per trial
	Iterations int     // completed, verified trials
	Avg        float64 // mean trial duration, seconds
	Std        float64 // sample standard deviation, seconds
}

// Throughput returns millions of elements processed per second.
func (s Stats) Throughput() float64 {
	if s.Avg == 0 {
		return 0
	}
	return float64(s.N) / 1e6 / s.Avg
}

// String renders the two report lines of the original harness: duration and
// throughput.
func (s Stats) String() string {
	return fmt.Sprintf("%-20s %.6f+-%.6f s\n%-20s %.2f millions/s",
		s.Name+":", s.Avg, s.Std,
		s.Name+":", s.Throughput())
}

// Run performs iterations trials of r, verifying each result against want
// before advancing. Warmup trials run and are verified first but are not
// timed. The first mismatch aborts with a *MismatchError.
func Run(r reduce.Reducer, n, iterations, warmup int, want uint32) (Stats, error) {
	for i := 0; i < warmup; i++ {
		if err := trial(r, want); err != nil {
			return Stats{}, err
		}
	}

	t := NewTimer()
	for i := 0; i < iterations; i++ {
		if err := trial(r, want); err != nil {
			return Stats{}, err
		}
		t.Lap()
	}

	return Stats{
		Name:       r.Name(),
		N:          n,
		Iterations: t.Laps(),
		Avg:        t.Avg(),
		Std:        t.Std(),
	}, nil
}

func trial(r reduce.Reducer, want uint32) error {
	got, err := r.Sum()
	if err != nil {
		return fmt.Errorf("bench: %s: %w", r.Name(), err)
	}
	if got != want {
		return &MismatchError{Name: r.Name(), Got: got, Want: want}
	}
	return nil
}
