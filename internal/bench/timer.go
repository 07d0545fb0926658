// Package bench drives repeated reduction trials, verifies every result
// against the reference sum, and aggregates wall-clock timing into
// mean/standard-deviation statistics.
package bench

import (
	"math"
	"time"
)

// Timer accumulates lap durations. It has no effect on what it measures:
// the caller marks a lap after each trial and reads the aggregate at the end.
type Timer struct {
	mark time.Time
	laps []time.Duration
}

// NewTimer starts a timer with the mark set to now.
func NewTimer() *Timer {
	return &Timer{mark: time.Now()}
}

// Restart moves the mark to now without recording a lap.
func (t *Timer) Restart() {
	t.mark = time.Now()
}

// Lap records the time since the previous mark and starts the next lap.
func (t *Timer) Lap() time.Duration {
	now := time.Now()
	d := now.Sub(t.mark)
	t.mark = now
	t.laps = append(t.laps, d)
	return d
}

// Laps returns the number of recorded laps.
func (t *Timer) Laps() int {
	return len(t.laps)
}

// Avg returns the mean lap duration in seconds, 0 if no laps were recorded.
func (t *Timer) Avg() float64 {
	if len(t.laps) == 0 {
		return 0
	}
	var total float64
	for _, d := range t.laps {
		total += d.Seconds()
	}
	return total / float64(len(t.laps))
}

// Std returns the sample standard deviation of lap durations in seconds,
// 0 when fewer than two laps were recorded.
func (t *Timer) Std() float64 {
	if len(t.laps) < 2 {
		return 0
	}
	avg := t.Avg()
	var ss float64
	for _, d := range t.laps {
		diff := d.Seconds() - avg
		ss += diff * diff
	}
	return math.Sqrt(ss / float64(len(t.laps)-1))
}
