package bench

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimer_RecordsLaps(t *testing.T) {
	timer := NewTimer()
	timer.Lap()
	timer.Lap()
	timer.Lap()

	assert.Equal(t, 3, timer.Laps())
}

func TestTimer_AvgAndStd(t *testing.T) {
	timer := &Timer{laps: []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		300 * time.Millisecond,
	}}

	assert.InDelta(t, 0.2, timer.Avg(), 1e-9)
	assert.InDelta(t, 0.1, timer.Std(), 1e-9) // sample stddev of {0.1,0.2,0.3}
}

func TestTimer_EmptyAndSingleLap(t *testing.T) {
	timer := &Timer{}
	assert.Zero(t, timer.Avg())
	assert.Zero(t, timer.Std())

	timer.laps = []time.Duration{time.Second}
	assert.InDelta(t, 1.0, timer.Avg(), 1e-9)
	assert.Zero(t, timer.Std(), "one lap has no spread")
}

func TestTimer_RestartDoesNotRecord(t *testing.T) {
	timer := NewTimer()
	timer.Restart()
	assert.Zero(t, timer.Laps())
}
