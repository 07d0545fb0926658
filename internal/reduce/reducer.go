// Package reduce holds the reduction-strategy taxonomy: the reference
// oracle, the CPU baselines, and the device-executed strategy set. Every
// implementation shares one contract so a single benchmark loop can drive
// them all interchangeably.
package reduce

// Reducer sums the input sequence it was constructed over. One call is one
// trial: the result is derived from scratch and must equal the reference sum
// for the same input.
type Reducer interface {
	// Name identifies the reducer in reports and mismatch errors.
	Name() string

	// Sum performs one full reduction trial.
	Sum() (uint32, error)
}
