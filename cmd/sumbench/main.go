// sumbench measures the throughput of summing a large array of unsigned
// integers under six device-executed reduction strategies plus two CPU
// baselines, and cross-validates every result against a sequentially
// computed reference sum.
//
// Usage:
//
//	sumbench -n 100000000 -iterations 10 -backend auto
//
// Every trial is verified; any mismatch aborts the run with a non-zero exit.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/artfadeev/sumbench/device"
	"github.com/artfadeev/sumbench/device/emu"
	"github.com/artfadeev/sumbench/device/webgpu"
	"github.com/artfadeev/sumbench/internal/bench"
	"github.com/artfadeev/sumbench/internal/parallel"
	"github.com/artfadeev/sumbench/internal/reduce"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	n := flag.Int("n", 100_000_000, "Number of input elements")
	seed := flag.Int64("seed", 42, "Seed for the deterministic input generator")
	iterations := flag.Int("iterations", 10, "Timed trials per reducer")
	warmup := flag.Int("warmup", 0, "Untimed (but verified) trials per reducer")
	groupSize := flag.Int("group-size", device.DefaultGroupSize, "Lanes per cooperating group")
	backend := flag.String("backend", "auto", "Compute backend: auto, emu or webgpu")
	workers := flag.Int("workers", 0, "CPU worker count for the threaded baseline (0 = all CPUs)")
	flag.Parse()

	input, referenceSum, err := reduce.GenerateInput(*n, *seed)
	if err != nil {
		return err
	}

	cfg := parallel.DefaultConfig()
	if *workers > 0 {
		cfg = parallel.WithWorkers(*workers)
	}

	baselines := []reduce.Reducer{
		reduce.NewSequential(input),
		reduce.NewThreaded(input, cfg),
	}
	for _, r := range baselines {
		if err := report(r, *n, *iterations, *warmup, referenceSum); err != nil {
			return err
		}
	}

	dev, err := selectDevice(*backend)
	if err != nil {
		return err
	}
	defer dev.Release()
	fmt.Printf("Device: %s\n", dev.Name())

	for _, strategy := range reduce.Strategies {
		r, err := reduce.NewDeviceReducer(dev, strategy, input, *groupSize)
		if err != nil {
			return err
		}
		err = report(r, *n, *iterations, *warmup, referenceSum)
		r.Release()
		if err != nil {
			return err
		}
	}
	return nil
}

func report(r reduce.Reducer, n, iterations, warmup int, want uint32) error {
	stats, err := bench.Run(r, n, iterations, warmup, want)
	if err != nil {
		return err
	}
	fmt.Println(stats)
	return nil
}

func selectDevice(backend string) (device.Device, error) {
	switch backend {
	case "auto":
		if webgpu.IsAvailable() {
			d, err := webgpu.New()
			if err != nil {
				return nil, err
			}
			return d, nil
		}
		return emu.New(), nil
	case "webgpu":
		if !webgpu.IsAvailable() {
			return nil, fmt.Errorf("webgpu backend requested but not available")
		}
		d, err := webgpu.New()
		if err != nil {
			return nil, err
		}
		return d, nil
	case "emu":
		return emu.New(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want auto, emu or webgpu)", backend)
	}
}
