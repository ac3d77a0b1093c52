package main

import (
	"fmt"
	"testing"

	"uk.ac.bris.cs/isl/isl"
)

func benchmark(b *testing.B, size, steps int) {
	for _, threads := range []int{1, 2, 4, 8, 16} {
		p := isl.Params[float64]{
			Width:       size,
			Height:      size,
			Transition:  isl.TransitionFunc[float64](ripple),
			Runners:     threads,
			Init:        isl.InitFunc[float64](func(x, y int) float64 { return float64(x ^ y) }),
			Steps:       steps,
			OutputSteps: 1,
			Neighbours:  vonNeumann,
		}
		name := fmt.Sprintf("%dx%dx%d-%d", p.Width, p.Height, p.Steps, p.Runners)
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := isl.Run(p); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func Benchmark_128_1000(b *testing.B) {
	benchmark(b, 128, 1000)
}

func Benchmark_256_250(b *testing.B) {
	benchmark(b, 256, 250)
}

func Benchmark_512_100(b *testing.B) {
	benchmark(b, 512, 100)
}
