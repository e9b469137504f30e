// SPDX-License-Identifier: Apache-2.0

// Command medianfilter2d-demo demonstrates basic usage of the median2d
// package: build a small noisy image, run the filter, print before/after.
//
// There are no flags to parse here on purpose — argument parsing and host
// array ingestion are the language-binding layer's job, out of scope for
// this core (see SPEC_FULL.md §1).
package main

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/blockmedian/median2d"
)

func main() {
	const x, y = 12, 8
	const hx, hy = 1, 1

	in := make([]float64, x*y)
	rng := rand.New(rand.NewSource(1))
	for i := range in {
		in[i] = float64(int(rng.NormFloat64() * 3))
	}
	// Sprinkle a few NaN "dropouts" to show the exclude-NaN policy.
	in[5] = 0
	for _, idx := range []int{3, 17, 40} {
		in[idx] = math.NaN()
	}

	out := make([]float64, x*y)
	if err := median2d.MedianFilter2D(x, y, hx, hy, 0, in, out); err != nil {
		fmt.Println("median filter failed:", err)
		return
	}

	fmt.Println("input:")
	printGrid(in, x, y)
	fmt.Println("\nfiltered (hx=1, hy=1):")
	printGrid(out, x, y)
}

func printGrid(g []float64, x, y int) {
	for cy := 0; cy < y; cy++ {
		for cx := 0; cx < x; cx++ {
			fmt.Printf("%6.1f", g[cy*x+cx])
		}
		fmt.Println()
	}
}
