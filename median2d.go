// SPDX-License-Identifier: Apache-2.0

// Package median2d implements a block-decomposed 2-D sliding-window median
// filter. Given a 2-D array of samples and a rectangular window radius
// (hx, hy), MedianFilter2D produces an output array of the same shape where
// each cell is the median of the input cells inside the window centered at
// that cell, clipped at the image boundary.
//
// The image is tiled into overlapping blocks; each block is processed
// independently by one worker using a bit-packed sliding window over a
// per-block rank table (see contrib/bitwindow, contrib/windowrank,
// contrib/blockmedian), so the filter's cost is driven by window perimeter,
// not window area. Blocks are handed out to workers in small batches via
// work stealing rather than one static split per worker, since edge blocks
// are cheaper than interior ones and a static split would leave a worker
// idle while another churns through a run of full-size blocks.
package median2d

import (
	"unsafe"

	"github.com/blockmedian/median2d/contrib/blockmedian"
	"github.com/blockmedian/median2d/contrib/workerpool"
	"github.com/blockmedian/median2d/geom"
)

// Real is the constraint on the sample type MedianFilter2D operates over.
type Real = blockmedian.Real

// MedianFilter2D computes the 2-D sliding-window median of in into out.
//
// x, y are the image dimensions (x the fast-varying, row-major axis); hx,
// hy are non-negative window half-widths; bHint overrides the block side
// length (0 selects a default of 4*(max(hx,hy)+2)). in and out must each
// have length x*y and must not overlap.
//
// MedianFilter2D either fully populates out and returns nil, or returns one
// of ErrInvalidDim, ErrInvalidWindow, ErrAllocation and leaves out
// untouched — all validation happens before any worker starts.
func MedianFilter2D[T Real](x, y, hx, hy, bHint int, in, out []T) error {
	if x <= 0 || y <= 0 {
		return ErrInvalidDim
	}

	b := bHint
	if b == 0 {
		m := hx
		if hy > m {
			m = hy
		}
		b = 4 * (m + 2)
	}
	if 2*hx+1 >= b || 2*hy+1 >= b {
		return ErrInvalidWindow
	}

	if scratchBytes[T](b) > maxScratchBytes {
		return ErrAllocation
	}

	dimX := geom.NewDim(x, hx, b)
	dimY := geom.NewDim(y, hy, b)
	numBlocks := dimX.Count * dimY.Count

	pool := workerpool.New(0)
	defer pool.Close()

	// Two grabs per worker on average: enough that a worker finishing a run
	// of cheap edge blocks can steal a grab from one still stuck on full
	// interior blocks, without multiplying the number of times a worker
	// allocates a fresh BlockMedian[T] much past what a single static split
	// would have cost it.
	batch := numBlocks / (2 * pool.NumWorkers())
	if batch < 1 {
		batch = 1
	}

	pool.ParallelForAtomicBatched(numBlocks, batch, func(start, end int) {
		proc := blockmedian.New[T](dimX, dimY)
		for i := start; i < end; i++ {
			bx := i % dimX.Count
			by := i / dimX.Count
			proc.Run(bx, by, in, out, x)
		}
	})

	return nil
}

// scratchBytes estimates one worker's peak scratch allocation for block
// side b: the rank/sorted arrays (b*b elements of T plus int each) and the
// BitWindow bitset (b*b/8 bytes), per spec §5.
func scratchBytes[T any](b int) int64 {
	var zero T
	elem := int64(unsafe.Sizeof(zero)) + int64(unsafe.Sizeof(int(0)))
	cells := int64(b) * int64(b)
	return cells*elem + cells/8
}
