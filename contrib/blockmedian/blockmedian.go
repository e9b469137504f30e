// SPDX-License-Identifier: Apache-2.0

// Package blockmedian processes a single block of a tiled image: it builds
// the block's rank table once, then snake-walks the block's interior
// cells, maintaining a sliding window and emitting the median at each cell.
//
// A BlockMedian is used by one goroutine at a time and can be reused across
// any number of blocks — InitBegin/InitFeed/InitFinish and the traversal
// buffers are reset per block, never reallocated. median2d.MedianFilter2D
// constructs one per batch of blocks a worker claims, so a worker that
// claims several batches allocates one BlockMedian for each of them.
package blockmedian

import (
	"github.com/blockmedian/median2d/contrib/windowrank"
	"github.com/blockmedian/median2d/geom"
)

// Real is the constraint on the sample type a BlockMedian operates over.
type Real = windowrank.Real

// BlockMedian processes one block at a time against a fixed pair of axis
// Dims. Construct one with New and call Run (or RunNaive) once per block
// index it is given.
type BlockMedian[T Real] struct {
	wr   *windowrank.WindowRank[T]
	dimX geom.Dim
	dimY geom.Dim
}

// New allocates a BlockMedian sized for blocks of at most dimX.B * dimY.B
// cells.
func New[T Real](dimX, dimY geom.Dim) *BlockMedian[T] {
	return &BlockMedian[T]{
		wr:   windowrank.New[T](dimX.B * dimY.B),
		dimX: dimX,
		dimY: dimY,
	}
}

// Run processes block (bx, by): it rebuilds the rank table from in, then
// snake-walks the block's interior writing medians into out. in and out are
// the full image buffers (length X*Y), row-major with x the fast-varying
// axis and stride x.
func (bm *BlockMedian[T]) Run(bx, by int, in, out []T, x int) {
	bdX := bm.dimX.Block(bx)
	bdY := bm.dimY.Block(by)
	bm.buildRanks(bdX, bdY, in, x)

	lenX := bdX.Len
	emit := func(cx, cy int) {
		out[(cy+bdY.Start)*x+(cx+bdX.Start)] = bm.wr.Median()
	}

	b0x, b1x := bdX.B0, bdX.B1
	b0y, b1y := bdY.B0, bdY.B1
	if b0x >= b1x || b0y >= b1y {
		return
	}

	wx0 := func(v int) int { return bdX.WindowLo(v) }
	wx1 := func(v int) int { return bdX.WindowHi(v) }
	wy0 := func(v int) int { return bdY.WindowLo(v) }
	wy1 := func(v int) int { return bdY.WindowHi(v) }

	insertRect := func(xlo, xhi, ylo, yhi int) {
		for yy := ylo; yy < yhi; yy++ {
			base := yy * lenX
			for xx := xlo; xx < xhi; xx++ {
				bm.wr.Update(1, base+xx)
			}
		}
	}
	removeRect := func(xlo, xhi, ylo, yhi int) {
		for yy := ylo; yy < yhi; yy++ {
			base := yy * lenX
			for xx := xlo; xx < xhi; xx++ {
				bm.wr.Update(-1, base+xx)
			}
		}
	}

	bm.wr.Clear()
	x0, y0 := b0x, b0y
	insertRect(wx0(x0), wx1(x0), wy0(y0), wy1(y0))
	emit(x0, y0)

	cx, cy := x0, y0
	movingDown := true
	for {
		if movingDown {
			for cy < b1y-1 {
				xlo, xhi := wx0(cx), wx1(cx)
				removeRect(xlo, xhi, wy0(cy), wy0(cy+1))
				insertRect(xlo, xhi, wy1(cy), wy1(cy+1))
				cy++
				emit(cx, cy)
			}
		} else {
			for cy > b0y {
				xlo, xhi := wx0(cx), wx1(cx)
				removeRect(xlo, xhi, wy1(cy-1), wy1(cy))
				insertRect(xlo, xhi, wy0(cy-1), wy0(cy))
				cy--
				emit(cx, cy)
			}
		}
		if cx == b1x-1 {
			break
		}
		ylo, yhi := wy0(cy), wy1(cy)
		removeRect(wx0(cx), wx0(cx+1), ylo, yhi)
		insertRect(wx1(cx), wx1(cx+1), ylo, yhi)
		cx++
		movingDown = !movingDown
		emit(cx, cy)
	}
}

// RunNaive is the reference traversal: it clears and fully re-inserts the
// window at every interior cell instead of amortizing updates along the
// snake path. It exists only to verify Run against (Testable Property 2,
// "snake = naive"); production code should always use Run.
func (bm *BlockMedian[T]) RunNaive(bx, by int, in, out []T, x int) {
	bdX := bm.dimX.Block(bx)
	bdY := bm.dimY.Block(by)
	bm.buildRanks(bdX, bdY, in, x)

	lenX := bdX.Len
	for cy := bdY.B0; cy < bdY.B1; cy++ {
		for cx := bdX.B0; cx < bdX.B1; cx++ {
			bm.wr.Clear()
			for yy := bdY.WindowLo(cy); yy < bdY.WindowHi(cy); yy++ {
				base := yy * lenX
				for xx := bdX.WindowLo(cx); xx < bdX.WindowHi(cx); xx++ {
					bm.wr.Update(1, base+xx)
				}
			}
			out[(cy+bdY.Start)*x+(cx+bdX.Start)] = bm.wr.Median()
		}
	}
}

// buildRanks feeds every cell of block (bdX, bdY) into the rank table, in
// row-major order, so packed slot index y*lenX+x matches the snake
// traversal's addressing.
func (bm *BlockMedian[T]) buildRanks(bdX, bdY geom.BlockDim, in []T, x int) {
	lenX := bdX.Len
	bm.wr.InitBegin()
	for yy := 0; yy < bdY.Len; yy++ {
		row := (yy + bdY.Start) * x
		base := yy * lenX
		for xx := 0; xx < lenX; xx++ {
			bm.wr.InitFeed(in[row+xx+bdX.Start], base+xx)
		}
	}
	bm.wr.InitFinish()
}
