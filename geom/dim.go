// SPDX-License-Identifier: Apache-2.0

// Package geom describes the block/window geometry of one axis of a tiled
// image: how many blocks an axis splits into, where each block sits, and
// which of its cells are "interior" (the ones a worker actually writes).
//
// Dim and BlockDim are pure value types with no shared mutable state, so
// they can be copied freely between workers.
package geom

// Dim records how one axis of an image is tiled into overlapping blocks of
// side at most B, given a window half-width H on that axis.
//
// Invariant: 2*H+1 < B (the window must fit with room for at least one
// interior cell on each side).
type Dim struct {
	Size  int // length of this axis of the image
	H     int // window half-width on this axis
	B     int // block side length
	Step  int // B - 2*H
	Count int // number of blocks along this axis
}

// NewDim computes the tiling of an axis of length size, with window
// half-width h, using blocks of side at most b.
//
// Panics if the caller violates the basic shape precondition (b <= 2*h+1),
// since that leaves no interior cell for any block to own; callers (the
// Driver) are expected to validate this and return ErrInvalidWindow instead
// of reaching NewDim with an invalid b.
func NewDim(size, h, b int) Dim {
	if 2*h+1 >= b {
		panic("geom: block size must exceed 2*h+1")
	}
	step := b - 2*h
	count := 1
	if size > b {
		count = ceilDiv(size-2*h, step)
	}
	return Dim{Size: size, H: h, B: b, Step: step, Count: count}
}

// Block returns the placement of the i-th block along this axis, for
// 0 <= i < d.Count.
func (d Dim) Block(i int) BlockDim {
	last := i == d.Count-1
	start := i * d.Step
	end := d.Size
	if !last {
		end = 2*d.H + (i+1)*d.Step
	}
	length := end - start

	b0 := 0
	if i != 0 {
		b0 = d.H
	}
	b1 := length
	if !last {
		b1 = length - d.H
	}

	return BlockDim{Start: start, End: end, Len: length, B0: b0, B1: b1, H: d.H}
}

// BlockDim is the placement of one block along one axis within the image,
// together with the [B0, B1) range of "interior" cells whose output this
// block is responsible for. Interior ranges across all blocks of an axis
// partition [0, Size) exactly, with no overlap and no gap.
type BlockDim struct {
	Start int // image coordinate of this block's leading edge
	End   int // image coordinate one past this block's trailing edge
	Len   int // End - Start, the block's length along this axis (<= B)
	B0    int // first interior cell, in block-local coordinates
	B1    int // one past the last interior cell, in block-local coordinates
	H     int // window half-width on this axis (copied from Dim for convenience)
}

// WindowLo returns the block-local start of the window on this axis
// centered at block-local coordinate v, clipped to the block's own edge.
func (bd BlockDim) WindowLo(v int) int {
	lo := v - bd.H
	if lo < 0 {
		return 0
	}
	return lo
}

// WindowHi returns the block-local end (exclusive) of the window on this
// axis centered at block-local coordinate v, clipped to the block's own
// length.
func (bd BlockDim) WindowHi(v int) int {
	hi := v + 1 + bd.H
	if hi > bd.Len {
		return bd.Len
	}
	return hi
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
