// SPDX-License-Identifier: Apache-2.0

package median2d

import "errors"

// Error taxonomy. This is exhaustive: no other error is ever returned by
// MedianFilter2D.
var (
	// ErrInvalidWindow is returned when the resolved block size cannot hold
	// the requested window: 2*hx+1 >= b or 2*hy+1 >= b.
	ErrInvalidWindow = errors.New("median2d: window does not fit in block size")

	// ErrInvalidDim is returned when the image has a non-positive
	// dimension.
	ErrInvalidDim = errors.New("median2d: image dimensions must be positive")

	// ErrAllocation is returned when a worker's per-block scratch would
	// exceed maxScratchBytes. Unlike a malloc-based runtime, Go's allocator
	// panics rather than returning a failure code on genuine OOM; this
	// error instead covers a pre-flight size check so a pathological
	// (X, Y, hx, hy, bHint) combination fails cleanly instead of panicking
	// deep inside a worker.
	ErrAllocation = errors.New("median2d: per-worker scratch size exceeds limit")
)

// maxScratchBytes bounds the per-worker scratch estimate
// (b*b*(sizeof(T)+sizeof(int)) + b*b/8, see spec §5) that MedianFilter2D
// will accept before returning ErrAllocation instead of proceeding.
const maxScratchBytes = 1 << 30 // 1 GiB per worker
