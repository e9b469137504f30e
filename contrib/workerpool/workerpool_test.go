// SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"runtime"
	"sync/atomic"
	"testing"
)

func TestNew(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	if pool.NumWorkers() != 4 {
		t.Errorf("NumWorkers() = %d, want 4", pool.NumWorkers())
	}
}

func TestNewDefault(t *testing.T) {
	pool := New(0)
	defer pool.Close()

	if pool.NumWorkers() != runtime.GOMAXPROCS(0) {
		t.Errorf("NumWorkers() = %d, want %d", pool.NumWorkers(), runtime.GOMAXPROCS(0))
	}
}

func TestParallelForAtomicBatched(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 100
	results := make([]int, n)

	pool.ParallelForAtomicBatched(n, 7, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestParallelForAtomicBatchedSmallN(t *testing.T) {
	pool := New(8)
	defer pool.Close()

	// Fewer batches than workers.
	n := 3
	var total atomic.Int32
	pool.ParallelForAtomicBatched(n, 1, func(start, end int) {
		total.Add(int32(end - start))
	})

	if int(total.Load()) != n {
		t.Errorf("total = %d, want %d", total.Load(), n)
	}
}

func TestParallelForAtomicBatchedZeroN(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var called bool
	pool.ParallelForAtomicBatched(0, 4, func(start, end int) {
		called = true
	})

	if called {
		t.Error("ParallelForAtomicBatched with n=0 should not call fn")
	}
}

func TestParallelForAtomicBatchedDefaultsBatchSize(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 10
	var total atomic.Int32
	pool.ParallelForAtomicBatched(n, 0, func(start, end int) {
		total.Add(int32(end - start))
	})

	if int(total.Load()) != n {
		t.Errorf("total = %d, want %d", total.Load(), n)
	}
}

func TestCloseMultipleTimes(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close() // Should not panic
}

func TestClosedPoolFallback(t *testing.T) {
	pool := New(4)
	pool.Close()

	n := 100
	results := make([]int, n)

	// Should still work (sequential fallback)
	pool.ParallelForAtomicBatched(n, 7, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func BenchmarkParallelForAtomicBatched(b *testing.B) {
	pool := New(0) // Use GOMAXPROCS
	defer pool.Close()

	n := 1000

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.ParallelForAtomicBatched(n, 16, func(start, end int) {
			for j := start; j < end; j++ {
				_ = j * j
			}
		})
	}
}

// BenchmarkPoolOverhead measures the overhead of dispatching a handful of
// batches through the pool, the shape the block-median driver exercises for
// small images with few blocks.
func BenchmarkPoolOverhead(b *testing.B) {
	pool := New(0)
	defer pool.Close()

	b.Run("Pool", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			pool.ParallelForAtomicBatched(10, 2, func(start, end int) {
				// Minimal work
			})
		}
	})
}
