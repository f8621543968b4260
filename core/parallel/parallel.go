// Package parallel provides the worker-splitting helpers used to spread
// independent simulation trials across CPU cores.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize divides items across one worker per CPU core and executes fn
// for each contiguous range (start, end). fn must be safe to call from
// multiple goroutines for disjoint ranges.
func Parallelize(items int, fn func(start, end int)) {
	ParallelizeWithWorkers(items, runtime.NumCPU(), fn)
}

// ParallelizeWithWorkers is Parallelize with an explicit worker count.
// workers <= 0 falls back to the CPU count; a single worker runs fn
// sequentially on the full range, which callers use to get deterministic
// scheduling in tests.
func ParallelizeWithWorkers(items, workers int, fn func(start, end int)) {
	if items == 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > items {
		workers = items
	}
	if workers == 1 {
		fn(0, items)
		return
	}

	// Ceiling division so every item lands in exactly one chunk.
	chunkSize := (items + workers - 1) / workers

	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}

// ParallelizeWithThreshold parallelizes only when items exceeds threshold;
// below it the work runs sequentially to avoid goroutine overhead on
// small inputs.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}

	Parallelize(items, fn)
}
