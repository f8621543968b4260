package parallel

import (
	"sync"
	"testing"
)

func coverage(items, workers int) []int {
	counts := make([]int, items)
	var mu sync.Mutex
	ParallelizeWithWorkers(items, workers, func(start, end int) {
		mu.Lock()
		defer mu.Unlock()
		for i := start; i < end; i++ {
			counts[i]++
		}
	})
	return counts
}

func TestParallelizeCoversEveryItemOnce(t *testing.T) {
	for _, workers := range []int{0, 1, 2, 3, 7, 100} {
		for _, items := range []int{1, 2, 5, 16, 101} {
			counts := coverage(items, workers)
			for i, c := range counts {
				if c != 1 {
					t.Errorf("items=%d workers=%d: index %d visited %d times", items, workers, i, c)
				}
			}
		}
	}
}

func TestParallelizeZeroItems(t *testing.T) {
	called := false
	Parallelize(0, func(start, end int) { called = true })
	if called {
		t.Error("fn called for zero items")
	}
}

func TestSingleWorkerRunsSequentially(t *testing.T) {
	var ranges [][2]int
	ParallelizeWithWorkers(10, 1, func(start, end int) {
		ranges = append(ranges, [2]int{start, end})
	})
	if len(ranges) != 1 || ranges[0] != [2]int{0, 10} {
		t.Errorf("single worker ranges = %v, want one full range", ranges)
	}
}

func TestParallelizeWithThreshold(t *testing.T) {
	// Below the threshold the work runs as one sequential range.
	var ranges [][2]int
	var mu sync.Mutex
	ParallelizeWithThreshold(8, 100, func(start, end int) {
		mu.Lock()
		defer mu.Unlock()
		ranges = append(ranges, [2]int{start, end})
	})
	if len(ranges) != 1 || ranges[0] != [2]int{0, 8} {
		t.Errorf("below threshold: ranges = %v, want [[0 8]]", ranges)
	}

	// Above the threshold every item is still covered exactly once.
	counts := make([]int, 300)
	ParallelizeWithThreshold(300, 100, func(start, end int) {
		mu.Lock()
		defer mu.Unlock()
		for i := start; i < end; i++ {
			counts[i]++
		}
	})
	for i, c := range counts {
		if c != 1 {
			t.Errorf("above threshold: index %d visited %d times", i, c)
		}
	}
}
