package ident

import (
	"sync"
	"testing"
)

func TestNextIsSequential(t *testing.T) {
	a := NewAllocator()

	for want := int64(1); want <= 5; want++ {
		if got := a.Next(); got != want {
			t.Fatalf("Next() = %d, want %d", got, want)
		}
	}
}

func TestNextConcurrent(t *testing.T) {
	const (
		workers   = 8
		perWorker = 250
	)

	a := NewAllocator()
	seen := make(chan int64, workers*perWorker)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				seen <- a.Next()
			}
		}()
	}
	wg.Wait()
	close(seen)

	got := make(map[int64]bool, workers*perWorker)
	for id := range seen {
		if got[id] {
			t.Fatalf("id %d allocated twice", id)
		}
		got[id] = true
	}

	// Dense sequence: every value in [1, N] is handed out exactly once.
	for want := int64(1); want <= workers*perWorker; want++ {
		if !got[want] {
			t.Fatalf("id %d never allocated", want)
		}
	}
}
