package renderer

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestWorkerPool_RunBatch(t *testing.T) {
	pool := NewWorkerPool(4, 4)
	defer pool.Close()

	for batch := 0; batch < 3; batch++ {
		var count atomic.Int64
		jobs := make([]func() error, 16)
		for i := range jobs {
			jobs[i] = func() error {
				count.Add(1)
				return nil
			}
		}

		if err := pool.RunBatch(jobs); err != nil {
			t.Fatalf("batch %d: unexpected error %v", batch, err)
		}
		// RunBatch is a barrier, so every job has run by now
		if got := count.Load(); got != 16 {
			t.Fatalf("batch %d: expected 16 completed jobs, got %d", batch, got)
		}
	}
}

func TestWorkerPool_Errors(t *testing.T) {
	pool := NewWorkerPool(2, 2)
	defer pool.Close()

	boom := errors.New("boom")
	err := pool.RunBatch([]func() error{
		func() error { return nil },
		func() error { return boom },
	})
	if !errors.Is(err, boom) {
		t.Errorf("Expected job error, got %v", err)
	}

	err = pool.RunBatch([]func() error{
		func() error { panic("bad band") },
	})
	if err == nil {
		t.Error("Expected panic to be reported as an error")
	}
}

func TestWorkerPool_Closed(t *testing.T) {
	pool := NewWorkerPool(1, 1)
	pool.Close()
	pool.Close()

	if err := pool.RunBatch([]func() error{func() error { return nil }}); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
}
