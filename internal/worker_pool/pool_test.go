package worker_pool

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPool_RunsAllSubmittedTasks(t *testing.T) {
	pool := New(4)

	var counter int64
	for i := 0; i < 32; i++ {
		err := pool.Submit(context.Background(), func(ctx context.Context) {
			atomic.AddInt64(&counter, 1)
		})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}
	pool.Wait()

	if counter != 32 {
		t.Errorf("Expected 32 executed tasks, got %d", counter)
	}
}

func TestPool_BoundsConcurrency(t *testing.T) {
	const limit = 3
	pool := New(limit)

	var active, peak int64
	var mu sync.Mutex
	for i := 0; i < 20; i++ {
		err := pool.Submit(context.Background(), func(ctx context.Context) {
			current := atomic.AddInt64(&active, 1)
			mu.Lock()
			if current > peak {
				peak = current
			}
			mu.Unlock()
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt64(&active, -1)
		})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}
	pool.Wait()

	if peak > limit {
		t.Errorf("Observed %d concurrent tasks, limit is %d", peak, limit)
	}
	if peak == 0 {
		t.Error("No task ever ran")
	}
}

func TestPool_SubmitHonorsCancellationWhileSaturated(t *testing.T) {
	pool := New(1)

	release := make(chan struct{})
	err := pool.Submit(context.Background(), func(ctx context.Context) {
		<-release
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = pool.Submit(ctx, func(ctx context.Context) {
		t.Error("Task must not run after cancellation")
	})
	if err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}

	close(release)
	pool.Wait()
}

func TestPool_DefaultsWorkerCount(t *testing.T) {
	for _, n := range []int{0, -1} {
		if got := New(n).MaxWorkers(); got <= 0 {
			t.Errorf("New(%d) should fall back to a positive worker count, got %d", n, got)
		}
	}
	if got := New(7).MaxWorkers(); got != 7 {
		t.Errorf("Expected 7 workers, got %d", got)
	}
}
