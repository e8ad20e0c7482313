// Package worker_pool bounds the number of tool calls executing at once.
package worker_pool

import (
	"context"
	"runtime"
	"sync"
)

// Pool executes submitted tasks concurrently with semaphore-based limiting
type Pool struct {
	maxWorkers int
	semaphore  chan struct{}
	wg         sync.WaitGroup
}

// New creates a pool allowing up to maxWorkers concurrent tasks
func New(maxWorkers int) *Pool {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}

	return &Pool{
		maxWorkers: maxWorkers,
		semaphore:  make(chan struct{}, maxWorkers),
	}
}

// Submit runs the task on its own goroutine once a worker slot is free.
// It blocks while the pool is saturated and returns the context error if
// cancellation wins the wait.
func (p *Pool) Submit(ctx context.Context, task func(ctx context.Context)) error {
	select {
	case p.semaphore <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() { <-p.semaphore }()
		task(ctx)
	}()

	return nil
}

// Wait blocks until all submitted tasks have finished
func (p *Pool) Wait() {
	p.wg.Wait()
}

// MaxWorkers returns the concurrency bound
func (p *Pool) MaxWorkers() int {
	return p.maxWorkers
}
