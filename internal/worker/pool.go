// Package worker provides the bounded fan-out used by the daily matching
// run. Per-seeker tasks share no mutable state, so the pool only bounds
// concurrency to the store's read capacity.
package worker

import (
	"context"
	"sync"
)

type Task func(ctx context.Context) error

type Result struct {
	Err error
}

type Pool struct {
	workers int
	tasks   chan Task
	wg      sync.WaitGroup
}

func NewPool(workers, buffer int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &Pool{
		workers: workers,
		tasks:   make(chan Task, buffer),
	}
}

// Submit enqueues a task, blocking while the buffer is full. Reports false
// when ctx ends before the task is accepted. Must not be called after Close.
func (p *Pool) Submit(ctx context.Context, t Task) bool {
	if t == nil {
		return false
	}
	select {
	case <-ctx.Done():
		return false
	case p.tasks <- t:
		return true
	}
}

// Close signals that no further tasks will be submitted.
func (p *Pool) Close() {
	close(p.tasks)
}

// Run starts the workers and returns the result stream. The stream closes
// once Close has been called and all tasks have finished. Context
// cancellation stops workers between tasks.
func (p *Pool) Run(ctx context.Context) <-chan Result {
	out := make(chan Result, p.workers)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					err := t(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result{Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(out)
	}()

	return out
}
