package decode

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed set of goroutines executing decode jobs.
//
// Jobs share one buffered queue. Submit blocks while the queue is full,
// which bounds memory held by pending decodes.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	workers int
	queue   chan func()
	done    chan struct{}

	// wg tracks the worker goroutines.
	wg sync.WaitGroup

	// jobs tracks submitted but unfinished jobs.
	jobs sync.WaitGroup

	running atomic.Bool
	mu      sync.RWMutex
}

// NewPool creates a pool with the given number of workers.
// If workers is 0 or negative, half of GOMAXPROCS (at least 1) is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = max(runtime.GOMAXPROCS(0)/2, 1)
	}
	p := &Pool{
		workers: workers,
		queue:   make(chan func(), workers*4),
		done:    make(chan struct{}),
	}
	p.running.Store(true)
	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case job := <-p.queue:
			job()
		}
	}
}

// Submit queues job for execution and reports whether it was accepted.
// Jobs submitted after Close are rejected.
func (p *Pool) Submit(job func()) bool {
	if job == nil {
		return false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.running.Load() {
		return false
	}
	p.jobs.Add(1)
	wrapped := func() {
		defer p.jobs.Done()
		job()
	}
	select {
	case p.queue <- wrapped:
		return true
	case <-p.done:
		p.jobs.Done()
		return false
	}
}

// Wait blocks until every accepted job has finished.
func (p *Pool) Wait() {
	p.jobs.Wait()
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool accepts jobs.
func (p *Pool) IsRunning() bool {
	return p.running.Load()
}

// Close finishes queued jobs, stops the workers and waits for them.
// Close is idempotent.
func (p *Pool) Close() {
	p.mu.Lock()
	if !p.running.Load() {
		p.mu.Unlock()
		return
	}
	p.running.Store(false)
	p.mu.Unlock()

	p.jobs.Wait()
	close(p.done)
	p.wg.Wait()
}
