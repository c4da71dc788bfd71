// Package parallel provides the fork-join worker pool used by the blur passes.
//
// Work is partitioned statically: a call to ForRanges splits an index space
// into contiguous, non-overlapping ranges, one per worker, and blocks until
// every range has been processed. Workers never share mutable state beyond
// what the caller hands each of them, so no locking is needed in the work
// functions themselves.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a fixed set of goroutines executing render work.
//
// Each worker owns a queue. ExecuteAll distributes work round-robin; an idle
// worker steals from the other queues before blocking on its own.
//
// Thread safety: WorkerPool is safe for concurrent use. A nil *WorkerPool is
// valid and runs all work inline on the calling goroutine.
type WorkerPool struct {
	workers    int
	workQueues []chan func()
	done       chan struct{}
	wg         sync.WaitGroup
	running    atomic.Bool
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.workQueues[id]

	for {
		select {
		case <-p.done:
			p.drainQueue(myQueue)
			return

		case work := <-myQueue:
			if work != nil {
				work()
			}

		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			select {
			case <-p.done:
				p.drainQueue(myQueue)
				return
			case work := <-myQueue:
				if work != nil {
					work()
				}
			}
		}
	}
}

func (p *WorkerPool) drainQueue(queue chan func()) {
	for {
		select {
		case work := <-queue:
			if work != nil {
				work()
			}
		default:
			return
		}
	}
}

// steal takes one work item from another worker's queue, or returns nil.
func (p *WorkerPool) steal(myID int) func() {
	for i := range p.workers {
		if i == myID {
			continue
		}
		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// ExecuteAll runs every work item and waits for all of them to finish.
// On a nil or closed pool the items run inline, in order.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}
	if p == nil || !p.running.Load() {
		for _, fn := range work {
			fn()
		}
		return
	}

	var completion sync.WaitGroup
	completion.Add(len(work))

	for i, fn := range work {
		workFn := fn
		wrapped := func() {
			defer completion.Done()
			workFn()
		}

		select {
		case p.workQueues[i%p.workers] <- wrapped:
		case <-p.done:
			// Pool closed underneath us: finish the item here.
			wrapped()
		}
	}

	completion.Wait()
}

// ForRanges splits [0, n) into at most Workers() contiguous ranges and calls
// fn(worker, start, end) for each, blocking until all calls return. The
// worker index is in [0, Workers()) and is unique per call, so callers can
// index per-worker scratch space with it.
//
// Ranges are a pure function of n and the worker count; a nil pool processes
// the whole range as worker 0.
func (p *WorkerPool) ForRanges(n int, fn func(worker, start, end int)) {
	if n <= 0 {
		return
	}
	parts := p.Workers()
	if parts > n {
		parts = n
	}
	if parts <= 1 {
		fn(0, 0, n)
		return
	}

	work := make([]func(), parts)
	for w := range parts {
		start := n * w / parts
		end := n * (w + 1) / parts
		worker := w
		work[w] = func() { fn(worker, start, end) }
	}
	p.ExecuteAll(work)
}

// Close stops accepting work, finishes queued items, and stops the workers.
// Close is safe to call multiple times and on a nil pool.
func (p *WorkerPool) Close() {
	if p == nil || !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers. A nil pool reports 1.
func (p *WorkerPool) Workers() int {
	if p == nil {
		return 1
	}
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p != nil && p.running.Load()
}
