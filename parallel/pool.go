// SPDX-License-Identifier: MIT

package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent set of worker goroutines reused across many Run
// calls. The engine dispatches one fork-join per iteration, so reusing the
// workers avoids spawning hundreds of goroutines per call.
//
// Run may be called from several goroutines at once, but Close must not
// overlap a Run. A closed Pool keeps working, running every block on the
// caller's goroutine.
type Pool struct {
	numWorkers int
	workC      chan task
	closeOnce  sync.Once
	closed     atomic.Bool
}

type task struct {
	fn      func()
	barrier *sync.WaitGroup
}

// NewPool starts numWorkers workers. If numWorkers <= 0, GOMAXPROCS is used.
func NewPool(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan task, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	for t := range p.workC {
		t.fn()
		t.barrier.Done()
	}
}

// NumWorkers returns the number of persistent workers.
func (p *Pool) NumWorkers() int { return p.numWorkers }

// Close stops the workers after pending work drains. Safe to call twice.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// Run implements Runner. The block layout follows Blocks(order, workers)
// regardless of the pool size; when there are more blocks than workers the
// extra blocks queue behind the busy ones.
func (p *Pool) Run(order, workers int, fn BlockFunc) {
	blocks := Blocks(order, workers)
	if len(blocks) == 0 {
		return
	}

	if len(blocks) == 1 || p.closed.Load() {
		for _, b := range blocks {
			fn(b.Start, b.Length)
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(blocks))
	for _, b := range blocks {
		p.workC <- task{
			fn:      func() { fn(b.Start, b.Length) },
			barrier: &wg,
		}
	}
	wg.Wait()
}
