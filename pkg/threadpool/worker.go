package threadpool

import "sync/atomic"

// worker is a single member of the pool. It holds a non-owning reference
// back to the pool; the pool always joins every worker before its shared
// state can be torn down.
type worker struct {
	id   int
	pool *Pool
}

// run is the worker loop: wait for work or termination, claim the front
// task under the lock, execute it outside the lock, repeat. The loop exits
// only when the pool is terminating and the queue is empty, so queued tasks
// are drained even after termination is requested.
func (w *worker) run() {
	p := w.pool
	defer p.wg.Done()

	for {
		p.mu.Lock()
		for len(p.tasks) == 0 && !p.terminating {
			p.busy[w.id] = false
			p.idle.Broadcast()
			p.hasWork.Wait()
		}
		if p.terminating && len(p.tasks) == 0 {
			p.busy[w.id] = false
			p.mu.Unlock()
			p.idle.Broadcast()
			return
		}

		task := p.tasks[0]
		p.tasks = p.tasks[1:]
		p.busy[w.id] = true
		p.mu.Unlock()

		w.invoke(task)

		p.mu.Lock()
		p.busy[w.id] = false
		p.mu.Unlock()
		p.idle.Broadcast()
	}
}

// invoke executes a claimed task, isolating any panic to this worker.
// A recovered panic is counted and reported through the diagnostic sink;
// it never propagates to the producer or takes the worker down.
func (w *worker) invoke(task Task) {
	defer func() {
		if r := recover(); r != nil {
			atomic.AddInt64(&w.pool.failed, 1)
			w.pool.logf("threadpool: worker %d: recovered task panic: %v; continuing", w.id, r)
		}
	}()

	task()
	atomic.AddInt64(&w.pool.completed, 1)
}
