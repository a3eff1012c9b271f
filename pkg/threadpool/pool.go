package threadpool

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	tperrors "github.com/vnykmshr/taskpool/pkg/common/errors"
)

// Task is a unit of queued work. It takes no arguments and returns nothing;
// a task signals failure by panicking, which the executing worker recovers
// and reports through the pool's diagnostic sink.
type Task func()

// DefaultWorkers is the worker count used when Config.Workers is zero.
const DefaultWorkers = 4

// Config holds configuration options for creating a pool.
type Config struct {
	// Workers is the number of worker goroutines in the pool.
	// Zero selects DefaultWorkers. Negative values are invalid.
	Workers int

	// Diagnostics receives single-line messages about rejected
	// submissions and recovered task panics. Nil disables diagnostics.
	Diagnostics io.Writer
}

// Stats is a snapshot of the pool's task counters.
type Stats struct {
	// Submitted is the number of tasks accepted onto the queue.
	Submitted int64

	// Rejected is the number of tasks dropped because the pool was
	// not accepting submissions (or the task was nil).
	Rejected int64

	// Completed is the number of tasks that ran to completion.
	Completed int64

	// Failed is the number of tasks that panicked during execution.
	Failed int64

	// Abandoned is the number of queued tasks discarded by Drain or Reset
	// before any worker started them.
	Abandoned int64
}

// Pool is a fixed-size set of worker goroutines executing tasks from a
// shared FIFO queue. Workers are spawned at construction and joined by a
// terminating Drain; the set is never resized in between.
//
// The queue, the accepting/terminating flags, and the per-worker busy flags
// are all guarded by a single mutex. Two condition variables share that
// mutex: hasWork wakes idle workers on task arrival or termination, and idle
// wakes Drain callers when a worker finishes a task.
type Pool struct {
	diag   io.Writer
	diagMu sync.Mutex

	mu          sync.Mutex
	hasWork     *sync.Cond
	idle        *sync.Cond
	tasks       []Task
	busy        []bool
	accepting   bool
	terminating bool

	wg sync.WaitGroup

	submitted int64
	rejected  int64
	completed int64
	failed    int64
	abandoned int64
}

// New creates a pool with the given number of workers and no diagnostic
// sink. Workers begin waiting for tasks immediately.
func New(workers int) *Pool {
	return NewWithConfig(Config{Workers: workers})
}

// NewWithConfig creates a pool with the specified configuration.
// It panics if Config.Workers is negative.
func NewWithConfig(config Config) *Pool {
	if config.Workers < 0 {
		panic("threadpool: worker count must not be negative")
	}
	if config.Workers == 0 {
		config.Workers = DefaultWorkers
	}

	p := &Pool{
		diag:      config.Diagnostics,
		busy:      make([]bool, config.Workers),
		accepting: true,
	}
	p.hasWork = sync.NewCond(&p.mu)
	p.idle = sync.NewCond(&p.mu)
	p.spawn()
	return p
}

// spawn starts one goroutine per busy-flag slot. Callers must guarantee no
// previous worker generation is still running.
func (p *Pool) spawn() {
	n := len(p.busy)
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		w := &worker{id: i, pool: p}
		go w.run()
	}
}

// Submit queues a task for execution by one worker and returns immediately.
// If the pool is not accepting submissions the task is dropped and a
// diagnostic is emitted; submission failures are never raised to the caller.
func (p *Pool) Submit(task Task) {
	p.submit(task)
}

// submit reports whether the task was enqueued.
func (p *Pool) submit(task Task) bool {
	if task == nil {
		atomic.AddInt64(&p.rejected, 1)
		p.logf("threadpool: Submit: dropping nil task")
		return false
	}

	p.mu.Lock()
	if !p.accepting {
		p.mu.Unlock()
		atomic.AddInt64(&p.rejected, 1)
		p.logf("threadpool: Submit: dropping task submitted to a stopped pool")
		return false
	}
	p.tasks = append(p.tasks, task)
	p.mu.Unlock()

	atomic.AddInt64(&p.submitted, 1)
	p.hasWork.Signal()
	return true
}

// Drain is the pool's compound lifecycle operation.
//
// allowNewTasks controls whether submission stays open while draining; it
// cannot be combined with abandonPending or terminate.
//
// If abandonPending is true, every queued task that no worker has started is
// discarded. Otherwise Drain blocks until the queue empties naturally and
// then closes submission.
//
// If terminate is true, workers are signaled to exit once the queue is empty
// and Drain blocks until all of them have; the pool stays retired until
// Respawn. Otherwise Drain blocks until no worker is busy and then re-opens
// submission, leaving the pool reusable.
//
// Drain returns only after every task it did not abandon has finished
// executing. In-flight tasks always run to completion; abandonment only
// affects tasks still on the queue.
func (p *Pool) Drain(allowNewTasks, abandonPending, terminate bool) error {
	_, err := p.drain(allowNewTasks, abandonPending, terminate)
	return err
}

// drain implements Drain and additionally reports how many queued tasks
// were abandoned.
func (p *Pool) drain(allowNewTasks, abandonPending, terminate bool) (int, error) {
	if allowNewTasks && (abandonPending || terminate) {
		return 0, fmt.Errorf("threadpool: Drain: %w: allowNewTasks cannot be combined with abandonPending or terminate",
			tperrors.ErrConflictingDrainFlags)
	}

	p.mu.Lock()
	p.accepting = allowNewTasks

	abandoned := 0
	if abandonPending {
		// Submission is already closed under this lock, so no task can
		// slip onto the queue between here and the discard.
		abandoned = p.discardQueueLocked()
	} else {
		for len(p.tasks) > 0 {
			p.idle.Wait()
		}
		// Queue is empty but tasks may still be running.
		p.accepting = false
	}

	if terminate {
		p.terminating = true
		p.mu.Unlock()
		p.hasWork.Broadcast()
		p.wg.Wait()
		return abandoned, nil
	}

	// Wait for in-flight tasks, then put the pool back in service.
	for p.anyBusyLocked() {
		p.idle.Wait()
	}
	p.accepting = true
	p.mu.Unlock()
	return abandoned, nil
}

// Reset discards all queued tasks without touching the worker goroutines
// and, unless the pool has been terminated, re-opens submission. In-flight
// tasks are unaffected.
func (p *Pool) Reset() {
	p.mu.Lock()
	p.discardQueueLocked()
	if !p.terminating {
		p.accepting = true
	}
	p.mu.Unlock()
}

// Respawn restarts the fixed set of workers after a terminating Drain and
// re-opens submission. Calling Respawn while workers are still live is a
// usage mistake; it is ignored with a diagnostic. Respawn must not be called
// concurrently with a terminating Drain.
func (p *Pool) Respawn() {
	p.mu.Lock()
	if !p.terminating {
		p.mu.Unlock()
		p.logf("threadpool: Respawn: workers are still running; ignoring")
		return
	}
	p.terminating = false
	p.accepting = true
	for i := range p.busy {
		p.busy[i] = false
	}
	p.spawn()
	p.mu.Unlock()
}

// Close abandons all queued tasks and terminates the pool, blocking until
// every worker has exited. It is equivalent to Drain(false, true, true),
// is safe to call more than once, and never returns a non-nil error.
func (p *Pool) Close() error {
	return p.Drain(false, true, true)
}

// Workers returns the fixed worker count.
func (p *Pool) Workers() int {
	return len(p.busy)
}

// QueueDepth returns the number of tasks waiting on the queue.
func (p *Pool) QueueDepth() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.tasks)
}

// BusyWorkers returns the number of workers currently executing a task.
func (p *Pool) BusyWorkers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, b := range p.busy {
		if b {
			n++
		}
	}
	return n
}

// Stats returns a snapshot of the pool's task counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Submitted: atomic.LoadInt64(&p.submitted),
		Rejected:  atomic.LoadInt64(&p.rejected),
		Completed: atomic.LoadInt64(&p.completed),
		Failed:    atomic.LoadInt64(&p.failed),
		Abandoned: atomic.LoadInt64(&p.abandoned),
	}
}

func (p *Pool) discardQueueLocked() int {
	n := len(p.tasks)
	if n > 0 {
		atomic.AddInt64(&p.abandoned, int64(n))
		p.tasks = nil
		// Wake any Drain waiting on the queue-empty condition.
		p.idle.Broadcast()
	}
	return n
}

func (p *Pool) anyBusyLocked() bool {
	for _, b := range p.busy {
		if b {
			return true
		}
	}
	return false
}

// logf writes a single diagnostic line to the configured sink.
func (p *Pool) logf(format string, args ...interface{}) {
	if p.diag == nil {
		return
	}
	p.diagMu.Lock()
	fmt.Fprintf(p.diag, format+"\n", args...)
	p.diagMu.Unlock()
}
