/*
Package threadpool provides a fixed-size worker pool with an explicit,
flag-driven drain protocol.

A pool manages a fixed number of worker goroutines executing fire-and-forget
tasks from a shared FIFO queue. Producers never receive results or errors
back: a task is a plain func(), and failures (panics) are recovered at the
worker boundary and reported through an optional diagnostic sink.

Basic usage:

	pool := threadpool.New(4)
	defer pool.Close()

	for i := 0; i <= 10; i++ {
		i := i
		pool.Submit(func() {
			process(i)
		})
	}

	// Block until every submitted task has completed.
	if err := pool.Drain(false, false, false); err != nil {
		log.Fatal(err)
	}

Lifecycle:

Drain is the single compound lifecycle operation. Its three flags select
whether submission stays open while draining, whether queued tasks are
discarded, and whether the workers are permanently retired:

	pool.Drain(false, false, false) // wait for all tasks, pool stays usable
	pool.Drain(false, true, false)  // discard queued tasks, pool stays usable
	pool.Drain(false, false, true)  // wait for all tasks, then terminate
	pool.Drain(false, true, true)   // discard queued tasks, then terminate

Keeping submission open (allowNewTasks=true) while abandoning work or
terminating is contradictory and fails with
errors.ErrConflictingDrainFlags before any state changes.

Drain returns only after every task it did not abandon has finished.
Abandonment never interrupts a task that a worker has already claimed;
it only discards tasks still sitting on the queue.

Close abandons the queue and terminates the pool (it is Drain(false, true,
true) behind an io.Closer signature). Respawn restarts the worker set after
a terminating drain, returning the pool to full service. Reset discards
queued tasks without touching the workers.

Submission policy:

Submit never blocks beyond brief lock contention and never reports failure
to the caller. Submitting to a pool that is not accepting tasks drops the
task and emits a diagnostic; this deliberately soft policy keeps producers
unaware of shutdown timing. Tasks may themselves call Submit; re-entrant
submission behaves like any other producer.

Ordering:

Workers claim tasks in submission order, but completion order across
workers is unordered: two tasks submitted in order A, B may finish in
either order when dispatched to different workers.

Diagnostics:

Construct with NewWithConfig to attach an io.Writer sink. Every rejected
submission and every recovered task panic produces one human-readable line.
A nil sink disables diagnostics entirely.

Instrumentation:

NewWithMetrics and NewWithConfigAndMetrics wrap the pool with Prometheus
metrics (see pkg/metrics). NewThrottled wraps a pool with a token-bucket
submission rate limit.
*/
package threadpool
