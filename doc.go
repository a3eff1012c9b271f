/*
Package taskpool provides a fixed-size worker pool for fire-and-forget tasks,
with an explicit flag-driven drain protocol.

Worker Pool (pkg/threadpool):
  - Fixed worker count, shared FIFO queue, per-worker busy indicators
  - Compound Drain operation: keep accepting / abandon pending / terminate
  - Per-task fault isolation with diagnostics on an optional sink
  - Reset and Respawn to recover or restart a pool
  - Prometheus instrumentation and token-bucket submission throttling

Scheduling (pkg/scheduler):
  - Cron and fixed-interval submission of tasks into a pool

Example usage:

	import (
		"github.com/vnykmshr/taskpool/pkg/threadpool"
	)

	pool := threadpool.New(4)
	defer pool.Close()

	for i := 0; i <= 10; i++ {
		i := i
		pool.Submit(func() { process(i) })
	}

	pool.Drain(false, false, false) // wait for all tasks to complete
*/
package taskpool
