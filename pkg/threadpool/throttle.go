package threadpool

import (
	"sync/atomic"

	"golang.org/x/time/rate"
)

// Throttled wraps a Pool and drops submissions that exceed a token-bucket
// rate limit. Like the pool itself it never blocks or penalizes the
// producer: an over-rate task is dropped with a diagnostic.
type Throttled struct {
	pool    *Pool
	limiter *rate.Limiter
	dropped int64
}

// NewThrottled wraps pool with a rate limit of tasksPerSecond and the given
// burst size. It panics if tasksPerSecond or burst is not positive.
func NewThrottled(pool *Pool, tasksPerSecond float64, burst int) *Throttled {
	if tasksPerSecond <= 0 || burst <= 0 {
		panic("threadpool: throttle rate and burst must be positive")
	}
	return &Throttled{
		pool:    pool,
		limiter: rate.NewLimiter(rate.Limit(tasksPerSecond), burst),
	}
}

// Submit queues a task if the rate limit allows it, dropping it otherwise.
func (t *Throttled) Submit(task Task) {
	if !t.limiter.Allow() {
		atomic.AddInt64(&t.dropped, 1)
		t.pool.logf("threadpool: Throttled.Submit: rate limit exceeded; dropping task")
		return
	}
	t.pool.Submit(task)
}

// Dropped returns the number of submissions rejected by the rate limit.
// It does not include tasks the underlying pool rejected.
func (t *Throttled) Dropped() int64 {
	return atomic.LoadInt64(&t.dropped)
}

// Unwrap returns the underlying Pool.
func (t *Throttled) Unwrap() *Pool {
	return t.pool
}
