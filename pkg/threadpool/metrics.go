package threadpool

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vnykmshr/taskpool/pkg/metrics"
)

// MetricsPool wraps a Pool with Prometheus metrics collection. It exposes
// the same operations as Pool; every task submitted through it is timed and
// counted under the given pool name.
type MetricsPool struct {
	pool     *Pool
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics creates a pool with metrics enabled on a private registry.
func NewWithMetrics(workers int, name string) *MetricsPool {
	// Use a separate registry per metrics-enabled pool to avoid conflicts
	// when several pools share a name.
	registry := prometheus.NewRegistry()
	return NewWithConfigAndMetrics(Config{Workers: workers}, name, metrics.Config{
		Enabled:  true,
		Registry: registry,
	})
}

// NewWithConfigAndMetrics creates a pool with custom config and metrics.
func NewWithConfigAndMetrics(config Config, name string, metricsConfig metrics.Config) *MetricsPool {
	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	mp := &MetricsPool{
		pool:     NewWithConfig(config),
		name:     name,
		registry: registry,
		enabled:  metricsConfig.Enabled,
	}
	mp.updateGauges()
	return mp
}

// Unwrap returns the underlying Pool.
func (mp *MetricsPool) Unwrap() *Pool {
	return mp.pool
}

// updateGauges refreshes the current-state gauges.
func (mp *MetricsPool) updateGauges() {
	if !mp.enabled {
		return
	}

	mp.registry.PoolWorkers.WithLabelValues(mp.name).Set(float64(mp.pool.Workers()))
	mp.registry.PoolBusy.WithLabelValues(mp.name).Set(float64(mp.pool.BusyWorkers()))
	mp.registry.PoolQueued.WithLabelValues(mp.name).Set(float64(mp.pool.QueueDepth()))
}

// Submit queues a task for execution, recording queue wait and execution
// duration. Panics still propagate to the worker's recovery, so failure
// accounting and diagnostics behave exactly as on the plain Pool.
func (mp *MetricsPool) Submit(task Task) {
	if !mp.enabled || task == nil {
		mp.pool.Submit(task)
		return
	}

	submitTime := time.Now()
	accepted := mp.pool.submit(func() {
		start := time.Now()
		mp.registry.TaskQueueWait.WithLabelValues(mp.name).Observe(start.Sub(submitTime).Seconds())

		completed := false
		defer func() {
			mp.registry.TaskDuration.WithLabelValues(mp.name).Observe(time.Since(start).Seconds())
			if completed {
				mp.registry.TasksCompleted.WithLabelValues(mp.name).Inc()
			} else {
				mp.registry.TasksFailed.WithLabelValues(mp.name).Inc()
			}
			mp.updateGauges()
		}()

		task()
		completed = true
	})

	if accepted {
		mp.registry.TasksSubmitted.WithLabelValues(mp.name).Inc()
	} else {
		mp.registry.TasksRejected.WithLabelValues(mp.name).Inc()
	}
	mp.updateGauges()
}

// Drain performs the pool's compound lifecycle operation, counting any
// abandoned tasks.
func (mp *MetricsPool) Drain(allowNewTasks, abandonPending, terminate bool) error {
	abandoned, err := mp.pool.drain(allowNewTasks, abandonPending, terminate)
	if mp.enabled {
		if abandoned > 0 {
			mp.registry.TasksAbandoned.WithLabelValues(mp.name).Add(float64(abandoned))
		}
		mp.updateGauges()
	}
	return err
}

// Reset discards all queued tasks without touching the worker goroutines.
func (mp *MetricsPool) Reset() {
	before := mp.pool.Stats().Abandoned
	mp.pool.Reset()
	if mp.enabled {
		if n := mp.pool.Stats().Abandoned - before; n > 0 {
			mp.registry.TasksAbandoned.WithLabelValues(mp.name).Add(float64(n))
		}
		mp.updateGauges()
	}
}

// Respawn restarts the workers after a terminating Drain.
func (mp *MetricsPool) Respawn() {
	mp.pool.Respawn()
	mp.updateGauges()
}

// Close abandons queued tasks and terminates the pool.
func (mp *MetricsPool) Close() error {
	return mp.Drain(false, true, true)
}

// Workers returns the fixed worker count.
func (mp *MetricsPool) Workers() int {
	return mp.pool.Workers()
}

// QueueDepth returns the number of tasks waiting on the queue.
func (mp *MetricsPool) QueueDepth() int {
	depth := mp.pool.QueueDepth()
	if mp.enabled {
		mp.registry.PoolQueued.WithLabelValues(mp.name).Set(float64(depth))
	}
	return depth
}

// BusyWorkers returns the number of workers currently executing a task.
func (mp *MetricsPool) BusyWorkers() int {
	busy := mp.pool.BusyWorkers()
	if mp.enabled {
		mp.registry.PoolBusy.WithLabelValues(mp.name).Set(float64(busy))
	}
	return busy
}

// Stats returns a snapshot of the pool's task counters.
func (mp *MetricsPool) Stats() Stats {
	return mp.pool.Stats()
}

// MetricsEnabled returns true if metrics are currently enabled.
func (mp *MetricsPool) MetricsEnabled() bool {
	return mp.enabled
}
