// Package metrics provides Prometheus instrumentation for taskpool components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config controls metrics collection for a component.
type Config struct {
	// Enabled turns metrics collection on or off.
	Enabled bool

	// Registry is the Prometheus registerer to register metrics with.
	// If nil, the default registerer is used.
	Registry prometheus.Registerer
}

// Registry holds all metric instances for taskpool components.
type Registry struct {
	// Pool Metrics
	PoolWorkers    *prometheus.GaugeVec
	PoolBusy       *prometheus.GaugeVec
	PoolQueued     *prometheus.GaugeVec
	TasksSubmitted *prometheus.CounterVec
	TasksRejected  *prometheus.CounterVec
	TasksCompleted *prometheus.CounterVec
	TasksFailed    *prometheus.CounterVec
	TasksAbandoned *prometheus.CounterVec
	TaskQueueWait  *prometheus.HistogramVec
	TaskDuration   *prometheus.HistogramVec

	// Scheduler Metrics
	JobsScheduled *prometheus.CounterVec
	JobsCancelled *prometheus.CounterVec
	JobRuns       *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by taskpool components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Pool Metrics
		PoolWorkers: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskpool",
				Subsystem: "pool",
				Name:      "workers",
				Help:      "Fixed worker count of the pool",
			},
			[]string{"pool_name"},
		),

		PoolBusy: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskpool",
				Subsystem: "pool",
				Name:      "busy_workers",
				Help:      "Number of workers currently executing a task",
			},
			[]string{"pool_name"},
		),

		PoolQueued: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskpool",
				Subsystem: "pool",
				Name:      "queued_tasks",
				Help:      "Number of tasks waiting on the queue",
			},
			[]string{"pool_name"},
		),

		TasksSubmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskpool",
				Subsystem: "pool",
				Name:      "tasks_submitted_total",
				Help:      "Total number of tasks accepted onto the queue",
			},
			[]string{"pool_name"},
		),

		TasksRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskpool",
				Subsystem: "pool",
				Name:      "tasks_rejected_total",
				Help:      "Total number of submissions dropped by a closed pool",
			},
			[]string{"pool_name"},
		),

		TasksCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskpool",
				Subsystem: "pool",
				Name:      "tasks_completed_total",
				Help:      "Total number of tasks that ran to completion",
			},
			[]string{"pool_name"},
		),

		TasksFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskpool",
				Subsystem: "pool",
				Name:      "tasks_failed_total",
				Help:      "Total number of tasks that panicked during execution",
			},
			[]string{"pool_name"},
		),

		TasksAbandoned: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskpool",
				Subsystem: "pool",
				Name:      "tasks_abandoned_total",
				Help:      "Total number of queued tasks discarded without execution",
			},
			[]string{"pool_name"},
		),

		TaskQueueWait: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "taskpool",
				Subsystem: "pool",
				Name:      "task_queue_wait_seconds",
				Help:      "Time tasks spent queued before a worker claimed them",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"pool_name"},
		),

		TaskDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "taskpool",
				Subsystem: "pool",
				Name:      "task_duration_seconds",
				Help:      "Time spent executing tasks",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"pool_name"},
		),

		// Scheduler Metrics
		JobsScheduled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskpool",
				Subsystem: "scheduler",
				Name:      "jobs_scheduled_total",
				Help:      "Total number of jobs scheduled",
			},
			[]string{"scheduler_name"},
		),

		JobsCancelled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskpool",
				Subsystem: "scheduler",
				Name:      "jobs_cancelled_total",
				Help:      "Total number of jobs cancelled",
			},
			[]string{"scheduler_name"},
		),

		JobRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskpool",
				Subsystem: "scheduler",
				Name:      "job_runs_total",
				Help:      "Total number of job firings submitted to a pool",
			},
			[]string{"scheduler_name"},
		),
	}
}
