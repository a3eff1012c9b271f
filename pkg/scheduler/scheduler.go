package scheduler

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	tperrors "github.com/vnykmshr/taskpool/pkg/common/errors"
	"github.com/vnykmshr/taskpool/pkg/common/validation"
	"github.com/vnykmshr/taskpool/pkg/metrics"
	"github.com/vnykmshr/taskpool/pkg/threadpool"
)

// Submitter delivers tasks for execution. *threadpool.Pool,
// *threadpool.MetricsPool and *threadpool.Throttled all satisfy it.
type Submitter interface {
	Submit(task threadpool.Task)
}

// Job describes a scheduled task.
type Job struct {
	ID      string
	Spec    string        // cron expression; empty for interval jobs
	Every   time.Duration // interval; zero for cron jobs
	Created time.Time
}

type jobEntry struct {
	job   Job
	entry cron.EntryID
}

// Scheduler submits tasks to a pool on cron or fixed-interval schedules.
// Delivery goes through Submitter.Submit, so the pool's accepting and
// terminating policy governs whether a firing actually runs.
type Scheduler struct {
	pool Submitter
	cron *cron.Cron

	name     string
	registry *metrics.Registry

	mu      sync.Mutex
	jobs    map[string]jobEntry
	started bool
}

// New creates a scheduler feeding the given pool. The scheduler is inert
// until Start is called.
func New(pool Submitter) *Scheduler {
	return &Scheduler{
		pool: pool,
		cron: cron.New(),
		jobs: make(map[string]jobEntry),
	}
}

// NewWithMetrics creates a scheduler with Prometheus metrics collection
// under the given scheduler name.
func NewWithMetrics(pool Submitter, name string, metricsConfig metrics.Config) *Scheduler {
	s := New(pool)
	if !metricsConfig.Enabled {
		return s
	}

	s.name = name
	s.registry = metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		s.registry = metrics.NewRegistry(metricsConfig.Registry)
	}
	return s
}

// ScheduleCron registers a task to be submitted on a standard 5-field cron
// expression ("*/5 * * * *", "@hourly", ...).
func (s *Scheduler) ScheduleCron(id, spec string, task threadpool.Task) error {
	if err := validation.ValidateNotEmpty("scheduler", "id", id); err != nil {
		return err
	}
	if err := validation.ValidateNotEmpty("scheduler", "spec", spec); err != nil {
		return err
	}
	if task == nil {
		return tperrors.NewValidationError("scheduler", "task", nil, "cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[id]; exists {
		return fmt.Errorf("scheduler: %w: %q", tperrors.ErrDuplicateJob, id)
	}

	entry, err := s.cron.AddFunc(spec, s.runner(task))
	if err != nil {
		return tperrors.NewValidationError("scheduler", "spec", spec, err.Error()).
			WithHint("use a standard 5-field cron expression")
	}

	s.addLocked(jobEntry{
		job:   Job{ID: id, Spec: spec, Created: time.Now()},
		entry: entry,
	})
	return nil
}

// ScheduleEvery registers a task to be submitted at a fixed interval.
// Intervals are rounded up to a whole second, the finest granularity the
// underlying cron engine supports.
func (s *Scheduler) ScheduleEvery(id string, every time.Duration, task threadpool.Task) error {
	if err := validation.ValidateNotEmpty("scheduler", "id", id); err != nil {
		return err
	}
	if every <= 0 {
		return tperrors.NewValidationError("scheduler", "every", every, "must be positive")
	}
	if task == nil {
		return tperrors.NewValidationError("scheduler", "task", nil, "cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[id]; exists {
		return fmt.Errorf("scheduler: %w: %q", tperrors.ErrDuplicateJob, id)
	}

	entry := s.cron.Schedule(cron.Every(every), cron.FuncJob(s.runner(task)))
	s.addLocked(jobEntry{
		job:   Job{ID: id, Every: every, Created: time.Now()},
		entry: entry,
	})
	return nil
}

// Cancel removes a scheduled job. It returns ErrUnknownJob if no job with
// the given ID exists.
func (s *Scheduler) Cancel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	je, exists := s.jobs[id]
	if !exists {
		return fmt.Errorf("scheduler: %w: %q", tperrors.ErrUnknownJob, id)
	}

	s.cron.Remove(je.entry)
	delete(s.jobs, id)
	if s.registry != nil {
		s.registry.JobsCancelled.WithLabelValues(s.name).Inc()
	}
	return nil
}

// List returns the scheduled jobs sorted by ID.
func (s *Scheduler) List() []Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := make([]Job, 0, len(s.jobs))
	for _, je := range s.jobs {
		jobs = append(jobs, je.job)
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].ID < jobs[j].ID })
	return jobs
}

// Start begins firing schedules. It is safe to call more than once.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.started = true
	s.cron.Start()
}

// Stop halts all schedules. The returned channel closes once every firing
// already in progress has been handed to the pool. Tasks already submitted
// keep running; stopping the scheduler does not drain the pool.
func (s *Scheduler) Stop() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.started = false
	return s.cron.Stop().Done()
}

func (s *Scheduler) addLocked(je jobEntry) {
	s.jobs[je.job.ID] = je
	if s.registry != nil {
		s.registry.JobsScheduled.WithLabelValues(s.name).Inc()
	}
}

// runner wraps a task into a cron callback that submits it to the pool.
func (s *Scheduler) runner(task threadpool.Task) func() {
	return func() {
		if s.registry != nil {
			s.registry.JobRuns.WithLabelValues(s.name).Inc()
		}
		s.pool.Submit(task)
	}
}
