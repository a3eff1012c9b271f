/*
Package scheduler provides cron and fixed-interval submission of tasks into
a worker pool.

The scheduler does not execute anything itself: every firing is handed to a
Submitter (typically a *threadpool.Pool), so execution concurrency, fault
isolation, and shutdown policy remain the pool's.

	pool := threadpool.New(4)
	defer pool.Close()

	s := scheduler.New(pool)
	s.ScheduleEvery("heartbeat", 30*time.Second, sendHeartbeat)
	s.ScheduleCron("nightly-cleanup", "0 3 * * *", cleanup)
	s.Start()
	defer func() { <-s.Stop() }()

Firings delivered to a pool that is no longer accepting tasks are dropped
by the pool's own submission policy and surface on its diagnostic sink.
*/
package scheduler
