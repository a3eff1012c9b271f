package threadpool

import (
	"sync/atomic"
	"testing"
)

// BenchmarkSubmit measures the overhead of task submission and execution
func BenchmarkSubmit(b *testing.B) {
	pool := New(4)
	defer pool.Close() //nolint:errcheck

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.Submit(func() {})
	}
	b.StopTimer()

	if err := pool.Drain(false, false, false); err != nil {
		b.Fatal(err)
	}
}

// BenchmarkSubmitParallel measures submission under producer contention
func BenchmarkSubmitParallel(b *testing.B) {
	pool := New(8)
	defer pool.Close() //nolint:errcheck

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			pool.Submit(func() {})
		}
	})
	b.StopTimer()

	if err := pool.Drain(false, false, false); err != nil {
		b.Fatal(err)
	}
}

// BenchmarkSubmitWithWork measures throughput with CPU-bound tasks
func BenchmarkSubmitWithWork(b *testing.B) {
	pool := New(4)
	defer pool.Close() //nolint:errcheck

	var sink int64

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.Submit(func() {
			sum := 0
			for j := 0; j < 1000; j++ {
				sum += j
			}
			atomic.AddInt64(&sink, int64(sum))
		})
	}
	b.StopTimer()

	if err := pool.Drain(false, false, false); err != nil {
		b.Fatal(err)
	}
}

// BenchmarkDrainCycle measures repeated drain-and-reuse cycles
func BenchmarkDrainCycle(b *testing.B) {
	pool := New(4)
	defer pool.Close() //nolint:errcheck

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := 0; j < 16; j++ {
			pool.Submit(func() {})
		}
		if err := pool.Drain(false, false, false); err != nil {
			b.Fatal(err)
		}
	}
}
