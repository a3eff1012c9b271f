package threadpool

import (
	"sync/atomic"
	"testing"

	"github.com/vnykmshr/taskpool/internal/testutil"
)

func TestThrottledSubmit(t *testing.T) {
	sink := testutil.NewMockWriter()
	pool := NewWithConfig(Config{Workers: 2, Diagnostics: sink})
	defer pool.Close() //nolint:errcheck

	// 1 task/sec with a burst of 2: of five back-to-back submissions only
	// the burst is admitted.
	throttled := NewThrottled(pool, 1, 2)

	var executed int32
	for i := 0; i < 5; i++ {
		throttled.Submit(func() { atomic.AddInt32(&executed, 1) })
	}

	testutil.AssertNoError(t, pool.Drain(false, false, false))

	testutil.AssertEqual(t, atomic.LoadInt32(&executed), int32(2))
	testutil.AssertEqual(t, throttled.Dropped(), int64(3))
	testutil.AssertEqual(t, pool.Stats().Submitted, int64(2))
	testutil.AssertEqual(t, sink.Contains("rate limit exceeded"), true)
}

func TestThrottledUnwrap(t *testing.T) {
	pool := New(1)
	defer pool.Close() //nolint:errcheck

	throttled := NewThrottled(pool, 10, 10)
	testutil.AssertEqual(t, throttled.Unwrap() == pool, true)
}

func TestNewThrottledPanicsOnInvalidRate(t *testing.T) {
	pool := New(1)
	defer pool.Close() //nolint:errcheck

	tests := []struct {
		name  string
		rate  float64
		burst int
	}{
		{"zero rate", 0, 1},
		{"negative rate", -1, 1},
		{"zero burst", 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Error("expected panic")
				}
			}()
			NewThrottled(pool, tt.rate, tt.burst)
		})
	}
}
