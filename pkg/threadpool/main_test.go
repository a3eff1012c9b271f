package threadpool

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain enables goroutine leak detection for all tests in this package.
// This catches any worker goroutine that outlives a terminating drain.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
