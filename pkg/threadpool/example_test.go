package threadpool_test

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/vnykmshr/taskpool/pkg/threadpool"
)

// Example demonstrates basic usage of the pool
func Example() {
	// Create a pool with 3 workers
	pool := threadpool.New(3)
	defer pool.Close()

	pool.Submit(func() {
		fmt.Println("task executed")
	})

	// Block until every submitted task has completed
	if err := pool.Drain(false, false, false); err != nil {
		fmt.Println(err)
	}

	// Output: task executed
}

// Example_sideEffects demonstrates collecting results through side effects:
// tasks have no return channel, so producers share state under their own lock
func Example_sideEffects() {
	pool := threadpool.New(4)
	defer pool.Close()

	var mu sync.Mutex
	var squares []int

	for i := 1; i <= 5; i++ {
		i := i
		pool.Submit(func() {
			mu.Lock()
			squares = append(squares, i*i)
			mu.Unlock()
		})
	}

	// Completion order across workers is unordered, so sort before printing
	pool.Drain(false, false, false)
	sort.Ints(squares)
	fmt.Println(squares)

	// Output: [1 4 9 16 25]
}

// Example_diagnostics demonstrates the diagnostic sink: task panics and
// rejected submissions are reported there instead of reaching the producer
func Example_diagnostics() {
	pool := threadpool.NewWithConfig(threadpool.Config{
		Workers:     2,
		Diagnostics: os.Stderr,
	})

	pool.Submit(func() {
		panic("something went wrong")
	})

	// Terminate the pool, then try a late submission: it is dropped and
	// logged, never raised to us.
	pool.Drain(false, false, true)
	pool.Submit(func() {})

	fmt.Println("still running")
	// Output: still running
}

// Example_respawn demonstrates bringing a terminated pool back into service
func Example_respawn() {
	pool := threadpool.New(2)

	pool.Drain(false, false, true)
	pool.Respawn()

	pool.Submit(func() {
		fmt.Println("back in service")
	})
	pool.Drain(false, false, true)

	// Output: back in service
}
