package worker_pool

import (
	"context"
	"runtime"
	"sync"
)

// Task is one unit of work producing a T
type Task[T any] func(ctx context.Context) (T, error)

// Result holds the outcome of the task at the same index
type Result[T any] struct {
	Value T
	Error error
}

// WorkerPool runs tasks concurrently, never more than maxWorkers at once
type WorkerPool struct {
	maxWorkers int
	semaphore  chan struct{}
}

// NewWorkerPool creates a worker pool; maxWorkers <= 0 uses the CPU count
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		maxWorkers: maxWorkers,
		semaphore:  make(chan struct{}, maxWorkers),
	}
}

// GetMaxWorkers returns the maximum number of workers
func (wp *WorkerPool) GetMaxWorkers() int {
	return wp.maxWorkers
}

// Run executes every task and returns the results in task order. onDone,
// when set, is called once per finished task; calls are serialized.
// Tasks still waiting for a worker when ctx is cancelled report ctx.Err().
func Run[T any](ctx context.Context, wp *WorkerPool, tasks []Task[T], onDone func(index int, r Result[T])) []Result[T] {
	results := make([]Result[T], len(tasks))
	if len(tasks) == 0 {
		return results
	}

	var (
		wg     sync.WaitGroup
		doneMu sync.Mutex
	)
	finish := func(index int, r Result[T]) {
		results[index] = r
		if onDone != nil {
			doneMu.Lock()
			onDone(index, r)
			doneMu.Unlock()
		}
	}

	for i, task := range tasks {
		wg.Add(1)
		go func(index int, t Task[T]) {
			defer wg.Done()

			select {
			case wp.semaphore <- struct{}{}:
				defer func() { <-wp.semaphore }()
			case <-ctx.Done():
				finish(index, Result[T]{Error: ctx.Err()})
				return
			}

			value, err := t(ctx)
			finish(index, Result[T]{Value: value, Error: err})
		}(i, task)
	}

	wg.Wait()
	return results
}
