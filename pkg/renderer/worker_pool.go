package renderer

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// Idle workers are kept alive between frames
const workerIdleTimeout = time.Minute

// WorkerPool runs batches of jobs on a fixed set of workers that live for the
// whole render. Each batch is a full barrier: RunBatch returns once every job
// in it has finished.
type WorkerPool struct {
	pool   worker.DynamicWorkerPool
	size   int
	closed atomic.Bool
	once   sync.Once
}

// NewWorkerPool creates a pool with numWorkers workers and room to queue
// queueSize jobs without blocking the submitter
func NewWorkerPool(numWorkers, queueSize int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = HostConcurrency()
	}
	if queueSize < numWorkers {
		queueSize = numWorkers
	}

	return &WorkerPool{
		pool: worker.NewDynamicWorkerPool(numWorkers, queueSize, workerIdleTimeout),
		size: numWorkers,
	}
}

// Size returns the number of workers in the pool
func (wp *WorkerPool) Size() int {
	return wp.size
}

// RunBatch submits every job and waits for all of them. It returns the first
// job error, if any. A panicking job is reported as an error.
func (wp *WorkerPool) RunBatch(jobs []func() error) error {
	if wp.closed.Load() {
		return ErrClosed
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	record := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	wg.Add(len(jobs))
	for id, job := range jobs {
		wp.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (result any, err error) {
				defer wg.Done()
				defer func() {
					if p := recover(); p != nil {
						err = fmt.Errorf("renderer: job %d panicked: %v", id, p)
						record(err)
					}
				}()
				if err = job(); err != nil {
					record(err)
				}
				return nil, err
			},
		})
	}
	wg.Wait()

	return firstErr
}

// Close stops the workers. Further batches fail with ErrClosed.
func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		wp.closed.Store(true)
		wp.pool.Stop()
	})
}
