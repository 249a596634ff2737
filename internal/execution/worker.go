package execution

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"shapecheck/internal/config"
	"shapecheck/internal/domain"
)

// WorkerPool manages a pool of workers for test execution.
// With one processor, tests run sequentially in collection order.
type WorkerPool struct {
	config    *config.Config
	runner    *Runner
	scheduler Scheduler
	progress  Progress
	logger    *zap.Logger
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner *Runner, scheduler Scheduler, logger *zap.Logger) *WorkerPool {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkerPool{
		config:    cfg,
		runner:    runner,
		scheduler: scheduler,
		logger:    logger,
	}
}

// SetProgress sets the progress reporter for the worker pool
func (wp *WorkerPool) SetProgress(progress Progress) {
	wp.progress = progress
}

// Execute executes tests using the worker pool (no fail-fast).
func (wp *WorkerPool) Execute(ctx context.Context, tests []domain.Test) ([]domain.TestResult, time.Duration, error) {
	return wp.ExecuteWithOptions(ctx, tests, false)
}

// ExecuteWithOptions executes tests with optional fail-fast (stop scheduling after the
// first failure or error). Results are returned in collection order; tests that never ran
// because of fail-fast or cancellation are omitted. A cancelled context is reported as an
// error alongside the results gathered so far.
func (wp *WorkerPool) ExecuteWithOptions(ctx context.Context, tests []domain.Test, failFast bool) ([]domain.TestResult, time.Duration, error) {
	if len(tests) == 0 {
		return nil, 0, nil
	}

	workerCount := wp.config.Processors
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > len(tests) {
		workerCount = len(tests)
	}
	plan := wp.scheduler.Schedule(len(tests), workerCount)
	wp.logger.Debug("scheduled tests", zap.Int("tests", len(tests)), zap.Int("workers", workerCount), zap.Bool("fail_fast", failFast))

	results := make([]*domain.TestResult, len(tests))
	var stop atomic.Bool
	var mu sync.Mutex
	var done int
	startTime := time.Now()

	var g errgroup.Group
	for i, indexes := range plan {
		workerID := i + 1
		g.Go(func() error {
			for _, idx := range indexes {
				if stop.Load() || ctx.Err() != nil {
					return nil
				}

				result := wp.runner.Run(ctx, tests[idx], workerID)

				mu.Lock()
				results[idx] = &result
				done++
				if wp.progress != nil {
					wp.progress.Update(result, done, len(tests))
				}
				mu.Unlock()

				if failFast && result.Outcome.IsFailure() {
					stop.Store(true)
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	if wp.progress != nil {
		wp.progress.Finish()
	}

	allResults := make([]domain.TestResult, 0, len(tests))
	for _, r := range results {
		if r != nil {
			allResults = append(allResults, *r)
		}
	}
	return allResults, time.Since(startTime), ctx.Err()
}
