// Package workerpool bounds the number of concurrent outbound calls the
// enrichment pipeline is allowed to have in flight.
package workerpool

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

var ErrPoolClosed = errors.New("worker pool is closed")

// DefaultWorkers is the default concurrency bound for enrichment calls.
const DefaultWorkers = 6

// TaskResult carries the outcome of a task submitted with SubmitWithResult.
type TaskResult struct {
	Data  interface{}
	Error error
}

// Config holds worker pool settings.
type Config struct {
	Workers int `mapstructure:"workers"`
}

// Statistics tracks submitted/completed/failed task counts.
type Statistics struct {
	Submitted int64
	Completed int64
	Failed    int64
}

// Pool is a fixed-size worker pool backed by ants.
type Pool struct {
	pool   *ants.Pool
	closed atomic.Bool

	submitted atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64

	logger *zap.Logger
}

// New creates a worker pool with cfg.Workers workers.
func New(cfg *Config, logger *zap.Logger) (*Pool, error) {
	workers := DefaultWorkers
	if cfg != nil && cfg.Workers > 0 {
		workers = cfg.Workers
	}

	antsPool, err := ants.NewPool(workers,
		ants.WithPanicHandler(func(err interface{}) {
			logger.Error("worker panic", zap.Any("error", err))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ants pool: %w", err)
	}

	return &Pool{pool: antsPool, logger: logger}, nil
}

// Submit queues a task, blocking while all workers are busy.
func (p *Pool) Submit(task func()) error {
	if p.closed.Load() {
		return ErrPoolClosed
	}

	p.submitted.Add(1)
	return p.pool.Submit(func() {
		defer p.completed.Add(1)
		task()
	})
}

// SubmitWithResult queues a task and returns a channel carrying its result.
func (p *Pool) SubmitWithResult(task func() (interface{}, error)) <-chan TaskResult {
	resultCh := make(chan TaskResult, 1)

	err := p.Submit(func() {
		data, err := task()
		if err != nil {
			p.failed.Add(1)
		}
		resultCh <- TaskResult{Data: data, Error: err}
		close(resultCh)
	})
	if err != nil {
		resultCh <- TaskResult{Error: err}
		close(resultCh)
	}

	return resultCh
}

// Running reports the number of busy workers.
func (p *Pool) Running() int {
	return p.pool.Running()
}

// Stats returns a snapshot of task counters.
func (p *Pool) Stats() Statistics {
	return Statistics{
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
		Failed:    p.failed.Load(),
	}
}

// Shutdown stops accepting tasks and releases the workers.
func (p *Pool) Shutdown() {
	p.closed.Store(true)
	p.pool.Release()
}
