// Package tasks runs fire-and-continue work on a bounded worker pool.
package tasks

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	ErrQueueFull   = errors.New("tasks: queue full")
	ErrQueueClosed = errors.New("tasks: queue closed")
)

type Task func(ctx context.Context)

type job struct {
	name string
	fn   Task
}

type Config struct {
	Workers int
	Size    int
	// Timeout bounds a single task. Zero means no limit.
	Timeout time.Duration
}

type Queue struct {
	logger  *zap.Logger
	cfg     Config
	work    chan job
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
	started bool
}

func New(logger *zap.Logger, cfg Config) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Size <= 0 {
		cfg.Size = 1
	}
	return &Queue{
		logger: logger.Named("tasks"),
		cfg:    cfg,
		work:   make(chan job, cfg.Size),
	}
}

// Start launches the workers. Tasks run with ctx as their parent.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started || q.closed {
		return
	}
	q.started = true
	for range q.cfg.Workers {
		q.wg.Add(1)
		go q.worker(ctx)
	}
	q.logger.Info("Task queue started",
		zap.Int("workers", q.cfg.Workers),
		zap.Int("size", q.cfg.Size))
}

// Submit enqueues fn without blocking.
func (q *Queue) Submit(name string, fn Task) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.work <- job{name: name, fn: fn}:
		return nil
	default:
		q.logger.Warn("Task queue full, dropping task", zap.String("task", name))
		return ErrQueueFull
	}
}

// Shutdown stops intake and waits for queued tasks to finish or ctx to end.
func (q *Queue) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.work)
	}
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) worker(ctx context.Context) {
	defer q.wg.Done()
	for j := range q.work {
		q.run(ctx, j)
	}
}

func (q *Queue) run(parent context.Context, j job) {
	// Tasks still run during shutdown drain.
	ctx := context.WithoutCancel(parent)
	if q.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.cfg.Timeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("Task panicked", zap.String("task", j.name), zap.Any("panic", r))
		}
	}()

	start := time.Now()
	j.fn(ctx)
	q.logger.Debug("Task finished", zap.String("task", j.name), zap.Duration("took", time.Since(start)))
}
