package executor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tailored-agentic-units/reduks/config"
)

type job struct {
	fn   func()
	done chan error
}

// PoolStats is a point-in-time view of pool activity.
type PoolStats struct {
	Workers  int
	Executed int64
	Panics   int64
}

// Pool is a fixed set of worker goroutines. Execute hands a callback to the
// next free worker and waits for it, so a pool behaves like a dedicated
// thread pool that subscribers can opt into.
type Pool struct {
	name            string
	workers         int
	shutdownTimeout time.Duration

	jobs  chan job
	quit  chan struct{}
	once  sync.Once
	group errgroup.Group

	executed atomic.Int64
	panics   atomic.Int64

	logger *slog.Logger
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

func WithLogger(logger *slog.Logger) PoolOption {
	return func(p *Pool) { p.logger = logger }
}

// NewPool starts cfg.Workers goroutines (at least one).
func NewPool(cfg config.ExecutorConfig, opts ...PoolOption) *Pool {
	merged := config.DefaultExecutorConfig()
	merged.Merge(&cfg)

	p := &Pool{
		name:            merged.Name,
		workers:         merged.Workers,
		shutdownTimeout: merged.ShutdownTimeout.Std(),
		jobs:            make(chan job),
		quit:            make(chan struct{}),
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	for i := 0; i < p.workers; i++ {
		p.group.Go(func() error {
			p.work()
			return nil
		})
	}

	p.logger.Debug(
		"executor pool started",
		slog.String("pool", p.name),
		slog.Int("workers", p.workers),
	)

	return p
}

func (p *Pool) Name() string {
	return p.name
}

func (p *Pool) Stats() PoolStats {
	return PoolStats{
		Workers:  p.workers,
		Executed: p.executed.Load(),
		Panics:   p.panics.Load(),
	}
}

func (p *Pool) Execute(ctx context.Context, fn func()) error {
	j := job{fn: fn, done: make(chan error, 1)}

	select {
	case <-p.quit:
		return ErrPoolClosed
	default:
	}

	select {
	case p.jobs <- j:
	case <-p.quit:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-j.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops accepting callbacks and waits up to timeout for running
// callbacks to finish. A zero timeout uses the configured ShutdownTimeout.
func (p *Pool) Shutdown(timeout time.Duration) error {
	if timeout <= 0 {
		timeout = p.shutdownTimeout
	}

	p.once.Do(func() { close(p.quit) })

	done := make(chan struct{})
	go func() {
		_ = p.group.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Debug("executor pool stopped", slog.String("pool", p.name))
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("executor pool %s shutdown timeout after %v", p.name, timeout)
	}
}

func (p *Pool) work() {
	for {
		select {
		case <-p.quit:
			return
		case j := <-p.jobs:
			err := run(j.fn)
			p.executed.Add(1)
			if err != nil {
				p.panics.Add(1)
			}
			j.done <- err
		}
	}
}
