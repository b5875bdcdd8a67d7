// pkg/pool/pool.go

// Package pool runs independent jobs, such as simulated matches, on a
// bounded set of tracked goroutines with graceful shutdown.
package pool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/opd-ai/go-broadside/pkg/logging"
)

// ErrClosed is returned by Submit after Shutdown.
var ErrClosed = errors.New("pool closed")

// DefaultShutdownTimeout bounds how long Shutdown waits for running jobs.
const DefaultShutdownTimeout = 30 * time.Second

// Job is one unit of work. ctx is cancelled when the pool's parent
// context is.
type Job func(ctx context.Context)

type namedJob struct {
	name string
	fn   Job
}

// Options configures a Pool.
type Options struct {
	Workers         int
	ShutdownTimeout time.Duration
	Logger          *logging.Logger
}

// Pool feeds submitted jobs to a fixed number of workers.
type Pool struct {
	workers         int
	shutdownTimeout time.Duration
	logger          *logging.Logger

	ctx    context.Context
	cancel context.CancelFunc
	jobs   chan namedJob
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool

	// Atomic counters for thread-safe access
	active    int64
	completed int64
	panicked  int64
}

// New starts a pool. Workers below 1 are raised to 1.
func New(ctx context.Context, opts Options) *Pool {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = DefaultShutdownTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewLogger()
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &Pool{
		workers:         opts.Workers,
		shutdownTimeout: opts.ShutdownTimeout,
		logger:          opts.Logger,
		ctx:             ctx,
		cancel:          cancel,
		jobs:            make(chan namedJob),
	}

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go p.work()
	}

	p.logger.Debug(ctx, "Pool started", "workers", p.workers)
	return p
}

// Submit hands fn to the next free worker, blocking until one accepts it.
// It fails once the pool is shut down or its context is done.
func (p *Pool) Submit(name string, fn Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrClosed
	}
	select {
	case p.jobs <- namedJob{name: name, fn: fn}:
		return nil
	case <-p.ctx.Done():
		return p.ctx.Err()
	}
}

func (p *Pool) work() {
	defer p.wg.Done()
	for j := range p.jobs {
		p.run(j)
	}
}

// run executes one job, recovering from panics so a bad job cannot take
// the worker down.
func (p *Pool) run(j namedJob) {
	atomic.AddInt64(&p.active, 1)
	defer atomic.AddInt64(&p.active, -1)

	defer func() {
		if r := recover(); r != nil {
			atomic.AddInt64(&p.panicked, 1)
			p.logger.Error(p.ctx, "Job panic", fmt.Errorf("panic: %v", r), "name", j.name)
			return
		}
		atomic.AddInt64(&p.completed, 1)
	}()

	j.fn(p.ctx)
}

// Stats is a snapshot of the pool's counters.
type Stats struct {
	Workers   int   `json:"workers"`
	Active    int64 `json:"active"`
	Completed int64 `json:"completed"`
	Panicked  int64 `json:"panicked"`
}

// Stats returns current counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Workers:   p.workers,
		Active:    atomic.LoadInt64(&p.active),
		Completed: atomic.LoadInt64(&p.completed),
		Panicked:  atomic.LoadInt64(&p.panicked),
	}
}

// Shutdown stops accepting jobs and waits for running ones to finish,
// up to the shutdown timeout or until ctx is done.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	shutdownCtx, cancel := context.WithTimeout(ctx, p.shutdownTimeout)
	defer cancel()

	select {
	case <-done:
		p.cancel()
		p.logger.Debug(ctx, "Pool stopped", "completed", p.Stats().Completed)
		return nil
	case <-shutdownCtx.Done():
		p.cancel()
		active := atomic.LoadInt64(&p.active)
		p.logger.Warn(ctx, "Shutdown timeout exceeded with jobs still running", "remaining", active)
		return fmt.Errorf("shutdown timeout: %d jobs still running", active)
	}
}
