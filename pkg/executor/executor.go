// Package executor provides the bridge executor: one long lived run context
// that drives network bound chain operations to completion on behalf of a
// synchronous caller.
//
// Submitted tasks are admitted one at a time, in submission order, by a single
// dispatcher goroutine. Once admitted a task runs on its own goroutine so tasks
// that are suspended on RPC round trips interleave with each other. Run blocks
// the caller until its own task has resolved.
package executor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Layr-Labs/colorchain-go/pkg/config"
	"github.com/Layr-Labs/colorchain-go/pkg/types"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Task is a unit of work run to completion by the executor
type Task func(ctx context.Context) (interface{}, error)

var (
	// ErrReentrantRun is returned when Run is called from inside a running task
	ErrReentrantRun = errors.New("executor: nested Run from inside a running task")

	// ErrExecutorClosed is returned for work submitted after Close
	ErrExecutorClosed = types.Errorf(types.ErrorKindExecutorInit, "", "executor is closed")
)

type runningKey struct{}

type result struct {
	value interface{}
	err   error
}

type job struct {
	name string
	ctx  context.Context
	task Task
	done chan result
}

// Stats are cumulative task counters
type Stats struct {
	Submitted uint64
	Completed uint64
	Failed    uint64
}

type Executor struct {
	logger *zap.Logger
	config *config.ExecutorConfig

	queue   chan *job
	sem     *semaphore.Weighted
	limiter *rate.Limiter

	mu             sync.RWMutex
	closed         bool
	closing        chan struct{}
	closeOnce      sync.Once
	dispatcherDone chan struct{}
	inFlight       sync.WaitGroup

	submitted atomic.Uint64
	completed atomic.Uint64
	failed    atomic.Uint64
}

// New builds an executor and starts its dispatcher. A config that fails
// validation is reported as an ExecutorInitError.
func New(cfg *config.ExecutorConfig, logger *zap.Logger) (*Executor, error) {
	if cfg == nil {
		return nil, types.Errorf(types.ErrorKindExecutorInit, "", "executor config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, types.NewError(types.ErrorKindExecutorInit, "", fmt.Errorf("invalid executor config: %w", err))
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	e := &Executor{
		logger:         logger,
		config:         cfg,
		queue:          make(chan *job, cfg.QueueSize),
		sem:            semaphore.NewWeighted(cfg.MaxInFlight),
		closing:        make(chan struct{}),
		dispatcherDone: make(chan struct{}),
	}
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		e.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	go e.dispatch()

	logger.Sugar().Debugw("Bridge executor started",
		"maxInFlight", cfg.MaxInFlight,
		"queueSize", cfg.QueueSize,
		"requestsPerSecond", cfg.RequestsPerSecond,
	)
	return e, nil
}

var (
	sharedOnce     sync.Once
	sharedExecutor *Executor
	sharedErr      error
)

// Shared returns the process wide executor, building it on first use with the
// default config. A failed build is remembered: every later call fails fast
// with the same ExecutorInitError.
func Shared(logger *zap.Logger) (*Executor, error) {
	sharedOnce.Do(func() {
		sharedExecutor, sharedErr = New(config.DefaultExecutorConfig(), logger)
	})
	if sharedErr != nil {
		return nil, types.NewError(types.ErrorKindExecutorInit, "", sharedErr)
	}
	return sharedExecutor, nil
}

// Run submits task and blocks until it resolves. The task receives ctx; the
// executor itself never cancels a task once it has been admitted.
func (e *Executor) Run(ctx context.Context, name string, task Task) (interface{}, error) {
	if e == nil {
		return nil, types.Errorf(types.ErrorKindExecutorInit, name, "executor is not initialized")
	}
	if task == nil {
		return nil, fmt.Errorf("executor: task %q is nil", name)
	}
	if running, ok := ctx.Value(runningKey{}).(*Executor); ok && running == e {
		return nil, ErrReentrantRun
	}

	j := &job{
		name: name,
		ctx:  ctx,
		task: task,
		done: make(chan result, 1),
	}

	e.mu.RLock()
	if e.closed {
		e.mu.RUnlock()
		return nil, types.NewError(types.ErrorKindExecutorInit, name, ErrExecutorClosed)
	}
	select {
	case e.queue <- j:
		e.submitted.Add(1)
	case <-ctx.Done():
		e.mu.RUnlock()
		return nil, ctx.Err()
	}
	e.mu.RUnlock()

	r := <-j.done
	return r.value, r.err
}

// RunTyped is Run for tasks with a concrete result type
func RunTyped[T any](ctx context.Context, e *Executor, name string, task func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	out, err := e.Run(ctx, name, func(ctx context.Context) (interface{}, error) {
		return task(ctx)
	})
	if err != nil {
		return zero, err
	}
	if out == nil {
		return zero, nil
	}
	value, ok := out.(T)
	if !ok {
		return zero, fmt.Errorf("executor: task %q returned %T", name, out)
	}
	return value, nil
}

func (e *Executor) dispatch() {
	defer close(e.dispatcherDone)
	for {
		select {
		case j := <-e.queue:
			e.admit(j)
		case <-e.closing:
			// Close holds the write lock before closing, so nothing can be
			// enqueued past this point; drain what is already queued.
			for {
				select {
				case j := <-e.queue:
					e.admit(j)
				default:
					return
				}
			}
		}
	}
}

func (e *Executor) admit(j *job) {
	if e.limiter != nil {
		if err := e.limiter.Wait(j.ctx); err != nil {
			e.finish(j, result{err: fmt.Errorf("executor: task %q not admitted: %w", j.name, err)})
			return
		}
	}
	if err := e.sem.Acquire(j.ctx, 1); err != nil {
		e.finish(j, result{err: fmt.Errorf("executor: task %q not admitted: %w", j.name, err)})
		return
	}

	e.inFlight.Add(1)
	go func() {
		defer e.inFlight.Done()
		defer e.sem.Release(1)
		e.finish(j, e.execute(j))
	}()
}

func (e *Executor) execute(j *job) (r result) {
	defer func() {
		if p := recover(); p != nil {
			e.logger.Sugar().Errorw("Task panicked", "task", j.name, "panic", p)
			r = result{err: fmt.Errorf("executor: task %q panicked: %v", j.name, p)}
		}
	}()

	ctx := context.WithValue(j.ctx, runningKey{}, e)
	value, err := j.task(ctx)
	return result{value: value, err: err}
}

func (e *Executor) finish(j *job, r result) {
	if r.err != nil {
		e.failed.Add(1)
		e.logger.Sugar().Debugw("Task failed", "task", j.name, "error", r.err)
	} else {
		e.completed.Add(1)
	}
	j.done <- r
}

// Stats returns the cumulative task counters
func (e *Executor) Stats() Stats {
	return Stats{
		Submitted: e.submitted.Load(),
		Completed: e.completed.Load(),
		Failed:    e.failed.Load(),
	}
}

// Close stops admitting new work, runs what is already queued, and waits for
// every in-flight task to resolve.
func (e *Executor) Close() {
	e.closeOnce.Do(func() {
		e.mu.Lock()
		e.closed = true
		e.mu.Unlock()

		close(e.closing)
		<-e.dispatcherDone
		e.inFlight.Wait()
		e.logger.Sugar().Debugw("Bridge executor closed", "stats", e.Stats())
	})
}
