package executor

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Layr-Labs/colorchain-go/pkg/config"
	"github.com/Layr-Labs/colorchain-go/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newTestExecutor(t *testing.T, cfg *config.ExecutorConfig) *Executor {
	t.Helper()
	logger, err := zap.NewDevelopment()
	require.NoError(t, err)
	if cfg == nil {
		cfg = config.DefaultExecutorConfig()
	}
	e, err := New(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.ExecutorConfig
	}{
		{name: "nil config", cfg: nil},
		{name: "zero in flight", cfg: &config.ExecutorConfig{MaxInFlight: 0, QueueSize: 1}},
		{name: "negative rate", cfg: &config.ExecutorConfig{MaxInFlight: 1, RequestsPerSecond: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(tt.cfg, zap.NewNop())
			assert.Nil(t, e)
			require.ErrorIs(t, err, types.ErrExecutorInit)
		})
	}
}

func TestRun_ReturnsResult(t *testing.T) {
	e := newTestExecutor(t, nil)

	out, err := e.Run(context.Background(), "answer", func(ctx context.Context) (interface{}, error) {
		return 42, nil
	})
	require.NoError(t, err)
	require.Equal(t, 42, out)

	s, err := RunTyped(context.Background(), e, "typed", func(ctx context.Context) (string, error) {
		return "hello", nil
	})
	require.NoError(t, err)
	require.Equal(t, "hello", s)

	stats := e.Stats()
	assert.Equal(t, uint64(2), stats.Submitted)
	assert.Equal(t, uint64(2), stats.Completed)
	assert.Equal(t, uint64(0), stats.Failed)
}

func TestRun_PropagatesFailure(t *testing.T) {
	e := newTestExecutor(t, nil)
	cause := types.Errorf(types.ErrorKindRpc, "get_balance", "connection refused")

	_, err := RunTyped(context.Background(), e, "failing", func(ctx context.Context) (string, error) {
		return "", cause
	})
	require.ErrorIs(t, err, types.ErrRpc)
	require.Equal(t, uint64(1), e.Stats().Failed)
}

func TestRun_RecoversPanic(t *testing.T) {
	e := newTestExecutor(t, nil)

	_, err := e.Run(context.Background(), "boom", func(ctx context.Context) (interface{}, error) {
		panic("kaboom")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")

	// the executor keeps working afterwards
	out, err := e.Run(context.Background(), "after", func(ctx context.Context) (interface{}, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	require.Equal(t, "ok", out)
}

func TestRun_NilResult(t *testing.T) {
	e := newTestExecutor(t, nil)

	out, err := RunTyped(context.Background(), e, "nil", func(ctx context.Context) (*types.TransactionReceipt, error) {
		return nil, nil
	})
	require.NoError(t, err)
	require.Nil(t, out)
}

func TestRun_Reentrant(t *testing.T) {
	e := newTestExecutor(t, nil)

	_, err := e.Run(context.Background(), "outer", func(ctx context.Context) (interface{}, error) {
		return e.Run(ctx, "inner", func(ctx context.Context) (interface{}, error) {
			return nil, nil
		})
	})
	require.ErrorIs(t, err, ErrReentrantRun)
}

func TestRun_InterleavesSuspendedTasks(t *testing.T) {
	const parallel = 4
	e := newTestExecutor(t, &config.ExecutorConfig{MaxInFlight: parallel, QueueSize: parallel})

	// every task waits until all of them are running, which only completes
	// if the executor lets suspended tasks overlap
	var started atomic.Int32
	allStarted := make(chan struct{})

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < parallel; i++ {
		i := i
		g.Go(func() error {
			out, err := RunTyped(ctx, e, fmt.Sprintf("task-%d", i), func(ctx context.Context) (int, error) {
				if started.Add(1) == parallel {
					close(allStarted)
				}
				select {
				case <-allStarted:
					return i, nil
				case <-time.After(5 * time.Second):
					return 0, errors.New("tasks did not interleave")
				}
			})
			if err != nil {
				return err
			}
			if out != i {
				return fmt.Errorf("task %d received result %d", i, out)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestRun_ConcurrentCallersIsolated(t *testing.T) {
	e := newTestExecutor(t, nil)

	const callers = 32
	results := make([]string, callers)
	g := new(errgroup.Group)
	for i := 0; i < callers; i++ {
		i := i
		g.Go(func() error {
			out, err := RunTyped(context.Background(), e, "isolated", func(ctx context.Context) (string, error) {
				time.Sleep(time.Duration(i%5) * time.Millisecond)
				return fmt.Sprintf("result-%d", i), nil
			})
			results[i] = out
			return err
		})
	}
	require.NoError(t, g.Wait())

	for i, r := range results {
		require.Equal(t, fmt.Sprintf("result-%d", i), r)
	}
}

func TestRun_MaxInFlightBound(t *testing.T) {
	e := newTestExecutor(t, &config.ExecutorConfig{MaxInFlight: 1, QueueSize: 8})

	var current, peak atomic.Int32
	g := new(errgroup.Group)
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			_, err := e.Run(context.Background(), "serial", func(ctx context.Context) (interface{}, error) {
				n := current.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(2 * time.Millisecond)
				current.Add(-1)
				return nil, nil
			})
			return err
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, int32(1), peak.Load())
}

func TestRun_RateLimited(t *testing.T) {
	e := newTestExecutor(t, &config.ExecutorConfig{MaxInFlight: 2, QueueSize: 2, RequestsPerSecond: 1000})

	for i := 0; i < 5; i++ {
		_, err := e.Run(context.Background(), "limited", func(ctx context.Context) (interface{}, error) {
			return nil, nil
		})
		require.NoError(t, err)
	}
	require.Equal(t, uint64(5), e.Stats().Completed)
}

func TestClose(t *testing.T) {
	e, err := New(config.DefaultExecutorConfig(), zap.NewNop())
	require.NoError(t, err)

	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := e.Run(context.Background(), "slow", func(ctx context.Context) (interface{}, error) {
			<-release
			return nil, nil
		})
		done <- err
	}()

	require.Eventually(t, func() bool { return e.Stats().Submitted == 1 }, time.Second, time.Millisecond)

	closed := make(chan struct{})
	go func() {
		e.Close()
		close(closed)
	}()

	close(release)
	require.NoError(t, <-done)
	<-closed

	_, err = e.Run(context.Background(), "late", func(ctx context.Context) (interface{}, error) {
		return nil, nil
	})
	require.ErrorIs(t, err, types.ErrExecutorInit)

	// closing twice is a no-op
	e.Close()
}

func TestRun_NilExecutor(t *testing.T) {
	var e *Executor
	_, err := e.Run(context.Background(), "nil", func(ctx context.Context) (interface{}, error) {
		return nil, nil
	})
	require.ErrorIs(t, err, types.ErrExecutorInit)
}

func TestShared(t *testing.T) {
	first, err := Shared(zap.NewNop())
	require.NoError(t, err)
	second, err := Shared(zap.NewNop())
	require.NoError(t, err)
	require.Same(t, first, second)

	out, err := first.Run(context.Background(), "shared", func(ctx context.Context) (interface{}, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	require.Equal(t, "ok", out)
}
