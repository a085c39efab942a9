package utils

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPoolRunsAllJobs(t *testing.T) {
	pool := NewWorkerPool(context.Background(), 4)
	assert.Equal(t, 4, pool.Workers())

	var count atomic.Int64
	for i := 0; i < 100; i++ {
		require.True(t, pool.Submit(func(context.Context) error {
			count.Add(1)
			return nil
		}))
	}

	require.NoError(t, pool.Stop())
	assert.Equal(t, int64(100), count.Load())
}

func TestWorkerPoolDefaultWorkers(t *testing.T) {
	pool := NewWorkerPool(context.Background(), 0)
	assert.Positive(t, pool.Workers())
	assert.NoError(t, pool.Stop())
}

func TestWorkerPoolCollectsErrors(t *testing.T) {
	pool := NewWorkerPool(context.Background(), 2)
	errA := errors.New("a")
	errB := errors.New("b")

	pool.Submit(func(context.Context) error { return errA })
	pool.Submit(func(context.Context) error { return nil })
	pool.Submit(func(context.Context) error { return errB })

	err := pool.Stop()
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

func TestWorkerPoolSubmitAfterStop(t *testing.T) {
	pool := NewWorkerPool(context.Background(), 1)
	require.NoError(t, pool.Stop())

	assert.False(t, pool.Submit(func(context.Context) error { return nil }))
	// 重复停止是安全的
	assert.NoError(t, pool.Stop())
}

func TestWorkerPoolCancel(t *testing.T) {
	pool := NewWorkerPool(context.Background(), 1)

	started := make(chan struct{})
	var sawCancel atomic.Bool
	pool.Submit(func(ctx context.Context) error {
		close(started)
		select {
		case <-ctx.Done():
			sawCancel.Store(true)
			return ctx.Err()
		case <-time.After(5 * time.Second):
			return nil
		}
	})

	<-started
	pool.Cancel()
	assert.False(t, pool.Submit(func(context.Context) error { return nil }))

	err := pool.Stop()
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, sawCancel.Load())
}
