package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueProcessesJobs(t *testing.T) {
	var processed int32
	q := NewQueue("test", func(_ context.Context, job Job) error {
		atomic.AddInt32(&processed, 1)
		return nil
	}, QueueConfig{Workers: 2})

	assert.False(t, q.Running())
	q.Start(context.Background())
	t.Cleanup(q.Stop)
	assert.True(t, q.Running())

	for i := 0; i < 5; i++ {
		require.NoError(t, q.Enqueue(Job{Type: "noop"}))
	}
	require.Eventually(t, func() bool { return atomic.LoadInt32(&processed) == 5 }, time.Second, 5*time.Millisecond)
}

func TestQueueRetriesFailedJobs(t *testing.T) {
	var attempts int32
	q := NewQueue("retry", func(_ context.Context, job Job) error {
		if atomic.AddInt32(&attempts, 1) < 3 {
			return errors.New("transient")
		}
		return nil
	}, QueueConfig{MaxRetries: 3, RetryDelay: 5 * time.Millisecond})
	q.Start(context.Background())
	t.Cleanup(q.Stop)

	require.NoError(t, q.Enqueue(Job{Type: "flaky"}))
	require.Eventually(t, func() bool { return atomic.LoadInt32(&attempts) == 3 }, time.Second, 5*time.Millisecond)
}

func TestEnqueueRequiresRunningQueue(t *testing.T) {
	q := NewQueue("idle", func(context.Context, Job) error { return nil }, QueueConfig{})
	assert.ErrorIs(t, q.Enqueue(Job{}), ErrNotRunning)

	var nilQueue *Queue
	assert.False(t, nilQueue.Running())
	assert.ErrorIs(t, nilQueue.Enqueue(Job{}), ErrNotRunning)

	q.Start(context.Background())
	q.Stop()
	assert.ErrorIs(t, q.Enqueue(Job{}), ErrNotRunning)
}

func TestStopRunsBufferedJobs(t *testing.T) {
	var processed int32
	started := make(chan struct{})
	q := NewQueue("drain", func(ctx context.Context, job Job) error {
		if job.Type == "slow" {
			close(started)
			<-ctx.Done()
		}
		atomic.AddInt32(&processed, 1)
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 8})
	q.Start(context.Background())

	require.NoError(t, q.Enqueue(Job{Type: "slow"}))
	<-started
	for i := 0; i < 3; i++ {
		require.NoError(t, q.Enqueue(Job{Type: "invalidate"}))
	}

	q.Stop()
	assert.Equal(t, int32(4), atomic.LoadInt32(&processed))
	assert.False(t, q.Running())
}
