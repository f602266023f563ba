package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueRunsEnqueuedJobs(t *testing.T) {
	q := New(8)
	var runs atomic.Int32
	q.Start(context.Background())
	for i := 0; i < 5; i++ {
		require.True(t, q.Enqueue("count", func(context.Context) error {
			runs.Add(1)
			return nil
		}))
	}
	q.Stop()
	assert.Equal(t, int32(5), runs.Load())
}

func TestQueueDropsWhenFull(t *testing.T) {
	q := New(1)
	require.True(t, q.Enqueue("first", func(context.Context) error { return nil }))
	assert.False(t, q.Enqueue("second", func(context.Context) error { return nil }))
}

func TestQueueRecoversPanicsAndReportsErrors(t *testing.T) {
	q := New(4)
	var failures atomic.Int32
	q.OnRun(func(_ string, err error) {
		if err != nil {
			failures.Add(1)
		}
	})
	q.Start(context.Background())
	q.Enqueue("panic", func(context.Context) error { panic("boom") })
	q.Enqueue("fail", func(context.Context) error { return errors.New("nope") })
	q.Stop()
	assert.Equal(t, int32(2), failures.Load())
}

func TestQueueRefusesWorkAfterStop(t *testing.T) {
	q := New(4)
	var runs atomic.Int32
	q.Start(context.Background())
	q.Stop()

	accepted := q.Enqueue("late", func(context.Context) error {
		runs.Add(1)
		return nil
	})
	assert.False(t, accepted)
	assert.Equal(t, int32(0), runs.Load())
}
