package poll

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefetchUpdatesState(t *testing.T) {
	p := New(func(ctx context.Context) (any, error) {
		return 42, nil
	}, Options{Interval: time.Hour}, nil)

	p.Refetch(context.Background())

	state := p.State()
	assert.Equal(t, 42, state.Data)
	assert.NoError(t, state.Err)
	assert.False(t, state.LastUpdated.IsZero())
	assert.False(t, state.Polling)
}

func TestRefetchRetriesAreBounded(t *testing.T) {
	var calls atomic.Int32
	p := New(func(ctx context.Context) (any, error) {
		calls.Add(1)
		return nil, errors.New("unavailable")
	}, Options{Interval: time.Hour, MaxRetries: 2, RetryDelay: time.Millisecond}, nil)

	p.Refetch(context.Background())

	assert.Equal(t, int32(3), calls.Load())
	assert.Error(t, p.State().Err)
}

func TestFailureKeepsPreviousData(t *testing.T) {
	var calls atomic.Int32
	p := New(func(ctx context.Context) (any, error) {
		if calls.Add(1) == 1 {
			return "good", nil
		}
		return nil, errors.New("backend down")
	}, Options{Interval: time.Hour}, nil)

	p.Refetch(context.Background())
	p.Refetch(context.Background())

	state := p.State()
	assert.Equal(t, "good", state.Data)
	assert.Error(t, state.Err)
}

func TestStartImmediateAndStop(t *testing.T) {
	var calls atomic.Int32
	p := New(func(ctx context.Context) (any, error) {
		calls.Add(1)
		return "tick", nil
	}, Options{Interval: 10 * time.Millisecond, Immediate: true}, nil)

	p.Start(context.Background())
	require.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, time.Millisecond)
	assert.True(t, p.State().Polling)

	p.Stop()
	assert.False(t, p.State().Polling)

	settled := calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, calls.Load(), settled+1)
}

func TestStartTwiceIsNoOp(t *testing.T) {
	p := New(func(ctx context.Context) (any, error) {
		return nil, nil
	}, Options{Interval: time.Hour}, nil)

	p.Start(context.Background())
	p.Start(context.Background())
	p.Stop()
}

func TestStopCancelsInflightFetch(t *testing.T) {
	started := make(chan struct{})
	finished := make(chan error, 1)

	p := New(func(ctx context.Context) (any, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}, Options{Interval: time.Hour, Immediate: true}, nil)

	p.Start(context.Background())
	<-started

	go func() {
		p.Stop()
		finished <- nil
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Stop did not cancel the in-flight fetch")
	}
}
