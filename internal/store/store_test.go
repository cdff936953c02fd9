package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy() Policy {
	return Policy{
		StaleAfter: time.Minute,
		RetryDelay: time.Millisecond,
	}
}

func TestGetUnknownCollection(t *testing.T) {
	s := New(nil)
	_, err := s.Get(context.Background(), "nope")
	require.Error(t, err)
}

func TestGetFetchesOnceWhileFresh(t *testing.T) {
	var calls atomic.Int32
	s := New(nil)
	s.Register(Trucks, testPolicy(), func(ctx context.Context) (any, error) {
		calls.Add(1)
		return []int{1, 2, 3}, nil
	}, nil)

	for i := 0; i < 3; i++ {
		snap, err := s.Get(context.Background(), Trucks)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, snap.Data)
		assert.Equal(t, SourceLive, snap.DataSource)
		assert.False(t, snap.Stale)
		assert.NoError(t, snap.Err)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestFirstFailureServesFallback(t *testing.T) {
	s := New(nil)
	s.Register(Warehouses, testPolicy(), func(ctx context.Context) (any, error) {
		return nil, errors.New("connection refused")
	}, func() any { return []string{"synthetic"} })

	snap, err := s.Get(context.Background(), Warehouses)
	require.NoError(t, err)
	assert.Equal(t, []string{"synthetic"}, snap.Data)
	assert.Equal(t, SourceMock, snap.DataSource)
	assert.Error(t, snap.Err)
}

func TestFailureKeepsLastKnownGood(t *testing.T) {
	var calls atomic.Int32
	s := New(nil)
	s.Register(Trucks, testPolicy(), func(ctx context.Context) (any, error) {
		if calls.Add(1) == 1 {
			return "good", nil
		}
		return nil, errors.New("backend down")
	}, func() any { return "synthetic" })

	snap, err := s.Get(context.Background(), Trucks)
	require.NoError(t, err)
	require.Equal(t, "good", snap.Data)

	snap, err = s.Refresh(context.Background(), Trucks)
	require.NoError(t, err)
	// The stale good value survives; the fallback is never substituted over
	// real data.
	assert.Equal(t, "good", snap.Data)
	assert.Equal(t, SourceLive, snap.DataSource)
	assert.Error(t, snap.Err)
}

func TestConcurrentStaleReadsShareOneFetch(t *testing.T) {
	var calls atomic.Int32
	s := New(nil)
	s.Register(Appointments, testPolicy(), func(ctx context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(50 * time.Millisecond)
		return "value", nil
	}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap, err := s.Get(context.Background(), Appointments)
			assert.NoError(t, err)
			assert.Equal(t, "value", snap.Data)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestRetriesAreBounded(t *testing.T) {
	var calls atomic.Int32
	policy := testPolicy()
	policy.MaxRetries = 2

	s := New(nil)
	s.Register(PurchaseOrders, policy, func(ctx context.Context) (any, error) {
		calls.Add(1)
		return nil, errors.New("still down")
	}, nil)

	snap, err := s.Get(context.Background(), PurchaseOrders)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Error(t, snap.Err)
	assert.Equal(t, SourceNone, snap.DataSource)
}

func TestInvalidateCascadesToDependents(t *testing.T) {
	var truckCalls, dashCalls atomic.Int32
	s := New(nil)
	s.Register(Trucks, testPolicy(), func(ctx context.Context) (any, error) {
		truckCalls.Add(1)
		return "trucks", nil
	}, nil, Dashboard)
	s.Register(Dashboard, testPolicy(), func(ctx context.Context) (any, error) {
		dashCalls.Add(1)
		return "dashboard", nil
	}, nil)

	_, err := s.Get(context.Background(), Trucks)
	require.NoError(t, err)
	_, err = s.Get(context.Background(), Dashboard)
	require.NoError(t, err)
	require.Equal(t, int32(1), dashCalls.Load())

	s.Invalidate(Trucks)

	_, err = s.Get(context.Background(), Dashboard)
	require.NoError(t, err)
	assert.Equal(t, int32(2), dashCalls.Load())

	_, err = s.Get(context.Background(), Trucks)
	require.NoError(t, err)
	assert.Equal(t, int32(2), truckCalls.Load())
}

func TestRefreshBypassesFreshness(t *testing.T) {
	var calls atomic.Int32
	s := New(nil)
	s.Register(ShippingOrders, testPolicy(), func(ctx context.Context) (any, error) {
		calls.Add(1)
		return "orders", nil
	}, nil)

	_, err := s.Get(context.Background(), ShippingOrders)
	require.NoError(t, err)
	_, err = s.Refresh(context.Background(), ShippingOrders)
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
}

func TestCollectGarbageSweepsIdleEntries(t *testing.T) {
	policy := testPolicy()
	policy.GCAfter = 10 * time.Millisecond

	s := New(nil)
	s.Register(Warehouses, policy, func(ctx context.Context) (any, error) {
		return "warehouses", nil
	}, nil)

	_, err := s.Get(context.Background(), Warehouses)
	require.NoError(t, err)

	time.Sleep(25 * time.Millisecond)
	assert.Equal(t, 1, s.CollectGarbage())

	// A later read refetches transparently.
	snap, err := s.Get(context.Background(), Warehouses)
	require.NoError(t, err)
	assert.Equal(t, "warehouses", snap.Data)
	assert.Equal(t, SourceLive, snap.DataSource)
}

func TestRefreshIntervals(t *testing.T) {
	policy := testPolicy()
	policy.RefreshInterval = 30 * time.Second

	s := New(nil)
	s.Register(Trucks, policy, func(ctx context.Context) (any, error) { return nil, nil }, nil)
	s.Register(Dashboard, testPolicy(), func(ctx context.Context) (any, error) { return nil, nil }, nil)

	intervals := s.RefreshIntervals()
	assert.Equal(t, map[Collection]time.Duration{Trucks: 30 * time.Second}, intervals)
}
