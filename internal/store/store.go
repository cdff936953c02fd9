// Package store holds the per-collection cache and refresh engine. One
// Store owns all cached operational state; every other component reads
// snapshots and never mutates them. All mutation happens under a single
// store-wide mutex, preserving the single-writer model.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Collection names one cached dataset.
type Collection string

const (
	Trucks         Collection = "trucks"
	Appointments   Collection = "appointments"
	Warehouses     Collection = "warehouses"
	PurchaseOrders Collection = "purchase-orders"
	ShippingOrders Collection = "shipping-orders"
	Dashboard      Collection = "dashboard"
)

// DataSource tells a consumer where a snapshot's data came from.
type DataSource string

const (
	// SourceLive means the data came from a successful backend fetch.
	SourceLive DataSource = "live"
	// SourceMock means the synthetic fallback dataset was substituted.
	SourceMock DataSource = "mock"
	// SourceNone means no data is available at all.
	SourceNone DataSource = "none"
)

// Policy is the per-collection refresh behavior, fixed at registration.
type Policy struct {
	// StaleAfter is the minimum age before a read triggers a refetch.
	StaleAfter time.Duration
	// GCAfter discards an unused cached value after this much idle time.
	GCAfter time.Duration
	// RefreshInterval drives the background refresh schedule.
	RefreshInterval time.Duration
	// MaxRetries is the number of additional attempts after a failed
	// fetch. Retries use a fixed RetryDelay and always terminate.
	MaxRetries int
	RetryDelay time.Duration
}

// Fetcher loads one collection from its backend and normalizes it.
type Fetcher func(ctx context.Context) (any, error)

// Snapshot is what a read returns: the current value plus enough metadata
// for the consumer to judge it.
type Snapshot struct {
	Data       any
	Err        error
	DataSource DataSource
	FetchedAt  time.Time
	Stale      bool
	Loading    bool
}

type entry struct {
	key        Collection
	policy     Policy
	fetch      Fetcher
	fallback   func() any
	dependents []Collection

	value     any
	source    DataSource
	fetchedAt time.Time
	lastErr   error
	lastUsed  time.Time

	// inflight is non-nil while a fetch is running and is closed on
	// completion; concurrent readers of a stale entry wait on it instead
	// of issuing their own fetch.
	inflight chan struct{}
	// generation tags each fetch; an invalidation bumps it so a slow
	// stale response cannot clobber fresher data (last-fetch-wins).
	generation uint64
}

func (e *entry) hasValue() bool { return e.value != nil }

func (e *entry) snapshot() Snapshot {
	return Snapshot{
		Data:       e.value,
		Err:        e.lastErr,
		DataSource: e.source,
		FetchedAt:  e.fetchedAt,
		Stale:      !e.hasValue() || time.Since(e.fetchedAt) >= e.policy.StaleAfter,
		Loading:    e.inflight != nil,
	}
}

// Store is the injectable cache arena. Tests instantiate isolated stores;
// nothing in this package is a package-level singleton.
type Store struct {
	mu      sync.Mutex
	entries map[Collection]*entry
	logger  *zap.Logger
}

// New creates an empty store.
func New(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		entries: make(map[Collection]*entry),
		logger:  logger,
	}
}

// Register adds a collection with its refresh policy. fallback may be nil
// for collections with no synthetic substitute; dependents are invalidated
// whenever this collection is.
func (s *Store) Register(key Collection, policy Policy, fetch Fetcher, fallback func() any, dependents ...Collection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = &entry{
		key:        key,
		policy:     policy,
		fetch:      fetch,
		fallback:   fallback,
		dependents: dependents,
		source:     SourceNone,
		lastUsed:   time.Now(),
	}
}

// Get returns the collection's current snapshot, fetching first if the
// cached value is missing or stale. Concurrent reads of a stale collection
// share a single in-flight fetch.
func (s *Store) Get(ctx context.Context, key Collection) (Snapshot, error) {
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		s.mu.Unlock()
		return Snapshot{}, fmt.Errorf("unknown collection %q", key)
	}
	e.lastUsed = time.Now()

	if e.hasValue() && time.Since(e.fetchedAt) < e.policy.StaleAfter {
		snap := e.snapshot()
		s.mu.Unlock()
		return snap, nil
	}

	return s.fetchLocked(ctx, e)
}

// Refresh forces a fetch regardless of freshness. Used by the background
// scheduler and the manual refetch endpoint.
func (s *Store) Refresh(ctx context.Context, key Collection) (Snapshot, error) {
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		s.mu.Unlock()
		return Snapshot{}, fmt.Errorf("unknown collection %q", key)
	}
	e.lastUsed = time.Now()
	return s.fetchLocked(ctx, e)
}

// fetchLocked is entered holding the store mutex and releases it before any
// blocking work.
func (s *Store) fetchLocked(ctx context.Context, e *entry) (Snapshot, error) {
	if e.inflight != nil {
		done := e.inflight
		s.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
			return Snapshot{}, ctx.Err()
		}
		s.mu.Lock()
		snap := e.snapshot()
		s.mu.Unlock()
		return snap, nil
	}

	done := make(chan struct{})
	e.inflight = done
	e.generation++
	generation := e.generation
	fetch := e.fetch
	policy := e.policy
	key := e.key
	s.mu.Unlock()

	value, err := s.attempt(ctx, key, fetch, policy)

	s.mu.Lock()
	if e.generation == generation {
		s.applyLocked(e, value, err)
	} else {
		s.logger.Debug("discarding superseded fetch result", zap.String("collection", string(key)))
	}
	e.inflight = nil
	close(done)
	snap := e.snapshot()
	s.mu.Unlock()
	return snap, nil
}

// attempt runs the fetch with the policy's bounded fixed-delay retries.
func (s *Store) attempt(ctx context.Context, key Collection, fetch Fetcher, policy Policy) (any, error) {
	var lastErr error
	for i := 0; i <= policy.MaxRetries; i++ {
		if i > 0 {
			select {
			case <-time.After(policy.RetryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		value, err := fetch(ctx)
		if err == nil {
			return value, nil
		}
		lastErr = err
		s.logger.Warn("collection fetch failed",
			zap.String("collection", string(key)),
			zap.Int("attempt", i+1),
			zap.Error(err))
	}
	return nil, lastErr
}

// applyLocked records a fetch outcome. A failure never evicts a previously
// good value; the synthetic fallback is substituted only when there is
// nothing at all to serve.
func (s *Store) applyLocked(e *entry, value any, err error) {
	if err == nil {
		e.value = value
		e.source = SourceLive
		e.lastErr = nil
		e.fetchedAt = time.Now()
		return
	}

	e.lastErr = err
	if e.hasValue() {
		return
	}
	if e.fallback != nil {
		e.value = e.fallback()
		e.source = SourceMock
		e.fetchedAt = time.Now()
		s.logger.Info("serving synthetic fallback", zap.String("collection", string(e.key)), zap.Error(err))
		return
	}
	e.source = SourceNone
}

// Invalidate marks the named collections stale, cascading through their
// dependents. Cached values stay available for immediate display; in-flight
// fetches for the old generation are ignored when they land.
func (s *Store) Invalidate(keys ...Collection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	visited := make(map[Collection]bool)
	var mark func(Collection)
	mark = func(key Collection) {
		if visited[key] {
			return
		}
		visited[key] = true
		e, ok := s.entries[key]
		if !ok {
			return
		}
		e.fetchedAt = time.Time{}
		e.generation++
		for _, dep := range e.dependents {
			mark(dep)
		}
	}
	for _, key := range keys {
		mark(key)
	}
}

// CollectGarbage discards cached values unused for longer than their
// GCAfter threshold and returns how many entries were swept.
func (s *Store) CollectGarbage() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	swept := 0
	for _, e := range s.entries {
		if !e.hasValue() || e.policy.GCAfter <= 0 || e.inflight != nil {
			continue
		}
		if time.Since(e.lastUsed) > e.policy.GCAfter {
			e.value = nil
			e.source = SourceNone
			e.lastErr = nil
			e.fetchedAt = time.Time{}
			swept++
			s.logger.Debug("garbage collected cache entry", zap.String("collection", string(e.key)))
		}
	}
	return swept
}

// RefreshIntervals lists every registered collection with a background
// refresh interval, for the scheduler to wire up.
func (s *Store) RefreshIntervals() map[Collection]time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	intervals := make(map[Collection]time.Duration)
	for key, e := range s.entries {
		if e.policy.RefreshInterval > 0 {
			intervals[key] = e.policy.RefreshInterval
		}
	}
	return intervals
}
