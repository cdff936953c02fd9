// Package poll provides a standalone refresh loop for state that does not
// need full cache semantics: fetch on an interval, bounded retry, and
// cancellation of superseded requests.
package poll

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// FetchFunc loads the polled value.
type FetchFunc func(ctx context.Context) (any, error)

// Options configures one Poller.
type Options struct {
	Interval time.Duration
	// Immediate fetches once on Start before the first tick.
	Immediate  bool
	MaxRetries int
	RetryDelay time.Duration
}

// State is the poller's current view.
type State struct {
	Data        any
	Err         error
	LastUpdated time.Time
	Polling     bool
}

// Poller runs a cancellable fixed-interval fetch loop. At most one request
// is in flight at any time: a newer fetch cancels the previous one so a
// slow stale response cannot overwrite fresher data.
type Poller struct {
	fetch  FetchFunc
	opts   Options
	logger *zap.Logger

	mu          sync.Mutex
	data        any
	err         error
	lastUpdated time.Time
	running     bool
	stop        chan struct{}
	cancel      context.CancelFunc
	generation  uint64
}

// New builds a poller around the given fetch function.
func New(fetch FetchFunc, opts Options, logger *zap.Logger) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{fetch: fetch, opts: opts, logger: logger}
}

// Start launches the polling loop. Calling Start on a running poller is a
// no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	stop := make(chan struct{})
	p.stop = stop
	p.mu.Unlock()

	go p.loop(ctx, stop)
}

// Stop halts the loop and cancels any in-flight request. Safe to call more
// than once.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return
	}
	p.running = false
	close(p.stop)
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// Refetch runs one fetch cycle immediately, outside the interval schedule.
func (p *Poller) Refetch(ctx context.Context) {
	p.runFetch(ctx)
}

// State returns the poller's current view.
func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return State{
		Data:        p.data,
		Err:         p.err,
		LastUpdated: p.lastUpdated,
		Polling:     p.running,
	}
}

func (p *Poller) loop(ctx context.Context, stop chan struct{}) {
	if p.opts.Immediate {
		p.runFetch(ctx)
	}

	ticker := time.NewTicker(p.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			p.Stop()
			return
		case <-ticker.C:
			p.runFetch(ctx)
		}
	}
}

func (p *Poller) runFetch(ctx context.Context) {
	p.mu.Lock()
	if p.cancel != nil {
		// Supersede the in-flight request rather than racing it.
		p.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.generation++
	generation := p.generation
	p.mu.Unlock()

	defer cancel()

	var lastErr error
	for i := 0; i <= p.opts.MaxRetries; i++ {
		if i > 0 {
			select {
			case <-time.After(p.opts.RetryDelay):
			case <-fetchCtx.Done():
				return
			}
		}

		data, err := p.fetch(fetchCtx)
		if err == nil {
			p.mu.Lock()
			if p.generation == generation {
				p.data = data
				p.err = nil
				p.lastUpdated = time.Now()
			}
			p.mu.Unlock()
			return
		}
		if fetchCtx.Err() != nil {
			return
		}
		lastErr = err
		p.logger.Warn("poll fetch failed", zap.Int("attempt", i+1), zap.Error(err))
	}

	p.mu.Lock()
	if p.generation == generation {
		p.err = lastErr
	}
	p.mu.Unlock()
}
