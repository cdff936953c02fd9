package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/HopeyCodeDS/mineralflow/internal/store"
)

// gcSweepInterval is how often idle cache entries are swept.
const gcSweepInterval = 5 * time.Minute

// Scheduler manages the background refresh loops: one cron job per cached
// collection plus a periodic garbage-collection sweep.
type Scheduler struct {
	cron   *cron.Cron
	st     *store.Store
	logger *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(st *store.Store, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:   cron.New(),
		st:     st,
		logger: logger,
	}
}

// Start registers a refresh job for every collection that declares a
// background interval, then starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler")

	for key, interval := range s.st.RefreshIntervals() {
		spec := fmt.Sprintf("@every %s", interval)
		_, err := s.cron.AddFunc(spec, func() { s.refresh(key) })
		if err != nil {
			s.logger.Error("failed to schedule refresh",
				zap.String("collection", string(key)),
				zap.Error(err))
			continue
		}
		s.logger.Info("scheduled background refresh",
			zap.String("collection", string(key)),
			zap.Duration("interval", interval))
	}

	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", gcSweepInterval), s.sweep)
	if err != nil {
		s.logger.Error("failed to schedule cache sweep", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler. Jobs already running are allowed to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) refresh(key store.Collection) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	snap, err := s.st.Refresh(ctx, key)
	if err != nil {
		s.logger.Error("background refresh failed", zap.String("collection", string(key)), zap.Error(err))
		return
	}
	if snap.Err != nil {
		s.logger.Warn("background refresh degraded",
			zap.String("collection", string(key)),
			zap.String("dataSource", string(snap.DataSource)),
			zap.Error(snap.Err))
	}
}

func (s *Scheduler) sweep() {
	if swept := s.st.CollectGarbage(); swept > 0 {
		s.logger.Info("swept idle cache entries", zap.Int("count", swept))
	}
}
