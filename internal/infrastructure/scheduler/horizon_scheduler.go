package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/liquiplan/backend/internal/infrastructure/config"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ContractSynchronizer resynchronizes all active contracts against a
// reference date. Implemented by the planning contract service.
type ContractSynchronizer interface {
	ResyncAll(ctx context.Context, referenceDate time.Time) error
}

// HorizonScheduler rolls the forecast horizon forward on a cron schedule.
// Each run resynchronizes every active contract so the materialized window
// always extends the configured number of years past the current date.
type HorizonScheduler struct {
	synchronizer ContractSynchronizer
	cfg          config.SchedulerConfig
	logger       *zap.Logger

	cron    *cron.Cron
	entryID cron.EntryID

	mu      sync.Mutex
	running bool
}

// NewHorizonScheduler creates a new horizon-roll scheduler
func NewHorizonScheduler(synchronizer ContractSynchronizer, cfg config.SchedulerConfig, logger *zap.Logger) *HorizonScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HorizonScheduler{
		synchronizer: synchronizer,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the cron entry and begins scheduling. It is a no-op when
// the scheduler is disabled or already running.
func (s *HorizonScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cfg.Enabled {
		s.logger.Info("horizon scheduler disabled, skipping start")
		return nil
	}
	if s.running {
		return nil
	}

	s.cron = cron.New()
	entryID, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runOnce)
	if err != nil {
		return err
	}
	s.entryID = entryID
	s.cron.Start()
	s.running = true

	s.logger.Info("horizon scheduler started",
		zap.String("schedule", s.cfg.CronSchedule),
		zap.Duration("job_timeout", s.cfg.JobTimeout))
	return nil
}

// Stop halts the scheduler and waits for a running job to finish
func (s *HorizonScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	<-s.cron.Stop().Done()
	s.running = false
	s.logger.Info("horizon scheduler stopped")
}

// RunNow triggers one horizon roll immediately, outside the schedule
func (s *HorizonScheduler) RunNow() {
	s.runOnce()
}

func (s *HorizonScheduler) runOnce() {
	ctx := context.Background()
	if s.cfg.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.JobTimeout)
		defer cancel()
	}

	referenceDate := time.Now().UTC()
	started := time.Now()

	if err := s.synchronizer.ResyncAll(ctx, referenceDate); err != nil {
		s.logger.Error("horizon roll failed",
			zap.Time("reference_date", referenceDate),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err))
		return
	}

	s.logger.Info("horizon roll completed",
		zap.Time("reference_date", referenceDate),
		zap.Duration("elapsed", time.Since(started)))
}
