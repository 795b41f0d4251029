package crontab

import (
	"context"
	"time"

	"github.com/mileusna/crontab"
	"github.com/rs/zerolog"

	"aramesh-server/services/therapy-api/internal/config"
	"aramesh-server/services/therapy-api/internal/domain/tokenusage"
)

// Scheduler runs the periodic background jobs of the service. Today that is
// the daily token usage rollup.
type Scheduler struct {
	tab    *crontab.Crontab
	usage  *tokenusage.Service
	cfg    *config.Config
	logger zerolog.Logger
}

func NewScheduler(cfg *config.Config, usage *tokenusage.Service, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		tab:    crontab.New(),
		usage:  usage,
		cfg:    cfg,
		logger: logger,
	}
}

// Start registers the jobs and kicks off a catch-up rollup for yesterday so
// a restart never leaves a day unaggregated.
func (s *Scheduler) Start() error {
	if !s.cfg.UsageRollupEnabled {
		s.logger.Info().Msg("usage rollup disabled")
		return nil
	}

	if err := s.tab.AddJob(s.cfg.UsageRollupCron, s.rollupYesterday); err != nil {
		return err
	}

	go s.rollupYesterday()
	s.logger.Info().Str("schedule", s.cfg.UsageRollupCron).Msg("usage rollup scheduled")
	return nil
}

// Stop clears all scheduled jobs.
func (s *Scheduler) Stop() {
	s.tab.Clear()
}

func (s *Scheduler) rollupYesterday() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	day := time.Now().AddDate(0, 0, -1)
	if err := s.usage.RollupDay(ctx, day); err != nil {
		s.logger.Error().Err(err).Time("day", day).Msg("usage rollup failed")
		return
	}
	s.logger.Info().Str("day", day.Format("2006-01-02")).Msg("usage rollup completed")
}
