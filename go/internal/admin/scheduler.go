package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler refreshes every league on a cron schedule
type Scheduler struct {
	runner   *Runner
	spec     string
	discover bool
	cron     *cron.Cron
}

// NewScheduler creates a scheduler for a standard five-field cron spec
func NewScheduler(runner *Runner, spec string, discover bool) *Scheduler {
	return &Scheduler{
		runner:   runner,
		spec:     spec,
		discover: discover,
		cron:     cron.New(),
	}
}

// Start schedules the refresh. Runs stop being started once ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.refresh(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}

	s.cron.Start()
	log.Info().
		Str("schedule", s.spec).
		Bool("discover", s.discover).
		Msg("league refresh scheduled")
	return nil
}

// Stop stops the cron and waits for a running refresh job to return
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

func (s *Scheduler) refresh(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	descs, err := s.runner.Leagues(ctx, s.discover)
	if err != nil {
		log.Error().Err(err).Msg("scheduled refresh: failed to load leagues")
		return
	}

	run, err := s.runner.RunBulk(ctx, descs)
	switch {
	case errors.Is(err, ErrRunInProgress):
		log.Warn().Msg("scheduled refresh skipped: a run is already in progress")
	case err != nil:
		log.Error().Err(err).Msg("scheduled refresh failed")
	default:
		log.Info().
			Str("run_id", run.RunID).
			Int("succeeded", run.LeaguesSucceeded).
			Int("failed", run.LeaguesFailed).
			Msg("scheduled refresh finished")
	}
}
