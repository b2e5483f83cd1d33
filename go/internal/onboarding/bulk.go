package onboarding

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/kickoff/go/internal/leagues"
	"github.com/mcdev12/kickoff/go/internal/metrics"
	"github.com/mcdev12/kickoff/go/internal/progress"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LeagueOnboarder onboards one league
type LeagueOnboarder interface {
	Onboard(ctx context.Context, desc leagues.LeagueDescriptor, report progress.Func) Result
}

// LeagueIndex tells which leagues are already stored
type LeagueIndex interface {
	ExistingExternalIDs(ctx context.Context, externalIDs []string) ([]string, error)
}

// Pinger checks that the store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// BulkConfig wires the bulk driver
type BulkConfig struct {
	Orchestrator LeagueOnboarder
	Index        LeagueIndex
	Health       Pinger
	Pacing       time.Duration
	Clock        clockwork.Clock
}

// BulkDriver onboards a list of leagues one after the other
type BulkDriver struct {
	orchestrator LeagueOnboarder
	index        LeagueIndex
	health       Pinger
	pacing       time.Duration
	clock        clockwork.Clock
}

func NewBulkDriver(cfg BulkConfig) *BulkDriver {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &BulkDriver{
		orchestrator: cfg.Orchestrator,
		index:        cfg.Index,
		health:       cfg.Health,
		pacing:       cfg.Pacing,
		clock:        clock,
	}
}

// LeagueReport is one league's line in a run report
type LeagueReport struct {
	ExternalID string        `json:"external_id"`
	Name       string        `json:"name"`
	Season     int           `json:"season"`
	New        bool          `json:"new"`
	Success    bool          `json:"success"`
	Warning    string        `json:"warning,omitempty"`
	Error      string        `json:"error,omitempty"`
	Stats      Stats         `json:"stats"`
	Duration   time.Duration `json:"duration"`
}

// RunReport aggregates a bulk run
type RunReport struct {
	RunID            string    `json:"run_id"`
	StartedAt        time.Time `json:"started_at"`
	FinishedAt       time.Time `json:"finished_at"`
	LeaguesProcessed int       `json:"leagues_processed"`
	LeaguesSucceeded int       `json:"leagues_succeeded"`
	LeaguesFailed    int       `json:"leagues_failed"`
	Stats
	NewLeagues      []string       `json:"new_leagues"`
	ExistingLeagues []string       `json:"existing_leagues"`
	Cancelled       bool           `json:"cancelled,omitempty"`
	Leagues         []LeagueReport `json:"leagues"`
}

// Run onboards every league in order with the pacing delay between them. A
// failed league never stops the run unless the store has become unreachable;
// the only returned error is a *FatalConnectivityError.
func (d *BulkDriver) Run(ctx context.Context, descs []leagues.LeagueDescriptor, report progress.Func) (*RunReport, error) {
	run := &RunReport{
		RunID:     uuid.New().String(),
		StartedAt: d.clock.Now().UTC(),
	}
	logger := log.With().Str("run_id", run.RunID).Logger()

	if err := d.checkStore(ctx, logger); err != nil {
		return nil, err
	}

	existing := d.partition(ctx, descs, run)
	report = progress.WithRun(report, run.RunID)

	logger.Info().
		Int("leagues", len(descs)).
		Int("new", len(run.NewLeagues)).
		Int("existing", len(run.ExistingLeagues)).
		Dur("pacing", d.pacing).
		Msg("starting bulk onboarding")

	for i, desc := range descs {
		if i > 0 && !d.pace(ctx) {
			run.Cancelled = true
			logger.Warn().Int("processed", run.LeaguesProcessed).Msg("bulk onboarding cancelled")
			break
		}

		res := d.orchestrator.Onboard(ctx, desc, report)

		run.LeaguesProcessed++
		if res.Success {
			run.LeaguesSucceeded++
		} else {
			run.LeaguesFailed++
		}
		run.Stats = run.Stats.Merge(res.Stats)
		run.Leagues = append(run.Leagues, LeagueReport{
			ExternalID: desc.ExternalID,
			Name:       res.LeagueName,
			Season:     res.Season,
			New:        !existing[desc.ExternalID],
			Success:    res.Success,
			Warning:    res.Warning,
			Error:      res.ErrorMessage(),
			Stats:      res.Stats,
			Duration:   res.Duration,
		})

		if !res.Success && ctx.Err() == nil {
			if err := d.checkStore(ctx, logger); err != nil {
				logger.Error().
					Int("processed", run.LeaguesProcessed).
					Int("remaining", len(descs)-run.LeaguesProcessed).
					Msg("store lost mid-run")
				return nil, err
			}
		}
	}

	run.FinishedAt = d.clock.Now().UTC()
	metrics.BulkRunsTotal.WithLabelValues("completed").Inc()

	logger.Info().
		Int("processed", run.LeaguesProcessed).
		Int("succeeded", run.LeaguesSucceeded).
		Int("failed", run.LeaguesFailed).
		Dur("duration", run.FinishedAt.Sub(run.StartedAt)).
		Msg("bulk onboarding finished")

	return run, nil
}

func (d *BulkDriver) checkStore(ctx context.Context, logger zerolog.Logger) error {
	if d.health == nil {
		return nil
	}
	if err := d.health.Ping(ctx); err != nil {
		metrics.BulkRunsTotal.WithLabelValues("fatal").Inc()
		logger.Error().Err(err).Msg("persistent store unreachable, aborting run")
		return &FatalConnectivityError{Cause: err}
	}
	return nil
}

// partition records which leagues are new. It only feeds the report; an
// index failure is logged and every league is reported as new.
func (d *BulkDriver) partition(ctx context.Context, descs []leagues.LeagueDescriptor, run *RunReport) map[string]bool {
	ids := make([]string, 0, len(descs))
	for _, desc := range descs {
		ids = append(ids, desc.ExternalID)
	}

	existing := make(map[string]bool)
	if d.index != nil && len(ids) > 0 {
		found, err := d.index.ExistingExternalIDs(ctx, ids)
		if err != nil {
			log.Warn().Err(err).Msg("failed to check existing leagues")
		}
		for _, id := range found {
			existing[id] = true
		}
	}

	run.NewLeagues = []string{}
	run.ExistingLeagues = []string{}
	for _, id := range ids {
		if existing[id] {
			run.ExistingLeagues = append(run.ExistingLeagues, id)
		} else {
			run.NewLeagues = append(run.NewLeagues, id)
		}
	}
	return existing
}

// pace waits the inter-league delay. It returns false when ctx ends first.
func (d *BulkDriver) pace(ctx context.Context) bool {
	if d.pacing <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-d.clock.After(d.pacing):
		return true
	}
}
