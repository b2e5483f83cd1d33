package onboarding

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/kickoff/go/clients/football_api_client"
	"github.com/mcdev12/kickoff/go/internal/countries"
	"github.com/mcdev12/kickoff/go/internal/leagues"
	"github.com/mcdev12/kickoff/go/internal/metrics"
	"github.com/mcdev12/kickoff/go/internal/models"
	"github.com/mcdev12/kickoff/go/internal/progress"
	"github.com/mcdev12/kickoff/go/internal/teams"
	"github.com/mcdev12/kickoff/go/internal/venues"
	"github.com/rs/zerolog/log"
)

// LeagueReconciler upserts the league itself
type LeagueReconciler interface {
	ReconcileLeague(ctx context.Context, desc leagues.LeagueDescriptor) leagues.Result
}

// TeamReconciler upserts one roster team
type TeamReconciler interface {
	ReconcileTeam(ctx context.Context, desc teams.TeamDescriptor, league teams.LeagueRef, season int) teams.Result
}

// VenueReconciler upserts one home ground
type VenueReconciler interface {
	ReconcileVenue(ctx context.Context, desc venues.VenueDescriptor, fallback venues.CountryContext) venues.Result
}

// RosterProvider fetches the teams of a league for one season
type RosterProvider interface {
	GetTeamsByLeagueAndSeason(ctx context.Context, leagueID string, season int) ([]football_api_client.TeamEntry, error)
}

// Waiter paces calls to the upstream provider
type Waiter interface {
	Wait(ctx context.Context)
}

// OrchestratorConfig wires the orchestrator's collaborators
type OrchestratorConfig struct {
	Leagues LeagueReconciler
	Teams   TeamReconciler
	Venues  VenueReconciler
	Roster  RosterProvider
	Limiter Waiter
	Clock   clockwork.Clock
}

// Orchestrator onboards a single league: the league row, its roster and the
// roster's home venues
type Orchestrator struct {
	leagues LeagueReconciler
	teams   TeamReconciler
	venues  VenueReconciler
	roster  RosterProvider
	limiter Waiter
	clock   clockwork.Clock
}

func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Orchestrator{
		leagues: cfg.Leagues,
		teams:   cfg.Teams,
		venues:  cfg.Venues,
		roster:  cfg.Roster,
		limiter: cfg.Limiter,
		clock:   clock,
	}
}

// Result is the outcome of onboarding one league
type Result struct {
	LeagueExternalID string        `json:"league_external_id"`
	LeagueName       string        `json:"league_name"`
	Season           int           `json:"season"`
	Success          bool          `json:"success"`
	Stats            Stats         `json:"stats"`
	Warning          string        `json:"warning,omitempty"`
	Error            error         `json:"-"`
	Failures         []error       `json:"-"`
	Duration         time.Duration `json:"duration"`
}

// ErrorMessage returns the error text or "" when the onboarding succeeded
func (r Result) ErrorMessage() string {
	if r.Error == nil {
		return ""
	}
	return r.Error.Error()
}

// Onboard reconciles the league, then every roster entry in provider order.
// Only a league failure or an unreadable roster ends it early; team and venue
// failures are counted and the loop moves on.
func (o *Orchestrator) Onboard(ctx context.Context, desc leagues.LeagueDescriptor, report progress.Func) Result {
	started := o.clock.Now()
	res := Result{LeagueExternalID: desc.ExternalID, LeagueName: desc.Name}

	logger := log.With().Str("league_external_id", desc.ExternalID).Str("league", desc.Name).Logger()

	emit := func(step progress.Step, msg string, current, total int) {
		report.Emit(progress.Event{
			LeagueExternalID: desc.ExternalID,
			Step:             step,
			Message:          msg,
			Current:          current,
			Total:            total,
			Time:             o.clock.Now().UTC(),
		})
	}

	finish := func(success bool) Result {
		res.Success = success
		res.Duration = o.clock.Since(started)
		status := "succeeded"
		if !success {
			status = "failed"
		}
		metrics.LeagueOnboardingsTotal.WithLabelValues(status).Inc()
		metrics.LeagueOnboardingDuration.Observe(res.Duration.Seconds())
		return res
	}

	emit(progress.StepLeague, fmt.Sprintf("Syncing league %s", desc.Name), 0, 0)

	lr := o.leagues.ReconcileLeague(ctx, desc)
	res.Stats = record(res.Stats, models.EntityKindLeague, lr.Outcome)
	if lr.Outcome == models.SyncOutcomeError || lr.League == nil {
		res.Error = &LeagueSyncError{LeagueExternalID: desc.ExternalID, Cause: lr.Err}
		logger.Error().Err(lr.Err).Msg("league sync failed, skipping teams and venues")
		return finish(false)
	}

	league := lr.League
	res.LeagueName = league.Name
	res.Season = league.Season.StartYear

	emit(progress.StepTeams, fmt.Sprintf("Fetching teams for season %d", res.Season), 0, 0)

	roster, err := o.roster.GetTeamsByLeagueAndSeason(ctx, league.ExternalID, res.Season)
	if err != nil {
		res.Error = &LeagueSyncError{LeagueExternalID: desc.ExternalID, Cause: fmt.Errorf("failed to fetch teams: %w", err)}
		logger.Error().Err(err).Int("season", res.Season).Msg("failed to fetch roster")
		return finish(false)
	}

	if len(roster) == 0 {
		res.Warning = WarningNoTeams
		logger.Warn().Int("season", res.Season).Msg(WarningNoTeams)
		return finish(true)
	}

	leagueRef := teams.LeagueRef{ExternalID: league.ExternalID, Name: league.Name}
	seenVenues := make(map[string]bool)

	for i, entry := range roster {
		if ctx.Err() != nil {
			res.Error = &LeagueSyncError{LeagueExternalID: desc.ExternalID, Cause: ctx.Err()}
			logger.Warn().Int("processed", i).Int("total", len(roster)).Msg("onboarding cancelled")
			return finish(false)
		}

		teamDesc := teamDescriptor(entry)
		tr := o.teams.ReconcileTeam(ctx, teamDesc, leagueRef, res.Season)
		res.Stats = record(res.Stats, models.EntityKindTeam, tr.Outcome)
		if tr.Outcome == models.SyncOutcomeError {
			res.Failures = append(res.Failures, &EntitySyncError{Kind: models.EntityKindTeam, ExternalID: teamDesc.ExternalID, Cause: tr.Err})
		}

		if v := entry.VenueData(); v != nil {
			venueDesc := venueDescriptor(v)
			if venueDesc.ExternalID == "" || !seenVenues[venueDesc.ExternalID] {
				// Seen even when this attempt errors; a shared venue is tried once per run.
				if venueDesc.ExternalID != "" {
					seenVenues[venueDesc.ExternalID] = true
				}
				vr := o.venues.ReconcileVenue(ctx, venueDesc, fallbackCountry(teamDesc, league))
				res.Stats = record(res.Stats, models.EntityKindVenue, vr.Outcome)
				if vr.Outcome == models.SyncOutcomeError {
					res.Failures = append(res.Failures, &EntitySyncError{Kind: models.EntityKindVenue, ExternalID: venueDesc.ExternalID, Cause: vr.Err})
				}
			}
		}

		emit(progress.StepProcessing, fmt.Sprintf("Processed %s", teamDesc.Name), i+1, len(roster))

		if o.limiter != nil {
			o.limiter.Wait(ctx)
		}
	}

	logger.Info().
		Int("season", res.Season).
		Int("teams_created", res.Stats.Team.Created).
		Int("teams_updated", res.Stats.Team.Updated).
		Int("team_errors", res.Stats.Team.Errors).
		Int("venues_created", res.Stats.Venue.Created).
		Int("venues_updated", res.Stats.Venue.Updated).
		Int("venue_errors", res.Stats.Venue.Errors).
		Msg("league onboarded")

	return finish(true)
}

// fallbackCountry is the team's country, or the league's when the team has none
func fallbackCountry(team teams.TeamDescriptor, league *models.League) venues.CountryContext {
	if team.Country != nil && *team.Country != "" {
		return venues.CountryContext{
			Country:     *team.Country,
			CountryCode: countries.CodeOr(*team.Country, league.CountryCode),
		}
	}
	return venues.CountryContext{Country: league.Country, CountryCode: league.CountryCode}
}

func record(stats Stats, kind models.EntityKind, outcome models.SyncOutcome) Stats {
	metrics.EntitySyncTotal.WithLabelValues(string(kind), string(outcome)).Inc()
	return stats.Add(kind, outcome)
}
