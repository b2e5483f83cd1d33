package leagues

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/kickoff/go/internal/countries"
	"github.com/mcdev12/kickoff/go/internal/models"
	"github.com/rs/zerolog/log"
)

// LeagueRepository defines what the app layer needs from the repository
type LeagueRepository interface {
	// UpsertLeague replaces the league with the same external id or inserts it
	UpsertLeague(ctx context.Context, req UpsertLeagueRequest, syncedAt time.Time) (league *models.League, created bool, err error)
	GetLeagueByExternalID(ctx context.Context, externalID string) (*models.League, error)
	ListLeagues(ctx context.Context) ([]models.League, error)
	ExistingExternalIDs(ctx context.Context, externalIDs []string) ([]string, error)
}

// App handles leagues business logic
type App struct {
	repo    LeagueRepository
	clock   clockwork.Clock
	cutover time.Month
}

// NewApp creates a new leagues App. A zero cutover month uses July.
func NewApp(repo LeagueRepository, clock clockwork.Clock, cutover time.Month) *App {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if cutover == 0 {
		cutover = DefaultCutoverMonth
	}
	return &App{
		repo:    repo,
		clock:   clock,
		cutover: cutover,
	}
}

// CurrentSeason returns the season window for desc as of now. Explicit
// bounds win over an explicit start year, which wins over the cutover rule.
func (a *App) CurrentSeason(desc LeagueDescriptor) models.SeasonWindow {
	now := a.clock.Now()
	switch {
	case desc.SeasonStart != nil && desc.SeasonEnd != nil:
		w := SeasonBetween(*desc.SeasonStart, *desc.SeasonEnd, now)
		if desc.Season != nil {
			// The provider's season label wins over the start date's year.
			w.StartYear = *desc.Season
		}
		return w
	case desc.Season != nil:
		return SeasonStarting(*desc.Season, a.cutover, now)
	default:
		return SeasonFor(now, a.cutover)
	}
}

// ReconcileLeague upserts a league with a full-field overwrite
func (a *App) ReconcileLeague(ctx context.Context, desc LeagueDescriptor) Result {
	externalID := strings.TrimSpace(desc.ExternalID)
	if externalID == "" {
		return a.failed(desc, models.ErrMissingExternalID)
	}
	name := strings.TrimSpace(desc.Name)
	if name == "" {
		return a.failed(desc, ErrMissingName)
	}

	tier := 1
	if desc.Tier != nil && *desc.Tier >= 1 {
		tier = *desc.Tier
	}

	country := strings.TrimSpace(desc.Country)
	countryCode := countries.Resolve(desc.CountryCode, country)

	req := UpsertLeagueRequest{
		ExternalID:  externalID,
		Name:        name,
		Code:        strings.TrimSpace(desc.Code),
		Country:     country,
		CountryCode: countryCode,
		Tier:        tier,
		EmblemURL:   strings.TrimSpace(desc.EmblemURL),
		Season:      a.CurrentSeason(desc),
		Active:      true,
	}

	league, created, err := a.repo.UpsertLeague(ctx, req, a.clock.Now().UTC())
	if err != nil {
		return a.failed(desc, fmt.Errorf("failed to upsert league: %w", err))
	}

	outcome := models.SyncOutcomeUpdated
	if created {
		outcome = models.SyncOutcomeCreated
	}

	log.Info().
		Str("league_external_id", externalID).
		Str("name", league.Name).
		Int("season", league.Season.StartYear).
		Str("outcome", string(outcome)).
		Msg("reconciled league")

	return Result{Outcome: outcome, League: league}
}

func (a *App) failed(desc LeagueDescriptor, err error) Result {
	log.Error().Err(err).Str("league_external_id", desc.ExternalID).Str("name", desc.Name).Msg("failed to reconcile league")
	return Result{
		Outcome: models.SyncOutcomeError,
		Err:     fmt.Errorf("league %s: %w", desc.ExternalID, err),
	}
}

// GetLeagueByExternalID retrieves a league by its provider id
func (a *App) GetLeagueByExternalID(ctx context.Context, externalID string) (*models.League, error) {
	league, err := a.repo.GetLeagueByExternalID(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get league by external ID: %w", err)
	}
	return league, nil
}

// ListLeagues retrieves every onboarded league
func (a *App) ListLeagues(ctx context.Context) ([]models.League, error) {
	leagues, err := a.repo.ListLeagues(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leagues: %w", err)
	}
	return leagues, nil
}

// ExistingExternalIDs returns the subset of ids that are already stored
func (a *App) ExistingExternalIDs(ctx context.Context, externalIDs []string) ([]string, error) {
	if len(externalIDs) == 0 {
		return nil, nil
	}
	existing, err := a.repo.ExistingExternalIDs(ctx, externalIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing leagues: %w", err)
	}
	return existing, nil
}
