package teams

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/kickoff/go/clients"
	"github.com/mcdev12/kickoff/go/internal/models"
	"github.com/rs/zerolog/log"
)

// TeamsRepository defines what the app layer needs from the repository
type TeamsRepository interface {
	CreateTeam(ctx context.Context, req CreateTeamRequest) (*models.Team, error)
	GetTeamByExternalID(ctx context.Context, externalID string) (*models.Team, error)
	ListTeamsByLeague(ctx context.Context, leagueExternalID string, season int) ([]models.Team, error)
	UpdateTeam(ctx context.Context, id uuid.UUID, req UpdateTeamRequest) (*models.Team, error)
}

// App handles teams business logic
type App struct {
	repo  TeamsRepository
	clock clockwork.Clock
}

// NewApp creates a new teams App
func NewApp(repo TeamsRepository, clock clockwork.Clock) *App {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &App{
		repo:  repo,
		clock: clock,
	}
}

// ReconcileTeam upserts a provider team and makes sure it carries exactly one
// association for (league, season). Failures are reported in the result.
func (a *App) ReconcileTeam(ctx context.Context, desc TeamDescriptor, league LeagueRef, season int) Result {
	externalID := strings.TrimSpace(desc.ExternalID)
	if externalID == "" {
		return Result{Outcome: models.SyncOutcomeError, Err: fmt.Errorf("team %q: %w", desc.Name, models.ErrMissingExternalID)}
	}

	association := models.LeagueAssociation{
		LeagueExternalID: league.ExternalID,
		LeagueName:       league.Name,
		Season:           season,
		IsActive:         true,
	}

	existing, err := a.repo.GetTeamByExternalID(ctx, externalID)
	switch {
	case errors.Is(err, ErrTeamNotFound):
		team, createErr := a.create(ctx, externalID, desc, association)
		if !errors.Is(createErr, ErrTeamExists) {
			return a.result(models.SyncOutcomeCreated, externalID, team, createErr)
		}
		// Inserted by someone else since the lookup; fall through to update.
		existing, err = a.repo.GetTeamByExternalID(ctx, externalID)
		if err != nil {
			return a.result(models.SyncOutcomeError, externalID, nil, fmt.Errorf("failed to reload team: %w", err))
		}
	case err != nil:
		return a.result(models.SyncOutcomeError, externalID, nil, fmt.Errorf("failed to look up team: %w", err))
	}

	team, err := a.update(ctx, existing, desc, association)
	return a.result(models.SyncOutcomeUpdated, externalID, team, err)
}

func (a *App) create(ctx context.Context, externalID string, desc TeamDescriptor, association models.LeagueAssociation) (*models.Team, error) {
	fields := a.fields(desc)
	team, err := a.repo.CreateTeam(ctx, CreateTeamRequest{
		ExternalID:   externalID,
		Name:         fields.Name,
		Code:         fields.Code,
		Founded:      fields.Founded,
		LogoURL:      fields.LogoURL,
		Country:      fields.Country,
		City:         fields.City,
		Venue:        fields.Venue,
		Source:       fields.Source,
		Associations: []models.LeagueAssociation{association},
		LastSyncedAt: fields.LastSyncedAt,
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (a *App) update(ctx context.Context, existing *models.Team, desc TeamDescriptor, association models.LeagueAssociation) (*models.Team, error) {
	if existing.AddAssociation(association) {
		log.Info().
			Str("team_external_id", existing.ExternalID).
			Str("league_external_id", association.LeagueExternalID).
			Int("season", association.Season).
			Msg("adding league association to team")
	}

	req := a.fields(desc)
	req.Associations = existing.Associations

	team, err := a.repo.UpdateTeam(ctx, existing.ID, req)
	if err != nil {
		return nil, err
	}
	return team, nil
}

// fields maps the descriptor onto every non-association column
func (a *App) fields(desc TeamDescriptor) UpdateTeamRequest {
	req := UpdateTeamRequest{
		Name:         strings.TrimSpace(desc.Name),
		Code:         value(desc.Code),
		Founded:      desc.Founded,
		LogoURL:      value(desc.LogoURL),
		Country:      value(desc.Country),
		City:         value(desc.City),
		Source:       string(clients.ExternalSourceAPIFootball),
		LastSyncedAt: a.clock.Now().UTC(),
	}

	if v := desc.Venue; v != nil {
		req.Venue = &models.VenueSnapshot{
			Name:        value(v.Name),
			Capacity:    v.Capacity,
			Coordinates: models.CoordinatesFromPair(v.Longitude, v.Latitude),
		}
	}

	return req
}

func (a *App) result(outcome models.SyncOutcome, externalID string, team *models.Team, err error) Result {
	if err != nil {
		log.Error().Err(err).Str("team_external_id", externalID).Msg("failed to reconcile team")
		return Result{
			Outcome: models.SyncOutcomeError,
			Err:     fmt.Errorf("team %s: %w", externalID, err),
		}
	}

	log.Debug().
		Str("team_external_id", externalID).
		Str("name", team.Name).
		Str("outcome", string(outcome)).
		Msg("reconciled team")

	return Result{Outcome: outcome, Team: team}
}

// GetTeamByExternalID retrieves a team by its provider id
func (a *App) GetTeamByExternalID(ctx context.Context, externalID string) (*models.Team, error) {
	team, err := a.repo.GetTeamByExternalID(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team by external ID: %w", err)
	}
	return team, nil
}

// ListTeamsByLeague retrieves teams associated with a league for one season
func (a *App) ListTeamsByLeague(ctx context.Context, leagueExternalID string, season int) ([]models.Team, error) {
	teams, err := a.repo.ListTeamsByLeague(ctx, leagueExternalID, season)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams by league: %w", err)
	}
	return teams, nil
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
