package leagues

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mcdev12/kickoff/go/internal/leagues/db"
	"github.com/mcdev12/kickoff/go/internal/models"
	"github.com/mcdev12/kickoff/go/internal/sqlutil"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	GetLeagueByExternalID(ctx context.Context, externalID string) (db.League, error)
	ListExistingExternalIDs(ctx context.Context, externalIds []string) ([]string, error)
	ListLeagues(ctx context.Context) ([]db.League, error)
	UpsertLeague(ctx context.Context, arg db.UpsertLeagueParams) (db.UpsertLeagueRow, error)
}

// Repository implements league data access operations
type Repository struct {
	queries Querier
}

// NewRepository creates a new leagues repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

// UpsertLeague writes every column in one statement
func (r *Repository) UpsertLeague(ctx context.Context, req UpsertLeagueRequest, syncedAt time.Time) (*models.League, bool, error) {
	row, err := r.queries.UpsertLeague(ctx, db.UpsertLeagueParams{
		ExternalID:      req.ExternalID,
		Name:            req.Name,
		Code:            sqlutil.ToSqlText(req.Code),
		Country:         sqlutil.ToSqlText(req.Country),
		CountryCode:     sqlutil.ToSqlText(req.CountryCode),
		Tier:            int32(req.Tier),
		EmblemUrl:       sqlutil.ToSqlText(req.EmblemURL),
		SeasonStartYear: int32(req.Season.StartYear),
		SeasonStart:     req.Season.StartDate,
		SeasonEnd:       req.Season.EndDate,
		SeasonIsCurrent: req.Season.IsCurrent,
		Active:          req.Active,
		LastSyncedAt:    syncedAt,
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert league: %w", err)
	}

	return r.dbLeagueToModel(row.League), row.Inserted, nil
}

// GetLeagueByExternalID retrieves a league by provider id
func (r *Repository) GetLeagueByExternalID(ctx context.Context, externalID string) (*models.League, error) {
	league, err := r.queries.GetLeagueByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("failed to get league by external ID: %w", err)
	}

	return r.dbLeagueToModel(league), nil
}

// ListLeagues retrieves all leagues
func (r *Repository) ListLeagues(ctx context.Context) ([]models.League, error) {
	leagues, err := r.queries.ListLeagues(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leagues: %w", err)
	}

	return r.dbLeaguesToModels(leagues), nil
}

// ExistingExternalIDs returns which of the given ids are stored
func (r *Repository) ExistingExternalIDs(ctx context.Context, externalIDs []string) ([]string, error) {
	ids, err := r.queries.ListExistingExternalIDs(ctx, externalIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list existing league ids: %w", err)
	}
	return ids, nil
}

// dbLeagueToModel converts a database league to domain model
func (r *Repository) dbLeagueToModel(l db.League) *models.League {
	return &models.League{
		ID:          l.ID,
		ExternalID:  l.ExternalID,
		Name:        l.Name,
		Code:        sqlutil.FromSqlString(l.Code, ""),
		Country:     sqlutil.FromSqlString(l.Country, ""),
		CountryCode: sqlutil.FromSqlString(l.CountryCode, ""),
		Tier:        int(l.Tier),
		EmblemURL:   sqlutil.FromSqlString(l.EmblemUrl, ""),
		Season: models.SeasonWindow{
			StartYear: int(l.SeasonStartYear),
			StartDate: l.SeasonStart,
			EndDate:   l.SeasonEnd,
			IsCurrent: l.SeasonIsCurrent,
		},
		Active:       l.Active,
		LastSyncedAt: l.LastSyncedAt,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

// dbLeaguesToModels converts multiple database leagues to domain models
func (r *Repository) dbLeaguesToModels(leagues []db.League) []models.League {
	result := make([]models.League, len(leagues))
	for i, league := range leagues {
		result[i] = *r.dbLeagueToModel(league)
	}
	return result
}
