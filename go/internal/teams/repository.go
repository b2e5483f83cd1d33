package teams

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mcdev12/kickoff/go/internal/models"
	"github.com/mcdev12/kickoff/go/internal/sqlutil"
	"github.com/mcdev12/kickoff/go/internal/teams/db"
	"github.com/sqlc-dev/pqtype"
)

const uniqueViolation = "23505"

// Querier defines what the repository needs from the database layer
type Querier interface {
	CreateTeam(ctx context.Context, arg db.CreateTeamParams) (db.Team, error)
	GetTeamByExternalID(ctx context.Context, externalID string) (db.Team, error)
	GetTeamForUpdate(ctx context.Context, id uuid.UUID) (db.Team, error)
	ListTeamsByAssociation(ctx context.Context, filter json.RawMessage) ([]db.Team, error)
	UpdateTeam(ctx context.Context, arg db.UpdateTeamParams) (db.Team, error)
}

// TxFunc runs fn with a Querier bound to one transaction
type TxFunc func(ctx context.Context, fn func(q Querier) error) error

// Repository implements team data access operations
type Repository struct {
	queries Querier
	inTx    TxFunc
}

// NewRepository creates a teams repository backed by a Postgres database
func NewRepository(database *sql.DB) *Repository {
	queries := db.New(database)
	return &Repository{
		queries: queries,
		inTx: func(ctx context.Context, fn func(q Querier) error) error {
			return sqlutil.Run(ctx, database, nil, queries.WithTx, func(q *db.Queries) error {
				return fn(q)
			})
		},
	}
}

// NewRepositoryWithQuerier creates a repository over an arbitrary Querier.
// inTx may be nil, in which case "transactions" run directly on querier.
func NewRepositoryWithQuerier(querier Querier, inTx TxFunc) *Repository {
	if inTx == nil {
		inTx = func(ctx context.Context, fn func(q Querier) error) error {
			return fn(querier)
		}
	}
	return &Repository{
		queries: querier,
		inTx:    inTx,
	}
}

// CreateTeam inserts a new team. A concurrent insert of the same external id
// yields ErrTeamExists.
func (r *Repository) CreateTeam(ctx context.Context, req CreateTeamRequest) (*models.Team, error) {
	venue, err := marshalVenue(req.Venue)
	if err != nil {
		return nil, err
	}
	associations, err := marshalAssociations(req.Associations)
	if err != nil {
		return nil, err
	}

	dbTeam, err := r.queries.CreateTeam(ctx, db.CreateTeamParams{
		ExternalID:   req.ExternalID,
		Name:         req.Name,
		Code:         sqlutil.ToSqlText(req.Code),
		Founded:      sqlutil.ToSqlInt32(req.Founded),
		LogoUrl:      sqlutil.ToSqlText(req.LogoURL),
		Country:      sqlutil.ToSqlText(req.Country),
		City:         sqlutil.ToSqlText(req.City),
		Venue:        venue,
		Source:       req.Source,
		Associations: associations,
		LastSyncedAt: req.LastSyncedAt,
	})
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrTeamExists
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return r.dbTeamToModel(dbTeam)
}

// GetTeamByExternalID retrieves a team by provider id
func (r *Repository) GetTeamByExternalID(ctx context.Context, externalID string) (*models.Team, error) {
	dbTeam, err := r.queries.GetTeamByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team by external ID: %w", err)
	}

	return r.dbTeamToModel(dbTeam)
}

// ListTeamsByLeague retrieves teams holding an association for (league, season)
func (r *Repository) ListTeamsByLeague(ctx context.Context, leagueExternalID string, season int) ([]models.Team, error) {
	filter, err := json.Marshal([]map[string]interface{}{{
		"league_external_id": leagueExternalID,
		"season":             season,
	}})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal association filter: %w", err)
	}

	dbTeams, err := r.queries.ListTeamsByAssociation(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams by league: %w", err)
	}

	result := make([]models.Team, 0, len(dbTeams))
	for _, t := range dbTeams {
		team, err := r.dbTeamToModel(t)
		if err != nil {
			return nil, err
		}
		result = append(result, *team)
	}
	return result, nil
}

// UpdateTeam overwrites the team's fields inside a transaction. The row is
// locked first and its stored associations are merged with the requested
// ones, so a concurrent writer's association is never lost or duplicated.
func (r *Repository) UpdateTeam(ctx context.Context, id uuid.UUID, req UpdateTeamRequest) (*models.Team, error) {
	venue, err := marshalVenue(req.Venue)
	if err != nil {
		return nil, err
	}

	var updated db.Team
	err = r.inTx(ctx, func(q Querier) error {
		locked, err := q.GetTeamForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrTeamNotFound
			}
			return fmt.Errorf("failed to lock team: %w", err)
		}

		stored, err := unmarshalAssociations(locked.Associations)
		if err != nil {
			return err
		}
		associations, err := marshalAssociations(models.MergeAssociations(stored, req.Associations))
		if err != nil {
			return err
		}

		updated, err = q.UpdateTeam(ctx, db.UpdateTeamParams{
			ID:           id,
			Name:         req.Name,
			Code:         sqlutil.ToSqlText(req.Code),
			Founded:      sqlutil.ToSqlInt32(req.Founded),
			LogoUrl:      sqlutil.ToSqlText(req.LogoURL),
			Country:      sqlutil.ToSqlText(req.Country),
			City:         sqlutil.ToSqlText(req.City),
			Venue:        venue,
			Source:       req.Source,
			Associations: associations,
			LastSyncedAt: req.LastSyncedAt,
		})
		if err != nil {
			return fmt.Errorf("failed to update team: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.dbTeamToModel(updated)
}

// dbTeamToModel converts a database team to domain model
func (r *Repository) dbTeamToModel(t db.Team) (*models.Team, error) {
	associations, err := unmarshalAssociations(t.Associations)
	if err != nil {
		return nil, err
	}

	var venue *models.VenueSnapshot
	if t.Venue.Valid && len(t.Venue.RawMessage) > 0 {
		venue = &models.VenueSnapshot{}
		if err := json.Unmarshal(t.Venue.RawMessage, venue); err != nil {
			return nil, fmt.Errorf("failed to unmarshal venue snapshot: %w", err)
		}
	}

	return &models.Team{
		ID:           t.ID,
		ExternalID:   t.ExternalID,
		Name:         t.Name,
		Code:         sqlutil.FromSqlString(t.Code, ""),
		Founded:      sqlutil.FromSqlInt32(t.Founded),
		LogoURL:      sqlutil.FromSqlString(t.LogoUrl, ""),
		Country:      sqlutil.FromSqlString(t.Country, ""),
		City:         sqlutil.FromSqlString(t.City, ""),
		Venue:        venue,
		Source:       t.Source,
		LastSyncedAt: t.LastSyncedAt,
		Associations: associations,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}, nil
}

func marshalVenue(v *models.VenueSnapshot) (pqtype.NullRawMessage, error) {
	if v == nil {
		return pqtype.NullRawMessage{Valid: false}, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return pqtype.NullRawMessage{}, fmt.Errorf("failed to marshal venue snapshot: %w", err)
	}
	return pqtype.NullRawMessage{RawMessage: raw, Valid: true}, nil
}

func marshalAssociations(list []models.LeagueAssociation) (json.RawMessage, error) {
	if list == nil {
		list = []models.LeagueAssociation{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal associations: %w", err)
	}
	return raw, nil
}

func unmarshalAssociations(raw json.RawMessage) ([]models.LeagueAssociation, error) {
	list := []models.LeagueAssociation{}
	if len(raw) == 0 {
		return list, nil
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to unmarshal associations: %w", err)
	}
	return list, nil
}
