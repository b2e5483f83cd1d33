package venues

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mcdev12/kickoff/go/internal/models"
	"github.com/mcdev12/kickoff/go/internal/sqlutil"
	"github.com/mcdev12/kickoff/go/internal/venues/db"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	GetVenueByExternalID(ctx context.Context, externalID string) (db.Venue, error)
	ListVenuesByCountryCode(ctx context.Context, countryCode sql.NullString) ([]db.Venue, error)
	UpsertVenue(ctx context.Context, arg db.UpsertVenueParams) (db.UpsertVenueRow, error)
}

// Repository implements venue data access operations
type Repository struct {
	queries Querier
}

// NewRepository creates a new venues repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

// UpsertVenue writes every column in one statement
func (r *Repository) UpsertVenue(ctx context.Context, req UpsertVenueRequest, syncedAt time.Time) (*models.Venue, bool, error) {
	params := db.UpsertVenueParams{
		ExternalID:   req.ExternalID,
		Name:         req.Name,
		City:         sqlutil.ToSqlText(req.City),
		Country:      sqlutil.ToSqlText(req.Country),
		CountryCode:  sqlutil.ToSqlText(req.CountryCode),
		Address:      sqlutil.ToSqlText(req.Address),
		Capacity:     sqlutil.ToSqlInt32(req.Capacity),
		Surface:      sqlutil.ToSqlText(req.Surface),
		ImageUrl:     sqlutil.ToSqlText(req.ImageURL),
		Active:       req.Active,
		LastSyncedAt: syncedAt,
	}
	if req.Coordinates != nil {
		params.Longitude = sql.NullFloat64{Float64: req.Coordinates.Longitude, Valid: true}
		params.Latitude = sql.NullFloat64{Float64: req.Coordinates.Latitude, Valid: true}
	}

	row, err := r.queries.UpsertVenue(ctx, params)
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert venue: %w", err)
	}

	return r.dbVenueToModel(row.Venue), row.Inserted, nil
}

// GetVenueByExternalID retrieves a venue by provider id
func (r *Repository) GetVenueByExternalID(ctx context.Context, externalID string) (*models.Venue, error) {
	venue, err := r.queries.GetVenueByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to get venue by external ID: %w", err)
	}

	return r.dbVenueToModel(venue), nil
}

// ListVenuesByCountryCode retrieves venues in one country ordered by name
func (r *Repository) ListVenuesByCountryCode(ctx context.Context, countryCode string) ([]models.Venue, error) {
	venues, err := r.queries.ListVenuesByCountryCode(ctx, sqlutil.ToSqlText(countryCode))
	if err != nil {
		return nil, fmt.Errorf("failed to list venues by country: %w", err)
	}

	result := make([]models.Venue, len(venues))
	for i, v := range venues {
		result[i] = *r.dbVenueToModel(v)
	}
	return result, nil
}

// dbVenueToModel converts a database venue to domain model. A row with only
// one coordinate column set is read as unresolved.
func (r *Repository) dbVenueToModel(v db.Venue) *models.Venue {
	return &models.Venue{
		ID:           v.ID,
		ExternalID:   v.ExternalID,
		Name:         v.Name,
		City:         sqlutil.FromSqlString(v.City, ""),
		Country:      sqlutil.FromSqlString(v.Country, ""),
		CountryCode:  sqlutil.FromSqlString(v.CountryCode, ""),
		Address:      sqlutil.FromSqlString(v.Address, ""),
		Capacity:     sqlutil.FromSqlInt32(v.Capacity),
		Surface:      sqlutil.FromSqlString(v.Surface, ""),
		ImageURL:     sqlutil.FromSqlString(v.ImageUrl, ""),
		Coordinates:  models.CoordinatesFromPair(sqlutil.FromSqlFloat64(v.Longitude), sqlutil.FromSqlFloat64(v.Latitude)),
		Active:       v.Active,
		LastSyncedAt: v.LastSyncedAt,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}
