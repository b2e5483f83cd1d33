// source: venues.sql

package db

import (
	"context"
	"database/sql"
	"time"
)

const getVenueByExternalID = `-- name: GetVenueByExternalID :one
SELECT id, external_id, name, city, country, country_code, address, capacity, surface, image_url, longitude, latitude, active, last_synced_at, created_at, updated_at FROM venues
WHERE external_id = $1
`

func (q *Queries) GetVenueByExternalID(ctx context.Context, externalID string) (Venue, error) {
	row := q.db.QueryRowContext(ctx, getVenueByExternalID, externalID)
	var i Venue
	err := row.Scan(
		&i.ID,
		&i.ExternalID,
		&i.Name,
		&i.City,
		&i.Country,
		&i.CountryCode,
		&i.Address,
		&i.Capacity,
		&i.Surface,
		&i.ImageUrl,
		&i.Longitude,
		&i.Latitude,
		&i.Active,
		&i.LastSyncedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listVenuesByCountryCode = `-- name: ListVenuesByCountryCode :many
SELECT id, external_id, name, city, country, country_code, address, capacity, surface, image_url, longitude, latitude, active, last_synced_at, created_at, updated_at FROM venues
WHERE country_code = $1
ORDER BY name
`

func (q *Queries) ListVenuesByCountryCode(ctx context.Context, countryCode sql.NullString) ([]Venue, error) {
	rows, err := q.db.QueryContext(ctx, listVenuesByCountryCode, countryCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Venue
	for rows.Next() {
		var i Venue
		if err := rows.Scan(
			&i.ID,
			&i.ExternalID,
			&i.Name,
			&i.City,
			&i.Country,
			&i.CountryCode,
			&i.Address,
			&i.Capacity,
			&i.Surface,
			&i.ImageUrl,
			&i.Longitude,
			&i.Latitude,
			&i.Active,
			&i.LastSyncedAt,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertVenue = `-- name: UpsertVenue :one
INSERT INTO venues (
    external_id, name, city, country, country_code, address, capacity, surface, image_url, longitude, latitude, active, last_synced_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
)
ON CONFLICT (external_id) DO UPDATE SET
    name = EXCLUDED.name,
    city = EXCLUDED.city,
    country = EXCLUDED.country,
    country_code = EXCLUDED.country_code,
    address = EXCLUDED.address,
    capacity = EXCLUDED.capacity,
    surface = EXCLUDED.surface,
    image_url = EXCLUDED.image_url,
    longitude = EXCLUDED.longitude,
    latitude = EXCLUDED.latitude,
    active = EXCLUDED.active,
    last_synced_at = EXCLUDED.last_synced_at,
    updated_at = NOW()
RETURNING id, external_id, name, city, country, country_code, address, capacity, surface, image_url, longitude, latitude, active, last_synced_at, created_at, updated_at, (xmax = 0) AS inserted
`

type UpsertVenueParams struct {
	ExternalID   string          `json:"external_id"`
	Name         string          `json:"name"`
	City         sql.NullString  `json:"city"`
	Country      sql.NullString  `json:"country"`
	CountryCode  sql.NullString  `json:"country_code"`
	Address      sql.NullString  `json:"address"`
	Capacity     sql.NullInt32   `json:"capacity"`
	Surface      sql.NullString  `json:"surface"`
	ImageUrl     sql.NullString  `json:"image_url"`
	Longitude    sql.NullFloat64 `json:"longitude"`
	Latitude     sql.NullFloat64 `json:"latitude"`
	Active       bool            `json:"active"`
	LastSyncedAt time.Time       `json:"last_synced_at"`
}

type UpsertVenueRow struct {
	Venue
	Inserted bool `json:"inserted"`
}

func (q *Queries) UpsertVenue(ctx context.Context, arg UpsertVenueParams) (UpsertVenueRow, error) {
	row := q.db.QueryRowContext(ctx, upsertVenue,
		arg.ExternalID,
		arg.Name,
		arg.City,
		arg.Country,
		arg.CountryCode,
		arg.Address,
		arg.Capacity,
		arg.Surface,
		arg.ImageUrl,
		arg.Longitude,
		arg.Latitude,
		arg.Active,
		arg.LastSyncedAt,
	)
	var i UpsertVenueRow
	err := row.Scan(
		&i.ID,
		&i.ExternalID,
		&i.Name,
		&i.City,
		&i.Country,
		&i.CountryCode,
		&i.Address,
		&i.Capacity,
		&i.Surface,
		&i.ImageUrl,
		&i.Longitude,
		&i.Latitude,
		&i.Active,
		&i.LastSyncedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.Inserted,
	)
	return i, err
}
