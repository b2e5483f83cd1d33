// source: teams.sql

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

const createTeam = `-- name: CreateTeam :one
INSERT INTO teams (
    external_id, name, code, founded, logo_url, country, city, venue, source, associations, last_synced_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
)
RETURNING id, external_id, name, code, founded, logo_url, country, city, venue, source, associations, last_synced_at, created_at, updated_at
`

type CreateTeamParams struct {
	ExternalID   string                `json:"external_id"`
	Name         string                `json:"name"`
	Code         sql.NullString        `json:"code"`
	Founded      sql.NullInt32         `json:"founded"`
	LogoUrl      sql.NullString        `json:"logo_url"`
	Country      sql.NullString        `json:"country"`
	City         sql.NullString        `json:"city"`
	Venue        pqtype.NullRawMessage `json:"venue"`
	Source       string                `json:"source"`
	Associations json.RawMessage       `json:"associations"`
	LastSyncedAt time.Time             `json:"last_synced_at"`
}

func (q *Queries) CreateTeam(ctx context.Context, arg CreateTeamParams) (Team, error) {
	row := q.db.QueryRowContext(ctx, createTeam,
		arg.ExternalID,
		arg.Name,
		arg.Code,
		arg.Founded,
		arg.LogoUrl,
		arg.Country,
		arg.City,
		arg.Venue,
		arg.Source,
		arg.Associations,
		arg.LastSyncedAt,
	)
	return scanTeam(row)
}

const getTeamByExternalID = `-- name: GetTeamByExternalID :one
SELECT id, external_id, name, code, founded, logo_url, country, city, venue, source, associations, last_synced_at, created_at, updated_at FROM teams
WHERE external_id = $1
`

func (q *Queries) GetTeamByExternalID(ctx context.Context, externalID string) (Team, error) {
	row := q.db.QueryRowContext(ctx, getTeamByExternalID, externalID)
	return scanTeam(row)
}

const getTeamForUpdate = `-- name: GetTeamForUpdate :one
SELECT id, external_id, name, code, founded, logo_url, country, city, venue, source, associations, last_synced_at, created_at, updated_at FROM teams
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetTeamForUpdate(ctx context.Context, id uuid.UUID) (Team, error) {
	row := q.db.QueryRowContext(ctx, getTeamForUpdate, id)
	return scanTeam(row)
}

const listTeamsByAssociation = `-- name: ListTeamsByAssociation :many
SELECT id, external_id, name, code, founded, logo_url, country, city, venue, source, associations, last_synced_at, created_at, updated_at FROM teams
WHERE associations @> $1::jsonb
ORDER BY name
`

func (q *Queries) ListTeamsByAssociation(ctx context.Context, filter json.RawMessage) ([]Team, error) {
	rows, err := q.db.QueryContext(ctx, listTeamsByAssociation, filter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Team
	for rows.Next() {
		i, err := scanTeam(rows)
		if err != nil {
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

const updateTeam = `-- name: UpdateTeam :one
UPDATE teams
SET name = $2,
    code = $3,
    founded = $4,
    logo_url = $5,
    country = $6,
    city = $7,
    venue = $8,
    source = $9,
    associations = $10,
    last_synced_at = $11,
    updated_at = NOW()
WHERE id = $1
RETURNING id, external_id, name, code, founded, logo_url, country, city, venue, source, associations, last_synced_at, created_at, updated_at
`

type UpdateTeamParams struct {
	ID           uuid.UUID             `json:"id"`
	Name         string                `json:"name"`
	Code         sql.NullString        `json:"code"`
	Founded      sql.NullInt32         `json:"founded"`
	LogoUrl      sql.NullString        `json:"logo_url"`
	Country      sql.NullString        `json:"country"`
	City         sql.NullString        `json:"city"`
	Venue        pqtype.NullRawMessage `json:"venue"`
	Source       string                `json:"source"`
	Associations json.RawMessage       `json:"associations"`
	LastSyncedAt time.Time             `json:"last_synced_at"`
}

func (q *Queries) UpdateTeam(ctx context.Context, arg UpdateTeamParams) (Team, error) {
	row := q.db.QueryRowContext(ctx, updateTeam,
		arg.ID,
		arg.Name,
		arg.Code,
		arg.Founded,
		arg.LogoUrl,
		arg.Country,
		arg.City,
		arg.Venue,
		arg.Source,
		arg.Associations,
		arg.LastSyncedAt,
	)
	return scanTeam(row)
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTeam(row scanner) (Team, error) {
	var i Team
	err := row.Scan(
		&i.ID,
		&i.ExternalID,
		&i.Name,
		&i.Code,
		&i.Founded,
		&i.LogoUrl,
		&i.Country,
		&i.City,
		&i.Venue,
		&i.Source,
		&i.Associations,
		&i.LastSyncedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
