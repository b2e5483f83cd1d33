// source: leagues.sql

package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
)

const getLeagueByExternalID = `-- name: GetLeagueByExternalID :one
SELECT id, external_id, name, code, country, country_code, tier, emblem_url, season_start_year, season_start, season_end, season_is_current, active, last_synced_at, created_at, updated_at FROM leagues
WHERE external_id = $1
`

func (q *Queries) GetLeagueByExternalID(ctx context.Context, externalID string) (League, error) {
	row := q.db.QueryRowContext(ctx, getLeagueByExternalID, externalID)
	return scanLeague(row)
}

const listExistingExternalIDs = `-- name: ListExistingExternalIDs :many
SELECT external_id FROM leagues
WHERE external_id = ANY($1::text[])
`

func (q *Queries) ListExistingExternalIDs(ctx context.Context, externalIds []string) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listExistingExternalIDs, pq.Array(externalIds))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var external_id string
		if err := rows.Scan(&external_id); err != nil {
			return nil, err
		}
		items = append(items, external_id)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listLeagues = `-- name: ListLeagues :many
SELECT id, external_id, name, code, country, country_code, tier, emblem_url, season_start_year, season_start, season_end, season_is_current, active, last_synced_at, created_at, updated_at FROM leagues
ORDER BY country_code, tier, name
`

func (q *Queries) ListLeagues(ctx context.Context) ([]League, error) {
	rows, err := q.db.QueryContext(ctx, listLeagues)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []League
	for rows.Next() {
		i, err := scanLeague(rows)
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

const upsertLeague = `-- name: UpsertLeague :one
INSERT INTO leagues (
    external_id, name, code, country, country_code, tier, emblem_url, season_start_year, season_start, season_end, season_is_current, active, last_synced_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
)
ON CONFLICT (external_id) DO UPDATE SET
    name = EXCLUDED.name,
    code = EXCLUDED.code,
    country = EXCLUDED.country,
    country_code = EXCLUDED.country_code,
    tier = EXCLUDED.tier,
    emblem_url = EXCLUDED.emblem_url,
    season_start_year = EXCLUDED.season_start_year,
    season_start = EXCLUDED.season_start,
    season_end = EXCLUDED.season_end,
    season_is_current = EXCLUDED.season_is_current,
    active = EXCLUDED.active,
    last_synced_at = EXCLUDED.last_synced_at,
    updated_at = NOW()
RETURNING id, external_id, name, code, country, country_code, tier, emblem_url, season_start_year, season_start, season_end, season_is_current, active, last_synced_at, created_at, updated_at, (xmax = 0) AS inserted
`

type UpsertLeagueParams struct {
	ExternalID      string         `json:"external_id"`
	Name            string         `json:"name"`
	Code            sql.NullString `json:"code"`
	Country         sql.NullString `json:"country"`
	CountryCode     sql.NullString `json:"country_code"`
	Tier            int32          `json:"tier"`
	EmblemUrl       sql.NullString `json:"emblem_url"`
	SeasonStartYear int32          `json:"season_start_year"`
	SeasonStart     time.Time      `json:"season_start"`
	SeasonEnd       time.Time      `json:"season_end"`
	SeasonIsCurrent bool           `json:"season_is_current"`
	Active          bool           `json:"active"`
	LastSyncedAt    time.Time      `json:"last_synced_at"`
}

type UpsertLeagueRow struct {
	League
	Inserted bool `json:"inserted"`
}

func (q *Queries) UpsertLeague(ctx context.Context, arg UpsertLeagueParams) (UpsertLeagueRow, error) {
	row := q.db.QueryRowContext(ctx, upsertLeague,
		arg.ExternalID,
		arg.Name,
		arg.Code,
		arg.Country,
		arg.CountryCode,
		arg.Tier,
		arg.EmblemUrl,
		arg.SeasonStartYear,
		arg.SeasonStart,
		arg.SeasonEnd,
		arg.SeasonIsCurrent,
		arg.Active,
		arg.LastSyncedAt,
	)
	var i UpsertLeagueRow
	err := row.Scan(
		&i.ID,
		&i.ExternalID,
		&i.Name,
		&i.Code,
		&i.Country,
		&i.CountryCode,
		&i.Tier,
		&i.EmblemUrl,
		&i.SeasonStartYear,
		&i.SeasonStart,
		&i.SeasonEnd,
		&i.SeasonIsCurrent,
		&i.Active,
		&i.LastSyncedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.Inserted,
	)
	return i, err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanLeague(row scanner) (League, error) {
	var i League
	err := row.Scan(
		&i.ID,
		&i.ExternalID,
		&i.Name,
		&i.Code,
		&i.Country,
		&i.CountryCode,
		&i.Tier,
		&i.EmblemUrl,
		&i.SeasonStartYear,
		&i.SeasonStart,
		&i.SeasonEnd,
		&i.SeasonIsCurrent,
		&i.Active,
		&i.LastSyncedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
