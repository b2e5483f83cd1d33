package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type League struct {
	ID              uuid.UUID      `json:"id"`
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
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
