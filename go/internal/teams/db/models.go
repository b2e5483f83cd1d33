package db

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

type Team struct {
	ID           uuid.UUID             `json:"id"`
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
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}
