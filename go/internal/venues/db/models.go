package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Venue struct {
	ID           uuid.UUID       `json:"id"`
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
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
