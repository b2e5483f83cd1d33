package models

import (
	"time"

	"github.com/google/uuid"
)

// Venue represents a stadium
type Venue struct {
	ID           uuid.UUID    `json:"id"`
	ExternalID   string       `json:"external_id"`
	Name         string       `json:"name"`
	City         string       `json:"city"`
	Country      string       `json:"country"`
	CountryCode  string       `json:"country_code"`
	Address      string       `json:"address"`
	Capacity     *int         `json:"capacity,omitempty"`
	Surface      string       `json:"surface"`
	ImageURL     string       `json:"image_url"`
	Coordinates  *Coordinates `json:"coordinates,omitempty"`
	Active       bool         `json:"active"`
	LastSyncedAt time.Time    `json:"last_synced_at"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
