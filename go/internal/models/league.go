package models

import (
	"time"

	"github.com/google/uuid"
)

// SeasonWindow is the date range of a league season
type SeasonWindow struct {
	StartYear int       `json:"start_year"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	IsCurrent bool      `json:"is_current"`
}

// League represents a competition synchronized from the upstream provider
type League struct {
	ID           uuid.UUID    `json:"id"`
	ExternalID   string       `json:"external_id"`
	Name         string       `json:"name"`
	Code         string       `json:"code"`
	Country      string       `json:"country"`
	CountryCode  string       `json:"country_code"`
	Tier         int          `json:"tier"`
	EmblemURL    string       `json:"emblem_url"`
	Season       SeasonWindow `json:"season"`
	Active       bool         `json:"active"`
	LastSyncedAt time.Time    `json:"last_synced_at"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
