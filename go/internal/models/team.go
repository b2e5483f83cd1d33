package models

import (
	"time"

	"github.com/google/uuid"
)

// LeagueAssociation records that a team played in a league for a season
type LeagueAssociation struct {
	LeagueExternalID string `json:"league_external_id"`
	LeagueName       string `json:"league_name"`
	Season           int    `json:"season"`
	IsActive         bool   `json:"is_active"`
}

// VenueSnapshot is a denormalized copy of the home ground for display
type VenueSnapshot struct {
	Name        string       `json:"name"`
	Capacity    *int         `json:"capacity,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Team represents a club in the system
type Team struct {
	ID           uuid.UUID           `json:"id"`
	ExternalID   string              `json:"external_id"`
	Name         string              `json:"name"`
	Code         string              `json:"code"`
	Founded      *int                `json:"founded,omitempty"`
	LogoURL      string              `json:"logo_url"`
	Country      string              `json:"country"`
	City         string              `json:"city"`
	Venue        *VenueSnapshot      `json:"venue,omitempty"`
	Source       string              `json:"source"`
	LastSyncedAt time.Time           `json:"last_synced_at"`
	Associations []LeagueAssociation `json:"associations"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// HasAssociation reports whether the team already has an entry for (league, season)
func (t *Team) HasAssociation(leagueExternalID string, season int) bool {
	for _, a := range t.Associations {
		if a.LeagueExternalID == leagueExternalID && a.Season == season {
			return true
		}
	}
	return false
}

// AddAssociation appends the association unless one exists for the same
// (league, season). Returns true when it was appended.
func (t *Team) AddAssociation(assoc LeagueAssociation) bool {
	if t.HasAssociation(assoc.LeagueExternalID, assoc.Season) {
		return false
	}
	t.Associations = append(t.Associations, assoc)
	return true
}

// MergeAssociations returns base followed by every entry of extra whose
// (league, season) is not already present. Order of base is preserved.
func MergeAssociations(base, extra []LeagueAssociation) []LeagueAssociation {
	merged := Team{Associations: make([]LeagueAssociation, 0, len(base)+len(extra))}
	for _, a := range base {
		merged.AddAssociation(a)
	}
	for _, a := range extra {
		merged.AddAssociation(a)
	}
	return merged.Associations
}
