package teams

import (
	"errors"
	"time"

	"github.com/mcdev12/kickoff/go/internal/models"
)

var (
	// ErrTeamNotFound is returned by repositories when no team has the external id
	ErrTeamNotFound = errors.New("team not found")
	// ErrTeamExists is returned by CreateTeam when the external id is taken
	ErrTeamExists = errors.New("team already exists")
)

// TeamDescriptor is provider team data with explicit absence
type TeamDescriptor struct {
	ExternalID string
	Name       string
	Code       *string
	Founded    *int
	LogoURL    *string
	Country    *string
	City       *string
	National   bool
	Venue      *VenueSnapshotDescriptor
}

// VenueSnapshotDescriptor is the home ground as seen from the team payload
type VenueSnapshotDescriptor struct {
	Name      *string
	Capacity  *int
	Latitude  *float64
	Longitude *float64
}

// LeagueRef identifies the league a team is being onboarded for
type LeagueRef struct {
	ExternalID string
	Name       string
}

// CreateTeamRequest represents the data needed to create a new team
type CreateTeamRequest struct {
	ExternalID   string
	Name         string
	Code         string
	Founded      *int
	LogoURL      string
	Country      string
	City         string
	Venue        *models.VenueSnapshot
	Source       string
	Associations []models.LeagueAssociation
	LastSyncedAt time.Time
}

// UpdateTeamRequest overwrites every non-association field. Associations are
// merged into the stored list, never replacing it.
type UpdateTeamRequest struct {
	Name         string
	Code         string
	Founded      *int
	LogoURL      string
	Country      string
	City         string
	Venue        *models.VenueSnapshot
	Source       string
	Associations []models.LeagueAssociation
	LastSyncedAt time.Time
}

// Result is the outcome of reconciling one team
type Result struct {
	Outcome models.SyncOutcome
	Team    *models.Team
	Err     error
}
