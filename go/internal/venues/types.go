package venues

import (
	"errors"

	"github.com/mcdev12/kickoff/go/internal/models"
)

var (
	// ErrVenueNotFound is returned by repositories when no venue has the external id
	ErrVenueNotFound = errors.New("venue not found")
)

// VenueDescriptor is provider venue data. Every field except ExternalID may
// be absent; absence is explicit rather than an empty value.
type VenueDescriptor struct {
	ExternalID string
	Name       *string
	City       *string
	Country    *string
	Address    *string
	Capacity   *int
	Surface    *string
	ImageURL   *string
	Latitude   *float64
	Longitude  *float64
}

// CountryContext is the owning team's country, used when the venue has none
type CountryContext struct {
	Country     string
	CountryCode string
}

// UpsertVenueRequest is the full record written on every sync
type UpsertVenueRequest struct {
	ExternalID  string
	Name        string
	City        string
	Country     string
	CountryCode string
	Address     string
	Capacity    *int
	Surface     string
	ImageURL    string
	Coordinates *models.Coordinates
	Active      bool
}

// Result is the outcome of reconciling one venue
type Result struct {
	Outcome models.SyncOutcome
	Venue   *models.Venue
	Err     error
}
