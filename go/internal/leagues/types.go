package leagues

import (
	"errors"
	"time"

	"github.com/mcdev12/kickoff/go/internal/models"
)

var (
	// ErrLeagueNotFound is returned by repositories when no league has the external id
	ErrLeagueNotFound = errors.New("league not found")
	// ErrMissingName rejects league descriptors without a display name
	ErrMissingName = errors.New("missing league name")
)

// LeagueDescriptor describes a league to onboard, either from the seed file
// or from provider discovery. Season and SeasonStart/SeasonEnd are optional
// overrides of the cutover rule.
type LeagueDescriptor struct {
	ExternalID  string     `yaml:"external_id" json:"external_id"`
	Name        string     `yaml:"name" json:"name"`
	Country     string     `yaml:"country" json:"country"`
	CountryCode string     `yaml:"country_code,omitempty" json:"country_code,omitempty"`
	Tier        *int       `yaml:"tier,omitempty" json:"tier,omitempty"`
	Code        string     `yaml:"code,omitempty" json:"code,omitempty"`
	EmblemURL   string     `yaml:"emblem_url,omitempty" json:"emblem_url,omitempty"`
	Type        string     `yaml:"type,omitempty" json:"type,omitempty"`
	Season      *int       `yaml:"season,omitempty" json:"season,omitempty"`
	SeasonStart *time.Time `yaml:"season_start,omitempty" json:"season_start,omitempty"`
	SeasonEnd   *time.Time `yaml:"season_end,omitempty" json:"season_end,omitempty"`
}

// UpsertLeagueRequest is the full record written on every sync
type UpsertLeagueRequest struct {
	ExternalID  string
	Name        string
	Code        string
	Country     string
	CountryCode string
	Tier        int
	EmblemURL   string
	Season      models.SeasonWindow
	Active      bool
}

// Result is the outcome of reconciling one league
type Result struct {
	Outcome models.SyncOutcome
	League  *models.League
	Err     error
}
