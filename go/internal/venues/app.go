package venues

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/kickoff/go/internal/countries"
	"github.com/mcdev12/kickoff/go/internal/geocoding"
	"github.com/mcdev12/kickoff/go/internal/models"
	"github.com/rs/zerolog/log"
)

// VenueRepository defines what the app layer needs from the repository
type VenueRepository interface {
	// UpsertVenue replaces the venue with the same external id or inserts it.
	// created reports which of the two happened.
	UpsertVenue(ctx context.Context, req UpsertVenueRequest, syncedAt time.Time) (venue *models.Venue, created bool, err error)
	GetVenueByExternalID(ctx context.Context, externalID string) (*models.Venue, error)
	ListVenuesByCountryCode(ctx context.Context, countryCode string) ([]models.Venue, error)
}

// Geocoder resolves missing coordinates
type Geocoder interface {
	ResolveAddress(ctx context.Context, address string) (models.Coordinates, bool)
	ResolvePlace(ctx context.Context, name, city, country string) (models.Coordinates, bool)
}

// App handles venue reconciliation
type App struct {
	repo     VenueRepository
	geocoder Geocoder
	clock    clockwork.Clock
}

// NewApp creates a new venues App. geocoder may be nil, in which case venues
// without provider coordinates stay unresolved.
func NewApp(repo VenueRepository, geocoder Geocoder, clock clockwork.Clock) *App {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &App{
		repo:     repo,
		geocoder: geocoder,
		clock:    clock,
	}
}

// ReconcileVenue upserts one provider venue. Failures are reported in the
// result, never returned.
func (a *App) ReconcileVenue(ctx context.Context, desc VenueDescriptor, fallback CountryContext) Result {
	externalID := strings.TrimSpace(desc.ExternalID)
	if externalID == "" {
		log.Debug().Msg("skipping venue without external id")
		return Result{Outcome: models.SyncOutcomeSkipped}
	}

	req := a.buildRequest(desc, fallback)
	req.ExternalID = externalID
	req.Coordinates = a.resolveCoordinates(ctx, desc, req)

	venue, created, err := a.repo.UpsertVenue(ctx, req, a.clock.Now().UTC())
	if err != nil {
		log.Error().Err(err).Str("venue_external_id", externalID).Msg("failed to upsert venue")
		return Result{
			Outcome: models.SyncOutcomeError,
			Err:     fmt.Errorf("failed to upsert venue %s: %w", externalID, err),
		}
	}

	outcome := models.SyncOutcomeUpdated
	if created {
		outcome = models.SyncOutcomeCreated
	}

	log.Debug().
		Str("venue_external_id", externalID).
		Str("name", venue.Name).
		Bool("has_coordinates", venue.Coordinates != nil).
		Str("outcome", string(outcome)).
		Msg("reconciled venue")

	return Result{Outcome: outcome, Venue: venue}
}

func (a *App) buildRequest(desc VenueDescriptor, fallback CountryContext) UpsertVenueRequest {
	country := value(desc.Country)
	countryCode := ""
	if country == "" {
		country = fallback.Country
		countryCode = fallback.CountryCode
	}
	if countryCode == "" {
		countryCode = countries.CodeOr(country, fallback.CountryCode)
	}

	return UpsertVenueRequest{
		Name:        value(desc.Name),
		City:        value(desc.City),
		Country:     country,
		CountryCode: countryCode,
		Address:     value(desc.Address),
		Capacity:    desc.Capacity,
		Surface:     value(desc.Surface),
		ImageURL:    value(desc.ImageURL),
		Active:      true,
	}
}

// resolveCoordinates prefers provider coordinates, then an address lookup,
// then a (name, city) lookup.
func (a *App) resolveCoordinates(ctx context.Context, desc VenueDescriptor, req UpsertVenueRequest) *models.Coordinates {
	if coords := models.CoordinatesFromPair(desc.Longitude, desc.Latitude); coords != nil {
		return coords
	}
	if a.geocoder == nil {
		return nil
	}

	var (
		coords models.Coordinates
		ok     bool
	)
	switch {
	case req.Address != "":
		coords, ok = a.geocoder.ResolveAddress(ctx, geocoding.JoinQuery(req.Address, req.City, req.Country))
	case req.Name != "" && req.City != "":
		coords, ok = a.geocoder.ResolvePlace(ctx, req.Name, req.City, req.Country)
	default:
		return nil
	}

	if !ok {
		log.Info().Str("venue_external_id", desc.ExternalID).Str("name", req.Name).Msg("venue coordinates unresolved")
		return nil
	}
	return &coords
}

// GetVenueByExternalID retrieves a venue by its provider id
func (a *App) GetVenueByExternalID(ctx context.Context, externalID string) (*models.Venue, error) {
	venue, err := a.repo.GetVenueByExternalID(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get venue by external ID: %w", err)
	}
	return venue, nil
}

// ListVenuesByCountryCode retrieves all venues in a country
func (a *App) ListVenuesByCountryCode(ctx context.Context, countryCode string) ([]models.Venue, error) {
	venues, err := a.repo.ListVenuesByCountryCode(ctx, strings.ToUpper(countryCode))
	if err != nil {
		return nil, fmt.Errorf("failed to list venues by country: %w", err)
	}
	return venues, nil
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
