package venues_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/kickoff/go/internal/memstore"
	"github.com/mcdev12/kickoff/go/internal/models"
	"github.com/mcdev12/kickoff/go/internal/venues"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type geocodeCall struct {
	method string
	args   []string
}

type fakeGeocoder struct {
	coords *models.Coordinates
	calls  []geocodeCall
}

func (g *fakeGeocoder) ResolveAddress(ctx context.Context, address string) (models.Coordinates, bool) {
	g.calls = append(g.calls, geocodeCall{method: "address", args: []string{address}})
	if g.coords == nil {
		return models.Coordinates{}, false
	}
	return *g.coords, true
}

func (g *fakeGeocoder) ResolvePlace(ctx context.Context, name, city, country string) (models.Coordinates, bool) {
	g.calls = append(g.calls, geocodeCall{method: "place", args: []string{name, city, country}})
	if g.coords == nil {
		return models.Coordinates{}, false
	}
	return *g.coords, true
}

type failingRepo struct {
	*memstore.Store
}

func (f failingRepo) UpsertVenue(ctx context.Context, req venues.UpsertVenueRequest, syncedAt time.Time) (*models.Venue, bool, error) {
	return nil, false, errors.New("connection reset")
}

func str(s string) *string { return &s }

func num(f float64) *float64 { return &f }

func newApp(geocoder venues.Geocoder) (*venues.App, *memstore.Store) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC))
	store := memstore.New(clock)
	return venues.NewApp(store, geocoder, clock), store
}

var england = venues.CountryContext{Country: "England", CountryCode: "GB"}

func TestReconcileVenue_ProviderCoordinates(t *testing.T) {
	geocoder := &fakeGeocoder{}
	app, store := newApp(geocoder)
	ctx := context.Background()

	capacity := 60000
	res := app.ReconcileVenue(ctx, venues.VenueDescriptor{
		ExternalID: "100",
		Name:       str("Stadium A"),
		City:       str("London"),
		Address:    str("1 Road"),
		Capacity:   &capacity,
		Latitude:   num(51.5),
		Longitude:  num(-0.1),
	}, england)

	require.NoError(t, res.Err)
	assert.Equal(t, models.SyncOutcomeCreated, res.Outcome)
	assert.Empty(t, geocoder.calls, "provider coordinates need no lookup")

	stored, err := store.GetVenueByExternalID(ctx, "100")
	require.NoError(t, err)
	require.NotNil(t, stored.Coordinates)
	assert.Equal(t, [2]float64{-0.1, 51.5}, stored.Coordinates.Pair())
	assert.Equal(t, "England", stored.Country)
	assert.Equal(t, "GB", stored.CountryCode)
	assert.Equal(t, 60000, *stored.Capacity)
	assert.True(t, stored.Active)
}

func TestReconcileVenue_GeocodesByPlace(t *testing.T) {
	geocoder := &fakeGeocoder{coords: &models.Coordinates{Longitude: -1.0, Latitude: 53.9}}
	app, store := newApp(geocoder)
	ctx := context.Background()

	res := app.ReconcileVenue(ctx, venues.VenueDescriptor{
		ExternalID: "101",
		Name:       str("Ground X"),
		City:       str("York"),
	}, england)

	require.NoError(t, res.Err)
	assert.Equal(t, models.SyncOutcomeCreated, res.Outcome)
	require.Len(t, geocoder.calls, 1)
	assert.Equal(t, geocodeCall{method: "place", args: []string{"Ground X", "York", "England"}}, geocoder.calls[0])

	stored, err := store.GetVenueByExternalID(ctx, "101")
	require.NoError(t, err)
	require.NotNil(t, stored.Coordinates)
	assert.Equal(t, [2]float64{-1.0, 53.9}, stored.Coordinates.Pair())
}

func TestReconcileVenue_GeocodesByAddress(t *testing.T) {
	geocoder := &fakeGeocoder{coords: &models.Coordinates{Longitude: -2.2, Latitude: 53.4}}
	app, _ := newApp(geocoder)

	res := app.ReconcileVenue(context.Background(), venues.VenueDescriptor{
		ExternalID: "102",
		Name:       str("Old Ground"),
		City:       str("Manchester"),
		Address:    str("Sir Matt Busby Way"),
		Latitude:   num(53.4),
	}, england)

	require.NoError(t, res.Err)
	require.Len(t, geocoder.calls, 1)
	assert.Equal(t, geocodeCall{method: "address", args: []string{"Sir Matt Busby Way, Manchester, England"}}, geocoder.calls[0])
	require.NotNil(t, res.Venue.Coordinates)
	assert.Equal(t, -2.2, res.Venue.Coordinates.Longitude)
}

func TestReconcileVenue_Unresolved(t *testing.T) {
	tests := []struct {
		name      string
		geocoder  *fakeGeocoder
		desc      venues.VenueDescriptor
		wantCalls int
	}{
		{
			name:      "geocoder miss",
			geocoder:  &fakeGeocoder{},
			desc:      venues.VenueDescriptor{ExternalID: "103", Name: str("Ground Y"), City: str("Hull")},
			wantCalls: 1,
		},
		{
			name:      "nothing to query",
			geocoder:  &fakeGeocoder{coords: &models.Coordinates{Longitude: 1, Latitude: 1}},
			desc:      venues.VenueDescriptor{ExternalID: "104", Name: str("Ground Z")},
			wantCalls: 0,
		},
		{
			name:      "lone latitude is dropped",
			geocoder:  &fakeGeocoder{},
			desc:      venues.VenueDescriptor{ExternalID: "105", Latitude: num(10)},
			wantCalls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, store := newApp(tt.geocoder)
			res := app.ReconcileVenue(context.Background(), tt.desc, england)

			require.NoError(t, res.Err)
			assert.Equal(t, models.SyncOutcomeCreated, res.Outcome, "an unresolved venue is still stored")
			assert.Len(t, tt.geocoder.calls, tt.wantCalls)

			stored, err := store.GetVenueByExternalID(context.Background(), tt.desc.ExternalID)
			require.NoError(t, err)
			assert.Nil(t, stored.Coordinates)
		})
	}
}

func TestReconcileVenue_NilGeocoder(t *testing.T) {
	app, _ := newApp(nil)
	res := app.ReconcileVenue(context.Background(), venues.VenueDescriptor{
		ExternalID: "106",
		Name:       str("Ground X"),
		City:       str("York"),
	}, england)

	require.NoError(t, res.Err)
	assert.Nil(t, res.Venue.Coordinates)
}

func TestReconcileVenue_MissingExternalIDIsSkipped(t *testing.T) {
	app, store := newApp(&fakeGeocoder{})
	res := app.ReconcileVenue(context.Background(), venues.VenueDescriptor{Name: str("Nameless")}, england)

	assert.Equal(t, models.SyncOutcomeSkipped, res.Outcome)
	assert.NoError(t, res.Err)
	_, _, venueCount := store.Counts()
	assert.Zero(t, venueCount)
}

func TestReconcileVenue_OwnCountryWins(t *testing.T) {
	app, _ := newApp(nil)
	res := app.ReconcileVenue(context.Background(), venues.VenueDescriptor{
		ExternalID: "107",
		Country:    str("Wales"),
	}, venues.CountryContext{Country: "Spain", CountryCode: "ES"})

	require.NoError(t, res.Err)
	assert.Equal(t, "Wales", res.Venue.Country)
	assert.Equal(t, "GB", res.Venue.CountryCode)
}

func TestReconcileVenue_Idempotent(t *testing.T) {
	geocoder := &fakeGeocoder{coords: &models.Coordinates{Longitude: -1.0, Latitude: 53.9}}
	app, store := newApp(geocoder)
	ctx := context.Background()
	desc := venues.VenueDescriptor{ExternalID: "101", Name: str("Ground X"), City: str("York")}

	first := app.ReconcileVenue(ctx, desc, england)
	require.NoError(t, first.Err)
	second := app.ReconcileVenue(ctx, desc, england)
	require.NoError(t, second.Err)

	assert.Equal(t, models.SyncOutcomeCreated, first.Outcome)
	assert.Equal(t, models.SyncOutcomeUpdated, second.Outcome)
	assert.Equal(t, first.Venue.ID, second.Venue.ID)
	assert.Equal(t, first.Venue.Coordinates, second.Venue.Coordinates)

	_, _, venueCount := store.Counts()
	assert.Equal(t, 1, venueCount)
}

func TestReconcileVenue_PersistenceFailure(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := memstore.New(clock)
	app := venues.NewApp(failingRepo{store}, nil, clock)

	res := app.ReconcileVenue(context.Background(), venues.VenueDescriptor{ExternalID: "108"}, england)

	assert.Equal(t, models.SyncOutcomeError, res.Outcome)
	assert.ErrorContains(t, res.Err, "connection reset")
	_, err := store.GetVenueByExternalID(context.Background(), "108")
	assert.ErrorIs(t, err, venues.ErrVenueNotFound)
}
