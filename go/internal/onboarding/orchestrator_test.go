package onboarding_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/kickoff/go/clients"
	"github.com/mcdev12/kickoff/go/clients/football_api_client"
	"github.com/mcdev12/kickoff/go/clients/geocoding_client"
	"github.com/mcdev12/kickoff/go/internal/geocoding"
	"github.com/mcdev12/kickoff/go/internal/leagues"
	"github.com/mcdev12/kickoff/go/internal/memstore"
	"github.com/mcdev12/kickoff/go/internal/models"
	"github.com/mcdev12/kickoff/go/internal/onboarding"
	"github.com/mcdev12/kickoff/go/internal/progress"
	"github.com/mcdev12/kickoff/go/internal/teams"
	"github.com/mcdev12/kickoff/go/internal/venues"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoster struct {
	mu      sync.Mutex
	entries map[string][]football_api_client.TeamEntry
	errs    map[string]error
	calls   []string
}

func (f *fakeRoster) GetTeamsByLeagueAndSeason(ctx context.Context, leagueID string, season int) ([]football_api_client.TeamEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, leagueID)
	if err := f.errs[leagueID]; err != nil {
		return nil, err
	}
	return f.entries[leagueID], nil
}

type countingWaiter struct {
	mu    sync.Mutex
	count int
}

func (w *countingWaiter) Wait(ctx context.Context) {
	w.mu.Lock()
	w.count++
	w.mu.Unlock()
}

// failingTeams fails the reconciliation of one team and passes the rest through
type failingTeams struct {
	inner  onboarding.TeamReconciler
	failID string
}

func (f failingTeams) ReconcileTeam(ctx context.Context, desc teams.TeamDescriptor, league teams.LeagueRef, season int) teams.Result {
	if desc.ExternalID == f.failID {
		return teams.Result{Outcome: models.SyncOutcomeError, Err: errors.New("boom")}
	}
	return f.inner.ReconcileTeam(ctx, desc, league, season)
}

type harness struct {
	clock   *clockwork.FakeClock
	store   *memstore.Store
	roster  *fakeRoster
	limiter *countingWaiter
	config  onboarding.OrchestratorConfig
	geoHits int
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		clock:   clockwork.NewFakeClockAt(time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)),
		roster:  &fakeRoster{entries: map[string][]football_api_client.TeamEntry{}, errs: map[string]error{}},
		limiter: &countingWaiter{},
	}
	h.store = memstore.New(h.clock)

	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		h.geoHits++
		mu.Unlock()
		if r.URL.Query().Get(geocoding_client.QueryParam) == "Ground X, York, England" {
			_, _ = w.Write([]byte(`[{"lat": "53.9", "lon": "-1.0"}]`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	geoClient := geocoding_client.NewGeocodingClient(server.URL, "geo-key", time.Second)
	resolver := geocoding.NewResolver(geoClient, nil, nil, geoClient.HasAPIKey())

	h.config = onboarding.OrchestratorConfig{
		Leagues: leagues.NewApp(h.store, h.clock, 0),
		Teams:   teams.NewApp(h.store, h.clock),
		Venues:  venues.NewApp(h.store, resolver, h.clock),
		Roster:  h.roster,
		Limiter: h.limiter,
		Clock:   h.clock,
	}
	return h
}

func (h *harness) orchestrator() *onboarding.Orchestrator {
	return onboarding.NewOrchestrator(h.config)
}

func intp(i int) *int { return &i }

func strp(s string) *string { return &s }

func flex(v float64) clients.FlexFloat { return clients.FlexFloat{Value: v, Valid: true} }

var premierLeague = leagues.LeagueDescriptor{ExternalID: "39", Name: "Premier League", Country: "England"}

func premierLeagueRoster() []football_api_client.TeamEntry {
	return []football_api_client.TeamEntry{
		{
			Team: football_api_client.Team{ID: intp(1), Name: "Team A", Country: strp("England")},
			Venue: &football_api_client.Venue{
				ID: intp(100), Name: strp("Stadium A"), City: strp("London"),
				Lat: flex(51.5), Lng: flex(-0.1),
			},
		},
		{
			Team: football_api_client.Team{ID: intp(2), Name: "Team B", Country: strp("England")},
			Venue: &football_api_client.Venue{
				ID: intp(101), Name: strp("Ground X"), City: strp("York"),
			},
		},
	}
}

func numberedRoster(n int) []football_api_client.TeamEntry {
	entries := make([]football_api_client.TeamEntry, 0, n)
	for i := 1; i <= n; i++ {
		entries = append(entries, football_api_client.TeamEntry{
			Team: football_api_client.Team{ID: intp(i), Name: "Team", Country: strp("England")},
			Venue: &football_api_client.Venue{
				ID: intp(1000 + i), Name: strp("Ground"), City: strp("Leeds"),
				Lat: flex(53.8), Lng: flex(-1.5),
			},
		})
	}
	return entries
}

func assertConserved(t *testing.T, s onboarding.EntityStats, attempted int) {
	t.Helper()
	assert.Equal(t, attempted, s.Created+s.Updated+s.Errors)
	assert.Equal(t, attempted, s.Attempted())
}

func TestOnboard_PremierLeague(t *testing.T) {
	h := newHarness(t)
	h.roster.entries["39"] = premierLeagueRoster()

	var events []progress.Event
	res := h.orchestrator().Onboard(context.Background(), premierLeague, func(e progress.Event) {
		events = append(events, e)
	})

	require.True(t, res.Success, res.ErrorMessage())
	assert.Empty(t, res.Warning)
	assert.Equal(t, 2024, res.Season)
	assert.Equal(t, onboarding.EntityStats{Created: 1}, res.Stats.League)
	assert.Equal(t, onboarding.EntityStats{Created: 2}, res.Stats.Team)
	assert.Equal(t, onboarding.EntityStats{Created: 2}, res.Stats.Venue)
	assert.Equal(t, []string{"39"}, h.roster.calls)
	assert.Equal(t, 2, h.limiter.count)
	assert.Equal(t, 1, h.geoHits)

	ctx := context.Background()
	league, err := h.store.GetLeagueByExternalID(ctx, "39")
	require.NoError(t, err)
	assert.Equal(t, "GB", league.CountryCode)
	assert.Equal(t, 1, league.Tier)

	v100, err := h.store.GetVenueByExternalID(ctx, "100")
	require.NoError(t, err)
	require.NotNil(t, v100.Coordinates)
	assert.Equal(t, [2]float64{-0.1, 51.5}, v100.Coordinates.Pair())

	v101, err := h.store.GetVenueByExternalID(ctx, "101")
	require.NoError(t, err)
	require.NotNil(t, v101.Coordinates)
	assert.Equal(t, [2]float64{-1.0, 53.9}, v101.Coordinates.Pair())
	assert.Equal(t, "England", v101.Country)
	assert.Equal(t, "GB", v101.CountryCode)

	teamB, err := h.store.GetTeamByExternalID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "York", teamB.City)
	require.Len(t, teamB.Associations, 1)
	assert.Equal(t, models.LeagueAssociation{
		LeagueExternalID: "39", LeagueName: "Premier League", Season: 2024, IsActive: true,
	}, teamB.Associations[0])

	require.Len(t, events, 4)
	assert.Equal(t, progress.StepLeague, events[0].Step)
	assert.Equal(t, progress.StepTeams, events[1].Step)
	last := events[3]
	assert.Equal(t, progress.StepProcessing, last.Step)
	assert.Equal(t, 2, last.Current)
	assert.Equal(t, 2, last.Total)
}

func TestOnboard_SecondRunUpdates(t *testing.T) {
	h := newHarness(t)
	h.roster.entries["39"] = premierLeagueRoster()
	ctx := context.Background()

	first := h.orchestrator().Onboard(ctx, premierLeague, nil)
	require.True(t, first.Success)

	venueBefore, err := h.store.GetVenueByExternalID(ctx, "101")
	require.NoError(t, err)

	h.clock.Advance(time.Hour)
	second := h.orchestrator().Onboard(ctx, premierLeague, nil)

	require.True(t, second.Success)
	assert.Equal(t, onboarding.EntityStats{Updated: 1}, second.Stats.League)
	assert.Equal(t, onboarding.EntityStats{Updated: 2}, second.Stats.Team)
	assert.Equal(t, onboarding.EntityStats{Updated: 2}, second.Stats.Venue)

	venueAfter, err := h.store.GetVenueByExternalID(ctx, "101")
	require.NoError(t, err)
	assert.Equal(t, venueBefore.ID, venueAfter.ID)
	assert.Equal(t, venueBefore.Coordinates, venueAfter.Coordinates)
	assert.True(t, venueAfter.LastSyncedAt.After(venueBefore.LastSyncedAt))

	leagueCount, teamCount, venueCount := h.store.Counts()
	assert.Equal(t, 1, leagueCount)
	assert.Equal(t, 2, teamCount)
	assert.Equal(t, 2, venueCount)
}

func TestOnboard_EmptyRoster(t *testing.T) {
	h := newHarness(t)

	res := h.orchestrator().Onboard(context.Background(), premierLeague, nil)

	assert.True(t, res.Success)
	assert.Equal(t, onboarding.WarningNoTeams, res.Warning)
	assert.Nil(t, res.Error)
	assert.Equal(t, onboarding.EntityStats{Created: 1}, res.Stats.League)
	assert.Zero(t, res.Stats.Team)
	assert.Zero(t, res.Stats.Venue)
	assert.Zero(t, h.limiter.count)
}

func TestOnboard_RosterFetchFailure(t *testing.T) {
	h := newHarness(t)
	h.roster.errs["39"] = errors.New("HTTP 500")

	res := h.orchestrator().Onboard(context.Background(), premierLeague, nil)

	assert.False(t, res.Success)
	var syncErr *onboarding.LeagueSyncError
	require.ErrorAs(t, res.Error, &syncErr)
	assert.Equal(t, "39", syncErr.LeagueExternalID)
	assert.Contains(t, res.ErrorMessage(), "HTTP 500")
	assert.Equal(t, onboarding.EntityStats{Created: 1}, res.Stats.League)
	assert.Zero(t, res.Stats.Team)
}

func TestOnboard_LeagueFailureSkipsRoster(t *testing.T) {
	h := newHarness(t)

	res := h.orchestrator().Onboard(context.Background(), leagues.LeagueDescriptor{ExternalID: "39"}, nil)

	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Error, leagues.ErrMissingName)
	assert.Equal(t, onboarding.EntityStats{Errors: 1}, res.Stats.League)
	assert.Empty(t, h.roster.calls)
}

func TestOnboard_TeamFailureDoesNotStopLoop(t *testing.T) {
	h := newHarness(t)
	h.roster.entries["39"] = numberedRoster(5)
	h.config.Teams = failingTeams{inner: h.config.Teams, failID: "3"}

	res := h.orchestrator().Onboard(context.Background(), premierLeague, nil)

	require.True(t, res.Success)
	assert.Equal(t, onboarding.EntityStats{Created: 4, Errors: 1}, res.Stats.Team)
	assert.Equal(t, onboarding.EntityStats{Created: 5}, res.Stats.Venue)
	assertConserved(t, res.Stats.Team, 5)
	assertConserved(t, res.Stats.Venue, 5)

	require.Len(t, res.Failures, 1)
	var entityErr *onboarding.EntitySyncError
	require.ErrorAs(t, res.Failures[0], &entityErr)
	assert.Equal(t, models.EntityKindTeam, entityErr.Kind)
	assert.Equal(t, "3", entityErr.ExternalID)

	ctx := context.Background()
	for _, id := range []string{"4", "5"} {
		_, err := h.store.GetTeamByExternalID(ctx, id)
		assert.NoError(t, err, "team %s", id)
	}
	_, err := h.store.GetTeamByExternalID(ctx, "3")
	assert.ErrorIs(t, err, teams.ErrTeamNotFound)
}

func TestOnboard_MissingIdentifiers(t *testing.T) {
	h := newHarness(t)
	h.roster.entries["39"] = []football_api_client.TeamEntry{
		{
			Team:  football_api_client.Team{Name: "No Id FC"},
			Venue: &football_api_client.Venue{Name: strp("Nameless Park"), City: strp("Hull")},
		},
		{
			Team:  football_api_client.Team{ID: intp(7), Name: "Seven FC"},
			Venue: &football_api_client.Venue{ID: intp(700), Name: strp("Park"), Lat: flex(53.7), Lng: flex(-0.3)},
		},
	}

	res := h.orchestrator().Onboard(context.Background(), premierLeague, nil)

	require.True(t, res.Success)
	assert.Equal(t, onboarding.EntityStats{Created: 1, Errors: 1}, res.Stats.Team)
	assert.Equal(t, onboarding.EntityStats{Created: 1, Skipped: 1}, res.Stats.Venue)
	assertConserved(t, res.Stats.Venue, 1)
	require.Len(t, res.Failures, 1)
	assert.ErrorIs(t, res.Failures[0], models.ErrMissingExternalID)
}

func TestOnboard_UnparsableCoordinatesFallBackToGeocoding(t *testing.T) {
	h := newHarness(t)
	var roster []football_api_client.TeamEntry
	require.NoError(t, json.Unmarshal([]byte(`[
		{"team": {"id": 1, "name": "Team A", "country": "England"}, "venue": {"id": 100, "name": "Stadium A", "city": "London", "lat": 51.5, "lng": -0.1}},
		{"team": {"id": 2, "name": "Team B", "country": "England"}, "venue": {"id": 101, "name": "Ground X", "city": "York", "lat": "n/a", "lng": "n/a"}},
		{"team": {"id": 3, "name": "Team C", "country": "England"}, "venue": {"id": 102, "name": "Stadium C", "city": "Leeds", "lat": "53.8", "lng": "-1.5"}}
	]`), &roster))
	h.roster.entries["39"] = roster

	res := h.orchestrator().Onboard(context.Background(), premierLeague, nil)

	require.True(t, res.Success, res.ErrorMessage())
	assert.Equal(t, onboarding.EntityStats{Created: 3}, res.Stats.Team)
	assert.Equal(t, onboarding.EntityStats{Created: 3}, res.Stats.Venue)
	assert.Equal(t, 1, h.geoHits)

	v101, err := h.store.GetVenueByExternalID(context.Background(), "101")
	require.NoError(t, err)
	require.NotNil(t, v101.Coordinates)
	assert.Equal(t, [2]float64{-1.0, 53.9}, v101.Coordinates.Pair())
}

func TestOnboard_SharedVenueReconciledOnce(t *testing.T) {
	h := newHarness(t)
	shared := &football_api_client.Venue{ID: intp(900), Name: strp("Shared Ground"), Lat: flex(45.4), Lng: flex(9.1)}
	h.roster.entries["39"] = []football_api_client.TeamEntry{
		{Team: football_api_client.Team{ID: intp(1), Name: "Red"}, Venue: shared},
		{Team: football_api_client.Team{ID: intp(2), Name: "Blue"}, Venue: shared},
	}

	res := h.orchestrator().Onboard(context.Background(), premierLeague, nil)

	require.True(t, res.Success)
	assert.Equal(t, onboarding.EntityStats{Created: 2}, res.Stats.Team)
	assert.Equal(t, onboarding.EntityStats{Created: 1}, res.Stats.Venue)
}

func TestOnboard_AssociationsStayUnique(t *testing.T) {
	h := newHarness(t)
	h.roster.entries["39"] = premierLeagueRoster()
	h.roster.entries["45"] = premierLeagueRoster()[:1]
	ctx := context.Background()

	cup := leagues.LeagueDescriptor{ExternalID: "45", Name: "FA Cup", Country: "England"}
	for i := 0; i < 3; i++ {
		require.True(t, h.orchestrator().Onboard(ctx, premierLeague, nil).Success)
		require.True(t, h.orchestrator().Onboard(ctx, cup, nil).Success)
	}

	teamA, err := h.store.GetTeamByExternalID(ctx, "1")
	require.NoError(t, err)
	require.Len(t, teamA.Associations, 2)
	assert.Equal(t, "39", teamA.Associations[0].LeagueExternalID)
	assert.Equal(t, "45", teamA.Associations[1].LeagueExternalID)

	teamB, err := h.store.GetTeamByExternalID(ctx, "2")
	require.NoError(t, err)
	assert.Len(t, teamB.Associations, 1)

	listed, err := h.store.ListTeamsByLeague(ctx, "45", 2024)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "1", listed[0].ExternalID)
}

func TestOnboard_CancelledDuringRoster(t *testing.T) {
	h := newHarness(t)
	h.roster.entries["39"] = numberedRoster(3)

	ctx, cancel := context.WithCancel(context.Background())
	res := h.orchestrator().Onboard(ctx, premierLeague, func(e progress.Event) {
		if e.Step == progress.StepProcessing && e.Current == 1 {
			cancel()
		}
	})

	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Error, context.Canceled)
	assert.Equal(t, 1, res.Stats.Team.Created)
}
