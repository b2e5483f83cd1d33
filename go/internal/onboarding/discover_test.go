package onboarding

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mcdev12/kickoff/go/clients/football_api_client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	entries []football_api_client.LeagueEntry
	err     error
}

func (f fakeCatalog) GetLeaguesBySeason(ctx context.Context, season int) ([]football_api_client.LeagueEntry, error) {
	return f.entries, f.err
}

func catalogEntry(id int, name, kind string, season football_api_client.Season) football_api_client.LeagueEntry {
	code := "GB"
	return football_api_client.LeagueEntry{
		League:  football_api_client.League{ID: id, Name: name, Type: kind},
		Country: football_api_client.Country{Name: "England", Code: &code},
		Seasons: []football_api_client.Season{season},
	}
}

func usable(year int) football_api_client.Season {
	s := football_api_client.Season{Year: year, Start: "2024-08-16", End: "2025-05-25", Current: true}
	s.Coverage.Fixtures.Events = true
	return s
}

func TestDiscover(t *testing.T) {
	noEvents := usable(2024)
	noEvents.Coverage.Fixtures.Events = false
	notCurrent := usable(2024)
	notCurrent.Current = false

	catalog := fakeCatalog{entries: []football_api_client.LeagueEntry{
		catalogEntry(39, "Premier League", "League", usable(2024)),
		catalogEntry(45, "FA Cup", "Cup", usable(2024)),
		catalogEntry(40, "Championship", "League", noEvents),
		catalogEntry(41, "League One", "League", notCurrent),
		catalogEntry(42, "League Two", "League", usable(2023)),
	}}

	t.Run("all types", func(t *testing.T) {
		found, err := NewDiscoverer(catalog).Discover(context.Background(), 2024)
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "39", found[0].ExternalID)
		assert.Equal(t, "45", found[1].ExternalID)
	})

	t.Run("type filter", func(t *testing.T) {
		found, err := NewDiscoverer(catalog, "league").Discover(context.Background(), 2024)
		require.NoError(t, err)
		require.Len(t, found, 1)

		pl := found[0]
		assert.Equal(t, "Premier League", pl.Name)
		assert.Equal(t, "GB", pl.CountryCode)
		assert.Equal(t, "League", pl.Type)
		require.NotNil(t, pl.Season)
		assert.Equal(t, 2024, *pl.Season)
		require.NotNil(t, pl.SeasonStart)
		assert.Equal(t, time.Date(2024, 8, 16, 0, 0, 0, 0, time.UTC), *pl.SeasonStart)
		assert.Equal(t, time.Date(2025, 5, 25, 0, 0, 0, 0, time.UTC), *pl.SeasonEnd)
	})
}

func TestDiscover_NothingUsable(t *testing.T) {
	_, err := NewDiscoverer(fakeCatalog{}).Discover(context.Background(), 2024)
	assert.ErrorIs(t, err, ErrNoUsableData)
	assert.True(t, IsFatal(err))

	_, err = NewDiscoverer(fakeCatalog{err: errors.New("HTTP 403")}).Discover(context.Background(), 2024)
	assert.ErrorIs(t, err, ErrNoUsableData)
	assert.Contains(t, err.Error(), "HTTP 403")
}

func TestLeagueDescriptor_BadDatesLeaveBoundsUnset(t *testing.T) {
	season := usable(2024)
	season.End = "soon"

	desc := leagueDescriptor(catalogEntry(39, " Premier League ", "League", season), season)

	assert.Equal(t, "Premier League", desc.Name)
	assert.Nil(t, desc.SeasonStart)
	assert.Nil(t, desc.SeasonEnd)
}

func TestLeagueDescriptor_SubdivisionCodeBecomesCountryCode(t *testing.T) {
	season := usable(2024)
	entry := catalogEntry(39, "Premier League", "League", season)
	code := "GB-ENG"
	entry.Country.Code = &code

	desc := leagueDescriptor(entry, season)

	assert.Equal(t, "GB", desc.CountryCode)
}
