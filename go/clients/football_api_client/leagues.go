package football_api_client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

type League struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Logo string `json:"logo"`
}

type Country struct {
	Name string  `json:"name"`
	Code *string `json:"code"`
	Flag *string `json:"flag"`
}

type FixtureCoverage struct {
	Events             bool `json:"events"`
	Lineups            bool `json:"lineups"`
	StatisticsFixtures bool `json:"statistics_fixtures"`
	StatisticsPlayers  bool `json:"statistics_players"`
}

type Coverage struct {
	Fixtures  FixtureCoverage `json:"fixtures"`
	Standings bool            `json:"standings"`
	Players   bool            `json:"players"`
}

type Season struct {
	Year     int      `json:"year"`
	Start    string   `json:"start"`
	End      string   `json:"end"`
	Current  bool     `json:"current"`
	Coverage Coverage `json:"coverage"`
}

// LeagueEntry is one element of the /leagues response
type LeagueEntry struct {
	League  League   `json:"league"`
	Country Country  `json:"country"`
	Seasons []Season `json:"seasons"`
}

// SeasonFor returns the entry's season block for the given year
func (e LeagueEntry) SeasonFor(year int) (Season, bool) {
	for _, s := range e.Seasons {
		if s.Year == year {
			return s, true
		}
	}
	return Season{}, false
}

// GetLeaguesBySeason lists every league the provider covers for a season
func (c *FootballApiClient) GetLeaguesBySeason(ctx context.Context, season int) ([]LeagueEntry, error) {
	query := url.Values{}
	query.Set(SeasonParam, strconv.Itoa(season))

	body, err := c.Get(ctx, LeaguesEndpoint, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get leagues: %w", err)
	}

	leagues, _, err := decodeResponse[LeagueEntry](body)
	if err != nil {
		return nil, err
	}

	return leagues, nil
}
