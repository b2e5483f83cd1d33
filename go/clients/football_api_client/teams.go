package football_api_client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/mcdev12/kickoff/go/clients"
	"github.com/rs/zerolog/log"
)

type Venue struct {
	ID       *int              `json:"id"`
	Name     *string           `json:"name"`
	Address  *string           `json:"address"`
	City     *string           `json:"city"`
	Country  *string           `json:"country"`
	Capacity *int              `json:"capacity"`
	Surface  *string           `json:"surface"`
	Image    *string           `json:"image"`
	Lat      clients.FlexFloat `json:"lat"`
	Lng      clients.FlexFloat `json:"lng"`
}

type Team struct {
	ID       *int    `json:"id"`
	Name     string  `json:"name"`
	Code     *string `json:"code"`
	Country  *string `json:"country"`
	Founded  *int    `json:"founded"`
	National bool    `json:"national"`
	Logo     *string `json:"logo"`
	Venue    *Venue  `json:"venue,omitempty"`
}

// TeamEntry is one element of the /teams response
type TeamEntry struct {
	Team  Team   `json:"team"`
	Venue *Venue `json:"venue"`
}

// HomeVenue returns the entry's venue, preferring the top-level block over the
// one nested in the team. Returns nil when neither carries an id.
func (e TeamEntry) HomeVenue() *Venue {
	if e.Venue != nil && e.Venue.ID != nil {
		return e.Venue
	}
	if e.Team.Venue != nil && e.Team.Venue.ID != nil {
		return e.Team.Venue
	}
	return nil
}

// VenueData returns HomeVenue when there is one, else any venue block even
// without an id
func (e TeamEntry) VenueData() *Venue {
	if v := e.HomeVenue(); v != nil {
		return v
	}
	if e.Venue != nil {
		return e.Venue
	}
	return e.Team.Venue
}

// GetTeamsByLeagueAndSeason fetches the roster of a league for one season
func (c *FootballApiClient) GetTeamsByLeagueAndSeason(ctx context.Context, leagueID string, season int) ([]TeamEntry, error) {
	query := url.Values{}
	query.Set(LeagueParam, leagueID)
	query.Set(SeasonParam, strconv.Itoa(season))

	body, err := c.Get(ctx, TeamsEndpoint, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get teams: %w", err)
	}

	teams, paging, err := decodeResponse[TeamEntry](body)
	if err != nil {
		return nil, err
	}

	// Rosters are assumed to fit in a single page
	if paging.Total > 1 {
		log.Warn().
			Str("league_id", leagueID).
			Int("season", season).
			Int("pages", paging.Total).
			Msg("team roster is paginated, only the first page was read")
	}

	return teams, nil
}
