package onboarding

import (
	"strconv"
	"strings"
	"time"

	"github.com/mcdev12/kickoff/go/clients/football_api_client"
	"github.com/mcdev12/kickoff/go/internal/countries"
	"github.com/mcdev12/kickoff/go/internal/leagues"
	"github.com/mcdev12/kickoff/go/internal/teams"
	"github.com/mcdev12/kickoff/go/internal/venues"
)

func externalID(id *int) string {
	if id == nil {
		return ""
	}
	return strconv.Itoa(*id)
}

// teamDescriptor converts a roster entry. The city comes from the home venue
// because the provider has no team city.
func teamDescriptor(entry football_api_client.TeamEntry) teams.TeamDescriptor {
	desc := teams.TeamDescriptor{
		ExternalID: externalID(entry.Team.ID),
		Name:       entry.Team.Name,
		Code:       entry.Team.Code,
		Founded:    entry.Team.Founded,
		LogoURL:    entry.Team.Logo,
		Country:    entry.Team.Country,
		National:   entry.Team.National,
	}

	if v := entry.VenueData(); v != nil {
		desc.City = v.City
		desc.Venue = &teams.VenueSnapshotDescriptor{
			Name:      v.Name,
			Capacity:  v.Capacity,
			Latitude:  v.Lat.Ptr(),
			Longitude: v.Lng.Ptr(),
		}
	}

	return desc
}

func venueDescriptor(v *football_api_client.Venue) venues.VenueDescriptor {
	return venues.VenueDescriptor{
		ExternalID: externalID(v.ID),
		Name:       v.Name,
		City:       v.City,
		Country:    v.Country,
		Address:    v.Address,
		Capacity:   v.Capacity,
		Surface:    v.Surface,
		ImageURL:   v.Image,
		Latitude:   v.Lat.Ptr(),
		Longitude:  v.Lng.Ptr(),
	}
}

// leagueDescriptor converts a discovered league. The provider's season bounds
// are used when both parse.
func leagueDescriptor(entry football_api_client.LeagueEntry, season football_api_client.Season) leagues.LeagueDescriptor {
	year := season.Year
	desc := leagues.LeagueDescriptor{
		ExternalID: strconv.Itoa(entry.League.ID),
		Name:       strings.TrimSpace(entry.League.Name),
		Country:    strings.TrimSpace(entry.Country.Name),
		EmblemURL:  entry.League.Logo,
		Type:       entry.League.Type,
		Season:     &year,
	}
	if entry.Country.Code != nil {
		desc.CountryCode = countries.Resolve(*entry.Country.Code, desc.Country)
	}

	start, startErr := time.Parse(time.DateOnly, season.Start)
	end, endErr := time.Parse(time.DateOnly, season.End)
	if startErr == nil && endErr == nil && !end.Before(start) {
		desc.SeasonStart = &start
		desc.SeasonEnd = &end
	}

	return desc
}
