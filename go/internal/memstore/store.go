// Package memstore is an in-memory implementation of the league, team and
// venue repositories, used for dry runs and tests.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/kickoff/go/internal/leagues"
	"github.com/mcdev12/kickoff/go/internal/models"
	"github.com/mcdev12/kickoff/go/internal/teams"
	"github.com/mcdev12/kickoff/go/internal/venues"
)

// Store keeps every entity keyed by external id
type Store struct {
	clock clockwork.Clock

	mu      sync.RWMutex
	leagues map[string]models.League
	teams   map[string]models.Team
	venues  map[string]models.Venue
}

// New creates an empty store. A nil clock uses the real clock.
func New(clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{
		clock:   clock,
		leagues: make(map[string]models.League),
		teams:   make(map[string]models.Team),
		venues:  make(map[string]models.Venue),
	}
}

// Ping always succeeds
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// UpsertLeague implements leagues.LeagueRepository
func (s *Store) UpsertLeague(ctx context.Context, req leagues.UpsertLeagueRequest, syncedAt time.Time) (*models.League, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now().UTC()
	existing, found := s.leagues[req.ExternalID]

	league := models.League{
		ID:           uuid.New(),
		ExternalID:   req.ExternalID,
		Name:         req.Name,
		Code:         req.Code,
		Country:      req.Country,
		CountryCode:  req.CountryCode,
		Tier:         req.Tier,
		EmblemURL:    req.EmblemURL,
		Season:       req.Season,
		Active:       req.Active,
		LastSyncedAt: syncedAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if found {
		league.ID = existing.ID
		league.CreatedAt = existing.CreatedAt
	}

	s.leagues[req.ExternalID] = league
	return &league, !found, nil
}

// GetLeagueByExternalID implements leagues.LeagueRepository
func (s *Store) GetLeagueByExternalID(ctx context.Context, externalID string) (*models.League, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	league, ok := s.leagues[externalID]
	if !ok {
		return nil, leagues.ErrLeagueNotFound
	}
	return &league, nil
}

// ListLeagues implements leagues.LeagueRepository
func (s *Store) ListLeagues(ctx context.Context) ([]models.League, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.League, 0, len(s.leagues))
	for _, l := range s.leagues {
		result = append(result, l)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CountryCode != result[j].CountryCode {
			return result[i].CountryCode < result[j].CountryCode
		}
		if result[i].Tier != result[j].Tier {
			return result[i].Tier < result[j].Tier
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// ExistingExternalIDs implements leagues.LeagueRepository
func (s *Store) ExistingExternalIDs(ctx context.Context, externalIDs []string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var existing []string
	for _, id := range externalIDs {
		if _, ok := s.leagues[id]; ok {
			existing = append(existing, id)
		}
	}
	return existing, nil
}

// CreateTeam implements teams.TeamsRepository
func (s *Store) CreateTeam(ctx context.Context, req teams.CreateTeamRequest) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.teams[req.ExternalID]; ok {
		return nil, teams.ErrTeamExists
	}

	now := s.clock.Now().UTC()
	team := models.Team{
		ID:           uuid.New(),
		ExternalID:   req.ExternalID,
		Name:         req.Name,
		Code:         req.Code,
		Founded:      copyInt(req.Founded),
		LogoURL:      req.LogoURL,
		Country:      req.Country,
		City:         req.City,
		Venue:        copySnapshot(req.Venue),
		Source:       req.Source,
		LastSyncedAt: req.LastSyncedAt,
		Associations: models.MergeAssociations(nil, req.Associations),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	s.teams[req.ExternalID] = team
	return copyTeam(team), nil
}

// GetTeamByExternalID implements teams.TeamsRepository
func (s *Store) GetTeamByExternalID(ctx context.Context, externalID string) (*models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	team, ok := s.teams[externalID]
	if !ok {
		return nil, teams.ErrTeamNotFound
	}
	return copyTeam(team), nil
}

// ListTeamsByLeague implements teams.TeamsRepository
func (s *Store) ListTeamsByLeague(ctx context.Context, leagueExternalID string, season int) ([]models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Team
	for _, t := range s.teams {
		if t.HasAssociation(leagueExternalID, season) {
			result = append(result, *copyTeam(t))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// UpdateTeam implements teams.TeamsRepository. Stored associations are merged
// with the requested ones under the store lock.
func (s *Store) UpdateTeam(ctx context.Context, id uuid.UUID, req teams.UpdateTeamRequest) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, team := range s.teams {
		if team.ID != id {
			continue
		}

		team.Name = req.Name
		team.Code = req.Code
		team.Founded = copyInt(req.Founded)
		team.LogoURL = req.LogoURL
		team.Country = req.Country
		team.City = req.City
		team.Venue = copySnapshot(req.Venue)
		team.Source = req.Source
		team.LastSyncedAt = req.LastSyncedAt
		team.Associations = models.MergeAssociations(team.Associations, req.Associations)
		team.UpdatedAt = s.clock.Now().UTC()

		s.teams[key] = team
		return copyTeam(team), nil
	}

	return nil, teams.ErrTeamNotFound
}

// UpsertVenue implements venues.VenueRepository
func (s *Store) UpsertVenue(ctx context.Context, req venues.UpsertVenueRequest, syncedAt time.Time) (*models.Venue, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now().UTC()
	existing, found := s.venues[req.ExternalID]

	venue := models.Venue{
		ID:           uuid.New(),
		ExternalID:   req.ExternalID,
		Name:         req.Name,
		City:         req.City,
		Country:      req.Country,
		CountryCode:  req.CountryCode,
		Address:      req.Address,
		Capacity:     copyInt(req.Capacity),
		Surface:      req.Surface,
		ImageURL:     req.ImageURL,
		Coordinates:  copyCoordinates(req.Coordinates),
		Active:       req.Active,
		LastSyncedAt: syncedAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if found {
		venue.ID = existing.ID
		venue.CreatedAt = existing.CreatedAt
	}

	s.venues[req.ExternalID] = venue
	return copyVenue(venue), !found, nil
}

// GetVenueByExternalID implements venues.VenueRepository
func (s *Store) GetVenueByExternalID(ctx context.Context, externalID string) (*models.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	venue, ok := s.venues[externalID]
	if !ok {
		return nil, venues.ErrVenueNotFound
	}
	return copyVenue(venue), nil
}

// ListVenuesByCountryCode implements venues.VenueRepository
func (s *Store) ListVenuesByCountryCode(ctx context.Context, countryCode string) ([]models.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Venue
	for _, v := range s.venues {
		if strings.EqualFold(v.CountryCode, countryCode) {
			result = append(result, *copyVenue(v))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Counts returns the number of stored leagues, teams and venues
func (s *Store) Counts() (leagueCount, teamCount, venueCount int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.leagues), len(s.teams), len(s.venues)
}

func copyTeam(t models.Team) *models.Team {
	t.Founded = copyInt(t.Founded)
	t.Venue = copySnapshot(t.Venue)
	t.Associations = append([]models.LeagueAssociation(nil), t.Associations...)
	return &t
}

func copyVenue(v models.Venue) *models.Venue {
	v.Capacity = copyInt(v.Capacity)
	v.Coordinates = copyCoordinates(v.Coordinates)
	return &v
}

func copySnapshot(v *models.VenueSnapshot) *models.VenueSnapshot {
	if v == nil {
		return nil
	}
	c := *v
	c.Capacity = copyInt(v.Capacity)
	c.Coordinates = copyCoordinates(v.Coordinates)
	return &c
}

func copyCoordinates(c *models.Coordinates) *models.Coordinates {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}

func copyInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}
