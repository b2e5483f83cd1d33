package teams

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mcdev12/kickoff/go/internal/models"
	"github.com/mcdev12/kickoff/go/internal/teams/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuerier struct {
	rows      map[uuid.UUID]db.Team
	createErr error
	locked    []uuid.UUID
	filter    json.RawMessage
}

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{rows: map[uuid.UUID]db.Team{}}
}

func (f *fakeQuerier) CreateTeam(ctx context.Context, arg db.CreateTeamParams) (db.Team, error) {
	if f.createErr != nil {
		return db.Team{}, f.createErr
	}
	row := db.Team{
		ID:           uuid.New(),
		ExternalID:   arg.ExternalID,
		Name:         arg.Name,
		Code:         arg.Code,
		Founded:      arg.Founded,
		Venue:        arg.Venue,
		Source:       arg.Source,
		Associations: arg.Associations,
		LastSyncedAt: arg.LastSyncedAt,
	}
	f.rows[row.ID] = row
	return row, nil
}

func (f *fakeQuerier) GetTeamByExternalID(ctx context.Context, externalID string) (db.Team, error) {
	for _, row := range f.rows {
		if row.ExternalID == externalID {
			return row, nil
		}
	}
	return db.Team{}, sql.ErrNoRows
}

func (f *fakeQuerier) GetTeamForUpdate(ctx context.Context, id uuid.UUID) (db.Team, error) {
	f.locked = append(f.locked, id)
	row, ok := f.rows[id]
	if !ok {
		return db.Team{}, sql.ErrNoRows
	}
	return row, nil
}

func (f *fakeQuerier) ListTeamsByAssociation(ctx context.Context, filter json.RawMessage) ([]db.Team, error) {
	f.filter = filter
	return nil, nil
}

func (f *fakeQuerier) UpdateTeam(ctx context.Context, arg db.UpdateTeamParams) (db.Team, error) {
	row := f.rows[arg.ID]
	row.Name = arg.Name
	row.Venue = arg.Venue
	row.Associations = arg.Associations
	row.LastSyncedAt = arg.LastSyncedAt
	f.rows[arg.ID] = row
	return row, nil
}

func TestRepository_CreateTeamRoundTrip(t *testing.T) {
	q := newFakeQuerier()
	repo := NewRepositoryWithQuerier(q, nil)
	capacity := 60000

	team, err := repo.CreateTeam(context.Background(), CreateTeamRequest{
		ExternalID: "33",
		Name:       "Team A",
		Venue: &models.VenueSnapshot{
			Name:        "Stadium A",
			Capacity:    &capacity,
			Coordinates: &models.Coordinates{Longitude: -0.1, Latitude: 51.5},
		},
		Associations: []models.LeagueAssociation{{LeagueExternalID: "39", LeagueName: "Premier League", Season: 2024, IsActive: true}},
	})
	require.NoError(t, err)

	require.NotNil(t, team.Venue)
	assert.Equal(t, "Stadium A", team.Venue.Name)
	assert.Equal(t, [2]float64{-0.1, 51.5}, team.Venue.Coordinates.Pair())
	assert.Equal(t, 2024, team.Associations[0].Season)
	assert.Empty(t, team.Code)
}

func TestRepository_CreateTeamUniqueViolation(t *testing.T) {
	q := newFakeQuerier()
	q.createErr = &pq.Error{Code: uniqueViolation, Message: "duplicate key value violates unique constraint"}
	repo := NewRepositoryWithQuerier(q, nil)

	_, err := repo.CreateTeam(context.Background(), CreateTeamRequest{ExternalID: "33", Name: "Team A"})
	assert.ErrorIs(t, err, ErrTeamExists)
}

func TestRepository_UpdateTeamMergesLockedAssociations(t *testing.T) {
	q := newFakeQuerier()
	txCalls := 0
	repo := NewRepositoryWithQuerier(q, func(ctx context.Context, fn func(q Querier) error) error {
		txCalls++
		return fn(q)
	})

	created, err := repo.CreateTeam(context.Background(), CreateTeamRequest{
		ExternalID:   "33",
		Name:         "Team A",
		Associations: []models.LeagueAssociation{{LeagueExternalID: "39", Season: 2024}},
	})
	require.NoError(t, err)

	// Another writer added a cup association after our read.
	row := q.rows[created.ID]
	row.Associations = json.RawMessage(`[{"league_external_id":"39","season":2024},{"league_external_id":"45","season":2024}]`)
	q.rows[created.ID] = row

	updated, err := repo.UpdateTeam(context.Background(), created.ID, UpdateTeamRequest{
		Name:         "Team A",
		Associations: []models.LeagueAssociation{{LeagueExternalID: "39", Season: 2024}, {LeagueExternalID: "39", Season: 2025}},
		LastSyncedAt: time.Now(),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, txCalls)
	assert.Equal(t, []uuid.UUID{created.ID}, q.locked)
	require.Len(t, updated.Associations, 3)
	assert.True(t, updated.HasAssociation("45", 2024), "concurrent association survives")
	assert.True(t, updated.HasAssociation("39", 2025))
}

func TestRepository_UpdateMissingTeam(t *testing.T) {
	repo := NewRepositoryWithQuerier(newFakeQuerier(), nil)

	_, err := repo.UpdateTeam(context.Background(), uuid.New(), UpdateTeamRequest{Name: "Ghost"})
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestRepository_GetTeamNotFound(t *testing.T) {
	repo := NewRepositoryWithQuerier(newFakeQuerier(), nil)

	_, err := repo.GetTeamByExternalID(context.Background(), "404")
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestRepository_ListTeamsByLeagueFilter(t *testing.T) {
	q := newFakeQuerier()
	repo := NewRepositoryWithQuerier(q, nil)

	_, err := repo.ListTeamsByLeague(context.Background(), "39", 2024)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"league_external_id":"39","season":2024}]`, string(q.filter))
}
