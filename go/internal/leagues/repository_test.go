package leagues

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/kickoff/go/internal/leagues/db"
	"github.com/mcdev12/kickoff/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuerier struct {
	upserted db.UpsertLeagueParams
	ids      []string
	err      error
}

func (f *fakeQuerier) GetLeagueByExternalID(ctx context.Context, externalID string) (db.League, error) {
	return db.League{}, f.err
}

func (f *fakeQuerier) ListExistingExternalIDs(ctx context.Context, externalIds []string) ([]string, error) {
	f.ids = externalIds
	return externalIds[:1], f.err
}

func (f *fakeQuerier) ListLeagues(ctx context.Context) ([]db.League, error) {
	return []db.League{{ExternalID: "39", Tier: 1}}, f.err
}

func (f *fakeQuerier) UpsertLeague(ctx context.Context, arg db.UpsertLeagueParams) (db.UpsertLeagueRow, error) {
	f.upserted = arg
	return db.UpsertLeagueRow{
		League: db.League{
			ID:              uuid.New(),
			ExternalID:      arg.ExternalID,
			Name:            arg.Name,
			Tier:            arg.Tier,
			SeasonStartYear: arg.SeasonStartYear,
			SeasonStart:     arg.SeasonStart,
			SeasonEnd:       arg.SeasonEnd,
			SeasonIsCurrent: arg.SeasonIsCurrent,
			Active:          arg.Active,
			LastSyncedAt:    arg.LastSyncedAt,
		},
		Inserted: true,
	}, f.err
}

func TestRepository_UpsertLeague(t *testing.T) {
	q := &fakeQuerier{}
	repo := NewRepository(q)
	window := SeasonStarting(2024, time.July, time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC))

	league, created, err := repo.UpsertLeague(context.Background(), UpsertLeagueRequest{
		ExternalID: "39",
		Name:       "Premier League",
		Country:    "England",
		Tier:       1,
		Season:     window,
		Active:     true,
	}, time.Now())
	require.NoError(t, err)

	assert.True(t, created)
	assert.Equal(t, int32(2024), q.upserted.SeasonStartYear)
	assert.False(t, q.upserted.Code.Valid)
	assert.Equal(t, sql.NullString{String: "England", Valid: true}, q.upserted.Country)
	assert.Equal(t, models.SeasonWindow{
		StartYear: 2024,
		StartDate: window.StartDate,
		EndDate:   window.EndDate,
		IsCurrent: true,
	}, league.Season)
}

func TestRepository_GetLeagueNotFound(t *testing.T) {
	repo := NewRepository(&fakeQuerier{err: sql.ErrNoRows})
	_, err := repo.GetLeagueByExternalID(context.Background(), "404")
	assert.ErrorIs(t, err, ErrLeagueNotFound)
}

func TestRepository_ExistingExternalIDs(t *testing.T) {
	q := &fakeQuerier{}
	repo := NewRepository(q)

	ids, err := repo.ExistingExternalIDs(context.Background(), []string{"39", "140"})
	require.NoError(t, err)
	assert.Equal(t, []string{"39"}, ids)
	assert.Equal(t, []string{"39", "140"}, q.ids)
}
