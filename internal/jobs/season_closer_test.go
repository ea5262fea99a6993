package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/diary-stats-service/internal/model"
	"github.com/maxviazov/diary-stats-service/internal/repository/memory"
	"github.com/maxviazov/diary-stats-service/internal/service"
)

type recordingSeasons struct {
	service.SeasonService
	seasons []string
	err     error
}

func (r *recordingSeasons) CloseSeasonForAll(_ context.Context, season string) (int, error) {
	r.seasons = append(r.seasons, season)
	return 3, r.err
}

func fixedClock(s string) func() time.Time {
	ts, _ := time.Parse(time.RFC3339, s)
	return func() time.Time { return ts }
}

func TestPreviousSeason(t *testing.T) {
	assert.Equal(t, "2023", PreviousSeason(fixedClock("2024-01-01T03:00:00Z")()))
	assert.Equal(t, "2024", PreviousSeason(fixedClock("2025-12-31T23:59:59Z")()))
	// local time just past midnight on Jan 1 is still the old year in UTC
	loc := time.FixedZone("UTC+3", 3*3600)
	assert.Equal(t, "2022", PreviousSeason(time.Date(2024, 1, 1, 1, 0, 0, 0, loc)))
}

func TestSeasonCloser_Run(t *testing.T) {
	rec := &recordingSeasons{}
	j := NewSeasonCloser(rec, "0 0 3 1 1 *", 0, zerolog.Nop())
	j.now = fixedClock("2024-01-01T03:00:00Z")

	n, err := j.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"2023"}, rec.seasons)
}

func TestSeasonCloser_RunReportsError(t *testing.T) {
	boom := errors.New("db down")
	j := NewSeasonCloser(&recordingSeasons{err: boom}, "@daily", time.Second, zerolog.Nop())

	_, err := j.Run(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestSeasonCloser_ClosesStoredSeasons(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	_, err := store.Activities().Create(ctx, model.ActivityRecord{
		Kind:      model.KindMatch,
		OwnerID:   "u1",
		CreatedAt: 1688169600000, // 2023-07-01
		Match: &model.MatchDetails{
			GameType:      model.GameCup,
			LengthMinutes: 90,
			Result:        &model.MatchResult{YourTeam: 2, Opponents: 1},
		},
	})
	require.NoError(t, err)

	log := zerolog.Nop()
	seasons := service.NewSeasonService(store.Activities(), store.Seasons(), store.Tx(), log)
	j := NewSeasonCloser(seasons, "@yearly", time.Second, log)
	j.now = fixedClock("2024-01-01T03:00:00Z")

	n, err := j.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := store.Seasons().ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2023", got[0].Season)
}

func TestSeasonCloser_StartRejectsBadSpec(t *testing.T) {
	j := NewSeasonCloser(&recordingSeasons{}, "not a spec", 0, zerolog.Nop())
	require.Error(t, j.Start())
}

func TestSeasonCloser_StartStop(t *testing.T) {
	j := NewSeasonCloser(&recordingSeasons{}, "0 0 3 1 1 *", 0, zerolog.Nop())
	require.NoError(t, j.Start())
	j.Stop()
}
