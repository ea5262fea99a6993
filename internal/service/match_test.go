package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/diary-stats-service/internal/model"
	"github.com/maxviazov/diary-stats-service/internal/repository"
	"github.com/maxviazov/diary-stats-service/internal/stats"
)

func withRole(rec model.ActivityRecord, role string, minutes int) model.ActivityRecord {
	rec.Match.PerPlayerStats = append(rec.Match.PerPlayerStats, model.PlayerStat{Role: role, MinutesPlayed: minutes})
	return rec
}

func TestGetMatchStats(t *testing.T) {
	e := newEnv(t, nil)
	e.record(t,
		withRole(match("u1", base, 2, 1), "striker", 90),
		withRole(match("u1", base+day, 0, 3), "winger", 45),
	)

	got, err := e.match.GetMatchStats(context.Background(), "u1", base, base+day)
	require.NoError(t, err)
	assert.Equal(t, model.MatchTotals{Matches: 2, Wins: 1, Losses: 1}, got.MatchInTotalStatistic)
	assert.Equal(t, 1.5, got.AveragePoint)
	assert.Equal(t, 75.0, got.AveragePlayingTimePercent)
	require.NotNil(t, got.MostPlayedRole)
	assert.Equal(t, "striker", *got.MostPlayedRole)
}

func TestGetMatchStats_CoachSubstitution(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	e.record(t, match("coach", base, 1, 0), match("player", base, 1, 0))
	require.NoError(t, e.profile.SetProfileType(ctx, "coach", model.ProfileCoach))

	got, err := e.match.GetMatchStats(ctx, "coach", base, base)
	require.NoError(t, err)
	require.NotNil(t, got.MostPlayedRole)
	assert.Equal(t, CoachRole, *got.MostPlayedRole)

	got, err = e.match.GetMatchStats(ctx, "player", base, base)
	require.NoError(t, err)
	assert.Nil(t, got.MostPlayedRole)
}

func TestGetMatchStats_InvalidRange(t *testing.T) {
	e := newEnv(t, nil)
	_, err := e.match.GetMatchStats(context.Background(), "u1", base, base-day)
	var rangeErr *stats.InvalidRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, base, rangeErr.From)
}

func TestTrendWindows(t *testing.T) {
	now := time.UnixMilli(base + 60*day)
	cur, prev := trendWindows(now, 30)

	assert.Equal(t, base+60*day, cur.To)
	assert.Equal(t, cur.From-1, prev.To)
	assert.Equal(t, cur.To-cur.From, prev.To-prev.From, "windows must have equal length")
	assert.Equal(t, base+30*day+1, cur.From)
	assert.Equal(t, base+1, prev.From)
}

func TestGetMatchTrend(t *testing.T) {
	e := newEnv(t, nil)
	now := time.UnixMilli(base + 60*day)
	e.record(t,
		// previous window
		match("u1", base+5*day, 1, 0),
		// current window
		match("u1", base+40*day, 1, 0),
		match("u1", base+50*day, 3, 0),
		// outside both
		match("u1", base-day, 9, 0),
	)

	got, err := e.match.GetMatchTrend(context.Background(), "u1", 0, now)
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.Matches.Current)
	assert.Equal(t, 1.0, got.Matches.Previous)
	assert.Equal(t, model.TrendVeryStrong, got.Matches.Direction)
	assert.Equal(t, model.TrendNeutral, got.AveragePoint.Direction)
}

func TestGetMatchTrend_Validation(t *testing.T) {
	e := newEnv(t, nil)
	_, err := e.match.GetMatchTrend(context.Background(), "", 5000, time.Now())
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.ElementsMatch(t, []string{"owner_id", "days"}, fieldNames(err))
}

func TestGetMatchTrend_RepositoryError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewMatchService(failingActivities{err: boom}, nil, nil, nil, 30, zerolog.Nop())
	_, err := svc.GetMatchTrend(context.Background(), "u1", 7, time.Now())
	require.ErrorIs(t, err, boom)
}

func TestGetCareerStats_SkipsClosedSeasonRecords(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()

	closedMatch := match("u1", base, 3, 0)
	closedMatch.Season = strPtr("2022-23")
	e.record(t, closedMatch, match("u1", base+day, 0, 0))

	_, err := e.season.CloseSeason(ctx, "u1", "2022-23")
	require.NoError(t, err)

	got, err := e.match.GetCareerStats(ctx, "u1", base, base+day)
	require.NoError(t, err)
	// live: one draw (1 point); closed season: one win (3 points); equal weight.
	assert.Equal(t, 2.0, got.AveragePoint)
	assert.Equal(t, 2, got.MatchInTotalStatistic.Matches)
}

func TestGetCareerStats_OnlyHistoric(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	_, err := e.store.Seasons().Upsert(ctx, model.SeasonSummary{
		OwnerID: "u1", Season: "2019",
		Stats: model.MatchStatisticAverage{MatchInTotalStatistic: model.MatchTotals{Matches: 20}, AverageGoal: 0.5},
	})
	require.NoError(t, err)

	got, err := e.match.GetCareerStats(ctx, "u1", base, base+day)
	require.NoError(t, err)
	assert.Equal(t, 0.5, got.AverageGoal)
	assert.Equal(t, 20, got.MatchInTotalStatistic.Matches)
}

// errProfiles fails every lookup.
type errProfiles struct{ repository.ProfileRepository }

func (errProfiles) GetProfileType(context.Context, string) (model.ProfileType, error) {
	return "", errors.New("profiles unavailable")
}

func TestWithCoachRole_LookupFailureIsIgnored(t *testing.T) {
	e := newEnv(t, nil)
	e.record(t, match("u1", base, 1, 0))
	svc := NewMatchService(e.store.Activities(), e.store.Seasons(), errProfiles{}, nil, 30, zerolog.Nop())

	got, err := svc.GetMatchStats(context.Background(), "u1", base, base)
	require.NoError(t, err)
	assert.Nil(t, got.MostPlayedRole)
}
