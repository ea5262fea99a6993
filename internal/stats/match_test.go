package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/diary-stats-service/internal/model"
)

func withRoles(rec model.ActivityRecord, stats ...model.PlayerStat) model.ActivityRecord {
	rec.Match.PerPlayerStats = stats
	return rec
}

func withEvents(rec model.ActivityRecord, events ...model.EventType) model.ActivityRecord {
	for _, e := range events {
		rec.Match.Events = append(rec.Match.Events, model.MatchEvent{Event: e})
	}
	return rec
}

func TestAggregateMatches_WinAndLoss(t *testing.T) {
	recs := ClassifyAll([]model.ActivityRecord{
		match("u1", model.GameCup, 2, 1),
		match("u1", model.GameSeries, 0, 3),
	})

	got := AggregateMatches(recs)

	assert.Equal(t, model.MatchTotals{Matches: 2, Wins: 1, Draws: 0, Losses: 1}, got.MatchInTotalStatistic)
	assert.Equal(t, 1.5, got.AveragePoint)
	assert.Equal(t, 0.0, got.NetScore, "negative goal difference clamps to zero")
	assert.Nil(t, got.MostPlayedRole)
}

func TestAggregateMatches_Empty(t *testing.T) {
	got := AggregateMatches(nil)

	assert.Equal(t, model.MatchTotals{}, got.MatchInTotalStatistic)
	assert.Zero(t, got.AveragePoint)
	assert.Zero(t, got.AveragePlayingTimePercent)
	assert.Zero(t, got.AverageGoal)
	assert.Len(t, got.MatchTypeCounts, len(model.MatchCategories))
	assert.Nil(t, got.MostPlayedRole)
}

func TestAggregateMatches_Averages(t *testing.T) {
	recs := ClassifyAll([]model.ActivityRecord{
		withEvents(withRoles(match("u1", model.GameCup, 3, 0),
			model.PlayerStat{Role: "striker", MinutesPlayed: 60}),
			model.EventGoal, model.EventGoal, model.EventYellowCard),
		withEvents(withRoles(match("u1", model.GameFriendly, 1, 1),
			model.PlayerStat{Role: "winger", MinutesPlayed: 45}),
			model.EventAssist),
		withEvents(withRoles(match("u1", model.GameCup, 2, 1),
			model.PlayerStat{Role: "striker", MinutesPlayed: 30}),
			model.EventRedCard),
	})

	got := AggregateMatches(recs)

	assert.Equal(t, 2.0, got.MatchTypeCounts[model.CategoryCup])
	assert.Equal(t, 1.0, got.MatchTypeCounts[model.CategoryFriendly])
	assert.Equal(t, model.MatchTotals{Matches: 3, Wins: 2, Draws: 1}, got.MatchInTotalStatistic)
	assert.Equal(t, 4.0, got.NetScore)
	// (3*2 + 1) / 3 = 2.333 floored to one decimal
	assert.Equal(t, 2.3, got.AveragePoint)
	// 135 of 270 minutes
	assert.Equal(t, 50.0, got.AveragePlayingTimePercent)
	assert.Equal(t, 0.6, got.AverageGoal)
	assert.Equal(t, 0.3, got.AverageAssist)
	assert.Equal(t, 0.6, got.AverageCard)
	require.NotNil(t, got.MostPlayedRole)
	assert.Equal(t, "striker", *got.MostPlayedRole)
}

func TestAggregateMatches_RoleTieIsFirstEncountered(t *testing.T) {
	recs := ClassifyAll([]model.ActivityRecord{
		withRoles(match("u1", model.GameCup, 0, 0),
			model.PlayerStat{Role: "keeper", MinutesPlayed: 45},
			model.PlayerStat{Role: "defender", MinutesPlayed: 45}),
	})

	for range 5 {
		got := AggregateMatches(recs)
		require.NotNil(t, got.MostPlayedRole)
		assert.Equal(t, "keeper", *got.MostPlayedRole)
	}
}

func TestAggregateMatches_IgnoresTrainingAndResultless(t *testing.T) {
	noResult := match("u1", model.GameSeries, 0, 0)
	noResult.Match.Result = nil

	got := AggregateMatches(ClassifyAll([]model.ActivityRecord{
		training("u1", model.TrainingTeam, 2),
		noResult,
	}))

	assert.Equal(t, 1, got.MatchInTotalStatistic.Matches)
	assert.Zero(t, got.MatchInTotalStatistic.Wins+got.MatchInTotalStatistic.Draws+got.MatchInTotalStatistic.Losses)
	assert.Zero(t, got.AveragePoint)
}

func TestAggregateMatches_PlayingTimeWithoutLength(t *testing.T) {
	rec := withRoles(match("u1", model.GameCup, 1, 0), model.PlayerStat{Role: "mid", MinutesPlayed: 30})
	rec.Match.LengthMinutes = 0

	got := AggregateMatches(ClassifyAll([]model.ActivityRecord{rec}))

	assert.Zero(t, got.AveragePlayingTimePercent)
}
