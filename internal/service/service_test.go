package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/diary-stats-service/internal/model"
	"github.com/maxviazov/diary-stats-service/internal/repository"
	"github.com/maxviazov/diary-stats-service/internal/repository/memory"
)

// 2024-03-01T00:00:00Z
const base = int64(1709251200000)

type env struct {
	store   *memory.Store
	diary   DiaryService
	match   MatchService
	season  SeasonService
	profile ProfileService
}

func newEnv(t *testing.T, caches *Caches) env {
	t.Helper()
	store := memory.New()
	log := zerolog.Nop()
	return env{
		store:   store,
		diary:   NewDiaryService(store.Activities(), caches, log),
		match:   NewMatchService(store.Activities(), store.Seasons(), store.Profiles(), caches, 30, log),
		season:  NewSeasonService(store.Activities(), store.Seasons(), store.Tx(), log),
		profile: NewProfileService(store.Profiles(), log),
	}
}

func (e env) record(t *testing.T, recs ...model.ActivityRecord) {
	t.Helper()
	for _, r := range recs {
		_, err := e.diary.RecordActivity(context.Background(), r)
		require.NoError(t, err)
	}
}

func training(owner string, at int64, tt model.TrainingType, hours float64) model.ActivityRecord {
	return model.ActivityRecord{
		Kind:      model.KindTraining,
		OwnerID:   owner,
		CreatedAt: at,
		Training:  &model.TrainingDetails{TrainingType: tt, HoursOfPractice: hours},
	}
}

func match(owner string, at int64, your, opp int) model.ActivityRecord {
	return model.ActivityRecord{
		Kind:      model.KindMatch,
		OwnerID:   owner,
		CreatedAt: at,
		Match: &model.MatchDetails{
			GameType:      model.GameSeries,
			LengthMinutes: 90,
			Result:        &model.MatchResult{YourTeam: your, Opponents: opp},
		},
	}
}

func strPtr(s string) *string { return &s }

func fieldNames(err error) []string {
	var out []string
	for _, fe := range FieldErrors(err) {
		out = append(out, fe.Field)
	}
	return out
}

func TestFieldErrors(t *testing.T) {
	assert.Nil(t, NewInvalidInputError(nil))
	assert.Nil(t, FieldErrors(nil))
	assert.Nil(t, FieldErrors(errors.New("boom")))

	err := NewInvalidInputError([]FieldError{{Field: "a", Message: "bad"}})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, []FieldError{{Field: "a", Message: "bad"}}, FieldErrors(err))
}

// failingActivities fails every read; writes are unsupported.
type failingActivities struct {
	repository.ActivityRepository
	err error
}

func (f failingActivities) ListByOwner(context.Context, string, repository.Window, ...model.ActivityKind) ([]model.ActivityRecord, error) {
	return nil, f.err
}

func (f failingActivities) ListPopulation(context.Context, repository.Window, ...model.ActivityKind) ([]model.ActivityRecord, error) {
	return nil, f.err
}

func (f failingActivities) ListOwnersBySeason(context.Context, string) ([]string, error) {
	return nil, f.err
}
