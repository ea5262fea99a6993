// Package contract holds behaviour suites every repository implementation
// must pass. Implementations wire them up with a factory per repository.
package contract

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/google/uuid"

	"github.com/maxviazov/diary-stats-service/internal/model"
	"github.com/maxviazov/diary-stats-service/internal/repository"
)

type ActivityFactory func(t *testing.T) (repository.ActivityRepository, func())

type SeasonFactory func(t *testing.T) (repository.SeasonRepository, func())

type ProfileFactory func(t *testing.T) (repository.ProfileRepository, func())

type TxFactory func(t *testing.T) (tx repository.TxManager, seasons repository.SeasonRepository, cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

const day = int64(24 * 60 * 60 * 1000)

// 2024-03-01T00:00:00Z
const base = int64(1709251200000)

func trainingAt(owner string, at int64, hours float64) model.ActivityRecord {
	return model.ActivityRecord{
		Kind:      model.KindTraining,
		OwnerID:   owner,
		CreatedAt: at,
		Training: &model.TrainingDetails{
			TrainingType:    model.TrainingGroup,
			HoursOfPractice: hours,
			Skills:          model.SkillDistribution{Technical: 2, Physical: 1},
		},
	}
}

func matchAt(owner string, at int64, season *string) model.ActivityRecord {
	return model.ActivityRecord{
		Kind:      model.KindMatch,
		OwnerID:   owner,
		CreatedAt: at,
		Season:    season,
		Match: &model.MatchDetails{
			GameType:       model.GameCup,
			LengthMinutes:  90,
			Result:         &model.MatchResult{YourTeam: 2, Opponents: 1},
			PerPlayerStats: []model.PlayerStat{{Role: "striker", MinutesPlayed: 70}},
			Events:         []model.MatchEvent{{Event: model.EventGoal}},
		},
	}
}

func seed(t *testing.T, repo repository.ActivityRepository, recs ...model.ActivityRecord) []model.ActivityRecord {
	t.Helper()
	out := make([]model.ActivityRecord, 0, len(recs))
	for _, r := range recs {
		created, err := repo.Create(context.Background(), r)
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		out = append(out, created)
	}
	return out
}

func RunActivityRepositoryContract(t *testing.T, makeRepo ActivityFactory) {
	t.Helper()

	t.Run("create_assigns_id_and_round_trips_payload", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		created := seed(t, repo, matchAt("u1", base, nil))[0]
		if created.ID == uuid.Nil {
			t.Fatalf("expected generated id")
		}
		got, err := repo.ListByOwner(context.Background(), "u1", repository.Window{From: base, To: base})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 1 || got[0].ID != created.ID {
			t.Fatalf("unexpected list: %+v", got)
		}
		m := got[0].Match
		if m == nil || m.Result == nil || m.Result.YourTeam != 2 || len(m.PerPlayerStats) != 1 || len(m.Events) != 1 {
			t.Fatalf("payload not preserved: %+v", m)
		}
		if got[0].Training != nil {
			t.Fatalf("training must stay nil for a match")
		}
	})

	t.Run("create_duplicate_id", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		rec := trainingAt("u1", base, 1)
		rec.ID = uuid.New()
		seed(t, repo, rec)
		_, err := repo.Create(context.Background(), rec)
		if !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("list_by_owner_window_and_kinds", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		seed(t, repo,
			trainingAt("u1", base+2*day, 1),
			trainingAt("u1", base, 2),
			matchAt("u1", base+day, nil),
			trainingAt("u1", base+10*day, 3),
			trainingAt("u2", base, 4),
		)
		ctx := context.Background()
		w := repository.Window{From: base, To: base + 2*day}

		all, err := repo.ListByOwner(ctx, "u1", w)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("expected 3 records, got %d", len(all))
		}
		if !slices.IsSortedFunc(all, func(a, b model.ActivityRecord) int { return cmp.Compare(a.CreatedAt, b.CreatedAt) }) {
			t.Fatalf("records not ordered by created_at")
		}

		trainings, err := repo.ListByOwner(ctx, "u1", w, model.KindTraining)
		if err != nil {
			t.Fatalf("list trainings: %v", err)
		}
		if len(trainings) != 2 {
			t.Fatalf("expected 2 trainings, got %d", len(trainings))
		}
	})

	t.Run("list_population", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		seed(t, repo, trainingAt("u1", base, 1), trainingAt("u2", base, 1), matchAt("u3", base, nil))
		got, err := repo.ListPopulation(context.Background(), repository.Window{From: base, To: base}, model.KindTraining)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2, got %d", len(got))
		}
	})

	t.Run("season_lookup_uses_effective_season", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		explicit := "2023-24"
		seed(t, repo,
			matchAt("u1", base, &explicit),
			matchAt("u1", base, nil), // falls back to 2024
			matchAt("u2", base, nil),
		)
		ctx := context.Background()

		got, err := repo.ListBySeason(ctx, "u1", "2024")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 1 || got[0].Season != nil {
			t.Fatalf("expected the implicit 2024 record only, got %+v", got)
		}

		owners, err := repo.ListOwnersBySeason(ctx, "2024")
		if err != nil {
			t.Fatalf("owners: %v", err)
		}
		if !slices.Equal(owners, []string{"u1", "u2"}) {
			t.Fatalf("unexpected owners: %v", owners)
		}
	})
}

func RunSeasonRepositoryContract(t *testing.T, makeRepo SeasonFactory) {
	t.Helper()

	t.Run("upsert_and_list", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		role := "keeper"
		first := model.SeasonSummary{OwnerID: "u1", Season: "2022", Stats: model.MatchStatisticAverage{AveragePoint: 1.5, MostPlayedRole: &role}}
		if _, err := repo.Upsert(ctx, first); err != nil {
			t.Fatalf("upsert: %v", err)
		}
		if _, err := repo.Upsert(ctx, model.SeasonSummary{OwnerID: "u1", Season: "2021"}); err != nil {
			t.Fatalf("upsert: %v", err)
		}

		got, err := repo.ListByOwner(ctx, "u1")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 2 || got[0].Season != "2021" || got[1].Season != "2022" {
			t.Fatalf("unexpected seasons: %+v", got)
		}
		if got[1].Stats.AveragePoint != 1.5 || got[1].Stats.MostPlayedRole == nil || *got[1].Stats.MostPlayedRole != "keeper" {
			t.Fatalf("stats not preserved: %+v", got[1].Stats)
		}
	})

	t.Run("upsert_replaces", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		s := model.SeasonSummary{OwnerID: "u1", Season: "2022", Stats: model.MatchStatisticAverage{AverageGoal: 1}}
		if _, err := repo.Upsert(ctx, s); err != nil {
			t.Fatalf("upsert: %v", err)
		}
		s.Stats.AverageGoal = 2
		out, err := repo.Upsert(ctx, s)
		if err != nil {
			t.Fatalf("upsert again: %v", err)
		}
		if out.Stats.AverageGoal != 2 {
			t.Fatalf("expected replaced stats, got %+v", out.Stats)
		}
		got, _ := repo.ListByOwner(ctx, "u1")
		if len(got) != 1 {
			t.Fatalf("expected a single summary, got %d", len(got))
		}
	})

	t.Run("list_unknown_owner_empty", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		got, err := repo.ListByOwner(context.Background(), "nobody")
		if err != nil || len(got) != 0 {
			t.Fatalf("expected empty list, got %v %v", got, err)
		}
	})
}

func RunProfileRepositoryContract(t *testing.T, makeRepo ProfileFactory) {
	t.Helper()

	t.Run("not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetProfileType(context.Background(), "ghost")
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("set_and_overwrite", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if err := repo.SetProfileType(ctx, "u1", model.ProfilePlayer); err != nil {
			t.Fatalf("set: %v", err)
		}
		if err := repo.SetProfileType(ctx, "u1", model.ProfileCoach); err != nil {
			t.Fatalf("overwrite: %v", err)
		}
		got, err := repo.GetProfileType(ctx, "u1")
		if err != nil || got != model.ProfileCoach {
			t.Fatalf("expected coach, got %q %v", got, err)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("commit", func(t *testing.T) {
		tx, seasons, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			_, err := seasons.Upsert(ctx, model.SeasonSummary{OwnerID: "u1", Season: "2020"})
			return err
		})
		if err != nil {
			t.Fatalf("tx: %v", err)
		}
		got, _ := seasons.ListByOwner(ctx, "u1")
		if len(got) != 1 {
			t.Fatalf("expected committed summary, got %d", len(got))
		}
	})

	t.Run("rollback_on_error", func(t *testing.T) {
		tx, seasons, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		boom := errors.New("boom")
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			if _, err := seasons.Upsert(ctx, model.SeasonSummary{OwnerID: "u1", Season: "2020"}); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected fn error, got %v", err)
		}
		got, _ := seasons.ListByOwner(ctx, "u1")
		if len(got) != 0 {
			t.Fatalf("expected rollback, got %d summaries", len(got))
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("ping: %v", err)
		}
	})
}
