package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/maxviazov/diary-stats-service/internal/metrics"
	"github.com/maxviazov/diary-stats-service/internal/model"
	"github.com/maxviazov/diary-stats-service/internal/repository"
	"github.com/maxviazov/diary-stats-service/internal/stats"
)

// ErrNoMatches is returned when a season has no match records to summarize.
// It wraps repository.ErrNotFound.
var ErrNoMatches = fmt.Errorf("season has no matches: %w", repository.ErrNotFound)

type seasonService struct {
	activities repository.ActivityRepository
	seasons    repository.SeasonRepository
	tx         repository.TxManager
	log        zerolog.Logger
}

func NewSeasonService(activities repository.ActivityRepository, seasons repository.SeasonRepository, tx repository.TxManager, logger zerolog.Logger) SeasonService {
	l := logger.With().Str("module", "service").Str("component", "season").Logger()
	return &seasonService{activities: activities, seasons: seasons, tx: tx, log: l}
}

func (s *seasonService) CloseSeason(ctx context.Context, ownerID, season string) (model.SeasonSummary, error) {
	ownerID = normalizeOwnerID(ownerID)
	ferrs := checkOwnerID(ownerID)
	if !IsValidSeason(season) {
		ferrs = append(ferrs, FieldError{Field: "season", Message: "must be YYYY or YYYY-YY"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.SeasonSummary{}, err
	}

	out, err := s.closeOne(ctx, ownerID, season)
	if err != nil {
		return model.SeasonSummary{}, err
	}
	metrics.SeasonsClosed.WithLabelValues("single").Inc()
	return out, nil
}

// closeOne reads and writes inside one transaction so a concurrent close of
// the same season cannot interleave a stale read with the upsert.
func (s *seasonService) closeOne(ctx context.Context, ownerID, season string) (model.SeasonSummary, error) {
	var out model.SeasonSummary
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		recs, err := s.activities.ListBySeason(ctx, ownerID, season)
		if err != nil {
			return err
		}
		agg := stats.AggregateMatches(stats.ClassifyAll(recs))
		if agg.MatchInTotalStatistic.Matches == 0 {
			return ErrNoMatches
		}
		out, err = s.seasons.Upsert(ctx, model.SeasonSummary{OwnerID: ownerID, Season: season, Stats: agg})
		return err
	})
	if err != nil {
		return model.SeasonSummary{}, err
	}
	s.log.Info().
		Str("owner_id", ownerID).
		Str("season", season).
		Int("matches", out.Stats.MatchInTotalStatistic.Matches).
		Msg("season closed")
	return out, nil
}

func (s *seasonService) CloseSeasonForAll(ctx context.Context, season string) (int, error) {
	if !IsValidSeason(season) {
		return 0, NewInvalidInputError([]FieldError{{Field: "season", Message: "must be YYYY or YYYY-YY"}})
	}
	owners, err := s.activities.ListOwnersBySeason(ctx, season)
	if err != nil {
		return 0, fmt.Errorf("list season owners: %w", err)
	}

	closed := 0
	var errs []error
	for _, owner := range owners {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if _, err := s.closeOne(ctx, owner, season); err != nil {
			if errors.Is(err, ErrNoMatches) {
				continue
			}
			s.log.Error().Err(err).Str("owner_id", owner).Str("season", season).Msg("close season failed")
			errs = append(errs, fmt.Errorf("owner %s: %w", owner, err))
			continue
		}
		closed++
	}
	metrics.SeasonsClosed.WithLabelValues("bulk").Add(float64(closed))
	return closed, errors.Join(errs...)
}
