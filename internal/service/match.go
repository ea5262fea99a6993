package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/maxviazov/diary-stats-service/internal/metrics"
	"github.com/maxviazov/diary-stats-service/internal/model"
	"github.com/maxviazov/diary-stats-service/internal/repository"
	"github.com/maxviazov/diary-stats-service/internal/stats"
)

// CoachRole replaces a missing most played role for coach profiles.
const CoachRole = "COACH"

var matchKinds = []model.ActivityKind{model.KindMatch, model.KindCap}

type matchService struct {
	activities  repository.ActivityRepository
	seasons     repository.SeasonRepository
	profiles    repository.ProfileRepository
	memo        *memo[model.MatchStatisticAverage]
	defaultDays int
	log         zerolog.Logger
}

// NewMatchService builds the match use cases. trendDays is used when a
// trend request does not name a window.
func NewMatchService(
	activities repository.ActivityRepository,
	seasons repository.SeasonRepository,
	profiles repository.ProfileRepository,
	caches *Caches,
	trendDays int,
	logger zerolog.Logger,
) MatchService {
	l := logger.With().Str("module", "service").Str("component", "match").Logger()
	if trendDays <= 0 {
		trendDays = 30
	}
	return &matchService{
		activities:  activities,
		seasons:     seasons,
		profiles:    profiles,
		memo:        caches.matchMemo(),
		defaultDays: trendDays,
		log:         l,
	}
}

func (s *matchService) GetMatchStats(ctx context.Context, ownerID string, from, to int64) (model.MatchStatisticAverage, error) {
	start := time.Now()
	ownerID, err := validateOwnerWindow(ownerID, from, to)
	if err != nil {
		return model.MatchStatisticAverage{}, err
	}

	recs, err := s.activities.ListByOwner(ctx, ownerID, repository.Window{From: from, To: to}, matchKinds...)
	if err != nil {
		return model.MatchStatisticAverage{}, fmt.Errorf("list match records: %w", err)
	}
	out := s.aggregate(stats.ClassifyAll(recs))
	metrics.ObserveAggregation("match_stats", start, len(recs))
	return s.withCoachRole(ctx, ownerID, out), nil
}

func (s *matchService) GetMatchTrend(ctx context.Context, ownerID string, days int, now time.Time) (model.MatchTrend, error) {
	start := time.Now()
	ownerID = normalizeOwnerID(ownerID)
	ferrs := checkOwnerID(ownerID)
	if days == 0 {
		days = s.defaultDays
	}
	if days < 1 || days > maxTrendDays {
		ferrs = append(ferrs, FieldError{Field: "days", Message: fmt.Sprintf("must be between 1 and %d", maxTrendDays)})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.MatchTrend{}, err
	}

	current, previous := trendWindows(now, days)

	var curRecs, prevRecs []model.ActivityRecord
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		curRecs, err = s.activities.ListByOwner(gctx, ownerID, current, matchKinds...)
		return err
	})
	g.Go(func() error {
		var err error
		prevRecs, err = s.activities.ListByOwner(gctx, ownerID, previous, matchKinds...)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.MatchTrend{}, fmt.Errorf("list trend windows: %w", err)
	}

	out := stats.CompareMatchStats(
		s.aggregate(stats.ClassifyAll(curRecs)),
		s.aggregate(stats.ClassifyAll(prevRecs)),
	)
	metrics.ObserveAggregation("match_trend", start, len(curRecs)+len(prevRecs))
	return out, nil
}

// trendWindows returns two adjacent, equal-length windows ending at now.
func trendWindows(now time.Time, days int) (current, previous repository.Window) {
	end := now.UnixMilli()
	span := int64(days) * dayMillis
	current = repository.Window{From: end - span + 1, To: end}
	previous = repository.Window{From: current.From - span, To: current.From - 1}
	return current, previous
}

func (s *matchService) GetCareerStats(ctx context.Context, ownerID string, from, to int64) (model.MatchStatisticAverage, error) {
	start := time.Now()
	ownerID, err := validateOwnerWindow(ownerID, from, to)
	if err != nil {
		return model.MatchStatisticAverage{}, err
	}

	var (
		recs    []model.ActivityRecord
		closed  []model.SeasonSummary
		g, gctx = errgroup.WithContext(ctx)
	)
	g.Go(func() error {
		var err error
		recs, err = s.activities.ListByOwner(gctx, ownerID, repository.Window{From: from, To: to}, matchKinds...)
		return err
	})
	g.Go(func() error {
		var err error
		closed, err = s.seasons.ListByOwner(gctx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.MatchStatisticAverage{}, fmt.Errorf("load career: %w", err)
	}

	// Records of closed seasons are already inside their summaries.
	closedSet := make(stats.SeasonSet, len(closed))
	summaries := make([]model.MatchStatisticAverage, 0, len(closed))
	for _, c := range closed {
		closedSet[c.Season] = struct{}{}
		summaries = append(summaries, c.Stats)
	}
	live := make([]stats.ClassifiedRecord, 0, len(recs))
	for _, r := range stats.ClassifyAll(recs) {
		if !closedSet.Has(r.Season) {
			live = append(live, r)
		}
	}

	out := stats.CombineHistoric(s.aggregate(live), summaries)
	metrics.ObserveAggregation("career_stats", start, len(recs))
	return s.withCoachRole(ctx, ownerID, out), nil
}

func (s *matchService) aggregate(recs []stats.ClassifiedRecord) model.MatchStatisticAverage {
	return s.memo.getOrCompute("match", recs, func() model.MatchStatisticAverage {
		return stats.AggregateMatches(recs)
	})
}

// withCoachRole fills a missing role for coaches. Profile lookup failures
// are logged and leave the role empty; they never fail the request.
func (s *matchService) withCoachRole(ctx context.Context, ownerID string, out model.MatchStatisticAverage) model.MatchStatisticAverage {
	if out.MostPlayedRole != nil || s.profiles == nil {
		return out
	}
	pt, err := s.profiles.GetProfileType(ctx, ownerID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return out
	case err != nil:
		s.log.Warn().Err(err).Str("owner_id", ownerID).Msg("profile lookup failed")
		return out
	}
	if pt == model.ProfileCoach {
		role := CoachRole
		out.MostPlayedRole = &role
	}
	return out
}

func validateOwnerWindow(ownerID string, from, to int64) (string, error) {
	ownerID = normalizeOwnerID(ownerID)
	ferrs := checkOwnerID(ownerID)
	wErrs, rangeErr := checkWindow(from, to)
	if err := NewInvalidInputError(append(ferrs, wErrs...)); err != nil {
		return "", err
	}
	if rangeErr != nil {
		return "", rangeErr
	}
	return ownerID, nil
}
