package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/diary-stats-service/internal/metrics"
	"github.com/maxviazov/diary-stats-service/internal/model"
	"github.com/maxviazov/diary-stats-service/internal/repository"
	"github.com/maxviazov/diary-stats-service/internal/stats"
)

// statKinds are the record kinds that feed any aggregation; rest days never do.
var statKinds = []model.ActivityKind{model.KindTraining, model.KindMatch, model.KindCap}

type diaryService struct {
	activities repository.ActivityRepository
	memo       *memo[model.DiaryStats]
	log        zerolog.Logger
}

func NewDiaryService(activities repository.ActivityRepository, caches *Caches, logger zerolog.Logger) DiaryService {
	l := logger.With().Str("module", "service").Str("component", "diary").Logger()
	return &diaryService{activities: activities, memo: caches.diaryMemo(), log: l}
}

func (s *diaryService) RecordActivity(ctx context.Context, rec model.ActivityRecord) (model.ActivityRecord, error) {
	if err := validateRecord(&rec); err != nil {
		return model.ActivityRecord{}, err
	}
	created, err := s.activities.Create(ctx, rec)
	if err != nil {
		return model.ActivityRecord{}, err
	}
	metrics.RecordsCreated.WithLabelValues(string(created.Kind)).Inc()
	s.log.Debug().
		Str("owner_id", created.OwnerID).
		Str("kind", string(created.Kind)).
		Stringer("id", created.ID).
		Msg("activity recorded")
	return created, nil
}

func (s *diaryService) GetDiaryStats(ctx context.Context, q DiaryStatsQuery) (model.DiaryStats, error) {
	start := time.Now()
	q.OwnerID = normalizeOwnerID(q.OwnerID)
	ferrs := checkOwnerID(q.OwnerID)

	mode, ok := stats.ParseMode(q.Mode)
	if !ok {
		ferrs = append(ferrs, FieldError{Field: "mode", Message: "must be personal or average"})
	}
	for _, season := range q.ExcludeSeasons {
		if !IsValidSeason(season) {
			ferrs = append(ferrs, FieldError{Field: "exclude_seasons", Message: fmt.Sprintf("%q must be YYYY or YYYY-YY", season)})
		}
	}
	wErrs, rangeErr := checkWindow(q.From, q.To)
	if err := NewInvalidInputError(append(ferrs, wErrs...)); err != nil {
		return model.DiaryStats{}, err
	}
	if rangeErr != nil {
		return model.DiaryStats{}, rangeErr
	}

	w := repository.Window{From: q.From, To: q.To}
	var (
		recs []model.ActivityRecord
		err  error
	)
	if mode == stats.ModeAverage {
		recs, err = s.activities.ListPopulation(ctx, w, statKinds...)
	} else {
		recs, err = s.activities.ListByOwner(ctx, q.OwnerID, w, statKinds...)
	}
	if err != nil {
		return model.DiaryStats{}, fmt.Errorf("list diary records: %w", err)
	}

	exclude := slices.Sorted(slices.Values(q.ExcludeSeasons))
	classified := stats.ClassifyAll(recs)
	out := s.memo.getOrCompute("diary", diaryInputs{Records: classified, Mode: mode, Exclude: exclude}, func() model.DiaryStats {
		return stats.AggregateDiary(classified, mode, stats.NewSeasonSet(exclude...))
	})

	metrics.ObserveAggregation("diary_stats", start, len(recs))
	s.log.Debug().
		Str("owner_id", q.OwnerID).
		Str("mode", string(mode)).
		Int("records", len(recs)).
		Dur("took", time.Since(start)).
		Msg("diary stats computed")
	return out, nil
}

type diaryInputs struct {
	Records []stats.ClassifiedRecord
	Mode    stats.Mode
	Exclude []string
}

func (s *diaryService) GetDiaryChart(ctx context.Context, q ChartQuery) (model.CalendarSeries, error) {
	start := time.Now()
	q.OwnerID = normalizeOwnerID(q.OwnerID)
	ferrs := checkOwnerID(q.OwnerID)

	kinds, ok := chartKinds(q.Metric)
	if !ok {
		ferrs = append(ferrs, FieldError{Field: "metric", Message: "must be one of hours, sessions, matches"})
	}
	var rangeKind stats.RangeKind
	if q.Range != "" {
		if rangeKind, ok = stats.ParseRangeKind(q.Range); !ok {
			ferrs = append(ferrs, FieldError{Field: "range", Message: "unknown range kind"})
		}
	}
	wErrs, rangeErr := checkWindow(q.From, q.To)
	ferrs = append(ferrs, wErrs...)
	if rangeErr == nil && len(wErrs) == 0 && (q.To-q.From)/dayMillis+1 > maxWindowDays {
		ferrs = append(ferrs, FieldError{Field: "to", Message: fmt.Sprintf("window must span at most %d days", maxWindowDays)})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return nil, err
	}
	if rangeErr != nil {
		return nil, rangeErr
	}

	calendar, err := stats.BuildCalendar(q.From, q.To)
	if err != nil {
		return nil, err
	}
	recs, err := s.activities.ListByOwner(ctx, q.OwnerID, repository.Window{From: q.From, To: q.To}, kinds...)
	if err != nil {
		return nil, fmt.Errorf("list chart records: %w", err)
	}

	series := stats.MergeOntoCalendar(calendar, daySamples(stats.ClassifyAll(recs), q.Metric))
	if rangeKind != "" {
		series = stats.SplitIfLong(series, rangeKind)
	}
	metrics.ObserveAggregation("diary_chart", start, len(recs))
	return series, nil
}

func chartKinds(metric string) ([]model.ActivityKind, bool) {
	switch metric {
	case MetricHours, MetricSessions:
		return []model.ActivityKind{model.KindTraining}, true
	case MetricMatches:
		return []model.ActivityKind{model.KindMatch, model.KindCap}, true
	default:
		return nil, false
	}
}

// daySamples emits one sample per contributing record.
func daySamples(recs []stats.ClassifiedRecord, metric string) []model.DaySample {
	out := make([]model.DaySample, 0, len(recs))
	for _, r := range recs {
		var v float64
		switch {
		case metric == MetricHours && r.Class == stats.ClassTraining:
			v = r.Training.Hours
		case metric == MetricSessions && r.Class == stats.ClassTraining:
			v = r.Training.Sessions
		case metric == MetricMatches && r.Class == stats.ClassMatch:
			v = 1
		default:
			continue
		}
		out = append(out, model.DaySample{Day: r.Day(), Value: v})
	}
	return out
}
