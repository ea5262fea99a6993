// Package service coordinates repositories and the stats engine: it validates
// requests, fetches records, memoizes aggregation and shapes domain errors.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/maxviazov/diary-stats-service/internal/model"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInputError returns nil when fe is empty, so callers can collect
// field errors and return the result unconditionally.
func NewInvalidInputError(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	var ie *invalidInputError
	if errors.As(err, &ie) {
		return ie.Fields()
	}
	return nil
}

// DiaryStatsQuery selects the records behind a diary summary. Mode is
// "personal" (default) or "average"; From and To are epoch millis.
type DiaryStatsQuery struct {
	OwnerID        string
	From           int64
	To             int64
	Mode           string
	ExcludeSeasons []string
}

// ChartQuery selects a per-day chart. Range, when set, down-samples long
// series (see stats.SplitIfLong).
type ChartQuery struct {
	OwnerID string
	From    int64
	To      int64
	Metric  string
	Range   string
}

// Chart metrics.
const (
	MetricHours    = "hours"
	MetricSessions = "sessions"
	MetricMatches  = "matches"
)

// DiaryService covers recording activities and training/match summaries.
type DiaryService interface {
	RecordActivity(ctx context.Context, rec model.ActivityRecord) (model.ActivityRecord, error)
	GetDiaryStats(ctx context.Context, q DiaryStatsQuery) (model.DiaryStats, error)
	GetDiaryChart(ctx context.Context, q ChartQuery) (model.CalendarSeries, error)
}

// MatchService covers per-match averages, trends and career blending.
type MatchService interface {
	GetMatchStats(ctx context.Context, ownerID string, from, to int64) (model.MatchStatisticAverage, error)
	// GetMatchTrend compares the trailing `days` before now with the `days` before that.
	GetMatchTrend(ctx context.Context, ownerID string, days int, now time.Time) (model.MatchTrend, error)
	GetCareerStats(ctx context.Context, ownerID string, from, to int64) (model.MatchStatisticAverage, error)
}

// SeasonService closes seasons into pre-aggregated summaries.
type SeasonService interface {
	CloseSeason(ctx context.Context, ownerID, season string) (model.SeasonSummary, error)
	// CloseSeasonForAll closes season for every owner with records in it and
	// returns how many summaries were written.
	CloseSeasonForAll(ctx context.Context, season string) (int, error)
}

// ProfileService manages the player/coach flag.
type ProfileService interface {
	SetProfileType(ctx context.Context, ownerID string, pt model.ProfileType) error
	GetProfileType(ctx context.Context, ownerID string) (model.ProfileType, error)
}
