// Package jobs runs scheduled background work.
package jobs

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/robfig/cron"
	"github.com/rs/zerolog"

	"github.com/maxviazov/diary-stats-service/internal/service"
)

// SeasonCloser snapshots the previous calendar-year season for every owner
// on a cron schedule. Specs use the six-field form with seconds.
type SeasonCloser struct {
	seasons service.SeasonService
	spec    string
	timeout time.Duration
	now     func() time.Time
	cron    *cron.Cron
	log     zerolog.Logger
}

func NewSeasonCloser(seasons service.SeasonService, spec string, timeout time.Duration, logger zerolog.Logger) *SeasonCloser {
	l := logger.With().Str("module", "jobs").Str("component", "season_closer").Logger()
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &SeasonCloser{
		seasons: seasons,
		spec:    spec,
		timeout: timeout,
		now:     time.Now,
		cron:    cron.NewWithLocation(time.UTC),
		log:     l,
	}
}

// Start registers the job and starts the scheduler.
func (j *SeasonCloser) Start() error {
	if err := j.cron.AddFunc(j.spec, j.tick); err != nil {
		return fmt.Errorf("schedule season close %q: %w", j.spec, err)
	}
	j.cron.Start()
	j.log.Info().Str("spec", j.spec).Msg("season closer scheduled")
	return nil
}

// Stop halts the scheduler. A run already in progress is not interrupted.
func (j *SeasonCloser) Stop() {
	j.cron.Stop()
	j.log.Info().Msg("season closer stopped")
}

func (j *SeasonCloser) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	_, _ = j.Run(ctx)
}

// Run closes the season preceding the current UTC year and reports how many
// owners were summarized.
func (j *SeasonCloser) Run(ctx context.Context) (int, error) {
	season := PreviousSeason(j.now())
	started := time.Now()

	n, err := j.seasons.CloseSeasonForAll(ctx, season)
	ev := j.log.Info()
	if err != nil {
		ev = j.log.Error().Err(err)
	}
	ev.Str("season", season).Int("closed", n).Dur("took", time.Since(started)).Msg("season close run")
	return n, err
}

// PreviousSeason is last year's calendar season key, e.g. "2023" during 2024.
func PreviousSeason(now time.Time) string {
	return strconv.Itoa(now.UTC().Year() - 1)
}
