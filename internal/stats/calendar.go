package stats

import (
	"errors"
	"fmt"
	"time"

	"github.com/maxviazov/diary-stats-service/internal/model"
)

// DayLayout is the calendar day key format.
const DayLayout = "2006-01-02"

// ErrInvalidRange marks a window whose end precedes its start.
var ErrInvalidRange = errors.New("invalid range")

// InvalidRangeError carries the offending bounds and unwraps to ErrInvalidRange.
type InvalidRangeError struct {
	From int64
	To   int64
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: to (%d) is before from (%d)", e.To, e.From)
}

func (e *InvalidRangeError) Unwrap() error { return ErrInvalidRange }

// DayKey returns the UTC calendar date of an epoch-millis instant.
func DayKey(millis int64) string {
	return time.UnixMilli(millis).UTC().Format(DayLayout)
}

// BuildCalendar returns every UTC day in [from, to] inclusive with a zero value.
// Callers normalize timezones before calling.
func BuildCalendar(fromMillis, toMillis int64) (model.CalendarSeries, error) {
	if toMillis < fromMillis {
		return nil, &InvalidRangeError{From: fromMillis, To: toMillis}
	}
	start := truncateDay(time.UnixMilli(fromMillis).UTC())
	end := truncateDay(time.UnixMilli(toMillis).UTC())

	days := int(end.Sub(start).Hours()/24) + 1
	out := make(model.CalendarSeries, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, model.DaySample{Day: d.Format(DayLayout)})
	}
	return out, nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
