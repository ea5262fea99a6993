package stats

import (
	"cmp"
	"slices"

	"github.com/maxviazov/diary-stats-service/internal/model"
)

// AggregateSameDay sums consecutive samples that share a day. Input must be
// sorted by day; MergeOntoCalendar takes care of that for its callers.
func AggregateSameDay(samples []model.DaySample) []model.DaySample {
	out := make([]model.DaySample, 0, len(samples))
	for _, s := range samples {
		if n := len(out); n > 0 && out[n-1].Day == s.Day {
			out[n-1].Value += s.Value
			continue
		}
		out = append(out, s)
	}
	return out
}

// MergeOntoCalendar overlays samples onto a calendar skeleton. Samples are
// stable-sorted by day first, same-day samples are summed, and days without
// samples keep the calendar's value. Samples outside the calendar are dropped,
// so the result always has the calendar's length.
func MergeOntoCalendar(calendar model.CalendarSeries, samples []model.DaySample) model.CalendarSeries {
	sorted := slices.Clone(samples)
	slices.SortStableFunc(sorted, func(a, b model.DaySample) int { return cmp.Compare(a.Day, b.Day) })

	byDay := make(map[string]float64, len(sorted))
	for _, s := range AggregateSameDay(sorted) {
		byDay[s.Day] = s.Value
	}

	out := make(model.CalendarSeries, len(calendar))
	for i, d := range calendar {
		out[i] = d
		if v, ok := byDay[d.Day]; ok {
			out[i].Value = v
		}
	}
	return out
}
