package stats

import (
	"fmt"
	"strings"

	"github.com/maxviazov/diary-stats-service/internal/model"
)

// RangeKind names a chart window.
type RangeKind string

const (
	RangeLast30   RangeKind = "last_30_days"
	RangeLast90   RangeKind = "last_90_days"
	RangeLast180  RangeKind = "last_180_days"
	RangeLast365  RangeKind = "last_365_days"
	RangeLast1095 RangeKind = "last_1095_days"
	RangeAll      RangeKind = "all"
)

// SplitThreshold is the series length at which charts get down-sampled.
const SplitThreshold = 30

// chunkSizes is the number of days folded into one chart point per window.
var chunkSizes = map[RangeKind]int{
	RangeLast30:   3,
	RangeLast90:   7,
	RangeLast180:  14,
	RangeLast365:  30,
	RangeLast1095: 90,
	RangeAll:      90,
}

// ParseRangeKind accepts the canonical names case-insensitively.
func ParseRangeKind(s string) (RangeKind, bool) {
	k := RangeKind(strings.ToLower(strings.TrimSpace(s)))
	_, ok := chunkSizes[k]
	return k, ok
}

// ChunkSize reports the chunk size for a range kind, 0 if unknown.
func ChunkSize(kind RangeKind) int { return chunkSizes[kind] }

// SplitIfLong down-samples series of SplitThreshold days or more into chunks
// labelled "{first} - {last}". A chunk's value is the mean of its non-zero
// days; an all-zero chunk reports 0. Short series and unknown kinds are
// returned unchanged.
func SplitIfLong(series model.CalendarSeries, kind RangeKind) model.CalendarSeries {
	size := chunkSizes[kind]
	if len(series) < SplitThreshold || size <= 0 {
		return series
	}

	out := make(model.CalendarSeries, 0, (len(series)+size-1)/size)
	for start := 0; start < len(series); start += size {
		end := min(start+size, len(series))
		chunk := series[start:end]

		var sum float64
		nonZero := 0
		for _, d := range chunk {
			if d.Value != 0 {
				sum += d.Value
				nonZero++
			}
		}
		divisor := float64(max(nonZero, 1))

		out = append(out, model.DaySample{
			Day:   fmt.Sprintf("%s - %s", chunk[0].Day, chunk[len(chunk)-1].Day),
			Value: sum / divisor,
		})
	}
	return out
}
