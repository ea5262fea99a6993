package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/diary-stats-service/internal/model"
)

func seriesOf(t *testing.T, from string, values []float64) model.CalendarSeries {
	t.Helper()
	start := millis(t, from)
	cal, err := BuildCalendar(start, start+int64(len(values)-1)*24*60*60*1000)
	require.NoError(t, err)
	require.Len(t, cal, len(values))
	for i := range cal {
		cal[i].Value = values[i]
	}
	return cal
}

func TestSplitIfLong_ShortSeriesUnchanged(t *testing.T) {
	s := seriesOf(t, "2024-01-01T00:00:00Z", make([]float64, SplitThreshold-1))
	assert.Equal(t, s, SplitIfLong(s, RangeLast90))
}

func TestSplitIfLong_UnknownKindUnchanged(t *testing.T) {
	s := seriesOf(t, "2024-01-01T00:00:00Z", make([]float64, 60))
	assert.Equal(t, s, SplitIfLong(s, RangeKind("fortnight")))
}

func TestSplitIfLong_WeeklyAverageOfNonZeroDays(t *testing.T) {
	values := make([]float64, 90)
	// first week: two active days
	values[0] = 2
	values[3] = 4
	// second week: idle
	// third week: one active day
	values[14] = 1.5
	s := seriesOf(t, "2024-01-01T00:00:00Z", values)

	got := SplitIfLong(s, RangeLast90)
	require.Len(t, got, 13) // 12 full weeks + 6 trailing days
	assert.Equal(t, "2024-01-01 - 2024-01-07", got[0].Day)
	assert.Equal(t, 3.0, got[0].Value)
	assert.Equal(t, "2024-01-08 - 2024-01-14", got[1].Day)
	assert.Equal(t, 0.0, got[1].Value)
	assert.Equal(t, 1.5, got[2].Value)
	assert.Equal(t, "2024-03-25 - 2024-03-30", got[12].Day)
}

func TestSplitIfLong_ThresholdTriggers(t *testing.T) {
	values := make([]float64, SplitThreshold)
	for i := range values {
		values[i] = 1
	}
	got := SplitIfLong(seriesOf(t, "2024-06-01T00:00:00Z", values), RangeLast30)
	require.Len(t, got, SplitThreshold/ChunkSize(RangeLast30))
	for _, d := range got {
		assert.Equal(t, 1.0, d.Value)
	}
}

func TestParseRangeKind(t *testing.T) {
	k, ok := ParseRangeKind(" LAST_365_DAYS ")
	assert.True(t, ok)
	assert.Equal(t, RangeLast365, k)
	assert.Equal(t, 30, ChunkSize(k))

	_, ok = ParseRangeKind("yesterday")
	assert.False(t, ok)
}
