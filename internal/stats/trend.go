package stats

import "github.com/maxviazov/diary-stats-service/internal/model"

// Trend thresholds in percent. The increase branch is inclusive and the
// decrease branch exclusive: +50% is VERY_STRONG while -50% is only BAD.
const (
	veryStrongThreshold = 50.0
	veryBadThreshold    = -50.0
)

// CompareMetric classifies the change from previous to current.
// A change from zero has no defined percentage; it is reported as 0% with
// the direction still taken from the sign of the change.
func CompareMetric(current, previous float64) model.MetricTrend {
	out := model.MetricTrend{Current: current, Previous: previous, Direction: model.TrendNeutral}
	if current == previous {
		return out
	}
	out.PercentChange = SafeDivide(current-previous, previous) * 100

	if current > previous {
		if out.PercentChange >= veryStrongThreshold {
			out.Direction = model.TrendVeryStrong
		} else {
			out.Direction = model.TrendStrong
		}
		return out
	}
	if out.PercentChange < veryBadThreshold {
		out.Direction = model.TrendVeryBad
	} else {
		out.Direction = model.TrendBad
	}
	return out
}

// CompareMatchStats compares two aggregations over adjacent, equal-length
// windows. Window construction is the caller's job.
func CompareMatchStats(current, previous model.MatchStatisticAverage) model.MatchTrend {
	return model.MatchTrend{
		Matches: CompareMetric(
			float64(current.MatchInTotalStatistic.Matches),
			float64(previous.MatchInTotalStatistic.Matches),
		),
		NetScore:                  CompareMetric(current.NetScore, previous.NetScore),
		AveragePoint:              CompareMetric(current.AveragePoint, previous.AveragePoint),
		AveragePlayingTimePercent: CompareMetric(current.AveragePlayingTimePercent, previous.AveragePlayingTimePercent),
		AverageGoal:               CompareMetric(current.AverageGoal, previous.AverageGoal),
		AverageAssist:             CompareMetric(current.AverageAssist, previous.AverageAssist),
		AverageCard:               CompareMetric(current.AverageCard, previous.AverageCard),
	}
}
