package stats

import "github.com/maxviazov/diary-stats-service/internal/model"

// CombineHistoric blends a live window with closed-season summaries.
//
// Rate fields are averaged with every season weighted equally, regardless of
// how many matches it had. The live window only takes part when it contains
// matches. Counts are summed, not averaged.
func CombineHistoric(live model.MatchStatisticAverage, seasons []model.MatchStatisticAverage) model.MatchStatisticAverage {
	out := model.MatchStatisticAverage{
		MatchTypeCounts: model.NewCategoryTotals(model.MatchCategories),
	}

	samples := make([]model.MatchStatisticAverage, 0, len(seasons)+1)
	if live.MatchInTotalStatistic.Matches > 0 {
		samples = append(samples, live)
	}
	samples = append(samples, seasons...)

	var netScore, point, playing, goal, assist, card float64
	for _, s := range samples {
		netScore += s.NetScore
		point += s.AveragePoint
		playing += s.AveragePlayingTimePercent
		goal += s.AverageGoal
		assist += s.AverageAssist
		card += s.AverageCard

		for k, v := range s.MatchTypeCounts {
			out.MatchTypeCounts[k] += v
		}
		out.MatchInTotalStatistic.Matches += s.MatchInTotalStatistic.Matches
		out.MatchInTotalStatistic.Wins += s.MatchInTotalStatistic.Wins
		out.MatchInTotalStatistic.Draws += s.MatchInTotalStatistic.Draws
		out.MatchInTotalStatistic.Losses += s.MatchInTotalStatistic.Losses
	}

	divisor := float64(len(samples))
	out.NetScore = floorTo1(SafeDivide(netScore, divisor))
	out.AveragePoint = floorTo1(SafeDivide(point, divisor))
	out.AveragePlayingTimePercent = floorTo1(SafeDivide(playing, divisor))
	out.AverageGoal = floorTo1(SafeDivide(goal, divisor))
	out.AverageAssist = floorTo1(SafeDivide(assist, divisor))
	out.AverageCard = floorTo1(SafeDivide(card, divisor))

	if live.MostPlayedRole != nil {
		role := *live.MostPlayedRole
		out.MostPlayedRole = &role
	} else {
		for _, s := range seasons {
			if s.MostPlayedRole != nil {
				role := *s.MostPlayedRole
				out.MostPlayedRole = &role
				break
			}
		}
	}
	return out
}
