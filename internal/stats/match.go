package stats

import (
	"math"

	"github.com/maxviazov/diary-stats-service/internal/model"
)

// roleTally accumulates minutes per role and remembers first-encounter order,
// so ties are resolved deterministically rather than by map iteration.
type roleTally struct {
	order   []string
	minutes map[string]int
}

func (t *roleTally) add(role string, minutes int) {
	if t.minutes == nil {
		t.minutes = make(map[string]int)
	}
	if _, seen := t.minutes[role]; !seen {
		t.order = append(t.order, role)
	}
	t.minutes[role] += minutes
}

// mode returns the role with the most minutes, first encountered on ties.
func (t *roleTally) mode() *string {
	if len(t.order) == 0 {
		return nil
	}
	best := t.order[0]
	for _, r := range t.order[1:] {
		if t.minutes[r] > t.minutes[best] {
			best = r
		}
	}
	return &best
}

// AggregateMatches computes per-match averages over match and cap records.
// Other classes are ignored.
func AggregateMatches(records []ClassifiedRecord) model.MatchStatisticAverage {
	counts := model.NewCategoryTotals(model.MatchCategories)
	var (
		totals                 model.MatchTotals
		teamMinutes            int
		personalMinutes        int
		goalsFor, goalsAgainst int
		personal               EventCounts
		roles                  roleTally
	)

	for _, r := range records {
		if r.Class != ClassMatch || r.Match == nil {
			continue
		}
		m := r.Match
		counts[m.GameType]++
		teamMinutes += m.LengthMinutes
		for _, rm := range m.Roles {
			personalMinutes += rm.Minutes
			roles.add(rm.Role, rm.Minutes)
		}
		personal.Goals += m.Counts.Goals
		personal.Assists += m.Counts.Assists
		personal.Yellow += m.Counts.Yellow
		personal.Red += m.Counts.Red

		if m.HasResult {
			goalsFor += m.Result.YourTeam
			goalsAgainst += m.Result.Opponents
			switch m.Outcome() {
			case 1:
				totals.Wins++
			case 0:
				totals.Draws++
			default:
				totals.Losses++
			}
		}
	}

	totalMatches := counts.Sum()
	totals.Matches = int(totalMatches)

	playingShare := SafeDivide(float64(personalMinutes)/60, float64(teamMinutes)/60)

	return model.MatchStatisticAverage{
		MatchTypeCounts:           counts,
		MatchInTotalStatistic:     totals,
		NetScore:                  float64(max(goalsFor-goalsAgainst, 0)),
		AveragePoint:              floorTo1(SafeDivide(float64(3*totals.Wins+totals.Draws), totalMatches)),
		AveragePlayingTimePercent: math.Floor(playingShare*100 + 1e-9),
		AverageGoal:               floorTo1(SafeDivide(float64(personal.Goals), totalMatches)),
		AverageAssist:             floorTo1(SafeDivide(float64(personal.Assists), totalMatches)),
		AverageCard:               floorTo1(SafeDivide(float64(personal.Yellow+personal.Red), totalMatches)),
		MostPlayedRole:            roles.mode(),
	}
}
