package stats

import (
	"strings"

	"github.com/maxviazov/diary-stats-service/internal/model"
)

// Mode selects between a single user's sums and a population average.
type Mode string

const (
	ModePersonal Mode = "personal"
	ModeAverage  Mode = "average"
)

// ParseMode accepts "personal" and "average"; empty means personal.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModePersonal:
		return ModePersonal, true
	case ModeAverage:
		return ModeAverage, true
	default:
		return "", false
	}
}

// SeasonSet lists seasons whose records are already represented elsewhere,
// typically by historic entries.
type SeasonSet map[string]struct{}

// NewSeasonSet builds a set, ignoring blanks.
func NewSeasonSet(seasons ...string) SeasonSet {
	s := make(SeasonSet, len(seasons))
	for _, v := range seasons {
		if v = strings.TrimSpace(v); v != "" {
			s[v] = struct{}{}
		}
	}
	return s
}

// Has reports membership; a nil set contains nothing.
func (s SeasonSet) Has(season string) bool {
	_, ok := s[season]
	return ok
}

// owners tracks distinct contributing owners per category.
type owners map[string]map[string]struct{}

func (o owners) add(category, owner string) {
	set, ok := o[category]
	if !ok {
		set = make(map[string]struct{})
		o[category] = set
	}
	set[owner] = struct{}{}
}

func (o owners) count(category string) float64 { return float64(len(o[category])) }

// AggregateDiary folds classified records into per-category totals and
// percentage breakdowns in a single pass. Training records from excluded
// seasons are skipped; matches and caps are always counted. In ModeAverage each category total is divided by the number of
// distinct owners that contributed to it.
func AggregateDiary(records []ClassifiedRecord, mode Mode, exclude SeasonSet) model.DiaryStats {
	sessions := model.NewCategoryTotals(model.TrainingCategories)
	hours := model.NewCategoryTotals(model.TrainingCategories)
	skills := model.NewCategoryTotals(model.SkillCategories)
	matches := model.NewCategoryTotals(model.MatchCategories)
	results := model.NewCategoryTotals(model.ResultCategories)

	contributors := owners{}
	const skillsKey, resultsKey = "_skills", "_results"

	for _, r := range records {
		if r.Class == ClassTraining && exclude.Has(r.Season) {
			continue
		}
		switch r.Class {
		case ClassTraining:
			t := r.Training
			hours[t.Category] += t.Hours
			sessions[t.Category] += t.Sessions
			skills[model.SkillTechnical] += t.Technical
			skills[model.SkillTactical] += t.Tactical
			skills[model.SkillMental] += t.Mental
			skills[model.SkillPhysical] += t.Physical
			contributors.add(t.Category, r.OwnerID)
			contributors.add(skillsKey, r.OwnerID)
		case ClassMatch:
			m := r.Match
			matches[m.GameType]++
			contributors.add(m.GameType, r.OwnerID)
			if !m.HasResult {
				continue
			}
			switch m.Outcome() {
			case 1:
				results[model.ResultWins]++
			case 0:
				results[model.ResultDraws]++
			default:
				results[model.ResultLosses]++
			}
			contributors.add(resultsKey, r.OwnerID)
		}
	}

	if mode == ModeAverage {
		for _, k := range model.TrainingCategories {
			hours[k] = SafeDivide(hours[k], contributors.count(k))
			sessions[k] = SafeDivide(sessions[k], contributors.count(k))
		}
		for _, k := range model.SkillCategories {
			skills[k] = SafeDivide(skills[k], contributors.count(skillsKey))
		}
		for _, k := range model.MatchCategories {
			matches[k] = SafeDivide(matches[k], contributors.count(k))
		}
		for _, k := range model.ResultCategories {
			results[k] = SafeDivide(results[k], contributors.count(resultsKey))
		}
	}

	skillPercent := breakdown(model.SkillCategories, skills)
	skillHours := ToHours(percentValues(model.SkillCategories, skillPercent), hours.Sum())

	out := model.DiaryStats{
		Sessions:                sessions,
		Hours:                   hours,
		TrainingCategoryPercent: breakdown(model.TrainingCategories, hours),
		Skills:                  skills,
		SkillPercent:            skillPercent,
		SkillHours:              model.NewCategoryTotals(model.SkillCategories),
		Matches:                 matches,
		MatchResults:            results,
		MatchResultPercent:      breakdown(model.ResultCategories, results),
	}
	for i, k := range model.SkillCategories {
		out.SkillHours[k] = skillHours[i]
	}
	return out
}

// breakdown runs ToPercent over totals in key order and maps the result back.
func breakdown(keys []string, totals model.CategoryTotals) model.PercentageBreakdown {
	pct := ToPercent(totals.Values(keys))
	out := make(model.PercentageBreakdown, len(keys))
	for i, k := range keys {
		out[k] = pct[i]
	}
	return out
}

func percentValues(keys []string, b model.PercentageBreakdown) []int {
	out := make([]int, len(keys))
	for i, k := range keys {
		out[i] = b[k]
	}
	return out
}
