package model

// Category keys. The slices fix the order categories are allocated in,
// which matters for the remainder rule of percentage allocation.
const (
	CategoryGroup    = "group"
	CategoryPersonal = "personal"
	CategoryTeam     = "team"
	CategoryHistoric = "historic"

	CategoryCup      = "cup"
	CategorySeries   = "series"
	CategoryFriendly = "friendly"
	CategoryCap      = "cap"
	CategoryOther    = "other"

	ResultWins   = "wins"
	ResultDraws  = "draws"
	ResultLosses = "losses"

	SkillTechnical = "technical"
	SkillTactical  = "tactical"
	SkillMental    = "mental"
	SkillPhysical  = "physical"
)

var (
	TrainingCategories = []string{CategoryGroup, CategoryPersonal, CategoryTeam, CategoryHistoric}
	MatchCategories    = []string{CategoryCup, CategorySeries, CategoryFriendly, CategoryCap, CategoryOther}
	ResultCategories   = []string{ResultWins, ResultDraws, ResultLosses}
	SkillCategories    = []string{SkillTechnical, SkillTactical, SkillMental, SkillPhysical}
)

// CategoryTotals maps a category to a non-negative total. Every key of the
// category family is present, zero when nothing contributed.
type CategoryTotals map[string]float64

// NewCategoryTotals returns totals with all keys initialised to zero.
func NewCategoryTotals(keys []string) CategoryTotals {
	t := make(CategoryTotals, len(keys))
	for _, k := range keys {
		t[k] = 0
	}
	return t
}

// Values returns totals in the given key order.
func (t CategoryTotals) Values(keys []string) []float64 {
	out := make([]float64, len(keys))
	for i, k := range keys {
		out[i] = t[k]
	}
	return out
}

// Sum adds all totals.
func (t CategoryTotals) Sum() float64 {
	var s float64
	for _, v := range t {
		s += v
	}
	return s
}

// PercentageBreakdown maps the same category keys to integer percentages.
type PercentageBreakdown map[string]int

// DaySample is a single chart point. Day is "YYYY-MM-DD", or
// "YYYY-MM-DD - YYYY-MM-DD" once a series has been split into periods.
type DaySample struct {
	Day   string  `json:"day"`
	Value float64 `json:"value"`
}

// CalendarSeries is an ascending, gap-free run of days.
type CalendarSeries []DaySample

// DiaryStats is the read-only result of a diary aggregation.
type DiaryStats struct {
	Sessions                CategoryTotals      `json:"sessions"`
	Hours                   CategoryTotals      `json:"hours"`
	TrainingCategoryPercent PercentageBreakdown `json:"training_category_percent"`
	Skills                  CategoryTotals      `json:"skills"`
	SkillPercent            PercentageBreakdown `json:"skill_percent"`
	SkillHours              CategoryTotals      `json:"skill_hours"`
	Matches                 CategoryTotals      `json:"matches"`
	MatchResults            CategoryTotals      `json:"match_results"`
	MatchResultPercent      PercentageBreakdown `json:"match_result_percent"`
}

// MatchTotals counts matches and their outcomes.
type MatchTotals struct {
	Matches int `json:"matches"`
	Wins    int `json:"wins"`
	Draws   int `json:"draws"`
	Losses  int `json:"losses"`
}

// MatchStatisticAverage is a snapshot of per-match averages for a window
// or a closed season.
type MatchStatisticAverage struct {
	MatchTypeCounts           CategoryTotals `json:"match_type_counts"`
	MatchInTotalStatistic     MatchTotals    `json:"match_in_total_statistic"`
	NetScore                  float64        `json:"net_score"`
	AveragePoint              float64        `json:"average_point"`
	AveragePlayingTimePercent float64        `json:"average_playing_time_percent"`
	AverageGoal               float64        `json:"average_goal"`
	AverageAssist             float64        `json:"average_assist"`
	AverageCard               float64        `json:"average_card"`
	MostPlayedRole            *string        `json:"most_played_role"`
}

// TrendDirection is the arrow shown when comparing two windows.
type TrendDirection string

const (
	TrendVeryStrong TrendDirection = "VERY_STRONG"
	TrendStrong     TrendDirection = "STRONG"
	TrendNeutral    TrendDirection = "NEUTRAL"
	TrendBad        TrendDirection = "BAD"
	TrendVeryBad    TrendDirection = "VERY_BAD"
)

// MetricTrend is one compared metric.
type MetricTrend struct {
	Current       float64        `json:"current"`
	Previous      float64        `json:"previous"`
	PercentChange float64        `json:"percent_change"`
	Direction     TrendDirection `json:"direction"`
}

// MatchTrend compares two equal-length windows metric by metric.
type MatchTrend struct {
	Matches                   MetricTrend `json:"matches"`
	NetScore                  MetricTrend `json:"net_score"`
	AveragePoint              MetricTrend `json:"average_point"`
	AveragePlayingTimePercent MetricTrend `json:"average_playing_time_percent"`
	AverageGoal               MetricTrend `json:"average_goal"`
	AverageAssist             MetricTrend `json:"average_assist"`
	AverageCard               MetricTrend `json:"average_card"`
}
