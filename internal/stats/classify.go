package stats

import (
	"strings"

	"github.com/maxviazov/diary-stats-service/internal/model"
)

// Class is the normalized shape a record was classified into.
type Class string

const (
	ClassTraining Class = "training"
	ClassMatch    Class = "match"
	// ClassNeutral contributes nothing. Rest days and records missing their
	// discriminant fields land here instead of failing the aggregation.
	ClassNeutral Class = "neutral"
)

// ClassifiedRecord is an ActivityRecord reduced to the fields aggregation needs.
type ClassifiedRecord struct {
	Class     Class
	OwnerID   string
	Season    string // explicit season or, when absent, the UTC year of CreatedAt
	CreatedAt int64
	Training  *TrainingFacts
	Match     *MatchFacts
}

// Day returns the UTC calendar date of the record.
func (r ClassifiedRecord) Day() string { return DayKey(r.CreatedAt) }

// TrainingFacts are the numeric contributions of a training record.
type TrainingFacts struct {
	Category  string
	Hours     float64
	Sessions  float64
	Technical float64
	Tactical  float64
	Mental    float64
	Physical  float64
}

// MatchFacts are the numeric contributions of a match or cap record.
type MatchFacts struct {
	GameType      string
	LengthMinutes int
	Result        model.MatchResult
	HasResult     bool
	Roles         []RoleMinutes
	Counts        EventCounts
}

// RoleMinutes is time spent in one role.
type RoleMinutes struct {
	Role    string
	Minutes int
}

// EventCounts tallies personal events of a single match.
type EventCounts struct {
	Goals   int
	Assists int
	Yellow  int
	Red     int
}

// Outcome compares the two scores: 1 win, 0 draw, -1 loss.
func (m MatchFacts) Outcome() int {
	switch {
	case m.Result.YourTeam > m.Result.Opponents:
		return 1
	case m.Result.YourTeam < m.Result.Opponents:
		return -1
	default:
		return 0
	}
}

// Classify normalizes a raw record. It never fails: partial or legacy records
// are classified as neutral.
func Classify(rec model.ActivityRecord) ClassifiedRecord {
	out := ClassifiedRecord{
		Class:     ClassNeutral,
		OwnerID:   rec.OwnerID,
		Season:    rec.SeasonKey(),
		CreatedAt: rec.CreatedAt,
	}

	switch rec.Kind {
	case model.KindTraining:
		if facts, ok := classifyTraining(rec.Training); ok {
			out.Class = ClassTraining
			out.Training = facts
		}
	case model.KindMatch, model.KindCap:
		if rec.Match == nil {
			return out
		}
		out.Class = ClassMatch
		out.Match = classifyMatch(rec.Kind, rec.Match)
	}
	return out
}

// ClassifyAll classifies a batch, preserving order.
func ClassifyAll(recs []model.ActivityRecord) []ClassifiedRecord {
	out := make([]ClassifiedRecord, len(recs))
	for i, r := range recs {
		out[i] = Classify(r)
	}
	return out
}

func classifyTraining(t *model.TrainingDetails) (*TrainingFacts, bool) {
	if t == nil {
		return nil, false
	}
	facts := &TrainingFacts{
		Technical: clampNonNegative(t.Skills.Technical),
		Tactical:  clampNonNegative(t.Skills.Tactical),
		Mental:    clampNonNegative(t.Skills.Mental),
		Physical:  clampNonNegative(t.Skills.Physical),
	}
	hours := clampNonNegative(t.HoursOfPractice)

	switch t.TrainingType {
	case model.TrainingGroup, model.TrainingPersonal, model.TrainingTeam:
		facts.Category = string(t.TrainingType)
		facts.Sessions = 1
		facts.Hours = hours
	case model.TrainingHistoric:
		facts.Category = model.CategoryHistoric
		if h := t.Historic; h != nil {
			facts.Sessions = clampNonNegative(h.WeeksTeam*h.AvgTeam + h.WeeksPersonal*h.AvgPersonal)
			facts.Hours = facts.Sessions * hours
		}
	default:
		return nil, false
	}
	return facts, true
}

func classifyMatch(kind model.ActivityKind, m *model.MatchDetails) *MatchFacts {
	facts := &MatchFacts{
		GameType:      gameCategory(kind, m.GameType),
		LengthMinutes: max(m.LengthMinutes, 0),
	}
	if m.Result != nil {
		facts.HasResult = true
		facts.Result = model.MatchResult{
			YourTeam:  max(m.Result.YourTeam, 0),
			Opponents: max(m.Result.Opponents, 0),
		}
	}
	for _, ps := range m.PerPlayerStats {
		role := strings.TrimSpace(ps.Role)
		if role == "" {
			continue
		}
		facts.Roles = append(facts.Roles, RoleMinutes{Role: role, Minutes: max(ps.MinutesPlayed, 0)})
	}
	for _, ev := range m.Events {
		switch ev.Event {
		case model.EventGoal:
			facts.Counts.Goals++
		case model.EventAssist:
			facts.Counts.Assists++
		case model.EventYellowCard:
			facts.Counts.Yellow++
		case model.EventRedCard:
			facts.Counts.Red++
		}
	}
	return facts
}

func gameCategory(kind model.ActivityKind, gt model.GameType) string {
	if kind == model.KindCap {
		return model.CategoryCap
	}
	switch gt {
	case model.GameCup, model.GameSeries, model.GameFriendly:
		return string(gt)
	default:
		return model.CategoryOther
	}
}
