package service

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/maxviazov/diary-stats-service/internal/model"
	"github.com/maxviazov/diary-stats-service/internal/stats"
)

const (
	maxOwnerIDLen = 128
	// maxWindowDays caps a chart calendar; "all" windows cover a career, not eternity.
	maxWindowDays = 366 * 20
	maxTrendDays  = 1095
	dayMillis     = int64(24 * 60 * 60 * 1000)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// IsValidSeason accepts "YYYY" and "YYYY-YY" where YY is the following year,
// e.g. "2023-24" or "1999-00".
func IsValidSeason(s string) bool {
	first, second, split := strings.Cut(s, "-")
	if len(first) != 4 || !allDigits(first) {
		return false
	}
	if !split {
		return true
	}
	if len(second) != 2 || !allDigits(second) {
		return false
	}
	y, _ := strconv.Atoi(first)
	next, _ := strconv.Atoi(second)
	return (y+1)%100 == next
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func normalizeOwnerID(id string) string { return strings.TrimSpace(id) }

func checkOwnerID(id string) []FieldError {
	switch {
	case id == "":
		return []FieldError{{Field: "owner_id", Message: "is required"}}
	case len(id) > maxOwnerIDLen:
		return []FieldError{{Field: "owner_id", Message: fmt.Sprintf("must be at most %d characters", maxOwnerIDLen)}}
	}
	return nil
}

// checkWindow reports negative bounds as field errors. A reversed window is
// returned separately as *stats.InvalidRangeError.
func checkWindow(from, to int64) ([]FieldError, error) {
	var ferrs []FieldError
	if from < 0 {
		ferrs = append(ferrs, FieldError{Field: "from", Message: "must be >= 0"})
	}
	if to < 0 {
		ferrs = append(ferrs, FieldError{Field: "to", Message: "must be >= 0"})
	}
	if len(ferrs) > 0 {
		return ferrs, nil
	}
	if to < from {
		return nil, &stats.InvalidRangeError{From: from, To: to}
	}
	return nil, nil
}

// validateRecord normalizes rec in place and returns every problem found.
func validateRecord(rec *model.ActivityRecord) error {
	rec.OwnerID = normalizeOwnerID(rec.OwnerID)
	ferrs := checkOwnerID(rec.OwnerID)

	if rec.CreatedAt <= 0 {
		ferrs = append(ferrs, FieldError{Field: "created_at", Message: "must be a positive epoch millis timestamp"})
	}
	if rec.Season != nil {
		s := strings.TrimSpace(*rec.Season)
		switch {
		case s == "":
			rec.Season = nil
		case !IsValidSeason(s):
			ferrs = append(ferrs, FieldError{Field: "season", Message: "must be YYYY or YYYY-YY"})
		default:
			rec.Season = &s
		}
	}

	switch rec.Kind {
	case model.KindTraining:
		ferrs = append(ferrs, checkTraining(rec.Training)...)
		if rec.Match != nil {
			ferrs = append(ferrs, FieldError{Field: "match", Message: "must be empty for a training"})
		}
	case model.KindMatch, model.KindCap:
		ferrs = append(ferrs, checkMatch(rec.Kind, rec.Match)...)
		if rec.Training != nil {
			ferrs = append(ferrs, FieldError{Field: "training", Message: "must be empty for a " + string(rec.Kind)})
		}
	case model.KindRest:
		if rec.Training != nil || rec.Match != nil {
			ferrs = append(ferrs, FieldError{Field: "kind", Message: "rest records carry no details"})
		}
	default:
		ferrs = append(ferrs, FieldError{Field: "kind", Message: "must be one of training, match, cap, rest"})
	}
	return NewInvalidInputError(ferrs)
}

func checkTraining(t *model.TrainingDetails) []FieldError {
	if t == nil {
		return []FieldError{{Field: "training", Message: "is required"}}
	}
	ferrs := structErrors("training", t)
	switch t.TrainingType {
	case model.TrainingTeam, model.TrainingGroup, model.TrainingPersonal:
	case model.TrainingHistoric:
		if t.Historic == nil {
			ferrs = append(ferrs, FieldError{Field: "training.historic", Message: "is required for historic trainings"})
		}
	default:
		ferrs = append(ferrs, FieldError{Field: "training.training_type", Message: "must be one of team, group, personal, historic"})
	}
	return ferrs
}

func checkMatch(kind model.ActivityKind, m *model.MatchDetails) []FieldError {
	if m == nil {
		return []FieldError{{Field: "match", Message: "is required"}}
	}
	ferrs := structErrors("match", m)
	if kind == model.KindMatch {
		switch m.GameType {
		case model.GameCup, model.GameSeries, model.GameFriendly, model.GameOther:
		default:
			ferrs = append(ferrs, FieldError{Field: "match.game_type", Message: "must be one of cup, series, friendly, other"})
		}
	}
	for i, ev := range m.Events {
		switch ev.Event {
		case model.EventGoal, model.EventAssist, model.EventYellowCard, model.EventRedCard:
		default:
			ferrs = append(ferrs, FieldError{Field: fmt.Sprintf("match.events[%d].event", i), Message: "unknown event"})
		}
	}
	return ferrs
}

// structErrors runs the validate tags of v and converts failures to
// FieldErrors rooted at prefix.
func structErrors(prefix string, v any) []FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: prefix, Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		// Namespace is "TrainingDetails.skills.technical"; drop the type name.
		_, path, _ := strings.Cut(fe.Namespace(), ".")
		out = append(out, FieldError{Field: prefix + "." + path, Message: ruleMessage(fe)})
	}
	return out
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return "must be >= " + fe.Param()
	case "required":
		return "is required"
	default:
		return "failed " + fe.Tag() + " rule"
	}
}

// ParseSeasons splits a comma separated list, dropping blanks.
func ParseSeasons(csv string) []string {
	var out []string
	for _, s := range strings.Split(csv, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
