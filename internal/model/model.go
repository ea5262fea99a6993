// Package model contains domain entities and DTOs used across layers.
// Methods here are limited to derived keys; aggregation lives in internal/stats.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ActivityKind discriminates the diary record union.
type ActivityKind string

const (
	KindTraining ActivityKind = "training"
	KindMatch    ActivityKind = "match"
	KindCap      ActivityKind = "cap"
	KindRest     ActivityKind = "rest"
)

// TrainingType is the category a training session is booked under.
type TrainingType string

const (
	TrainingTeam     TrainingType = "team"
	TrainingGroup    TrainingType = "group"
	TrainingPersonal TrainingType = "personal"
	TrainingHistoric TrainingType = "historic"
)

// GameType is the competition a match belongs to. Caps carry none.
type GameType string

const (
	GameCup      GameType = "cup"
	GameSeries   GameType = "series"
	GameFriendly GameType = "friendly"
	GameOther    GameType = "other"
)

// EventType is a personal in-game event.
type EventType string

const (
	EventGoal       EventType = "GOAL"
	EventAssist     EventType = "ASSIST"
	EventYellowCard EventType = "YELLOW_CARD"
	EventRedCard    EventType = "RED_CARD"
)

// ProfileType tells players and coaches apart.
type ProfileType string

const (
	ProfilePlayer ProfileType = "player"
	ProfileCoach  ProfileType = "coach"
)

// ActivityRecord is a single logged diary entry for one user on one date.
// Exactly one of Training or Match is expected to be set, depending on Kind;
// Rest records carry neither.
type ActivityRecord struct {
	ID        uuid.UUID        `json:"id"`
	Kind      ActivityKind     `json:"kind"`
	OwnerID   string           `json:"owner_id"`
	CreatedAt int64            `json:"created_at"` // epoch millis
	Season    *string          `json:"season,omitempty"`
	Training  *TrainingDetails `json:"training,omitempty"`
	Match     *MatchDetails    `json:"match,omitempty"`
}

// SeasonKey is the explicit season label or, when absent, the UTC year of
// CreatedAt.
func (r ActivityRecord) SeasonKey() string {
	if r.Season != nil {
		if s := strings.TrimSpace(*r.Season); s != "" {
			return s
		}
	}
	return time.UnixMilli(r.CreatedAt).UTC().Format("2006")
}

// TrainingDetails holds the training-specific part of a diary record.
type TrainingDetails struct {
	TrainingType    TrainingType         `json:"training_type"`
	HoursOfPractice float64              `json:"hours_of_practice" validate:"gte=0"`
	Skills          SkillDistribution    `json:"skills"`
	Historic        *HistoricMultipliers `json:"historic,omitempty"`
}

// SkillDistribution scores are unitless weights.
type SkillDistribution struct {
	Technical float64 `json:"technical" validate:"gte=0"`
	Tactical  float64 `json:"tactical" validate:"gte=0"`
	Mental    float64 `json:"mental" validate:"gte=0"`
	Physical  float64 `json:"physical" validate:"gte=0"`
}

// HistoricMultipliers describe a closed season entered as weekly averages
// instead of individual sessions.
type HistoricMultipliers struct {
	WeeksTeam     float64 `json:"weeks_team" validate:"gte=0"`
	AvgTeam       float64 `json:"avg_team" validate:"gte=0"`
	WeeksPersonal float64 `json:"weeks_personal" validate:"gte=0"`
	AvgPersonal   float64 `json:"avg_personal" validate:"gte=0"`
}

// MatchDetails is shared by match and cap records.
type MatchDetails struct {
	GameType       GameType     `json:"game_type,omitempty"`
	LengthMinutes  int          `json:"length_minutes" validate:"gte=0"`
	Result         *MatchResult `json:"result,omitempty"`
	PerPlayerStats []PlayerStat `json:"per_player_stats,omitempty" validate:"dive"`
	Events         []MatchEvent `json:"events,omitempty"`
}

// MatchResult is the final score from the owner's team perspective.
type MatchResult struct {
	YourTeam  int `json:"your_team" validate:"gte=0"`
	Opponents int `json:"opponents" validate:"gte=0"`
}

// PlayerStat is the owner's time on the pitch in a given role.
type PlayerStat struct {
	Role          string `json:"role"`
	MinutesPlayed int    `json:"minutes_played" validate:"gte=0"`
}

// MatchEvent is a single personal event.
type MatchEvent struct {
	Event EventType `json:"event"`
}

// SeasonSummary is a closed season's pre-aggregated match statistics.
type SeasonSummary struct {
	OwnerID string                `json:"owner_id"`
	Season  string                `json:"season"`
	Stats   MatchStatisticAverage `json:"stats"`
}
