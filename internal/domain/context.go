package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// ConversationContext es una foto de solo lectura de una relacion.
// Se reconstruye en cada request; no se cachea dentro del core.
type ConversationContext struct {
	Relationship         Relationship    `json:"relationship"`
	RecentMessages       []Message       `json:"recent_messages"`
	ImportantMoments     []Message       `json:"important_moments"`
	RelationshipDuration int             `json:"relationship_duration_days"`
	TotalMessages        int             `json:"total_messages"`
	Themes               []string        `json:"themes"`
	Preferences          UserPreferences `json:"preferences"`
	LastInteraction      *time.Time      `json:"last_interaction,omitempty"`
}

const (
	TimeOfDayMorning   = "morning"
	TimeOfDayAfternoon = "afternoon"
	TimeOfDayEvening   = "evening"
	TimeOfDayNight     = "night"
)

type TemporalContext struct {
	Now                 time.Time    `json:"now"`
	TimeOfDay           string       `json:"time_of_day"`
	DayOfWeek           time.Weekday `json:"day_of_week"`
	IsWeekend           bool         `json:"is_weekend"`
	RelationshipAgeDays int          `json:"relationship_age_days"`
	IdleGapHours        float64      `json:"idle_gap_hours"`
	TurnCount           int          `json:"turn_count"`
}

// UserPreferences se lee de la bolsa JSON opaca del usuario. El core nunca la escribe.
type UserPreferences struct {
	Language       string         `json:"language,omitempty"`
	Region         string         `json:"region,omitempty"`
	Timezone       string         `json:"timezone,omitempty"`
	Formality      string         `json:"formality,omitempty"`
	ResponseLength string         `json:"responseLength,omitempty"`
	Humor          *bool          `json:"humor,omitempty"`
	Emoji          *bool          `json:"emoji,omitempty"`
	AvoidTopics    []string       `json:"avoidTopics,omitempty"`
	Raw            map[string]any `json:"-"`
}

// ParseUserPreferences tolera bolsas vacias o invalidas devolviendo preferencias vacias.
func ParseUserPreferences(raw []byte) UserPreferences {
	var prefs UserPreferences
	if len(strings.TrimSpace(string(raw))) == 0 {
		return prefs
	}
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return UserPreferences{}
	}
	var bag map[string]any
	if err := json.Unmarshal(raw, &bag); err == nil {
		prefs.Raw = bag
	}
	prefs.Language = strings.TrimSpace(prefs.Language)
	prefs.Region = strings.TrimSpace(prefs.Region)
	prefs.Timezone = strings.TrimSpace(prefs.Timezone)
	prefs.Formality = strings.ToLower(strings.TrimSpace(prefs.Formality))
	prefs.ResponseLength = strings.ToLower(strings.TrimSpace(prefs.ResponseLength))
	return prefs
}
