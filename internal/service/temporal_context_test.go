package service

import (
	"math"
	"testing"
	"time"

	"companion-llm/internal/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTimeOfDay(t *testing.T) {
	cases := map[int]string{
		4:  domain.TimeOfDayNight,
		5:  domain.TimeOfDayMorning,
		11: domain.TimeOfDayMorning,
		12: domain.TimeOfDayAfternoon,
		16: domain.TimeOfDayAfternoon,
		17: domain.TimeOfDayEvening,
		20: domain.TimeOfDayEvening,
		21: domain.TimeOfDayNight,
		0:  domain.TimeOfDayNight,
	}
	for hour, want := range cases {
		if got := timeOfDay(hour); got != want {
			t.Fatalf("hour %d: expected %s, got %s", hour, want, got)
		}
	}
}

func TestTemporalContextBuilder_Build(t *testing.T) {
	// Sabado 2024-06-15 09:00 UTC.
	now := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	last := now.Add(-10 * time.Minute)
	convCtx := domain.ConversationContext{
		Relationship: domain.Relationship{CreatedAt: now.Add(-72*time.Hour - time.Hour)},
		RecentMessages: []domain.Message{
			{CreatedAt: now.Add(-5 * time.Hour)},
			{CreatedAt: now.Add(-25 * time.Minute)},
			{CreatedAt: now.Add(-15 * time.Minute)},
			{CreatedAt: last},
		},
		LastInteraction: &last,
	}

	got := NewTemporalContextBuilder(fixedClock(now)).Build(convCtx)
	if got.TimeOfDay != domain.TimeOfDayMorning {
		t.Fatalf("expected morning, got %s", got.TimeOfDay)
	}
	if !got.IsWeekend || got.DayOfWeek != time.Saturday {
		t.Fatalf("expected saturday weekend, got %v weekend=%v", got.DayOfWeek, got.IsWeekend)
	}
	if got.RelationshipAgeDays != 3 {
		t.Fatalf("expected age 3 days, got %d", got.RelationshipAgeDays)
	}
	if math.Abs(got.IdleGapHours-10.0/60.0) > 1e-9 {
		t.Fatalf("expected idle gap of 10 minutes, got %v", got.IdleGapHours)
	}
	if got.TurnCount != 3 {
		t.Fatalf("expected 3 turns in session, got %d", got.TurnCount)
	}
}

func TestTemporalContextBuilder_Timezone(t *testing.T) {
	now := time.Date(2024, 6, 14, 3, 0, 0, 0, time.UTC)
	convCtx := domain.ConversationContext{
		Preferences: domain.UserPreferences{Timezone: "America/New_York"},
	}
	got := NewTemporalContextBuilder(fixedClock(now)).Build(convCtx)
	// 23:00 del jueves en Nueva York.
	if got.TimeOfDay != domain.TimeOfDayNight || got.DayOfWeek != time.Thursday {
		t.Fatalf("expected thursday night, got %s %v", got.TimeOfDay, got.DayOfWeek)
	}

	convCtx.Preferences.Timezone = "Not/AZone"
	got = NewTemporalContextBuilder(fixedClock(now)).Build(convCtx)
	if got.Now.Location() != time.UTC {
		t.Fatalf("expected UTC fallback, got %v", got.Now.Location())
	}
}

func TestTemporalContextBuilder_EmptyHistory(t *testing.T) {
	now := time.Date(2024, 6, 12, 14, 0, 0, 0, time.UTC)
	got := NewTemporalContextBuilder(fixedClock(now)).Build(domain.ConversationContext{})
	if got.IdleGapHours != 0 || got.TurnCount != 0 || got.RelationshipAgeDays != 0 {
		t.Fatalf("expected zero values, got %+v", got)
	}
	if got.IsWeekend {
		t.Fatalf("wednesday is not weekend")
	}
}

func TestSessionTurnCount_StaleSession(t *testing.T) {
	now := time.Date(2024, 6, 12, 14, 0, 0, 0, time.UTC)
	msgs := []domain.Message{
		{CreatedAt: now.Add(-2 * time.Hour)},
		{CreatedAt: now.Add(-119 * time.Minute)},
	}
	if got := sessionTurnCount(msgs, now); got != 0 {
		t.Fatalf("expected new session, got %d", got)
	}
}
