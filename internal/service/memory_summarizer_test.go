package service

import (
	"reflect"
	"strings"
	"testing"

	"companion-llm/internal/domain"
)

func userMsg(content string, tone domain.Tone) domain.Message {
	return domain.Message{SenderType: domain.SenderTypeUser, Content: content, EmotionalTone: tone}
}

func TestRelationshipMilestones(t *testing.T) {
	got := DefaultMemorySummarizer.RelationshipMilestones(10, 30)
	want := []string{"First message exchanged", "10 messages exchanged", "One week together", "One month together"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if got := DefaultMemorySummarizer.RelationshipMilestones(0, 0); len(got) != 0 {
		t.Fatalf("expected no milestones, got %v", got)
	}
	if got := DefaultMemorySummarizer.RelationshipMilestones(500, 400); len(got) != 8 {
		t.Fatalf("expected all milestones, got %v", got)
	}
}

func TestExtractThemes(t *testing.T) {
	msgs := []domain.Message{
		userMsg("My boss yelled at me at work", domain.ToneAngry),
		userMsg("Work was better today", domain.ToneHappy),
		userMsg("Mom called about the family dinner", domain.ToneNeutral),
		userMsg("I watched a movie", domain.ToneCalm),
		userMsg("another meeting at the office", domain.ToneNeutral),
	}
	got := DefaultMemorySummarizer.ExtractThemes(msgs)
	want := []string{"work", "family", "hobbies"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtractThemes_WindowAndCap(t *testing.T) {
	var msgs []domain.Message
	for i := 0; i < 60; i++ {
		msgs = append(msgs, userMsg("travel plans", domain.ToneNeutral))
	}
	// Los primeros diez quedan fuera de la ventana.
	for i := 0; i < 10; i++ {
		msgs[i] = userMsg("money money", domain.ToneNeutral)
	}
	got := DefaultMemorySummarizer.ExtractThemes(msgs)
	if !reflect.DeepEqual(got, []string{"travel"}) {
		t.Fatalf("expected only travel, got %v", got)
	}

	all := []domain.Message{userMsg("work school family friends dating health money music travel stress", domain.ToneNeutral)}
	if got := DefaultMemorySummarizer.ExtractThemes(all); len(got) != maxThemes {
		t.Fatalf("expected themes capped at %d, got %v", maxThemes, got)
	}
}

func TestInferUserTraits(t *testing.T) {
	msgs := []domain.Message{
		userMsg("Why does this keep happening?", domain.ToneSad),
		userMsg("Thank you for listening!", domain.ToneSad),
		{SenderType: domain.SenderTypeAI, Content: "Of course? Always!"},
		userMsg("What should I do next?", domain.ToneAnxious),
	}
	got := DefaultMemorySummarizer.InferUserTraits(msgs)
	want := []string{"curious", "enthusiastic", "appreciative", "going through a difficult time"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	long := []domain.Message{userMsg(strings.Repeat("word ", 30), domain.ToneNeutral)}
	if got := DefaultMemorySummarizer.InferUserTraits(long); !reflect.DeepEqual(got, []string{"expressive"}) {
		t.Fatalf("expected expressive, got %v", got)
	}

	if got := DefaultMemorySummarizer.InferUserTraits(nil); len(got) != 0 {
		t.Fatalf("expected no traits, got %v", got)
	}
}

func TestSignificantMoments(t *testing.T) {
	long := strings.Repeat("a", 150)
	moments := []domain.Message{
		{Content: "oldest"},
		{Content: "two"},
		{Content: "three"},
		{Content: "  "},
		{Content: "five"},
		{Content: long},
	}
	got := DefaultMemorySummarizer.SignificantMoments(moments)
	if len(got) != 4 {
		t.Fatalf("expected last five minus blank, got %v", got)
	}
	if got[0] != "two" {
		t.Fatalf("expected oldest dropped, got %v", got)
	}
	last := got[len(got)-1]
	if last != strings.Repeat("a", 100)+"..." {
		t.Fatalf("expected truncation to 100 chars, got %d chars", len(last))
	}
}

func TestSummarize(t *testing.T) {
	convCtx := domain.ConversationContext{
		RecentMessages:       []domain.Message{userMsg("school exams are stressful?", domain.ToneAnxious)},
		ImportantMoments:     []domain.Message{{Content: "I got the job!"}},
		TotalMessages:        12,
		RelationshipDuration: 8,
	}
	got := DefaultMemorySummarizer.Summarize(convCtx)
	if len(got.Themes) == 0 || got.Themes[0] != "school" {
		t.Fatalf("expected school theme first, got %v", got.Themes)
	}
	if !containsString(got.Milestones, "One week together") {
		t.Fatalf("expected week milestone, got %v", got.Milestones)
	}
	if len(got.SignificantMoments) != 1 {
		t.Fatalf("expected one moment, got %v", got.SignificantMoments)
	}
}
