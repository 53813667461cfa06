package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"companion-llm/internal/domain"
)

type mockMessageRepo struct {
	created   []domain.Message
	createErr error
	recent    []domain.Message
	important []domain.Message
	count     int
	listErr   error
	lastLimit int
}

func (m *mockMessageRepo) Create(_ context.Context, message domain.Message) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, message)
	return nil
}

func (m *mockMessageRepo) ListRecent(_ context.Context, _ string, limit int) ([]domain.Message, error) {
	m.lastLimit = limit
	return m.recent, m.listErr
}

func (m *mockMessageRepo) ListImportant(_ context.Context, _ string, _ int) ([]domain.Message, error) {
	return m.important, m.listErr
}

func (m *mockMessageRepo) CountByRelationship(_ context.Context, _ string) (int, error) {
	return m.count, m.listErr
}

func TestMessageServiceStore_NormalizesAndDefaults(t *testing.T) {
	repo := &mockMessageRepo{}
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))
	svc := NewMessageService(repo, fixedClock(now))

	msg, err := svc.StoreMessage(context.Background(), StoreMessageInput{
		RelationshipID: " r1 ",
		SenderID:       " u1 ",
		SenderType:     domain.SenderTypeUser,
		Content:        " hola ",
		Tone:           domain.Tone("NOPE"),
		Sentiment:      3,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if msg.ID == "" {
		t.Fatalf("expected generated id")
	}
	if !msg.CreatedAt.Equal(now) || msg.CreatedAt.Location() != time.UTC {
		t.Fatalf("expected created_at from clock in UTC, got %v", msg.CreatedAt)
	}
	if msg.RelationshipID != "r1" || msg.SenderID != "u1" || msg.Content != "hola" {
		t.Fatalf("expected trimmed fields, got %+v", msg)
	}
	if msg.EmotionalTone != domain.ToneNeutral || msg.Sentiment != 1 {
		t.Fatalf("expected defaulted tone and clamped sentiment, got %s %v", msg.EmotionalTone, msg.Sentiment)
	}
	if msg.Metadata == nil {
		t.Fatalf("expected empty metadata map")
	}
	if len(repo.created) != 1 || repo.created[0].ID != msg.ID {
		t.Fatalf("expected message persisted")
	}
}

func TestMessageServiceStore_Validation(t *testing.T) {
	svc := NewMessageService(&mockMessageRepo{}, nil)

	cases := map[string]StoreMessageInput{
		"sin relacion":  {SenderID: "u1", SenderType: domain.SenderTypeUser, Content: "hola"},
		"sin remitente": {RelationshipID: "r1", SenderType: domain.SenderTypeUser, Content: "hola"},
		"sin contenido": {RelationshipID: "r1", SenderID: "u1", SenderType: domain.SenderTypeUser, Content: "  "},
		"tipo invalido": {RelationshipID: "r1", SenderID: "u1", SenderType: "clone", Content: "hola"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.StoreMessage(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestMessageServiceStore_RepoError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewMessageService(&mockMessageRepo{createErr: boom}, nil)
	_, err := svc.StoreMessage(context.Background(), StoreMessageInput{
		RelationshipID: "r1", SenderID: "ai", SenderType: domain.SenderTypeAI, Content: "hola",
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}

func TestMessageService_NotConfigured(t *testing.T) {
	var svc *MessageService
	if _, err := svc.StoreMessage(context.Background(), StoreMessageInput{}); !errors.Is(err, ErrMessageStoreNotConfigured) {
		t.Fatalf("expected ErrMessageStoreNotConfigured, got %v", err)
	}

	svc = NewMessageService(nil, nil)
	if _, err := svc.StoreMessage(context.Background(), StoreMessageInput{}); !errors.Is(err, ErrMessageStoreNotConfigured) {
		t.Fatalf("expected ErrMessageStoreNotConfigured, got %v", err)
	}
}
