package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"companion-llm/internal/domain"
	"companion-llm/internal/repository"
)

var (
	ErrMessageStoreNotConfigured = errors.New("message store not configured")
	ErrInvalidInput              = errors.New("invalid input")
)

// StoreMessageInput agrupa lo que se persiste de cada turno.
type StoreMessageInput struct {
	RelationshipID string
	SenderID       string
	SenderType     string
	Content        string
	Tone           domain.Tone
	Sentiment      float64
	Metadata       map[string]any
	Important      bool
}

// MessageService encapsula la escritura append-only de mensajes.
type MessageService struct {
	repo repository.MessageRepository
	now  func() time.Time
}

func NewMessageService(repo repository.MessageRepository, now func() time.Time) *MessageService {
	if now == nil {
		now = time.Now
	}
	return &MessageService{repo: repo, now: now}
}

func (s *MessageService) StoreMessage(ctx context.Context, in StoreMessageInput) (domain.Message, error) {
	if s == nil || s.repo == nil {
		return domain.Message{}, ErrMessageStoreNotConfigured
	}

	msg := domain.Message{
		ID:             uuid.NewString(),
		RelationshipID: strings.TrimSpace(in.RelationshipID),
		SenderID:       strings.TrimSpace(in.SenderID),
		SenderType:     strings.TrimSpace(in.SenderType),
		Content:        strings.TrimSpace(in.Content),
		EmotionalTone:  in.Tone,
		Sentiment:      clampSigned(in.Sentiment),
		Metadata:       in.Metadata,
		IsImportant:    in.Important,
		CreatedAt:      s.now().UTC(),
	}

	if msg.RelationshipID == "" || msg.SenderID == "" || msg.Content == "" {
		return domain.Message{}, fmt.Errorf("store message: %w", ErrInvalidInput)
	}
	if msg.SenderType != domain.SenderTypeUser && msg.SenderType != domain.SenderTypeAI {
		return domain.Message{}, fmt.Errorf("store message: sender type %q: %w", msg.SenderType, ErrInvalidInput)
	}
	if !msg.EmotionalTone.IsValid() {
		msg.EmotionalTone = domain.ToneNeutral
	}
	if msg.Metadata == nil {
		msg.Metadata = map[string]any{}
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return domain.Message{}, fmt.Errorf("persist message: %w", err)
	}
	return msg, nil
}
