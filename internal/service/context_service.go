package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"companion-llm/internal/domain"
	"companion-llm/internal/repository"
)

const (
	defaultHistoryWindow  = 50
	importantMomentsLimit = 20
)

var ErrRelationshipNotFound = errors.New("relationship not found")

// ContextService define contrato para recuperar contexto conversacional.
type ContextService interface {
	GetConversationContext(ctx context.Context, relationshipID string) (domain.ConversationContext, error)
}

// BasicContextService arma el ConversationContext leyendo los repositorios en cada request.
type BasicContextService struct {
	relationshipRepo repository.RelationshipRepository
	messageRepo      repository.MessageRepository
	userRepo         repository.UserRepository
	window           int
	now              func() time.Time
}

func NewBasicContextService(
	relationshipRepo repository.RelationshipRepository,
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	window int,
	now func() time.Time,
) *BasicContextService {
	if window <= 0 {
		window = defaultHistoryWindow
	}
	if now == nil {
		now = time.Now
	}
	return &BasicContextService{
		relationshipRepo: relationshipRepo,
		messageRepo:      messageRepo,
		userRepo:         userRepo,
		window:           window,
		now:              now,
	}
}

func (s *BasicContextService) GetConversationContext(ctx context.Context, relationshipID string) (domain.ConversationContext, error) {
	relationshipID = strings.TrimSpace(relationshipID)
	if relationshipID == "" {
		return domain.ConversationContext{}, fmt.Errorf("relationship id: %w", ErrInvalidInput)
	}

	rel, err := s.relationshipRepo.GetByID(ctx, relationshipID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.ConversationContext{}, fmt.Errorf("get relationship %s: %w", relationshipID, ErrRelationshipNotFound)
	}
	if err != nil {
		return domain.ConversationContext{}, fmt.Errorf("get relationship: %w", err)
	}

	messages, err := s.messageRepo.ListRecent(ctx, relationshipID, s.window)
	if err != nil {
		return domain.ConversationContext{}, fmt.Errorf("list messages: %w", err)
	}
	important, err := s.messageRepo.ListImportant(ctx, relationshipID, importantMomentsLimit)
	if err != nil {
		return domain.ConversationContext{}, fmt.Errorf("list important messages: %w", err)
	}
	total, err := s.messageRepo.CountByRelationship(ctx, relationshipID)
	if err != nil {
		return domain.ConversationContext{}, fmt.Errorf("count messages: %w", err)
	}

	sortChronologically(messages)
	sortChronologically(important)
	if len(messages) > s.window {
		messages = messages[len(messages)-s.window:]
	}

	var prefs domain.UserPreferences
	if s.userRepo != nil && rel.UserID != "" {
		user, err := s.userRepo.GetByID(ctx, rel.UserID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			// Sin usuario no hay preferencias; el pipeline sigue con los defaults.
		case err != nil:
			return domain.ConversationContext{}, fmt.Errorf("get user: %w", err)
		default:
			prefs = domain.ParseUserPreferences(user.Preferences)
		}
	}

	out := domain.ConversationContext{
		Relationship:         rel,
		RecentMessages:       messages,
		ImportantMoments:     important,
		RelationshipDuration: durationDays(rel.CreatedAt, s.now()),
		TotalMessages:        total,
		Themes:               DefaultMemorySummarizer.ExtractThemes(messages),
		Preferences:          prefs,
	}
	if len(messages) > 0 {
		last := messages[len(messages)-1].CreatedAt
		out.LastInteraction = &last
	}
	return out, nil
}

func sortChronologically(messages []domain.Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
}

func durationDays(since, now time.Time) int {
	if since.IsZero() || now.Before(since) {
		return 0
	}
	return int(now.Sub(since).Hours() / 24)
}
