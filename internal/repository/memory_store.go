package repository

import (
	"context"
	"sort"
	"sync"

	"companion-llm/internal/domain"
)

// MemoryStore implementa los tres repositorios en memoria. Lo usa el CLI,
// donde no hay base de datos.
type MemoryStore struct {
	mu            sync.RWMutex
	relationships map[string]domain.Relationship
	users         map[string]domain.User
	messages      map[string][]domain.Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		relationships: make(map[string]domain.Relationship),
		users:         make(map[string]domain.User),
		messages:      make(map[string][]domain.Message),
	}
}

func (s *MemoryStore) PutRelationship(rel domain.Relationship) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.relationships[rel.ID] = rel
}

func (s *MemoryStore) PutUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *MemoryStore) GetByID(_ context.Context, id string) (domain.Relationship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rel, ok := s.relationships[id]
	if !ok {
		return domain.Relationship{}, ErrNotFound
	}
	return rel, nil
}

func (s *MemoryStore) Create(_ context.Context, message domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := append(s.messages[message.RelationshipID], message)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	s.messages[message.RelationshipID] = list
	return nil
}

func (s *MemoryStore) ListRecent(_ context.Context, relationshipID string, limit int) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return tail(s.messages[relationshipID], limit), nil
}

func (s *MemoryStore) ListImportant(_ context.Context, relationshipID string, limit int) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var important []domain.Message
	for _, m := range s.messages[relationshipID] {
		if m.IsImportant {
			important = append(important, m)
		}
	}
	return tail(important, limit), nil
}

func (s *MemoryStore) CountByRelationship(_ context.Context, relationshipID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages[relationshipID]), nil
}

// Users expone el lado UserRepository; GetByID ya lo ocupa la relacion.
func (s *MemoryStore) Users() UserRepository {
	return memoryUsers{s}
}

type memoryUsers struct {
	s *MemoryStore
}

func (m memoryUsers) GetByID(_ context.Context, id string) (domain.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	u, ok := m.s.users[id]
	if !ok {
		return domain.User{}, ErrNotFound
	}
	return u, nil
}

func tail(list []domain.Message, limit int) []domain.Message {
	if limit > 0 && len(list) > limit {
		list = list[len(list)-limit:]
	}
	out := make([]domain.Message, len(list))
	copy(out, list)
	return out
}

var (
	_ RelationshipRepository = (*MemoryStore)(nil)
	_ MessageRepository      = (*MemoryStore)(nil)
	_ UserRepository         = memoryUsers{}
)
