package domain

import "time"

const (
	SenderTypeUser = "user"
	SenderTypeAI   = "ai"
)

type Message struct {
	ID             string         `json:"id"`
	RelationshipID string         `json:"relationship_id"`
	SenderID       string         `json:"sender_id"`
	SenderType     string         `json:"sender_type"`
	Content        string         `json:"content"`
	EmotionalTone  Tone           `json:"emotional_tone"`
	Sentiment      float64        `json:"sentiment"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	IsImportant    bool           `json:"is_important"`
	CreatedAt      time.Time      `json:"created_at"`
}

// IsFromUser indica si el mensaje lo escribio la persona (no la IA).
func (m Message) IsFromUser() bool {
	return m.SenderType == SenderTypeUser
}

type Relationship struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	RoleType  RoleType  `json:"role_type"`
	AIName    string    `json:"ai_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
