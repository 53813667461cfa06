package domain

import (
	"encoding/json"
	"time"
)

// User solo expone lo que el pipeline lee: la bolsa de preferencias.
type User struct {
	ID          string          `json:"id"`
	Email       string          `json:"email"`
	DisplayName string          `json:"display_name"`
	Preferences json.RawMessage `json:"preferences,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
