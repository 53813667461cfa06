package llm

import (
	"context"
	"sync"
)

// MockClient permite tests sin llamar a un LLM real.
type MockClient struct {
	Response string
	Err      error

	mu           sync.Mutex
	Calls        int
	LastPrompt   string
	LastToneHint string
}

func (m *MockClient) Generate(ctx context.Context, prompt, toneHint string) (string, error) {
	m.mu.Lock()
	m.Calls++
	m.LastPrompt = prompt
	m.LastToneHint = toneHint
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	return m.Response, m.Err
}
