package llm

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"companion-llm/internal/config"
)

// NewClient elige el proveedor segun LLM_PROVIDER.
func NewClient(cfg config.LLMConfig, logger *zap.Logger) (LLMClient, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "http":
		return NewHTTPClient(cfg.BaseURL, cfg.APIKey, cfg.Model, timeout, logger), nil
	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
