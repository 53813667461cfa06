package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/companion")
	t.Setenv("LLM_API_KEY", "sk-test")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPPort != "8080" || cfg.HistoryWindow != 50 || cfg.RateLimitMessages != 20 || cfg.RateLimitWindow != time.Minute {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.DB.MaxConns != 10 || cfg.DB.MinConns != 1 || cfg.DB.ConnectTimeout != 5*time.Second {
		t.Fatalf("unexpected db config: %+v", cfg.DB)
	}
	if cfg.LLM.Provider != "http" || cfg.LLM.TimeoutSeconds != 30 || cfg.LLM.APIKey != "sk-test" {
		t.Fatalf("unexpected llm config: %+v", cfg.LLM)
	}
	if cfg.Tracing.Enabled || cfg.Tracing.ServiceName != "companion-llm" {
		t.Fatalf("unexpected tracing config: %+v", cfg.Tracing)
	}
}

func TestLoadConfig_RateLimitWindow(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/companion")
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("RATE_LIMIT_MESSAGES", "5")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RateLimitMessages != 5 || cfg.RateLimitWindow != 30*time.Second {
		t.Fatalf("unexpected rate limit config: %d per %v", cfg.RateLimitMessages, cfg.RateLimitWindow)
	}
}

func TestLoadConfig_RequiresDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	os.Unsetenv("DATABASE_URL")
	t.Setenv("LLM_API_KEY", "sk-test")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error without DATABASE_URL")
	}
}

func TestLoadLLMConfig(t *testing.T) {
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_TIMEOUT_SECONDS", "5")

	cfg, err := LoadLLMConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != "openai" || cfg.TimeoutSeconds != 5 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}
