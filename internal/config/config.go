package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort          string        `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL       string        `env:"DATABASE_URL,required"`
	RedisAddr         string        `env:"REDIS_ADDR"`
	RedisPassword     string        `env:"REDIS_PASSWORD"`
	RedisDB           int           `env:"REDIS_DB" envDefault:"0"`
	JWTSecret         string        `env:"JWT_SECRET"`
	RateLimitMessages int           `env:"RATE_LIMIT_MESSAGES" envDefault:"20"`
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	PersonaFile       string        `env:"PERSONA_FILE"`
	HistoryWindow     int           `env:"HISTORY_WINDOW" envDefault:"50"`
	DB                DBConfig
	LLM               LLMConfig
	Tracing           TracingConfig
}

// DBConfig ajusta el pool de Postgres.
type DBConfig struct {
	MaxConns        int32         `env:"DB_MAX_CONNS" envDefault:"10"`
	MinConns        int32         `env:"DB_MIN_CONNS" envDefault:"1"`
	ConnectTimeout  time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"5s"`
	ApplicationName string        `env:"DB_APPLICATION_NAME" envDefault:"companion-llm"`
}

// LLMConfig describe el proveedor generativo. Provider es "http" u "openai".
type LLMConfig struct {
	Provider       string `env:"LLM_PROVIDER" envDefault:"http"`
	APIKey         string `env:"LLM_API_KEY,required"`
	BaseURL        string `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	Model          string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	TimeoutSeconds int    `env:"LLM_TIMEOUT_SECONDS" envDefault:"30"`
}

type TracingConfig struct {
	Enabled     bool    `env:"OTEL_ENABLED" envDefault:"false"`
	Endpoint    string  `env:"OTEL_ENDPOINT" envDefault:"localhost:4318"`
	Protocol    string  `env:"OTEL_PROTOCOL" envDefault:"http"`
	Insecure    bool    `env:"OTEL_INSECURE" envDefault:"true"`
	ServiceName string  `env:"OTEL_SERVICE_NAME" envDefault:"companion-llm"`
	SampleRate  float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadLLMConfig carga solo lo necesario para el CLI, sin base de datos.
func LoadLLMConfig() (*LLMConfig, error) {
	var cfg LLMConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
