package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration for the API and CLI.
type Config struct {
	// Server
	Port            int           `env:"PORT" envDefault:"8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`

	// LLM
	LLMProvider string        `env:"LLM_PROVIDER" envDefault:"openai"` // "openai" (any OpenAI-compatible endpoint, Mistral by default)
	LLMBaseURL  string        `env:"LLM_BASE_URL" envDefault:"https://api.mistral.ai/v1/"`
	LLMModel    string        `env:"LLM_MODEL" envDefault:"mistral-tiny"`
	LLMTimeout  time.Duration `env:"LLM_TIMEOUT" envDefault:"10s"`
	LLMAPIKey   string        `env:"LLM_API_KEY"`
	MistralKey  string        `env:"MISTRAL_API_KEY"`
	OpenAIKey   string        `env:"OPENAI_API_KEY"`

	// Classify locally by keyword when the remote call fails instead of answering "other".
	LocalFallback bool `env:"LOCAL_FALLBACK" envDefault:"false"`

	// Events
	EventsProvider string `env:"EVENTS_PROVIDER" envDefault:"none"` // "none" or "nats"
	EventsURL      string `env:"EVENTS_URL"`
	EventsSubject  string `env:"EVENTS_SUBJECT" envDefault:"smartspend.events"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}

// APIKey returns the first non-empty bearer credential, preferring
// LLM_API_KEY over MISTRAL_API_KEY over OPENAI_API_KEY.
func (c Config) APIKey() string {
	for _, k := range []string{c.LLMAPIKey, c.MistralKey, c.OpenAIKey} {
		if k = strings.TrimSpace(k); k != "" {
			return k
		}
	}
	return ""
}
