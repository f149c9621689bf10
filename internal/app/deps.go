package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"smartspend/internal/assistant"
	"smartspend/internal/config"
	"smartspend/internal/events"
	"smartspend/internal/llm"
	"smartspend/internal/logger"
)

// Deps bundles common runtime dependencies for the API and CLI.
type Deps struct {
	Config    config.Config
	Log       *slog.Logger
	LLM       llm.Client
	Events    events.Publisher
	Assistant *assistant.Service
}

// Build loads .env (if present), config, and shared components.
func Build() (Deps, error) {
	if err := LoadEnv(); err != nil {
		return Deps{}, err
	}
	cfg := config.Load()
	return BuildWith(cfg, logger.New(cfg.LogLevel))
}

// LoadEnv loads variables from ./.env. A missing file is not an error.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}
	return nil
}

// BuildWith wires components from an already loaded config.
func BuildWith(cfg config.Config, log *slog.Logger) (Deps, error) {
	llmClient, err := buildLLM(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize LLM: %w", err)
	}
	pub, err := buildEvents(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize events: %w", err)
	}
	return Deps{
		Config: cfg,
		Log:    log,
		LLM:    llmClient,
		Events: pub,
		Assistant: assistant.NewService(llmClient, log, assistant.Options{
			LocalFallback: cfg.LocalFallback,
			Events:        pub,
		}),
	}, nil
}

// Close releases the event publisher.
func (d Deps) Close() error {
	if d.Events == nil {
		return nil
	}
	return d.Events.Close()
}

func buildLLM(cfg config.Config, log *slog.Logger) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		key := cfg.APIKey()
		if key == "" {
			return nil, fmt.Errorf("one of LLM_API_KEY, MISTRAL_API_KEY or OPENAI_API_KEY is required when LLM_PROVIDER=openai")
		}
		client, err := llm.NewOpenAIClient(llm.Options{
			APIKey:  key,
			BaseURL: cfg.LLMBaseURL,
			Model:   cfg.LLMModel,
			Timeout: cfg.LLMTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize chat completion client: %w", err)
		}
		log.Info("using chat completion client", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModel, "timeout", cfg.LLMTimeout)
		return client, nil
	default:
		return nil, fmt.Errorf("invalid LLM_PROVIDER: %s (valid option: openai)", cfg.LLMProvider)
	}
}

func buildEvents(cfg config.Config, log *slog.Logger) (events.Publisher, error) {
	switch cfg.EventsProvider {
	case "", "none":
		return events.Noop{}, nil
	case "nats":
		if cfg.EventsURL == "" {
			return nil, fmt.Errorf("EVENTS_URL is required when EVENTS_PROVIDER=nats")
		}
		nc, err := nats.Connect(cfg.EventsURL, nats.Name("smartspend"))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		log.Info("publishing events to NATS", "subject", cfg.EventsSubject)
		return events.NewNATS(log, nc, cfg.EventsSubject), nil
	default:
		return nil, fmt.Errorf("invalid EVENTS_PROVIDER: %s (valid options: none, nats)", cfg.EventsProvider)
	}
}
