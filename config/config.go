// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/larkin/go-errand/core"
)

// Config holds everything the server binary needs to start.
type Config struct {
	// OpenAIAPIKey authenticates against the chat-completions endpoint.
	OpenAIAPIKey string
	// OpenAIBaseURL overrides the API base URL, e.g. for a proxy.
	OpenAIBaseURL string
	// Model is the model name sent on every request.
	Model string
	// SystemPrompt overrides the built-in system prompt when set.
	SystemPrompt string
	// DatabaseDSN selects the trace store backend. Empty means SQLite at
	// the default path.
	DatabaseDSN string
	// MaxIterations caps model-call rounds per run.
	MaxIterations int
	// Addr is the HTTP listen address.
	Addr string
}

// Load reads configuration from a .env file (if present) and the process
// environment. Environment variables win over .env entries.
func Load() (*Config, error) {
	// Missing .env is fine; env vars may carry everything.
	_ = godotenv.Load()

	cfg := &Config{
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		Model:         getEnv("ERRAND_MODEL", "gpt-4o-mini"),
		SystemPrompt:  os.Getenv("ERRAND_SYSTEM_PROMPT"),
		DatabaseDSN:   os.Getenv("DATABASE_DSN"),
		MaxIterations: 10,
		Addr:          getEnv("ADDR", ":8000"),
	}

	if v := os.Getenv("ERRAND_MAX_ITERATIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: ERRAND_MAX_ITERATIONS %q is not an integer", core.ErrInvalidConfig, v)
		}
		cfg.MaxIterations = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("%w: OPENAI_API_KEY is required", core.ErrInvalidConfig)
	}
	if c.Model == "" {
		return fmt.Errorf("%w: model name is empty", core.ErrInvalidConfig)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: max iterations must be positive, got %d", core.ErrInvalidConfig, c.MaxIterations)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
