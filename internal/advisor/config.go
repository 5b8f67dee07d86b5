package advisor

import (
	"os"
	"strconv"
)

// Config holds all configuration for the advisory gateway.
type Config struct {
	Endpoint     string
	APIKey       string
	Model        string
	TimeoutMs    int
	MaxTokens    int
	SystemPrompt string
}

// DefaultConfig returns a Config with sensible defaults. The API key has
// no default; without one the service falls back on every call.
func DefaultConfig() Config {
	return Config{
		Endpoint:     "https://openrouter.ai/api/v1",
		Model:        "mistralai/mistral-7b-instruct",
		TimeoutMs:    30000,
		MaxTokens:    250,
		SystemPrompt: "You are a study assistant helping a student plan their work.",
	}
}

// LoadConfig reads advisor configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("DEADLINEBOT_ADVISOR_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("DEADLINEBOT_ADVISOR_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("DEADLINEBOT_ADVISOR_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("DEADLINEBOT_ADVISOR_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("DEADLINEBOT_ADVISOR_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}
	if v := os.Getenv("DEADLINEBOT_ADVISOR_SYSTEM_PROMPT"); v != "" {
		cfg.SystemPrompt = v
	}

	return cfg
}
