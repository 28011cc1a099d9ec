package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/versus/internal/config"
)

const (
	togetherBaseURL = "https://api.together.xyz/v1"
	ollamaBaseURL   = "http://localhost:11434"
)

// NewClient builds the client serving role from its configuration, wrapped with
// the per-call timeout and metrics.
func NewClient(ctx context.Context, role string, cfg config.LLMConfig) (Client, error) {
	provider := strings.ToLower(cfg.Provider)

	var c Client
	switch provider {
	case "openai":
		c = NewOpenAIClient(cfg)

	case "together":
		if cfg.BaseURL == "" {
			cfg.BaseURL = togetherBaseURL
		}
		c = NewOpenAIClient(cfg)

	case "ollama":
		// Ollama serves an OpenAI-compatible API under /v1 and ignores the key
		base := cfg.BaseURL
		if base == "" {
			base = ollamaBaseURL
		}
		cfg.BaseURL = openAICompatibleBaseURL(base)
		if cfg.APIKey == "" {
			cfg.APIKey = "ollama"
		}
		c = NewOpenAIClient(cfg)

	case "claude", "anthropic":
		c = NewClaudeClient(cfg)

	case "gemini":
		g, err := NewGeminiClient(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		c = g

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}

	return Observe(c, role, provider, config.Seconds(cfg.TimeoutSeconds, 0)), nil
}

func openAICompatibleBaseURL(base string) string {
	if strings.HasSuffix(base, "/v1") {
		return base
	}
	return fmt.Sprintf("%s/v1", strings.TrimRight(base, "/"))
}
