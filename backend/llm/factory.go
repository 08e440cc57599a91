package llm

import (
	"context"
	"fmt"

	"github.com/kassslll/creator-studio/backend/config"
	"github.com/kassslll/creator-studio/backend/utils"
)

// NewProvider creates the Provider selected by cfg.LLMProvider, wrapped
// with logging and the optional per-call timeout.
func NewProvider(ctx context.Context, cfg *config.Config, logger *utils.Logger) (Provider, error) {
	var (
		base Provider
		err  error
	)

	switch cfg.LLMProvider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, GeminiConfig{APIKey: cfg.GeminiAPIKey, Model: cfg.LLMModel})
	case "openai":
		base, err = NewOpenAIProvider(OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.LLMModel,
		})
	case "anthropic":
		base, err = NewAnthropicProvider(AnthropicConfig{APIKey: cfg.AnthropicAPIKey, Model: cfg.LLMModel})
	case "ollama":
		base, err = NewOllamaProvider(OllamaConfig{Host: cfg.OllamaHost, Model: cfg.LLMModel})
	case "mock":
		base = &MockProvider{Fallback: mockFallback}
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.LLMProvider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.LLMProvider, err)
	}

	// caller → timeout → logging → base
	return WithTimeout(WithLogging(base, logger), cfg.LLMTimeout), nil
}

// mockFallback lets the server run end to end without credentials.
const mockFallback = "# Sample content\n\nThis text was produced by the mock provider."
