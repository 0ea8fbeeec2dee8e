package llm

import (
	"fmt"

	"VideosCurator/internal/config"
	"VideosCurator/internal/ports"
)

// New selects the completer for the configured provider. Anthropic is the
// default.
func New(cfg config.LLMConfig) (ports.Completer, error) {
	switch cfg.Provider {
	case "", "anthropic":
		return NewAnthropicCompleter(cfg.AnthropicAPIKey, cfg.Model, cfg.MaxTokens, cfg.Temperature), nil
	case "openai":
		return NewOpenAICompleter(cfg), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
