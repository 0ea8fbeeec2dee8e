// Package llm provides the completion providers the scoring and rewrite
// stages talk to.
package llm

import (
	"context"
	"fmt"

	"github.com/aktagon/llmkit/anthropic"
	"github.com/aktagon/llmkit/anthropic/types"

	"VideosCurator/internal/ports"
)

// AnthropicCompleter implements ports.Completer on the Anthropic messages
// API via llmkit.
type AnthropicCompleter struct {
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
}

var _ ports.Completer = (*AnthropicCompleter)(nil)

// NewAnthropicCompleter builds the default completion provider.
func NewAnthropicCompleter(apiKey, model string, maxTokens int, temperature float64) *AnthropicCompleter {
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &AnthropicCompleter{
		apiKey:      apiKey,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// Complete sends the instructions as the system block and the payload as the
// user message, returning the first text block of the answer. The underlying
// client has no context plumbing, so cancellation is only honored up front.
func (c *AnthropicCompleter) Complete(ctx context.Context, prompt, payload string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if c.apiKey == "" {
		return "", fmt.Errorf("anthropic completer misconfigured: empty api key")
	}

	settings := types.RequestSettings{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}
	response, err := anthropic.PromptWithSettings(prompt, payload, "", c.apiKey, settings)
	if err != nil {
		return "", fmt.Errorf("anthropic completion: %w", err)
	}
	if len(response.Content) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	return response.Content[0].Text, nil
}
