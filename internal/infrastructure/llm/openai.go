package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"VideosCurator/internal/config"
	"VideosCurator/internal/ports"
)

// OpenAICompleter implements ports.Completer backed by OpenAI-compatible
// chat-completions APIs, including self-hosted gateways.
type OpenAICompleter struct {
	endpoint    string
	model       string
	apiKey      string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

var _ ports.Completer = (*OpenAICompleter)(nil)

// NewOpenAICompleter builds a client from configuration.
func NewOpenAICompleter(cfg config.LLMConfig) *OpenAICompleter {
	endpoint := cfg.OpenAIEndpoint
	if endpoint == "" {
		endpoint = "https://api.openai.com/v1/chat/completions"
	}
	return &OpenAICompleter{
		endpoint:    endpoint,
		model:       cfg.Model,
		apiKey:      cfg.OpenAIAPIKey,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// Complete posts the prompt as the system message and the payload as the
// user message, returning the first choice's content.
func (c *OpenAICompleter) Complete(ctx context.Context, prompt, payload string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("openai completer is nil")
	}
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return "", fmt.Errorf("openai completer misconfigured")
	}

	request := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": prompt},
			{"role": "user", "content": payload},
		},
	}
	if c.maxTokens > 0 {
		request["max_tokens"] = c.maxTokens
	}
	if c.temperature > 0 {
		request["temperature"] = c.temperature
	}

	body, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("marshal completion payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send completion: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("openai error %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	var decoded struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode completion: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return decoded.Choices[0].Message.Content, nil
}
