package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"VideosCurator/internal/config"
)

func TestOpenAICompleterComplete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Authorization = %q", got)
		}
		var request struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if request.Model != "gpt-4o-mini" || len(request.Messages) != 2 {
			t.Errorf("request = %+v", request)
		}
		if request.Messages[0].Role != "system" || request.Messages[1].Role != "user" {
			t.Errorf("message roles = %+v", request.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"id,happiness\naaa,4\n"}}]}`))
	}))
	defer server.Close()

	completer := NewOpenAICompleter(config.LLMConfig{
		Provider:       "openai",
		Model:          "gpt-4o-mini",
		OpenAIEndpoint: server.URL,
		OpenAIAPIKey:   "sk-test",
	})

	text, err := completer.Complete(context.Background(), "rate these", "id,title\naaa,T\n")
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if text != "id,happiness\naaa,4\n" {
		t.Errorf("Complete() = %q", text)
	}
}

func TestOpenAICompleterErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	completer := NewOpenAICompleter(config.LLMConfig{OpenAIEndpoint: server.URL, OpenAIAPIKey: "sk", Model: "gpt-4o-mini"})
	if _, err := completer.Complete(context.Background(), "p", "x"); err == nil {
		t.Fatal("Complete() accepted an error status")
	}
}

func TestOpenAICompleterMisconfigured(t *testing.T) {
	t.Parallel()

	completer := NewOpenAICompleter(config.LLMConfig{})
	if _, err := completer.Complete(context.Background(), "p", "x"); err == nil {
		t.Fatal("Complete() accepted a missing api key")
	}
}

func TestNewPicksProvider(t *testing.T) {
	t.Parallel()

	if _, err := New(config.LLMConfig{Provider: "anthropic"}); err != nil {
		t.Errorf("New(anthropic) error: %v", err)
	}
	if _, err := New(config.LLMConfig{}); err != nil {
		t.Errorf("New(default) error: %v", err)
	}
	if _, err := New(config.LLMConfig{Provider: "openai"}); err != nil {
		t.Errorf("New(openai) error: %v", err)
	}
	if _, err := New(config.LLMConfig{Provider: "martian"}); err == nil {
		t.Error("New() accepted an unknown provider")
	}
}
