package main

import (
	"testing"
	"time"

	"VideosCurator/internal/config"
	"VideosCurator/internal/domain"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	day, err := parseDate("2025-11-03")
	if err != nil {
		t.Fatalf("parseDate: %v", err)
	}
	if want := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC); !day.Equal(want) {
		t.Errorf("day = %s, want %s", day, want)
	}

	today, err := parseDate("")
	if err != nil {
		t.Fatalf("parseDate empty: %v", err)
	}
	if today.Format(domain.DateLayout) != time.Now().Format(domain.DateLayout) {
		t.Errorf("empty date resolved to %s", today)
	}

	if _, err := parseDate("03.11.2025"); err == nil {
		t.Fatal("expected an error for a malformed date")
	}
}

func TestValidateThreshold(t *testing.T) {
	t.Parallel()

	for _, valid := range []int{1, 3, 5} {
		if err := validateThreshold(valid); err != nil {
			t.Errorf("validateThreshold(%d): %v", valid, err)
		}
	}
	for _, invalid := range []int{0, -1, 6} {
		if err := validateThreshold(invalid); err == nil {
			t.Errorf("validateThreshold(%d) accepted", invalid)
		}
	}
}

func TestRequireCredentials(t *testing.T) {
	var cfg config.Config
	cfg.Catalog.APIKey = "yt-key"
	cfg.LLM.AnthropicAPIKey = "llm-key"
	if err := requireCredentials(cfg); err != nil {
		t.Errorf("full credentials rejected: %v", err)
	}

	cfg.LLM.AnthropicAPIKey = ""
	if err := requireCredentials(cfg); err == nil {
		t.Error("missing provider key accepted")
	}

	cfg.LLM.Provider = "openai"
	cfg.LLM.OpenAIAPIKey = "openai-key"
	if err := requireCredentials(cfg); err != nil {
		t.Errorf("openai credentials rejected: %v", err)
	}
}
