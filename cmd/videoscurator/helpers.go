package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"VideosCurator/internal/config"
	"VideosCurator/internal/domain"
	"VideosCurator/internal/logging"
)

// loadEnvironment resolves configuration and the matching logger.
func loadEnvironment() (config.Config, *slog.Logger) {
	cfg := config.Load()
	return cfg, logging.ForEnvironment(cfg.Environment, cfg.LogLevel)
}

// parseDate resolves a --date value; empty selects today.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	day, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q, want YYYY-MM-DD", value)
	}
	return day, nil
}

// requireCredentials gates commands that call paid upstream services.
func requireCredentials(cfg config.Config) error {
	if !cfg.HasCredentials() {
		return errors.New("missing credentials: set YTKEY and the key of the configured completion provider")
	}
	return nil
}

// validateThreshold bounds the enhance acceptance score.
func validateThreshold(threshold int) error {
	if threshold < 1 || threshold > 5 {
		return fmt.Errorf("invalid --threshold %d, want 1..5", threshold)
	}
	return nil
}
