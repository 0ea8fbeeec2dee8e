package usecase

import (
	"context"
	"log/slog"
	"time"

	"VideosCurator/internal/domain"
	"VideosCurator/internal/ports"
)

// Scheduler wires the recurring-run driver with the pipeline use case.
type Scheduler struct {
	driver   ports.Scheduler
	pipeline *Pipeline
	logger   *slog.Logger
}

// NewScheduler returns a helper to start/stop recurring pipeline runs.
func NewScheduler(driver ports.Scheduler, pipeline *Pipeline, logger *slog.Logger) *Scheduler {
	return &Scheduler{driver: driver, pipeline: pipeline, logger: ensureLogger(logger)}
}

// Start registers the pipeline with the provided driver. Each trigger runs
// the full pipeline for the trigger's calendar day.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.pipeline == nil {
		return nil
	}

	job := func(trigger time.Time) {
		if _, err := s.pipeline.RunAll(ctx, trigger); err != nil {
			s.logger.Error("scheduled pipeline run failed", "date", trigger.Format(domain.DateLayout), "error", err)
		}
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying driver.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
