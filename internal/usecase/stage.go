// Package usecase implements the pipeline stages and their orchestration.
// Every stage works on one calendar day and owns a partition directory named
// {root}/{stage}/{YYYY-MM-DD}; re-running a stage for the same day overwrites
// records in place.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"VideosCurator/internal/domain"
	"VideosCurator/internal/ports"
)

// Directory names of the pipeline stages, in execution order.
const (
	StageNameFetch   = "fetch"
	StageNameAssess  = "assess"
	StageNameEnhance = "enhance"
	StageNameReport  = "report"
)

// Stage is the contract shared by every pipeline phase: a fixed name and the
// per-day partition convention. Each stage additionally exposes a Run method
// returning its own result type.
type Stage interface {
	Name() string
	Dir(day time.Time) string
	EnsureDir(day time.Time) (string, error)
}

// PartitionDir returns the record directory of one stage for one day.
func PartitionDir(root, stage string, day time.Time) string {
	return filepath.Join(root, stage, day.Format(domain.DateLayout))
}

// ArtifactPath returns where the report stage writes its rendered artifact.
func ArtifactPath(root string, day time.Time) string {
	return filepath.Join(root, StageNameReport, day.Format(domain.DateLayout)+".html")
}

// stagePaths carries the partition-path convention embedded by all stages.
type stagePaths struct {
	root string
	name string
}

func (s stagePaths) Name() string { return s.name }

// Dir returns the partition directory for a day without creating it.
func (s stagePaths) Dir(day time.Time) string {
	return PartitionDir(s.root, s.name, day)
}

// EnsureDir creates the partition directory if needed and returns it.
func (s stagePaths) EnsureDir(day time.Time) (string, error) {
	dir := s.Dir(day)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create partition %s: %w", dir, err)
	}
	return dir, nil
}

// recordRun appends one entry to the run journal. Journal failures are logged
// and swallowed; history must never fail a stage.
func recordRun(ctx context.Context, journal ports.RunJournal, logger *slog.Logger, res domain.RunResult, started time.Time) {
	if journal == nil {
		return
	}
	entry := domain.RunRecord{
		Stage:     res.Stage,
		Date:      res.Date,
		Processed: res.Processed,
		Errors:    res.Errors,
		StartedAt: started,
		EndedAt:   time.Now().UTC(),
	}
	if err := journal.RecordRun(ctx, entry); err != nil {
		logger.Warn("journal write failed", "stage", res.Stage, "error", err)
	}
}

func ensureLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
