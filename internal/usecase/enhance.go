package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"VideosCurator/internal/domain"
	"VideosCurator/internal/ports"
	"VideosCurator/internal/store"
)

// rewritePrompt is the fixed instruction for the per-record description
// rewrite. The title/description payload is appended by the caller.
const rewritePrompt = `Improve this video description by removing: clickbait language,
"like and subscribe" pleas, excessive links, overly promotional content and
social media handles. Keep the core information that describes what the video
is actually about. Return ONLY the enhanced description, nothing else.`

// AcceptanceThresholdDefault is the minimum score a record needs to pass the
// enhance filter when no override is configured.
const AcceptanceThresholdDefault = 3

// EnhanceDeps wires the collaborators of the enhance stage.
type EnhanceDeps struct {
	Root      string
	Completer ports.Completer
	Journal   ports.RunJournal
	Threshold int
	Logger    *slog.Logger
}

// EnhanceStage keeps the records scoring at or above the threshold and
// rewrites their descriptions one model call at a time.
type EnhanceStage struct {
	stagePaths
	completer ports.Completer
	journal   ports.RunJournal
	threshold int
	logger    *slog.Logger
}

// NewEnhanceStage constructs the rewrite stage.
func NewEnhanceStage(deps EnhanceDeps) *EnhanceStage {
	threshold := deps.Threshold
	if threshold <= 0 {
		threshold = AcceptanceThresholdDefault
	}
	return &EnhanceStage{
		stagePaths: stagePaths{root: deps.Root, name: StageNameEnhance},
		completer:  deps.Completer,
		journal:    deps.Journal,
		threshold:  threshold,
		logger:     ensureLogger(deps.Logger),
	}
}

// Threshold returns the effective acceptance score.
func (s *EnhanceStage) Threshold() int { return s.threshold }

// Run filters the day's assessed records by score and rewrites the retained
// descriptions. A failed rewrite falls back to the original text; the record
// still advances and counts as processed.
func (s *EnhanceStage) Run(ctx context.Context, day time.Time) (domain.RunResult, error) {
	started := time.Now().UTC()
	result := domain.RunResult{
		Stage: s.Name(),
		Date:  day.Format(domain.DateLayout),
	}
	defer func() { recordRun(ctx, s.journal, s.logger, result, started) }()

	dir, err := s.EnsureDir(day)
	if err != nil {
		result.Err = err.Error()
		return result, err
	}
	result.Dir = dir

	videos, loadErrs := store.LoadPartition(PartitionDir(s.root, StageNameAssess, day))
	for _, loadErr := range loadErrs {
		s.logger.Warn("skipping unreadable record", "error", loadErr)
	}
	result.Errors += len(loadErrs)

	var retained []*domain.Video
	for _, video := range videos {
		if video.Score >= s.threshold {
			retained = append(retained, video)
		}
	}
	if len(retained) == 0 {
		s.logger.Info("nothing passed the score filter", "date", result.Date, "threshold", s.threshold, "assessed", len(videos))
		return result, nil
	}

	enhancedAt := time.Now().UTC()
	for _, video := range retained {
		video.MarkEnhanced(s.rewrite(ctx, video), enhancedAt)
		if err := store.SaveIn(video, dir); err != nil {
			result.Errors++
			s.logger.Error("save enhanced video", "id", video.ID, "error", err)
			continue
		}
		result.Processed++
	}

	s.logger.Info("enhance finished", "date", result.Date, "processed", result.Processed, "errors", result.Errors)
	return result, nil
}

// rewrite asks the model for a cleaned-up description and falls back to the
// original on any failure or empty answer.
func (s *EnhanceStage) rewrite(ctx context.Context, video *domain.Video) string {
	description := video.Description()
	payload := fmt.Sprintf("Title: %s\nDescription: %s", video.Title, description)

	response, err := s.completer.Complete(ctx, rewritePrompt, payload)
	if err != nil {
		s.logger.Warn("rewrite failed, keeping original description", "id", video.ID, "error", err)
		return description
	}
	enhanced := strings.TrimSpace(stripFences(response))
	if enhanced == "" {
		return description
	}
	return enhanced
}
