package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"VideosCurator/internal/domain"
	"VideosCurator/internal/ports"
	"VideosCurator/internal/store"
)

// FetchDeps wires the collaborators of the fetch stage.
type FetchDeps struct {
	Root     string
	Source   ports.CatalogSource
	Journal  ports.RunJournal
	Category string
	// Params is handed verbatim to the catalog source.
	Params   map[string]any
	MaxItems int
	// OnlyScript drops items whose detected writing system differs. Empty
	// keeps everything.
	OnlyScript string
	Logger     *slog.Logger
}

// FetchStage pulls raw catalog items and materializes them as records in the
// fetch partition.
type FetchStage struct {
	stagePaths
	source     ports.CatalogSource
	journal    ports.RunJournal
	category   string
	params     map[string]any
	maxItems   int
	onlyScript string
	logger     *slog.Logger
}

// NewFetchStage constructs the first pipeline stage.
func NewFetchStage(deps FetchDeps) *FetchStage {
	maxItems := deps.MaxItems
	if maxItems <= 0 {
		maxItems = 50
	}
	return &FetchStage{
		stagePaths: stagePaths{root: deps.Root, name: StageNameFetch},
		source:     deps.Source,
		journal:    deps.Journal,
		category:   deps.Category,
		params:     deps.Params,
		maxItems:   maxItems,
		onlyScript: deps.OnlyScript,
		logger:     ensureLogger(deps.Logger),
	}
}

// Run queries the catalog once and writes one record per returned item. A
// catalog failure aborts the run; individual save failures are counted and
// skipped.
func (s *FetchStage) Run(ctx context.Context, day time.Time) (domain.FetchResult, error) {
	started := time.Now().UTC()
	result := domain.FetchResult{RunResult: domain.RunResult{
		Stage: s.Name(),
		Date:  day.Format(domain.DateLayout),
	}}
	defer func() { recordRun(ctx, s.journal, s.logger, result.RunResult, started) }()

	dir, err := s.EnsureDir(day)
	if err != nil {
		result.Err = err.Error()
		return result, err
	}
	result.Dir = dir

	items, err := s.source.Search(ctx, s.params)
	if err != nil {
		result.Errors = 1
		result.Err = err.Error()
		return result, fmt.Errorf("search catalog: %w", err)
	}
	if len(items) > s.maxItems {
		items = items[:s.maxItems]
	}
	result.New = s.markSeen(ctx, items, day)

	fetchedAt := time.Now().UTC().Format(time.RFC3339)
	for _, item := range items {
		kind := domain.DetectScript(item.Title)
		if s.onlyScript != "" && kind != s.onlyScript {
			s.logger.Debug("skipping off-script item", "id", item.ID, "script", kind)
			continue
		}

		video := &domain.Video{
			ID:          item.ID,
			Title:       item.Title,
			Channel:     item.ChannelTitle,
			Category:    s.category,
			ChannelID:   item.ChannelID,
			PublishedAt: item.PublishedAt,
			Duration:    item.Duration,
			ScriptKind:  kind,
			Stage:       domain.StageFetched,
			FetchedAt:   fetchedAt,
			Body:        domain.ComposeBody(item.Title, item.Description),
		}
		if err := store.SaveIn(video, dir); err != nil {
			result.Errors++
			s.logger.Error("save fetched video", "id", item.ID, "error", err)
			continue
		}
		result.Processed++
	}

	s.logger.Info("fetch finished", "date", result.Date, "processed", result.Processed, "new", result.New, "errors", result.Errors)
	return result, nil
}

// markSeen asks the journal how many items are first-timers. Without a
// journal every item counts as new.
func (s *FetchStage) markSeen(ctx context.Context, items []domain.CatalogItem, day time.Time) int {
	if s.journal == nil {
		return len(items)
	}
	fresh, err := s.journal.MarkSeen(ctx, items, day)
	if err != nil {
		s.logger.Warn("seen-video index unavailable", "error", err)
		return len(items)
	}
	return fresh
}
