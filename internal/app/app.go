// Package app assembles configuration, infrastructure and stages into a
// runnable application.
package app

import (
	"fmt"
	"log/slog"

	"VideosCurator/internal/catalog"
	"VideosCurator/internal/config"
	"VideosCurator/internal/infrastructure/export"
	"VideosCurator/internal/infrastructure/journal"
	"VideosCurator/internal/infrastructure/llm"
	"VideosCurator/internal/infrastructure/render"
	"VideosCurator/internal/infrastructure/scrape"
	"VideosCurator/internal/infrastructure/telegram"
	"VideosCurator/internal/infrastructure/youtube"
	"VideosCurator/internal/logging"
	"VideosCurator/internal/ports"
	"VideosCurator/internal/usecase"
)

// Application wires configs to use cases and owns closable resources.
type Application struct {
	cfg     config.Config
	logger  *slog.Logger
	journal *journal.SQLiteJournal

	Fetch    *usecase.FetchStage
	Assess   *usecase.AssessStage
	Enhance  *usecase.EnhanceStage
	Report   *usecase.ReportStage
	Pipeline *usecase.Pipeline
}

// New builds a runnable application instance. The journal is optional: when
// it cannot be opened the stages run without run history or dedup counters.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.LogLevel)
	}

	archive := youtube.NewArchive(cfg.Storage.ArchiveDir, baseLogger.With("component", "archive"))

	registry := catalog.NewRegistry()
	registry.Register(youtube.NewSearchSource(cfg.Catalog, archive, baseLogger.With("component", "catalog.search")))
	registry.Register(youtube.NewPopularSource(cfg.Catalog, archive, baseLogger.With("component", "catalog.popular")))
	registry.Register(scrape.NewListingSource(cfg.Catalog.Listing, nil, baseLogger.With("component", "catalog.listing")))

	source, err := registry.Resolve(cfg.Catalog.Source)
	if err != nil {
		return nil, err
	}

	completer, err := llm.New(cfg.LLM)
	if err != nil {
		return nil, err
	}

	renderer, err := render.NewHTMLRenderer()
	if err != nil {
		return nil, fmt.Errorf("report renderer: %w", err)
	}

	app := &Application{cfg: cfg, logger: baseLogger}

	var runJournal ports.RunJournal
	if cfg.Journal.Path != "" {
		store, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			baseLogger.Warn("run journal unavailable", "path", cfg.Journal.Path, "error", err)
		} else {
			app.journal = store
			runJournal = store
		}
	}

	var notifier ports.Notifier
	if tg := cfg.Notifications.Telegram; tg.BotToken != "" && tg.ChatID != "" {
		notifier = telegram.NewNotifier(tg.BotToken, tg.ChatID)
	}

	app.Fetch = usecase.NewFetchStage(usecase.FetchDeps{
		Root:       cfg.Storage.StagesDir,
		Source:     source,
		Journal:    runJournal,
		Category:   cfg.Stages.Fetch.Category,
		Params:     cfg.SearchParams(cfg.Stages.Fetch.Category),
		MaxItems:   cfg.Stages.Fetch.MaxVideos,
		OnlyScript: cfg.Stages.Fetch.OnlyScript,
		Logger:     baseLogger.With("component", "stage.fetch"),
	})
	app.Assess = usecase.NewAssessStage(usecase.AssessDeps{
		Root:          cfg.Storage.StagesDir,
		Completer:     completer,
		Journal:       runJournal,
		PromptName:    cfg.Stages.Assess.PromptName,
		PromptVersion: cfg.Stages.Assess.PromptVersion,
		Logger:        baseLogger.With("component", "stage.assess"),
	})
	app.Enhance = usecase.NewEnhanceStage(usecase.EnhanceDeps{
		Root:      cfg.Storage.StagesDir,
		Completer: completer,
		Journal:   runJournal,
		Threshold: cfg.Stages.Enhance.Threshold,
		Logger:    baseLogger.With("component", "stage.enhance"),
	})
	app.Report = usecase.NewReportStage(usecase.ReportDeps{
		Root:        cfg.Storage.StagesDir,
		ParquetRoot: cfg.Storage.ParquetDir,
		Renderer:    renderer,
		Encoder:     export.ParquetEncoder{},
		Journal:     runJournal,
		DaysBack:    cfg.Stages.Report.DaysBack,
		Logger:      baseLogger.With("component", "stage.report"),
	})
	app.Pipeline = usecase.NewPipeline(usecase.PipelineDeps{
		Fetch:    app.Fetch,
		Assess:   app.Assess,
		Enhance:  app.Enhance,
		Report:   app.Report,
		Notifier: notifier,
		Logger:   baseLogger.With("component", "pipeline"),
	})

	return app, nil
}

// RunJournal exposes the journal port, or nil when journaling is disabled.
func (a *Application) RunJournal() ports.RunJournal {
	if a.journal == nil {
		return nil
	}
	return a.journal
}

// Close releases owned resources.
func (a *Application) Close() error {
	return a.journal.Close()
}
