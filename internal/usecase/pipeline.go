package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"VideosCurator/internal/domain"
	"VideosCurator/internal/ports"
)

// PipelineDeps wires the four stages and the optional notifier into the
// orchestration pipeline.
type PipelineDeps struct {
	Fetch    *FetchStage
	Assess   *AssessStage
	Enhance  *EnhanceStage
	Report   *ReportStage
	Notifier ports.Notifier
	Logger   *slog.Logger
}

// Pipeline implements the full-day curation workflow.
type Pipeline struct {
	fetch    *FetchStage
	assess   *AssessStage
	enhance  *EnhanceStage
	report   *ReportStage
	notifier ports.Notifier
	logger   *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		fetch:    deps.Fetch,
		assess:   deps.Assess,
		enhance:  deps.Enhance,
		report:   deps.Report,
		notifier: deps.Notifier,
		logger:   ensureLogger(deps.Logger),
	}
}

// RunAll executes fetch, assess, enhance and report in order for one day.
// A stage returning a fatal error aborts the chain; an empty fetch or assess
// result stops it early without error, since the later stages would only
// churn on nothing.
func (p *Pipeline) RunAll(ctx context.Context, day time.Time) (domain.PipelineSummary, error) {
	var summary domain.PipelineSummary
	date := day.Format(domain.DateLayout)
	p.logger.Info("pipeline starting", "date", date)

	fetchResult, err := p.fetch.Run(ctx, day)
	summary.Fetch = fetchResult
	if err != nil {
		return summary, fmt.Errorf("fetch stage: %w", err)
	}
	if fetchResult.Processed == 0 {
		p.logger.Warn("no videos fetched, stopping pipeline", "date", date)
		p.notify(ctx, summary)
		return summary, nil
	}

	assessResult, err := p.assess.Run(ctx, day)
	summary.Assess = assessResult
	if err != nil {
		return summary, fmt.Errorf("assess stage: %w", err)
	}
	if assessResult.Processed == 0 {
		p.logger.Warn("no videos assessed, stopping pipeline", "date", date)
		p.notify(ctx, summary)
		return summary, nil
	}

	enhanceResult, err := p.enhance.Run(ctx, day)
	summary.Enhance = enhanceResult
	if err != nil {
		return summary, fmt.Errorf("enhance stage: %w", err)
	}

	reportResult, err := p.report.Run(ctx, day)
	summary.Report = reportResult
	if err != nil {
		return summary, fmt.Errorf("report stage: %w", err)
	}

	p.logger.Info("pipeline finished", "date", date, "reported", reportResult.Processed)
	p.notify(ctx, summary)
	return summary, nil
}

func (p *Pipeline) notify(ctx context.Context, summary domain.PipelineSummary) {
	if p.notifier == nil {
		return
	}
	if err := p.notifier.Notify(ctx, summaryMessage(summary)); err != nil {
		p.logger.Warn("pipeline notification failed", "error", err)
	}
}

// summaryMessage renders the digest sent after a full run.
func summaryMessage(summary domain.PipelineSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Videos pipeline %s\n", summary.Fetch.Date)
	fmt.Fprintf(&b, "fetched: %d (%d new, %d errors)\n", summary.Fetch.Processed, summary.Fetch.New, summary.Fetch.Errors)
	fmt.Fprintf(&b, "assessed: %d (avg %.2f)\n", summary.Assess.Processed, summary.Assess.AvgScore)
	fmt.Fprintf(&b, "enhanced: %d\n", summary.Enhance.Processed)
	fmt.Fprintf(&b, "reported: %d (avg %.2f)", summary.Report.Processed, summary.Report.AvgScore)
	if summary.Report.ArtifactPath != "" {
		fmt.Fprintf(&b, "\nreport: %s", summary.Report.ArtifactPath)
	}
	return b.String()
}

var (
	_ Stage = (*FetchStage)(nil)
	_ Stage = (*AssessStage)(nil)
	_ Stage = (*EnhanceStage)(nil)
	_ Stage = (*ReportStage)(nil)
)
