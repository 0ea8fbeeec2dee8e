package usecase

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"VideosCurator/internal/domain"
	"VideosCurator/internal/ports"
	"VideosCurator/internal/store"
)

func newTestPipeline(root, parquetRoot string, source *fakeSource, completer *fakeCompleter, journal ports.RunJournal, notifier *fakeNotifier) *Pipeline {
	fetch := NewFetchStage(FetchDeps{Root: root, Source: source, Journal: journal, Category: "animals"})
	assess := NewAssessStage(AssessDeps{Root: root, Completer: completer, Journal: journal})
	enhance := NewEnhanceStage(EnhanceDeps{Root: root, Completer: completer, Journal: journal, Threshold: 3})
	report := NewReportStage(ReportDeps{Root: root, ParquetRoot: parquetRoot, Renderer: &fakeRenderer{}, Encoder: &fakeEncoder{}, Journal: journal})
	return NewPipeline(PipelineDeps{Fetch: fetch, Assess: assess, Enhance: enhance, Report: report, Notifier: notifier})
}

// scoreOrRewrite serves the assess call with a fixed score sheet and every
// rewrite call with a canned description.
func scoreOrRewrite(scores string) func(prompt, payload string) (string, error) {
	return func(prompt, payload string) (string, error) {
		if strings.Contains(prompt, "Rate the happiness") {
			return scores, nil
		}
		return "A calm, honest description.", nil
	}
}

func TestPipelineRunAll(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	source := &fakeSource{items: []domain.CatalogItem{
		{ID: "aaa", Title: "Calm cats", Description: "cats sleeping", ChannelTitle: "CatTV"},
		{ID: "bbb", Title: "Sad news", Description: "nothing good", ChannelTitle: "NewsTV"},
	}}
	completer := &fakeCompleter{respond: scoreOrRewrite("id,happiness,reasoning\naaa,5,\"joy\"\nbbb,2,\"gloom\"\n")}
	journal := &fakeJournal{}
	notifier := &fakeNotifier{}

	pipeline := newTestPipeline(root, t.TempDir(), source, completer, journal, notifier)
	summary, err := pipeline.RunAll(context.Background(), testDay)
	if err != nil {
		t.Fatalf("RunAll() error: %v", err)
	}

	if summary.Fetch.Processed != 2 || summary.Assess.Processed != 2 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.Assess.AvgScore != 3.5 {
		t.Errorf("assess AvgScore = %v, want 3.5", summary.Assess.AvgScore)
	}
	if summary.Enhance.Processed != 1 {
		t.Errorf("enhance Processed = %d, want only the high scorer", summary.Enhance.Processed)
	}
	if summary.Report.Processed != 1 || summary.Report.AvgScore != 5 {
		t.Errorf("report = %+v", summary.Report)
	}
	if _, err := os.Stat(summary.Report.ArtifactPath); err != nil {
		t.Errorf("artifact missing: %v", err)
	}

	// The record that made it through carries the full audit trail with
	// monotonically non-decreasing stage timestamps.
	videos, _ := store.LoadPartition(PartitionDir(root, StageNameEnhance, testDay))
	if len(videos) != 1 || videos[0].ID != "aaa" {
		t.Fatalf("enhanced partition = %+v", videos)
	}
	final := videos[0]
	if final.Stage != domain.StageEnhanced || final.Score != 5 || final.Category != "animals" {
		t.Errorf("final record = %+v", final)
	}
	if final.FetchedAt > final.AssessedAt || final.AssessedAt > final.EnhancedAt {
		t.Errorf("timestamps not monotonic: %s / %s / %s", final.FetchedAt, final.AssessedAt, final.EnhancedAt)
	}

	if len(journal.runs) != 4 {
		t.Errorf("journal recorded %d runs, want 4", len(journal.runs))
	}
	if len(notifier.messages) != 1 || !strings.Contains(notifier.messages[0], "fetched: 2") {
		t.Errorf("notifier messages = %q", notifier.messages)
	}
}

func TestPipelineStopsWhenFetchIsEmpty(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{}
	notifier := &fakeNotifier{}
	pipeline := newTestPipeline(t.TempDir(), t.TempDir(), &fakeSource{}, completer, nil, notifier)

	summary, err := pipeline.RunAll(context.Background(), testDay)
	if err != nil {
		t.Fatalf("RunAll() error: %v", err)
	}
	if summary.Fetch.Processed != 0 || summary.Assess.Processed != 0 || summary.Report.Processed != 0 {
		t.Errorf("summary = %+v, want everything halted", summary)
	}
	if completer.calls() != 0 {
		t.Errorf("completer called %d times after an empty fetch", completer.calls())
	}
	if len(notifier.messages) != 1 {
		t.Errorf("notifier messages = %q, want the early-stop digest", notifier.messages)
	}
}

func TestPipelineFetchFailureAborts(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{}
	pipeline := newTestPipeline(t.TempDir(), t.TempDir(), &fakeSource{err: errors.New("quota exceeded")}, &fakeCompleter{}, nil, notifier)

	_, err := pipeline.RunAll(context.Background(), testDay)
	if err == nil {
		t.Fatal("RunAll() swallowed a fetch failure")
	}
	if len(notifier.messages) != 0 {
		t.Errorf("notifier messaged on a fatal run: %q", notifier.messages)
	}
}

func TestSummaryMessage(t *testing.T) {
	t.Parallel()

	summary := domain.PipelineSummary{
		Fetch:   domain.FetchResult{RunResult: domain.RunResult{Date: "2025-11-03", Processed: 50}, New: 12},
		Assess:  domain.AssessResult{RunResult: domain.RunResult{Processed: 50}, AvgScore: 3.4},
		Enhance: domain.RunResult{Processed: 21},
		Report:  domain.ReportResult{RunResult: domain.RunResult{Processed: 21}, AvgScore: 4.1, ArtifactPath: "stages/report/2025-11-03.html"},
	}

	message := summaryMessage(summary)
	for _, want := range []string{"2025-11-03", "fetched: 50 (12 new", "assessed: 50 (avg 3.40)", "enhanced: 21", "reported: 21 (avg 4.10)", "stages/report/2025-11-03.html"} {
		if !strings.Contains(message, want) {
			t.Errorf("summaryMessage() lacks %q:\n%s", want, message)
		}
	}
}
