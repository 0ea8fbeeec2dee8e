package usecase

import (
	"context"
	"io"
	"time"

	"VideosCurator/internal/domain"
)

type fakeSource struct {
	items     []domain.CatalogItem
	err       error
	gotParams map[string]any
}

func (f *fakeSource) Search(ctx context.Context, params map[string]any) ([]domain.CatalogItem, error) {
	f.gotParams = params
	return f.items, f.err
}

type fakeCompleter struct {
	response string
	err      error
	// respond overrides response/err when set, so one fake can serve both
	// scoring and rewrite calls.
	respond  func(prompt, payload string) (string, error)
	prompts  []string
	payloads []string
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt, payload string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.payloads = append(f.payloads, payload)
	if f.respond != nil {
		return f.respond(prompt, payload)
	}
	return f.response, f.err
}

func (f *fakeCompleter) calls() int { return len(f.prompts) }

type fakeRenderer struct {
	err      error
	rendered []domain.Report
}

func (f *fakeRenderer) Render(w io.Writer, report domain.Report) error {
	f.rendered = append(f.rendered, report)
	if f.err != nil {
		return f.err
	}
	_, err := io.WriteString(w, "<html>report</html>")
	return err
}

type fakeEncoder struct {
	err     error
	batches map[string][][]*domain.Video
}

func (f *fakeEncoder) Encode(w io.Writer, videos []*domain.Video) error {
	if f.batches == nil {
		f.batches = map[string][][]*domain.Video{}
	}
	stage := string(videos[0].Stage)
	f.batches[stage] = append(f.batches[stage], videos)
	if f.err != nil {
		return f.err
	}
	_, err := w.Write([]byte("PAR1"))
	return err
}

type fakeJournal struct {
	seen      map[string]bool
	runs      []domain.RunRecord
	markErr   error
	recordErr error
}

func (f *fakeJournal) MarkSeen(ctx context.Context, items []domain.CatalogItem, day time.Time) (int, error) {
	if f.markErr != nil {
		return 0, f.markErr
	}
	if f.seen == nil {
		f.seen = map[string]bool{}
	}
	fresh := 0
	for _, item := range items {
		if !f.seen[item.ID] {
			f.seen[item.ID] = true
			fresh++
		}
	}
	return fresh, nil
}

func (f *fakeJournal) RecordRun(ctx context.Context, run domain.RunRecord) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeJournal) RunsForDate(ctx context.Context, date string) ([]domain.RunRecord, error) {
	var out []domain.RunRecord
	for _, run := range f.runs {
		if run.Date == date {
			out = append(out, run)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	messages []string
	err      error
}

func (f *fakeNotifier) Notify(ctx context.Context, message string) error {
	f.messages = append(f.messages, message)
	return f.err
}
