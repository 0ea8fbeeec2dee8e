package ports

import (
	"context"
	"io"
	"time"

	"VideosCurator/internal/domain"
)

// CatalogSource pulls raw items from an upstream video catalog.
type CatalogSource interface {
	Search(ctx context.Context, params map[string]any) ([]domain.CatalogItem, error)
}

// Completer sends a prompt plus payload to a language model and returns the
// raw response text. Callers decide fatal-vs-fallback per stage.
type Completer interface {
	Complete(ctx context.Context, prompt, payload string) (string, error)
}

// ReportRenderer turns an aggregated report into the daily artifact.
type ReportRenderer interface {
	Render(w io.Writer, report domain.Report) error
}

// SnapshotEncoder encodes a record set into one columnar snapshot.
type SnapshotEncoder interface {
	Encode(w io.Writer, videos []*domain.Video) error
}

// RunJournal persists run history and a seen-item index for deduplication.
type RunJournal interface {
	MarkSeen(ctx context.Context, items []domain.CatalogItem, day time.Time) (int, error)
	RecordRun(ctx context.Context, run domain.RunRecord) error
	RunsForDate(ctx context.Context, date string) ([]domain.RunRecord, error)
}

// Notifier streams pipeline summaries to Telegram or other channels.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// Scheduler controls when recurring pipeline runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
