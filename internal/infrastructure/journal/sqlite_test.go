package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"VideosCurator/internal/domain"
)

func openTestJournal(t *testing.T) *SQLiteJournal {
	t.Helper()

	j, err := Open(filepath.Join(t.TempDir(), "journal", "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestMarkSeenCountsOnlyFreshItems(t *testing.T) {
	t.Parallel()

	j := openTestJournal(t)
	ctx := context.Background()
	day := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)

	items := []domain.CatalogItem{
		{ID: "aaa", Title: "Calm cats"},
		{ID: "bbb", Title: "Happy dogs"},
		{ID: "", Title: "broken entry"},
	}

	fresh, err := j.MarkSeen(ctx, items, day)
	if err != nil {
		t.Fatalf("MarkSeen: %v", err)
	}
	if fresh != 2 {
		t.Fatalf("fresh = %d, want 2", fresh)
	}

	again := append(items, domain.CatalogItem{ID: "ccc", Title: "New arrival"})
	fresh, err = j.MarkSeen(ctx, again, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("MarkSeen repeat: %v", err)
	}
	if fresh != 1 {
		t.Fatalf("fresh on repeat = %d, want 1", fresh)
	}
}

func TestMarkSeenEmptyBatch(t *testing.T) {
	t.Parallel()

	j := openTestJournal(t)

	fresh, err := j.MarkSeen(context.Background(), nil, time.Now())
	if err != nil {
		t.Fatalf("MarkSeen: %v", err)
	}
	if fresh != 0 {
		t.Fatalf("fresh = %d, want 0", fresh)
	}
}

func TestRecordRunAndRunsForDate(t *testing.T) {
	t.Parallel()

	j := openTestJournal(t)
	ctx := context.Background()
	started := time.Date(2025, 11, 3, 6, 0, 0, 0, time.UTC)

	runs := []domain.RunRecord{
		{Stage: "fetch", Date: "2025-11-03", Processed: 12, Errors: 1, StartedAt: started, EndedAt: started.Add(time.Minute)},
		{Stage: "assess", Date: "2025-11-03", Processed: 12, StartedAt: started.Add(2 * time.Minute), EndedAt: started.Add(3 * time.Minute)},
		{Stage: "fetch", Date: "2025-11-04", Processed: 3, StartedAt: started.AddDate(0, 0, 1), EndedAt: started.AddDate(0, 0, 1)},
	}
	for _, run := range runs {
		if err := j.RecordRun(ctx, run); err != nil {
			t.Fatalf("RecordRun %s: %v", run.Stage, err)
		}
	}

	got, err := j.RunsForDate(ctx, "2025-11-03")
	if err != nil {
		t.Fatalf("RunsForDate: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("runs = %d, want 2", len(got))
	}
	if got[0].Stage != "fetch" || got[1].Stage != "assess" {
		t.Errorf("run order = %s, %s", got[0].Stage, got[1].Stage)
	}
	if got[0].ID == "" {
		t.Error("expected an assigned run id")
	}
	if got[0].Processed != 12 || got[0].Errors != 1 {
		t.Errorf("counters = %d/%d", got[0].Processed, got[0].Errors)
	}
	if !got[0].StartedAt.Equal(started) {
		t.Errorf("started at = %s, want %s", got[0].StartedAt, started)
	}

	empty, err := j.RunsForDate(ctx, "2025-12-31")
	if err != nil {
		t.Fatalf("RunsForDate empty: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("runs for empty day = %d, want 0", len(empty))
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected an error for an empty path")
	}
}
