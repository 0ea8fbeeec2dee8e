// Package journal persists run history and the seen-video index in SQLite.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"VideosCurator/internal/domain"
	"VideosCurator/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id         TEXT PRIMARY KEY,
    stage      TEXT NOT NULL,
    date       TEXT NOT NULL,
    processed  INTEGER NOT NULL,
    errors     INTEGER NOT NULL,
    started_at TEXT NOT NULL,
    ended_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_date ON runs(date);

CREATE TABLE IF NOT EXISTS seen_videos (
    video_id        TEXT PRIMARY KEY,
    title           TEXT NOT NULL,
    first_seen_date TEXT NOT NULL
);
`

// SQLiteJournal implements ports.RunJournal on a local SQLite file.
type SQLiteJournal struct {
	db *sql.DB
}

var _ ports.RunJournal = (*SQLiteJournal)(nil)

// Open connects to (or creates) the journal database at path.
func Open(path string) (*SQLiteJournal, error) {
	if path == "" {
		return nil, fmt.Errorf("journal path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init journal schema: %w", err)
	}

	return &SQLiteJournal{db: db}, nil
}

// Close closes the underlying database connection.
func (j *SQLiteJournal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// MarkSeen registers catalog items in the seen index and returns how many of
// them were never recorded before.
func (j *SQLiteJournal) MarkSeen(ctx context.Context, items []domain.CatalogItem, day time.Time) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	date := day.Format(domain.DateLayout)
	fresh := 0
	for _, item := range items {
		if item.ID == "" {
			continue
		}
		query, args, err := sq.Insert("seen_videos").
			Options("OR IGNORE").
			Columns("video_id", "title", "first_seen_date").
			Values(item.ID, item.Title, date).
			ToSql()
		if err != nil {
			return fresh, fmt.Errorf("build seen insert: %w", err)
		}

		res, err := j.db.ExecContext(ctx, query, args...)
		if err != nil {
			return fresh, fmt.Errorf("insert seen %s: %w", item.ID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fresh, fmt.Errorf("rows affected: %w", err)
		}
		fresh += int(affected)
	}

	return fresh, nil
}

// RecordRun appends one run record. A missing ID is assigned here.
func (j *SQLiteJournal) RecordRun(ctx context.Context, run domain.RunRecord) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	query, args, err := sq.Insert("runs").
		Columns("id", "stage", "date", "processed", "errors", "started_at", "ended_at").
		Values(
			run.ID,
			run.Stage,
			run.Date,
			run.Processed,
			run.Errors,
			run.StartedAt.UTC().Format(time.RFC3339),
			run.EndedAt.UTC().Format(time.RFC3339),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build run insert: %w", err)
	}

	if _, err := j.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RunsForDate returns all recorded runs for one calendar day in start order.
func (j *SQLiteJournal) RunsForDate(ctx context.Context, date string) ([]domain.RunRecord, error) {
	query, args, err := sq.Select("id", "stage", "date", "processed", "errors", "started_at", "ended_at").
		From("runs").
		Where(sq.Eq{"date": date}).
		OrderBy("started_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build runs query: %w", err)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}

	var runs []domain.RunRecord
	for rows.Next() {
		var (
			run       domain.RunRecord
			startedAt string
			endedAt   string
		)
		if err := rows.Scan(&run.ID, &run.Stage, &run.Date, &run.Processed, &run.Errors, &startedAt, &endedAt); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		run.EndedAt, _ = time.Parse(time.RFC3339, endedAt)
		runs = append(runs, run)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}
	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return runs, nil
}
