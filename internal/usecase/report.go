package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"VideosCurator/internal/domain"
	"VideosCurator/internal/ports"
	"VideosCurator/internal/store"
)

// ReportDeps wires the collaborators of the report stage.
type ReportDeps struct {
	Root        string
	ParquetRoot string
	Renderer    ports.ReportRenderer
	Encoder     ports.SnapshotEncoder
	Journal     ports.RunJournal
	DaysBack    int
	Logger      *slog.Logger
}

// ReportStage renders the day's enhanced records into an HTML artifact and
// exports rolling columnar snapshots of every stage.
type ReportStage struct {
	stagePaths
	parquetRoot string
	renderer    ports.ReportRenderer
	encoder     ports.SnapshotEncoder
	journal     ports.RunJournal
	daysBack    int
	logger      *slog.Logger
}

// NewReportStage constructs the reporting stage.
func NewReportStage(deps ReportDeps) *ReportStage {
	daysBack := deps.DaysBack
	if daysBack <= 0 {
		daysBack = 7
	}
	return &ReportStage{
		stagePaths:  stagePaths{root: deps.Root, name: StageNameReport},
		parquetRoot: deps.ParquetRoot,
		renderer:    deps.Renderer,
		encoder:     deps.Encoder,
		journal:     deps.Journal,
		daysBack:    daysBack,
		logger:      ensureLogger(deps.Logger),
	}
}

// Run aggregates the enhanced partition, sorted by score descending, writes
// the HTML artifact, and exports the snapshots. Rendering problems cost the
// artifact but never the run.
func (s *ReportStage) Run(ctx context.Context, day time.Time) (domain.ReportResult, error) {
	started := time.Now().UTC()
	result := domain.ReportResult{RunResult: domain.RunResult{
		Stage: s.Name(),
		Date:  day.Format(domain.DateLayout),
	}}
	defer func() { recordRun(ctx, s.journal, s.logger, result.RunResult, started) }()

	videos, loadErrs := store.LoadPartition(PartitionDir(s.root, StageNameEnhance, day))
	for _, loadErr := range loadErrs {
		s.logger.Warn("skipping unreadable record", "error", loadErr)
	}
	result.Errors += len(loadErrs)
	if len(videos) == 0 {
		s.logger.Info("nothing to report", "date", result.Date)
		return result, nil
	}

	sort.SliceStable(videos, func(i, j int) bool { return videos[i].Score > videos[j].Score })
	result.Processed = len(videos)
	result.AvgScore = averageScore(videos)

	report := domain.Report{
		Date:     result.Date,
		Videos:   videos,
		Total:    len(videos),
		AvgScore: result.AvgScore,
	}
	if artifact := s.renderArtifact(day, report); artifact != "" {
		result.ArtifactPath = artifact
		result.Dir = filepath.Dir(artifact)
	}

	s.exportSnapshots(day)

	s.logger.Info("report finished", "date", result.Date, "videos", result.Processed, "avg_score", result.AvgScore, "artifact", result.ArtifactPath)
	return result, nil
}

// renderArtifact writes the HTML report and returns its path, or empty when
// rendering is unavailable or failed.
func (s *ReportStage) renderArtifact(day time.Time, report domain.Report) string {
	if s.renderer == nil {
		s.logger.Warn("report renderer unavailable, skipping artifact", "date", report.Date)
		return ""
	}

	path := ArtifactPath(s.root, day)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		s.logger.Warn("create report dir failed", "error", err)
		return ""
	}
	file, err := os.Create(path)
	if err != nil {
		s.logger.Warn("create report artifact failed", "path", path, "error", err)
		return ""
	}
	defer file.Close()

	if err := s.renderer.Render(file, report); err != nil {
		s.logger.Warn("render report failed", "path", path, "error", err)
		return ""
	}
	return path
}

// exportSnapshots writes one rolling parquet file per stage covering the
// trailing window that ends at day. Failures are isolated per stage.
func (s *ReportStage) exportSnapshots(day time.Time) {
	if s.encoder == nil || s.parquetRoot == "" {
		return
	}
	for _, stage := range []string{StageNameFetch, StageNameAssess, StageNameEnhance} {
		if err := s.exportStage(stage, day); err != nil {
			s.logger.Warn("snapshot export failed", "stage", stage, "error", err)
		}
	}
}

func (s *ReportStage) exportStage(stage string, day time.Time) error {
	var all []*domain.Video
	for offset := s.daysBack - 1; offset >= 0; offset-- {
		dir := PartitionDir(s.root, stage, day.AddDate(0, 0, -offset))
		videos, loadErrs := store.LoadPartition(dir)
		for _, loadErr := range loadErrs {
			s.logger.Warn("skipping unreadable record", "stage", stage, "error", loadErr)
		}
		all = append(all, videos...)
	}
	if len(all) == 0 {
		return nil
	}

	path := s.snapshotPath(stage, day)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot %s: %w", path, err)
	}
	if err := s.encoder.Encode(file, all); err != nil {
		file.Close()
		return fmt.Errorf("encode snapshot %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close snapshot %s: %w", path, err)
	}

	s.logger.Info("snapshot exported", "stage", stage, "records", len(all), "path", path)
	return nil
}

func (s *ReportStage) snapshotPath(stage string, day time.Time) string {
	name := fmt.Sprintf("%s_last_%d_days.parquet", day.Format(domain.DateLayout), s.daysBack)
	return filepath.Join(s.parquetRoot, stage, "by-run-date", name)
}

// averageScore is the mean over records with a positive score, rounded to
// two decimals. Silent zeros stay out of the mean.
func averageScore(videos []*domain.Video) float64 {
	var sum, scored int
	for _, video := range videos {
		if video.Score > 0 {
			sum += video.Score
			scored++
		}
	}
	if scored == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(scored)*100) / 100
}
