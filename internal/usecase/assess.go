package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"VideosCurator/internal/domain"
	"VideosCurator/internal/ports"
	"VideosCurator/internal/prompts"
	"VideosCurator/internal/store"
)

// descriptionLimit caps how many runes of each description travel to the
// scoring model.
const descriptionLimit = 500

// AssessDeps wires the collaborators of the assess stage.
type AssessDeps struct {
	Root          string
	Completer     ports.Completer
	Journal       ports.RunJournal
	PromptName    string
	PromptVersion int
	Logger        *slog.Logger
}

// AssessStage scores every fetched record with a single model call and
// writes the scored copies into the assess partition.
type AssessStage struct {
	stagePaths
	completer     ports.Completer
	journal       ports.RunJournal
	promptName    string
	promptVersion int
	logger        *slog.Logger
}

// NewAssessStage constructs the scoring stage.
func NewAssessStage(deps AssessDeps) *AssessStage {
	name := deps.PromptName
	if name == "" {
		name = prompts.RateHappiness
	}
	version := deps.PromptVersion
	if version <= 0 {
		version = 2
	}
	return &AssessStage{
		stagePaths:    stagePaths{root: deps.Root, name: StageNameAssess},
		completer:     deps.Completer,
		journal:       deps.Journal,
		promptName:    name,
		promptVersion: version,
		logger:        ensureLogger(deps.Logger),
	}
}

// Run batches all records of the day's fetch partition into one CSV payload,
// requests scores, and persists every record with its score merged in.
// Records the model skipped or garbled keep a zero score rather than being
// dropped. The model call itself is fatal.
func (s *AssessStage) Run(ctx context.Context, day time.Time) (domain.AssessResult, error) {
	started := time.Now().UTC()
	result := domain.AssessResult{RunResult: domain.RunResult{
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

	videos, loadErrs := store.LoadPartition(PartitionDir(s.root, StageNameFetch, day))
	for _, loadErr := range loadErrs {
		s.logger.Warn("skipping unreadable record", "error", loadErr)
	}
	result.Errors += len(loadErrs)
	if len(videos) == 0 {
		s.logger.Info("nothing to assess", "date", result.Date)
		return result, nil
	}

	prompt, err := prompts.Get(s.promptName, s.promptVersion)
	if err != nil {
		result.Err = err.Error()
		return result, fmt.Errorf("resolve prompt: %w", err)
	}

	payload, err := scoringPayload(videos)
	if err != nil {
		result.Err = err.Error()
		return result, fmt.Errorf("build scoring payload: %w", err)
	}

	response, err := s.completer.Complete(ctx, prompt, payload)
	if err != nil {
		result.Err = err.Error()
		return result, fmt.Errorf("score videos: %w", err)
	}
	scores := parseScores(response)
	if len(scores) == 0 {
		s.logger.Warn("scoring response yielded no rows", "date", result.Date)
	}

	assessedAt := time.Now().UTC()
	var sum, scored int
	for _, video := range videos {
		entry := scores[video.ID]
		if entry.Score > 0 {
			sum += entry.Score
			scored++
		}
		video.MarkAssessed(entry.Score, entry.Reasoning, s.promptName, s.promptVersion, assessedAt)
		if err := store.SaveIn(video, dir); err != nil {
			result.Errors++
			s.logger.Error("save assessed video", "id", video.ID, "error", err)
			continue
		}
		result.Processed++
	}
	if scored > 0 {
		result.AvgScore = math.Round(float64(sum)/float64(scored)*100) / 100
	}

	s.logger.Info("assess finished", "date", result.Date, "processed", result.Processed, "avg_score", result.AvgScore, "errors", result.Errors)
	return result, nil
}

type assessment struct {
	Score     int
	Reasoning string
}

// scoringPayload renders the records into the CSV block appended to the
// scoring prompt.
func scoringPayload(videos []*domain.Video) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	records := [][]string{{"id", "title", "description"}}
	for _, video := range videos {
		records = append(records, []string{video.ID, video.Title, truncateRunes(video.Description(), descriptionLimit)})
	}
	if err := w.WriteAll(records); err != nil {
		return "", err
	}
	return b.String(), nil
}

// parseScores extracts id/happiness/reasoning rows from the model response.
// The response may arrive wrapped in a code fence; malformed rows and
// unparsable scores degrade to zero instead of failing the batch.
func parseScores(text string) map[string]assessment {
	out := map[string]assessment{}

	reader := csv.NewReader(strings.NewReader(stripFences(text)))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return out
	}
	idCol, scoreCol, reasonCol := -1, -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "id", "video_id":
			idCol = i
		case "happiness":
			scoreCol = i
		case "reasoning":
			reasonCol = i
		}
	}
	if idCol < 0 || scoreCol < 0 {
		return out
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue
		}
		if len(row) <= idCol || len(row) <= scoreCol {
			continue
		}
		id := strings.TrimSpace(row[idCol])
		if id == "" {
			continue
		}
		score, err := strconv.Atoi(strings.TrimSpace(row[scoreCol]))
		if err != nil || score < 0 {
			score = 0
		}
		entry := assessment{Score: score}
		if reasonCol >= 0 && len(row) > reasonCol {
			entry.Reasoning = strings.TrimSpace(row[reasonCol])
		}
		out[id] = entry
	}
	return out
}

// stripFences unwraps a ```-fenced block, tolerating a language tag on the
// opening fence.
func stripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	lines := strings.Split(trimmed, "\n")
	lines = lines[1:]
	for len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
