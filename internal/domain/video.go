package domain

import (
	"strings"
	"time"
)

// DateLayout is the calendar-day format used for partition directories.
const DateLayout = "2006-01-02"

// ProcessingStage enumerates how far a record has travelled through the pipeline.
type ProcessingStage string

const (
	StageFetched  ProcessingStage = "fetched"
	StageAssessed ProcessingStage = "assessed"
	StageEnhanced ProcessingStage = "enhanced"
)

// Video is a core entity describing one catalog item as it moves through the
// pipeline. Header fields are serialized as YAML frontmatter; Body is the
// free-text block stored after the header.
type Video struct {
	ID             string          `yaml:"id"`
	Title          string          `yaml:"title"`
	Channel        string          `yaml:"channel"`
	Category       string          `yaml:"category,omitempty"`
	ChannelID      string          `yaml:"channel_id,omitempty"`
	PublishedAt    string          `yaml:"published_at,omitempty"`
	Duration       int             `yaml:"duration,omitempty"`
	ScriptKind     string          `yaml:"script_kind,omitempty"`
	Stage          ProcessingStage `yaml:"stage"`
	FetchedAt      string          `yaml:"fetched_at,omitempty"`
	AssessedAt     string          `yaml:"assessed_at,omitempty"`
	EnhancedAt     string          `yaml:"enhanced_at,omitempty"`
	Score          int             `yaml:"score,omitempty"`
	ScoreReasoning string          `yaml:"score_reasoning,omitempty"`
	PromptName     string          `yaml:"prompt_name,omitempty"`
	PromptVersion  int             `yaml:"prompt_version,omitempty"`
	EnhancedText   string          `yaml:"enhanced_text,omitempty"`

	Body string `yaml:"-"`
}

// MarkAssessed merges scoring results into the header. The body is untouched.
func (v *Video) MarkAssessed(score int, reasoning, promptName string, promptVersion int, at time.Time) {
	v.Stage = StageAssessed
	v.AssessedAt = at.UTC().Format(time.RFC3339)
	v.Score = score
	v.ScoreReasoning = reasoning
	v.PromptName = promptName
	v.PromptVersion = promptVersion
}

// MarkEnhanced merges the rewritten description into the header and replaces
// the body with a fresh title + description block.
func (v *Video) MarkEnhanced(text string, at time.Time) {
	v.Stage = StageEnhanced
	v.EnhancedAt = at.UTC().Format(time.RFC3339)
	v.EnhancedText = text
	v.Body = ComposeBody(v.Title, text)
}

// Description returns the free-text part of the body, i.e. everything after
// the first blank line separating it from the title heading.
func (v *Video) Description() string {
	_, desc, found := strings.Cut(v.Body, "\n\n")
	if !found {
		return ""
	}
	return desc
}

// ComposeBody renders the canonical body block for a record.
func ComposeBody(title, description string) string {
	return "# " + title + "\n\n" + description
}

// CatalogItem is one raw entry returned by a catalog source before it is
// normalized into a Video record.
type CatalogItem struct {
	ID           string
	Title        string
	Description  string
	ChannelTitle string
	ChannelID    string
	PublishedAt  string
	Duration     int
}

// RunResult summarizes a single stage execution.
type RunResult struct {
	Stage     string
	Date      string
	Processed int
	Errors    int
	Dir       string
	// Err carries the fatal error message when the run aborted at the top;
	// per-record failures only increment Errors.
	Err string
}

// FetchResult adds fetch-specific counters.
type FetchResult struct {
	RunResult
	// New counts items never seen by previous runs, when a journal is wired.
	New int
}

// AssessResult adds the aggregate score of the scoring call.
type AssessResult struct {
	RunResult
	AvgScore float64
}

// ReportResult carries report aggregates and the rendered artifact location.
type ReportResult struct {
	RunResult
	AvgScore     float64
	ArtifactPath string
}

// Report is the payload handed to the report renderer.
type Report struct {
	Date     string
	Videos   []*Video
	Total    int
	AvgScore float64
}

// PipelineSummary aggregates the per-stage results of a full run.
type PipelineSummary struct {
	Fetch   FetchResult
	Assess  AssessResult
	Enhance RunResult
	Report  ReportResult
}

// RunRecord is one journal entry describing a finished stage run.
type RunRecord struct {
	ID        string
	Stage     string
	Date      string
	Processed int
	Errors    int
	StartedAt time.Time
	EndedAt   time.Time
}
