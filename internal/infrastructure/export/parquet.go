// Package export writes columnar snapshots of stage partitions for offline
// analysis.
package export

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"VideosCurator/internal/domain"
	"VideosCurator/internal/ports"
)

// row flattens one record into the snapshot schema. Optional columns encode
// zero values as nulls.
type row struct {
	ID             string `parquet:"id"`
	Title          string `parquet:"title"`
	Channel        string `parquet:"channel,optional"`
	Category       string `parquet:"category,optional"`
	ChannelID      string `parquet:"channel_id,optional"`
	PublishedAt    string `parquet:"published_at,optional"`
	Duration       int64  `parquet:"duration,optional"`
	ScriptKind     string `parquet:"script_kind,optional"`
	Stage          string `parquet:"stage"`
	FetchedAt      string `parquet:"fetched_at,optional"`
	AssessedAt     string `parquet:"assessed_at,optional"`
	EnhancedAt     string `parquet:"enhanced_at,optional"`
	Score          int64  `parquet:"score,optional"`
	ScoreReasoning string `parquet:"score_reasoning,optional"`
	PromptName     string `parquet:"prompt_name,optional"`
	PromptVersion  int64  `parquet:"prompt_version,optional"`
	EnhancedText   string `parquet:"enhanced_text,optional"`
	Description    string `parquet:"description,optional"`
}

// ParquetEncoder implements ports.SnapshotEncoder with snappy-compressed
// parquet output.
type ParquetEncoder struct{}

var _ ports.SnapshotEncoder = ParquetEncoder{}

// Encode writes all records into one parquet file.
func (ParquetEncoder) Encode(w io.Writer, videos []*domain.Video) error {
	writer := parquet.NewGenericWriter[row](w, parquet.Compression(&parquet.Snappy))

	rows := make([]row, 0, len(videos))
	for _, video := range videos {
		rows = append(rows, row{
			ID:             video.ID,
			Title:          video.Title,
			Channel:        video.Channel,
			Category:       video.Category,
			ChannelID:      video.ChannelID,
			PublishedAt:    video.PublishedAt,
			Duration:       int64(video.Duration),
			ScriptKind:     video.ScriptKind,
			Stage:          string(video.Stage),
			FetchedAt:      video.FetchedAt,
			AssessedAt:     video.AssessedAt,
			EnhancedAt:     video.EnhancedAt,
			Score:          int64(video.Score),
			ScoreReasoning: video.ScoreReasoning,
			PromptName:     video.PromptName,
			PromptVersion:  int64(video.PromptVersion),
			EnhancedText:   video.EnhancedText,
			Description:    video.Description(),
		})
	}

	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("write snapshot rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close snapshot writer: %w", err)
	}
	return nil
}
