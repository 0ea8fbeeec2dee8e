package export

import (
	"bytes"
	"testing"

	"github.com/parquet-go/parquet-go"

	"VideosCurator/internal/domain"
)

func TestParquetEncoderRoundTrip(t *testing.T) {
	t.Parallel()

	videos := []*domain.Video{
		{
			ID:             "aaa",
			Title:          "Calm cats",
			Channel:        "Cat Channel",
			Category:       "pets",
			ChannelID:      "ch-1",
			PublishedAt:    "2025-11-01T10:00:00Z",
			Duration:       420,
			ScriptKind:     "LATIN",
			Stage:          domain.StageEnhanced,
			FetchedAt:      "2025-11-03T08:00:00Z",
			AssessedAt:     "2025-11-03T09:00:00Z",
			EnhancedAt:     "2025-11-03T10:00:00Z",
			Score:          5,
			ScoreReasoning: "pure joy",
			PromptName:     "rate_video_happiness",
			PromptVersion:  2,
			EnhancedText:   "Cats resting in the sun.",
			Body:           "# Calm cats\n\nCats resting in the sun.",
		},
		{
			ID:      "bbb",
			Title:   "Happy dogs",
			Channel: "Dog Channel",
			Stage:   domain.StageFetched,
			Body:    "# Happy dogs\n\nDogs at play.",
		},
	}

	var buf bytes.Buffer
	if err := (ParquetEncoder{}).Encode(&buf, videos); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	rows, err := parquet.Read[row](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("read snapshot back: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	first := rows[0]
	if first.ID != "aaa" || first.Title != "Calm cats" {
		t.Errorf("first row = %q %q", first.ID, first.Title)
	}
	if first.Score != 5 || first.PromptVersion != 2 {
		t.Errorf("first row score = %d prompt version = %d", first.Score, first.PromptVersion)
	}
	if first.Stage != string(domain.StageEnhanced) {
		t.Errorf("first row stage = %q", first.Stage)
	}
	if first.Description != "Cats resting in the sun." {
		t.Errorf("first row description = %q", first.Description)
	}

	second := rows[1]
	if second.ID != "bbb" || second.Score != 0 || second.EnhancedText != "" {
		t.Errorf("second row = %+v", second)
	}
}

func TestParquetEncoderEmptyBatch(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := (ParquetEncoder{}).Encode(&buf, nil); err != nil {
		t.Fatalf("Encode empty: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected a valid parquet file even with zero rows")
	}

	rows, err := parquet.Read[row](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("read snapshot back: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rows = %d, want 0", len(rows))
	}
}
