package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"VideosCurator/internal/domain"
	"VideosCurator/internal/prompts"
	"VideosCurator/internal/store"
)

func seedFetchPartition(t *testing.T, root string, videos ...*domain.Video) {
	t.Helper()
	dir := PartitionDir(root, StageNameFetch, testDay)
	for _, video := range videos {
		video.Stage = domain.StageFetched
		video.FetchedAt = "2025-11-03T06:00:00Z"
		if err := store.SaveIn(video, dir); err != nil {
			t.Fatalf("seed record %s: %v", video.ID, err)
		}
	}
}

func TestAssessStageScoresRecords(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	seedFetchPartition(t, root,
		&domain.Video{ID: "aaa", Title: "Calm cats", Body: "# Calm cats\n\ncats sleeping"},
		&domain.Video{ID: "bbb", Title: "Sad news", Body: "# Sad news\n\nnothing good"},
	)
	completer := &fakeCompleter{response: "```csv\nid,happiness,reasoning\naaa,5,\"pure joy\"\nbbb,2,\"gloomy\"\n```"}
	stage := NewAssessStage(AssessDeps{Root: root, Completer: completer})

	result, err := stage.Run(context.Background(), testDay)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if result.Processed != 2 || result.Errors != 0 {
		t.Fatalf("Run() = %+v", result.RunResult)
	}
	if result.AvgScore != 3.5 {
		t.Errorf("AvgScore = %v, want 3.5", result.AvgScore)
	}
	if completer.calls() != 1 {
		t.Fatalf("completer called %d times, want one batched call", completer.calls())
	}
	if !strings.Contains(completer.payloads[0], "id,title,description") {
		t.Errorf("payload lacks the CSV header: %q", completer.payloads[0])
	}

	videos, loadErrs := store.LoadPartition(stage.Dir(testDay))
	if len(loadErrs) != 0 || len(videos) != 2 {
		t.Fatalf("partition holds %d records (%v)", len(videos), loadErrs)
	}
	first := videos[0]
	if first.Stage != domain.StageAssessed || first.Score != 5 || first.ScoreReasoning != "pure joy" {
		t.Errorf("assessed header = %+v", first)
	}
	if first.PromptName != prompts.RateHappiness || first.PromptVersion != 2 {
		t.Errorf("prompt audit trail = (%q, %d)", first.PromptName, first.PromptVersion)
	}
	if first.Body != "# Calm cats\n\ncats sleeping" {
		t.Errorf("body changed during assess: %q", first.Body)
	}
	if first.AssessedAt == "" {
		t.Error("AssessedAt not set")
	}
}

func TestAssessStageMissingIDScoresZero(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	seedFetchPartition(t, root,
		&domain.Video{ID: "aaa", Title: "Calm cats", Body: "# Calm cats\n\nx"},
		&domain.Video{ID: "bbb", Title: "Lost video", Body: "# Lost video\n\ny"},
	)
	completer := &fakeCompleter{response: "id,happiness,reasoning\naaa,4,\"fine\"\n"}
	stage := NewAssessStage(AssessDeps{Root: root, Completer: completer})

	result, err := stage.Run(context.Background(), testDay)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if result.Processed != 2 {
		t.Fatalf("Processed = %d, want 2 (missing ids advance with zero)", result.Processed)
	}
	if result.AvgScore != 4 {
		t.Errorf("AvgScore = %v, want 4 (zero scores stay out of the mean)", result.AvgScore)
	}

	videos, _ := store.LoadPartition(stage.Dir(testDay))
	for _, video := range videos {
		if video.ID == "bbb" && (video.Score != 0 || video.Stage != domain.StageAssessed) {
			t.Errorf("skipped record = %+v", video)
		}
	}
}

func TestAssessStageEmptyPartition(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{response: "id,happiness\n"}
	stage := NewAssessStage(AssessDeps{Root: t.TempDir(), Completer: completer})

	result, err := stage.Run(context.Background(), testDay)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if result.Processed != 0 {
		t.Errorf("Processed = %d, want 0", result.Processed)
	}
	if completer.calls() != 0 {
		t.Errorf("completer called %d times on an empty partition", completer.calls())
	}
}

func TestAssessStageCompleterFailureIsFatal(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	seedFetchPartition(t, root, &domain.Video{ID: "aaa", Title: "T", Body: "# T\n\nx"})
	stage := NewAssessStage(AssessDeps{Root: root, Completer: &fakeCompleter{err: errors.New("model overloaded")}})

	result, err := stage.Run(context.Background(), testDay)
	if err == nil {
		t.Fatal("Run() accepted a completer failure")
	}
	if result.Processed != 0 || result.Err == "" {
		t.Errorf("Run() = %+v", result.RunResult)
	}
}

func TestAssessStageUnknownPromptIsFatal(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	seedFetchPartition(t, root, &domain.Video{ID: "aaa", Title: "T", Body: "# T\n\nx"})
	stage := NewAssessStage(AssessDeps{Root: root, Completer: &fakeCompleter{}, PromptName: "no_such_prompt"})

	if _, err := stage.Run(context.Background(), testDay); err == nil {
		t.Fatal("Run() accepted an undefined prompt")
	}
}

func TestScoringPayloadTruncatesDescriptions(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("я", 600)
	payload, err := scoringPayload([]*domain.Video{{ID: "aaa", Title: "T", Body: "# T\n\n" + long}})
	if err != nil {
		t.Fatalf("scoringPayload() error: %v", err)
	}
	if strings.Contains(payload, long) {
		t.Error("payload carries the untruncated description")
	}
	if !strings.Contains(payload, strings.Repeat("я", 500)) {
		t.Error("payload lost the 500-rune prefix")
	}
}

func TestParseScores(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		text string
		want map[string]assessment
	}{
		{
			"plain csv",
			"id,happiness,reasoning\naaa,5,\"joy\"\nbbb,1,\"sad\"\n",
			map[string]assessment{"aaa": {5, "joy"}, "bbb": {1, "sad"}},
		},
		{
			"fenced with language tag",
			"```csv\nid,happiness,reasoning\naaa,3,ok\n```",
			map[string]assessment{"aaa": {3, "ok"}},
		},
		{
			"video_id alias without reasoning",
			"video_id,happiness\naaa,4\n",
			map[string]assessment{"aaa": {4, ""}},
		},
		{
			"unparsable and negative scores degrade to zero",
			"id,happiness\naaa,five\nbbb,-2\n",
			map[string]assessment{"aaa": {0, ""}, "bbb": {0, ""}},
		},
		{
			"short rows are skipped",
			"id,happiness\naaa\nbbb,2\n",
			map[string]assessment{"bbb": {2, ""}},
		},
		{
			"missing score column yields nothing",
			"id,mood\naaa,5\n",
			map[string]assessment{},
		},
		{
			"prose instead of csv yields nothing",
			"I cannot rate these videos.",
			map[string]assessment{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := parseScores(tc.text)
			if len(got) != len(tc.want) {
				t.Fatalf("parseScores() = %v, want %v", got, tc.want)
			}
			for id, want := range tc.want {
				if got[id] != want {
					t.Errorf("parseScores()[%q] = %v, want %v", id, got[id], want)
				}
			}
		})
	}
}
