package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"maps"
	"regexp"
	"strconv"

	"VideosCurator/internal/catalog"
	"VideosCurator/internal/config"
	"VideosCurator/internal/domain"
	"VideosCurator/internal/ports"
)

// PopularSource queries the most-popular chart.
type PopularSource struct {
	api    apiClient
	logger *slog.Logger
}

var _ ports.CatalogSource = (*PopularSource)(nil)
var _ catalog.Source = (*PopularSource)(nil)

// NewPopularSource creates the chart-backed catalog source.
func NewPopularSource(cfg config.CatalogConfig, archive *Archive, logger *slog.Logger) *PopularSource {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &PopularSource{
		api:    newAPIClient(cfg.BaseURL, cfg.APIKey, archive),
		logger: logger,
	}
}

// Name implements catalog.Source.
func (s *PopularSource) Name() string { return "popular" }

// Search pulls the chart and maps it into catalog items, including playback
// duration in seconds.
func (s *PopularSource) Search(ctx context.Context, params map[string]any) ([]domain.CatalogItem, error) {
	merged := map[string]any{
		"part":            "contentDetails,id,snippet",
		"chart":           "mostPopular",
		"maxResults":      50,
		"videoCategoryId": 15,
	}
	maps.Copy(merged, params)

	rawItems, err := s.api.getItems(ctx, "videos", merged)
	if err != nil {
		return nil, fmt.Errorf("catalog chart: %w", err)
	}

	items := make([]domain.CatalogItem, 0, len(rawItems))
	for _, raw := range rawItems {
		var entry struct {
			ID             string  `json:"id"`
			Snippet        snippet `json:"snippet"`
			ContentDetails struct {
				Duration string `json:"duration"`
			} `json:"contentDetails"`
		}
		if err := json.Unmarshal(raw, &entry); err != nil {
			s.logger.Warn("skipping malformed chart item", "error", err)
			continue
		}
		if entry.ID == "" {
			continue
		}
		items = append(items, domain.CatalogItem{
			ID:           entry.ID,
			Title:        html.UnescapeString(entry.Snippet.Title),
			Description:  entry.Snippet.Description,
			ChannelTitle: entry.Snippet.ChannelTitle,
			ChannelID:    entry.Snippet.ChannelID,
			PublishedAt:  entry.Snippet.PublishedAt,
			Duration:     parseISODuration(entry.ContentDetails.Duration),
		})
	}

	s.logger.Debug("chart returned items", "count", len(items))
	return items, nil
}

var durationPattern = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// parseISODuration converts an ISO-8601 duration like PT1H2M3S to seconds.
// Unparsable values yield zero.
func parseISODuration(value string) int {
	match := durationPattern.FindStringSubmatch(value)
	if match == nil {
		return 0
	}
	days := atoiOrZero(match[1])
	hours := atoiOrZero(match[2])
	minutes := atoiOrZero(match[3])
	seconds := atoiOrZero(match[4])
	return ((days*24+hours)*60+minutes)*60 + seconds
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
