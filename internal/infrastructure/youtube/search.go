package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"maps"

	"VideosCurator/internal/catalog"
	"VideosCurator/internal/config"
	"VideosCurator/internal/domain"
	"VideosCurator/internal/ports"
)

// SearchSource queries the keyword-search resource.
type SearchSource struct {
	api    apiClient
	region string
	logger *slog.Logger
}

var _ ports.CatalogSource = (*SearchSource)(nil)
var _ catalog.Source = (*SearchSource)(nil)

// NewSearchSource creates the default catalog source.
func NewSearchSource(cfg config.CatalogConfig, archive *Archive, logger *slog.Logger) *SearchSource {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SearchSource{
		api:    newAPIClient(cfg.BaseURL, cfg.APIKey, archive),
		region: cfg.Region,
		logger: logger,
	}
}

// Name implements catalog.Source.
func (s *SearchSource) Name() string { return "search" }

// Search merges the caller's parameters over the baseline query and maps the
// response into catalog items. Entries without a video id are dropped.
func (s *SearchSource) Search(ctx context.Context, params map[string]any) ([]domain.CatalogItem, error) {
	merged := s.baseParams()
	maps.Copy(merged, params)

	rawItems, err := s.api.getItems(ctx, "search", merged)
	if err != nil {
		return nil, fmt.Errorf("catalog search: %w", err)
	}

	items := make([]domain.CatalogItem, 0, len(rawItems))
	for _, raw := range rawItems {
		var entry struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
			Snippet snippet `json:"snippet"`
		}
		if err := json.Unmarshal(raw, &entry); err != nil {
			s.logger.Warn("skipping malformed search item", "error", err)
			continue
		}
		if entry.ID.VideoID == "" {
			continue
		}
		items = append(items, domain.CatalogItem{
			ID:           entry.ID.VideoID,
			Title:        html.UnescapeString(entry.Snippet.Title),
			Description:  entry.Snippet.Description,
			ChannelTitle: entry.Snippet.ChannelTitle,
			ChannelID:    entry.Snippet.ChannelID,
			PublishedAt:  entry.Snippet.PublishedAt,
		})
	}

	s.logger.Debug("search returned items", "count", len(items))
	return items, nil
}

// baseParams is the query baseline every search starts from; named searches
// and CLI flags override individual keys.
func (s *SearchSource) baseParams() map[string]any {
	return map[string]any{
		"part":              "snippet",
		"maxResults":        50,
		"type":              "video",
		"safeSearch":        "strict",
		"order":             "viewCount",
		"regionCode":        s.region,
		"videoEmbeddable":   true,
		"relevanceLanguage": "en",
		"videoDuration":     "medium",
		"videoDimension":    "2d",
		"videoCategoryId":   15,
	}
}
