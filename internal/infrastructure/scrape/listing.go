// Package scrape implements the HTML-listing catalog source for portals that
// expose curated video pages without an API.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"VideosCurator/internal/catalog"
	"VideosCurator/internal/config"
	"VideosCurator/internal/domain"
	"VideosCurator/internal/ports"
)

// ListingSource crawls one configured listing page and extracts items via
// CSS selectors.
type ListingSource struct {
	cfg    config.ListingConfig
	client *http.Client
	logger *slog.Logger
}

var _ ports.CatalogSource = (*ListingSource)(nil)
var _ catalog.Source = (*ListingSource)(nil)

// NewListingSource wires an HTTP client; a nil client gets a sane timeout.
func NewListingSource(cfg config.ListingConfig, client *http.Client, logger *slog.Logger) *ListingSource {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ListingSource{cfg: cfg, client: client, logger: logger}
}

// Name identifies the strategy inside the registry.
func (l *ListingSource) Name() string {
	return "listing"
}

// Search fetches the listing page and extracts one catalog item per matched
// element. Elements without a resolvable video id are skipped.
func (l *ListingSource) Search(ctx context.Context, params map[string]any) ([]domain.CatalogItem, error) {
	if l.cfg.URL == "" || l.cfg.ItemSelector == "" {
		return nil, fmt.Errorf("listing source is not configured")
	}

	doc, err := l.fetchDocument(ctx, l.cfg.URL)
	if err != nil {
		return nil, err
	}

	var items []domain.CatalogItem
	seen := map[string]struct{}{}
	doc.Find(l.cfg.ItemSelector).Each(func(_ int, sel *goquery.Selection) {
		item, ok := l.extractItem(sel)
		if !ok {
			return
		}
		if _, dup := seen[item.ID]; dup {
			return
		}
		seen[item.ID] = struct{}{}
		items = append(items, item)
	})

	l.logger.Debug("listing returned items", "url", l.cfg.URL, "count", len(items))
	return items, nil
}

func (l *ListingSource) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "VideosCurator/1.0")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

func (l *ListingSource) extractItem(sel *goquery.Selection) (domain.CatalogItem, bool) {
	href, ok := sel.Find(l.cfg.LinkSel).First().Attr("href")
	if !ok {
		return domain.CatalogItem{}, false
	}
	id := l.videoID(href)
	if id == "" {
		return domain.CatalogItem{}, false
	}

	title := strings.TrimSpace(sel.Find(l.cfg.TitleSel).First().Text())
	if title == "" {
		return domain.CatalogItem{}, false
	}

	return domain.CatalogItem{
		ID:           id,
		Title:        title,
		ChannelTitle: strings.TrimSpace(sel.Find(l.cfg.ChannelSel).First().Text()),
	}, true
}

// videoID pulls the id out of a watch link, either from the configured query
// parameter or from the last path segment.
func (l *ListingSource) videoID(href string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if l.cfg.IDParam != "" {
		return parsed.Query().Get(l.cfg.IDParam)
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}
