// Package youtube implements the API-backed catalog sources: keyword search
// and the regional popular chart.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// apiClient carries the plumbing shared by the API sources.
type apiClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	archive *Archive
}

func newAPIClient(baseURL, apiKey string, archive *Archive) apiClient {
	return apiClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
		archive: archive,
	}
}

// getItems performs one GET against a catalog resource and returns the raw
// items array. The response is archived best-effort before parsing.
func (c apiClient) getItems(ctx context.Context, resource string, params map[string]any) ([]json.RawMessage, error) {
	endpoint, err := url.Parse(c.baseURL + "/" + resource)
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}

	query := url.Values{}
	for key, value := range params {
		query.Set(key, fmt.Sprint(value))
	}
	query.Set("key", c.apiKey)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			return nil, fmt.Errorf("unexpected status %s, close body: %v", resp.Status, closeErr)
		}
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var payload struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if err := resp.Body.Close(); err != nil {
		return nil, fmt.Errorf("close response body: %w", err)
	}

	c.archive.Store(resource, payload.Items)

	return payload.Items, nil
}

// snippet is the metadata block shared by both API resources.
type snippet struct {
	PublishedAt  string `json:"publishedAt"`
	ChannelID    string `json:"channelId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ChannelTitle string `json:"channelTitle"`
}
