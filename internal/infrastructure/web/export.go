// Package web builds and serves the static player feed from the raw catalog
// archive.
package web

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// videoInfo is one entry of the exported feed.
type videoInfo struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ChannelTitle string `json:"channel_title"`
	Thumbnail    string `json:"thumbnail"`
	PublishedAt  string `json:"published_at"`
}

// apiItem mirrors the raw catalog payload. ID is either a bare string or an
// object carrying videoId, depending on the upstream endpoint.
type apiItem struct {
	ID      json.RawMessage `json:"id"`
	Snippet struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		ChannelTitle string `json:"channelTitle"`
		PublishedAt  string `json:"publishedAt"`
		Thumbnails   struct {
			High struct {
				URL string `json:"url"`
			} `json:"high"`
		} `json:"thumbnails"`
	} `json:"snippet"`
}

// Export collects unique videos from every JSON file under archiveDir and
// writes them as <webDir>/videos.json. It returns the exported count.
func Export(archiveDir, webDir string, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	videos := loadArchive(archiveDir, logger)

	if err := os.MkdirAll(webDir, 0o755); err != nil {
		return 0, fmt.Errorf("create web dir: %w", err)
	}

	data, err := json.MarshalIndent(videos, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("marshal feed: %w", err)
	}

	target := filepath.Join(webDir, "videos.json")
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return 0, fmt.Errorf("write %s: %w", target, err)
	}

	logger.Info("exported video feed", "videos", len(videos), "path", target)
	return len(videos), nil
}

// loadArchive walks archiveDir and extracts unique videos in walk order.
// Unreadable files are logged and skipped.
func loadArchive(archiveDir string, logger *slog.Logger) []videoInfo {
	videos := []videoInfo{}
	seen := map[string]bool{}

	walkErr := filepath.WalkDir(archiveDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			return nil
		}

		items, err := readArchiveFile(path)
		if err != nil {
			logger.Warn("skipping archive file", "path", path, "error", err)
			return nil
		}
		for _, item := range items {
			info, ok := extractVideoInfo(item)
			if !ok || seen[info.VideoID] {
				continue
			}
			seen[info.VideoID] = true
			videos = append(videos, info)
		}
		return nil
	})
	if walkErr != nil {
		logger.Warn("archive walk incomplete", "dir", archiveDir, "error", walkErr)
	}

	return videos
}

// readArchiveFile tolerates both a JSON array of items and a single item.
func readArchiveFile(path string) ([]apiItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var items []apiItem
	if err := json.Unmarshal(data, &items); err == nil {
		return items, nil
	}

	var single apiItem
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return []apiItem{single}, nil
}

func extractVideoInfo(item apiItem) (videoInfo, bool) {
	id := decodeID(item.ID)
	if id == "" {
		return videoInfo{}, false
	}

	title := item.Snippet.Title
	if title == "" {
		title = "Unknown Title"
	}

	return videoInfo{
		VideoID:      id,
		Title:        title,
		Description:  item.Snippet.Description,
		ChannelTitle: item.Snippet.ChannelTitle,
		Thumbnail:    item.Snippet.Thumbnails.High.URL,
		PublishedAt:  item.Snippet.PublishedAt,
	}, true
}

func decodeID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}

	var wrapped struct {
		VideoID string `json:"videoId"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		return wrapped.VideoID
	}
	return ""
}
