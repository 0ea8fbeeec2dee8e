package youtube

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Archive keeps timestamped copies of raw catalog responses. The web export
// later replays them without touching the API again. A nil archive is a
// no-op.
type Archive struct {
	root   string
	logger *slog.Logger
}

// NewArchive stores raw responses under root, one directory per resource.
func NewArchive(root string, logger *slog.Logger) *Archive {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Archive{root: root, logger: logger}
}

// Store writes the items array as an indented JSON file named by fetch time.
// Archiving is best-effort: failures are logged, never propagated.
func (a *Archive) Store(resource string, items []json.RawMessage) {
	if a == nil || a.root == "" || len(items) == 0 {
		return
	}

	dir := filepath.Join(a.root, resource)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		a.logger.Warn("create archive dir failed", "dir", dir, "error", err)
		return
	}

	data, err := json.MarshalIndent(items, "", "    ")
	if err != nil {
		a.logger.Warn("encode archive payload failed", "error", err)
		return
	}

	name := time.Now().UTC().Format("2006-01-02_15-04") + "_def.json"
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		a.logger.Warn("write archive file failed", "path", path, "error", err)
		return
	}
	a.logger.Debug("archived raw response", "path", path, "items", len(items))
}
