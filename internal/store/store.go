// Package store reads and writes video records as frontmatter files: a YAML
// header between `---` sentinel lines, a blank line, then the free-text body.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"VideosCurator/internal/domain"
)

const (
	sentinel       = "---\n"
	filePrefix     = "video_"
	fileExt        = ".md"
	recordsPattern = filePrefix + "*" + fileExt
)

// ErrNotFound reports a record file that does not exist.
var ErrNotFound = errors.New("record not found")

// MalformedRecordError reports a file whose header block is present but not
// parseable, or never terminated.
type MalformedRecordError struct {
	Path string
	Err  error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record %s: %v", e.Path, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// Filename returns the canonical record file name for a video id.
func Filename(id string) string {
	return filePrefix + id + fileExt
}

// Load reads one record. A file without a header block is valid and yields an
// empty header with the whole text as body.
func Load(path string) (*domain.Video, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	text := string(raw)
	if !strings.HasPrefix(text, sentinel) {
		return &domain.Video{Body: text}, nil
	}

	parts := strings.SplitN(text, sentinel, 3)
	if len(parts) < 3 {
		return nil, &MalformedRecordError{Path: path, Err: errors.New("unterminated header block")}
	}

	var video domain.Video
	if err := yaml.Unmarshal([]byte(parts[1]), &video); err != nil {
		return nil, &MalformedRecordError{Path: path, Err: err}
	}
	video.Body = strings.TrimSpace(parts[2])

	return &video, nil
}

// Save serializes the full record to path, creating parent directories and
// overwriting any previous content unconditionally.
func Save(v *domain.Video, path string) error {
	if v.ID == "" {
		return fmt.Errorf("save %s: record has no id", path)
	}

	header, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode header for %s: %w", v.ID, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create partition dir: %w", err)
	}

	var b strings.Builder
	b.WriteString(sentinel)
	b.Write(header)
	b.WriteString(sentinel)
	b.WriteString("\n")
	b.WriteString(v.Body)

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write record %s: %w", v.ID, err)
	}
	return nil
}

// SaveIn writes the record into dir under its canonical file name.
func SaveIn(v *domain.Video, dir string) error {
	return Save(v, filepath.Join(dir, Filename(v.ID)))
}

// LoadPartition loads every record file in dir, sorted lexicographically by
// file name. Unreadable or malformed files are returned as errors alongside
// the records that did load; a missing directory yields zero records.
func LoadPartition(dir string) ([]*domain.Video, []error) {
	matches, err := filepath.Glob(filepath.Join(dir, recordsPattern))
	if err != nil {
		return nil, []error{fmt.Errorf("list partition %s: %w", dir, err)}
	}
	sort.Strings(matches)

	var (
		videos  []*domain.Video
		loadErr []error
	)
	for _, path := range matches {
		video, err := Load(path)
		if err != nil {
			loadErr = append(loadErr, err)
			continue
		}
		videos = append(videos, video)
	}
	return videos, loadErr
}

// CountRecords returns how many record files dir holds without parsing them.
// A missing directory counts as zero.
func CountRecords(dir string) (int, error) {
	matches, err := filepath.Glob(filepath.Join(dir, recordsPattern))
	if err != nil {
		return 0, fmt.Errorf("list partition %s: %w", dir, err)
	}
	return len(matches), nil
}
