// Package history records prune operations to the filesystem. Each prune
// becomes one JSON file in the state directory, so the user can see what
// binv deleted and when. This is a record, not an undo mechanism.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/uuid"

	"github.com/egetools/binv/pkg/binv/logging"
)

// Entry represents one recorded prune.
type Entry struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Repo       string    `json:"repo"`
	Path       string    `json:"path"`
	FreedBytes int64     `json:"freed_bytes"`
}

// History manages prune entries in a directory.
type History struct {
	dir string
	mu  sync.Mutex
}

// New creates a History with the given directory. The directory is not
// created until the first entry is written.
func New(dir string) (*History, error) {
	if dir == "" {
		return nil, errors.New("history directory cannot be empty")
	}
	return &History{dir: dir}, nil
}

// DefaultDir returns $XDG_STATE_HOME/binv/history.
func DefaultDir() string {
	return filepath.Join(xdg.StateHome, "binv", "history")
}

// LogPrune records a prune of the binary at path, installed from repo,
// that freed freedBytes on disk. It returns the created entry.
func (h *History) LogPrune(repo, path string, freedBytes int64) (*Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	entry := &Entry{
		ID:         uuid.NewString(),
		Timestamp:  time.Now().UTC(),
		Repo:       repo,
		Path:       path,
		FreedBytes: freedBytes,
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling history entry: %w", err)
	}

	// Write atomically using a temp file and rename.
	filePath := filepath.Join(h.dir, entry.ID+".json")
	tmpPath := filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing history entry: %w", err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("renaming history entry: %w", err)
	}

	logging.Get("history").Info("recorded prune", "repo", repo, "path", path)
	return entry, nil
}

// List returns entries sorted newest first. A limit of 0 or less returns
// all entries. A missing directory yields an empty list.
func (h *History) List(limit int) ([]Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	files, err := os.ReadDir(h.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("reading history directory: %w", err)
	}

	entries := []Entry{}
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(h.dir, f.Name()))
		if err != nil {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil {
			// Skip files that can't be parsed.
			continue
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Cleanup removes entries older than retentionDays.
func (h *History) Cleanup(retentionDays int) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	files, err := os.ReadDir(h.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading history directory: %w", err)
	}

	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}

		path := filepath.Join(h.dir, f.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil {
			continue
		}
		if entry.Timestamp.Before(cutoff) {
			_ = os.Remove(path)
		}
	}

	return nil
}
