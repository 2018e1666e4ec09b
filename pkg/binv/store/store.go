// Package store loads and mutates eget's append-only install log.
//
// The log file is the single source of truth for which binaries were
// installed and which were removed. Sizes are resolved from the live
// filesystem on every load and never persisted. Mutations rewrite the
// whole file through a temp-file-and-rename so a crash mid-write cannot
// corrupt unrelated lines.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/xdg"
	"github.com/egetools/binv/pkg/binv/logging"
	"github.com/egetools/binv/pkg/binv/record"
)

// Store reads and rewrites a single install log file.
type Store struct {
	path string
}

// New creates a Store bound to the given log file path.
// An empty path uses DefaultLogPath.
func New(path string) *Store {
	if path == "" {
		path = DefaultLogPath()
	}
	return &Store{path: path}
}

// Path returns the log file path the store operates on.
func (s *Store) Path() string {
	return s.path
}

// DefaultLogPath returns eget's install log location,
// $XDG_DATA_HOME/eget/install.log (~/.local/share/eget/install.log).
func DefaultLogPath() string {
	return filepath.Join(xdg.DataHome, "eget", "install.log")
}

// Load reads and parses the install log into records sorted most recent
// first (stable, so equal timestamps keep file order). A missing or
// unreadable log yields an empty set: the browser must start cleanly with
// zero entries. Malformed lines are skipped, not fatal. For records not
// marked removed, the on-disk size is resolved with a stat; stat failures
// leave the size nil.
func (s *Store) Load() []record.InstallRecord {
	logger := logging.Get("store")

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("install log unreadable, starting empty", "path", s.path, "err", err)
		}
		return nil
	}

	var records []record.InstallRecord
	skipped := 0
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		rec, ok := record.ParseLine(line)
		if !ok {
			skipped++
			continue
		}
		if !rec.Removed {
			if info, err := os.Stat(rec.Path); err == nil {
				size := info.Size()
				rec.Size = &size
			}
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})

	if skipped > 0 {
		logger.Debug("skipped malformed log lines", "count", skipped, "path", s.path)
	}
	logger.Debug("loaded install log", "records", len(records), "path", s.path)

	return records
}

// MarkRemoved appends the removed marker to every log line whose path
// field equals path and which has exactly three fields. Already-marked
// lines and all other lines pass through byte-for-byte, so applying it
// twice yields the same file. The rewrite goes through a temp file and
// rename in the log's directory.
func (s *Store) MarkRemoved(path string) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("reading install log: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	for i, line := range lines {
		parts := strings.Split(line, "\t")
		if len(parts) == 3 && parts[2] == path {
			lines[i] = line + "\t" + record.RemovedMarker
		}
	}

	out := strings.Join(lines, "\n") + "\n"
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing install log temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing install log: %w", err)
	}

	logging.Get("store").Info("marked removed", "path", path)
	return nil
}

// Prune deletes the binary at path and records the removal in the log.
// The log is only touched when the physical delete succeeds; if the file
// is already gone the log stays as it was, so the log and the filesystem
// never disagree.
func (s *Store) Prune(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	if err := s.MarkRemoved(path); err != nil {
		return fmt.Errorf("marking %s removed: %w", path, err)
	}
	return nil
}
