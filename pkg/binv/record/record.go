// Package record provides the install-record model for the eget install log.
// It includes the tab-separated line codec and size formatting used across
// the CLI and TUI.
package record

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Size constants for binary (IEC) units.
const (
	KiB int64 = 1024
	MiB int64 = 1024 * KiB
	GiB int64 = 1024 * MiB
)

// RemovedMarker is the literal fourth field eget appends when a binary
// has been deleted. The log line itself is never removed.
const RemovedMarker = "removed"

// InstallRecord represents one line of the install log: a binary installed
// from a repo at a point in time.
type InstallRecord struct {
	// Timestamp is when the install occurred.
	Timestamp time.Time

	// Repo is the source the binary was fetched from (e.g. "junegunn/fzf").
	Repo string

	// Path is the absolute path the binary was installed to. It acts as the
	// record's key for log mutations.
	Path string

	// Removed reports whether the binary was deleted through binv. It only
	// ever transitions from false to true.
	Removed bool

	// Size is the on-disk size in bytes, resolved from the live filesystem
	// at load time. It is nil when the binary is removed or unreadable and
	// is never persisted to the log.
	Size *int64
}

// Name returns the filename component of the install path.
func (r *InstallRecord) Name() string {
	return filepath.Base(r.Path)
}

// HumanSize returns the record's size formatted for display.
func (r *InstallRecord) HumanSize() string {
	return FormatSize(r.Size)
}

// ParseLine parses one install log line of the form
//
//	<RFC3339 timestamp>\t<repo>\t<path>[\t<marker>]
//
// It returns ok=false for lines with fewer than three fields or an
// unparseable timestamp; callers skip those rather than failing the load.
// A fourth field other than "removed" is tolerated and treated as not
// removed, matching what eget itself would do with unknown columns.
func ParseLine(line string) (InstallRecord, bool) {
	parts := strings.Split(line, "\t")
	if len(parts) < 3 {
		return InstallRecord{}, false
	}

	ts, err := time.Parse(time.RFC3339, parts[0])
	if err != nil {
		return InstallRecord{}, false
	}

	return InstallRecord{
		Timestamp: ts,
		Repo:      parts[1],
		Path:      parts[2],
		Removed:   len(parts) > 3 && parts[3] == RemovedMarker,
	}, true
}

// FormatSize formats an optional byte count for display.
// A nil size renders as "N/A".
func FormatSize(size *int64) string {
	if size == nil {
		return "N/A"
	}
	return FormatBytes(*size)
}

// FormatBytes converts a byte count to a human-readable string using 1024
// divisors: "512 B", "1.5 KB", "1.5 MB", "2.0 GB". Non-byte units carry one
// decimal place.
func FormatBytes(n int64) string {
	switch {
	case n < KiB:
		return fmt.Sprintf("%d B", n)
	case n < MiB:
		return fmt.Sprintf("%.1f KB", float64(n)/float64(KiB))
	case n < GiB:
		return fmt.Sprintf("%.1f MB", float64(n)/float64(MiB))
	default:
		return fmt.Sprintf("%.1f GB", float64(n)/float64(GiB))
	}
}

// Truncate shortens a string to maxLen, adding "..." when truncated.
// Name and repo columns in both the table output and the TUI list
// go through this.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
