// Package selection maintains a filtered, cursor-addressable view over a
// set of install records. The view is a subsequence of the record order,
// recomputed in full from the filter text on every edit; the cursor wraps
// at both ends and is clamped back into range whenever the view shrinks.
package selection

import (
	"strings"
	"unicode/utf8"

	"github.com/egetools/binv/pkg/binv/record"
)

// State is the owned selection state for one loaded record set. It is not
// safe for concurrent use; the interactive loop drives it from a single
// goroutine.
type State struct {
	records  []record.InstallRecord
	filtered []int // indices into records, in record order
	cursor   int   // index into filtered
	filter   string
}

// New creates a State over records in load order with no filter applied:
// every record is visible and the cursor sits on the first one.
func New(records []record.InstallRecord) *State {
	s := &State{records: records}
	s.applyFilter()
	return s
}

// Len returns the number of records in the filtered view.
func (s *State) Len() int {
	return len(s.filtered)
}

// Total returns the number of loaded records, ignoring the filter.
func (s *State) Total() int {
	return len(s.records)
}

// Cursor returns the cursor position within the filtered view.
func (s *State) Cursor() int {
	return s.cursor
}

// Filter returns the current filter text.
func (s *State) Filter() string {
	return s.filter
}

// Next advances the cursor by one, wrapping from last to first.
// No-op when the filtered view is empty.
func (s *State) Next() {
	if len(s.filtered) == 0 {
		return
	}
	s.cursor = (s.cursor + 1) % len(s.filtered)
}

// Prev moves the cursor back by one, wrapping from first to last.
// No-op when the filtered view is empty.
func (s *State) Prev() {
	if len(s.filtered) == 0 {
		return
	}
	if s.cursor == 0 {
		s.cursor = len(s.filtered) - 1
	} else {
		s.cursor--
	}
}

// Current returns the record under the cursor, or ok=false when the
// filtered view is empty.
func (s *State) Current() (record.InstallRecord, bool) {
	if len(s.filtered) == 0 {
		return record.InstallRecord{}, false
	}
	return s.records[s.filtered[s.cursor]], true
}

// Visible returns the records in the filtered view, in view order. This
// is the sequence a presentation layer iterates to render the list.
func (s *State) Visible() []record.InstallRecord {
	out := make([]record.InstallRecord, 0, len(s.filtered))
	for _, idx := range s.filtered {
		out = append(out, s.records[idx])
	}
	return out
}

// SetFilter replaces the filter text and recomputes the view. An empty
// filter restores the identity view. A non-empty filter keeps a record
// when its filename, repo, or full path contains the text,
// case-insensitively. The cursor is clamped to the new view.
func (s *State) SetFilter(text string) {
	s.filter = text
	s.applyFilter()
}

// PushRune appends one rune to the filter text and reapplies the filter,
// giving live filtering as the user types.
func (s *State) PushRune(r rune) {
	s.SetFilter(s.filter + string(r))
}

// PopRune removes the last rune from the filter text and reapplies the
// filter. No-op when the filter is empty.
func (s *State) PopRune() {
	if s.filter == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(s.filter)
	s.SetFilter(s.filter[:len(s.filter)-size])
}

// ClearFilter resets the filter to empty and restores the full view.
// Canceling a filter edit must go through this, not just drop the buffer.
func (s *State) ClearFilter() {
	s.SetFilter("")
}

// applyFilter recomputes filtered from records and filter alone. It never
// reorders, only selects a subsequence, and always leaves the cursor valid
// (0 when the view is empty).
func (s *State) applyFilter() {
	needle := strings.ToLower(s.filter)

	s.filtered = s.filtered[:0]
	if needle == "" {
		for i := range s.records {
			s.filtered = append(s.filtered, i)
		}
	} else {
		for i := range s.records {
			r := &s.records[i]
			if strings.Contains(strings.ToLower(r.Name()), needle) ||
				strings.Contains(strings.ToLower(r.Repo), needle) ||
				strings.Contains(strings.ToLower(r.Path), needle) {
				s.filtered = append(s.filtered, i)
			}
		}
	}

	if s.cursor >= len(s.filtered) {
		if len(s.filtered) == 0 {
			s.cursor = 0
		} else {
			s.cursor = len(s.filtered) - 1
		}
	}
}
