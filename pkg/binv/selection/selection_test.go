package selection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egetools/binv/pkg/binv/record"
)

func testRecords() []record.InstallRecord {
	ts := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	return []record.InstallRecord{
		{Timestamp: ts, Repo: "junegunn/fzf", Path: "/home/user/.local/bin/fzf"},
		{Timestamp: ts.Add(-time.Hour), Repo: "BurntSushi/ripgrep", Path: "/home/user/.local/bin/rg"},
		{Timestamp: ts.Add(-2 * time.Hour), Repo: "sharkdp/bat", Path: "/home/user/.local/bin/bat", Removed: true},
		{Timestamp: ts.Add(-3 * time.Hour), Repo: "sharkdp/fd", Path: "/home/user/.local/bin/fd"},
	}
}

func TestNew_IdentityView(t *testing.T) {
	s := New(testRecords())

	assert.Equal(t, 4, s.Len())
	assert.Equal(t, 4, s.Total())
	assert.Equal(t, 0, s.Cursor())
	assert.Empty(t, s.Filter())

	visible := s.Visible()
	require.Len(t, visible, 4)
	assert.Equal(t, "junegunn/fzf", visible[0].Repo)
	assert.Equal(t, "sharkdp/fd", visible[3].Repo)
}

func TestNew_Empty(t *testing.T) {
	s := New(nil)

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.Cursor())

	_, ok := s.Current()
	assert.False(t, ok)

	// Movement on an empty view is a no-op.
	s.Next()
	s.Prev()
	assert.Equal(t, 0, s.Cursor())
}

func TestCursorWrap(t *testing.T) {
	s := New(testRecords())

	// n calls to Next return to the start.
	for range s.Len() {
		s.Next()
	}
	assert.Equal(t, 0, s.Cursor())

	// Prev wraps from first to last.
	s.Prev()
	assert.Equal(t, s.Len()-1, s.Cursor())

	for range s.Len() {
		s.Prev()
	}
	assert.Equal(t, s.Len()-1, s.Cursor())
}

func TestSetFilter_MatchesAnyField(t *testing.T) {
	tests := []struct {
		name      string
		filter    string
		wantRepos []string
	}{
		{"by filename", "rg", []string{"BurntSushi/ripgrep"}},
		{"by repo", "sharkdp", []string{"sharkdp/bat", "sharkdp/fd"}},
		{"by path", ".local/bin/fzf", []string{"junegunn/fzf"}},
		{"case insensitive", "BURNTSUSHI", []string{"BurntSushi/ripgrep"}},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(testRecords())
			s.SetFilter(tt.filter)

			var repos []string
			for _, r := range s.Visible() {
				repos = append(repos, r.Repo)
			}
			assert.Equal(t, tt.wantRepos, repos)
		})
	}
}

func TestSetFilter_RemovedRecordsStayFilterable(t *testing.T) {
	s := New(testRecords())
	s.SetFilter("bat")

	require.Equal(t, 1, s.Len())
	rec, ok := s.Current()
	require.True(t, ok)
	assert.True(t, rec.Removed)
}

func TestSetFilter_ClampsCursor(t *testing.T) {
	s := New(testRecords())

	// Move to the last entry, then narrow to a single match.
	s.Prev()
	require.Equal(t, 3, s.Cursor())

	s.SetFilter("ripgrep")
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, s.Cursor())

	// Narrow to nothing: cursor pins at 0.
	s.SetFilter("nothing-matches")
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.Cursor())
}

func TestSetFilter_EmptyResetsToIdentity(t *testing.T) {
	s := New(testRecords())
	s.SetFilter("sharkdp")
	require.Equal(t, 2, s.Len())

	s.SetFilter("")
	assert.Equal(t, 4, s.Len())

	visible := s.Visible()
	assert.Equal(t, "junegunn/fzf", visible[0].Repo)
}

func TestSetFilter_PreservesOrder(t *testing.T) {
	s := New(testRecords())
	s.SetFilter("f")

	// fzf, fd match on filename; order must follow record order.
	var names []string
	for _, r := range s.Visible() {
		names = append(names, r.Name())
	}
	assert.Equal(t, []string{"fzf", "fd"}, names)
}

func TestPushPopRune(t *testing.T) {
	s := New(testRecords())

	for _, r := range "sharkdp" {
		s.PushRune(r)
	}
	assert.Equal(t, "sharkdp", s.Filter())
	assert.Equal(t, 2, s.Len())

	s.PopRune()
	assert.Equal(t, "sharkd", s.Filter())
	assert.Equal(t, 2, s.Len())

	// Popping an empty filter is a no-op.
	s.ClearFilter()
	s.PopRune()
	assert.Empty(t, s.Filter())
	assert.Equal(t, 4, s.Len())
}

func TestCursorValidAfterArbitraryEdits(t *testing.T) {
	s := New(testRecords())

	edits := []string{"f", "fz", "f", "", "sharkdp", "sharkdpx", "", "bin", "b"}
	for _, e := range edits {
		s.SetFilter(e)
		s.Next()
		s.Prev()

		if s.Len() == 0 {
			assert.Equal(t, 0, s.Cursor(), "filter %q", e)
		} else {
			assert.Less(t, s.Cursor(), s.Len(), "filter %q", e)
			assert.GreaterOrEqual(t, s.Cursor(), 0, "filter %q", e)
		}
	}
}

func TestCurrent_FollowsCursor(t *testing.T) {
	s := New(testRecords())
	s.Next()

	rec, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "BurntSushi/ripgrep", rec.Repo)
}
