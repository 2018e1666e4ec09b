package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egetools/binv/pkg/binv/record"
)

func sampleResult(t *testing.T) *Result {
	t.Helper()

	size := int64(1536)
	ts := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	return &Result{
		Records: []record.InstallRecord{
			{Timestamp: ts, Repo: "junegunn/fzf", Path: "/tmp/nonexistent/fzf", Size: &size},
			{Timestamp: ts.Add(-time.Hour), Repo: "sharkdp/bat", Path: "/tmp/nonexistent/bat", Removed: true},
		},
		LogFile: "/home/user/.local/share/eget/install.log",
		Total:   2,
	}
}

func TestRegistry(t *testing.T) {
	t.Run("builtin formatters are registered", func(t *testing.T) {
		for _, name := range []string{"table", "json", "paths"} {
			formatter, err := Get(name)
			require.NoError(t, err, "formatter %q", name)
			assert.NotNil(t, formatter)
		}
	})

	t.Run("unknown formatter errors", func(t *testing.T) {
		_, err := Get("yaml-ish")
		assert.Error(t, err)
	})

	t.Run("available is sorted", func(t *testing.T) {
		names := Available()
		assert.Contains(t, names, "json")
		assert.IsIncreasing(t, names)
	})
}

func TestStatus(t *testing.T) {
	t.Run("removed wins over existence", func(t *testing.T) {
		rec := record.InstallRecord{Path: "/tmp/whatever", Removed: true}
		assert.Equal(t, "removed", Status(&rec))
	})

	t.Run("missing when binary gone", func(t *testing.T) {
		rec := record.InstallRecord{Path: filepath.Join(t.TempDir(), "gone")}
		assert.Equal(t, "missing", Status(&rec))
	})

	t.Run("installed when binary present", func(t *testing.T) {
		bin := filepath.Join(t.TempDir(), "tool")
		require.NoError(t, os.WriteFile(bin, []byte("x"), 0o755))

		rec := record.InstallRecord{Path: bin}
		assert.Equal(t, "installed", Status(&rec))
	})
}

func TestTableFormatter(t *testing.T) {
	formatter := &TableFormatter{}
	var buf bytes.Buffer

	require.NoError(t, formatter.Format(&buf, sampleResult(t)))
	out := buf.String()

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "fzf")
	assert.Contains(t, out, "sharkdp/bat")
	assert.Contains(t, out, "1.5 KB")
	assert.Contains(t, out, "removed")
	assert.Contains(t, out, "2 entries")
}

func TestTableFormatter_Empty(t *testing.T) {
	formatter := &TableFormatter{}
	var buf bytes.Buffer

	require.NoError(t, formatter.Format(&buf, &Result{Filter: "zzz", Total: 3}))
	assert.Contains(t, buf.String(), `No entries match "zzz"`)
}

func TestJSONFormatter(t *testing.T) {
	formatter := &JSONFormatter{}
	var buf bytes.Buffer

	require.NoError(t, formatter.Format(&buf, sampleResult(t)))

	var doc struct {
		LogFile string `json:"log_file"`
		Total   int    `json:"total"`
		Shown   int    `json:"shown"`
		Records []struct {
			Repo      string `json:"repo"`
			Removed   bool   `json:"removed"`
			Size      *int64 `json:"size"`
			SizeHuman string `json:"size_human"`
		} `json:"records"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, 2, doc.Total)
	assert.Equal(t, 2, doc.Shown)
	require.Len(t, doc.Records, 2)

	assert.Equal(t, "junegunn/fzf", doc.Records[0].Repo)
	require.NotNil(t, doc.Records[0].Size)
	assert.Equal(t, int64(1536), *doc.Records[0].Size)
	assert.Equal(t, "1.5 KB", doc.Records[0].SizeHuman)

	// Removed record has a null size and "N/A" human size.
	assert.True(t, doc.Records[1].Removed)
	assert.Nil(t, doc.Records[1].Size)
	assert.Equal(t, "N/A", doc.Records[1].SizeHuman)
}

func TestPathsFormatter(t *testing.T) {
	formatter := &PathsFormatter{}
	var buf bytes.Buffer

	require.NoError(t, formatter.Format(&buf, sampleResult(t)))
	assert.Equal(t, "/tmp/nonexistent/fzf\n/tmp/nonexistent/bat\n", buf.String())
}

func TestPathsFormatter_Empty(t *testing.T) {
	formatter := &PathsFormatter{}
	var buf bytes.Buffer

	require.NoError(t, formatter.Format(&buf, &Result{}))
	assert.Empty(t, buf.String())
}
