package output

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/egetools/binv/pkg/binv/record"
)

// JSONFormatter formats records as indented JSON for machine consumption.
type JSONFormatter struct{}

// recordJSON is the wire view of an install record. Size is null when the
// binary is removed or unreadable.
type recordJSON struct {
	Timestamp time.Time `json:"timestamp"`
	Repo      string    `json:"repo"`
	Path      string    `json:"path"`
	Removed   bool      `json:"removed"`
	Size      *int64    `json:"size"`
	SizeHuman string    `json:"size_human"`
	Status    string    `json:"status"`
}

// resultJSON is the top-level JSON document.
type resultJSON struct {
	LogFile string       `json:"log_file"`
	Filter  string       `json:"filter,omitempty"`
	Total   int          `json:"total"`
	Shown   int          `json:"shown"`
	Records []recordJSON `json:"records"`
}

// Format writes the formatted output to the buffer.
func (f *JSONFormatter) Format(w *bytes.Buffer, r *Result) error {
	doc := resultJSON{
		LogFile: r.LogFile,
		Filter:  r.Filter,
		Total:   r.Total,
		Shown:   len(r.Records),
		Records: make([]recordJSON, 0, len(r.Records)),
	}

	for i := range r.Records {
		rec := &r.Records[i]
		doc.Records = append(doc.Records, recordJSON{
			Timestamp: rec.Timestamp,
			Repo:      rec.Repo,
			Path:      rec.Path,
			Removed:   rec.Removed,
			Size:      rec.Size,
			SizeHuman: record.FormatSize(rec.Size),
			Status:    Status(rec),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func init() {
	Register("json", func() Formatter {
		return &JSONFormatter{}
	})
}

// Ensure JSONFormatter implements Formatter.
var _ Formatter = (*JSONFormatter)(nil)
