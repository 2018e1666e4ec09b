package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/egetools/binv/pkg/binv/record"
)

// TableFormatter formats records as an aligned text table with one row per
// installed binary.
type TableFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *TableFormatter) Format(w *bytes.Buffer, r *Result) error {
	if len(r.Records) == 0 {
		if r.Filter != "" {
			fmt.Fprintf(w, "No entries match %q (%d total).\n", r.Filter, r.Total)
		} else {
			w.WriteString("No entries in the install log.\n")
		}
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-30s  %9s  %-15s  %s\n", "NAME", "REPO", "SIZE", "INSTALLED", "STATUS")
	w.WriteString(strings.Repeat("-", 90))
	w.WriteByte('\n')

	for i := range r.Records {
		rec := &r.Records[i]
		fmt.Fprintf(w, "%-20s  %-30s  %9s  %-15s  %s\n",
			record.Truncate(rec.Name(), 20),
			record.Truncate(rec.Repo, 30),
			rec.HumanSize(),
			humanize.Time(rec.Timestamp),
			Status(rec),
		)
	}

	w.WriteString(strings.Repeat("-", 90))
	w.WriteByte('\n')
	if r.Filter != "" {
		fmt.Fprintf(w, "%d of %d entries match %q\n", len(r.Records), r.Total, r.Filter)
	} else {
		fmt.Fprintf(w, "%d entries\n", len(r.Records))
	}

	return nil
}

func init() {
	Register("table", func() Formatter {
		return &TableFormatter{}
	})
}

// Ensure TableFormatter implements Formatter.
var _ Formatter = (*TableFormatter)(nil)
