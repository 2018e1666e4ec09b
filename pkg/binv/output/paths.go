package output

import (
	"bytes"
)

// PathsFormatter formats output as one install path per line, suitable
// for piping to other tools. Only the paths are output, without size or
// other metadata.
type PathsFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *PathsFormatter) Format(w *bytes.Buffer, r *Result) error {
	for i := range r.Records {
		w.WriteString(r.Records[i].Path)
		w.WriteByte('\n')
	}
	return nil
}

func init() {
	Register("paths", func() Formatter {
		return &PathsFormatter{}
	})
}

// Ensure PathsFormatter implements Formatter.
var _ Formatter = (*PathsFormatter)(nil)
