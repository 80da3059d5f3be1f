package mon

import (
	"encoding/json"
	"io"
	"os"

	"cloudmon/internal/report"
)

// StdoutJSONWriter emits reports as JSON lines, one object per row.
type StdoutJSONWriter struct {
	enc *json.Encoder
}

// NewStdoutJSONWriter creates a writer emitting to STDOUT.
func NewStdoutJSONWriter() *StdoutJSONWriter {
	return NewJSONWriter(os.Stdout)
}

// NewJSONWriter creates a writer emitting to w.
func NewJSONWriter(w io.Writer) *StdoutJSONWriter {
	return &StdoutJSONWriter{enc: json.NewEncoder(w)}
}

// WriteHealthReport emits one health report row.
func (w *StdoutJSONWriter) WriteHealthReport(row report.HealthRow) error {
	return w.enc.Encode(row)
}

// WriteTaskStats emits task statistic rows.
func (w *StdoutJSONWriter) WriteTaskStats(rows []report.TaskStatRow) error {
	for _, r := range rows {
		if err := w.enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
