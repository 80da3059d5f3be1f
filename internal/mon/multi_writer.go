package mon

import "cloudmon/internal/report"

// MultiWriter fans report rows out to several sinks.
type MultiWriter struct {
	health []HealthReportWriter
	stats  []TaskStatsWriter
}

// NewMultiWriter creates a MultiWriter over the given sinks.
func NewMultiWriter(health []HealthReportWriter, stats []TaskStatsWriter) *MultiWriter {
	return &MultiWriter{health: health, stats: stats}
}

// WriteHealthReport forwards the row to every health sink, stopping at the
// first error.
func (m *MultiWriter) WriteHealthReport(row report.HealthRow) error {
	for _, w := range m.health {
		if err := w.WriteHealthReport(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteTaskStats forwards the rows to every stats sink, stopping at the
// first error.
func (m *MultiWriter) WriteTaskStats(rows []report.TaskStatRow) error {
	for _, w := range m.stats {
		if err := w.WriteTaskStats(rows); err != nil {
			return err
		}
	}
	return nil
}
