package mon

import "cloudmon/internal/report"

// HealthReportWriter is an interface to support different report sinks.
type HealthReportWriter interface {
	WriteHealthReport(report.HealthRow) error
}

// TaskStatsWriter handles workflow task statistic rows.
type TaskStatsWriter interface {
	WriteTaskStats([]report.TaskStatRow) error
}

// ReportWriter combines both sinks.
type ReportWriter interface {
	HealthReportWriter
	TaskStatsWriter
}
