// Report row structs shared by all sinks, with greptime table mapping
package report

import (
	"os"
	"time"

	"cloudmon/internal/health"
	"cloudmon/internal/workflow"
)

// HealthRow is one ELB health report for downstream ingestion.
type HealthRow struct {
	RunID          string         `json:"run_id"`   // TAG
	ELBName        string         `json:"elb_name"` // TAG
	Total          int            `json:"total"`
	Average        float64        `json:"average"`
	Minimum        int            `json:"minimum"`
	Zones          int            `json:"zones"`
	HealthyZones   int            `json:"healthy_zones"`
	UnhealthyZones int            `json:"unhealthy_zones"`
	PerZone        map[string]int `json:"per_zone"`
	Timestamp      time.Time      `json:"ts"` // TIME INDEX
}

// NewHealthRow wraps a health report with run metadata.
func NewHealthRow(runID, elbName string, r health.Report, ts time.Time) HealthRow {
	return HealthRow{
		RunID:          runID,
		ELBName:        elbName,
		Total:          r.Total,
		Average:        r.Average,
		Minimum:        r.Minimum,
		Zones:          r.Zones,
		HealthyZones:   r.HealthyZones,
		UnhealthyZones: r.UnhealthyZones,
		PerZone:        r.PerZone,
		Timestamp:      ts,
	}
}

// TaskStatRow is one workflow task statistic for downstream ingestion.
type TaskStatRow struct {
	RunID     string    `json:"run_id"` // TAG
	Domain    string    `json:"domain"` // TAG
	Metric    string    `json:"metric"` // "{app}_{waiting|zombie}_tasks"
	App       string    `json:"app"`
	Kind      string    `json:"kind"` // "waiting" or "zombie"
	Count     int       `json:"count"`
	Timestamp time.Time `json:"ts"` // TIME INDEX
}

// Task statistic kinds.
const (
	KindWaiting = "waiting"
	KindZombie  = "zombie"
)

// NewTaskStatRows flattens a statistics map into rows, one per metric key.
func NewTaskStatRows(runID, domain string, apps []string, stats workflow.Statistics, ts time.Time) []TaskStatRow {
	named := append(append([]string{}, apps...), workflow.AppUnknown)
	rows := make([]TaskStatRow, 0, 2*len(named))
	for _, app := range named {
		for _, kind := range []string{KindWaiting, KindZombie} {
			metric := workflow.WaitingKey(app)
			if kind == KindZombie {
				metric = workflow.ZombieKey(app)
			}
			rows = append(rows, TaskStatRow{
				RunID:     runID,
				Domain:    domain,
				Metric:    metric,
				App:       app,
				Kind:      kind,
				Count:     stats[metric],
				Timestamp: ts,
			})
		}
	}
	return rows
}

// HealthTableName holds the table name used when writing health reports to
// GreptimeDB. It can be overridden via the HEALTH_REPORT_TABLE environment
// variable.
var HealthTableName = func() string {
	if env := os.Getenv("HEALTH_REPORT_TABLE"); env != "" {
		return env
	}
	return "elb_health_report"
}()

// TaskStatTableName holds the table name used when writing task statistics
// to GreptimeDB. It can be overridden via the TASK_STAT_TABLE environment
// variable.
var TaskStatTableName = func() string {
	if env := os.Getenv("TASK_STAT_TABLE"); env != "" {
		return env
	}
	return "workflow_task_stats"
}()
