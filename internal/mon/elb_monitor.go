// ELB health monitor orchestrating one fetch, aggregate, log, emit cycle
package mon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"cloudmon/internal/anomaly"
	"cloudmon/internal/config"
	"cloudmon/internal/health"
	"cloudmon/internal/metrics"
	"cloudmon/internal/report"
)

// InstanceHealthSource lists instance health records for a named load
// balancer. The wire protocol lives behind this interface.
type InstanceHealthSource interface {
	InstanceHealth(ctx context.Context, elbName string) ([]health.InstanceHealth, error)
}

// ELBMonitor runs the load balancer health check: fetch instance health,
// aggregate it by zone, append unhealthy instances to the anomaly log, and
// emit one report row.
type ELBMonitor struct {
	Config  *config.MonitorConfig
	Source  InstanceHealthSource
	Writer  HealthReportWriter
	Metrics *metrics.Collector // optional
	Logger  *slog.Logger       // optional
	Clock   func() time.Time   // optional, defaults to time.Now
}

func (m *ELBMonitor) check() []CheckError {
	if m.Config.ELB.Name == "" {
		return missing(msgELBName)
	}
	if m.Config.CredentialsFile == "" {
		return missing(msgCredentials)
	}
	if m.Config.AnomalyLog == "" {
		return missing(msgErrorLog)
	}
	return nil
}

// Run executes one complete report cycle. When a required input is missing
// only the check errors are returned and nothing else happens.
func (m *ELBMonitor) Run(ctx context.Context) (*health.Report, []CheckError, error) {
	if errs := m.check(); len(errs) > 0 {
		return nil, errs, nil
	}
	now := m.Clock
	if now == nil {
		now = time.Now
	}
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}

	records, err := m.Source.InstanceHealth(ctx, m.Config.ELB.Name)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot fetch instance health for %s: %w", m.Config.ELB.Name, err)
	}

	rep := health.Aggregate(records)

	alog, err := anomaly.OpenWithClock(m.Config.AnomalyLog, now)
	if err != nil {
		return nil, nil, err
	}
	defer alog.Close()
	for _, r := range health.Unhealthy(records) {
		if err := alog.Fields(m.Config.ELB.Name, r.Zone, r.InstanceID, r.Description); err != nil {
			return nil, nil, err
		}
	}

	runID := uuid.NewString()
	if m.Writer != nil {
		if err := m.Writer.WriteHealthReport(report.NewHealthRow(runID, m.Config.ELB.Name, rep, now().UTC())); err != nil {
			return nil, nil, fmt.Errorf("cannot write health report: %w", err)
		}
	}
	if m.Metrics != nil {
		m.Metrics.RecordHealthReport(m.Config.ELB.Name, rep)
	}

	logger.Info("elb health report",
		"run_id", runID,
		"elb", m.Config.ELB.Name,
		"healthy", rep.Total,
		"zones", rep.Zones,
		"unhealthy_zones", rep.UnhealthyZones)
	return &rep, nil, nil
}
