// SWF task status monitor counting waiting and zombie tasks per application
package mon

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"cloudmon/internal/anomaly"
	"cloudmon/internal/config"
	"cloudmon/internal/metrics"
	"cloudmon/internal/report"
	"cloudmon/internal/workflow"
)

// ExecutionSource lists open workflow executions started within the window,
// each with its first and most recent history events resolved.
type ExecutionSource interface {
	OpenExecutions(ctx context.Context, domain string, window time.Duration) ([]workflow.Execution, error)
}

// SWFMonitor runs the workflow task status check: list open executions,
// classify each as waiting or zombie, append zombies to the anomaly log,
// and emit per-application statistic rows.
type SWFMonitor struct {
	Config   *config.MonitorConfig
	Source   ExecutionSource
	History  workflow.HistorySource
	Writer   TaskStatsWriter
	Metrics  *metrics.Collector    // optional
	Logger   *slog.Logger          // optional
	Hostname string                // optional, defaults to os.Hostname
	Probe    workflow.ProcessProbe // optional, defaults to LocalProbe
	Clock    func() time.Time      // optional, defaults to time.Now
}

func (m *SWFMonitor) check() []CheckError {
	if m.Config.SWF.Domain == "" {
		return missing(msgSWFDomain)
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
func (m *SWFMonitor) Run(ctx context.Context) (workflow.Statistics, []CheckError, error) {
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
	hostname := m.Hostname
	if hostname == "" {
		h, err := os.Hostname()
		if err != nil {
			return nil, nil, fmt.Errorf("cannot determine local hostname: %w", err)
		}
		hostname = h
	}
	probe := m.Probe
	if probe == nil {
		probe = workflow.LocalProbe{}
	}

	rules, err := workflow.CompileRules(m.Config.Applications)
	if err != nil {
		return nil, nil, err
	}

	window := time.Duration(m.Config.SWF.WindowHours) * time.Hour
	execs, err := m.Source.OpenExecutions(ctx, m.Config.SWF.Domain, window)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot list open executions in %s: %w", m.Config.SWF.Domain, err)
	}

	alog, err := anomaly.OpenWithClock(m.Config.AnomalyLog, now)
	if err != nil {
		return nil, nil, err
	}
	defer alog.Close()

	classifier := &workflow.Classifier{
		Apps:  m.Config.AppNames(),
		Rules: rules,
		Checker: &workflow.ZombieChecker{
			Hostname: hostname,
			StackID:  m.Config.StackID,
			Probe:    probe,
			History:  m.History,
		},
		Anomaly: alog,
	}
	stats, err := classifier.Classify(ctx, execs)
	if err != nil {
		return nil, nil, err
	}

	runID := uuid.NewString()
	rows := report.NewTaskStatRows(runID, m.Config.SWF.Domain, m.Config.AppNames(), stats, now().UTC())
	if m.Writer != nil {
		if err := m.Writer.WriteTaskStats(rows); err != nil {
			return nil, nil, fmt.Errorf("cannot write task statistics: %w", err)
		}
	}
	if m.Metrics != nil {
		m.Metrics.RecordTaskStats(rows)
	}

	logger.Info("swf task report",
		"run_id", runID,
		"domain", m.Config.SWF.Domain,
		"open_executions", len(execs))
	return stats, nil, nil
}
