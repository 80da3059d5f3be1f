package mon

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cloudmon/internal/config"
	"cloudmon/internal/health"
	"cloudmon/internal/report"
)

type fakeHealthSource struct {
	records []health.InstanceHealth
	err     error
	calls   int
}

func (s *fakeHealthSource) InstanceHealth(ctx context.Context, elbName string) ([]health.InstanceHealth, error) {
	s.calls++
	return s.records, s.err
}

type captureWriter struct {
	healthRows []report.HealthRow
	statRows   [][]report.TaskStatRow
}

func (c *captureWriter) WriteHealthReport(row report.HealthRow) error {
	c.healthRows = append(c.healthRows, row)
	return nil
}

func (c *captureWriter) WriteTaskStats(rows []report.TaskStatRow) error {
	c.statRows = append(c.statRows, rows)
	return nil
}

func elbConfig(t *testing.T) *config.MonitorConfig {
	t.Helper()
	return &config.MonitorConfig{
		Region:          "eu-west-1",
		CredentialsFile: "/etc/cloudmon/credentials",
		AnomalyLog:      filepath.Join(t.TempDir(), "anomalies.log"),
		ELB:             config.ELB{Name: "front-elb"},
	}
}

func frozen() func() time.Time {
	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	return func() time.Time { return ts }
}

func TestELBMonitor_CheckOrder(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.MonitorConfig)
		want   string
	}{
		{"missing elb name", func(c *config.MonitorConfig) { c.ELB.Name = "" }, "Please provide name of the ELB"},
		{"missing credentials", func(c *config.MonitorConfig) { c.CredentialsFile = "" }, "Please provide a path to AWS configuration"},
		{"missing log path", func(c *config.MonitorConfig) { c.AnomalyLog = "" }, "Please provide a path error log"},
		{"all missing reports first", func(c *config.MonitorConfig) { *c = config.MonitorConfig{} }, "Please provide name of the ELB"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := elbConfig(t)
			tc.mutate(cfg)
			source := &fakeHealthSource{}
			m := &ELBMonitor{Config: cfg, Source: source, Clock: frozen()}

			rep, errs, err := m.Run(context.Background())
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if rep != nil {
				t.Errorf("expected no report, got %+v", rep)
			}
			if len(errs) != 1 {
				t.Fatalf("expected exactly one check error, got %v", errs)
			}
			if errs[0].Subject != tc.want || errs[0].Body != tc.want {
				t.Errorf("check error = %+v, want subject and body %q", errs[0], tc.want)
			}
			if source.calls != 0 {
				t.Errorf("source must not be called when inputs are missing")
			}
		})
	}
}

func TestELBMonitor_Run(t *testing.T) {
	cfg := elbConfig(t)
	source := &fakeHealthSource{records: []health.InstanceHealth{
		{InstanceID: "i-01", Zone: "eu-1", State: health.StateInService},
		{InstanceID: "i-02", Zone: "eu-1", State: health.StateOutOfService, Description: "failed health checks"},
		{InstanceID: "i-03", Zone: "eu-2", State: health.StateInService},
	}}
	writer := &captureWriter{}
	m := &ELBMonitor{Config: cfg, Source: source, Writer: writer, Clock: frozen()}

	rep, errs, err := m.Run(context.Background())
	if err != nil || len(errs) > 0 {
		t.Fatalf("Run: err=%v check errors=%v", err, errs)
	}
	if rep.Total != 2 || rep.Zones != 2 || rep.HealthyZones != 2 {
		t.Errorf("unexpected report: %+v", rep)
	}
	if len(writer.healthRows) != 1 {
		t.Fatalf("expected 1 report row, got %d", len(writer.healthRows))
	}
	row := writer.healthRows[0]
	if row.ELBName != "front-elb" || row.Total != 2 || row.RunID == "" {
		t.Errorf("unexpected report row: %+v", row)
	}

	data, err := os.ReadFile(cfg.AnomalyLog)
	if err != nil {
		t.Fatalf("read anomaly log: %v", err)
	}
	want := "[2026-03-14T09:26:53Z] [front-elb] [eu-1] [i-02] [failed health checks]\n"
	if string(data) != want {
		t.Errorf("anomaly log = %q, want %q", data, want)
	}
}

func TestELBMonitor_LogGrowsAcrossRuns(t *testing.T) {
	cfg := elbConfig(t)
	source := &fakeHealthSource{records: []health.InstanceHealth{
		{InstanceID: "i-01", Zone: "eu-1", State: health.StateOutOfService, Description: "down"},
		{InstanceID: "i-02", Zone: "eu-2", State: health.StateOutOfService, Description: "down"},
	}}
	m := &ELBMonitor{Config: cfg, Source: source, Clock: frozen()}

	for i := 0; i < 2; i++ {
		if _, errs, err := m.Run(context.Background()); err != nil || len(errs) > 0 {
			t.Fatalf("run %d: err=%v check errors=%v", i, err, errs)
		}
	}

	data, err := os.ReadFile(cfg.AnomalyLog)
	if err != nil {
		t.Fatalf("read anomaly log: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines after two runs, got %d: %q", len(lines), data)
	}
	if lines[0] != lines[2] || lines[1] != lines[3] {
		t.Errorf("second run should repeat the first block in order: %q", lines)
	}
	if !strings.Contains(lines[0], "[i-01]") || !strings.Contains(lines[1], "[i-02]") {
		t.Errorf("lines out of input order: %q", lines)
	}
}

func TestELBMonitor_SourceErrorPropagates(t *testing.T) {
	cfg := elbConfig(t)
	source := &fakeHealthSource{err: errors.New("throttled")}
	m := &ELBMonitor{Config: cfg, Source: source, Clock: frozen()}

	if _, _, err := m.Run(context.Background()); err == nil {
		t.Fatal("expected source error to propagate")
	}
}
