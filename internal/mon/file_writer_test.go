package mon

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cloudmon/internal/report"
)

func TestFileWriter(t *testing.T) {
	dir := t.TempDir()
	ts := time.Unix(0, 0).UTC()
	healthPath := filepath.Join(dir, "health.jsonl")
	statsPath := filepath.Join(dir, "stats.jsonl")

	fw, err := NewFileWriter(healthPath, statsPath)
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	hRow := report.HealthRow{
		RunID: "run-1", ELBName: "front-elb", Total: 6, Average: 1.5,
		Minimum: 1, Zones: 4, HealthyZones: 3, UnhealthyZones: 1,
		PerZone: map[string]int{"eu-1": 1, "eu-2": 2, "eu-3": 3}, Timestamp: ts,
	}
	sRow := report.TaskStatRow{
		RunID: "run-1", Domain: "production", Metric: "billing_waiting_tasks",
		App: "billing", Kind: report.KindWaiting, Count: 2, Timestamp: ts,
	}
	if err := fw.WriteHealthReport(hRow); err != nil {
		t.Fatalf("WriteHealthReport: %v", err)
	}
	if err := fw.WriteTaskStats([]report.TaskStatRow{sRow}); err != nil {
		t.Fatalf("WriteTaskStats: %v", err)
	}
	fw.Close()

	data, err := os.ReadFile(healthPath)
	if err != nil {
		t.Fatalf("read health file: %v", err)
	}
	var gotHealth report.HealthRow
	if err := json.Unmarshal(data, &gotHealth); err != nil {
		t.Fatalf("decode health row: %v", err)
	}
	if gotHealth.Total != 6 || gotHealth.Average != 1.5 || gotHealth.PerZone["eu-3"] != 3 {
		t.Errorf("unexpected health row: %+v", gotHealth)
	}

	data, err = os.ReadFile(statsPath)
	if err != nil {
		t.Fatalf("read stats file: %v", err)
	}
	var gotStat report.TaskStatRow
	if err := json.Unmarshal(data, &gotStat); err != nil {
		t.Fatalf("decode stat row: %v", err)
	}
	if gotStat.Metric != "billing_waiting_tasks" || gotStat.Count != 2 {
		t.Errorf("unexpected stat row: %+v", gotStat)
	}
}

func TestFileWriter_SkipsDisabledLogs(t *testing.T) {
	fw, err := NewFileWriter("", "")
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	defer fw.Close()
	if err := fw.WriteHealthReport(report.HealthRow{}); err != nil {
		t.Errorf("WriteHealthReport on disabled log: %v", err)
	}
	if err := fw.WriteTaskStats([]report.TaskStatRow{{}}); err != nil {
		t.Errorf("WriteTaskStats on disabled log: %v", err)
	}
}
