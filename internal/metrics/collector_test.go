package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"cloudmon/internal/health"
	"cloudmon/internal/report"
	"cloudmon/internal/workflow"
)

func gatherValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
	metric:
		for _, m := range fam.GetMetric() {
			got := make(map[string]string)
			for _, lp := range m.GetLabel() {
				got[lp.GetName()] = lp.GetValue()
			}
			for k, v := range labels {
				if got[k] != v {
					continue metric
				}
			}
			if m.GetGauge() != nil {
				return m.GetGauge().GetValue()
			}
			return m.GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %s%v not found", name, labels)
	return 0
}

func TestRecordHealthReport(t *testing.T) {
	c := NewCollector()
	reg := prometheus.NewRegistry()
	if err := reg.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}

	c.RecordHealthReport("front-elb", health.Report{
		Total:          6,
		PerZone:        map[string]int{"eu-1": 1, "eu-2": 2, "eu-3": 3},
		Average:        1.5,
		Minimum:        1,
		Zones:          4,
		HealthyZones:   3,
		UnhealthyZones: 1,
	})

	if got := gatherValue(t, reg, "cloudmon_elb_healthy_instances", map[string]string{"elb": "front-elb"}); got != 6 {
		t.Errorf("healthy instances = %v, want 6", got)
	}
	if got := gatherValue(t, reg, "cloudmon_elb_zone_healthy_instances", map[string]string{"elb": "front-elb", "zone": "eu-2"}); got != 2 {
		t.Errorf("zone healthy = %v, want 2", got)
	}
	if got := gatherValue(t, reg, "cloudmon_elb_average_healthy_per_zone", map[string]string{"elb": "front-elb"}); got != 1.5 {
		t.Errorf("average = %v, want 1.5", got)
	}
	if got := gatherValue(t, reg, "cloudmon_runs_total", map[string]string{"check": "elb-health"}); got != 1 {
		t.Errorf("runs total = %v, want 1", got)
	}
}

func TestRecordTaskStats(t *testing.T) {
	c := NewCollector()
	reg := prometheus.NewRegistry()
	if err := reg.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}

	rows := report.NewTaskStatRows("run-1", "production", []string{"billing"}, workflow.Statistics{
		"billing_waiting_tasks": 3,
		"billing_zombie_tasks":  0,
		"unknown_waiting_tasks": 0,
		"unknown_zombie_tasks":  2,
	}, time.Unix(0, 0).UTC())
	c.RecordTaskStats(rows)

	if got := gatherValue(t, reg, "cloudmon_swf_tasks", map[string]string{"domain": "production", "app": "billing", "kind": "waiting"}); got != 3 {
		t.Errorf("billing waiting = %v, want 3", got)
	}
	if got := gatherValue(t, reg, "cloudmon_swf_tasks", map[string]string{"domain": "production", "app": "unknown", "kind": "zombie"}); got != 2 {
		t.Errorf("unknown zombie = %v, want 2", got)
	}
}
