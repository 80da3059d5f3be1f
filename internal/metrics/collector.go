// Package metrics provides Prometheus metrics for cloudmon report runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"cloudmon/internal/health"
	"cloudmon/internal/report"
)

// Collector holds Prometheus metrics for both checks.
type Collector struct {
	healthyInstances *prometheus.GaugeVec
	zoneHealthy      *prometheus.GaugeVec
	zones            *prometheus.GaugeVec
	healthyZones     *prometheus.GaugeVec
	unhealthyZones   *prometheus.GaugeVec
	averagePerZone   *prometheus.GaugeVec
	minimumPerZone   *prometheus.GaugeVec
	taskCount        *prometheus.GaugeVec
	runsTotal        *prometheus.CounterVec
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{
		healthyInstances: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cloudmon_elb_healthy_instances",
				Help: "Healthy instances registered with the load balancer",
			},
			[]string{"elb"},
		),
		zoneHealthy: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cloudmon_elb_zone_healthy_instances",
				Help: "Healthy instances per availability zone",
			},
			[]string{"elb", "zone"},
		),
		zones: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cloudmon_elb_zones",
				Help: "Distinct availability zones seen in the input",
			},
			[]string{"elb"},
		),
		healthyZones: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cloudmon_elb_healthy_zones",
				Help: "Zones with at least one healthy instance",
			},
			[]string{"elb"},
		),
		unhealthyZones: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cloudmon_elb_unhealthy_zones",
				Help: "Zones without any healthy instance",
			},
			[]string{"elb"},
		),
		averagePerZone: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cloudmon_elb_average_healthy_per_zone",
				Help: "Healthy instances divided by zone count",
			},
			[]string{"elb"},
		),
		minimumPerZone: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cloudmon_elb_minimum_healthy_per_zone",
				Help: "Smallest healthy count over zones with healthy instances",
			},
			[]string{"elb"},
		),
		taskCount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cloudmon_swf_tasks",
				Help: "Waiting and zombie workflow tasks per application",
			},
			[]string{"domain", "app", "kind"},
		),
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cloudmon_runs_total",
				Help: "Completed report runs per check",
			},
			[]string{"check"},
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.healthyInstances.Describe(ch)
	c.zoneHealthy.Describe(ch)
	c.zones.Describe(ch)
	c.healthyZones.Describe(ch)
	c.unhealthyZones.Describe(ch)
	c.averagePerZone.Describe(ch)
	c.minimumPerZone.Describe(ch)
	c.taskCount.Describe(ch)
	c.runsTotal.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.healthyInstances.Collect(ch)
	c.zoneHealthy.Collect(ch)
	c.zones.Collect(ch)
	c.healthyZones.Collect(ch)
	c.unhealthyZones.Collect(ch)
	c.averagePerZone.Collect(ch)
	c.minimumPerZone.Collect(ch)
	c.taskCount.Collect(ch)
	c.runsTotal.Collect(ch)
}

// RecordHealthReport records one ELB health report.
func (c *Collector) RecordHealthReport(elb string, r health.Report) {
	c.healthyInstances.WithLabelValues(elb).Set(float64(r.Total))
	for zone, n := range r.PerZone {
		c.zoneHealthy.WithLabelValues(elb, zone).Set(float64(n))
	}
	c.zones.WithLabelValues(elb).Set(float64(r.Zones))
	c.healthyZones.WithLabelValues(elb).Set(float64(r.HealthyZones))
	c.unhealthyZones.WithLabelValues(elb).Set(float64(r.UnhealthyZones))
	c.averagePerZone.WithLabelValues(elb).Set(r.Average)
	c.minimumPerZone.WithLabelValues(elb).Set(float64(r.Minimum))
	c.runsTotal.WithLabelValues("elb-health").Inc()
}

// RecordTaskStats records one run's workflow task statistics.
func (c *Collector) RecordTaskStats(rows []report.TaskStatRow) {
	for _, row := range rows {
		c.taskCount.WithLabelValues(row.Domain, row.App, row.Kind).Set(float64(row.Count))
	}
	c.runsTotal.WithLabelValues("swf-status").Inc()
}
