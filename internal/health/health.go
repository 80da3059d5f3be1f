// Package health aggregates load balancer instance health by availability zone.
package health

// Instance states reported by the load balancer API.
const (
	StateInService    = "InService"
	StateOutOfService = "OutOfService"
)

// InstanceHealth is one instance health record for a named load balancer.
type InstanceHealth struct {
	InstanceID  string `json:"instance_id"`
	Zone        string `json:"zone"`
	State       string `json:"state"`
	Description string `json:"description,omitempty"`
}

// Healthy reports whether the instance is in service.
func (h InstanceHealth) Healthy() bool {
	return h.State == StateInService
}

// Report summarizes instance health across zones for one run.
type Report struct {
	Total          int            `json:"total"`
	PerZone        map[string]int `json:"per_zone"`
	Average        float64        `json:"average"`
	Minimum        int            `json:"minimum"`
	Zones          int            `json:"zones"`
	HealthyZones   int            `json:"healthy_zones"`
	UnhealthyZones int            `json:"unhealthy_zones"`
}

// Aggregate computes zone statistics over one run's health records.
//
// PerZone counts healthy instances and omits zones without any; Zones counts
// every distinct zone in the input, healthy or not. Average is Total over
// Zones as real division. Minimum is taken only over zones with at least one
// healthy instance, so a fully unhealthy zone lowers HealthyZones but never
// drags Minimum to zero.
func Aggregate(records []InstanceHealth) Report {
	perZone := make(map[string]int)
	allZones := make(map[string]struct{})
	total := 0
	for _, r := range records {
		allZones[r.Zone] = struct{}{}
		if r.Healthy() {
			perZone[r.Zone]++
			total++
		}
	}

	report := Report{
		Total:          total,
		PerZone:        perZone,
		Zones:          len(allZones),
		HealthyZones:   len(perZone),
		UnhealthyZones: len(allZones) - len(perZone),
	}
	if report.Zones > 0 {
		report.Average = float64(total) / float64(report.Zones)
	}
	for _, n := range perZone {
		if report.Minimum == 0 || n < report.Minimum {
			report.Minimum = n
		}
	}
	return report
}

// Unhealthy returns the out-of-service records in input order.
func Unhealthy(records []InstanceHealth) []InstanceHealth {
	var out []InstanceHealth
	for _, r := range records {
		if !r.Healthy() {
			out = append(out, r)
		}
	}
	return out
}
