package health

import (
	"reflect"
	"testing"
)

func record(id, zone, state string) InstanceHealth {
	return InstanceHealth{InstanceID: id, Zone: zone, State: state, Description: "Instance has failed at least the UnhealthyThreshold number of health checks consecutively."}
}

func mixedRecords() []InstanceHealth {
	return []InstanceHealth{
		record("i-01", "eu-1", StateInService),
		record("i-02", "eu-1", StateOutOfService),
		record("i-03", "eu-1", StateOutOfService),
		record("i-04", "eu-2", StateInService),
		record("i-05", "eu-2", StateInService),
		record("i-06", "eu-2", StateOutOfService),
		record("i-07", "eu-3", StateInService),
		record("i-08", "eu-3", StateInService),
		record("i-09", "eu-3", StateInService),
		record("i-10", "north-pole-1", StateOutOfService),
	}
}

func TestAggregate_Mixed(t *testing.T) {
	got := Aggregate(mixedRecords())

	if got.Total != 6 {
		t.Errorf("Total = %d, want 6", got.Total)
	}
	wantPerZone := map[string]int{"eu-1": 1, "eu-2": 2, "eu-3": 3}
	if !reflect.DeepEqual(got.PerZone, wantPerZone) {
		t.Errorf("PerZone = %v, want %v", got.PerZone, wantPerZone)
	}
	if got.Average != 1.5 {
		t.Errorf("Average = %v, want 1.5", got.Average)
	}
	if got.Minimum != 1 {
		t.Errorf("Minimum = %d, want 1", got.Minimum)
	}
	if got.Zones != 4 || got.HealthyZones != 3 || got.UnhealthyZones != 1 {
		t.Errorf("Zones = %d/%d/%d, want 4/3/1", got.Zones, got.HealthyZones, got.UnhealthyZones)
	}
}

func TestAggregate_AllUnhealthy(t *testing.T) {
	records := []InstanceHealth{
		record("i-01", "eu-1", StateOutOfService),
		record("i-02", "eu-2", StateOutOfService),
		record("i-03", "eu-3", StateOutOfService),
	}
	got := Aggregate(records)

	if got.Total != 0 || got.Average != 0 || got.Minimum != 0 {
		t.Errorf("Total/Average/Minimum = %d/%v/%d, want 0/0/0", got.Total, got.Average, got.Minimum)
	}
	if got.Zones != 3 || got.HealthyZones != 0 || got.UnhealthyZones != 3 {
		t.Errorf("Zones = %d/%d/%d, want 3/0/3", got.Zones, got.HealthyZones, got.UnhealthyZones)
	}
	if len(got.PerZone) != 0 {
		t.Errorf("PerZone should be empty, got %v", got.PerZone)
	}
}

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(nil)
	want := Report{PerZone: map[string]int{}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Aggregate(nil) = %+v, want %+v", got, want)
	}
}

func TestAggregate_CountsConsistent(t *testing.T) {
	cases := [][]InstanceHealth{
		mixedRecords(),
		{record("i-01", "eu-1", StateInService)},
		{record("i-01", "eu-1", StateOutOfService)},
		nil,
	}
	for _, records := range cases {
		r := Aggregate(records)
		sum := 0
		for _, n := range r.PerZone {
			sum += n
		}
		if r.Total != sum {
			t.Errorf("Total %d != sum of PerZone %d for %v", r.Total, sum, records)
		}
		if r.HealthyZones+r.UnhealthyZones != r.Zones {
			t.Errorf("zone counts inconsistent: %d+%d != %d", r.HealthyZones, r.UnhealthyZones, r.Zones)
		}
		if r.Zones > 0 {
			if want := float64(r.Total) / float64(r.Zones); r.Average != want {
				t.Errorf("Average = %v, want %v", r.Average, want)
			}
		} else if r.Average != 0 {
			t.Errorf("Average = %v for empty input, want 0", r.Average)
		}
	}
}

func TestUnhealthy_PreservesInputOrder(t *testing.T) {
	got := Unhealthy(mixedRecords())
	wantIDs := []string{"i-02", "i-03", "i-06", "i-10"}
	if len(got) != len(wantIDs) {
		t.Fatalf("got %d unhealthy records, want %d", len(got), len(wantIDs))
	}
	for i, id := range wantIDs {
		if got[i].InstanceID != id {
			t.Errorf("unhealthy[%d] = %s, want %s", i, got[i].InstanceID, id)
		}
	}
}
