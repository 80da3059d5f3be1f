package workflow

import (
	"context"
	"encoding/json"
	"fmt"

	"cloudmon/internal/anomaly"
)

// Statistics maps "{app}_{waiting|zombie}_tasks" metric keys to counts.
// Every known application is pre-seeded with zeros so absent activity still
// reports zero instead of being omitted.
type Statistics map[string]int

// WaitingKey returns the waiting-tasks metric key for an application.
func WaitingKey(app string) string { return fmt.Sprintf("%s_waiting_tasks", app) }

// ZombieKey returns the zombie-tasks metric key for an application.
func ZombieKey(app string) string { return fmt.Sprintf("%s_zombie_tasks", app) }

// Classifier turns a list of open executions into waiting/zombie counts.
type Classifier struct {
	Apps    []string // known application names, seeds the statistics map
	Rules   RuleTable
	Checker *ZombieChecker
	Anomaly *anomaly.Log // may be nil, then zombies are counted but not logged
}

// Classify inspects each execution's last event. A scheduled activity task
// counts as waiting; a started activity or decision task is run through the
// zombie test. Any per-record failure aborts the whole run so bad data never
// silently undercounts.
func (c *Classifier) Classify(ctx context.Context, execs []Execution) (Statistics, error) {
	stats := c.seed()
	for _, exec := range execs {
		switch exec.Last.Type {
		case EventActivityTaskScheduled:
			app, err := c.appFor(exec)
			if err != nil {
				return nil, err
			}
			stats[WaitingKey(app)]++
		case EventActivityTaskStarted, EventDecisionTaskStarted:
			zombie, err := c.Checker.IsZombie(ctx, exec)
			if err != nil {
				return nil, err
			}
			if !zombie {
				continue
			}
			app, err := c.appFor(exec)
			if err != nil {
				return nil, err
			}
			stats[ZombieKey(app)]++
			if c.Anomaly != nil {
				line := fmt.Sprintf("Zombie (execution: %s/%s details: %s)",
					exec.WorkflowID, exec.RunID, exec.First.Input)
				if err := c.Anomaly.Line(line); err != nil {
					return nil, err
				}
			}
		}
	}
	return stats, nil
}

// seed initializes one zero entry per known application and metric kind,
// including the unknown bucket.
func (c *Classifier) seed() Statistics {
	stats := make(Statistics, 2*(len(c.Apps)+1))
	for _, app := range append(append([]string{}, c.Apps...), AppUnknown) {
		stats[WaitingKey(app)] = 0
		stats[ZombieKey(app)] = 0
	}
	return stats
}

// appFor resolves the owning application from the execution's first event.
// Absent input falls back to the unknown bucket; input that is present but
// unparseable is a hard error.
func (c *Classifier) appFor(exec Execution) (string, error) {
	if exec.First.Input == "" {
		return AppUnknown, nil
	}
	var payload struct {
		Unit string `json:"unit"`
	}
	if err := json.Unmarshal([]byte(exec.First.Input), &payload); err != nil {
		return "", fmt.Errorf("cannot parse input of execution %s/%s: %w", exec.WorkflowID, exec.RunID, err)
	}
	return c.Rules.Resolve(payload.Unit), nil
}
