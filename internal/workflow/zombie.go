package workflow

import (
	"context"
)

// HistorySource refetches execution history so the checker can tell whether
// the event it inspected is still the most recent one.
type HistorySource interface {
	LatestEventID(ctx context.Context, exec Execution) (int64, error)
}

// ZombieChecker decides whether a started task was claimed by a worker
// process that no longer exists.
type ZombieChecker struct {
	Hostname string        // canonical local hostname
	StackID  string        // local deployment stack, may be empty
	Probe    ProcessProbe  // local process liveness
	History  HistorySource // race check against fresh history
}

// IsZombie runs the zombie test against the execution's last event.
//
// The test only ever claims tasks for the local host and, when both sides
// carry a stack id, the local stack. A stack mismatch returns false rather
// than an error so that co-located stacks on a shared host never claim each
// other's executions.
func (c *ZombieChecker) IsZombie(ctx context.Context, exec Execution) (bool, error) {
	id, err := ParseIdentity(exec.Last.Identity)
	if err != nil {
		return false, err
	}
	if id.Hostname != c.Hostname {
		return false, nil
	}
	if id.StackID != "" && c.StackID != "" && id.StackID != c.StackID {
		return false, nil
	}
	if c.Probe.Alive(id.PID) {
		return false, nil
	}
	latest, err := c.History.LatestEventID(ctx, exec)
	if err != nil {
		return false, err
	}
	if latest != exec.Last.ID {
		// The execution moved on between listing and checking.
		return false, nil
	}
	return true, nil
}
