package workflow

import (
	"fmt"
	"strconv"
	"strings"
)

// Identity is the worker identity attached to a started task, encoded on the
// wire as "hostname:pid" or "hostname:pid:stack_id".
type Identity struct {
	Hostname string
	PID      int
	StackID  string
}

// ParseIdentity parses a colon-delimited worker identity. A missing identity,
// fewer than two segments, or a non-numeric pid segment is a hard error: it
// means the orchestration system is emitting garbage, not that the task is
// healthy.
func ParseIdentity(s string) (Identity, error) {
	if s == "" {
		return Identity{}, fmt.Errorf("missing worker identity")
	}
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 {
		return Identity{}, fmt.Errorf("malformed worker identity %q: want hostname:pid[:stack_id]", s)
	}
	pidStr := parts[1]
	if pidStr == "" || strings.TrimLeft(pidStr, "0123456789") != "" {
		return Identity{}, fmt.Errorf("malformed worker identity %q: pid segment %q is not numeric", s, pidStr)
	}
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		return Identity{}, fmt.Errorf("malformed worker identity %q: %w", s, err)
	}
	id := Identity{Hostname: parts[0], PID: pid}
	if len(parts) == 3 {
		id.StackID = parts[2]
	}
	return id, nil
}
