package workflow

import (
	"errors"
	"os"
	"syscall"
)

// ProcessProbe answers whether a process with a given pid is alive on the
// local host.
type ProcessProbe interface {
	Alive(pid int) bool
}

// LocalProbe checks process liveness via a signal-0 probe against the local
// process table.
type LocalProbe struct{}

// Alive reports whether pid exists. EPERM still means the process exists,
// just owned by someone else.
func (LocalProbe) Alive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	return errors.Is(err, syscall.EPERM)
}
