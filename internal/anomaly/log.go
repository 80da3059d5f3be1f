// Package anomaly maintains the append-only anomaly log shared by both checks.
package anomaly

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Log appends timestamped anomaly lines to a plain text file. The file is
// opened in append mode and every line is flushed as it is written, so the
// log only ever grows. Concurrent writers are not coordinated here; callers
// serialize runs externally.
type Log struct {
	f   *os.File
	now func() time.Time
}

// Open opens (or creates) the anomaly log at path using wall-clock time.
func Open(path string) (*Log, error) {
	return OpenWithClock(path, time.Now)
}

// OpenWithClock opens the anomaly log with an injected time source,
// keeping log output deterministic in tests.
func OpenWithClock(path string, now func() time.Time) (*Log, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("cannot open anomaly log: %w", err)
	}
	return &Log{f: f, now: now}, nil
}

// Fields appends one line with each field wrapped in brackets:
// [<timestamp>] [<field>] [<field>] ...
func (l *Log) Fields(fields ...string) error {
	var b strings.Builder
	b.WriteString(l.stamp())
	for _, f := range fields {
		b.WriteString(" [")
		b.WriteString(f)
		b.WriteString("]")
	}
	b.WriteString("\n")
	return l.write(b.String())
}

// Line appends one free-form line prefixed with the bracketed timestamp.
func (l *Log) Line(text string) error {
	return l.write(l.stamp() + " " + text + "\n")
}

func (l *Log) stamp() string {
	return "[" + l.now().UTC().Format(time.RFC3339) + "]"
}

func (l *Log) write(s string) error {
	if _, err := l.f.WriteString(s); err != nil {
		return fmt.Errorf("cannot append to anomaly log: %w", err)
	}
	return l.f.Sync()
}

// Close closes the underlying file.
func (l *Log) Close() error {
	return l.f.Close()
}
