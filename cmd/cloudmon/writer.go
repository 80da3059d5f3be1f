package main

import (
	"os"

	"cloudmon/internal/mon"
)

// newReportWriters sets up report sinks based on flags and env vars.
// It returns the writer and a cleanup function to close any resources.
func newReportWriters(printOnly, jsonOut bool, logFile string) (mon.ReportWriter, func(), error) {
	cleanup := func() {}

	base, err := baseWriter(printOnly, jsonOut)
	if err != nil {
		return nil, nil, err
	}
	if logFile == "" {
		return base, cleanup, nil
	}

	fw, err := mon.NewFileWriter(logFile+".health", logFile+".tasks")
	if err != nil {
		return nil, nil, err
	}
	mw := mon.NewMultiWriter(
		[]mon.HealthReportWriter{base, fw},
		[]mon.TaskStatsWriter{base, fw},
	)
	cleanup = func() { fw.Close() }
	return mw, cleanup, nil
}

// baseWriter chooses the underlying sink based on the printOnly flag and env
// vars.
func baseWriter(printOnly, jsonOut bool) (mon.ReportWriter, error) {
	if printOnly || os.Getenv("GREPTIMEDB_ENDPOINT") == "" {
		if jsonOut {
			return mon.NewStdoutJSONWriter(), nil
		}
		return mon.NewColorStdoutWriter(), nil
	}
	return mon.NewGreptimeDBWriter(os.Getenv("GREPTIMEDB_ENDPOINT"), "public")
}
