package mon

import (
	"encoding/json"
	"os"

	"cloudmon/internal/report"
)

// FileWriter writes report rows to JSONL files.
type FileWriter struct {
	healthFile *os.File
	statsFile  *os.File
	healthEnc  *json.Encoder
	statsEnc   *json.Encoder
}

// NewFileWriter creates a FileWriter. Either path may be empty to skip that
// log.
func NewFileWriter(healthPath, statsPath string) (*FileWriter, error) {
	fw := &FileWriter{}
	if healthPath != "" {
		f, err := os.Create(healthPath)
		if err != nil {
			return nil, err
		}
		fw.healthFile = f
		fw.healthEnc = json.NewEncoder(f)
	}
	if statsPath != "" {
		f, err := os.Create(statsPath)
		if err != nil {
			if fw.healthFile != nil {
				fw.healthFile.Close()
			}
			return nil, err
		}
		fw.statsFile = f
		fw.statsEnc = json.NewEncoder(f)
	}
	return fw, nil
}

// WriteHealthReport logs a single health report row, if enabled.
func (f *FileWriter) WriteHealthReport(row report.HealthRow) error {
	if f.healthEnc == nil {
		return nil
	}
	return f.healthEnc.Encode(row)
}

// WriteTaskStats logs task statistic rows, if enabled.
func (f *FileWriter) WriteTaskStats(rows []report.TaskStatRow) error {
	if f.statsEnc == nil {
		return nil
	}
	for _, r := range rows {
		if err := f.statsEnc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

// Close closes any underlying files.
func (f *FileWriter) Close() error {
	var err error
	if f.healthFile != nil {
		if e := f.healthFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.statsFile != nil {
		if e := f.statsFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
