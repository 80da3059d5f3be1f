// ColorStdoutWriter prints human-friendly, styled reports to STDOUT.
package mon

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"cloudmon/internal/report"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	badStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// ColorStdoutWriter prints report rows using lipgloss styles.
type ColorStdoutWriter struct {
	out io.Writer
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter() *ColorStdoutWriter {
	return &ColorStdoutWriter{out: os.Stdout}
}

// WriteHealthReport prints a health report summary and per-zone table.
func (w *ColorStdoutWriter) WriteHealthReport(row report.HealthRow) error {
	ts := dimStyle.Render("[" + row.Timestamp.Format(time.RFC3339) + "]")
	fmt.Fprintf(w.out, "%s %s\n", ts, headingStyle.Render("ELB health: "+row.ELBName))

	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Healthy instances:\t%s\n", okStyle.Render(fmt.Sprintf("%d", row.Total)))
	fmt.Fprintf(tw, "Zones:\t%d\n", row.Zones)
	fmt.Fprintf(tw, "Healthy zones:\t%s\n", okStyle.Render(fmt.Sprintf("%d", row.HealthyZones)))
	unhealthy := fmt.Sprintf("%d", row.UnhealthyZones)
	if row.UnhealthyZones > 0 {
		unhealthy = badStyle.Render(unhealthy)
	}
	fmt.Fprintf(tw, "Unhealthy zones:\t%s\n", unhealthy)
	fmt.Fprintf(tw, "Average per zone:\t%.2f\n", row.Average)
	fmt.Fprintf(tw, "Minimum per zone:\t%d\n", row.Minimum)
	tw.Flush()

	zones := make([]string, 0, len(row.PerZone))
	for z := range row.PerZone {
		zones = append(zones, z)
	}
	sort.Strings(zones)
	tw = tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	for _, z := range zones {
		fmt.Fprintf(tw, "  %s\t%d\n", z, row.PerZone[z])
	}
	tw.Flush()
	return nil
}

// WriteTaskStats prints one line per task statistic, zombies highlighted.
func (w *ColorStdoutWriter) WriteTaskStats(rows []report.TaskStatRow) error {
	if len(rows) == 0 {
		return nil
	}
	ts := dimStyle.Render("[" + rows[0].Timestamp.Format(time.RFC3339) + "]")
	fmt.Fprintf(w.out, "%s %s\n", ts, headingStyle.Render("SWF tasks: "+rows[0].Domain))

	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	for _, r := range rows {
		count := fmt.Sprintf("%d", r.Count)
		switch {
		case r.Kind == report.KindZombie && r.Count > 0:
			count = badStyle.Render(count)
		case r.Kind == report.KindWaiting && r.Count > 0:
			count = warnStyle.Render(count)
		}
		fmt.Fprintf(tw, "  %s\t%s\n", r.Metric, count)
	}
	tw.Flush()
	return nil
}
