package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/devicelab-dev/khaos/pkg/core"
	"github.com/devicelab-dev/khaos/pkg/engine"
	"github.com/devicelab-dev/khaos/pkg/report"
)

type palette struct {
	bold   func(a ...interface{}) string
	green  func(a ...interface{}) string
	red    func(a ...interface{}) string
	yellow func(a ...interface{}) string
	cyan   func(a ...interface{}) string
	gray   func(a ...interface{}) string
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...interface{}) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		bold:   mk(color.Bold),
		green:  mk(color.FgGreen),
		red:    mk(color.FgRed),
		yellow: mk(color.FgYellow),
		cyan:   mk(color.FgCyan),
		gray:   mk(color.FgHiBlack),
	}
}

// featureRow aggregates the scenarios of one feature.
type featureRow struct {
	name     string
	status   report.Status
	total    int
	passed   int
	failed   int
	skipped  int
	pending  int
	duration int64
}

// failure is a failed scenario or container, listed above the table.
type failure struct {
	path    string
	outcome string
	message string
}

func collectRows(root *report.NodeEntry) ([]featureRow, []failure) {
	var rows []featureRow
	var failures []failure

	for _, spec := range root.Children {
		if spec.Status == report.StatusFailed && spec.Error != nil {
			failures = append(failures, failure{path: spec.Name, outcome: spec.Outcome, message: spec.Error.Message})
		}
		for _, feature := range spec.Children {
			row := featureRow{
				name:   spec.Name + " / " + feature.Name,
				status: feature.Status,
			}
			if feature.Duration != nil {
				row.duration = *feature.Duration
			}
			if feature.Status == report.StatusFailed && feature.Error != nil {
				failures = append(failures, failure{path: row.name, outcome: feature.Outcome, message: feature.Error.Message})
			}
			for _, scenario := range feature.Children {
				row.total++
				switch scenario.Status {
				case report.StatusPassed:
					row.passed++
				case report.StatusFailed:
					row.failed++
					// A failed scenario fails the row even when the feature itself completed.
					row.status = report.StatusFailed
					f := failure{path: row.name + " / " + scenario.Name, outcome: scenario.Outcome}
					if scenario.Error != nil {
						f.message = scenario.Error.Message
					}
					failures = append(failures, f)
				case report.StatusSkipped:
					row.skipped++
				}
				if scenario.Outcome == core.ScenarioPending.String() {
					row.pending++
				}
			}
			rows = append(rows, row)
		}
	}
	return rows, failures
}

// printSummary prints the failures and the per-feature result table.
func printSummary(w io.Writer, r *report.Report, p palette) {
	if r == nil || r.Root == nil {
		return
	}
	rows, failures := collectRows(r.Root)

	fmt.Fprintln(w)
	if len(failures) > 0 {
		fmt.Fprintln(w, p.bold("Failures:"))
		for _, f := range failures {
			line := fmt.Sprintf("  ✗ %s", f.path)
			if f.outcome != "" {
				line += " [" + f.outcome + "]"
			}
			fmt.Fprintln(w, p.red(line))
			if f.message != "" {
				for _, msg := range strings.Split(f.message, "\n") {
					fmt.Fprintf(w, "      %s\n", p.gray(msg))
				}
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, p.bold("  ════════════════════════════════════════════════════════════════════════════════════════"))
	fmt.Fprintln(w, p.bold("  Execution Summary"))
	fmt.Fprintln(w, p.bold("  ════════════════════════════════════════════════════════════════════════════════════════"))
	fmt.Fprintf(w, "  %-42s %8s %6s %6s %6s %6s %10s\n", "Feature", "Status", "Scen", "Pass", "Fail", "Skip", "Duration")
	fmt.Fprintln(w, "  ────────────────────────────────────────────────────────────────────────────────────────")

	var total featureRow
	for _, row := range rows {
		fmt.Fprintf(w, "  %-42s %s %6d %6d %6d %6d %10s\n",
			truncate(row.name, 42), statusCell(row.status, p),
			row.total, row.passed, row.failed, row.skipped, formatDuration(row.duration))
		total.total += row.total
		total.passed += row.passed
		total.failed += row.failed
		total.skipped += row.skipped
		total.pending += row.pending
	}

	var runDuration int64
	if r.Duration != nil {
		runDuration = *r.Duration
	}
	fmt.Fprintln(w, "  ────────────────────────────────────────────────────────────────────────────────────────")
	fmt.Fprintf(w, "  %s %s %6d %6d %6d %6d %10s\n",
		p.bold(fmt.Sprintf("%-42s", "TOTAL")), statusCell(r.Status, p),
		total.total, total.passed, total.failed, total.skipped, formatDuration(runDuration))
	fmt.Fprintln(w, p.bold("  ════════════════════════════════════════════════════════════════════════════════════════"))
	fmt.Fprintln(w)

	s := r.Summary
	fmt.Fprintf(w, "  %s\n", p.green(fmt.Sprintf("%d passing", s.Passed)))
	if s.Failed > 0 {
		fmt.Fprintf(w, "  %s\n", p.red(fmt.Sprintf("%d failing", s.Failed)))
	}
	if s.Pending > 0 {
		fmt.Fprintf(w, "  %s\n", p.cyan(fmt.Sprintf("%d pending", s.Pending)))
	}
	if s.Skipped > 0 {
		fmt.Fprintf(w, "  %s\n", p.yellow(fmt.Sprintf("%d skipped", s.Skipped)))
	}
	fmt.Fprintln(w)
}

func statusCell(status report.Status, p palette) string {
	switch status {
	case report.StatusPassed:
		return p.green(fmt.Sprintf("%8s", "✓ PASS"))
	case report.StatusFailed:
		return p.red(fmt.Sprintf("%8s", "✗ FAIL"))
	case report.StatusSkipped:
		return p.yellow(fmt.Sprintf("%8s", "- SKIP"))
	default:
		return fmt.Sprintf("%8s", string(status))
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// formatDuration formats milliseconds into a human-readable string.
func formatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	if ms < 60000 {
		return fmt.Sprintf("%.1fs", float64(ms)/1000)
	}
	mins := ms / 60000
	secs := (ms % 60000) / 1000
	return fmt.Sprintf("%dm %ds", mins, secs)
}

// countLine describes a discovered tree.
func countLine(root engine.Descriptor) string {
	counts := engine.Count(root)
	return fmt.Sprintf("%d specifications, %d features, %d scenarios",
		counts[engine.KindSpecification], counts[engine.KindFeature], counts[engine.KindScenario])
}
