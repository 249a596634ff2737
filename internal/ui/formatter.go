package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"shapecheck/internal/config"
	"shapecheck/internal/domain"
	"shapecheck/internal/harness"
)

var (
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	cyan   = color.New(color.FgCyan)
	white  = color.New(color.FgWhite)
	bold   = color.New(color.Bold)
)

// outcomeColor returns the color used for an outcome label
func outcomeColor(o domain.Outcome) *color.Color {
	switch o {
	case domain.OutcomePassed:
		return green
	case domain.OutcomeFailed, domain.OutcomeError:
		return red
	default:
		return yellow
	}
}

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	out    io.Writer
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config, out io.Writer) *Formatter {
	return &Formatter{
		config: cfg,
		out:    out,
	}
}

// PrintHeader prints how many tests were collected and selected
func (f *Formatter) PrintHeader(collected, deselected int) {
	line := fmt.Sprintf("collected %d items", collected)
	if deselected > 0 {
		line += fmt.Sprintf(" / %d deselected / %d selected", deselected, collected-deselected)
	}
	bold.Fprintln(f.out, line)
	fmt.Fprintln(f.out)
}

// PrintResult prints one line for a finished test
func (f *Formatter) PrintResult(result domain.TestResult) {
	label := outcomeColor(result.Outcome).Sprint(result.Outcome.Label())
	line := fmt.Sprintf("%s %s", result.Test.ID, label)
	if result.Reason != "" && result.Outcome != domain.OutcomeFailed {
		line += fmt.Sprintf(" (%s)", result.Reason)
	}
	fmt.Fprintln(f.out, line)
}

// PrintFailures prints a section per failure
func (f *Formatter) PrintFailures(failures []domain.TestFailure) {
	if len(failures) == 0 {
		return
	}

	fmt.Fprintln(f.out)
	red.Fprintln(f.out, banner("FAILURES"))
	for _, failure := range failures {
		red.Fprintln(f.out, rule(failure.TestID))
		if failure.Message != "" {
			fmt.Fprintln(f.out, failure.Message)
		}
		if failure.File != "" && failure.Line > 0 {
			yellow.Fprintf(f.out, "%s:%d\n", failure.File, failure.Line)
		}
		fmt.Fprintln(f.out)
	}
}

// PrintWarnings prints collection warnings
func (f *Formatter) PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}

	fmt.Fprintln(f.out)
	yellow.Fprintln(f.out, banner("warnings summary"))
	for _, w := range warnings {
		fmt.Fprintln(f.out, w)
	}
}

// PrintShortSummary lists every non-passing test with its reason
func (f *Formatter) PrintShortSummary(results []domain.TestResult, failures []domain.TestFailure) {
	firstLine := make(map[string]string, len(failures))
	for _, failure := range failures {
		msg, _, _ := strings.Cut(failure.Message, "\n")
		firstLine[failure.TestID] = msg
	}

	var lines []string
	for _, r := range results {
		if r.Outcome == domain.OutcomePassed {
			continue
		}
		line := outcomeColor(r.Outcome).Sprint(r.Outcome.Label()) + " " + r.Test.ID
		detail := r.Reason
		if msg, ok := firstLine[r.Test.ID]; ok && msg != "" {
			detail = msg
		}
		if detail != "" {
			line += " - " + detail
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return
	}

	fmt.Fprintln(f.out)
	cyan.Fprintln(f.out, banner("short test summary info"))
	for _, line := range lines {
		fmt.Fprintln(f.out, line)
	}
}

// SummaryLine returns e.g. "1 failed, 8 passed, 1 skipped, 1 xfailed, 1 deselected in 0.01s"
func SummaryLine(meta domain.TestResultsMeta) string {
	var parts []string
	add := func(n int, word string) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, word))
		}
	}
	add(meta.FailedTests, "failed")
	add(meta.PassedTests, "passed")
	add(meta.SkippedTests, "skipped")
	add(meta.DeselectedTests, "deselected")
	add(meta.XFailedTests, "xfailed")
	add(meta.XPassedTests, "xpassed")
	if meta.ErrorTests == 1 {
		parts = append(parts, "1 error")
	} else {
		add(meta.ErrorTests, "errors")
	}
	if len(parts) == 0 {
		parts = append(parts, "no tests ran")
	}
	return fmt.Sprintf("%s in %.2fs", strings.Join(parts, ", "), meta.DurationSeconds)
}

// PrintSummary prints the summary line followed by the statistics table
func (f *Formatter) PrintSummary(output *domain.TestResultsOutput) {
	meta := output.Meta
	c := green
	switch {
	case meta.FailedTests > 0 || meta.ErrorTests > 0:
		c = red
	case meta.SkippedTests > 0 || meta.XFailedTests > 0 || meta.XPassedTests > 0 || meta.TotalTests == 0:
		c = yellow
	}
	fmt.Fprintln(f.out)
	c.Fprintln(f.out, banner(SummaryLine(meta)))

	if !f.config.Flags.Verbose {
		return
	}
	f.printStatsTable(meta)
}

func (f *Formatter) printStatsTable(meta domain.TestResultsMeta) {
	fmt.Fprintln(f.out)
	cyan.Fprintln(f.out, "╔"+strings.Repeat("═", statsWidth-2)+"╗")
	cyan.Fprintln(f.out, "║"+center("Test Execution Statistics", statsWidth-2)+"║")
	cyan.Fprintln(f.out, "╚"+strings.Repeat("═", statsWidth-2)+"╝")

	row := func(label string, c *color.Color, value any) {
		fmt.Fprintf(f.out, "│ %-*s │ ", statsLabelWidth, label)
		c.Fprintf(f.out, "%-*v", statsValueWidth, value)
		fmt.Fprintln(f.out, " │")
	}
	sep := func() {
		fmt.Fprintln(f.out, statsRule('├', '┼', '┤'))
	}

	fmt.Fprintln(f.out, statsRule('┌', '┬', '┐'))
	row("Total Tests", white, meta.TotalTests)
	sep()
	row("Passed", green, meta.PassedTests)
	sep()
	row("Failed", red, meta.FailedTests)
	sep()
	row("Errors", red, meta.ErrorTests)
	sep()
	row("Skipped", yellow, meta.SkippedTests)
	sep()
	row("Expected Failures", yellow, meta.XFailedTests)
	sep()
	row("Unexpected Passes", yellow, meta.XPassedTests)
	sep()
	row("Deselected", white, meta.DeselectedTests)
	sep()
	row("Duration", white, fmt.Sprintf("%.2fs", meta.DurationSeconds))
	sep()
	row("Workers", white, meta.Workers)
	sep()
	row("Run ID", white, meta.RunID)
	fmt.Fprintln(f.out, statsRule('└', '┴', '┘'))
}

// Stats table columns; the value column fits a run UUID
const (
	statsLabelWidth = 31
	statsValueWidth = 36
	statsWidth      = statsLabelWidth + statsValueWidth + 7
)

func statsRule(left, mid, right rune) string {
	return string(left) + strings.Repeat("─", statsLabelWidth+2) + string(mid) +
		strings.Repeat("─", statsValueWidth+2) + string(right)
}

func center(text string, width int) string {
	n := width - len([]rune(text))
	if n <= 0 {
		return text
	}
	return strings.Repeat(" ", n/2) + text + strings.Repeat(" ", n-n/2)
}

// PrintTestList prints collected tests grouped by module.
// Tests whose id is in failedIDs (from the last run) are marked with [F].
func (f *Formatter) PrintTestList(tests []domain.Test, showMarkers bool, failedIDs map[string]struct{}) {
	green.Fprintf(f.out, "Found %d test(s):\n\n", len(tests))

	byModule := make(map[string][]domain.Test)
	var modules []string
	for _, test := range tests {
		if _, ok := byModule[test.Module]; !ok {
			modules = append(modules, test.Module)
		}
		byModule[test.Module] = append(byModule[test.Module], test)
	}

	for i, module := range modules {
		isLastModule := i == len(modules)-1
		if isLastModule {
			cyan.Fprintf(f.out, "└── %s\n", module)
		} else {
			cyan.Fprintf(f.out, "├── %s\n", module)
		}

		moduleTests := byModule[module]
		for j, test := range moduleTests {
			var prefix string
			isLastCase := j == len(moduleTests)-1
			switch {
			case isLastModule && isLastCase:
				prefix = "    └── "
			case isLastModule:
				prefix = "    ├── "
			case isLastCase:
				prefix = "│   └── "
			default:
				prefix = "│   ├── "
			}

			line := prefix + yellow.Sprint(test.Name)
			if showMarkers && len(test.Markers) > 0 {
				line += " " + white.Sprintf("[%s]", strings.Join(test.Markers, ", "))
			}
			if _, ok := failedIDs[test.ID]; ok {
				line += " " + red.Sprint("[F]")
			}
			fmt.Fprintln(f.out, line)
		}
	}
}

// PrintMarkers prints registered markers, one per line
func (f *Formatter) PrintMarkers(markers []harness.Marker) {
	sorted := append([]harness.Marker(nil), markers...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for _, m := range sorted {
		bold.Fprintf(f.out, "@shapecheck.mark.%s:", m.Name)
		if m.Description != "" {
			fmt.Fprintf(f.out, " %s", m.Description)
		}
		fmt.Fprintln(f.out)
		fmt.Fprintln(f.out)
	}
}

const lineWidth = 70

// banner centers text in a line of '='
func banner(text string) string {
	return pad(text, '=')
}

// rule centers text in a line of '_'
func rule(text string) string {
	return pad(text, '_')
}

func pad(text string, fill rune) string {
	text = " " + text + " "
	n := lineWidth - len([]rune(text))
	if n < 2 {
		return text
	}
	left := n / 2
	return strings.Repeat(string(fill), left) + text + strings.Repeat(string(fill), n-left)
}
