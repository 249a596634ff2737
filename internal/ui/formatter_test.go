package ui

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"shapecheck/internal/config"
	"shapecheck/internal/domain"
	"shapecheck/internal/harness"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func newTestFormatter(verbose bool) (*Formatter, *bytes.Buffer) {
	cfg := config.New()
	cfg.Flags.Verbose = verbose
	var buf bytes.Buffer
	return NewFormatter(cfg, &buf), &buf
}

func result(id string, o domain.Outcome, reason string) domain.TestResult {
	return domain.TestResult{Test: domain.Test{ID: id}, Outcome: o, Reason: reason}
}

func TestSummaryLine(t *testing.T) {
	tests := []struct {
		name string
		meta domain.TestResultsMeta
		want string
	}{
		{
			name: "full run",
			meta: domain.TestResultsMeta{FailedTests: 1, PassedTests: 8, SkippedTests: 1, DeselectedTests: 1, XFailedTests: 1, DurationSeconds: 7.0123},
			want: "1 failed, 8 passed, 1 skipped, 1 deselected, 1 xfailed in 7.01s",
		},
		{
			name: "single error",
			meta: domain.TestResultsMeta{ErrorTests: 1},
			want: "1 error in 0.00s",
		},
		{
			name: "errors and xpass",
			meta: domain.TestResultsMeta{ErrorTests: 2, XPassedTests: 1},
			want: "1 xpassed, 2 errors in 0.00s",
		},
		{
			name: "nothing",
			meta: domain.TestResultsMeta{},
			want: "no tests ran in 0.00s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SummaryLine(tt.meta))
		})
	}
}

func TestFormatter_PrintResult(t *testing.T) {
	f, buf := newTestFormatter(false)

	f.PrintResult(result("test_functions::test_add", domain.OutcomeSkipped, "This feature is currently broken"))
	f.PrintResult(result("test_functions::test_divide_by_zero", domain.OutcomeXFailed, "We know we cannot divide by zero"))
	f.PrintResult(result("test_square::test_multiple_square_areas[5-25]", domain.OutcomePassed, ""))
	f.PrintResult(result("test_square::test_multiple_square_permimeters[2-8]", domain.OutcomeFailed, "ignored"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"test_functions::test_add SKIPPED (This feature is currently broken)",
		"test_functions::test_divide_by_zero XFAIL (We know we cannot divide by zero)",
		"test_square::test_multiple_square_areas[5-25] PASSED",
		"test_square::test_multiple_square_permimeters[2-8] FAILED",
	}, lines)
}

func TestFormatter_PrintShortSummary(t *testing.T) {
	f, buf := newTestFormatter(false)

	results := []domain.TestResult{
		result("a::pass", domain.OutcomePassed, ""),
		result("a::skip", domain.OutcomeSkipped, "broken"),
		result("a::fail", domain.OutcomeFailed, ""),
	}
	failures := []domain.TestFailure{{TestID: "a::fail", Message: "assert 15 == 16\nmore"}}
	f.PrintShortSummary(results, failures)

	out := buf.String()
	assert.Contains(t, out, "short test summary info")
	assert.Contains(t, out, "SKIPPED a::skip - broken\n")
	assert.Contains(t, out, "FAILED a::fail - assert 15 == 16\n")
	assert.NotContains(t, out, "a::pass")
	assert.NotContains(t, out, "more")

	buf.Reset()
	f.PrintShortSummary(results[:1], nil)
	assert.Empty(t, buf.String(), "all passing prints nothing")
}

func TestFormatter_PrintFailures(t *testing.T) {
	f, buf := newTestFormatter(false)

	f.PrintFailures(nil)
	assert.Empty(t, buf.String())

	f.PrintFailures([]domain.TestFailure{{
		TestID:  "test_square::test_multiple_square_permimeters[2-8]",
		Message: "assert 8 == 8",
		File:    "square.go",
		Line:    30,
	}})
	out := buf.String()
	assert.Contains(t, out, " FAILURES ")
	assert.Contains(t, out, "_ test_square::test_multiple_square_permimeters[2-8] _")
	assert.Contains(t, out, "square.go:30")
}

func TestFormatter_PrintSummary(t *testing.T) {
	output := &domain.TestResultsOutput{Meta: domain.TestResultsMeta{PassedTests: 2, TotalTests: 2, RunID: "run-1", Workers: 1}}

	f, buf := newTestFormatter(false)
	f.PrintSummary(output)
	assert.Contains(t, buf.String(), " 2 passed in 0.00s ")
	assert.NotContains(t, buf.String(), "Run ID")

	f, buf = newTestFormatter(true)
	f.PrintSummary(output)
	assert.Contains(t, buf.String(), "Test Execution Statistics")
	assert.Contains(t, buf.String(), "run-1")
}

func TestFormatter_PrintTestList(t *testing.T) {
	f, buf := newTestFormatter(false)

	tests := []domain.Test{
		{ID: "test_functions::test_very_slow", Module: "test_functions", Name: "test_very_slow", Markers: []string{"slow"}},
		{ID: "test_functions::test_add", Module: "test_functions", Name: "test_add", Markers: []string{"skip"}},
		{ID: "test_square::test_multiple_square_areas[4-16]", Module: "test_square", Name: "test_multiple_square_areas[4-16]"},
	}
	failed := map[string]struct{}{"test_functions::test_add": {}}
	f.PrintTestList(tests, true, failed)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"Found 3 test(s):",
		"",
		"├── test_functions",
		"│   ├── test_very_slow [slow]",
		"│   └── test_add [skip] [F]",
		"└── test_square",
		"    └── test_multiple_square_areas[4-16]",
	}, lines)
}

func TestFormatter_PrintMarkers(t *testing.T) {
	f, buf := newTestFormatter(false)

	f.PrintMarkers([]harness.Marker{
		{Name: "slow", Description: "marks tests as slow"},
		{Name: "parametrize"},
	})
	assert.Equal(t, "@shapecheck.mark.parametrize:\n\n@shapecheck.mark.slow: marks tests as slow\n\n", buf.String())
}

func TestFormatter_PrintHeader(t *testing.T) {
	f, buf := newTestFormatter(false)
	f.PrintHeader(12, 1)
	assert.Equal(t, "collected 12 items / 1 deselected / 11 selected\n\n", buf.String())
}

func TestBanner(t *testing.T) {
	b := banner("FAILURES")
	assert.Len(t, []rune(b), lineWidth)
	assert.True(t, strings.HasPrefix(b, "="))
	assert.Contains(t, b, " FAILURES ")

	long := strings.Repeat("x", lineWidth)
	assert.Equal(t, " "+long+" ", banner(long))
}

func TestLineReporter(t *testing.T) {
	f, buf := newTestFormatter(false)
	reporter := NewLineReporter(f)

	reporter.Update(domain.TestResult{Test: domain.Test{ID: "a::b"}, Outcome: domain.OutcomePassed, Duration: time.Millisecond}, 1, 1)
	reporter.Finish()
	assert.Equal(t, "a::b PASSED\n", buf.String())
}

func TestProgressBar_Counts(t *testing.T) {
	var buf bytes.Buffer
	bar := newProgressBar(3, &buf)

	bar.Update(result("a", domain.OutcomePassed, ""), 1, 3)
	bar.Update(result("b", domain.OutcomeXFailed, ""), 2, 3)
	bar.Update(result("c", domain.OutcomeError, ""), 3, 3)
	bar.Finish()

	assert.Equal(t, 2, bar.success)
	assert.Equal(t, 1, bar.failed)
	assert.NotEmpty(t, buf.String())
}

func TestFormatter_StatsTableFitsRunID(t *testing.T) {
	f, buf := newTestFormatter(true)
	output := &domain.TestResultsOutput{Meta: domain.TestResultsMeta{
		PassedTests: 8,
		TotalTests:  10,
		RunID:       "6f1f5a52-8a5e-4a8e-9a43-4f3f0d3c1b11",
	}}
	f.PrintSummary(output)

	var table []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(line, "╔") || strings.HasPrefix(line, "║") || strings.HasPrefix(line, "╚") ||
			strings.HasPrefix(line, "┌") || strings.HasPrefix(line, "│") || strings.HasPrefix(line, "├") || strings.HasPrefix(line, "└") {
			table = append(table, line)
		}
	}
	assert.Len(t, table, 3+23)
	for _, line := range table {
		assert.Len(t, []rune(line), statsWidth, line)
	}
	assert.Contains(t, buf.String(), "│ 6f1f5a52-8a5e-4a8e-9a43-4f3f0d3c1b11 │")
}
