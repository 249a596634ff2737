package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"shapecheck/internal/domain"
)

// ProgressBar creates and manages progress bars
type ProgressBar struct {
	bar     *progressbar.ProgressBar
	success int
	failed  int
}

// NewProgressBar creates a new progress bar
func NewProgressBar(count int) *ProgressBar {
	return newProgressBar(count, os.Stderr)
}

func newProgressBar(count int, w io.Writer) *ProgressBar {
	bar := progressbar.NewOptions(count,
		progressbar.OptionSetDescription(describe(0, 0)),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(w),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &ProgressBar{bar: bar}
}

func describe(successCount, failCount int) string {
	return color.CyanString("Running tests: ") +
		color.GreenString("[success: %d", successCount) +
		" | " +
		color.RedString("failed: %d]", failCount)
}

// Update advances the bar and refreshes the success and failure counts
func (p *ProgressBar) Update(result domain.TestResult, done, _ int) {
	if result.Outcome.IsFailure() {
		p.failed++
	} else {
		p.success++
	}
	p.bar.Set(done)
	p.bar.Describe(describe(p.success, p.failed))
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	p.bar.Finish()
}

// LineReporter prints one line per finished test instead of a bar
type LineReporter struct {
	formatter *Formatter
}

// NewLineReporter creates a new LineReporter
func NewLineReporter(formatter *Formatter) *LineReporter {
	return &LineReporter{formatter: formatter}
}

// Update prints the result line
func (l *LineReporter) Update(result domain.TestResult, _, _ int) {
	l.formatter.PrintResult(result)
}

// Finish is a no-op
func (l *LineReporter) Finish() {}
