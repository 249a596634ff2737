package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"shapecheck/internal/cli"
	"shapecheck/internal/config"
	"shapecheck/internal/discovery"
	"shapecheck/internal/domain"
	"shapecheck/internal/execution"
	"shapecheck/internal/harness"
	"shapecheck/internal/parser"
	"shapecheck/internal/storage"
	"shapecheck/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	suites    []harness.Suite
	collector *discovery.Collector
	filter    *discovery.Filter
	executor  *execution.WorkerPool
	parser    parser.Parser
	storage   storage.Storage
	formatter *ui.Formatter
	viewer    ui.Viewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	suites []harness.Suite,
	collector *discovery.Collector,
	filter *discovery.Filter,
	executor *execution.WorkerPool,
	parser parser.Parser,
	st storage.Storage,
	formatter *ui.Formatter,
	viewer ui.Viewer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		suites:    suites,
		collector: collector,
		filter:    filter,
		executor:  executor,
		parser:    parser,
		storage:   st,
		formatter: formatter,
		viewer:    viewer,
	}
}

// Execute runs the command. The report is printed before results are stored, so a
// storage failure never hides it; test outcomes decide the exit code and a storage
// failure on an otherwise clean run exits with ExitInternal.
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run, err := rc.run(ctx)
	if err != nil {
		return err
	}

	output := storage.BuildOutput(run)
	rc.report(run, output)

	var saveErr error
	if err := rc.storage.Save(run); err != nil {
		saveErr = fmt.Errorf("failed to save test results: %w", err)
	}

	if saveErr == nil && rc.config.Flags.OpenFailures && len(run.Failures) > 0 {
		if err := rc.viewer.View(output); err != nil {
			return err
		}
	}

	code := run.ExitCode()
	if ctx.Err() != nil {
		code = cli.ExitInterrupted
	}
	switch {
	case code != cli.ExitOK:
		return cli.NewExitError(code, saveErr)
	case saveErr != nil:
		return cli.NewExitError(cli.ExitInternal, saveErr)
	}
	return nil
}

// run collects, selects and executes one run
func (rc *RunCommand) run(ctx context.Context) (*domain.Run, error) {
	collection, err := rc.collector.Collect(rc.suites...)
	if err != nil {
		return nil, collectError(err)
	}

	tests, deselected, err := selectTests(rc.filter, collection.Tests, rc.config.MarkExpr, rc.config.Flags.Keyword)
	if err != nil {
		return nil, err
	}

	if rc.config.Flags.OnlyFailed {
		last, err := rc.storage.Load()
		if err != nil {
			return nil, cli.NewExitError(cli.ExitUsage, fmt.Errorf("--failed needs a previous run: %w", err))
		}
		// Nothing failed last time: rerun the whole selection
		if ids := storage.FailedIDs(last); len(ids) > 0 {
			before := len(tests)
			tests = rc.filter.FilterByIDs(tests, ids)
			deselected += before - len(tests)
		}
	}

	run := &domain.Run{
		ID:         uuid.NewString(),
		Deselected: deselected,
		MarkExpr:   rc.config.MarkExpr,
		Keyword:    rc.config.Flags.Keyword,
		Workers:    rc.config.Processors,
		StartedAt:  time.Now(),
	}
	for _, w := range collection.Warnings {
		run.Warnings = append(run.Warnings, w.String())
	}

	rc.formatter.PrintHeader(len(collection.Tests), deselected)

	if len(tests) > 0 {
		rc.executor.SetProgress(rc.progress(len(tests)))
	}
	results, duration, err := rc.executor.ExecuteWithOptions(ctx, tests, rc.config.Flags.FailFast)
	if err != nil && !errors.Is(err, context.Canceled) {
		return nil, err
	}
	run.Results = results
	run.Duration = duration

	for _, result := range results {
		run.Failures = append(run.Failures, rc.parser.ParseFailure(result)...)
	}
	return run, nil
}

func (rc *RunCommand) report(run *domain.Run, output *domain.TestResultsOutput) {
	rc.formatter.PrintFailures(run.Failures)
	rc.formatter.PrintWarnings(run.Warnings)
	rc.formatter.PrintShortSummary(run.Results, run.Failures)
	rc.formatter.PrintSummary(output)
}

// progress prints a line per test when running sequentially or verbosely,
// and a bar otherwise.
func (rc *RunCommand) progress(count int) execution.Progress {
	if rc.config.Flags.Verbose || rc.config.Processors <= 1 {
		return ui.NewLineReporter(rc.formatter)
	}
	return ui.NewProgressBar(count)
}

// collectError maps collection errors caused by marker declarations to usage errors
func collectError(err error) error {
	if errors.Is(err, discovery.ErrUnknownMarker) || errors.Is(err, harness.ErrInvalidMarker) {
		return cli.NewExitError(cli.ExitUsage, err)
	}
	return err
}

// selectTests applies the -m and -k expressions to the collected tests
func selectTests(filter *discovery.Filter, tests []domain.Test, markExpr, keyword string) ([]domain.Test, int, error) {
	marks, err := discovery.ParseExpression(markExpr)
	if err != nil {
		return nil, 0, cli.NewExitError(cli.ExitUsage, fmt.Errorf("-m: %w", err))
	}
	keywords, err := discovery.ParseExpression(keyword)
	if err != nil {
		return nil, 0, cli.NewExitError(cli.ExitUsage, fmt.Errorf("-k: %w", err))
	}

	selected, deselected := filter.Select(tests, marks, keywords)
	return selected, len(deselected), nil
}
