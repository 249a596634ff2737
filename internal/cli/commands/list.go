package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"shapecheck/internal/config"
	"shapecheck/internal/discovery"
	"shapecheck/internal/harness"
	"shapecheck/internal/storage"
	"shapecheck/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	suites    []harness.Suite
	collector *discovery.Collector
	filter    *discovery.Filter
	formatter *ui.Formatter
	storage   storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	suites []harness.Suite,
	collector *discovery.Collector,
	filter *discovery.Filter,
	formatter *ui.Formatter,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		suites:    suites,
		collector: collector,
		filter:    filter,
		formatter: formatter,
		storage:   st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	collection, err := lc.collector.Collect(lc.suites...)
	if err != nil {
		return collectError(err)
	}

	tests, _, err := selectTests(lc.filter, collection.Tests, lc.config.MarkExpr, lc.config.Flags.Keyword)
	if err != nil {
		return err
	}

	if len(tests) == 0 {
		color.Yellow("No tests found")
		return nil
	}

	// Mark tests that failed in the last run, if there is one
	var failedIDs map[string]struct{}
	if last, err := lc.storage.Load(); err == nil {
		failedIDs = storage.FailedIDs(last)
	}

	lc.formatter.PrintTestList(tests, lc.config.Flags.ShowMarkers, failedIDs)
	return nil
}
