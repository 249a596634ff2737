package commands

import (
	"github.com/spf13/cobra"

	"shapecheck/internal/discovery"
	"shapecheck/internal/harness"
	"shapecheck/internal/ui"
)

// MarkersCommand handles the markers command
type MarkersCommand struct {
	suites    []harness.Suite
	collector *discovery.Collector
	registry  *harness.Registry
	formatter *ui.Formatter
}

// NewMarkersCommand creates a new MarkersCommand
func NewMarkersCommand(suites []harness.Suite, collector *discovery.Collector, registry *harness.Registry, formatter *ui.Formatter) *MarkersCommand {
	return &MarkersCommand{
		suites:    suites,
		collector: collector,
		registry:  registry,
		formatter: formatter,
	}
}

// Execute runs the command. Suites register their markers during collection.
func (mc *MarkersCommand) Execute(cmd *cobra.Command, args []string) error {
	if _, err := mc.collector.Collect(mc.suites...); err != nil {
		return collectError(err)
	}
	mc.formatter.PrintMarkers(mc.registry.Markers())
	return nil
}
