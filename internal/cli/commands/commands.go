package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shapecheck/internal/cli"
	"shapecheck/internal/config"
	"shapecheck/internal/discovery"
	"shapecheck/internal/execution"
	"shapecheck/internal/harness"
	"shapecheck/internal/logging"
	"shapecheck/internal/migration"
	"shapecheck/internal/parser"
	"shapecheck/internal/storage"
	"shapecheck/internal/suite"
	"shapecheck/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	config  *config.Config
	out     io.Writer
	suites  []harness.Suite
	logger  *zap.Logger
	closers []io.Closer

	Run      *RunCommand
	List     *ListCommand
	Markers  *MarkersCommand
	Migrate  *MigrateCommand
	Failures *FailuresCommand
}

// NewCommands creates the command set for the given suites. Dependencies are wired
// once flags are parsed, see Register.
func NewCommands(cfg *config.Config, out io.Writer, suites ...harness.Suite) *Commands {
	if len(suites) == 0 {
		suites = []harness.Suite{suite.Default()}
	}
	return &Commands{
		config: cfg,
		out:    out,
		suites: suites,
		logger: zap.NewNop(),
	}
}

// Close releases connections opened while wiring
func (c *Commands) Close() error {
	var errs []error
	for _, closer := range c.closers {
		errs = append(errs, closer.Close())
	}
	c.closers = nil
	_ = c.logger.Sync()
	return errors.Join(errs...)
}

// prepare loads the configuration for the parsed flags and wires every dependency
func (c *Commands) prepare(cmd *cobra.Command, flags *cli.Flags) error {
	projectPath := flags.ProjectPath
	if projectPath == "" {
		projectPath = config.DefaultProjectPath
	}
	loaded, err := config.LoadFrom(projectPath, flags.ToConfigFlags())
	if err != nil {
		return cli.NewExitError(cli.ExitUsage, err)
	}
	if err := loaded.Validate(); err != nil {
		return cli.NewExitError(cli.ExitUsage, err)
	}
	*c.config = *loaded

	logger, err := logging.New(c.config.LogLevel)
	if err != nil {
		return cli.NewExitError(cli.ExitUsage, err)
	}
	c.logger = logger

	return c.wire(cmd.Name() != "migrate")
}

// wire builds the dependency graph. The MySQL sink is skipped for migrate, which
// creates the database the sink writes to.
func (c *Commands) wire(withMySQL bool) error {
	registry := harness.NewRegistry()
	for _, line := range c.config.Markers {
		if err := registry.AddLine(line); err != nil {
			return cli.NewExitError(cli.ExitUsage, fmt.Errorf("config markers: %w", err))
		}
	}
	fixtures := harness.NewFixtures()

	collector := discovery.NewCollector(registry, fixtures, c.config.StrictMarkers, c.logger)
	filter := discovery.NewFilter()
	runner := execution.NewRunner(c.config, fixtures, c.logger)
	scheduler := execution.NewRoundRobinScheduler()
	executor := execution.NewWorkerPool(c.config, runner, scheduler, c.logger)
	failureParser := parser.NewFailureParser()
	st := c.openStorage(withMySQL)
	formatter := ui.NewFormatter(c.config, c.out)
	dbManager := migration.NewDatabaseManager(c.config)
	migrator := migration.NewSchemaMigrator(c.config, dbManager, c.logger)
	errorViewer := ui.NewErrorViewer(st, c.logger)

	c.Run = NewRunCommand(c.config, c.suites, collector, filter, executor, failureParser, st, formatter, errorViewer)
	c.List = NewListCommand(c.config, c.suites, collector, filter, formatter, st)
	c.Markers = NewMarkersCommand(c.suites, collector, registry, formatter)
	c.Migrate = NewMigrateCommand(c.config, migrator)
	c.Failures = NewFailuresCommand(st, errorViewer)
	return nil
}

// openStorage returns the JSON store, mirrored to MySQL when a host is configured
// and reachable.
func (c *Commands) openStorage(withMySQL bool) storage.Storage {
	jsonStorage := storage.NewJSONStorage(c.config)
	if !withMySQL || !c.config.MySQL.Enabled() {
		return jsonStorage
	}

	mysqlStorage, err := storage.OpenMySQL(c.config, c.logger)
	if err != nil {
		c.logger.Warn("mysql result sink disabled", zap.Error(err))
		return jsonStorage
	}
	c.closers = append(c.closers, mysqlStorage)
	return storage.NewMultiStorage(jsonStorage, mysqlStorage)
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return cli.NewExitError(cli.ExitUsage, err)
	})
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return c.prepare(cmd, flags)
	}
	rootCmd.PersistentFlags().StringVarP(&flags.ProjectPath, "project", "C", config.DefaultProjectPath, "Project directory holding shapecheck.yaml, .env and stored results")
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "Diagnostic log level (debug, info, warn, error)")

	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the shape test suite",
		Long:  "Collect, select and execute the shape test cases, then report skip, xfail, pass and fail outcomes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run.Execute(cmd, args)
		},
	}
	runCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 0, "Number of workers to use (default 1, sequential)")
	runCmd.Flags().StringVarP(&flags.MarkExpr, "mark-expr", "m", "", `Only run tests matching the marker expression, e.g. "not slow"`)
	runCmd.Flags().StringVarP(&flags.Keyword, "keyword", "k", "", `Only run tests whose id matches the keyword expression, e.g. "square and not perimeter"`)
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first test failure")
	runCmd.Flags().BoolVar(&flags.OnlyFailed, "failed", false, "Run only tests that failed in the last run")
	runCmd.Flags().BoolVar(&flags.StrictMarkers, "strict-markers", false, "Treat unregistered markers as errors")
	runCmd.Flags().BoolVar(&flags.XFailStrict, "xfail-strict", false, "Report unexpected passes of xfail tests as failures")
	runCmd.Flags().BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failures viewer when the run finishes with failures")
	runCmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Print one line per test and the statistics table")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List collected tests",
		Long:  "Collect and list test ids without executing them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.List.Execute(cmd, args)
		},
	}
	listCmd.Flags().StringVarP(&flags.MarkExpr, "mark-expr", "m", "", "Only list tests matching the marker expression")
	listCmd.Flags().StringVarP(&flags.Keyword, "keyword", "k", "", "Only list tests whose id matches the keyword expression")
	listCmd.Flags().BoolVar(&flags.ShowMarkers, "show-markers", false, "Show the markers of every test")
	listCmd.Flags().BoolVar(&flags.StrictMarkers, "strict-markers", false, "Treat unregistered markers as errors")
	rootCmd.AddCommand(listCmd)

	// Markers command
	markersCmd := &cobra.Command{
		Use:   "markers",
		Short: "List registered markers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Markers.Execute(cmd, args)
		},
	}
	rootCmd.AddCommand(markersCmd)

	// Migrate command
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the MySQL results schema",
		Long:  "Create the results database if it does not exist and apply the results schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Migrate.Execute(cmd, args)
		},
	}
	rootCmd.AddCommand(migrateCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View test failures interactively",
		Long:  "Display test failures from the last test run in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Failures.Execute(cmd, args)
		},
	}
	rootCmd.AddCommand(failuresCmd)
}
