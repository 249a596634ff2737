package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shapecheck/internal/cli"
	"shapecheck/internal/cli/commands"
	"shapecheck/internal/config"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "shapecheck",
		Short:   "Shape geometry test runner",
		Long:    `Runs the rectangle and square test suite with markers, fixtures and parametrized cases, reporting skipped, expected-failure, passed and failed outcomes separately.`,
		Version: version,
	}
	rootCmd.SetArgs(args)

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands; dependencies are wired after flag parsing
	cmds := commands.NewCommands(cfg, os.Stdout)
	defer cmds.Close()

	// Register all commands
	cmds.Register(rootCmd, &flags)

	// Execute root command
	err := rootCmd.Execute()
	if err == nil {
		return cli.ExitOK
	}

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr.Err)
		}
		return exitErr.Code
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return cli.ExitTestsFailed
}
