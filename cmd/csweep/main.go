package main

import (
	"errors"
	"fmt"
	"os"

	"csweep/internal/cli"
	"csweep/internal/cli/commands"
	"csweep/internal/config"
	"csweep/internal/logging"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "csweep",
		Short:         "Manifest-driven test sweep",
		Long:          `A build-verification sweep for multi-project trees. Discover every project manifest under a checkout and run each project's test command in sequence, stopping on the first failure.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg, log)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command; a sweep failure carries the failing project's
	// exit code
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
