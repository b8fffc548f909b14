package commands

import (
	"go.uber.org/zap"

	"csweep/internal/cli"
	"csweep/internal/config"
	"csweep/internal/discovery"
	"csweep/internal/execution"
	"csweep/internal/logging"
	"csweep/internal/parser"
	"csweep/internal/storage"
	"csweep/internal/toolchain"
	"csweep/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Prepare  *PrepareCommand
	Check    *CheckCommand
	Failures *FailuresCommand
	History  *HistoryCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config, log *zap.Logger) *Commands {
	// Initialize dependencies
	scanner := discovery.NewScanner(cfg, log)
	filter := discovery.NewFilter()
	cargoParser := parser.NewCargoParser()
	runner := execution.NewCommandRunner(cfg, log)
	sweeper := execution.NewSweeper(runner, cargoParser, log)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg)
	checkout := toolchain.NewCheckout(cfg, log)
	installer := toolchain.NewInstaller(cfg, log)
	errorViewer := ui.NewErrorViewer(cfg, jsonStorage)

	return &Commands{
		Run:      NewRunCommand(cfg, scanner, filter, sweeper, cargoParser, jsonStorage, formatter, checkout, installer, log),
		List:     NewListCommand(cfg, scanner, filter, formatter, jsonStorage),
		Prepare:  NewPrepareCommand(cfg, checkout, installer),
		Check:    NewCheckCommand(cfg),
		Failures: NewFailuresCommand(cfg, jsonStorage, errorViewer),
		History:  NewHistoryCommand(cfg),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Reload config for the (possibly flag-overridden) root, then apply
	// flag overrides on top.
	applyFlags := func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flags.Root)
		if err != nil {
			return err
		}
		*cfg = *loaded
		cfg.ApplyFlags(flags.ToConfigFlags())
		if flags.Verbose {
			logging.SetDebug()
		}
		return nil
	}

	// Run command
	runCmd := &cobra.Command{
		Use:     "run",
		Short:   "Sweep every project's test suite",
		Long:    "Discover every project manifest under the root and run each project's test command in sequence, stopping on the first failure",
		RunE:    c.Run.Execute,
		PreRunE: applyFlags,
	}
	runCmd.Flags().StringVarP(&flags.Root, "root", "r", "", "Root of the checkout to sweep")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter projects by name pattern (supports wildcards, e.g. '*head*' or 'catr')")
	runCmd.Flags().BoolVar(&flags.OnlyFailed, "failed", false, "Sweep only projects that failed in the last run")
	runCmd.Flags().BoolVar(&flags.InstallToolchain, "install-toolchain", false, "Install the pinned toolchain before sweeping")
	runCmd.Flags().StringVar(&flags.Toolchain, "toolchain", "", "Toolchain channel to use (default from config)")
	runCmd.Flags().BoolVar(&flags.NoProgress, "no-progress", false, "Disable the progress bar")
	runCmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List discovered projects",
		Long:    "Scan the tree and list every project manifest without running anything",
		RunE:    c.List.Execute,
		PreRunE: applyFlags,
	}
	listCmd.Flags().StringVarP(&flags.Root, "root", "r", "", "Root of the checkout to scan")
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter projects by name pattern")
	listCmd.Flags().BoolVarP(&flags.Packages, "packages", "p", false, "Show package names next to project directories")
	rootCmd.AddCommand(listCmd)

	// Prepare command
	prepareCmd := &cobra.Command{
		Use:     "prepare",
		Short:   "Verify the checkout and install the pinned toolchain",
		Long:    "Run environment preparation standalone: verify the checkout root and install the configured toolchain channel with profile minimal",
		RunE:    c.Prepare.Execute,
		PreRunE: applyFlags,
	}
	prepareCmd.Flags().StringVarP(&flags.Root, "root", "r", "", "Root of the checkout to prepare")
	prepareCmd.Flags().StringVar(&flags.Toolchain, "toolchain", "", "Toolchain channel to install (default from config)")
	prepareCmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(prepareCmd)

	// Check command
	checkCmd := &cobra.Command{
		Use:     "check",
		Short:   "Evaluate the trigger predicate for an event",
		Long:    "Decide whether a pull request or push event should trigger a sweep; exits 0 to run, 78 to skip",
		RunE:    c.Check.Execute,
		PreRunE: applyFlags,
	}
	checkCmd.Flags().StringVar(&flags.Event, "event", "push", "Event kind: pull_request or push")
	checkCmd.Flags().StringVar(&flags.TargetBranch, "target-branch", "", "Branch the pull request targets")
	checkCmd.Flags().StringVar(&flags.Branch, "branch", "", "Branch the push landed on")
	checkCmd.Flags().StringSliceVar(&flags.ChangedPaths, "changed", nil, "Changed paths (repeat or comma-separate)")
	rootCmd.AddCommand(checkCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:     "failures",
		Short:   "View sweep failures interactively",
		Long:    "Display failures from the last sweep in an interactive viewer",
		RunE:    c.Failures.Execute,
		PreRunE: applyFlags,
	}
	failuresCmd.Flags().StringVarP(&flags.Root, "root", "r", "", "Root of the checkout the sweep ran against")
	rootCmd.AddCommand(failuresCmd)

	// History command
	historyCmd := &cobra.Command{
		Use:     "history",
		Short:   "Show past sweep runs",
		Long:    "List recorded sweep runs from the history database, newest first",
		RunE:    c.History.Execute,
		PreRunE: applyFlags,
	}
	historyCmd.Flags().StringVarP(&flags.Root, "root", "r", "", "Root of the checkout the sweeps ran against")
	historyCmd.Flags().IntVarP(&flags.Limit, "limit", "n", 20, "Maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}
