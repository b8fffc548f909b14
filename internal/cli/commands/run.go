package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"csweep/internal/cli"
	"csweep/internal/config"
	"csweep/internal/discovery"
	"csweep/internal/domain"
	"csweep/internal/execution"
	"csweep/internal/parser"
	"csweep/internal/storage"
	"csweep/internal/toolchain"
	"csweep/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	sweeper   *execution.Sweeper
	parser    *parser.CargoParser
	storage   storage.Storage
	formatter *ui.Formatter
	checkout  *toolchain.Checkout
	installer *toolchain.Installer
	log       *zap.Logger
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	sweeper *execution.Sweeper,
	cargoParser *parser.CargoParser,
	st storage.Storage,
	formatter *ui.Formatter,
	checkout *toolchain.Checkout,
	installer *toolchain.Installer,
	log *zap.Logger,
) *RunCommand {
	if log == nil {
		log = zap.NewNop()
	}
	return &RunCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		sweeper:   sweeper,
		parser:    cargoParser,
		storage:   st,
		formatter: formatter,
		checkout:  checkout,
		installer: installer,
		log:       log,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Environment preparation: checkout verification, then toolchain
	// install when requested. Either failure aborts before any project is
	// tested.
	if rev, err := rc.checkout.Verify(ctx); err != nil {
		return fmt.Errorf("checkout verification failed: %w", err)
	} else if rev != "" {
		rc.log.Debug("sweeping revision", zap.String("revision", rev))
	}

	if rc.config.Flags.InstallToolchain {
		if err := rc.installer.Run(ctx); err != nil {
			return fmt.Errorf("toolchain preparation failed: %w", err)
		}
		fmt.Println()
	}

	// Discover projects
	root := rc.config.GetRoot()
	projects, err := rc.scanner.Scan(root)
	if err != nil {
		return err
	}

	// Filter projects
	projects = rc.filter.FilterByName(projects, rc.config.Flags.NameFilter)

	if rc.config.Flags.OnlyFailed {
		projects, err = rc.keepFailed(projects)
		if err != nil {
			return err
		}
	}

	if len(projects) == 0 {
		// Zero discovered projects is trivially a passing sweep
		color.Yellow("No projects to sweep")
		return nil
	}

	if !rc.config.Flags.NoProgress {
		rc.sweeper.SetProgress(ui.NewProgressBar(len(projects)))
	}

	// Sweep
	sweep, err := rc.sweeper.Sweep(ctx, projects)
	if err != nil {
		return err
	}

	// Parse failures from failing results
	var failures []domain.TestFailure
	for _, result := range sweep.Results {
		if !result.Success {
			failures = append(failures, rc.parser.ParseFailures(result)...)
		}
	}

	// Save results
	if err := rc.storage.Save(sweep.RunID, sweep.Results, failures, sweep.Duration, rc.config.Toolchain.Channel); err != nil {
		return fmt.Errorf("failed to save sweep results: %w", err)
	}
	rc.recordHistory(ctx, sweep, len(failures))

	// Print stats
	output, err := rc.storage.Load()
	if err != nil {
		return fmt.Errorf("failed to load sweep results: %w", err)
	}
	if err := rc.formatter.PrintMetaStats(output); err != nil {
		return err
	}

	if sweep.Failed != nil {
		return cli.NewExitError(sweep.Failed.ExitCode,
			"sweep failed in %s (exit code %d)", sweep.Failed.Project.Dir, sweep.Failed.ExitCode)
	}
	return nil
}

// keepFailed restricts the project list to those that failed in the last
// stored run
func (rc *RunCommand) keepFailed(projects []domain.Project) ([]domain.Project, error) {
	output, err := rc.storage.Load()
	if err != nil {
		return nil, fmt.Errorf("no stored run to resweep failures from: %w", err)
	}

	failedDirs := rc.formatter.FailedDirSet(output)
	var kept []domain.Project
	for _, project := range projects {
		if _, ok := failedDirs[rc.formatter.NormalizedDirKey(project.Dir)]; ok {
			kept = append(kept, project)
		}
	}
	return kept, nil
}

// recordHistory stores the run in the history database. History is a
// secondary record: a write failure is logged, not fatal to the sweep.
func (rc *RunCommand) recordHistory(ctx context.Context, sweep execution.SweepResult, failedCases int) {
	driver, dsn, err := rc.config.GetHistoryDSN()
	if err != nil {
		rc.log.Warn("history disabled", zap.Error(err))
		return
	}
	store, err := storage.OpenHistory(driver, dsn)
	if err != nil {
		rc.log.Warn("history unavailable", zap.Error(err))
		return
	}
	defer store.Close()

	passed := 0
	failed := 0
	for _, r := range sweep.Results {
		if r.Success {
			passed++
		} else {
			failed++
		}
	}
	failedProject := ""
	if sweep.Failed != nil {
		failedProject = sweep.Failed.Project.Dir
	}
	meta := domain.SweepMeta{
		RunID:           sweep.RunID,
		TotalProjects:   len(sweep.Results),
		PassedProjects:  passed,
		FailedProjects:  failed,
		FailedTestCases: failedCases,
		Duration:        sweep.Duration.String(),
		DurationSeconds: sweep.Duration.Seconds(),
		Toolchain:       rc.config.Toolchain.Channel,
		Timestamp:       time.Now().Format(time.RFC3339),
	}
	if err := store.Record(ctx, meta, failedProject); err != nil {
		rc.log.Warn("history record failed", zap.Error(err))
	}
}
