package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"csweep/internal/config"
	"csweep/internal/discovery"
	"csweep/internal/storage"
	"csweep/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	formatter *ui.Formatter
	storage   storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	formatter *ui.Formatter,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		formatter: formatter,
		storage:   st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	projects, err := lc.scanner.Scan(lc.config.GetRoot())
	if err != nil {
		return err
	}

	projects = lc.filter.FilterByName(projects, lc.config.Flags.NameFilter)

	if len(projects) == 0 {
		color.Yellow("No projects found")
		return nil
	}

	// Last run's failures are markers only; a missing results file is fine
	var failedDirs map[string]struct{}
	if output, err := lc.storage.Load(); err == nil {
		failedDirs = lc.formatter.FailedDirSet(output)
	}

	return lc.formatter.PrintProjectList(projects, lc.config.Flags.Packages, failedDirs)
}
