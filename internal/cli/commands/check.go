package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"csweep/internal/cli"
	"csweep/internal/config"
	"csweep/internal/discovery"
	"csweep/internal/domain"
)

// ExitSkip is the exit code signalling that the trigger filter rejected the
// event (mirrors the conventional "neutral" CI code).
const ExitSkip = 78

// CheckCommand handles the check command
type CheckCommand struct {
	config *config.Config
}

// NewCheckCommand creates a new CheckCommand
func NewCheckCommand(cfg *config.Config) *CheckCommand {
	return &CheckCommand{config: cfg}
}

// Execute runs the command
func (cc *CheckCommand) Execute(cmd *cobra.Command, args []string) error {
	flags := cc.config.Flags

	targetBranch := flags.TargetBranch
	if targetBranch == "" && flags.Event == domain.EventPullRequest {
		targetBranch = cc.config.Trigger.TargetBranch
	}

	event := domain.Event{
		Kind:         flags.Event,
		TargetBranch: targetBranch,
		Branch:       flags.Branch,
		ChangedPaths: flags.ChangedPaths,
	}

	filter := discovery.NewChangeFilter(cc.config.Trigger.TargetBranch, cc.config.Trigger.PathGlobs)
	if filter.ShouldRun(event) {
		color.Green("✓ Sweep triggered (%s)", describeEvent(event))
		return nil
	}

	color.Yellow("Sweep skipped (%s)", describeEvent(event))
	return &cli.ExitError{Code: ExitSkip, Msg: "trigger filter rejected the event"}
}

// describeEvent labels the event for the decision line, naming the branch
// when the caller supplied one.
func describeEvent(event domain.Event) string {
	if event.Branch != "" {
		return fmt.Sprintf("%s on %s", event.Kind, event.Branch)
	}
	return event.Kind
}
