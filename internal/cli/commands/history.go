package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"csweep/internal/config"
	"csweep/internal/storage"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	config *config.Config
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(cfg *config.Config) *HistoryCommand {
	return &HistoryCommand{config: cfg}
}

// Execute runs the command
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	driver, dsn, err := hc.config.GetHistoryDSN()
	if err != nil {
		return err
	}
	store, err := storage.OpenHistory(driver, dsn)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(cmd.Context(), hc.config.Flags.Limit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		color.Yellow("No recorded sweep runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tRESULT\tPROJECTS\tDURATION\tTOOLCHAIN\tRUN ID")
	for _, e := range entries {
		result := color.GreenString("passed")
		if e.FailedProjects > 0 {
			result = color.RedString("failed (%s)", e.FailedProject)
		}
		when := e.Timestamp.Format(time.DateTime)
		if e.Timestamp.IsZero() {
			when = "unknown"
		}
		fmt.Fprintf(w, "%s\t%s\t%d/%d\t%.2fs\t%s\t%s\n",
			when, result, e.PassedProjects, e.TotalProjects, e.Duration, e.Toolchain, e.RunID)
	}
	return w.Flush()
}
