package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"csweep/internal/config"
	"csweep/internal/toolchain"
)

// PrepareCommand handles the prepare command
type PrepareCommand struct {
	config    *config.Config
	checkout  *toolchain.Checkout
	installer *toolchain.Installer
}

// NewPrepareCommand creates a new PrepareCommand
func NewPrepareCommand(cfg *config.Config, checkout *toolchain.Checkout, installer *toolchain.Installer) *PrepareCommand {
	return &PrepareCommand{
		config:    cfg,
		checkout:  checkout,
		installer: installer,
	}
}

// Execute runs the command
func (pc *PrepareCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rev, err := pc.checkout.Verify(ctx)
	if err != nil {
		return fmt.Errorf("checkout verification failed: %w", err)
	}
	if rev != "" {
		color.White("Checkout at revision %s", rev)
	}

	return pc.installer.Run(ctx)
}
