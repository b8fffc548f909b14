package toolchain

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"csweep/internal/config"
)

// Installer installs the pinned toolchain before a sweep. Both steps
// (install, override) are fatal on error; there are no retries.
type Installer struct {
	config *config.Config
	log    *zap.Logger
}

// NewInstaller creates a new Installer
func NewInstaller(cfg *config.Config, log *zap.Logger) *Installer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Installer{config: cfg, log: log}
}

// InstallArgs returns the rustup arguments for installing the configured
// channel
func (in *Installer) InstallArgs() []string {
	return []string{
		"toolchain", "install", in.config.Toolchain.Channel,
		"--profile", in.config.Toolchain.Profile,
	}
}

// OverrideArgs returns the rustup arguments pinning the channel for the tree
func (in *Installer) OverrideArgs() []string {
	return []string{"override", "set", in.config.Toolchain.Channel}
}

// Run installs the configured toolchain channel and, when override is set,
// pins it for the sweep root
func (in *Installer) Run(ctx context.Context) error {
	tc := in.config.Toolchain

	color.Cyan("\n╔════════════════════════════════════════════════════════════╗")
	color.Cyan("║                Preparing Toolchain (%-7s)                ║", tc.Channel)
	color.Cyan("╚════════════════════════════════════════════════════════════╝\n")

	steps := 1
	if tc.Override {
		steps = 2
	}
	bar := newStepBar(steps)

	start := time.Now()
	if err := in.runRustup(ctx, in.InstallArgs()); err != nil {
		return fmt.Errorf("toolchain install failed: %w", err)
	}
	bar.Add(1)

	if tc.Override {
		if err := in.runRustup(ctx, in.OverrideArgs()); err != nil {
			return fmt.Errorf("toolchain override failed: %w", err)
		}
		bar.Add(1)
	}
	bar.Finish()

	color.Green("✓ Toolchain %s ready (%s)", tc.Channel, time.Since(start).Round(time.Millisecond))
	return nil
}

func (in *Installer) runRustup(ctx context.Context, args []string) error {
	in.log.Debug("running rustup", zap.Strings("args", args))
	cmd := exec.CommandContext(ctx, "rustup", args...)
	cmd.Dir = in.config.GetRoot()
	cmd.Env = os.Environ()
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("rustup %v: %w\n%s", args, err, string(out))
	}
	return nil
}

func newStepBar(steps int) *progressbar.ProgressBar {
	return progressbar.NewOptions(steps,
		progressbar.OptionSetDescription(color.CyanString("Preparing: ")),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
}
