package toolchain

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"csweep/internal/config"
)

// Checkout verifies the source tree the sweep will run against
type Checkout struct {
	config *config.Config
	log    *zap.Logger
}

// NewCheckout creates a new Checkout
func NewCheckout(cfg *config.Config, log *zap.Logger) *Checkout {
	if log == nil {
		log = zap.NewNop()
	}
	return &Checkout{config: cfg, log: log}
}

// Verify checks that the root is a usable source tree. When the root is a
// git work tree, the current revision must resolve; failure here is fatal
// to the run, no retry. Returns the resolved revision, or "" for a plain
// directory.
func (c *Checkout) Verify(ctx context.Context) (string, error) {
	root := c.config.GetRoot()

	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("checkout root does not exist: %s", root)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("checkout root is not a directory: %s", root)
	}

	if _, err := os.Stat(filepath.Join(root, ".git")); err != nil {
		// Not a git checkout; a plain tree is acceptable
		c.log.Debug("root is not a git work tree", zap.String("root", root))
		return "", nil
	}

	cmd := exec.CommandContext(ctx, "git", "rev-parse", "HEAD")
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("checkout is not at a usable revision: %w", err)
	}

	rev := strings.TrimSpace(string(out))
	c.log.Debug("checkout verified", zap.String("revision", rev))
	return rev, nil
}
