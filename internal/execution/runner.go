package execution

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"csweep/internal/config"
	"csweep/internal/domain"
)

// Runner executes a project's test command and returns its result
type Runner interface {
	Run(ctx context.Context, project domain.Project) domain.ProjectResult
}

// CommandRunner runs the configured test command in the project directory
type CommandRunner struct {
	config *config.Config
	log    *zap.Logger
}

// NewCommandRunner creates a new CommandRunner
func NewCommandRunner(cfg *config.Config, log *zap.Logger) *CommandRunner {
	if log == nil {
		log = zap.NewNop()
	}
	return &CommandRunner{config: cfg, log: log}
}

// Run executes the test command for a single project. The working directory
// is scoped to the spawned process, so nothing leaks between projects.
func (r *CommandRunner) Run(ctx context.Context, project domain.Project) domain.ProjectResult {
	command := r.config.TestCommand
	if len(command) == 0 {
		return domain.ProjectResult{
			Project:  project,
			ExitCode: -1,
			Error:    fmt.Errorf("no test command configured"),
		}
	}

	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Dir = project.Dir
	cmd.Env = os.Environ()

	r.log.Debug("running test command",
		zap.Strings("command", command),
		zap.String("dir", project.Dir))

	start := time.Now()
	output, err := cmd.CombinedOutput()
	duration := time.Since(start)

	result := domain.ProjectResult{
		Project:  project,
		Success:  err == nil,
		ExitCode: 0,
		Output:   string(output),
		Error:    err,
		Duration: duration,
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			// Spawn failure: the command never produced an exit status
			result.ExitCode = -1
		}
	}
	return result
}
