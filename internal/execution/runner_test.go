package execution

import (
	"context"
	"testing"
	"time"

	"csweep/internal/config"
	"csweep/internal/domain"
)

func TestCommandRunner_Run(t *testing.T) {
	project := domain.Project{Dir: t.TempDir()}

	t.Run("passing command", func(t *testing.T) {
		cfg := config.New()
		cfg.TestCommand = []string{"sh", "-c", "echo swept; exit 0"}
		runner := NewCommandRunner(cfg, nil)

		result := runner.Run(context.Background(), project)
		if !result.Success {
			t.Fatalf("expected success, got error %v", result.Error)
		}
		if result.ExitCode != 0 {
			t.Errorf("expected exit code 0, got %d", result.ExitCode)
		}
		if result.Output != "swept\n" {
			t.Errorf("unexpected output %q", result.Output)
		}
	})

	t.Run("failing command propagates its exit code", func(t *testing.T) {
		cfg := config.New()
		cfg.TestCommand = []string{"sh", "-c", "exit 101"}
		runner := NewCommandRunner(cfg, nil)

		result := runner.Run(context.Background(), project)
		if result.Success {
			t.Fatal("expected failure")
		}
		if result.ExitCode != 101 {
			t.Errorf("expected exit code 101, got %d", result.ExitCode)
		}
	})

	t.Run("unstartable command", func(t *testing.T) {
		cfg := config.New()
		cfg.TestCommand = []string{"/non/existent/test-tool"}
		runner := NewCommandRunner(cfg, nil)

		result := runner.Run(context.Background(), project)
		if result.Success {
			t.Fatal("expected failure")
		}
		if result.ExitCode != -1 {
			t.Errorf("expected exit code -1 for spawn failure, got %d", result.ExitCode)
		}
		if result.Error == nil {
			t.Error("expected an error")
		}
	})

	t.Run("empty command", func(t *testing.T) {
		cfg := config.New()
		cfg.TestCommand = nil
		runner := NewCommandRunner(cfg, nil)

		result := runner.Run(context.Background(), project)
		if result.Success || result.Error == nil {
			t.Error("expected configuration error")
		}
	})

	t.Run("timeout kills the command", func(t *testing.T) {
		cfg := config.New()
		cfg.TestCommand = []string{"sh", "-c", "sleep 5"}
		cfg.Timeout = 50 * time.Millisecond
		runner := NewCommandRunner(cfg, nil)

		start := time.Now()
		result := runner.Run(context.Background(), project)
		if result.Success {
			t.Fatal("expected failure")
		}
		if time.Since(start) > 3*time.Second {
			t.Error("timeout did not take effect")
		}
	})
}
