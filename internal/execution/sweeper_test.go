package execution

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"csweep/internal/domain"
)

// stubRunner fails the configured dirs with the given exit code and records
// every invocation
type stubRunner struct {
	failDirs map[string]int
	calls    []string
}

func (s *stubRunner) Run(ctx context.Context, project domain.Project) domain.ProjectResult {
	s.calls = append(s.calls, project.Dir)
	if code, ok := s.failDirs[project.Dir]; ok {
		return domain.ProjectResult{
			Project:  project,
			Success:  false,
			ExitCode: code,
			Output:   fmt.Sprintf("test result: FAILED. 0 passed; 1 failed in %s\n", project.Dir),
			Error:    fmt.Errorf("exit status %d", code),
		}
	}
	return domain.ProjectResult{Project: project, Success: true, ExitCode: 0}
}

func projects(dirs ...string) []domain.Project {
	var ps []domain.Project
	for _, dir := range dirs {
		ps = append(ps, domain.Project{Dir: dir, ManifestPath: dir + "/Cargo.toml"})
	}
	return ps
}

func countTestingLines(out string) int {
	count := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Testing in ") {
			count++
		}
	}
	return count
}

func TestSweeper_Sweep_AllPass(t *testing.T) {
	runner := &stubRunner{}
	sweeper := NewSweeper(runner, nil, nil)
	var out bytes.Buffer
	sweeper.SetOutput(&out)

	result, err := sweeper.Sweep(context.Background(), projects("a", "b/sub", "c"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Passed() {
		t.Error("expected sweep to pass")
	}
	if len(result.Results) != 3 {
		t.Errorf("expected 3 results, got %d", len(result.Results))
	}
	if got := countTestingLines(out.String()); got != 3 {
		t.Errorf("expected 3 'Testing in' lines, got %d", got)
	}
	if result.RunID == "" {
		t.Error("expected a run id")
	}
}

func TestSweeper_Sweep_FailFast(t *testing.T) {
	runner := &stubRunner{failDirs: map[string]int{"b": 101}}
	sweeper := NewSweeper(runner, nil, nil)
	var out bytes.Buffer
	sweeper.SetOutput(&out)

	result, err := sweeper.Sweep(context.Background(), projects("a", "b", "c", "d"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Passed() {
		t.Fatal("expected sweep to fail")
	}
	if result.Failed.Project.Dir != "b" {
		t.Errorf("expected failure in b, got %s", result.Failed.Project.Dir)
	}
	if result.Failed.ExitCode != 101 {
		t.Errorf("expected exit code 101, got %d", result.Failed.ExitCode)
	}

	// The sweep stops at the first failure: projects after b never run
	if len(runner.calls) != 2 {
		t.Errorf("expected 2 invocations, got %d (%v)", len(runner.calls), runner.calls)
	}
	if got := countTestingLines(out.String()); got != 2 {
		t.Errorf("expected 2 'Testing in' lines, got %d", got)
	}

	// The failing project's output is the last thing in the transcript
	if !strings.Contains(out.String(), "test result: FAILED") {
		t.Error("expected failing output in the transcript")
	}
}

func TestSweeper_Sweep_Empty(t *testing.T) {
	runner := &stubRunner{}
	sweeper := NewSweeper(runner, nil, nil)
	var out bytes.Buffer
	sweeper.SetOutput(&out)

	result, err := sweeper.Sweep(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Passed() {
		t.Error("a sweep over zero projects passes trivially")
	}
	if got := countTestingLines(out.String()); got != 0 {
		t.Errorf("expected no 'Testing in' lines, got %d", got)
	}
	if len(runner.calls) != 0 {
		t.Errorf("expected no invocations, got %d", len(runner.calls))
	}
}

func TestSweeper_Sweep_Idempotent(t *testing.T) {
	runner := &stubRunner{failDirs: map[string]int{"c": 1}}
	sweeper := NewSweeper(runner, nil, nil)

	var first, second bytes.Buffer
	sweeper.SetOutput(&first)
	r1, err := sweeper.Sweep(context.Background(), projects("a", "b", "c"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sweeper.SetOutput(&second)
	r2, err := sweeper.Sweep(context.Background(), projects("a", "b", "c"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r1.Passed() != r2.Passed() {
		t.Error("expected identical pass/fail outcome")
	}
	if countTestingLines(first.String()) != countTestingLines(second.String()) {
		t.Error("expected identical transcript line counts")
	}
}

func TestSweeper_Sweep_CancelledContext(t *testing.T) {
	runner := &stubRunner{}
	sweeper := NewSweeper(runner, nil, nil)
	var out bytes.Buffer
	sweeper.SetOutput(&out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sweeper.Sweep(ctx, projects("a"))
	if err == nil {
		t.Fatal("expected context error")
	}
	if len(runner.calls) != 0 {
		t.Errorf("expected no invocations after cancellation, got %d", len(runner.calls))
	}
}
