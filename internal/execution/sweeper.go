package execution

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"csweep/internal/domain"
	"csweep/internal/parser"
	"csweep/internal/ui"
)

// SweepResult is the outcome of a full sweep
type SweepResult struct {
	RunID    string
	Results  []domain.ProjectResult
	Duration time.Duration
	Failed   *domain.ProjectResult // first failing project, nil when all passed
}

// Passed reports whether every swept project passed
func (sr SweepResult) Passed() bool {
	return sr.Failed == nil
}

// Sweeper runs each project's test command in sequence, aborting on the
// first failure. Projects are never run in parallel: one test command runs
// to completion before the next project is considered.
type Sweeper struct {
	runner   Runner
	parser   *parser.CargoParser
	progress *ui.ProgressBar
	out      io.Writer
	log      *zap.Logger
}

// NewSweeper creates a new Sweeper writing its transcript to stdout
func NewSweeper(runner Runner, cargoParser *parser.CargoParser, log *zap.Logger) *Sweeper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sweeper{
		runner: runner,
		parser: cargoParser,
		out:    os.Stdout,
		log:    log,
	}
}

// SetProgress sets the progress bar for the sweep
func (s *Sweeper) SetProgress(progress *ui.ProgressBar) {
	s.progress = progress
}

// SetOutput redirects the sweep transcript
func (s *Sweeper) SetOutput(out io.Writer) {
	s.out = out
}

// Sweep runs the test command for each project in order. On the first
// failure the sweep stops: remaining projects are never tested. An empty
// project list is a trivially passing sweep.
func (s *Sweeper) Sweep(ctx context.Context, projects []domain.Project) (SweepResult, error) {
	result := SweepResult{RunID: uuid.NewString()}

	var completed, passedCases, failedCases int
	start := time.Now()

	for _, project := range projects {
		if err := ctx.Err(); err != nil {
			result.Duration = time.Since(start)
			return result, err
		}

		fmt.Fprintf(s.out, "Testing in %s\n", project.Dir)

		res := s.runner.Run(ctx, project)
		result.Results = append(result.Results, res)

		completed++
		if s.parser != nil {
			p, f := s.parser.ParseTestCounts(res)
			passedCases += p
			failedCases += f
		} else if res.Success {
			passedCases++
		} else {
			failedCases++
		}
		if s.progress != nil {
			s.progress.Update(completed, passedCases, failedCases)
		}

		// Without a progress bar the transcript carries every project's
		// output; with one, only the failing output breaks through.
		if !res.Success || s.progress == nil {
			fmt.Fprint(s.out, res.Output)
		}

		if !res.Success {
			// Fail fast: surface the first failure and stop
			s.log.Debug("project failed, aborting sweep",
				zap.String("dir", project.Dir),
				zap.Int("exit_code", res.ExitCode))
			result.Failed = &result.Results[len(result.Results)-1]
			break
		}
	}

	if s.progress != nil {
		s.progress.Finish()
	}
	result.Duration = time.Since(start)
	return result, nil
}
