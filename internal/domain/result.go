package domain

import "time"

// ProjectResult represents the result of running a project's test command
type ProjectResult struct {
	Project  Project       // Project that was tested
	Success  bool          // Whether the test command exited zero
	ExitCode int           // Raw exit code of the test command (-1 if it never ran)
	Output   string        // Combined output from the test command
	Error    error         // Error if the command could not be started
	Duration time.Duration // Time taken to run
}

// SweepMeta contains metadata about a sweep run
type SweepMeta struct {
	RunID           string  `json:"run_id"`
	TotalProjects   int     `json:"total_projects"`
	PassedProjects  int     `json:"passed_projects"`
	FailedProjects  int     `json:"failed_projects"`
	FailedTestCases int     `json:"failed_test_cases"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Toolchain       string  `json:"toolchain"`
	Timestamp       string  `json:"timestamp"`
}

// SweepOutput is the complete persisted record of a sweep run
type SweepOutput struct {
	Meta    SweepMeta     `json:"meta"`
	Details []TestFailure `json:"details"`
}
