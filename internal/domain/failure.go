package domain

// TestFailure represents a single failed test case inside a project
type TestFailure struct {
	ProjectDir string   `json:"project_dir"`
	TestName   string   `json:"test_name"`
	Message    string   `json:"message"`
	Output     []string `json:"output,omitempty"`
	Resolved   bool     `json:"resolved,omitempty"` // Track if failure is marked as resolved in the viewer
}
