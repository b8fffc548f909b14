package discovery

import (
	"testing"

	"csweep/internal/config"
	"csweep/internal/domain"
)

func TestChangeFilter_ShouldRun(t *testing.T) {
	filter := NewChangeFilter("main", config.DefaultTriggerGlobs)

	tests := []struct {
		name     string
		event    domain.Event
		expected bool
	}{
		{
			name:     "pull request targeting main always runs",
			event:    domain.Event{Kind: domain.EventPullRequest, TargetBranch: "main"},
			expected: true,
		},
		{
			name:     "pull request targeting another branch does not run",
			event:    domain.Event{Kind: domain.EventPullRequest, TargetBranch: "release"},
			expected: false,
		},
		{
			name:     "push touching a root manifest runs",
			event:    domain.Event{Kind: domain.EventPush, Branch: "feature", ChangedPaths: []string{"Cargo.toml"}},
			expected: true,
		},
		{
			name:     "push touching a nested manifest runs",
			event:    domain.Event{Kind: domain.EventPush, Branch: "feature", ChangedPaths: []string{"headr/Cargo.toml"}},
			expected: true,
		},
		{
			name:     "push touching nested source runs",
			event:    domain.Event{Kind: domain.EventPush, ChangedPaths: []string{"catr/src/lib.rs"}},
			expected: true,
		},
		{
			name:     "push touching deep test file runs",
			event:    domain.Event{Kind: domain.EventPush, ChangedPaths: []string{"calr/tests/cli.rs"}},
			expected: true,
		},
		{
			name:     "push touching only docs does not run",
			event:    domain.Event{Kind: domain.EventPush, ChangedPaths: []string{"README.md", "docs/guide.md"}},
			expected: false,
		},
		{
			name:     "push with one matching path among many runs",
			event:    domain.Event{Kind: domain.EventPush, ChangedPaths: []string{"README.md", "wcr/src/main.rs"}},
			expected: true,
		},
		{
			name:     "push with no changes does not run",
			event:    domain.Event{Kind: domain.EventPush},
			expected: false,
		},
		{
			name:     "unknown event kind does not run",
			event:    domain.Event{Kind: "schedule", ChangedPaths: []string{"Cargo.toml"}},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filter.ShouldRun(tt.event); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		glob     string
		path     string
		expected bool
	}{
		{"**/Cargo.toml", "Cargo.toml", true},
		{"**/Cargo.toml", "a/b/Cargo.toml", true},
		{"**/Cargo.toml", "a/Cargo.toml.bak", false},
		{"**/src/**", "src/main.rs", true},
		{"**/src/**", "x/src/nested/mod.rs", true},
		{"**/src/**", "srcs/main.rs", false},
		{"**/tests/**", "calr/tests/cli.rs", true},
		{"**/tests/**", "tests", false},
	}

	for _, tt := range tests {
		t.Run(tt.glob+" vs "+tt.path, func(t *testing.T) {
			if got := matchGlob(tt.glob, tt.path); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
