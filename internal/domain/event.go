package domain

// Event kinds understood by the trigger predicate.
const (
	EventPullRequest = "pull_request"
	EventPush        = "push"
)

// Event describes a repository event the trigger predicate is evaluated against
type Event struct {
	Kind         string   // pull_request or push
	TargetBranch string   // Branch a pull request targets
	Branch       string   // Branch a push landed on
	ChangedPaths []string // Paths changed by the event, relative to the repo root
}
