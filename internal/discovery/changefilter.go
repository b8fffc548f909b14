package discovery

import (
	"path"
	"strings"

	"csweep/internal/domain"
)

// ChangeFilter decides whether an event should trigger a sweep. Pull
// requests targeting the configured branch always run; pushes run only when
// the changed path set intersects the configured globs.
type ChangeFilter struct {
	targetBranch string
	globs        []string
}

// NewChangeFilter creates a ChangeFilter for the given target branch and
// path globs. A "**" segment in a glob crosses directory boundaries.
func NewChangeFilter(targetBranch string, globs []string) *ChangeFilter {
	return &ChangeFilter{targetBranch: targetBranch, globs: globs}
}

// ShouldRun evaluates the trigger predicate for an event
func (cf *ChangeFilter) ShouldRun(event domain.Event) bool {
	switch event.Kind {
	case domain.EventPullRequest:
		return event.TargetBranch == cf.targetBranch
	case domain.EventPush:
		for _, p := range event.ChangedPaths {
			if cf.matchesAny(p) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func (cf *ChangeFilter) matchesAny(changed string) bool {
	changed = path.Clean(strings.TrimPrefix(changed, "./"))
	for _, glob := range cf.globs {
		if matchGlob(glob, changed) {
			return true
		}
	}
	return false
}

// matchGlob matches a changed path against a glob, segment by segment.
// "**" matches any number of segments (including zero); other segments use
// path.Match semantics.
func matchGlob(glob, p string) bool {
	return matchSegments(strings.Split(glob, "/"), strings.Split(p, "/"))
}

func matchSegments(glob, segs []string) bool {
	if len(glob) == 0 {
		return len(segs) == 0
	}

	if glob[0] == "**" {
		// A trailing ** must consume at least one segment: "tests/**"
		// matches files under tests/, not a file named tests itself.
		if len(glob) == 1 {
			return len(segs) >= 1
		}
		for skip := 0; skip <= len(segs); skip++ {
			if matchSegments(glob[1:], segs[skip:]) {
				return true
			}
		}
		return false
	}

	if len(segs) == 0 {
		return false
	}
	if ok, err := path.Match(glob[0], segs[0]); err != nil || !ok {
		return false
	}
	return matchSegments(glob[1:], segs[1:])
}
