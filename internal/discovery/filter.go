package discovery

import (
	"path/filepath"
	"strings"

	"csweep/internal/domain"
)

// Filter filters discovered projects by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters projects by pattern using wildcard matching against
// the project directory's base name and the package name.
// Supports patterns like "catr" or "*head*"
func (f *Filter) FilterByName(projects []domain.Project, pattern string) []domain.Project {
	if pattern == "" {
		return projects
	}

	var filtered []domain.Project

	for _, project := range projects {
		if matchName(filepath.Base(project.Dir), pattern) || matchName(project.Name, pattern) {
			filtered = append(filtered, project)
		}
	}

	return filtered
}

// matchName matches a single name against the pattern: filepath.Match
// semantics first, then substring matching for wildcard-wrapped parts,
// then plain contains for patterns without wildcards.
func matchName(name, pattern string) bool {
	if name == "" {
		return false
	}

	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if strings.Contains(pattern, "*") {
		parts := strings.Split(pattern, "*")
		hasNonEmptyPart := false
		for _, part := range parts {
			if part == "" {
				continue
			}
			hasNonEmptyPart = true
			if !strings.Contains(name, part) {
				return false
			}
		}
		return hasNonEmptyPart
	}

	if !strings.Contains(pattern, "?") {
		return strings.Contains(name, pattern)
	}

	return false
}
