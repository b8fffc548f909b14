package discovery

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Manifests are read for two fields only, so a header parse is enough:
// the package name under [package], and whether a [workspace] table exists.

var (
	sectionPattern = regexp.MustCompile(`^\s*\[([^\]]+)\]`)
	namePattern    = regexp.MustCompile(`^\s*name\s*=\s*"([^"]+)"`)
)

// PackageName extracts the package name from a manifest file. Returns an
// empty name (and nil error) for a pure workspace manifest.
func PackageName(manifestPath string) (string, error) {
	content, err := os.ReadFile(manifestPath)
	if err != nil {
		return "", fmt.Errorf("error reading manifest %s: %w", manifestPath, err)
	}

	section := ""
	for _, line := range strings.Split(string(content), "\n") {
		if m := sectionPattern.FindStringSubmatch(line); m != nil {
			section = strings.TrimSpace(m[1])
			continue
		}
		if section != "package" {
			continue
		}
		if m := namePattern.FindStringSubmatch(line); m != nil {
			return m[1], nil
		}
	}

	return "", nil
}

// IsWorkspaceManifest reports whether the manifest declares a [workspace]
// table (with or without a package of its own).
func IsWorkspaceManifest(manifestPath string) (bool, error) {
	content, err := os.ReadFile(manifestPath)
	if err != nil {
		return false, fmt.Errorf("error reading manifest %s: %w", manifestPath, err)
	}

	for _, line := range strings.Split(string(content), "\n") {
		if m := sectionPattern.FindStringSubmatch(line); m != nil {
			if strings.TrimSpace(m[1]) == "workspace" {
				return true, nil
			}
		}
	}
	return false, nil
}
