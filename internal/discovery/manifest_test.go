package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Cargo.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return path
}

func TestPackageName(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name: "simple package",
			content: `[package]
name = "catr"
version = "0.1.0"
edition = "2021"
`,
			expected: "catr",
		},
		{
			name: "name under dependencies is not the package name",
			content: `[dependencies]
name = "decoy"

[package]
name = "headr"
`,
			expected: "headr",
		},
		{
			name: "workspace only manifest has no package name",
			content: `[workspace]
members = ["catr", "headr"]
`,
			expected: "",
		},
		{
			name:     "empty manifest",
			content:  "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, tt.content)
			name, err := PackageName(path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if name != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, name)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		if _, err := PackageName("/non/existent/Cargo.toml"); err == nil {
			t.Error("expected error for missing manifest")
		}
	})
}

func TestIsWorkspaceManifest(t *testing.T) {
	workspace := writeManifest(t, "[workspace]\nmembers = [\"catr\"]\n")
	ok, err := IsWorkspaceManifest(workspace)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected workspace manifest to be detected")
	}

	pkg := writeManifest(t, "[package]\nname = \"catr\"\n")
	ok, err = IsWorkspaceManifest(pkg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("package manifest should not be a workspace")
	}
}
