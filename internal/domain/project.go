package domain

// Project represents a discovered project to be swept
type Project struct {
	ManifestPath string // Full path to the Cargo.toml manifest
	Dir          string // Directory containing the manifest (the project root)
	Name         string // Package name from the manifest, if any
	Workspace    bool   // Manifest declares a [workspace] table
}

// WorkspaceOnly reports whether the project is a bare workspace container
// (a manifest with members but no package of its own).
func (p Project) WorkspaceOnly() bool {
	return p.Workspace && p.Name == ""
}
