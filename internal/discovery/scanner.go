package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"csweep/internal/config"
	"csweep/internal/domain"
)

// Scanner scans a tree for project manifests
type Scanner struct {
	config *config.Config
	log    *zap.Logger
}

// NewScanner creates a new Scanner
func NewScanner(cfg *config.Config, log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{config: cfg, log: log}
}

// Scan finds all projects under the given root directory. A project is any
// directory that directly contains the manifest file. WalkDir yields lexical
// order, so the result is reproducible for an unchanged tree.
func (s *Scanner) Scan(root string) ([]domain.Project, error) {
	var projects []domain.Project

	skipDirs := make(map[string]bool)
	for _, dir := range s.config.IgnoreDirs {
		skipDirs[dir] = true
	}
	manifestName := s.config.ManifestName

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("sweep root does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("sweep root is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			// Skip hidden directories (starting with .)
			if strings.HasPrefix(name, ".") && name != "." && name != ".." {
				return filepath.SkipDir
			}

			if skipDirs[name] {
				return filepath.SkipDir
			}

			return nil
		}

		if d.Name() == manifestName {
			dir := filepath.Dir(path)
			name, _ := PackageName(path)
			workspace, _ := IsWorkspaceManifest(path)
			s.log.Debug("manifest found",
				zap.String("path", path),
				zap.String("package", name),
				zap.Bool("workspace", workspace))
			projects = append(projects, domain.Project{
				ManifestPath: path,
				Dir:          dir,
				Name:         name,
				Workspace:    workspace,
			})
		}

		return nil
	})

	return projects, err
}
