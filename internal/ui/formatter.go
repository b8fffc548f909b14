package ui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"

	"csweep/internal/config"
	"csweep/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// PrintMetaStats displays the statistics of a stored sweep run
func (f *Formatter) PrintMetaStats(output *domain.SweepOutput) error {
	meta := output.Meta

	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                     Sweep Run Statistics                      ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")

	fmt.Printf("│ %-31s │ ", "Total Projects")
	color.White("%-27d │\n", meta.TotalProjects)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Passed Projects")
	color.Green("%-27d │\n", meta.PassedProjects)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Failed Projects")
	color.Red("%-27d │\n", meta.FailedProjects)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Failed Test Cases")
	color.Red("%-27d │\n", meta.FailedTestCases)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Duration")
	durationStr := fmt.Sprintf("%.2fs", meta.DurationSeconds)
	color.White("%-27s │\n", durationStr)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Toolchain")
	color.White("%-27s │\n", meta.Toolchain)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Timestamp")
	color.White("%-27s │\n", meta.Timestamp)

	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Println()
	if meta.FailedProjects == 0 {
		color.Green("✓ All projects passed!")
	} else {
		color.Red("✗ %d project(s) failed with %d test case failure(s)", meta.FailedProjects, meta.FailedTestCases)
		fmt.Println()
		f.printFailureTree(output.Details)
	}

	return nil
}

// TreeNode represents a node in the directory tree structure
type TreeNode struct {
	Name     string
	Children map[string]*TreeNode
	Failures []domain.TestFailure
	IsLeaf   bool
}

// printFailureTree prints a tree of failed projects with their test cases
func (f *Formatter) printFailureTree(failures []domain.TestFailure) {
	if len(failures) == 0 {
		return
	}

	dirMap := make(map[string][]domain.TestFailure)
	for _, failure := range failures {
		dirMap[failure.ProjectDir] = append(dirMap[failure.ProjectDir], failure)
	}

	root := &TreeNode{Children: make(map[string]*TreeNode)}

	for dir, dirFailures := range dirMap {
		parts := strings.Split(strings.TrimPrefix(filepath.ToSlash(dir), "./"), "/")
		current := root

		for i, part := range parts {
			if part == "" {
				continue
			}

			if current.Children[part] == nil {
				current.Children[part] = &TreeNode{
					Name:     part,
					Children: make(map[string]*TreeNode),
					IsLeaf:   i == len(parts)-1,
				}
			}

			current = current.Children[part]

			if i == len(parts)-1 {
				current.IsLeaf = true
				current.Failures = dirFailures
			}
		}
	}

	f.printTreeNode(root, "", true)
}

func (f *Formatter) printTreeNode(node *TreeNode, prefix string, isRoot bool) {
	var keys []string
	for key := range node.Children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		child := node.Children[key]
		isLastChild := i == len(keys)-1

		var connector string
		if isRoot {
			connector = ""
		} else if isLastChild {
			connector = prefix + "└── "
		} else {
			connector = prefix + "├── "
		}

		if child.IsLeaf {
			color.Yellow("%s%s", connector, child.Name)
		} else {
			color.Cyan("%s%s", connector, child.Name)
		}

		var childPrefix string
		if isRoot {
			childPrefix = ""
		} else if isLastChild {
			childPrefix = prefix + "    "
		} else {
			childPrefix = prefix + "│   "
		}

		if child.IsLeaf {
			for j, failure := range child.Failures {
				caseConnector := "├── "
				if j == len(child.Failures)-1 && len(child.Children) == 0 {
					caseConnector = "└── "
				}
				color.Red("%s%s%s", childPrefix, caseConnector, failure.TestName)
			}
		}

		f.printTreeNode(child, childPrefix, false)
	}
}

// PrintProjectList prints the discovered projects, optionally with package
// names. failedDirs is optional; projects in the set are marked with [F] in
// red (from the last stored run).
func (f *Formatter) PrintProjectList(projects []domain.Project, showPackages bool, failedDirs map[string]struct{}) error {
	color.Green("Found %d project(s):\n", len(projects))

	for i, project := range projects {
		relPath, err := filepath.Rel(f.config.GetRoot(), project.Dir)
		if err != nil {
			relPath = project.Dir
		}

		failMarker := ""
		if len(failedDirs) > 0 {
			if _, ok := failedDirs[normalizedDirKey(f.config.GetRoot(), project.Dir)]; ok {
				failMarker = " " + color.RedString("[F]")
			}
		}

		display := relPath
		if showPackages {
			pkg := project.Name
			if project.WorkspaceOnly() {
				pkg = color.YellowString("(workspace)")
			}
			display = fmt.Sprintf("%s %s", relPath, pkg)
		}

		if i == len(projects)-1 {
			color.Cyan("└── %s%s", display, failMarker)
		} else {
			color.Cyan("├── %s%s", display, failMarker)
		}
	}

	return nil
}

// FailedDirSet builds the normalized set of failed project dirs from a
// stored run, for list markers and `--failed` resweeps.
func (f *Formatter) FailedDirSet(output *domain.SweepOutput) map[string]struct{} {
	set := make(map[string]struct{})
	for _, failure := range output.Details {
		set[normalizedDirKey(f.config.GetRoot(), failure.ProjectDir)] = struct{}{}
	}
	return set
}

// NormalizedDirKey exposes the path key used for matching project dirs
// against stored failures.
func (f *Formatter) NormalizedDirKey(dir string) string {
	return normalizedDirKey(f.config.GetRoot(), dir)
}

// normalizedDirKey returns a path key for matching stored failures to
// discovered projects regardless of relative/absolute form.
func normalizedDirKey(root, dir string) string {
	p := dir
	if root != "" {
		if rel, err := filepath.Rel(root, dir); err == nil && rel != ".." && !strings.HasPrefix(rel, "../") {
			p = rel
		}
	}
	return filepath.ToSlash(filepath.Clean(p))
}
