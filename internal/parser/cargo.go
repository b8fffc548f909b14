package parser

import (
	"regexp"
	"strconv"
	"strings"

	"csweep/internal/domain"
)

// CargoParser parses cargo test output
type CargoParser struct{}

// NewCargoParser creates a new CargoParser
func NewCargoParser() *CargoParser {
	return &CargoParser{}
}

var (
	// test result: ok. 3 passed; 0 failed; 0 ignored; ...
	// One line per test target, so counts are summed across matches.
	resultPattern = regexp.MustCompile(`test result: \w+\. (\d+) passed; (\d+) failed`)

	// ---- tests::dies_bad_file stdout ----
	sectionPattern = regexp.MustCompile(`^---- (\S+) stdout ----$`)

	// error[E0308]: mismatched types   /   error: could not compile ...
	buildErrPattern = regexp.MustCompile(`(?m)^error(\[E\d+\])?: `)
)

// ParseTestCounts extracts passed and failed test case counts from cargo
// output. Returns (passed, failed). If no result lines are present, falls
// back to one "test" per project.
func (p *CargoParser) ParseTestCounts(result domain.ProjectResult) (passed, failed int) {
	for _, m := range resultPattern.FindAllStringSubmatch(result.Output, -1) {
		pv, _ := strconv.Atoi(m[1])
		fv, _ := strconv.Atoi(m[2])
		passed += pv
		failed += fv
	}
	if passed > 0 || failed > 0 {
		return passed, failed
	}

	if result.Success {
		return 1, 0
	}
	return 0, 1
}

// ParseFailures extracts individual test failures from a failed project's
// output. Compile errors, which abort before any test runs, collapse into a
// single build failure.
func (p *CargoParser) ParseFailures(result domain.ProjectResult) []domain.TestFailure {
	if result.Success {
		return nil
	}

	lines := strings.Split(result.Output, "\n")
	var failures []domain.TestFailure

	for i := 0; i < len(lines); i++ {
		m := sectionPattern.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		name := m[1]
		body := collectSection(lines, i+1)
		failures = append(failures, domain.TestFailure{
			ProjectDir: result.Project.Dir,
			TestName:   name,
			Message:    firstNonEmpty(body),
			Output:     body,
		})
	}

	if len(failures) == 0 {
		if loc := buildErrPattern.FindStringIndex(result.Output); loc != nil {
			line := result.Output[loc[0]:]
			if nl := strings.IndexByte(line, '\n'); nl >= 0 {
				line = line[:nl]
			}
			return []domain.TestFailure{{
				ProjectDir: result.Project.Dir,
				TestName:   "(build)",
				Message:    line,
				Output:     lines,
			}}
		}
		// Unparseable failure output: keep the project-level failure visible
		return []domain.TestFailure{{
			ProjectDir: result.Project.Dir,
			TestName:   "(project)",
			Message:    strings.TrimSpace(firstNonEmpty(lines)),
			Output:     lines,
		}}
	}

	return failures
}

// collectSection gathers a failure section's lines up to the next section
// marker or the trailing "failures:" list.
func collectSection(lines []string, start int) []string {
	var body []string
	for j := start; j < len(lines); j++ {
		line := lines[j]
		if sectionPattern.MatchString(line) || strings.TrimSpace(line) == "failures:" {
			break
		}
		body = append(body, line)
	}
	// Trim trailing empty lines
	for len(body) > 0 && strings.TrimSpace(body[len(body)-1]) == "" {
		body = body[:len(body)-1]
	}
	return body
}

func firstNonEmpty(lines []string) string {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line)
		}
	}
	return ""
}
