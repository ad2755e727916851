// Package validate runs documentation validation suites.
//
// A suite covers one class of artifact (reStructuredText, OpenAPI, GraphQL
// SDL, proto3, Markdown, formatting conventions) and wraps the external
// linter the corpus depends on, where one exists. Suites run one at a time;
// each produces issues with error or warning severity. A missing external
// tool downgrades the whole suite to a single warning so that partial
// environments (developer laptops without protoc, say) still get a usable
// run.
package validate

import "time"

// Severity classifies an issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single finding from a validation suite.
type Issue struct {
	Severity Severity
	Suite    string
	Path     string
	Line     int // 0 when unknown
	Message  string
}

// Report aggregates the outcome of a validation run.
type Report struct {
	Started  time.Time
	Duration time.Duration

	// Suites actually executed, in order
	Suites []string

	// Suites skipped because their tool is missing
	SkippedSuites []string

	Issues       []Issue
	FilesChecked int
}

// ErrorCount returns the number of error-severity issues.
func (r *Report) ErrorCount() int {
	n := 0
	for _, is := range r.Issues {
		if is.Severity == SeverityError {
			n++
		}
	}
	return n
}

// WarningCount returns the number of warning-severity issues.
func (r *Report) WarningCount() int {
	n := 0
	for _, is := range r.Issues {
		if is.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

// Passed reports whether the run had no errors. Warnings do not fail a run.
func (r *Report) Passed() bool {
	return r.ErrorCount() == 0
}

// ExitCode maps the report to a process exit status: 0 on pass, 1 otherwise.
func (r *Report) ExitCode() int {
	if r.Passed() {
		return 0
	}
	return 1
}

// IssuesFor returns the issues belonging to one suite.
func (r *Report) IssuesFor(suite string) []Issue {
	var out []Issue
	for _, is := range r.Issues {
		if is.Suite == suite {
			out = append(out, is)
		}
	}
	return out
}
