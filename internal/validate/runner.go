package validate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"docsentry/internal/canon"
	"docsentry/internal/config"
	"docsentry/internal/logging"
)

// Suite identifiers. The "rest" name follows the historical flag for
// reStructuredText checking; it is not about REST APIs.
const (
	SuiteRST      = "rest"
	SuiteSphinx   = "sphinx"
	SuiteOpenAPI  = "openapi"
	SuiteGraphQL  = "graphql"
	SuiteProto    = "proto"
	SuiteMarkdown = "markdown"
	SuiteFormat   = "format"
)

// AllSuites returns every suite ID in canonical execution order.
func AllSuites() []string {
	return []string{SuiteRST, SuiteSphinx, SuiteOpenAPI, SuiteGraphQL, SuiteProto, SuiteMarkdown, SuiteFormat}
}

// PreCommitSuites returns the fast subset run from a pre-commit hook:
// Markdown linting plus the formatting scan. Strictly fewer than AllSuites.
func PreCommitSuites() []string {
	return []string{SuiteMarkdown, SuiteFormat}
}

// KnownSuite reports whether id names a suite.
func KnownSuite(id string) bool {
	for _, s := range AllSuites() {
		if s == id {
			return true
		}
	}
	return false
}

// suiteFn executes one suite and returns its issues and file count.
type suiteFn func(ctx context.Context) ([]Issue, int, error)

// Runner executes validation suites over a documentation workspace.
type Runner struct {
	workspace string
	cfg       *config.Config
	tools     *ToolRunner
	canons    *canon.Registry
}

// NewRunner creates a Runner rooted at the workspace directory.
func NewRunner(workspace string, cfg *config.Config) *Runner {
	return &Runner{
		workspace: workspace,
		cfg:       cfg,
		tools:     NewToolRunner(cfg.ToolTimeout()),
		canons:    canon.DefaultRegistry(),
	}
}

func (r *Runner) absRoot(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(r.workspace, rel)
}

func (r *Runner) suite(id string) suiteFn {
	switch id {
	case SuiteRST:
		return r.runRST
	case SuiteSphinx:
		return r.runSphinx
	case SuiteOpenAPI:
		return r.runOpenAPI
	case SuiteGraphQL:
		return r.runGraphQL
	case SuiteProto:
		return r.runProto
	case SuiteMarkdown:
		return r.runMarkdown
	case SuiteFormat:
		return r.runFormat
	}
	return nil
}

// Run executes the named suites sequentially and aggregates a Report.
// Suite order follows AllSuites regardless of the order given.
func (r *Runner) Run(ctx context.Context, suiteIDs []string) (*Report, error) {
	selected := make(map[string]bool, len(suiteIDs))
	for _, id := range suiteIDs {
		if !KnownSuite(id) {
			return nil, fmt.Errorf("unknown suite %q", id)
		}
		selected[id] = true
	}

	rep := &Report{Started: time.Now()}
	timer := logging.StartTimer(logging.CategoryValidate, "validation run")
	defer func() { rep.Duration = timer.Stop() }()

	for _, id := range AllSuites() {
		if !selected[id] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		logging.Validate("suite %s: starting", id)
		issues, checked, err := r.suite(id)(ctx)
		if err != nil {
			if errors.Is(err, ErrToolMissing) {
				// Absent tool downgrades the suite to a single warning.
				rep.SkippedSuites = append(rep.SkippedSuites, id)
				rep.Issues = append(rep.Issues, Issue{
					Severity: SeverityWarning,
					Suite:    id,
					Message:  fmt.Sprintf("skipped: %v", err),
				})
				logging.Validate("suite %s: skipped (%v)", id, err)
				continue
			}
			return nil, fmt.Errorf("suite %s: %w", id, err)
		}

		rep.Suites = append(rep.Suites, id)
		rep.Issues = append(rep.Issues, issues...)
		rep.FilesChecked += checked
		logging.Validate("suite %s: %d files, %d issues", id, checked, len(issues))
	}

	return rep, nil
}
