package validate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// rstcheck reports findings as "path:line: (LEVEL/n) message".
var rstIssueRe = regexp.MustCompile(`^(.+?):(\d+): \((INFO|WARNING|ERROR|SEVERE)/\d\) (.*)$`)

// runRST validates reStructuredText sources with rstcheck.
func (r *Runner) runRST(ctx context.Context) ([]Issue, int, error) {
	root := r.absRoot(r.cfg.Roots.Sphinx)
	files, err := collectFiles(root, ".rst")
	if err != nil {
		return nil, 0, err
	}
	if len(files) == 0 {
		return nil, 0, nil
	}

	bin := r.cfg.Tools.RSTCheck
	if !r.tools.Available(bin) {
		return nil, 0, fmt.Errorf("%s: %w", bin, ErrToolMissing)
	}

	var issues []Issue
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		out, runErr := r.tools.Run(ctx, "", bin, path)
		if runErr == nil {
			continue
		}
		parsed := parseRSTOutput(out)
		if len(parsed) == 0 {
			// Tool failed without a parseable finding; surface the raw failure.
			issues = append(issues, Issue{
				Severity: SeverityError,
				Suite:    SuiteRST,
				Path:     path,
				Message:  strings.TrimSpace(firstLines(out, 3)),
			})
			continue
		}
		issues = append(issues, parsed...)
	}

	return issues, len(files), nil
}

func parseRSTOutput(out string) []Issue {
	var issues []Issue
	for _, line := range strings.Split(out, "\n") {
		m := rstIssueRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		lineNo, _ := strconv.Atoi(m[2])
		sev := SeverityError
		if m[3] == "INFO" || m[3] == "WARNING" {
			sev = SeverityWarning
		}
		issues = append(issues, Issue{
			Severity: sev,
			Suite:    SuiteRST,
			Path:     m[1],
			Line:     lineNo,
			Message:  m[4],
		})
	}
	return issues
}

// runSphinx dry-builds the Sphinx tree when a conf.py is present. Warnings
// are promoted to errors (-W) to match the corpus CI policy.
func (r *Runner) runSphinx(ctx context.Context) ([]Issue, int, error) {
	root := r.absRoot(r.cfg.Roots.Sphinx)
	if _, err := os.Stat(filepath.Join(root, "conf.py")); err != nil {
		// No Sphinx project, nothing to build.
		return nil, 0, nil
	}

	bin := r.cfg.Tools.SphinxBuild
	if !r.tools.Available(bin) {
		return nil, 0, fmt.Errorf("%s: %w", bin, ErrToolMissing)
	}

	outDir, err := os.MkdirTemp("", "docsentry-sphinx-*")
	if err != nil {
		return nil, 0, err
	}
	defer os.RemoveAll(outDir)

	out, runErr := r.tools.Run(ctx, "", bin, "-b", "html", "-q", "-W", root, outDir)
	if runErr != nil {
		return []Issue{{
			Severity: SeverityError,
			Suite:    SuiteSphinx,
			Path:     root,
			Message:  "sphinx build failed: " + strings.TrimSpace(firstLines(out, 10)),
		}}, 1, nil
	}

	return nil, 1, nil
}

// firstLines returns at most n lines of s.
func firstLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
