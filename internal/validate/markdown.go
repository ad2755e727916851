package validate

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"docsentry/internal/logging"
)

// markdownlint findings: "path:line[:col] MDxxx/alias description".
var mdlintIssueRe = regexp.MustCompile(`^(.+?):(\d+)(?::\d+)?\s+(MD\d+\S*)\s+(.*)$`)

// canonMarkerRe finds the canon declaration a document carries in its
// header, e.g. "Canon: rest-api".
var canonMarkerRe = regexp.MustCompile(`(?mi)^canon:\s*([a-z0-9-]+)\s*$`)

// runMarkdown lints Markdown files with markdownlint and then applies the
// native structure checks (heading discipline, canon required sections).
// Unlike the purely external suites, a missing markdownlint only downgrades
// the lint half; the structure checks always run.
func (r *Runner) runMarkdown(ctx context.Context) ([]Issue, int, error) {
	root := r.absRoot(r.cfg.Roots.Markdown)
	files, err := collectFiles(root, ".md")
	if err != nil {
		return nil, 0, err
	}
	if len(files) == 0 {
		return nil, 0, nil
	}

	var issues []Issue

	bin := r.cfg.Tools.Markdownlint
	if r.tools.Available(bin) {
		out, runErr := r.tools.Run(ctx, "", bin, files...)
		if runErr != nil {
			parsed := parseMarkdownlintOutput(out)
			if len(parsed) == 0 {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Suite:    SuiteMarkdown,
					Message:  strings.TrimSpace(firstLines(out, 5)),
				})
			}
			issues = append(issues, parsed...)
		}
	} else {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Suite:    SuiteMarkdown,
			Message:  fmt.Sprintf("%s not found on PATH, running structure checks only", bin),
		})
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		structural, err := r.checkMarkdownStructure(path)
		if err != nil {
			return nil, 0, err
		}
		issues = append(issues, structural...)
	}

	logging.ValidateDebug("markdown: %d files, %d issues", len(files), len(issues))
	return issues, len(files), nil
}

func parseMarkdownlintOutput(out string) []Issue {
	var issues []Issue
	for _, line := range strings.Split(out, "\n") {
		m := mdlintIssueRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		lineNo, _ := strconv.Atoi(m[2])
		issues = append(issues, Issue{
			Severity: SeverityError,
			Suite:    SuiteMarkdown,
			Path:     m[1],
			Line:     lineNo,
			Message:  m[3] + " " + m[4],
		})
	}
	return issues
}

// checkMarkdownStructure applies the native checks: the document must open
// with a single H1, heading levels may only step down by one, and a document
// that declares a canon must contain that canon's required sections.
func (r *Runner) checkMarkdownStructure(path string) ([]Issue, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	headings, err := extractHeadings(source)
	if err != nil {
		return nil, err
	}

	var issues []Issue

	if len(headings) > 0 && headings[0].level != 1 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Suite:    SuiteMarkdown,
			Path:     path,
			Line:     headings[0].line,
			Message:  fmt.Sprintf("document starts with H%d, expected H1", headings[0].level),
		})
	}
	for i := 1; i < len(headings); i++ {
		if headings[i].level > headings[i-1].level+1 {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Suite:    SuiteMarkdown,
				Path:     path,
				Line:     headings[i].line,
				Message:  fmt.Sprintf("heading level jumps from H%d to H%d", headings[i-1].level, headings[i].level),
			})
		}
	}

	if m := canonMarkerRe.FindSubmatch(source); m != nil {
		id := string(m[1])
		c, ok := r.canons.Get(id)
		if !ok {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Suite:    SuiteMarkdown,
				Path:     path,
				Message:  fmt.Sprintf("declares unknown canon %q", id),
			})
		} else {
			have := make(map[string]bool, len(headings))
			for _, h := range headings {
				have[strings.ToLower(h.text)] = true
			}
			for _, section := range c.RequiredSections {
				if !have[strings.ToLower(section)] {
					issues = append(issues, Issue{
						Severity: SeverityError,
						Suite:    SuiteMarkdown,
						Path:     path,
						Message:  fmt.Sprintf("canon %s requires section %q", c.ID, section),
					})
				}
			}
		}
	}

	return issues, nil
}

type heading struct {
	level int
	line  int
	text  string
}

// extractHeadings parses the document with goldmark and returns its heading
// outline in order.
func extractHeadings(source []byte) ([]heading, error) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var headings []heading
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		line := 0
		if h.Lines().Len() > 0 {
			seg := h.Lines().At(0)
			line = lineOfOffset(source, seg.Start)
		}
		headings = append(headings, heading{
			level: h.Level,
			line:  line,
			text:  string(h.Text(source)),
		})
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, err
	}
	return headings, nil
}

func lineOfOffset(source []byte, offset int) int {
	line := 1
	for i := 0; i < offset && i < len(source); i++ {
		if source[i] == '\n' {
			line++
		}
	}
	return line
}
