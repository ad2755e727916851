// Package report renders validation results for the terminal.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"docsentry/internal/validate"
)

// Semantic colors, shared across commands.
var (
	Success = lipgloss.Color("#8BC34A")
	Warning = lipgloss.Color("#FFC107")
	Danger  = lipgloss.Color("#e53935")
	Muted   = lipgloss.Color("#7a8699")
)

var (
	passStyle  = lipgloss.NewStyle().Foreground(Success).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(Warning)
	errStyle   = lipgloss.NewStyle().Foreground(Danger).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(Muted)
	suiteStyle = lipgloss.NewStyle().Bold(true)
)

// Printer writes styled validation reports.
type Printer struct {
	w     io.Writer
	quiet bool
	color bool
}

// NewPrinter creates a printer. Styling is dropped when color is false or
// NO_COLOR is set.
func NewPrinter(w io.Writer, quiet bool) *Printer {
	color := os.Getenv("NO_COLOR") == ""
	return &Printer{w: w, quiet: quiet, color: color}
}

func (p *Printer) render(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

// PrintReport writes the per-suite findings and the totals line.
func (p *Printer) PrintReport(rep *validate.Report) {
	if !p.quiet {
		for _, suite := range rep.Suites {
			issues := rep.IssuesFor(suite)
			if len(issues) == 0 {
				fmt.Fprintf(p.w, "%s %s\n",
					p.render(passStyle, "PASS"),
					p.render(suiteStyle, suite))
				continue
			}
			fmt.Fprintf(p.w, "%s %s\n",
				p.render(p.suiteVerdictStyle(issues), p.suiteVerdict(issues)),
				p.render(suiteStyle, suite))
			for _, is := range issues {
				p.printIssue(is)
			}
		}
		for _, suite := range rep.SkippedSuites {
			fmt.Fprintf(p.w, "%s %s\n",
				p.render(warnStyle, "SKIP"),
				p.render(suiteStyle, suite))
			for _, is := range rep.IssuesFor(suite) {
				p.printIssue(is)
			}
		}
		fmt.Fprintln(p.w)
	}

	totals := fmt.Sprintf("Checked %d files across %d suites: %d errors, %d warnings",
		rep.FilesChecked, len(rep.Suites), rep.ErrorCount(), rep.WarningCount())
	if rep.Passed() {
		fmt.Fprintf(p.w, "%s (%s)\n", p.render(passStyle, "OK"), totals)
	} else {
		fmt.Fprintf(p.w, "%s (%s)\n", p.render(errStyle, "FAIL"), totals)
	}
}

func (p *Printer) suiteVerdict(issues []validate.Issue) string {
	for _, is := range issues {
		if is.Severity == validate.SeverityError {
			return "FAIL"
		}
	}
	return "WARN"
}

func (p *Printer) suiteVerdictStyle(issues []validate.Issue) lipgloss.Style {
	if p.suiteVerdict(issues) == "FAIL" {
		return errStyle
	}
	return warnStyle
}

func (p *Printer) printIssue(is validate.Issue) {
	var loc string
	switch {
	case is.Path != "" && is.Line > 0:
		loc = fmt.Sprintf("%s:%d: ", is.Path, is.Line)
	case is.Path != "":
		loc = is.Path + ": "
	}

	sev := p.render(warnStyle, "warning")
	if is.Severity == validate.SeverityError {
		sev = p.render(errStyle, "error")
	}
	fmt.Fprintf(p.w, "  %s: %s%s\n", sev, p.render(mutedStyle, loc), strings.TrimSpace(is.Message))
}
