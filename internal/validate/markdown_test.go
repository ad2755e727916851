package validate

import (
	"strings"
	"testing"
)

func TestParseMarkdownlintOutput(t *testing.T) {
	out := `
docs/a.md:3 MD001/heading-increment Heading levels should only increment by one level at a time
docs/a.md:10:1 MD013/line-length Line length [Expected: 80; Actual: 132]
unrelated noise
`
	issues := parseMarkdownlintOutput(out)
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(issues))
	}
	if issues[0].Path != "docs/a.md" || issues[0].Line != 3 {
		t.Errorf("first issue = %+v", issues[0])
	}
	if !strings.HasPrefix(issues[1].Message, "MD013") {
		t.Errorf("message = %q", issues[1].Message)
	}
	for _, is := range issues {
		if is.Severity != SeverityError {
			t.Errorf("markdownlint findings are errors, got %s", is.Severity)
		}
	}
}

func TestCheckMarkdownStructure_HeadingDiscipline(t *testing.T) {
	ws := t.TempDir()
	r := newTestRunner(ws)

	path := writeFile(t, ws, "doc.md", "## Starts at two\n\n#### Jumps to four\n")
	issues, err := r.checkMarkdownStructure(path)
	if err != nil {
		t.Fatalf("checkMarkdownStructure: %v", err)
	}

	var startWarn, jumpWarn bool
	for _, is := range issues {
		if strings.Contains(is.Message, "expected H1") {
			startWarn = true
		}
		if strings.Contains(is.Message, "jumps from H2 to H4") {
			jumpWarn = true
		}
		if is.Severity != SeverityWarning {
			t.Errorf("structure findings are warnings, got %s", is.Severity)
		}
	}
	if !startWarn {
		t.Error("missing H1-start warning")
	}
	if !jumpWarn {
		t.Error("missing heading-jump warning")
	}
}

func TestCheckMarkdownStructure_CanonSections(t *testing.T) {
	ws := t.TempDir()
	r := newTestRunner(ws)

	// Declares the rest-api canon but lacks its required sections
	path := writeFile(t, ws, "api.md", `# Payments API

Canon: rest-api

## Overview

Words.

## Endpoints

More words.
`)
	issues, err := r.checkMarkdownStructure(path)
	if err != nil {
		t.Fatalf("checkMarkdownStructure: %v", err)
	}

	missing := map[string]bool{}
	for _, is := range issues {
		if is.Severity == SeverityError && strings.Contains(is.Message, "requires section") {
			missing[is.Message] = true
		}
	}
	// Authentication and Error Handling are absent
	if len(missing) != 2 {
		t.Errorf("expected 2 missing-section errors, got %d: %v", len(missing), issues)
	}
}

func TestCheckMarkdownStructure_ConformingCanonDoc(t *testing.T) {
	ws := t.TempDir()
	r := newTestRunner(ws)

	path := writeFile(t, ws, "api.md", `# Payments API

Canon: rest-api

## Overview

## Authentication

## Endpoints

## Error Handling
`)
	issues, err := r.checkMarkdownStructure(path)
	if err != nil {
		t.Fatalf("checkMarkdownStructure: %v", err)
	}
	for _, is := range issues {
		if is.Severity == SeverityError {
			t.Errorf("conforming doc produced error: %+v", is)
		}
	}
}

func TestCheckMarkdownStructure_UnknownCanon(t *testing.T) {
	ws := t.TempDir()
	r := newTestRunner(ws)

	path := writeFile(t, ws, "doc.md", "# Doc\n\nCanon: made-up\n")
	issues, err := r.checkMarkdownStructure(path)
	if err != nil {
		t.Fatalf("checkMarkdownStructure: %v", err)
	}

	found := false
	for _, is := range issues {
		if is.Severity == SeverityWarning && strings.Contains(is.Message, "unknown canon") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected unknown-canon warning, got %+v", issues)
	}
}

func TestExtractHeadings(t *testing.T) {
	src := []byte("# One\n\ntext\n\n## Two\n\n### Three\n")
	hs, err := extractHeadings(src)
	if err != nil {
		t.Fatalf("extractHeadings: %v", err)
	}
	if len(hs) != 3 {
		t.Fatalf("expected 3 headings, got %d", len(hs))
	}
	if hs[0].level != 1 || hs[0].text != "One" || hs[0].line != 1 {
		t.Errorf("first heading = %+v", hs[0])
	}
	if hs[1].level != 2 || hs[1].line != 5 {
		t.Errorf("second heading = %+v", hs[1])
	}
}
