package validate

import (
	"context"
	"strings"
	"testing"
)

func TestRun_EmptyTreePasses(t *testing.T) {
	t.Setenv("PATH", t.TempDir()) // no tools installed anywhere

	r := newTestRunner(t.TempDir())
	rep, err := r.Run(context.Background(), AllSuites())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if rep.ErrorCount() != 0 {
		t.Errorf("empty tree produced %d errors", rep.ErrorCount())
	}
	if rep.WarningCount() != 0 {
		t.Errorf("empty tree produced %d warnings (missing tools must not warn with nothing to check)", rep.WarningCount())
	}
	if rep.ExitCode() != 0 {
		t.Errorf("exit code = %d, want 0", rep.ExitCode())
	}
}

func TestRun_MissingToolIsWarningNotError(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	ws := t.TempDir()
	writeFile(t, ws, "docs/source/a.rst", "Title\n=====\n\nClean text.\n")

	r := newTestRunner(ws)
	rep, err := r.Run(context.Background(), []string{SuiteRST})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if rep.ErrorCount() != 0 {
		t.Errorf("missing tool produced errors: %+v", rep.Issues)
	}
	if rep.WarningCount() != 1 {
		t.Fatalf("expected exactly 1 warning, got %d", rep.WarningCount())
	}
	if len(rep.SkippedSuites) != 1 || rep.SkippedSuites[0] != SuiteRST {
		t.Errorf("SkippedSuites = %v", rep.SkippedSuites)
	}
	if rep.ExitCode() != 0 {
		t.Errorf("exit code = %d, want 0", rep.ExitCode())
	}
	if !strings.Contains(rep.Issues[0].Message, "skipped") {
		t.Errorf("warning message = %q", rep.Issues[0].Message)
	}
}

// A docs/source/a.rst containing an em dash must fail the full run even when
// every external tool is absent.
func TestRun_EmDashFailsFullRun(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	ws := t.TempDir()
	writeFile(t, ws, "docs/source/a.rst", "Test — example\n")

	r := newTestRunner(ws)
	rep, err := r.Run(context.Background(), AllSuites())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if rep.ErrorCount() < 1 {
		t.Errorf("expected at least 1 error, got %d", rep.ErrorCount())
	}
	if rep.ExitCode() != 1 {
		t.Errorf("exit code = %d, want 1", rep.ExitCode())
	}

	found := false
	for _, is := range rep.Issues {
		if is.Suite == SuiteFormat && strings.Contains(is.Message, "em dash") {
			found = true
		}
	}
	if !found {
		t.Errorf("no em dash error in %+v", rep.Issues)
	}
}

func TestRun_RSTFindingsParsed(t *testing.T) {
	bindir := t.TempDir()
	installStub(t, bindir, "rstcheck",
		`echo "$1:2: (ERROR/3) Title underline too short." >&2`+"\nexit 1\n")
	t.Setenv("PATH", bindir)

	ws := t.TempDir()
	writeFile(t, ws, "docs/source/a.rst", "Title\n==\n\nText.\n")

	r := newTestRunner(ws)
	rep, err := r.Run(context.Background(), []string{SuiteRST})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if rep.ErrorCount() != 1 {
		t.Fatalf("expected 1 error, got %d: %+v", rep.ErrorCount(), rep.Issues)
	}
	is := rep.Issues[0]
	if is.Line != 2 || !strings.Contains(is.Message, "underline too short") {
		t.Errorf("issue = %+v", is)
	}
	if rep.FilesChecked != 1 {
		t.Errorf("FilesChecked = %d", rep.FilesChecked)
	}
}

func TestRun_PassingToolsCleanRun(t *testing.T) {
	bindir := t.TempDir()
	installStub(t, bindir, "rstcheck", "exit 0\n")
	installStub(t, bindir, "protoc", "exit 0\n")
	installStub(t, bindir, "swagger-cli", "exit 0\n")
	t.Setenv("PATH", bindir)

	ws := t.TempDir()
	writeFile(t, ws, "docs/source/a.rst", "Title\n=====\n\nText.\n")
	writeFile(t, ws, "proto/svc.proto", "syntax = \"proto3\";\n")
	writeFile(t, ws, "api-specs/svc.yaml", "openapi: 3.0.0\n")

	r := newTestRunner(ws)
	rep, err := r.Run(context.Background(), []string{SuiteRST, SuiteProto, SuiteOpenAPI, SuiteFormat})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !rep.Passed() {
		t.Errorf("expected pass, issues: %+v", rep.Issues)
	}
	if rep.FilesChecked != 6 { // 1 rst + 1 proto + 1 yaml + 3 scanned by format
		t.Errorf("FilesChecked = %d, want 6", rep.FilesChecked)
	}
	if len(rep.SkippedSuites) != 0 {
		t.Errorf("SkippedSuites = %v", rep.SkippedSuites)
	}
}

func TestRun_UnknownSuite(t *testing.T) {
	r := newTestRunner(t.TempDir())
	if _, err := r.Run(context.Background(), []string{"nonsense"}); err == nil {
		t.Error("expected error for unknown suite")
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ws := t.TempDir()
	writeFile(t, ws, "a.md", "# Doc\n")

	r := newTestRunner(ws)
	if _, err := r.Run(ctx, AllSuites()); err == nil {
		t.Error("expected error for cancelled context")
	}
}
