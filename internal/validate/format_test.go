package validate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"docsentry/internal/config"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func newTestRunner(ws string) *Runner {
	return NewRunner(ws, config.DefaultConfig())
}

func TestScanForbidden_EmDash(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.rst", "clean line\nTest — example\n")

	issues, err := scanForbidden(path)
	if err != nil {
		t.Fatalf("scanForbidden: %v", err)
	}
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}
	is := issues[0]
	if is.Severity != SeverityError {
		t.Errorf("severity = %s", is.Severity)
	}
	if is.Line != 2 {
		t.Errorf("line = %d, want 2", is.Line)
	}
	if is.Suite != SuiteFormat {
		t.Errorf("suite = %s", is.Suite)
	}
}

func TestScanForbidden_Emoji(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "b.md", "# Title\n\nShip it \U0001F680\n")

	issues, err := scanForbidden(path)
	if err != nil {
		t.Fatalf("scanForbidden: %v", err)
	}
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}
	if issues[0].Line != 3 {
		t.Errorf("line = %d, want 3", issues[0].Line)
	}
}

func TestScanForbidden_OneIssuePerLine(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "c.md", "— and \U0001F600 on one line\n")

	issues, err := scanForbidden(path)
	if err != nil {
		t.Fatalf("scanForbidden: %v", err)
	}
	if len(issues) != 1 {
		t.Errorf("expected 1 issue per offending line, got %d", len(issues))
	}
}

func TestScanForbidden_CleanFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "d.md", "# Clean\n\nHyphen - and double dash -- are fine.\n")

	issues, err := scanForbidden(path)
	if err != nil {
		t.Fatalf("scanForbidden: %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("expected no issues, got %+v", issues)
	}
}

func TestRunFormat_SortsByPathAndLine(t *testing.T) {
	ws := t.TempDir()
	writeFile(t, ws, "z.md", "—\n")
	writeFile(t, ws, "a.md", "ok\n—\n—\n")

	r := newTestRunner(ws)
	issues, checked, err := r.runFormat(context.Background())
	if err != nil {
		t.Fatalf("runFormat: %v", err)
	}
	if checked != 2 {
		t.Errorf("checked = %d, want 2", checked)
	}
	if len(issues) != 3 {
		t.Fatalf("expected 3 issues, got %d", len(issues))
	}
	if filepath.Base(issues[0].Path) != "a.md" || issues[0].Line != 2 {
		t.Errorf("issues not sorted: first is %s:%d", issues[0].Path, issues[0].Line)
	}
	if filepath.Base(issues[2].Path) != "z.md" {
		t.Errorf("issues not sorted: last is %s", issues[2].Path)
	}
}

func TestRunFormat_EmptyTree(t *testing.T) {
	r := newTestRunner(t.TempDir())
	issues, checked, err := r.runFormat(context.Background())
	if err != nil {
		t.Fatalf("runFormat: %v", err)
	}
	if len(issues) != 0 || checked != 0 {
		t.Errorf("empty tree: issues=%d checked=%d", len(issues), checked)
	}
}
