package main

import (
	"path/filepath"
	"testing"

	"docsentry/internal/config"
	"docsentry/internal/validate"
)

func resetSuiteFlags() {
	flagRST = false
	flagSphinx = false
	flagOpenAPI = false
	flagGraphQL = false
	flagProto = false
	flagMarkdown = false
	flagFormat = false
	flagPreCommit = false
	flagAll = false
}

func TestSelectedSuitesDefaultsToAll(t *testing.T) {
	resetSuiteFlags()

	got := selectedSuites()
	want := validate.AllSuites()
	if len(got) != len(want) {
		t.Fatalf("default suites = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("suite[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSelectedSuitesSingleFlags(t *testing.T) {
	cases := []struct {
		name string
		set  func()
		want string
	}{
		{"rest", func() { flagRST = true }, validate.SuiteRST},
		{"sphinx", func() { flagSphinx = true }, validate.SuiteSphinx},
		{"openapi", func() { flagOpenAPI = true }, validate.SuiteOpenAPI},
		{"graphql", func() { flagGraphQL = true }, validate.SuiteGraphQL},
		{"proto", func() { flagProto = true }, validate.SuiteProto},
		{"markdown", func() { flagMarkdown = true }, validate.SuiteMarkdown},
		{"format", func() { flagFormat = true }, validate.SuiteFormat},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resetSuiteFlags()
			tc.set()
			got := selectedSuites()
			if len(got) != 1 || got[0] != tc.want {
				t.Errorf("selectedSuites() = %v, want [%s]", got, tc.want)
			}
		})
	}
}

func TestSelectedSuitesCombination(t *testing.T) {
	resetSuiteFlags()
	flagMarkdown = true
	flagProto = true

	got := selectedSuites()
	if len(got) != 2 {
		t.Fatalf("selectedSuites() = %v, want two suites", got)
	}
}

func TestSelectedSuitesAllWinsOverIndividual(t *testing.T) {
	resetSuiteFlags()
	flagAll = true
	flagMarkdown = true

	got := selectedSuites()
	if len(got) != len(validate.AllSuites()) {
		t.Errorf("--all should select every suite, got %v", got)
	}
}

func TestPreCommitIsStrictSubsetOfAll(t *testing.T) {
	resetSuiteFlags()
	flagPreCommit = true

	pre := selectedSuites()
	all := validate.AllSuites()

	if len(pre) >= len(all) {
		t.Fatalf("pre-commit runs %d suites, all runs %d; want strictly fewer", len(pre), len(all))
	}
	allSet := make(map[string]bool, len(all))
	for _, s := range all {
		allSet[s] = true
	}
	for _, s := range pre {
		if !allSet[s] {
			t.Errorf("pre-commit suite %q not part of the full set", s)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"validate", "canon", "classify", "history", "watch"}
	for _, name := range want {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestHistoryPathResolvesAgainstWorkspace(t *testing.T) {
	oldWorkspace := workspace
	defer func() { workspace = oldWorkspace }()
	workspace = t.TempDir()

	cfg := config.DefaultConfig()
	got := historyPath(cfg)
	want := filepath.Join(workspace, cfg.History.DatabasePath)
	if got != want {
		t.Errorf("historyPath() = %q, want %q", got, want)
	}

	cfg.History.DatabasePath = "/var/lib/docsentry/history.db"
	if got := historyPath(cfg); got != cfg.History.DatabasePath {
		t.Errorf("absolute path should pass through, got %q", got)
	}
}

func TestWatchRootsDeduplicates(t *testing.T) {
	oldWorkspace := workspace
	defer func() { workspace = oldWorkspace }()
	workspace = t.TempDir()

	cfg := config.DefaultConfig()
	cfg.Roots.Markdown = "."
	cfg.Roots.GraphQL = "."

	roots := watchRoots(cfg)
	seen := make(map[string]bool)
	for _, r := range roots {
		if seen[r] {
			t.Errorf("root %q listed twice", r)
		}
		seen[r] = true
		if !filepath.IsAbs(r) {
			t.Errorf("root %q is not absolute", r)
		}
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("shortID = %q, want %q", got, "01234567")
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("short input should pass through, got %q", got)
	}
}
