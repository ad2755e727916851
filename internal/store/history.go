// Package store persists validation run history in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"docsentry/internal/logging"
	"docsentry/internal/validate"
)

// History records validation runs so regressions are visible over time.
type History struct {
	db     *sql.DB
	mu     sync.Mutex
	dbPath string
}

// RunSummary is one row of the runs table.
type RunSummary struct {
	ID       string
	Started  time.Time
	Duration time.Duration
	Suites   []string
	Errors   int
	Warnings int
	Files    int
	Passed   bool
}

// NewHistory opens (or creates) the history database at path.
func NewHistory(path string) (*History, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	h := &History{db: db, dbPath: path}
	if err := h.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logging.Store("history database opened: %s", path)
	return h, nil
}

// initialize creates the required tables.
func (h *History) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at DATETIME NOT NULL,
		duration_ms INTEGER NOT NULL,
		suites TEXT NOT NULL,
		errors INTEGER NOT NULL,
		warnings INTEGER NOT NULL,
		files INTEGER NOT NULL,
		passed INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS issues (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		severity TEXT NOT NULL,
		suite TEXT NOT NULL,
		path TEXT,
		line INTEGER,
		message TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_issues_run ON issues(run_id);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);
	`
	if _, err := h.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// Close closes the database.
func (h *History) Close() error {
	return h.db.Close()
}

// RecordRun stores a report and returns the generated run ID.
func (h *History) RecordRun(rep *validate.Report) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.NewString()

	tx, err := h.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, started_at, duration_ms, suites, errors, warnings, files, passed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		rep.Started.UTC(),
		rep.Duration.Milliseconds(),
		strings.Join(rep.Suites, ","),
		rep.ErrorCount(),
		rep.WarningCount(),
		rep.FilesChecked,
		boolToInt(rep.Passed()),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	for _, is := range rep.Issues {
		_, err = tx.Exec(
			`INSERT INTO issues (run_id, severity, suite, path, line, message)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, string(is.Severity), is.Suite, is.Path, is.Line, is.Message,
		)
		if err != nil {
			return "", fmt.Errorf("failed to insert issue: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	logging.StoreDebug("recorded run %s (%d issues)", id, len(rep.Issues))
	return id, nil
}

// RecentRuns returns the latest n runs, newest first.
func (h *History) RecentRuns(n int) ([]RunSummary, error) {
	rows, err := h.db.Query(
		`SELECT id, started_at, duration_ms, suites, errors, warnings, files, passed
		 FROM runs ORDER BY started_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		var durMs int64
		var suites string
		var passed int
		if err := rows.Scan(&r.ID, &r.Started, &durMs, &suites, &r.Errors, &r.Warnings, &r.Files, &passed); err != nil {
			return nil, err
		}
		r.Duration = time.Duration(durMs) * time.Millisecond
		if suites != "" {
			r.Suites = strings.Split(suites, ",")
		}
		r.Passed = passed != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

// RunIssues returns the stored issues for one run. runID may be a unique
// prefix of the full ID, matching what the run listing shows.
func (h *History) RunIssues(runID string) ([]validate.Issue, error) {
	rows, err := h.db.Query(
		`SELECT severity, suite, path, line, message FROM issues WHERE run_id LIKE ? || '%'`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []validate.Issue
	for rows.Next() {
		var is validate.Issue
		var sev string
		if err := rows.Scan(&sev, &is.Suite, &is.Path, &is.Line, &is.Message); err != nil {
			return nil, err
		}
		is.Severity = validate.Severity(sev)
		out = append(out, is)
	}
	return out, rows.Err()
}

// Prune deletes all but the newest keep runs.
func (h *History) Prune(keep int) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if keep <= 0 {
		return nil
	}

	_, err := h.db.Exec(`
		DELETE FROM issues WHERE run_id NOT IN (
			SELECT id FROM runs ORDER BY started_at DESC LIMIT ?
		)`, keep)
	if err != nil {
		return err
	}
	_, err = h.db.Exec(`
		DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY started_at DESC LIMIT ?
		)`, keep)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
