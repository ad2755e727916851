package validate

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"docsentry/internal/logging"
)

// forbiddenRange names a span of runes banned from the documentation corpus.
type forbiddenRange struct {
	lo, hi rune
	name   string
}

// The corpus writing standard bans decorative characters outright: emoji in
// any of the common Unicode blocks, variation selectors, and the em dash
// (U+2014), which the canons replace with plain punctuation.
var forbiddenRanges = []forbiddenRange{
	{0x2014, 0x2014, "em dash"},
	{0x2190, 0x21FF, "arrow symbol"},
	{0x2600, 0x26FF, "emoji"},
	{0x2700, 0x27BF, "emoji"},
	{0xFE00, 0xFE0F, "variation selector"},
	{0x1F300, 0x1F5FF, "emoji"},
	{0x1F600, 0x1F64F, "emoji"},
	{0x1F680, 0x1F6FF, "emoji"},
	{0x1F900, 0x1F9FF, "emoji"},
	{0x1FA70, 0x1FAFF, "emoji"},
}

// formatExtensions are the documentation file types the format suite scans.
var formatExtensions = []string{".md", ".rst", ".yaml", ".yml", ".json", ".graphql", ".proto", ".txt"}

// formatScanConcurrency bounds the file-scanning worker pool.
const formatScanConcurrency = 20

func classifyRune(r rune) (string, bool) {
	for _, fr := range forbiddenRanges {
		if r >= fr.lo && r <= fr.hi {
			return fr.name, true
		}
	}
	return "", false
}

// runFormat scans the documentation tree for forbidden runes. It is the one
// suite with no external tool, so it can never be skipped.
func (r *Runner) runFormat(ctx context.Context) ([]Issue, int, error) {
	files, err := collectFiles(r.absRoot(r.cfg.Roots.Markdown), formatExtensions...)
	if err != nil {
		return nil, 0, err
	}
	if len(files) == 0 {
		return nil, 0, nil
	}

	var mu sync.Mutex
	var issues []Issue

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(formatScanConcurrency)

	for _, path := range files {
		path := path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			found, err := scanForbidden(path)
			if err != nil {
				return err
			}
			if len(found) > 0 {
				mu.Lock()
				issues = append(issues, found...)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	// Worker pool finishes in arbitrary order; reports should not.
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Path != issues[j].Path {
			return issues[i].Path < issues[j].Path
		}
		return issues[i].Line < issues[j].Line
	})

	logging.ValidateDebug("format: scanned %d files, %d issues", len(files), len(issues))
	return issues, len(files), nil
}

// scanForbidden reads one file and reports every line containing a banned
// rune. One issue per offending line keeps reports readable when a file is
// pasted full of emoji.
func scanForbidden(path string) ([]Issue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var issues []Issue
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		for _, ch := range scanner.Text() {
			if name, bad := classifyRune(ch); bad {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Suite:    SuiteFormat,
					Path:     path,
					Line:     lineNo,
					Message:  fmt.Sprintf("forbidden character %s (U+%04X)", name, ch),
				})
				break
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return issues, nil
}
