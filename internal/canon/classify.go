package canon

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"docsentry/internal/logging"
)

// accessMarkerRe matches the classification marker documents carry near the
// top, e.g. "Access-Level: Restricted" or "Access-Level: 3".
var accessMarkerRe = regexp.MustCompile(`(?i)^access-level:\s*(.+?)\s*$`)

// markerScanWindow bounds how far into a document the marker is looked for.
const markerScanWindow = 40

// Classification is the access tier assigned to one document.
type Classification struct {
	Path     string
	Level    AccessLevel
	Explicit bool // false when the default tier applied
}

// InvalidMarker records a document whose marker could not be parsed.
type InvalidMarker struct {
	Path  string
	Value string
}

// TreeSummary aggregates the classification of a documentation tree.
type TreeSummary struct {
	Files   []Classification
	Counts  map[AccessLevel]int
	Invalid []InvalidMarker
}

// ClassifyFile reads the marker from a single document. Documents without a
// marker default to Internal.
func ClassifyFile(path string) (Classification, *InvalidMarker, error) {
	f, err := os.Open(path)
	if err != nil {
		return Classification{}, nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for i := 0; i < markerScanWindow && scanner.Scan(); i++ {
		m := accessMarkerRe.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if m == nil {
			continue
		}
		level, err := ParseAccessLevel(m[1])
		if err != nil {
			return Classification{Path: path, Level: DefaultAccessLevel},
				&InvalidMarker{Path: path, Value: m[1]}, nil
		}
		return Classification{Path: path, Level: level, Explicit: true}, nil, nil
	}
	if err := scanner.Err(); err != nil {
		return Classification{}, nil, err
	}

	return Classification{Path: path, Level: DefaultAccessLevel}, nil, nil
}

// ClassifyTree classifies every Markdown document under root.
func ClassifyTree(root string) (*TreeSummary, error) {
	summary := &TreeSummary{Counts: make(map[AccessLevel]int)}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || name == "node_modules" || name == "vendor") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		cls, invalid, err := ClassifyFile(path)
		if err != nil {
			return err
		}
		if invalid != nil {
			summary.Invalid = append(summary.Invalid, *invalid)
		}
		summary.Files = append(summary.Files, cls)
		summary.Counts[cls.Level]++
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Canon("classified %d documents under %s (%d invalid markers)",
		len(summary.Files), root, len(summary.Invalid))
	return summary, nil
}
