package validate

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Hidden directories that are still worth scanning. Everything else starting
// with a dot is skipped, as are vendored trees.
var allowedHidden = map[string]bool{
	".github": true,
}

var skippedDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"_build":       true,
}

// collectFiles walks root and returns files matching the given extensions
// (lowercase, with dot). A missing root is a silent skip: it returns nil.
func collectFiles(root string, exts ...string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}

	extSet := make(map[string]bool, len(exts))
	for _, e := range exts {
		extSet[e] = true
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(name, ".") && !allowedHidden[name] {
				return filepath.SkipDir
			}
			if skippedDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}
		if extSet[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
