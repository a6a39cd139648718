package lint

import (
	"fmt"
	"path/filepath"
	"slices"
)

// Discover returns the files in dir matching pattern, minus the base names in
// exclude, sorted.
func Discover(dir, pattern string, exclude []string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("failed to list data files: %w", err)
	}

	files := matches[:0]
	for _, m := range matches {
		if slices.Contains(exclude, filepath.Base(m)) {
			continue
		}
		files = append(files, m)
	}

	slices.Sort(files)
	return files, nil
}
