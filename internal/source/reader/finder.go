package reader

import (
	"fmt"
	"path/filepath"
	"sort"
)

// FindLatest returns the lexically newest file in dir matching pattern,
// or "" when nothing matches. Export names embed a sortable timestamp,
// so lexical order is chronological order.
func FindLatest(dir, pattern string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", nil
	}
	sort.Sort(sort.Reverse(sort.StringSlice(matches)))
	return matches[0], nil
}
