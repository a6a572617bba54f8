package fsops

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PruneEmptied removes the directories that moving the files in moved out of
// root left empty: each file's parent and its ancestors up to root, root
// included. A directory is removed only once it has no entries, so
// directories that were empty before the move, and any directory still
// holding a file, are kept. It returns the removed paths, deepest first.
func PruneEmptied(root string, moved []string) ([]string, error) {
	root = filepath.Clean(root)
	seen := make(map[string]bool)
	var dirs []string
	for _, p := range moved {
		for d := filepath.Dir(filepath.Clean(p)); within(root, d); d = filepath.Dir(d) {
			if seen[d] {
				break
			}
			seen[d] = true
			dirs = append(dirs, d)
			if d == root {
				break
			}
		}
	}

	sort.Slice(dirs, func(i, j int) bool {
		di, dj := depth(dirs[i]), depth(dirs[j])
		if di != dj {
			return di > dj
		}
		return dirs[i] > dirs[j]
	})

	var removed []string
	for _, d := range dirs {
		entries, err := os.ReadDir(d)
		if err != nil || len(entries) > 0 {
			continue
		}
		if err := os.Remove(d); err != nil {
			return removed, err
		}
		removed = append(removed, d)
	}
	return removed, nil
}

// within reports whether p is root or lies below it.
func within(root, p string) bool {
	if p == root {
		return true
	}
	rel, err := filepath.Rel(root, p)
	return err == nil && rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func depth(p string) int {
	return strings.Count(filepath.Clean(p), string(filepath.Separator))
}
