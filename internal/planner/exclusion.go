package planner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ExclusionSet holds the user's excluded files and directories as absolute
// paths. A directory excludes itself and everything beneath it; a file
// excludes only itself. Paths that did not exist when the set was built are
// dropped and reported by [ExclusionSet.Missing].
type ExclusionSet struct {
	dirs    []string
	files   map[string]bool
	missing []string
}

// NewExclusionSet expands "~", makes each path absolute, resolves symlinks in
// its parent directories and sorts it into directories and files using
// os.Stat.
func NewExclusionSet(paths ...string) *ExclusionSet {
	s := &ExclusionSet{files: make(map[string]bool)}
	for _, raw := range paths {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		p, err := absPath(raw)
		if err != nil {
			s.missing = append(s.missing, raw)
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			s.missing = append(s.missing, raw)
			continue
		}
		// Roots are scanned symlink-resolved, so exclusions must be too. The
		// last component is kept as is: excluding a symlink excludes the link.
		if parent, err := filepath.EvalSymlinks(filepath.Dir(p)); err == nil {
			p = filepath.Join(parent, filepath.Base(p))
		}
		if info.IsDir() {
			s.dirs = append(s.dirs, p)
		} else {
			s.files[p] = true
		}
	}
	sort.Strings(s.dirs)
	return s
}

// Excludes reports whether path is an excluded file, an excluded directory or
// lies beneath one. Matching is per path component: excluding "/a/b" does not
// exclude "/a/bc".
func (s *ExclusionSet) Excludes(path string) bool {
	if s == nil {
		return false
	}
	path = filepath.Clean(path)
	if s.files[path] {
		return true
	}
	for _, d := range s.dirs {
		if isWithin(path, d) {
			return true
		}
	}
	return false
}

// Rebase rewrites every exclusion at or beneath from so it sits beneath to
// instead. Call it after renaming a directory so exclusions follow their
// renamed ancestor.
func (s *ExclusionSet) Rebase(from, to string) {
	if s == nil {
		return
	}
	from, to = filepath.Clean(from), filepath.Clean(to)
	for i, d := range s.dirs {
		if isWithin(d, from) {
			s.dirs[i] = to + strings.TrimPrefix(d, from)
		}
	}
	for f := range s.files {
		if isWithin(f, from) {
			delete(s.files, f)
			s.files[to+strings.TrimPrefix(f, from)] = true
		}
	}
	sort.Strings(s.dirs)
}

// Dirs returns the excluded directories, sorted.
func (s *ExclusionSet) Dirs() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.dirs...)
}

// Files returns the excluded files, sorted.
func (s *ExclusionSet) Files() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.files))
	for f := range s.files {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Missing returns the inputs that did not name an existing path.
func (s *ExclusionSet) Missing() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.missing...)
}

// isWithin reports whether path equals dir or is nested beneath it.
func isWithin(path, dir string) bool {
	if path == dir {
		return true
	}
	prefix := dir
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}

// absPath expands a leading "~" and returns the cleaned absolute path.
func absPath(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(home, p[1:])
	}
	return filepath.Abs(p)
}
