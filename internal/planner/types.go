package planner

import (
	"path/filepath"
	"sort"
	"strings"
)

// Kind selects which entries a plan covers.
type Kind int

const (
	KindDirs Kind = iota
	KindFiles
)

// String returns the plural noun used in prompts and summaries.
func (k Kind) String() string {
	if k == KindDirs {
		return "directories"
	}
	return "files"
}

// RenamePair is one planned rename. From and To share a parent directory;
// only the basename changes.
type RenamePair struct {
	From  string
	To    string
	IsDir bool
}

// OldName returns the current basename.
func (p RenamePair) OldName() string { return filepath.Base(p.From) }

// NewName returns the normalized basename.
func (p RenamePair) NewName() string { return filepath.Base(p.To) }

// RelDir returns the parent directory relative to root, "." for entries
// directly under root.
func (p RenamePair) RelDir(root string) string {
	rel, err := filepath.Rel(root, filepath.Dir(p.From))
	if err != nil {
		return filepath.Dir(p.From)
	}
	return rel
}

// SkipReason says why the scan passed over an entry.
type SkipReason int

const (
	SkipHidden SkipReason = iota
	SkipExcluded
	SkipUnreadable
)

func (r SkipReason) String() string {
	switch r {
	case SkipHidden:
		return "hidden"
	case SkipUnreadable:
		return "unreadable"
	default:
		return "excluded"
	}
}

// Skipped records an entry the scan ignored. Unreadable entries are always
// reported; the others only in verbose mode.
type Skipped struct {
	Path   string
	IsDir  bool
	Reason SkipReason
}

// Plan is the result of scanning one root for one kind of entry. Pairs are in
// walk order, which sorts siblings by name and parents before children.
// Building a plan never touches the filesystem beyond reading it.
type Plan struct {
	Root    string
	Kind    Kind
	Pairs   []RenamePair
	Skipped []Skipped
}

// Empty reports whether nothing needs renaming.
func (p *Plan) Empty() bool { return len(p.Pairs) == 0 }

// ApplyOrder returns the pairs deepest path first, so renaming a directory
// never invalidates a pending pair beneath it. Ties keep walk order.
func (p *Plan) ApplyOrder() []RenamePair {
	out := make([]RenamePair, len(p.Pairs))
	copy(out, p.Pairs)
	sort.SliceStable(out, func(i, j int) bool {
		return depth(out[i].From) > depth(out[j].From)
	})
	return out
}

func depth(p string) int {
	return strings.Count(filepath.Clean(p), string(filepath.Separator))
}
