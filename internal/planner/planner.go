package planner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/backmassage/renamer/internal/naming"
)

// Planner scans a directory tree and proposes normalized names. It reads the
// filesystem but never changes it.
type Planner struct {
	norm *naming.Normalizer
	excl *ExclusionSet
}

// New returns a Planner. A nil exclusion set excludes nothing.
func New(norm *naming.Normalizer, excl *ExclusionSet) *Planner {
	if excl == nil {
		excl = NewExclusionSet()
	}
	return &Planner{norm: norm, excl: excl}
}

// Exclusions returns the planner's exclusion set, shared with the caller so
// renames applied between scans can [ExclusionSet.Rebase] it.
func (p *Planner) Exclusions() *ExclusionSet { return p.excl }

// PlanDirs proposes a new name for every visible, non-excluded directory
// below root. Root itself is never renamed.
func (p *Planner) PlanDirs(root string) (*Plan, error) {
	return p.scan(root, KindDirs)
}

// PlanFiles proposes a new name for every visible, non-excluded non-directory
// entry below root: stems are normalized and extensions lower-cased.
func (p *Planner) PlanFiles(root string) (*Plan, error) {
	return p.scan(root, KindFiles)
}

// scan walks root once. Hidden entries (any path component below root that
// starts with ".") and excluded directories are pruned, so nothing beneath
// them is considered. A directory that cannot be read is recorded as
// unreadable and the walk continues with its siblings; only an unreadable
// root fails the scan.
func (p *Planner) scan(root string, kind Kind) (*Plan, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	plan := &Plan{Root: abs, Kind: kind}

	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == abs || d == nil {
				return err
			}
			plan.skip(path, d, SkipUnreadable, kind)
			return skipDir(d)
		}
		if path == abs {
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") {
			plan.skip(path, d, SkipHidden, kind)
			return skipDir(d)
		}
		if p.excl.Excludes(path) {
			plan.skip(path, d, SkipExcluded, kind)
			return skipDir(d)
		}

		if d.IsDir() != (kind == KindDirs) {
			return nil
		}
		var name string
		if d.IsDir() {
			name = p.norm.DirName(d.Name())
		} else {
			name = p.norm.FileName(d.Name())
		}
		if name == d.Name() {
			return nil
		}
		plan.Pairs = append(plan.Pairs, RenamePair{
			From:  path,
			To:    filepath.Join(filepath.Dir(path), name),
			IsDir: d.IsDir(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// skip records a pruned entry of the plan's own kind, so each entry is
// reported once across the directory and file scans.
func (pl *Plan) skip(path string, d fs.DirEntry, reason SkipReason, kind Kind) {
	if d.IsDir() != (kind == KindDirs) {
		return
	}
	pl.Skipped = append(pl.Skipped, Skipped{Path: path, IsDir: d.IsDir(), Reason: reason})
}

func skipDir(d fs.DirEntry) error {
	if d.IsDir() {
		return filepath.SkipDir
	}
	return nil
}
