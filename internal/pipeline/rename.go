package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/backmassage/renamer/internal/check"
	"github.com/backmassage/renamer/internal/display"
	"github.com/backmassage/renamer/internal/fsops"
	"github.com/backmassage/renamer/internal/merge"
	"github.com/backmassage/renamer/internal/naming"
	"github.com/backmassage/renamer/internal/planner"
	"github.com/backmassage/renamer/internal/report"
	"github.com/backmassage/renamer/internal/term"
)

func (r *runner) runRename() {
	excl := planner.NewExclusionSet(r.cfg.Excludes...)
	r.logExclusions(excl)

	roots, failed := check.Roots(r.cfg.Roots, r.log)
	r.stats.Failed += failed
	r.stats.Roots = len(roots)

	pl := planner.New(naming.NewNormalizer(time.Now()), excl)
	for _, root := range roots {
		if r.ctx.Err() != nil {
			return
		}
		r.renameRoot(pl, root)
	}
}

// renameRoot renames the directories below root, then re-scans and renames
// the files.
func (r *runner) renameRoot(pl *planner.Planner, root string) {
	dirs, err := pl.PlanDirs(root)
	if err != nil {
		r.scanFailed(root, err)
		return
	}
	r.logSkipped(dirs)
	r.applyBatch(pl, dirs)
	if r.ctx.Err() != nil {
		return
	}

	files, err := pl.PlanFiles(root)
	if err != nil {
		r.scanFailed(root, err)
		return
	}
	r.logSkipped(files)
	r.applyBatch(pl, files)

	if files.Empty() {
		r.log.Success("%s: All files already have correct names.", display.RelativeToHome(root))
	}
}

func (r *runner) scanFailed(root string, err error) {
	r.log.Error("Cannot scan %s: %v", root, err)
	r.rep.AddFailure(root, err)
	r.stats.Failed++
}

// applyBatch prints every pair, asks once for the whole batch and applies
// it deepest path first. A dry run stops after printing.
func (r *runner) applyBatch(pl *planner.Planner, plan *planner.Plan) {
	if plan.Empty() {
		return
	}
	dry := r.cfg.DryRun
	for _, p := range plan.Pairs {
		rel := p.RelDir(plan.Root)
		r.log.Echo(dry, "from: %s/%s", rel, p.OldName())
		r.log.Echo(dry, "  to: %s/%s", rel, term.Paint(term.NewName, p.NewName()))
	}
	r.stats.Planned += len(plan.Pairs)

	if dry {
		for _, p := range plan.Pairs {
			r.recordRename(p, p.To, report.StatusPlanned, "")
		}
		return
	}

	pretty := display.RelativeToHome(plan.Root)
	if !r.cfg.ConfirmAll && !r.confirm.Confirm(fmt.Sprintf("%s: Rename these %s?", pretty, plan.Kind)) {
		r.log.Warn("%s: %s left unchanged", pretty, capitalize(plan.Kind.String()))
		r.stats.Skipped += len(plan.Pairs)
		for _, p := range plan.Pairs {
			r.recordRename(p, p.To, report.StatusSkipped, "declined")
		}
		return
	}

	failed := r.stats.Failed
	for _, p := range plan.ApplyOrder() {
		if r.ctx.Err() != nil {
			return
		}
		r.applyPair(pl, p)
	}
	if r.stats.Failed == failed {
		r.log.Success("%s: %s renamed successfully.", pretty, capitalize(plan.Kind.String()))
	} else {
		r.log.Warn("%s: some %s could not be renamed", pretty, plan.Kind)
	}
}

// applyPair renames one entry. An existing directory in the way of a
// directory is merged into; any other occupant keeps its name and the entry
// gets the next free copy name instead.
func (r *runner) applyPair(pl *planner.Planner, p planner.RenamePair) {
	err := fsops.Move(p.From, p.To)
	switch {
	case err == nil:
		r.renamed(pl, p, p.To, "")

	case p.IsDir && errors.Is(err, fsops.ErrDestinationIsDir):
		r.log.Warn("%s already exists, merging %s into it", p.To, p.OldName())
		r.mergeFallback(pl, p)

	case fsops.IsCollision(err):
		dest := r.alloc.Resolve(p.To)
		if err := fsops.Move(p.From, dest); err != nil {
			r.renameFailed(p, err)
			return
		}
		r.log.Warn("%s already exists, renamed %s to %s", p.To, p.OldName(), filepath.Base(dest))
		r.renamed(pl, p, dest, "copy name")

	default:
		r.renameFailed(p, err)
	}
}

// mergeFallback moves the contents of p.From into the existing p.To and
// removes the directories the move left empty.
func (r *runner) mergeFallback(pl *planner.Planner, p planner.RenamePair) {
	eng := merge.New(r.log, merge.Options{
		Verbose:    r.cfg.Verbose,
		Ignore:     r.mergeIgnore(),
		PruneEmpty: true,
		Allocator:  r.alloc,
	})
	res := eng.Merge(r.ctx, p.To, p.From)
	r.recordMerge(res)
	if !res.OK() {
		r.recordRename(p, p.To, report.StatusFailed, "merge incomplete")
		return
	}
	r.renamed(pl, p, p.To, "merged")
}

func (r *runner) renamed(pl *planner.Planner, p planner.RenamePair, dest, note string) {
	r.stats.Renamed++
	if p.IsDir {
		pl.Exclusions().Rebase(p.From, dest)
	}
	r.recordRename(p, dest, report.StatusDone, note)
}

func (r *runner) renameFailed(p planner.RenamePair, err error) {
	r.log.Error("Cannot rename %s: %v", p.From, err)
	r.stats.Failed++
	r.recordRename(p, p.To, report.StatusFailed, err.Error())
}

func (r *runner) recordRename(p planner.RenamePair, dest, status, note string) {
	r.rep.AddRename(report.Rename{From: p.From, To: dest, Dir: p.IsDir, Status: status, Note: note})
}

// --- Logging helpers ---

func (r *runner) logExclusions(excl *planner.ExclusionSet) {
	if !r.cfg.Verbose {
		return
	}
	if dirs := excl.Dirs(); len(dirs) > 0 {
		r.log.Debug(true, "Excluding directories: %s", strings.Join(prettyPaths(dirs), ", "))
	}
	if files := excl.Files(); len(files) > 0 {
		r.log.Debug(true, "Excluding files: %s", strings.Join(prettyPaths(files), ", "))
	}
	for _, m := range excl.Missing() {
		r.log.Debug(true, "Exclusion not found, ignored: %s", m)
	}
}

func (r *runner) logSkipped(plan *planner.Plan) {
	for _, s := range plan.Skipped {
		path := display.RelativeToHome(s.Path)
		switch {
		case s.Reason == planner.SkipUnreadable:
			r.log.Warn("Cannot read %s, skipped", path)
		case s.Reason == planner.SkipHidden:
			r.log.Debug(r.cfg.Verbose, "Ignoring hidden %s", path)
		case s.IsDir:
			r.log.Debug(r.cfg.Verbose, "Ignoring %s", path)
		default:
			r.log.Debug(r.cfg.Verbose, "Ignoring file %s", path)
		}
	}
}

func prettyPaths(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = display.RelativeToHome(p)
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
