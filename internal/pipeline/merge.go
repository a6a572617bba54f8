package pipeline

import (
	"github.com/backmassage/renamer/internal/display"
	"github.com/backmassage/renamer/internal/merge"
)

func (r *runner) runMerge() {
	eng := merge.New(r.log, merge.Options{
		DryRun:     r.cfg.DryRun,
		Verbose:    r.cfg.Verbose,
		Ignore:     r.mergeIgnore(),
		PruneEmpty: !r.cfg.KeepEmpty,
		Allocator:  r.alloc,
	})
	res := eng.Merge(r.ctx, r.cfg.Target, r.cfg.Sources...)
	r.recordMerge(res)
	r.stats.Roots = len(r.cfg.Sources)

	n := len(res.Moved)
	verb := "Moved"
	if r.cfg.DryRun {
		verb = "Would move"
	}
	summary := verb + " " + display.Plural(n, "file", "files") + " (" + display.FormatBytes(res.Bytes) + ")"
	if res.OK() {
		r.log.Success("%s into %s", summary, r.cfg.Target)
	} else {
		r.log.Warn("%s into %s, %d failed", summary, r.cfg.Target, len(res.Failed))
	}
	if len(res.Pruned) > 0 {
		r.log.Debug(r.cfg.Verbose, "Removed %s", display.Plural(len(res.Pruned), "empty directory", "empty directories"))
	}
}
