// Package merge moves every file of one or more source trees into a target
// tree, keeping relative paths and never overwriting: a colliding file is
// given the next free copy name ("one.txt" becomes "one_Copy.txt").
// Directories are never moved themselves; they are created on demand.
package merge

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/backmassage/renamer/internal/check"
	"github.com/backmassage/renamer/internal/display"
	"github.com/backmassage/renamer/internal/fsops"
	"github.com/backmassage/renamer/internal/naming"
	"github.com/backmassage/renamer/internal/term"
)

// DefaultIgnore lists the stems skipped on merge when none are configured.
var DefaultIgnore = []string{".DS_Store"}

// maxAttempts bounds re-allocation when a destination is taken between
// planning and moving.
const maxAttempts = 8

// Logger is the subset of logging.Logger the engine writes to.
type Logger interface {
	Echo(dry bool, format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	Debug(verbose bool, format string, args ...interface{})
}

// Options configures an Engine.
type Options struct {
	DryRun  bool
	Verbose bool
	// Ignore holds file stems that are left in the source. Nil means
	// DefaultIgnore; an empty non-nil slice ignores nothing.
	Ignore []string
	// PruneEmpty removes source directories a real merge left empty.
	// Directories that were empty beforehand stay.
	PruneEmpty bool
	// Allocator hands out destinations. Share one across engines in the same
	// run so dry-run output matches what a real run would do.
	Allocator *naming.Allocator
}

// Move is one planned file move.
type Move struct {
	Source string // absolute source path
	Rel    string // path relative to the source root
	Dest   string // absolute destination, already made unique
	Size   int64
}

// Failure records an item the engine could not handle.
type Failure struct {
	Path string
	Err  error
}

// Result summarizes a Merge call.
type Result struct {
	Moved  []Move
	Failed []Failure
	Bytes  int64
	Pruned []string
}

// OK reports whether nothing failed.
func (r *Result) OK() bool { return len(r.Failed) == 0 }

func (r *Result) fail(path string, err error) {
	r.Failed = append(r.Failed, Failure{Path: path, Err: err})
}

// Engine plans and performs merges.
type Engine struct {
	log    Logger
	opts   Options
	alloc  *naming.Allocator
	ignore map[string]bool
}

// New returns an Engine.
func New(log Logger, opts Options) *Engine {
	alloc := opts.Allocator
	if alloc == nil {
		alloc = naming.NewAllocator()
	}
	stems := opts.Ignore
	if stems == nil {
		stems = DefaultIgnore
	}
	ignore := make(map[string]bool, len(stems))
	for _, s := range stems {
		ignore[s] = true
	}
	return &Engine{log: log, opts: opts, alloc: alloc, ignore: ignore}
}

// Ignored reports whether a file with this basename stays in the source.
func (e *Engine) Ignored(base string) bool {
	stem, _ := naming.SplitExt(base)
	return e.ignore[stem]
}

// Plan walks source in lexical order and returns one Move per file to merge
// into target. Destinations are claimed from the allocator, so two planned
// moves never share a destination. Nothing on disk changes.
func (e *Engine) Plan(target, source string) ([]Move, error) {
	var moves []Move
	err := filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if e.Ignored(d.Name()) {
			e.log.Debug(e.opts.Verbose, "Ignoring %s", path)
			return nil
		}
		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		mv := Move{
			Source: path,
			Rel:    rel,
			Dest:   e.alloc.Resolve(filepath.Join(target, rel)),
		}
		if info, err := d.Info(); err == nil && info.Mode().IsRegular() {
			mv.Size = info.Size()
		}
		moves = append(moves, mv)
		return nil
	})
	if err != nil {
		for _, mv := range moves {
			e.alloc.Release(mv.Dest)
		}
		return nil, err
	}
	return moves, nil
}

// Merge moves the files of each source into target, in argument order. A
// target that is not a directory fails every source; a bad source, a
// planning error or a failed move is recorded and the rest continues.
// Cancelling ctx stops between files.
func (e *Engine) Merge(ctx context.Context, target string, sources ...string) *Result {
	res := &Result{}
	dry := e.opts.DryRun

	e.log.Echo(dry, "Target: %s", term.Paint(term.TargetPath, target))
	targetAbs, err := check.Dir(target)
	if err != nil {
		e.log.Error("Target is not a directory: %v", err)
		for _, s := range sources {
			res.fail(s, err)
		}
		return res
	}

	for _, source := range sources {
		if ctx.Err() != nil {
			res.fail(source, ctx.Err())
			continue
		}
		e.log.Echo(dry, "Source: %s", term.Paint(term.SourcePath, source))
		_, sourceAbs, err := check.MergePair(targetAbs, source)
		if err != nil {
			e.log.Error("Skipping source: %v", err)
			res.fail(source, err)
			continue
		}
		e.mergeOne(ctx, res, target, targetAbs, source, sourceAbs)
	}
	return res
}

func (e *Engine) mergeOne(ctx context.Context, res *Result, target, targetAbs, source, sourceAbs string) {
	moves, err := e.Plan(targetAbs, sourceAbs)
	if err != nil {
		e.log.Error("Cannot read %s: %v", source, err)
		res.fail(source, err)
		return
	}

	var emptied []string
	for _, mv := range moves {
		if ctx.Err() != nil {
			res.fail(mv.Source, ctx.Err())
			return
		}
		destRel, err := filepath.Rel(targetAbs, mv.Dest)
		if err != nil {
			destRel = mv.Dest
		}
		e.log.Echo(e.opts.DryRun, "Moving %s%s to %s%s",
			display.DirWithEndSlash(source), term.Paint(term.SourcePath, mv.Rel),
			display.DirWithEndSlash(target), term.Paint(term.TargetPath, destRel))
		if e.opts.DryRun {
			res.Moved = append(res.Moved, mv)
			res.Bytes += mv.Size
			continue
		}

		done, err := e.apply(mv)
		if err != nil {
			e.log.Error("Failed to move %s: %v", mv.Source, err)
			res.fail(mv.Source, err)
			continue
		}
		if done.Dest != mv.Dest {
			e.log.Warn("%s was taken; moved to %s instead", mv.Dest, done.Dest)
		}
		res.Moved = append(res.Moved, done)
		res.Bytes += done.Size
		emptied = append(emptied, done.Source)
	}

	if e.opts.PruneEmpty && !e.opts.DryRun && len(emptied) > 0 {
		pruned, err := fsops.PruneEmptied(sourceAbs, emptied)
		if err != nil {
			e.log.Warn("Could not remove empty directories in %s: %v", source, err)
		}
		for _, p := range pruned {
			e.log.Debug(e.opts.Verbose, "Removed empty directory %s", p)
		}
		res.Pruned = append(res.Pruned, pruned...)
	}
}

// apply performs one move, creating parent directories on demand. When the
// planned destination was taken in the meantime, the next free name is
// allocated and the move retried.
func (e *Engine) apply(mv Move) (Move, error) {
	for attempt := 1; ; attempt++ {
		if err := os.MkdirAll(filepath.Dir(mv.Dest), 0o755); err != nil {
			return mv, err
		}
		err := fsops.Move(mv.Source, mv.Dest)
		if err == nil {
			return mv, nil
		}
		if !fsops.IsCollision(err) || attempt >= maxAttempts {
			return mv, err
		}
		mv.Dest = e.alloc.Resolve(mv.Dest)
	}
}
