package pipeline

import (
	"context"

	"github.com/backmassage/renamer/internal/config"
	"github.com/backmassage/renamer/internal/logging"
	"github.com/backmassage/renamer/internal/merge"
	"github.com/backmassage/renamer/internal/naming"
	"github.com/backmassage/renamer/internal/report"
	"github.com/backmassage/renamer/internal/term"
)

// runner carries the state shared by every step of one run.
type runner struct {
	ctx     context.Context
	cfg     *config.Config
	log     *logging.Logger
	confirm term.Confirmer
	alloc   *naming.Allocator
	rep     *report.Report
	stats   *RunStats
}

// Run is the top-level entry point for both commands. confirm is asked once
// per non-empty rename batch unless cfg.ConfirmAll is set. Cancelling ctx
// stops the run between items; nothing already done is rolled back.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, confirm term.Confirmer) RunStats {
	var stats RunStats
	r := &runner{
		ctx:     ctx,
		cfg:     cfg,
		log:     log,
		confirm: confirm,
		alloc:   naming.NewAllocator(),
		stats:   &stats,
	}

	if cfg.Mode == config.ModeMerge {
		r.rep = report.New(string(cfg.Mode), cfg.DryRun, append([]string{cfg.Target}, cfg.Sources...))
	} else {
		r.rep = report.New(string(cfg.Mode), cfg.DryRun, cfg.Roots)
	}
	log.WithRunID(r.rep.ID)

	if cfg.DryRun {
		log.Warn("DRY RUN: nothing will be renamed or moved")
	}

	switch cfg.Mode {
	case config.ModeMerge:
		r.runMerge()
	default:
		r.runRename()
	}

	if ctx.Err() != nil {
		log.Warn("Interrupted")
	}
	r.writeReport()
	logSummary(cfg, log, &stats)
	return stats
}

// mergeIgnore returns the default ignore stems plus the configured extras.
func (r *runner) mergeIgnore() []string {
	out := make([]string, 0, len(merge.DefaultIgnore)+len(r.cfg.MergeIgnore))
	out = append(out, merge.DefaultIgnore...)
	return append(out, r.cfg.MergeIgnore...)
}

// recordMerge folds a merge result into the stats and the report.
func (r *runner) recordMerge(res *merge.Result) {
	for _, mv := range res.Moved {
		r.rep.AddMove(report.Move{From: mv.Source, To: mv.Dest, Bytes: mv.Size})
	}
	r.stats.Planned += len(res.Moved)
	if !r.cfg.DryRun {
		r.stats.Merged += len(res.Moved)
	}
	r.stats.BytesMoved += res.Bytes
	for _, f := range res.Failed {
		r.rep.AddFailure(f.Path, f.Err)
	}
	r.stats.Failed += len(res.Failed)
}

func (r *runner) writeReport() {
	if r.cfg.ReportFile == "" {
		return
	}
	r.rep.Finish(report.Summary{
		Renamed: r.stats.Renamed,
		Merged:  r.stats.Merged,
		Skipped: r.stats.Skipped,
		Failed:  r.stats.Failed,
		Bytes:   r.stats.BytesMoved,
	})
	if err := r.rep.WriteFile(r.cfg.ReportFile); err != nil {
		r.log.Error("Cannot write report: %v", err)
		r.stats.Failed++
		return
	}
	r.log.Debug(r.cfg.Verbose, "Report written to %s", r.cfg.ReportFile)
}

// --- Logging helpers ---

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	switch cfg.Mode {
	case config.ModeMerge:
		log.Info("Done: %d merged, %d failed", stats.Merged, stats.Failed)
	default:
		log.Info("Done: %d renamed, %d skipped, %d failed", stats.Renamed, stats.Skipped, stats.Failed)
		if stats.Merged > 0 {
			log.Info("  Merged into existing directories: %d", stats.Merged)
		}
	}
	if cfg.DryRun {
		log.Info("  Planned: %d (dry run, nothing changed)", stats.Planned)
	}
}
