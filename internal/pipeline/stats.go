package pipeline

// RunStats tracks aggregate counters across a run.
type RunStats struct {
	Roots      int // Roots (rename) or sources (merge) that passed validation.
	Planned    int // Renames or moves proposed, applied or not.
	Renamed    int
	Merged     int // Files moved by a merge, including rename fallbacks.
	Skipped    int // Renames in declined batches.
	Failed     int
	BytesMoved int64
}

// OK reports whether nothing failed.
func (s *RunStats) OK() bool { return s.Failed == 0 }
