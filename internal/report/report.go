// Package report records what a run did (or would do, in a dry run) and
// writes it as YAML for --report.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Status values for a recorded item.
const (
	StatusDone    = "done"
	StatusPlanned = "planned" // dry run
	StatusSkipped = "skipped" // batch declined
	StatusFailed  = "failed"
)

// Rename is one rename pair.
type Rename struct {
	From   string `yaml:"from"`
	To     string `yaml:"to"`
	Dir    bool   `yaml:"dir,omitempty"`
	Status string `yaml:"status"`
	Note   string `yaml:"note,omitempty"`
}

// Move is one file moved by a merge.
type Move struct {
	From  string `yaml:"from"`
	To    string `yaml:"to"`
	Bytes int64  `yaml:"bytes"`
}

// Failure is an item that could not be handled.
type Failure struct {
	Path  string `yaml:"path"`
	Error string `yaml:"error"`
}

// Summary holds the run counters.
type Summary struct {
	Renamed int   `yaml:"renamed"`
	Merged  int   `yaml:"merged"`
	Skipped int   `yaml:"skipped"`
	Failed  int   `yaml:"failed"`
	Bytes   int64 `yaml:"bytes_moved"`
}

// Report is the YAML document. Add* methods are safe for concurrent use.
type Report struct {
	mu sync.Mutex

	ID         string    `yaml:"id"`
	Command    string    `yaml:"command"`
	DryRun     bool      `yaml:"dry_run"`
	StartedAt  time.Time `yaml:"started_at"`
	FinishedAt time.Time `yaml:"finished_at"`
	Roots      []string  `yaml:"roots,omitempty"`
	Renames    []Rename  `yaml:"renames,omitempty"`
	Moves      []Move    `yaml:"moves,omitempty"`
	Failures   []Failure `yaml:"failures,omitempty"`
	Summary    Summary   `yaml:"summary"`
}

// New starts a report for command under a fresh random run ID.
func New(command string, dryRun bool, roots []string) *Report {
	return &Report{
		ID:        uuid.NewString(),
		Command:   command,
		DryRun:    dryRun,
		StartedAt: time.Now().UTC().Truncate(time.Second),
		Roots:     roots,
	}
}

// AddRename records a rename pair.
func (r *Report) AddRename(rn Rename) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Renames = append(r.Renames, rn)
}

// AddMove records a merged file.
func (r *Report) AddMove(m Move) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Moves = append(r.Moves, m)
}

// AddFailure records a failed item.
func (r *Report) AddFailure(path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Failures = append(r.Failures, Failure{Path: path, Error: err.Error()})
}

// Finish stamps the end time and summary.
func (r *Report) Finish(s Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.FinishedAt = time.Now().UTC().Truncate(time.Second)
	r.Summary = s
}

// Marshal renders the report as YAML with two-space indentation.
func (r *Report) Marshal() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes the report to path, creating parent directories.
func (r *Report) WriteFile(path string) error {
	b, err := r.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
