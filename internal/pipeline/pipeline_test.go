package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/backmassage/renamer/internal/config"
	"github.com/backmassage/renamer/internal/logging"
	"github.com/backmassage/renamer/internal/planner"
	"github.com/backmassage/renamer/internal/report"
	"github.com/backmassage/renamer/internal/term"
)

// --- Helpers ---

// loadReport decodes the report a run wrote to path.
func loadReport(t *testing.T, path string) *report.Report {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var rep report.Report
	require.NoError(t, yaml.Unmarshal(b, &rep))
	return &rep
}

func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func touch(t *testing.T, root, rel, content string) string {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// tree lists every file below root as slash-separated relative paths.
func tree(t *testing.T, root string) []string {
	t.Helper()
	var out []string
	err := filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			rel, _ := filepath.Rel(root, p)
			out = append(out, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)
	sort.Strings(out)
	return out
}

func newRun(t *testing.T, mutate func(*config.Config)) (*config.Config, *logging.Logger, *bytes.Buffer) {
	t.Helper()
	// Keep paths out of "~" so messages show them in full.
	t.Setenv("HOME", t.TempDir())
	term.Configure(config.ColorNever)
	cfg := config.DefaultConfig()
	mutate(&cfg)
	var out bytes.Buffer
	return &cfg, logging.New(&out, &out), &out
}

// recorder answers every question with answer and remembers what was asked.
type recorder struct {
	answer    func(q string) bool
	questions []string
}

func (r *recorder) Confirm(q string) bool {
	r.questions = append(r.questions, q)
	return r.answer(q)
}

func yes(string) bool { return true }

// --- Rename tests ---

func TestRun_RenameDirsThenFiles(t *testing.T) {
	root := tempDir(t)
	touch(t, root, "my docs/some name Here 2017_12_30.TXT", "a")
	touch(t, root, "Already_Fine.pdf", "b")

	cfg, log, out := newRun(t, func(c *config.Config) { c.Roots = []string{root} })
	conf := &recorder{answer: yes}
	stats := Run(context.Background(), cfg, log, conf)

	assert.True(t, stats.OK())
	assert.Equal(t, 2, stats.Renamed)
	assert.Equal(t, []string{"Already_Fine.pdf", "My_Docs/Some_Name_Here_2017-12-30.txt"}, tree(t, root))
	require.Len(t, conf.questions, 2)
	assert.True(t, strings.HasSuffix(conf.questions[0], ": Rename these directories?"), conf.questions[0])
	assert.True(t, strings.HasSuffix(conf.questions[1], ": Rename these files?"), conf.questions[1])

	// Files are planned under the renamed directory.
	assert.Contains(t, out.String(), "from: ./my docs\n")
	assert.Contains(t, out.String(), "  to: ./My_Docs\n")
	assert.Contains(t, out.String(), "from: My_Docs/some name Here 2017_12_30.TXT\n")
	assert.Contains(t, out.String(), "  to: My_Docs/Some_Name_Here_2017-12-30.txt\n")
	assert.Contains(t, out.String(), "Directories renamed successfully.")
	assert.Contains(t, out.String(), "Files renamed successfully.")
}

func TestRun_AlreadyCorrect(t *testing.T) {
	root := tempDir(t)
	touch(t, root, "Photos/Beach.jpg", "x")

	cfg, log, out := newRun(t, func(c *config.Config) { c.Roots = []string{root} })
	conf := &recorder{answer: yes}
	stats := Run(context.Background(), cfg, log, conf)

	assert.True(t, stats.OK())
	assert.Zero(t, stats.Planned)
	assert.Empty(t, conf.questions, "empty batches are never confirmed")
	assert.Contains(t, out.String(), root+": All files already have correct names.")
}

func TestRun_DryRunChangesNothing(t *testing.T) {
	root := tempDir(t)
	touch(t, root, "my docs/x y.txt", "a")

	cfg, log, out := newRun(t, func(c *config.Config) {
		c.Roots = []string{root}
		c.DryRun = true
	})
	conf := &recorder{answer: yes}
	stats := Run(context.Background(), cfg, log, conf)

	assert.True(t, stats.OK())
	assert.Equal(t, 2, stats.Planned)
	assert.Zero(t, stats.Renamed)
	assert.Empty(t, conf.questions)
	assert.Equal(t, []string{"my docs/x y.txt"}, tree(t, root))
	assert.Contains(t, out.String(), logging.DryPrefix+" from: ./my docs\n")
	assert.Contains(t, out.String(), logging.DryPrefix+"   to: my docs/X_Y.txt\n")
}

func TestRun_DeclineSkipsOnlyThatBatch(t *testing.T) {
	root := tempDir(t)
	touch(t, root, "my docs/x y.txt", "a")

	cfg, log, _ := newRun(t, func(c *config.Config) { c.Roots = []string{root} })
	conf := &recorder{answer: func(q string) bool { return strings.HasSuffix(q, "files?") }}
	stats := Run(context.Background(), cfg, log, conf)

	assert.True(t, stats.OK())
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 1, stats.Renamed)
	assert.Equal(t, []string{"my docs/X_Y.txt"}, tree(t, root))
}

func TestRun_ConfirmAllNeverAsks(t *testing.T) {
	root := tempDir(t)
	touch(t, root, "x y.txt", "a")

	cfg, log, _ := newRun(t, func(c *config.Config) {
		c.Roots = []string{root}
		c.ConfirmAll = true
	})
	conf := &recorder{answer: func(string) bool { return false }}
	stats := Run(context.Background(), cfg, log, conf)

	assert.Equal(t, 1, stats.Renamed)
	assert.Empty(t, conf.questions)
}

func TestRun_FileCollisionGetsCopyName(t *testing.T) {
	root := tempDir(t)
	touch(t, root, "x y.txt", "new")
	touch(t, root, "X_Y.txt", "old")

	cfg, log, out := newRun(t, func(c *config.Config) {
		c.Roots = []string{root}
		c.ConfirmAll = true
	})
	stats := Run(context.Background(), cfg, log, term.Always)

	assert.True(t, stats.OK())
	assert.Equal(t, []string{"X_Y.txt", "X_Y_Copy.txt"}, tree(t, root))
	b, err := os.ReadFile(filepath.Join(root, "X_Y.txt"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(b), "existing files are never overwritten")
	assert.Contains(t, out.String(), "already exists")
}

func TestRun_DirectoryCollisionMerges(t *testing.T) {
	root := tempDir(t)
	touch(t, root, "my docs/a.txt", "new")
	touch(t, root, "my docs/.DS_Store", "mac")
	touch(t, root, "My_Docs/a.txt", "old")

	cfg, log, _ := newRun(t, func(c *config.Config) { c.Roots = []string{root} })
	conf := &recorder{answer: func(q string) bool { return strings.HasSuffix(q, "directories?") }}
	stats := Run(context.Background(), cfg, log, conf)

	assert.True(t, stats.OK())
	assert.Equal(t, 1, stats.Merged)
	assert.Equal(t, 1, stats.Renamed)
	assert.Equal(t, []string{"My_Docs/a.txt", "My_Docs/a_Copy.txt", "my docs/.DS_Store"}, tree(t, root))
}

func TestRun_ExclusionsFollowRenamedDirectory(t *testing.T) {
	root := tempDir(t)
	keep := touch(t, root, "my docs/keep this.txt", "k")
	touch(t, root, "my docs/x y.txt", "a")
	touch(t, root, "leave me/z z.txt", "z")

	cfg, log, _ := newRun(t, func(c *config.Config) {
		c.Roots = []string{root}
		c.ConfirmAll = true
		c.Excludes = []string{keep, filepath.Join(root, "leave me")}
	})
	stats := Run(context.Background(), cfg, log, term.Always)

	assert.True(t, stats.OK())
	assert.Equal(t, []string{"My_Docs/X_Y.txt", "My_Docs/keep this.txt", "leave me/z z.txt"}, tree(t, root))
}

func TestRun_VerboseReportsSkipped(t *testing.T) {
	root := tempDir(t)
	touch(t, root, ".git/config", "c")
	excluded := touch(t, root, "skip me.txt", "s")

	cfg, log, out := newRun(t, func(c *config.Config) {
		c.Roots = []string{root}
		c.Verbose = true
		c.Excludes = []string{excluded, filepath.Join(root, "missing")}
	})
	Run(context.Background(), cfg, log, term.Always)

	assert.Contains(t, out.String(), "Excluding files: "+excluded)
	assert.Contains(t, out.String(), "Ignoring hidden "+filepath.Join(root, ".git"))
	assert.Contains(t, out.String(), "Ignoring file "+excluded)
	assert.Contains(t, out.String(), "Exclusion not found, ignored: "+filepath.Join(root, "missing"))
}

func TestRunner_LogSkippedWarnsUnreadable(t *testing.T) {
	cfg, log, out := newRun(t, func(*config.Config) {})
	r := &runner{cfg: cfg, log: log}
	r.logSkipped(&planner.Plan{Skipped: []planner.Skipped{
		{Path: "/data/locked", IsDir: true, Reason: planner.SkipUnreadable},
		{Path: "/data/.git", IsDir: true, Reason: planner.SkipHidden},
	}})

	assert.Equal(t, "[WARN] Cannot read /data/locked, skipped\n", out.String())
}

func TestRun_BadRootCountsAsFailure(t *testing.T) {
	root := tempDir(t)
	plain := touch(t, root, "plain.txt", "p")
	good := filepath.Join(root, "good")
	touch(t, good, "x y.txt", "a")

	cfg, log, _ := newRun(t, func(c *config.Config) {
		c.Roots = []string{plain, filepath.Join(root, "missing"), good}
		c.ConfirmAll = true
	})
	stats := Run(context.Background(), cfg, log, term.Always)

	assert.Equal(t, 2, stats.Failed)
	assert.Equal(t, 1, stats.Roots)
	assert.Equal(t, 1, stats.Renamed)
}

func TestRun_CancelledBeforeStart(t *testing.T) {
	root := tempDir(t)
	touch(t, root, "x y.txt", "a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg, log, out := newRun(t, func(c *config.Config) {
		c.Roots = []string{root}
		c.ConfirmAll = true
	})
	stats := Run(ctx, cfg, log, term.Always)

	assert.Zero(t, stats.Renamed)
	assert.Equal(t, []string{"x y.txt"}, tree(t, root))
	assert.Contains(t, out.String(), "Interrupted")
}

func TestRun_RenameReport(t *testing.T) {
	root := tempDir(t)
	touch(t, root, "x y.txt", "a")
	path := filepath.Join(tempDir(t), "report.yaml")

	cfg, log, _ := newRun(t, func(c *config.Config) {
		c.Roots = []string{root}
		c.DryRun = true
		c.ReportFile = path
	})
	Run(context.Background(), cfg, log, term.Always)

	rep := loadReport(t, path)
	assert.Equal(t, "rename", rep.Command)
	assert.True(t, rep.DryRun)
	require.Len(t, rep.Renames, 1)
	assert.Equal(t, report.Rename{
		From:   filepath.Join(root, "x y.txt"),
		To:     filepath.Join(root, "X_Y.txt"),
		Status: report.StatusPlanned,
	}, rep.Renames[0])
}

// --- Merge tests ---

func TestRun_Merge(t *testing.T) {
	base := tempDir(t)
	target := filepath.Join(base, "t")
	source := filepath.Join(base, "s")
	touch(t, target, "2020/12/one.txt", "t")
	touch(t, source, "2020/12/one.txt", "src")
	touch(t, source, "Thumbs.db", "w")
	path := filepath.Join(base, "report.yaml")

	cfg, log, out := newRun(t, func(c *config.Config) {
		c.Mode = config.ModeMerge
		c.Target = target
		c.Sources = []string{source}
		c.MergeIgnore = []string{"Thumbs"}
		c.ReportFile = path
	})
	stats := Run(context.Background(), cfg, log, term.Always)

	assert.True(t, stats.OK())
	assert.Equal(t, 1, stats.Merged)
	assert.Equal(t, int64(3), stats.BytesMoved)
	assert.Equal(t, []string{"2020/12/one.txt", "2020/12/one_Copy.txt"}, tree(t, target))
	assert.Equal(t, []string{"Thumbs.db"}, tree(t, source))
	assert.NoDirExists(t, filepath.Join(source, "2020"), "emptied directories are pruned")
	assert.Contains(t, out.String(), "Moved 1 file")

	rep := loadReport(t, path)
	assert.Equal(t, []report.Move{{
		From:  filepath.Join(source, "2020", "12", "one.txt"),
		To:    filepath.Join(target, "2020", "12", "one_Copy.txt"),
		Bytes: 3,
	}}, rep.Moves)
	assert.Equal(t, 1, rep.Summary.Merged)
}

func TestRun_MergeKeepEmpty(t *testing.T) {
	base := tempDir(t)
	target := filepath.Join(base, "t")
	source := filepath.Join(base, "s")
	require.NoError(t, os.MkdirAll(target, 0o755))
	touch(t, source, "a/b.txt", "b")

	cfg, log, _ := newRun(t, func(c *config.Config) {
		c.Mode = config.ModeMerge
		c.Target = target
		c.Sources = []string{source}
		c.KeepEmpty = true
	})
	stats := Run(context.Background(), cfg, log, term.Always)

	assert.True(t, stats.OK())
	assert.DirExists(t, filepath.Join(source, "a"))
	assert.Equal(t, []string{"a/b.txt"}, tree(t, target))
}

func TestRun_MergeBadSourceFails(t *testing.T) {
	base := tempDir(t)
	target := filepath.Join(base, "t")
	require.NoError(t, os.MkdirAll(target, 0o755))

	cfg, log, _ := newRun(t, func(c *config.Config) {
		c.Mode = config.ModeMerge
		c.Target = target
		c.Sources = []string{filepath.Join(base, "missing")}
	})
	stats := Run(context.Background(), cfg, log, term.Always)

	assert.False(t, stats.OK())
	assert.Equal(t, 1, stats.Failed)
}
