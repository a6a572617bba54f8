// Package logging provides the console logger shared by every command:
// leveled, optionally colored lines on stdout/stderr, plain plan lines with
// an optional dry-run prefix, and an optional JSON-lines file sink.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/backmassage/renamer/internal/config"
	"github.com/backmassage/renamer/internal/term"
)

// DryPrefix marks every line printed during a dry run.
const DryPrefix = "[DRY]"

var reANSI = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// Logger provides leveled, optionally colored logging with optional file sink.
type Logger struct {
	mu   sync.Mutex
	out  io.Writer
	err  io.Writer
	file *os.File
	sink *zerolog.Logger
}

// NewLogger initializes colors from cfg and optionally opens cfg.LogFile.
// Call Close() when done if LogFile was set.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)
	l := New(os.Stdout, os.Stderr)

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		l.sink = newSink(f)
	}
	return l, nil
}

// New returns a Logger writing to out (and errOut for errors) without a
// file sink. Colors follow the current [term] state.
func New(out, errOut io.Writer) *Logger {
	return &Logger{out: out, err: errOut}
}

// WithSink attaches a JSON-lines sink writing to w.
func (l *Logger) WithSink(w io.Writer) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sink = newSink(w)
	return l
}

// WithRunID tags every sink event with run_id. No-op without a sink.
func (l *Logger) WithRunID(id string) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sink != nil {
		s := l.sink.With().Str("run_id", id).Logger()
		l.sink = &s
	}
	return l
}

func newSink(w io.Writer) *zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	s := zerolog.New(w).With().Timestamp().Logger()
	return &s
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sink = nil
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) line(level string, role term.Role, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.out
	if level == "ERROR" {
		out = l.err
	}
	_, _ = io.WriteString(out, term.Paint(role, "["+level+"]")+" "+text+"\n")
	l.record(level, text, false)
}

// record forwards one console line to the file sink. Caller holds l.mu.
func (l *Logger) record(tag, text string, dry bool) {
	if l.sink == nil {
		return
	}
	var ev *zerolog.Event
	switch tag {
	case "ERROR":
		ev = l.sink.Error()
	case "WARN":
		ev = l.sink.Warn()
	case "DEBUG":
		ev = l.sink.Debug()
	default:
		ev = l.sink.Info()
	}
	if dry {
		ev = ev.Bool("dry_run", true)
	}
	ev.Str("tag", tag).Msg(reANSI.ReplaceAllString(text, ""))
}

// Echo prints a plain plan line (no level label), prefixed with [DryPrefix]
// during a dry run.
func (l *Logger) Echo(dry bool, format string, args ...interface{}) {
	text := fmt.Sprintf(format, args...)
	l.mu.Lock()
	defer l.mu.Unlock()
	prefix := ""
	if dry {
		prefix = term.Paint(term.DryTag, DryPrefix) + " "
	}
	_, _ = io.WriteString(l.out, prefix+text+"\n")
	l.record("PLAN", text, dry)
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.line("INFO", term.Info, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.line("SUCCESS", term.Success, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line("WARN", term.Warning, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red) to the error writer.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line("ERROR", term.Failure, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan) only when verbose; no-op otherwise.
func (l *Logger) Debug(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	l.line("DEBUG", term.Detail, fmt.Sprintf(format, args...))
}
