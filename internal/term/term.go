// Package term decides whether output is colored, paints text by the role it
// plays in a run, detects terminals and asks the interactive yes/no question.
//
// Callers never pick colors: they name a [Role] (a log level, a merge source,
// a proposed name) and [Paint] looks it up in the palette that [Configure]
// selected at startup.
package term

import (
	"os"
	"strings"
	"sync/atomic"

	"github.com/mattn/go-isatty"

	"github.com/backmassage/renamer/internal/config"
)

// Role is what a piece of output means to the reader.
type Role int

const (
	Info Role = iota
	Success
	Warning
	Failure
	Detail     // verbose-only lines
	DryTag     // the dry-run line prefix
	SourcePath // a merge source and the paths read from it
	TargetPath // a merge target and the paths written into it
	NewName    // a proposed name in a rename plan
	numRoles
)

const reset = "\033[0m"

// palette holds the bold bright ANSI sequence for each role.
var palette = [numRoles]string{
	Info:       "\033[1;94m",
	Success:    "\033[1;92m",
	Warning:    "\033[1;93m",
	Failure:    "\033[1;91m",
	Detail:     "\033[1;96m",
	DryTag:     "\033[1;96m",
	SourcePath: "\033[1;94m",
	TargetPath: "\033[1;92m",
	NewName:    "\033[1;93m",
}

var enabled atomic.Bool

// Configure resolves mode against the environment and turns painting on or
// off for the whole process. [logging.NewLogger] calls it once at startup.
func Configure(mode config.ColorMode) {
	enabled.Store(resolve(mode))
}

// Enabled reports whether [Paint] currently emits ANSI sequences.
func Enabled() bool { return enabled.Load() }

// Paint wraps s in the color of role. With colors off, or for an unknown
// role, s is returned unchanged.
func Paint(role Role, s string) string {
	if !Enabled() || role < 0 || role >= numRoles {
		return s
	}
	return palette[role] + s + reset
}

// resolve applies the color mode. Auto means stdout is a terminal, NO_COLOR
// (https://no-color.org) is unset and TERM is not "dumb".
func resolve(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return IsTerminal(os.Stdout) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is attached to a TTY, including Cygwin and
// MSYS pseudo-terminals.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
