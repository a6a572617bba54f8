// Package config holds runtime configuration: defaults, the environment
// layer, CLI flag binding and validation. Precedence, lowest first:
// defaults, environment (optionally seeded from an env file), flags.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// --- Enum types for validated string fields ---

// Mode selects the command being run.
type Mode string

const (
	ModeRename Mode = "rename" // Normalize names under one or more roots.
	ModeMerge  Mode = "merge"  // Merge source trees into a target.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// ErrNoDirectories is returned by [Config.Validate] when the command was
// given no directory to work on.
var ErrNoDirectories = errors.New("no directories given")

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then [LoadEnv], then the flags bound by [Flags], before being passed (by
// pointer) to the packages that need it.
type Config struct {
	Mode Mode

	// Rename (set from positional args and --exclude).
	Roots    []string
	Excludes []string

	// Merge (set from positional args and --ignore).
	Target      string
	Sources     []string
	MergeIgnore []string // Extra stems, added to the default ".DS_Store".
	KeepEmpty   bool     // Keep source directories emptied by a merge.

	// Behavior flags.
	DryRun     bool
	ConfirmAll bool // --yes: apply every batch without prompting.

	// Display and logging.
	Verbose    bool
	ColorMode  ColorMode // Default: "auto".
	LogFile    string    // Optional JSON-lines log path.
	ReportFile string    // Optional YAML run report path.
}

// DefaultConfig returns a Config with every default set. Used as the base
// before the environment and CLI flags apply their overrides.
func DefaultConfig() Config {
	return Config{
		Mode:      ModeRename,
		ColorMode: ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and that the active mode has the directories
// it needs.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}

	switch c.Mode {
	case ModeRename:
		if len(c.Roots) == 0 {
			return fmt.Errorf("rename: %w", ErrNoDirectories)
		}
	case ModeMerge:
		if c.Target == "" || len(c.Sources) == 0 {
			return fmt.Errorf("merge needs a target and at least one source: %w", ErrNoDirectories)
		}
	default:
		return fmt.Errorf("invalid mode %q", c.Mode)
	}
	return nil
}

// ParseColorMode validates a color mode name (case-insensitive).
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
}
