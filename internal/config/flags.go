package config

// This file binds CLI flags to a Config. Flags are grouped into global
// (behavior and display), rename and merge groups. Negated and additive
// flags are captured separately and applied after parsing so values from
// defaults and the environment hold unless the user passes the flag.

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Flags binds one Config to the flag sets of the CLI commands.
type Flags struct {
	cfg     *Config
	negated negatedFlags
}

// negatedFlags holds flags that are applied after Parse: color overrides
// and list flags that add to (rather than replace) environment values.
type negatedFlags struct {
	forceColor bool
	noColor    bool
	color      string
	excludes   []string
	ignore     []string
}

// NewFlags returns a binder for cfg. cfg should already hold defaults and
// environment values.
func NewFlags(cfg *Config) *Flags {
	return &Flags{cfg: cfg}
}

// DefineGlobal registers flags shared by every command.
func (f *Flags) DefineGlobal(fs *pflag.FlagSet) {
	cfg, n := f.cfg, &f.negated
	fs.BoolVarP(&cfg.DryRun, "dry-run", "d", cfg.DryRun, "Preview only; change nothing")
	fs.BoolVarP(&cfg.ConfirmAll, "yes", "y", cfg.ConfirmAll, "Apply every batch without asking")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output (excluded and hidden items)")
	fs.BoolVar(&n.forceColor, "color", false, "Force colored output")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored output")
	fs.StringVar(&n.color, "color-mode", "", "Color mode: auto | always | never")
	fs.StringVarP(&cfg.LogFile, "log", "l", cfg.LogFile, "Append a JSON-lines log to file")
	fs.StringVar(&cfg.ReportFile, "report", cfg.ReportFile, "Write a YAML report of the run to file")
}

// DefineRename registers flags of the rename command.
func (f *Flags) DefineRename(fs *pflag.FlagSet) {
	fs.StringArrayVarP(&f.negated.excludes, "exclude", "x", nil, "Exclude a file or directory (repeatable)")
}

// DefineMerge registers flags of the merge command.
func (f *Flags) DefineMerge(fs *pflag.FlagSet) {
	fs.StringArrayVar(&f.negated.ignore, "ignore", nil, "Leave files with this stem in the source (repeatable)")
	fs.BoolVar(&f.cfg.KeepEmpty, "keep-empty", f.cfg.KeepEmpty, "Keep source directories emptied by the merge")
}

// Apply copies captured flag values into the Config. Call it once after
// parsing.
func (f *Flags) Apply() error {
	cfg, n := f.cfg, &f.negated
	switch {
	case n.noColor:
		cfg.ColorMode = ColorNever
	case n.forceColor:
		cfg.ColorMode = ColorAlways
	case n.color != "":
		mode, err := ParseColorMode(n.color)
		if err != nil {
			return err
		}
		cfg.ColorMode = mode
	}
	cfg.Excludes = append(cfg.Excludes, n.excludes...)
	cfg.MergeIgnore = append(cfg.MergeIgnore, n.ignore...)
	return nil
}

// SetRenameArgs sets Mode and Roots from the rename command's positional args.
func SetRenameArgs(cfg *Config, args []string) error {
	cfg.Mode = ModeRename
	dirs := normalizeDirArgs(args)
	if len(dirs) == 0 {
		return fmt.Errorf("need at least one directory: %w", ErrNoDirectories)
	}
	cfg.Roots = dirs
	return nil
}

// SetMergeArgs sets Mode, Target and Sources from the merge command's
// positional args: the first is the target, the rest are sources.
func SetMergeArgs(cfg *Config, args []string) error {
	cfg.Mode = ModeMerge
	dirs := normalizeDirArgs(args)
	if len(dirs) < 2 {
		return fmt.Errorf("need a target and at least one source: %w", ErrNoDirectories)
	}
	cfg.Target, cfg.Sources = dirs[0], dirs[1:]
	return nil
}

func normalizeDirArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, NormalizeDirArg(a))
		}
	}
	return out
}
