package main

import (
	"github.com/spf13/cobra"

	"github.com/backmassage/renamer/internal/config"
)

// newRootCmd builds the command tree over cfg, which must already hold
// defaults and environment values: flags only override what the user passes.
// exec is called with the final, validated configuration.
func newRootCmd(cfg *config.Config, exec func(*config.Config)) *cobra.Command {
	flags := config.NewFlags(cfg)

	root := &cobra.Command{
		Use:           "renamer",
		Short:         "Normalize file names and merge directory trees",
		Version:       version + " (" + commit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags.DefineGlobal(root.PersistentFlags())

	runWith := func(setArgs func(*config.Config, []string) error) func(*cobra.Command, []string) error {
		return func(_ *cobra.Command, args []string) error {
			if err := flags.Apply(); err != nil {
				return err
			}
			if err := setArgs(cfg, args); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			exec(cfg)
			return nil
		}
	}

	rename := &cobra.Command{
		Use:   "rename [flags] <dir>...",
		Short: "Rename files and directories to normalized names",
		Long: `Rename every file and directory below each <dir> to a normalized name:
accents removed, words joined with "_" in title case, dates rewritten as ISO
(2017-12-30, 2017-12-30T10-44-56) and file extensions lower-cased.

Directories are renamed first, then files. Hidden entries are never touched.
Each batch is shown and confirmed before anything changes.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runWith(config.SetRenameArgs),
	}
	flags.DefineRename(rename.Flags())

	merge := &cobra.Command{
		Use:   "merge [flags] <target> <source>...",
		Short: "Move every file of the sources into the target",
		Long: `Move every file of each <source> into <target>, keeping relative paths.
A file that already exists in the target is never overwritten: the incoming
file gets the next free copy name (one.txt, one_Copy.txt, one_Copy1.txt).
Source directories left empty are removed unless --keep-empty is given.`,
		Args: cobra.MinimumNArgs(2),
		RunE: runWith(config.SetMergeArgs),
	}
	flags.DefineMerge(merge.Flags())

	root.AddCommand(rename, merge)
	return root
}
