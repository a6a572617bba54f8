package main

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/renamer/internal/config"
)

// execCmd runs the command tree over a copy of base and returns the config
// handed to exec, or nil when exec was not reached.
func execCmd(t *testing.T, base config.Config, args ...string) (*config.Config, error) {
	t.Helper()
	cfg := base
	var got *config.Config
	root := newRootCmd(&cfg, func(c *config.Config) { got = c })
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return got, root.Execute()
}

func TestRootCmd_Rename(t *testing.T) {
	got, err := execCmd(t, config.DefaultConfig(), "rename", "-d", "-x", "~/skip", "--no-color", "a/", "b")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, config.ModeRename, got.Mode)
	assert.Equal(t, []string{"a", "b"}, got.Roots)
	assert.Equal(t, []string{"~/skip"}, got.Excludes)
	assert.True(t, got.DryRun)
	assert.Equal(t, config.ColorNever, got.ColorMode)
}

func TestRootCmd_GlobalFlagsAfterSubcommand(t *testing.T) {
	got, err := execCmd(t, config.DefaultConfig(), "merge", "target", "s1", "s2", "--yes", "--ignore", "Thumbs", "--keep-empty")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, config.ModeMerge, got.Mode)
	assert.Equal(t, "target", got.Target)
	assert.Equal(t, []string{"s1", "s2"}, got.Sources)
	assert.Equal(t, []string{"Thumbs"}, got.MergeIgnore)
	assert.True(t, got.ConfirmAll)
	assert.True(t, got.KeepEmpty)
}

func TestRootCmd_EnvironmentIsDefault(t *testing.T) {
	base := config.DefaultConfig()
	base.Verbose = true
	base.Excludes = []string{"from-env"}

	got, err := execCmd(t, base, "rename", "-x", "from-flag", "dir")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Verbose)
	assert.Equal(t, []string{"from-env", "from-flag"}, got.Excludes)
}

func TestRootCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"rename without dirs", []string{"rename"}},
		{"merge without source", []string{"merge", "target"}},
		{"blank dirs", []string{"rename", " ", ""}},
		{"bad color mode", []string{"rename", "--color-mode", "plaid", "dir"}},
		{"unknown flag", []string{"rename", "--frobnicate", "dir"}},
		{"unknown command", []string{"copy", "a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execCmd(t, config.DefaultConfig(), tt.args...)
			assert.Error(t, err)
			assert.Nil(t, got)
		})
	}
}
