package config

// This file implements the environment layer. Variables use the RENAMER_
// prefix; an optional env file is loaded first and never overrides variables
// already set in the process environment.

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "RENAMER_"

// envConfig mirrors the settings that may come from the environment.
// Pointer fields stay nil when the variable is unset, so only variables the
// user actually set override the defaults.
type envConfig struct {
	Yes         *bool    `env:"YES"`
	Verbose     *bool    `env:"VERBOSE"`
	DryRun      *bool    `env:"DRY_RUN"`
	Color       *string  `env:"COLOR"`
	LogFile     *string  `env:"LOG"`
	ReportFile  *string  `env:"REPORT"`
	Exclude     []string `env:"EXCLUDE" envSeparator:","`
	MergeIgnore []string `env:"MERGE_IGNORE" envSeparator:","`
	KeepEmpty   *bool    `env:"KEEP_EMPTY"`
}

// EnvFilePath returns the env file consulted by [LoadEnv]:
// $RENAMER_ENV_FILE when set, otherwise renamer/renamer.env under the
// user config directory ($XDG_CONFIG_HOME or ~/.config on Linux).
func EnvFilePath() string {
	if p := os.Getenv(EnvPrefix + "ENV_FILE"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "renamer", "renamer.env")
}

// LoadEnv seeds the process environment from the env file (when it exists)
// and applies RENAMER_* variables to cfg. List variables are appended to
// what cfg already holds.
func LoadEnv(cfg *Config) error {
	if p := EnvFilePath(); p != "" {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}

	var ec envConfig
	if err := env.ParseWithOptions(&ec, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return ec.apply(cfg)
}

func (ec *envConfig) apply(cfg *Config) error {
	if ec.Yes != nil {
		cfg.ConfirmAll = *ec.Yes
	}
	if ec.Verbose != nil {
		cfg.Verbose = *ec.Verbose
	}
	if ec.DryRun != nil {
		cfg.DryRun = *ec.DryRun
	}
	if ec.Color != nil {
		mode, err := ParseColorMode(*ec.Color)
		if err != nil {
			return fmt.Errorf("%sCOLOR: %w", EnvPrefix, err)
		}
		cfg.ColorMode = mode
	}
	if ec.LogFile != nil {
		cfg.LogFile = *ec.LogFile
	}
	if ec.ReportFile != nil {
		cfg.ReportFile = *ec.ReportFile
	}
	if ec.KeepEmpty != nil {
		cfg.KeepEmpty = *ec.KeepEmpty
	}
	cfg.Excludes = append(cfg.Excludes, ec.Exclude...)
	cfg.MergeIgnore = append(cfg.MergeIgnore, ec.MergeIgnore...)
	return nil
}
