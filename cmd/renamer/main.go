// Command renamer is the CLI entrypoint: "renamer rename" normalizes file and
// directory names below one or more roots, "renamer merge" moves source
// trees into a target without overwriting anything.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/renamer/internal/config"
	"github.com/backmassage/renamer/internal/logging"
	"github.com/backmassage/renamer/internal/pipeline"
	"github.com/backmassage/renamer/internal/term"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// The logger doesn't exist until a command runs, so setup errors go
	// straight to stderr.
	cfg := config.DefaultConfig()
	if err := config.LoadEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "renamer: %v\n", err)
		return 1
	}

	code := 0
	root := newRootCmd(&cfg, func(cfg *config.Config) {
		code = execute(cfg)
	})
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "renamer: %v\n", err)
		return 1
	}
	return code
}

// execute runs a validated configuration and returns the exit status.
func execute(cfg *config.Config) int {
	log, err := logging.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "renamer: %v\n", err)
		return 1
	}
	defer log.Close()

	log.Debug(cfg.Verbose, "renamer %s (%s), mode %s", version, commit, cfg.Mode)
	if cfg.Mode == config.ModeRename && !cfg.ConfirmAll && !cfg.DryRun && !term.IsTerminal(os.Stdin) {
		log.Warn("Standard input is not a terminal: every batch is declined unless --yes is given")
	}

	// Cancel on SIGINT/SIGTERM so the run stops between items.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Received interrupt, finishing current item…")
			cancel()
		case <-ctx.Done():
		}
	}()

	stats := pipeline.Run(ctx, cfg, log, term.NewPrompt(os.Stdin, os.Stdout))
	if !stats.OK() {
		return 1
	}
	return 0
}
