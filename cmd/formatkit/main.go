// Package main is the entry point for the formatkit CLI.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/yaklabco/formatkit/internal/cli"
	"github.com/yaklabco/formatkit/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Interrupts cancel the run; files are only ever replaced whole.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !cli.Reported(err) {
		logger := logging.Default()
		logger.Error("command failed", logging.FieldError, logging.ErrorValue(logger, err))
	}
	return cli.ExitCode(err)
}
