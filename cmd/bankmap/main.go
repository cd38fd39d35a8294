// Package main provides the entry point for the bankmap CLI tool.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/greenfolio/bankmap/cmd/bankmap/cmd"
	"github.com/greenfolio/bankmap/pkg/logging"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx, version, commit); err != nil {
		logging.Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
