// Package main provides rubrica, a contact book for the terminal. Without a
// subcommand it opens the interactive contact list; the subcommands offer the
// same operations for scripts.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

const version = "0.1.0" // Version of rubrica

func main() {
	// Cancel the context on interrupt so the TUI can shut down cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
