package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/mermaidlint/internal/cmd"
	"github.com/felixgeelhaar/mermaidlint/internal/exitcode"
)

func main() {
	// Create a context that listens for interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cmd.ExecuteContext(ctx)

	// Ctrl+C: a watch loop returns nil, a validation run returns ctx.Err()
	if errors.Is(ctx.Err(), context.Canceled) {
		fmt.Fprintln(os.Stderr, "\nOperation cancelled by user")
		exitcode.Exit(exitcode.Interrupted)
	}

	if err != nil {
		if !cmd.IsReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		exitcode.ExitWithError(err)
	}
	exitcode.Exit(exitcode.Success)
}
