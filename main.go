package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/antonvyukov/snag/cmd"
)

func main() {
	// There is no transfer timeout by default, so an interrupt is the only
	// way out of a stalled fetch.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "snag:", err)
		os.Exit(1)
	}
}
