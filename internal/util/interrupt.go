package util

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

var exit = os.Exit

// SetupInterruptHandler returns a context cancelled on the first SIGINT or
// SIGTERM so the caller can save what it already has. A second signal
// exits at once with status 0. Call stop once the work is finished.
func SetupInterruptHandler(parent context.Context) (ctx context.Context, stop func()) {
	ctx, cancel := context.WithCancel(parent)

	sig := make(chan os.Signal, 2)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})

	go func() {
		select {
		case <-sig:
			fmt.Println("\nInterrupt received. Saving downloaded chapters...")
			cancel()
		case <-done:
			return
		}

		select {
		case <-sig:
			fmt.Println("\nExiting due to second interrupt. The last chapter may be incomplete.")
			exit(0)
		case <-done:
		}
	}()

	return ctx, func() {
		signal.Stop(sig)
		close(done)
		cancel()
	}
}
