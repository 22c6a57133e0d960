package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/getcarekorea/content-engine/internal/app"
	"github.com/getcarekorea/content-engine/internal/temporalx/temporalworker"
)

// Temporal worker: hosts the scheduled performance-collection workflow.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx)
	if err != nil {
		fmt.Printf("failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.Close(context.Background())

	if a.Temporal == nil {
		a.Log.Error("TEMPORAL_ADDRESS is required for the worker")
		os.Exit(1)
	}

	runner, err := temporalworker.NewRunner(a.Log, a.Temporal, a.Activities)
	if err != nil {
		a.Log.Error("worker init failed", "error", err)
		os.Exit(1)
	}
	if err := runner.Start(ctx); err != nil {
		a.Log.Error("worker exited", "error", err)
		os.Exit(1)
	}
}
