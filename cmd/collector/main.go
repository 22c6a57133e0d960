package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/getcarekorea/content-engine/internal/app"
)

// One-shot collection sweep, for cron environments without Temporal.
func main() {
	daysAgo := flag.Int("days", 28, "length of the collection window in days")
	flag.Parse()

	ctx := context.Background()
	a, err := app.New(ctx)
	if err != nil {
		fmt.Printf("failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.Close(ctx)

	summary := a.Collector.CollectAll(ctx, *daysAgo)
	a.Log.Info("collection finished",
		"success", summary.Success,
		"pages_processed", summary.PagesProcessed,
		"new_records", summary.NewRecords,
		"updated_records", summary.UpdatedRecords,
		"high_performers", summary.HighPerformers,
		"errors", len(summary.Errors))
	for _, e := range summary.Errors {
		a.Log.Warn("collection error", "error", e)
	}
	if !summary.Success {
		os.Exit(1)
	}
}
