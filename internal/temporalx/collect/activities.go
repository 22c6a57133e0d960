package collect

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.temporal.io/sdk/activity"

	"github.com/getcarekorea/content-engine/internal/data/repos"
	"github.com/getcarekorea/content-engine/internal/learning"
	"github.com/getcarekorea/content-engine/internal/performance"
	"github.com/getcarekorea/content-engine/internal/pkg/dbctx"
	"github.com/getcarekorea/content-engine/internal/platform/logger"
)

type Activities struct {
	Log       *logger.Logger
	Collector *performance.Collector
	Extractor *learning.Extractor
	Items     repos.ContentItemRepo
}

// Collect sweeps metrics for every published article in chunks, heartbeating
// after each chunk so stalled sweeps get retried instead of hanging.
func (a *Activities) Collect(ctx context.Context, in Input) (Result, error) {
	if a == nil || a.Collector == nil || a.Items == nil {
		return Result{}, fmt.Errorf("collect activity not configured")
	}

	items, err := a.Items.ListPublished(dbctx.New(ctx))
	if err != nil {
		return Result{}, fmt.Errorf("list published items: %w", err)
	}
	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}

	summary := a.Collector.CollectForItems(ctx, ids, in.DaysAgo, func(processed, total int) {
		activity.RecordHeartbeat(ctx, processed, total)
	})

	return Result{
		PagesProcessed: summary.PagesProcessed,
		NewRecords:     summary.NewRecords,
		UpdatedRecords: summary.UpdatedRecords,
		HighPerformers: summary.HighPerformers,
		Errors:         summary.Errors,
	}, nil
}

// PersistAggregates refreshes aggregate learning rows for every
// locale/category pair that has published content.
func (a *Activities) PersistAggregates(ctx context.Context) (int, error) {
	if a == nil || a.Extractor == nil || a.Items == nil {
		return 0, fmt.Errorf("aggregate activity not configured")
	}

	items, err := a.Items.ListPublished(dbctx.New(ctx))
	if err != nil {
		return 0, fmt.Errorf("list published items: %w", err)
	}

	seen := map[string]bool{}
	count := 0
	for _, it := range items {
		key := it.Locale + "|" + it.Category
		if seen[key] {
			continue
		}
		seen[key] = true

		row, err := a.Extractor.PersistAggregate(ctx, it.Locale, it.Category)
		if err != nil {
			a.Log.Warn("aggregate persist failed", "locale", it.Locale, "category", it.Category, "error", err)
			continue
		}
		if row != nil {
			count++
		}
		activity.RecordHeartbeat(ctx, count)
	}
	return count, nil
}
