package performance

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"github.com/getcarekorea/content-engine/internal/data/repos"
	contentrepos "github.com/getcarekorea/content-engine/internal/data/repos/content"
	types "github.com/getcarekorea/content-engine/internal/domain"
	"github.com/getcarekorea/content-engine/internal/pkg/dbctx"
	"github.com/getcarekorea/content-engine/internal/platform/logger"
	"github.com/getcarekorea/content-engine/internal/platform/searchconsole"
)

const defaultDaysAgo = 28

// Config tunes batch collection. ChunkDelay is a deliberate throttle against
// the analytics API quota, not an optimization.
type Config struct {
	SiteBaseURL string
	RowLimit    int64
	ChunkSize   int
	ChunkDelay  time.Duration
	Thresholds  Thresholds
}

func DefaultConfig(siteBaseURL string) Config {
	return Config{
		SiteBaseURL: siteBaseURL,
		RowLimit:    1000,
		ChunkSize:   10,
		ChunkDelay:  2 * time.Second,
		Thresholds:  DefaultThresholds(),
	}
}

// Summary is the operational result of a collection run, meant for job
// monitoring rather than end users.
type Summary struct {
	Success        bool     `json:"success"`
	PagesProcessed int      `json:"pages_processed"`
	NewRecords     int      `json:"new_records"`
	UpdatedRecords int      `json:"updated_records"`
	HighPerformers int      `json:"high_performers"`
	Errors         []string `json:"errors"`
}

// ProgressFunc receives (processed, total) after each chunk of a batched
// per-item run.
type ProgressFunc func(processed, total int)

type Collector struct {
	log     *logger.Logger
	source  searchconsole.Client
	items   repos.ContentItemRepo
	records repos.PerformanceRecordRepo
	cfg     Config
}

// NewCollector accepts a nil source when Search Console is not configured;
// collection calls then degrade as documented instead of panicking.
func NewCollector(
	log *logger.Logger,
	source searchconsole.Client,
	items repos.ContentItemRepo,
	records repos.PerformanceRecordRepo,
	cfg Config,
) *Collector {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 10
	}
	if cfg.RowLimit <= 0 {
		cfg.RowLimit = 1000
	}
	return &Collector{
		log:     log.With("service", "PerformanceCollector"),
		source:  source,
		items:   items,
		records: records,
		cfg:     cfg,
	}
}

// resolveRange returns an inclusive date range of daysAgo days ending just
// outside the provider's reporting lag.
func resolveRange(daysAgo int, now time.Time) (time.Time, time.Time) {
	if daysAgo <= 0 {
		daysAgo = defaultDaysAgo
	}
	end := now.UTC().Add(-searchconsole.ReportingLag).Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -(daysAgo - 1))
	return start, end
}

// CollectAll fetches site-wide page performance and upserts one record per
// known article. Rows for non-article pages are counted as processed and
// skipped; a failed upsert is recorded and does not stop the batch.
func (c *Collector) CollectAll(ctx context.Context, daysAgo int) *Summary {
	summary := &Summary{Errors: []string{}}
	if c.source == nil {
		summary.Errors = append(summary.Errors, searchconsole.ErrNotConfigured.Error())
		return summary
	}

	rangeStart, rangeEnd := resolveRange(daysAgo, time.Now())

	rows, err := c.source.FetchAllPages(ctx, rangeStart, rangeEnd, c.cfg.RowLimit)
	if err != nil {
		summary.Errors = append(summary.Errors, fmt.Sprintf("fetch page performance: %v", err))
		return summary
	}

	dbc := dbctx.New(ctx)
	published, err := c.items.ListPublished(dbc)
	if err != nil {
		summary.Errors = append(summary.Errors, fmt.Sprintf("load content items: %v", err))
		return summary
	}
	byURL := c.buildURLIndex(published)

	for _, row := range rows {
		summary.PagesProcessed++

		item, ok := byURL[normalizeURL(row.Page)]
		if !ok {
			continue // non-article page
		}

		rec := c.buildRecord(item.ID, rangeStart, rangeEnd, searchconsole.PageSummary{
			Page:        row.Page,
			Clicks:      row.Clicks,
			Impressions: row.Impressions,
			CTR:         row.CTR,
			Position:    row.Position,
		})

		created, err := c.upsert(dbc, rec)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("upsert %s: %v", item.Slug, err))
			continue
		}
		if created {
			summary.NewRecords++
		} else {
			summary.UpdatedRecords++
		}
		if rec.IsHighPerformer {
			summary.HighPerformers++
		}
	}

	summary.Success = true
	c.log.Info("batch collection finished",
		"pages_processed", summary.PagesProcessed,
		"new_records", summary.NewRecords,
		"updated_records", summary.UpdatedRecords,
		"high_performers", summary.HighPerformers,
		"errors", len(summary.Errors))
	return summary
}

// CollectForItem collects one article's per-query performance. Returns
// (nil, nil) when the adapter is unavailable or the item is unknown.
func (c *Collector) CollectForItem(ctx context.Context, contentItemID uuid.UUID, daysAgo int) (*types.PerformanceRecord, error) {
	rec, _, err := c.collectItem(ctx, contentItemID, daysAgo)
	return rec, err
}

func (c *Collector) collectItem(ctx context.Context, contentItemID uuid.UUID, daysAgo int) (*types.PerformanceRecord, bool, error) {
	if c.source == nil {
		return nil, false, nil
	}
	dbc := dbctx.New(ctx)
	item, err := c.items.GetByID(dbc, contentItemID)
	if err != nil {
		return nil, false, fmt.Errorf("load content item: %w", err)
	}
	if item == nil {
		return nil, false, nil
	}

	rangeStart, rangeEnd := resolveRange(daysAgo, time.Now())

	pageURL := c.itemURL(item)
	pageSummary, err := c.source.FetchPage(ctx, pageURL, rangeStart, rangeEnd, 100)
	if err != nil {
		return nil, false, fmt.Errorf("fetch page performance for %s: %w", item.Slug, err)
	}

	rec := c.buildRecord(item.ID, rangeStart, rangeEnd, *pageSummary)
	created, err := c.upsert(dbc, rec)
	if err != nil {
		return nil, false, fmt.Errorf("upsert performance record for %s: %w", item.Slug, err)
	}
	return rec, created, nil
}

// CollectForItems runs CollectForItem over ids in fixed-size chunks with a
// delay between chunks. Items within a chunk run concurrently; chunks are
// strictly sequential. onProgress fires after each chunk.
func (c *Collector) CollectForItems(ctx context.Context, ids []uuid.UUID, daysAgo int, onProgress ProgressFunc) *Summary {
	summary := &Summary{Errors: []string{}}
	if c.source == nil {
		summary.Errors = append(summary.Errors, searchconsole.ErrNotConfigured.Error())
		return summary
	}

	total := len(ids)
	processed := 0
	var mu sync.Mutex

	for start := 0; start < total; start += c.cfg.ChunkSize {
		end := start + c.cfg.ChunkSize
		if end > total {
			end = total
		}
		chunk := ids[start:end]

		g, gctx := errgroup.WithContext(ctx)
		for _, id := range chunk {
			id := id
			g.Go(func() error {
				rec, created, err := c.collectItem(gctx, id, daysAgo)
				mu.Lock()
				defer mu.Unlock()
				summary.PagesProcessed++
				switch {
				case err != nil:
					summary.Errors = append(summary.Errors, fmt.Sprintf("item %s: %v", id, err))
				case rec == nil:
					// unknown item; seen but nothing to record
				case created:
					summary.NewRecords++
				default:
					summary.UpdatedRecords++
				}
				if rec != nil && rec.IsHighPerformer {
					summary.HighPerformers++
				}
				return nil
			})
		}
		_ = g.Wait()

		processed = end
		if onProgress != nil {
			onProgress(processed, total)
		}
		if end < total && c.cfg.ChunkDelay > 0 {
			time.Sleep(c.cfg.ChunkDelay)
		}
	}

	summary.Success = true
	return summary
}

// upsert writes rec and reports whether a new row was created for its
// (item, range) key.
func (c *Collector) upsert(dbc dbctx.Context, rec *types.PerformanceRecord) (created bool, err error) {
	existing, err := c.records.GetByKey(dbc, rec.ContentItemID, rec.RangeStart, rec.RangeEnd)
	if err != nil {
		return false, err
	}
	if existing != nil {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
	}
	if err := c.records.Upsert(dbc, rec); err != nil {
		// A concurrent run inserted the row between GetByKey and Upsert.
		// ON CONFLICT resolves the metrics; only the created count is off.
		if contentrepos.IsUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}
	return existing == nil, nil
}

func (c *Collector) buildRecord(itemID uuid.UUID, rangeStart, rangeEnd time.Time, s searchconsole.PageSummary) *types.PerformanceRecord {
	ctr := s.CTR
	if s.Impressions == 0 {
		ctr = 0
	}
	tier := ClassifyTier(ctr, s.Position, c.cfg.Thresholds)
	high := IsHighPerformer(ctr, s.Clicks, s.Position, s.Impressions, c.cfg.Thresholds)

	topQueries := datatypes.JSON([]byte("[]"))
	if len(s.Queries) > 0 {
		if raw, err := json.Marshal(s.Queries); err == nil {
			topQueries = datatypes.JSON(raw)
		}
	}

	return &types.PerformanceRecord{
		ContentItemID:   itemID,
		RangeStart:      datatypes.Date(rangeStart),
		RangeEnd:        datatypes.Date(rangeEnd),
		Impressions:     s.Impressions,
		Clicks:          s.Clicks,
		CTR:             ctr,
		AvgPosition:     s.Position,
		Tier:            tier,
		IsHighPerformer: high,
		TopQueries:      topQueries,
	}
}

func (c *Collector) itemURL(item *types.ContentItem) string {
	base := strings.TrimRight(c.cfg.SiteBaseURL, "/")
	return fmt.Sprintf("%s/%s/blog/%s", base, item.Locale, item.Slug)
}

// buildURLIndex maps normalized article URLs to their content items.
// Incoming row URLs are normalized the same way, so trailing-slash
// variants resolve to the same entry.
func (c *Collector) buildURLIndex(items []*types.ContentItem) map[string]*types.ContentItem {
	out := make(map[string]*types.ContentItem, len(items))
	for _, item := range items {
		out[normalizeURL(c.itemURL(item))] = item
	}
	return out
}

func normalizeURL(u string) string {
	return strings.TrimRight(strings.TrimSpace(u), "/")
}
