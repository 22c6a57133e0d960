package performance

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/getcarekorea/content-engine/internal/data/repos"
	types "github.com/getcarekorea/content-engine/internal/domain"
	"github.com/getcarekorea/content-engine/internal/pkg/dbctx"
	"github.com/getcarekorea/content-engine/internal/platform/logger"
	"github.com/getcarekorea/content-engine/internal/platform/searchconsole"
)

const testBaseURL = "https://getcarekorea.com"

// --- fakes ---

type fakeSource struct {
	rows    []searchconsole.Row
	pages   map[string]*searchconsole.PageSummary
	fetchEr error
}

func (f *fakeSource) FetchAllPages(ctx context.Context, rangeStart, rangeEnd time.Time, rowLimit int64) ([]searchconsole.Row, error) {
	if f.fetchEr != nil {
		return nil, f.fetchEr
	}
	return f.rows, nil
}

func (f *fakeSource) FetchPage(ctx context.Context, pageURL string, rangeStart, rangeEnd time.Time, rowLimit int64) (*searchconsole.PageSummary, error) {
	if f.fetchEr != nil {
		return nil, f.fetchEr
	}
	if s, ok := f.pages[pageURL]; ok {
		return s, nil
	}
	return &searchconsole.PageSummary{Page: pageURL}, nil
}

type fakeItemRepo struct {
	items map[uuid.UUID]*types.ContentItem
}

func newFakeItemRepo(items ...*types.ContentItem) *fakeItemRepo {
	m := map[uuid.UUID]*types.ContentItem{}
	for _, it := range items {
		m[it.ID] = it
	}
	return &fakeItemRepo{items: m}
}

func (f *fakeItemRepo) Create(dbc dbctx.Context, rows []*types.ContentItem) ([]*types.ContentItem, error) {
	for _, r := range rows {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		f.items[r.ID] = r
	}
	return rows, nil
}

func (f *fakeItemRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ContentItem, error) {
	return f.items[id], nil
}

func (f *fakeItemRepo) GetBySlug(dbc dbctx.Context, locale, slug string) (*types.ContentItem, error) {
	for _, it := range f.items {
		if it.Locale == locale && it.Slug == slug {
			return it, nil
		}
	}
	return nil, nil
}

func (f *fakeItemRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.ContentItem, error) {
	out := []*types.ContentItem{}
	for _, id := range ids {
		if it, ok := f.items[id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeItemRepo) ListPublished(dbc dbctx.Context) ([]*types.ContentItem, error) {
	out := []*types.ContentItem{}
	for _, it := range f.items {
		if it.Status == types.StatusPublished {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeItemRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, fields map[string]interface{}) error {
	return nil
}

type fakePerfRepo struct {
	rows     map[string]*types.PerformanceRecord
	upserts  int
	failSlug func(rec *types.PerformanceRecord) bool
	itemRepo *fakeItemRepo
}

func newFakePerfRepo(items *fakeItemRepo) *fakePerfRepo {
	return &fakePerfRepo{rows: map[string]*types.PerformanceRecord{}, itemRepo: items}
}

func perfKey(itemID uuid.UUID, start, end datatypes.Date) string {
	return fmt.Sprintf("%s|%s|%s", itemID,
		time.Time(start).Format("2006-01-02"), time.Time(end).Format("2006-01-02"))
}

func (f *fakePerfRepo) GetByKey(dbc dbctx.Context, contentItemID uuid.UUID, rangeStart, rangeEnd datatypes.Date) (*types.PerformanceRecord, error) {
	return f.rows[perfKey(contentItemID, rangeStart, rangeEnd)], nil
}

func (f *fakePerfRepo) Upsert(dbc dbctx.Context, row *types.PerformanceRecord) error {
	if f.failSlug != nil && f.failSlug(row) {
		return fmt.Errorf("injected upsert failure")
	}
	f.upserts++
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	cp := *row
	f.rows[perfKey(row.ContentItemID, row.RangeStart, row.RangeEnd)] = &cp
	return nil
}

func (f *fakePerfRepo) ListByContentItem(dbc dbctx.Context, contentItemID uuid.UUID) ([]*types.PerformanceRecord, error) {
	out := []*types.PerformanceRecord{}
	for _, r := range f.rows {
		if r.ContentItemID == contentItemID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakePerfRepo) ListHighPerformers(dbc dbctx.Context, locale, category string, since time.Time, limit int) ([]*types.PerformanceRecord, error) {
	out := []*types.PerformanceRecord{}
	for _, r := range f.rows {
		if !r.IsHighPerformer {
			continue
		}
		item := f.itemRepo.items[r.ContentItemID]
		if item == nil || item.Locale != locale {
			continue
		}
		if category != "" && item.Category != category {
			continue
		}
		cp := *r
		cp.ContentItem = item
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakePerfRepo) CountByTier(dbc dbctx.Context, locale, category string) ([]repos.TierCount, error) {
	counts := map[string]int64{}
	for _, r := range f.rows {
		counts[r.Tier]++
	}
	out := []repos.TierCount{}
	for tier, n := range counts {
		out = append(out, repos.TierCount{Tier: tier, Count: n})
	}
	return out, nil
}

func testCollector(t *testing.T, src searchconsole.Client, items *fakeItemRepo, perf *fakePerfRepo) *Collector {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	cfg := DefaultConfig(testBaseURL)
	cfg.ChunkDelay = 0
	cfg.ChunkSize = 2
	return NewCollector(log, src, items, perf, cfg)
}

func publishedItem(locale, slug, category string) *types.ContentItem {
	now := time.Now().UTC()
	return &types.ContentItem{
		ID:          uuid.New(),
		Slug:        slug,
		Locale:      locale,
		Category:    category,
		Status:      types.StatusPublished,
		PublishedAt: &now,
	}
}

// --- tests ---

func TestCollectAllEndToEnd(t *testing.T) {
	item := publishedItem("en", "rhinoplasty-guide", "plastic-surgery")
	items := newFakeItemRepo(item)
	perf := newFakePerfRepo(items)
	src := &fakeSource{rows: []searchconsole.Row{
		{Page: testBaseURL + "/en/blog/rhinoplasty-guide", Clicks: 60, Impressions: 600, CTR: 0.1, Position: 8},
		{Page: testBaseURL + "/en/about"}, // non-article page
	}}

	summary := testCollector(t, src, items, perf).CollectAll(context.Background(), 28)

	if !summary.Success {
		t.Fatalf("expected success, errors=%v", summary.Errors)
	}
	if summary.PagesProcessed != 2 {
		t.Fatalf("pagesProcessed = %d, want 2", summary.PagesProcessed)
	}
	if summary.NewRecords != 1 || summary.UpdatedRecords != 0 {
		t.Fatalf("newRecords=%d updatedRecords=%d, want 1/0", summary.NewRecords, summary.UpdatedRecords)
	}
	if summary.HighPerformers != 1 {
		t.Fatalf("highPerformers = %d, want 1", summary.HighPerformers)
	}
	if len(summary.Errors) != 0 {
		t.Fatalf("errors = %v, want none", summary.Errors)
	}

	recs, _ := perf.ListByContentItem(dbctx.New(context.Background()), item.ID)
	if len(recs) != 1 {
		t.Fatalf("stored records = %d, want 1", len(recs))
	}
	if recs[0].Tier != types.TierTop || !recs[0].IsHighPerformer {
		t.Fatalf("stored record tier=%q high=%v, want top/true", recs[0].Tier, recs[0].IsHighPerformer)
	}
}

func TestCollectAllMatchesTrailingSlash(t *testing.T) {
	item := publishedItem("en", "lasik-cost", "ophthalmology")
	items := newFakeItemRepo(item)
	perf := newFakePerfRepo(items)
	src := &fakeSource{rows: []searchconsole.Row{
		{Page: testBaseURL + "/en/blog/lasik-cost/", Clicks: 5, Impressions: 200, CTR: 0.025, Position: 15},
	}}

	summary := testCollector(t, src, items, perf).CollectAll(context.Background(), 28)
	if summary.NewRecords != 1 {
		t.Fatalf("trailing-slash URL not matched: %+v", summary)
	}
}

func TestCollectAllUpsertIdempotence(t *testing.T) {
	item := publishedItem("en", "rhinoplasty-guide", "plastic-surgery")
	items := newFakeItemRepo(item)
	perf := newFakePerfRepo(items)
	src := &fakeSource{rows: []searchconsole.Row{
		{Page: testBaseURL + "/en/blog/rhinoplasty-guide", Clicks: 60, Impressions: 600, CTR: 0.1, Position: 8},
	}}
	c := testCollector(t, src, items, perf)

	first := c.CollectAll(context.Background(), 28)
	second := c.CollectAll(context.Background(), 28)

	if first.NewRecords != 1 || first.UpdatedRecords != 0 {
		t.Fatalf("first run: new=%d updated=%d", first.NewRecords, first.UpdatedRecords)
	}
	if second.NewRecords != 0 || second.UpdatedRecords != 1 {
		t.Fatalf("second run: new=%d updated=%d", second.NewRecords, second.UpdatedRecords)
	}
	if len(perf.rows) != 1 {
		t.Fatalf("stored rows = %d, want exactly 1 per (item, range)", len(perf.rows))
	}
}

func TestCollectAllPartialFailureIsolation(t *testing.T) {
	items := newFakeItemRepo()
	var rows []searchconsole.Row
	var failID uuid.UUID
	for i := 0; i < 10; i++ {
		it := publishedItem("en", fmt.Sprintf("article-%d", i), "dermatology")
		items.items[it.ID] = it
		if i == 4 {
			failID = it.ID
		}
		rows = append(rows, searchconsole.Row{
			Page: testBaseURL + "/en/blog/" + it.Slug, Clicks: 20, Impressions: 400, CTR: 0.05, Position: 12,
		})
	}
	perf := newFakePerfRepo(items)
	perf.failSlug = func(rec *types.PerformanceRecord) bool { return rec.ContentItemID == failID }
	src := &fakeSource{rows: rows}

	summary := testCollector(t, src, items, perf).CollectAll(context.Background(), 28)

	if !summary.Success {
		t.Fatalf("batch should succeed despite one bad record")
	}
	if len(summary.Errors) != 1 {
		t.Fatalf("errors = %d (%v), want 1", len(summary.Errors), summary.Errors)
	}
	if got := summary.NewRecords + summary.UpdatedRecords; got != 9 {
		t.Fatalf("records written = %d, want 9", got)
	}
}

func TestCollectAllSourceUnavailable(t *testing.T) {
	items := newFakeItemRepo()
	perf := newFakePerfRepo(items)

	summary := testCollector(t, nil, items, perf).CollectAll(context.Background(), 28)

	if summary.Success {
		t.Fatal("expected failure when source is not configured")
	}
	if summary.PagesProcessed != 0 || summary.NewRecords != 0 {
		t.Fatalf("expected zero processed counts, got %+v", summary)
	}
	if len(summary.Errors) != 1 {
		t.Fatalf("expected one explanatory error, got %v", summary.Errors)
	}
}

func TestCollectForItemUnknown(t *testing.T) {
	items := newFakeItemRepo()
	perf := newFakePerfRepo(items)
	src := &fakeSource{}

	rec, err := testCollector(t, src, items, perf).CollectForItem(context.Background(), uuid.New(), 28)
	if err != nil || rec != nil {
		t.Fatalf("unknown item: rec=%v err=%v, want nil/nil", rec, err)
	}
}

func TestCollectForItemsChunkedProgress(t *testing.T) {
	items := newFakeItemRepo()
	pages := map[string]*searchconsole.PageSummary{}
	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		it := publishedItem("en", fmt.Sprintf("chunked-%d", i), "dental")
		items.items[it.ID] = it
		ids = append(ids, it.ID)
		url := testBaseURL + "/en/blog/" + it.Slug
		pages[url] = &searchconsole.PageSummary{Page: url, Clicks: 60, Impressions: 600, CTR: 0.1, Position: 5}
	}
	perf := newFakePerfRepo(items)
	src := &fakeSource{pages: pages}

	var progress []string
	summary := testCollector(t, src, items, perf).CollectForItems(context.Background(), ids, 28, func(done, total int) {
		progress = append(progress, fmt.Sprintf("%d/%d", done, total))
	})

	if !summary.Success || summary.NewRecords != 5 {
		t.Fatalf("summary = %+v", summary)
	}
	want := "2/5,4/5,5/5"
	if got := strings.Join(progress, ","); got != want {
		t.Fatalf("progress = %s, want %s", got, want)
	}
	if summary.HighPerformers != 5 {
		t.Fatalf("highPerformers = %d, want 5", summary.HighPerformers)
	}
}

func TestBuildRecordZeroImpressions(t *testing.T) {
	items := newFakeItemRepo()
	perf := newFakePerfRepo(items)
	c := testCollector(t, &fakeSource{}, items, perf)

	rec := c.buildRecord(uuid.New(), time.Now(), time.Now(), searchconsole.PageSummary{CTR: 0.5})
	if rec.CTR != 0 {
		t.Fatalf("ctr with zero impressions = %v, want 0", rec.CTR)
	}
	if rec.Tier != types.TierLow {
		t.Fatalf("tier = %q, want low", rec.Tier)
	}
}
