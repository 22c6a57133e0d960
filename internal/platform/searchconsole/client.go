package searchconsole

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"google.golang.org/api/option"
	searchconsole "google.golang.org/api/searchconsole/v1"

	"github.com/getcarekorea/content-engine/internal/platform/logger"
)

// ErrNotConfigured signals missing Search Console credentials. Callers skip
// collection instead of failing when they see it.
var ErrNotConfigured = errors.New("search console not configured")

// ReportingLag is how far behind "now" Search Console data is considered
// stable. Date ranges must end at least this far in the past.
const ReportingLag = 48 * time.Hour

const dateLayout = "2006-01-02"

// Row is one analytics row, keyed by page and optionally by query.
type Row struct {
	Page        string  `json:"page"`
	Query       string  `json:"query,omitempty"`
	Clicks      int64   `json:"clicks"`
	Impressions int64   `json:"impressions"`
	CTR         float64 `json:"ctr"`
	Position    float64 `json:"position"`
}

// PageSummary aggregates all query rows for a single page. Position is
// impression-weighted across queries.
type PageSummary struct {
	Page        string  `json:"page"`
	Clicks      int64   `json:"clicks"`
	Impressions int64   `json:"impressions"`
	CTR         float64 `json:"ctr"`
	Position    float64 `json:"position"`
	Queries     []Row   `json:"queries"`
}

// Client is the metrics source adapter over the Search Console query API.
type Client interface {
	// FetchAllPages returns per-page totals (aggregated across queries) for
	// the whole site over the inclusive date range.
	FetchAllPages(ctx context.Context, rangeStart, rangeEnd time.Time, rowLimit int64) ([]Row, error)
	// FetchPage returns the per-query breakdown for one page, summarized.
	FetchPage(ctx context.Context, pageURL string, rangeStart, rangeEnd time.Time, rowLimit int64) (*PageSummary, error)
}

type client struct {
	log     *logger.Logger
	svc     *searchconsole.Service
	siteURL string
}

// NewClient builds the adapter from GSC_SITE_URL plus either
// GSC_CREDENTIALS_FILE or GSC_CREDENTIALS_JSON. Returns ErrNotConfigured
// when any of those are absent.
func NewClient(ctx context.Context, log *logger.Logger) (Client, error) {
	siteURL := strings.TrimSpace(os.Getenv("GSC_SITE_URL"))
	credsFile := strings.TrimSpace(os.Getenv("GSC_CREDENTIALS_FILE"))
	credsJSON := strings.TrimSpace(os.Getenv("GSC_CREDENTIALS_JSON"))
	if siteURL == "" || (credsFile == "" && credsJSON == "") {
		return nil, ErrNotConfigured
	}

	opts := []option.ClientOption{option.WithScopes(searchconsole.WebmastersReadonlyScope)}
	if credsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credsFile))
	} else {
		opts = append(opts, option.WithCredentialsJSON([]byte(credsJSON)))
	}

	svc, err := searchconsole.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("search console service init: %w", err)
	}

	return &client{
		log:     log.With("client", "SearchConsole"),
		svc:     svc,
		siteURL: siteURL,
	}, nil
}

func validateRange(rangeStart, rangeEnd time.Time) error {
	if rangeStart.After(rangeEnd) {
		return fmt.Errorf("range start %s is after range end %s",
			rangeStart.Format(dateLayout), rangeEnd.Format(dateLayout))
	}
	latest := time.Now().UTC().Add(-ReportingLag)
	if rangeEnd.After(latest) {
		return fmt.Errorf("range end %s is within the %s reporting lag",
			rangeEnd.Format(dateLayout), ReportingLag)
	}
	return nil
}

func (c *client) query(ctx context.Context, req *searchconsole.SearchAnalyticsQueryRequest) ([]*searchconsole.ApiDataRow, error) {
	resp, err := c.svc.Searchanalytics.Query(c.siteURL, req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("search console query failed: %w", err)
	}
	return resp.Rows, nil
}

func (c *client) FetchAllPages(ctx context.Context, rangeStart, rangeEnd time.Time, rowLimit int64) ([]Row, error) {
	if err := validateRange(rangeStart, rangeEnd); err != nil {
		return nil, err
	}
	if rowLimit <= 0 {
		rowLimit = 1000
	}

	rows, err := c.query(ctx, &searchconsole.SearchAnalyticsQueryRequest{
		StartDate:  rangeStart.Format(dateLayout),
		EndDate:    rangeEnd.Format(dateLayout),
		Dimensions: []string{"page"},
		RowLimit:   rowLimit,
		DataState:  "final",
	})
	if err != nil {
		return nil, err
	}

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r == nil || len(r.Keys) == 0 {
			continue
		}
		out = append(out, Row{
			Page:        r.Keys[0],
			Clicks:      int64(r.Clicks),
			Impressions: int64(r.Impressions),
			CTR:         r.Ctr,
			Position:    r.Position,
		})
	}
	c.log.Debug("fetched all-pages performance",
		"rows", len(out),
		"range_start", rangeStart.Format(dateLayout),
		"range_end", rangeEnd.Format(dateLayout))
	return out, nil
}

func (c *client) FetchPage(ctx context.Context, pageURL string, rangeStart, rangeEnd time.Time, rowLimit int64) (*PageSummary, error) {
	if err := validateRange(rangeStart, rangeEnd); err != nil {
		return nil, err
	}
	pageURL = strings.TrimSpace(pageURL)
	if pageURL == "" {
		return nil, fmt.Errorf("page url required")
	}
	if rowLimit <= 0 {
		rowLimit = 100
	}

	rows, err := c.query(ctx, &searchconsole.SearchAnalyticsQueryRequest{
		StartDate:  rangeStart.Format(dateLayout),
		EndDate:    rangeEnd.Format(dateLayout),
		Dimensions: []string{"query"},
		RowLimit:   rowLimit,
		DataState:  "final",
		DimensionFilterGroups: []*searchconsole.ApiDimensionFilterGroup{
			{
				Filters: []*searchconsole.ApiDimensionFilter{
					{Dimension: "page", Operator: "equals", Expression: pageURL},
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	queries := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r == nil || len(r.Keys) == 0 {
			continue
		}
		queries = append(queries, Row{
			Page:        pageURL,
			Query:       r.Keys[0],
			Clicks:      int64(r.Clicks),
			Impressions: int64(r.Impressions),
			CTR:         r.Ctr,
			Position:    r.Position,
		})
	}

	summary := SummarizeQueries(pageURL, queries)
	return &summary, nil
}
