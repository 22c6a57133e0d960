package learning

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	redisclient "github.com/getcarekorea/content-engine/internal/clients/redis"
	"github.com/getcarekorea/content-engine/internal/data/repos"
	types "github.com/getcarekorea/content-engine/internal/domain"
	"github.com/getcarekorea/content-engine/internal/pkg/dbctx"
	"github.com/getcarekorea/content-engine/internal/platform/logger"
)

// minSameCategoryPool is how many same-category high performers must exist
// before we stop broadening to cross-category candidates.
const minSameCategoryPool = 3

const (
	defaultLookbackDays  = 90
	defaultMaxCandidates = 10
	cacheTTL             = 30 * time.Minute
)

// ContextV1 is the prompt-ready learning bundle. Zero value means "no
// learning signal available" and is always safe to use downstream.
type ContextV1 struct {
	Version         int      `json:"version"`
	LearningContext string   `json:"learning_context"`
	Patterns        []string `json:"patterns"`
	Recommendations []string `json:"recommendations"`
	Broadened       bool     `json:"broadened,omitempty"`
}

func (c ContextV1) Empty() bool { return c.LearningContext == "" }

type Extractor struct {
	log     *logger.Logger
	items   repos.ContentItemRepo
	records repos.PerformanceRecordRepo
	learned repos.LearningDataRepo
	cache   redisclient.Cache // optional
}

func NewExtractor(
	log *logger.Logger,
	items repos.ContentItemRepo,
	records repos.PerformanceRecordRepo,
	learned repos.LearningDataRepo,
	cache redisclient.Cache,
) *Extractor {
	return &Extractor{
		log:     log.With("service", "LearningExtractor"),
		items:   items,
		records: records,
		learned: learned,
		cache:   cache,
	}
}

// BuildLearningContext assembles patterns and recommendations for a
// generation request. Data-access failures degrade to an empty context;
// generation must never be blocked on learning enrichment.
func (e *Extractor) BuildLearningContext(ctx context.Context, keyword, locale, category string) ContextV1 {
	locale = strings.TrimSpace(strings.ToLower(locale))
	category = strings.TrimSpace(category)

	cacheKey := fmt.Sprintf("learning:v1:%s:%s", locale, category)
	if e.cache != nil {
		var cached ContextV1
		if e.cache.GetJSON(ctx, cacheKey, &cached) {
			return cached
		}
	}

	out := e.build(ctx, locale, category)

	if e.cache != nil && !out.Empty() {
		e.cache.SetJSON(ctx, cacheKey, out, cacheTTL)
	}
	return out
}

func (e *Extractor) build(ctx context.Context, locale, category string) ContextV1 {
	dbc := dbctx.New(ctx)
	since := time.Now().UTC().AddDate(0, 0, -defaultLookbackDays)

	recs, err := e.records.ListHighPerformers(dbc, locale, category, since, defaultMaxCandidates)
	if err != nil {
		e.log.Warn("high-performer lookup failed, returning empty learning context",
			"locale", locale, "category", category, "error", err)
		return ContextV1{}
	}

	broadened := false
	if len(recs) < minSameCategoryPool && category != "" {
		cross, err := e.records.ListHighPerformers(dbc, locale, "", since, defaultMaxCandidates)
		if err != nil {
			e.log.Warn("cross-category fallback lookup failed", "locale", locale, "error", err)
		} else if len(cross) > len(recs) {
			recs = cross
			broadened = true
		}
	}

	patterns, recommendations := derivePatterns(recs)

	// Admin-sourced learning rows carry curated guidance; append their
	// pattern text after the aggregate observations.
	manual, err := e.learned.ListRecent(dbc, locale, category, 5)
	if err != nil {
		e.log.Warn("learning-data lookup failed, continuing without manual patterns", "error", err)
	} else {
		for _, row := range manual {
			if p := strings.TrimSpace(row.Pattern); p != "" {
				patterns = append(patterns, p)
			}
		}
	}

	if len(patterns) == 0 && len(recommendations) == 0 {
		return ContextV1{}
	}

	return ContextV1{
		Version:         1,
		LearningContext: renderContext(locale, category, patterns, recommendations),
		Patterns:        patterns,
		Recommendations: recommendations,
		Broadened:       broadened,
	}
}

func renderContext(locale, category string, patterns, recommendations []string) string {
	var b strings.Builder
	scope := locale
	if category != "" {
		scope += " / " + category
	}
	fmt.Fprintf(&b, "Performance signals from published articles (%s):\n", scope)
	if len(patterns) > 0 {
		b.WriteString("Observed patterns:\n")
		for _, p := range patterns {
			b.WriteString("- " + p + "\n")
		}
	}
	if len(recommendations) > 0 {
		b.WriteString("Recommendations:\n")
		for _, r := range recommendations {
			b.WriteString("- " + r + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// PersistAggregate runs the high-performer analysis for one locale/category
// and stores the result as an aggregate learning row. Used by the scheduled
// analysis job after collection runs.
func (e *Extractor) PersistAggregate(ctx context.Context, locale, category string) (*types.LearningDataRecord, error) {
	dbc := dbctx.New(ctx)
	since := time.Now().UTC().AddDate(0, 0, -defaultLookbackDays)

	recs, err := e.records.ListHighPerformers(dbc, locale, category, since, defaultMaxCandidates)
	if err != nil {
		return nil, fmt.Errorf("list high performers: %w", err)
	}
	patterns, recommendations := derivePatterns(recs)
	if len(patterns) == 0 {
		return nil, nil
	}

	sampleIDs := make([]uuid.UUID, 0, len(recs))
	for _, r := range recs {
		sampleIDs = append(sampleIDs, r.ContentItemID)
	}
	observation, err := json.Marshal(map[string]any{
		"patterns":        patterns,
		"recommendations": recommendations,
		"sample_item_ids": sampleIDs,
	})
	if err != nil {
		return nil, err
	}

	row := &types.LearningDataRecord{
		SourceType:  types.LearningSourceAggregate,
		Locale:      locale,
		Category:    category,
		Pattern:     strings.Join(patterns, " "),
		Observation: datatypes.JSON(observation),
	}
	created, err := e.learned.Create(dbc, []*types.LearningDataRecord{row})
	if err != nil {
		return nil, fmt.Errorf("persist aggregate learning row: %w", err)
	}
	return created[0], nil
}
