package performance

import (
	"context"

	"github.com/getcarekorea/content-engine/internal/data/repos"
	types "github.com/getcarekorea/content-engine/internal/domain"
	"github.com/getcarekorea/content-engine/internal/pkg/dbctx"
	"github.com/getcarekorea/content-engine/internal/platform/logger"
)

type TierBreakdown struct {
	Top int64 `json:"top"`
	Mid int64 `json:"mid"`
	Low int64 `json:"low"`
}

type Overview struct {
	Locale         string        `json:"locale,omitempty"`
	Category       string        `json:"category,omitempty"`
	Tiers          TierBreakdown `json:"tiers"`
	TotalRecords   int64         `json:"totalRecords"`
	ManualLearning int64         `json:"manualLearningRows"`
	AggregateRows  int64         `json:"aggregateLearningRows"`
}

// Reporter aggregates stored performance data for the admin dashboard.
type Reporter struct {
	log     *logger.Logger
	records repos.PerformanceRecordRepo
	learned repos.LearningDataRepo
}

func NewReporter(log *logger.Logger, records repos.PerformanceRecordRepo, learned repos.LearningDataRepo) *Reporter {
	return &Reporter{
		log:     log.With("service", "PerformanceReporter"),
		records: records,
		learned: learned,
	}
}

func (r *Reporter) Overview(ctx context.Context, locale, category string) (*Overview, error) {
	dbc := dbctx.New(ctx)

	counts, err := r.records.CountByTier(dbc, locale, category)
	if err != nil {
		return nil, err
	}
	out := &Overview{Locale: locale, Category: category}
	for _, tc := range counts {
		out.TotalRecords += tc.Count
		switch tc.Tier {
		case types.TierTop:
			out.Tiers.Top = tc.Count
		case types.TierMid:
			out.Tiers.Mid = tc.Count
		case types.TierLow:
			out.Tiers.Low = tc.Count
		}
	}

	if out.ManualLearning, err = r.learned.CountBySource(dbc, types.LearningSourceManual); err != nil {
		return nil, err
	}
	if out.AggregateRows, err = r.learned.CountBySource(dbc, types.LearningSourceAggregate); err != nil {
		return nil, err
	}
	return out, nil
}
