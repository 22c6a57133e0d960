package performance

import (
	types "github.com/getcarekorea/content-engine/internal/domain"
)

// Thresholds controls tier classification and the high-performer gate.
// Defaults mirror the dashboards the marketing team already reads, so keep
// changes coordinated with them.
type Thresholds struct {
	TopCTR      float64 `yaml:"top_ctr"`
	TopPosition float64 `yaml:"top_position"`

	MidCTRMin      float64 `yaml:"mid_ctr_min"`
	MidCTRMax      float64 `yaml:"mid_ctr_max"`
	MidPositionMin float64 `yaml:"mid_position_min"`
	MidPositionMax float64 `yaml:"mid_position_max"`

	HighPerformerCTR         float64 `yaml:"high_performer_ctr"`
	HighPerformerClicks      int64   `yaml:"high_performer_clicks"`
	HighPerformerPosition    float64 `yaml:"high_performer_position"`
	HighPerformerImpressions int64   `yaml:"high_performer_impressions"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		TopCTR:      0.05,
		TopPosition: 10,

		MidCTRMin:      0.02,
		MidCTRMax:      0.05,
		MidPositionMin: 10,
		MidPositionMax: 30,

		HighPerformerCTR:         0.03,
		HighPerformerClicks:      50,
		HighPerformerPosition:    20,
		HighPerformerImpressions: 500,
	}
}

// ClassifyTier buckets a measurement into top/mid/low. Top is checked first
// and requires strictly better-than-threshold values on both axes; mid is
// inclusive on its ranges, so ctr exactly at the top threshold lands in mid.
func ClassifyTier(ctr, position float64, t Thresholds) string {
	if ctr > t.TopCTR && position < t.TopPosition {
		return types.TierTop
	}
	if (ctr >= t.MidCTRMin && ctr <= t.MidCTRMax) ||
		(position >= t.MidPositionMin && position <= t.MidPositionMax) {
		return types.TierMid
	}
	return types.TierLow
}

// IsHighPerformer is the conjunctive volume+quality gate used to select
// learning candidates. It is independent of tier: a top-tier page with thin
// click volume is not a high performer.
func IsHighPerformer(ctr float64, clicks int64, position float64, impressions int64, t Thresholds) bool {
	return ctr >= t.HighPerformerCTR &&
		clicks >= t.HighPerformerClicks &&
		position <= t.HighPerformerPosition &&
		impressions >= t.HighPerformerImpressions
}
