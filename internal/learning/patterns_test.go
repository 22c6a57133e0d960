package learning

import (
	"strings"
	"testing"

	types "github.com/getcarekorea/content-engine/internal/domain"
)

func TestDerivePatternsEmptyInput(t *testing.T) {
	patterns, recommendations := derivePatterns(nil)
	if patterns != nil || recommendations != nil {
		t.Fatalf("empty input should derive nothing, got %v / %v", patterns, recommendations)
	}

	// Records without a preloaded content item carry no usable signal.
	patterns, recommendations = derivePatterns([]*types.PerformanceRecord{{CTR: 0.1}})
	if patterns != nil || recommendations != nil {
		t.Fatalf("records without items should derive nothing, got %v / %v", patterns, recommendations)
	}
}

func TestDerivePatternsComparisonAndNumberSignals(t *testing.T) {
	recs := []*types.PerformanceRecord{
		hpRec("en", "dental", "Dental Implant Cost in Korea 2026", sampleBody(1000), 0.06, 4, 120, 2000),
		hpRec("en", "dental", "Veneers vs Crowns: Price Comparison", sampleBody(1200), 0.05, 6, 90, 1800),
		hpRec("en", "dental", "10 Questions Before Your Implant", sampleBody(800), 0.04, 9, 70, 1600),
	}

	patterns, recommendations := derivePatterns(recs)
	if len(patterns) == 0 || len(recommendations) == 0 {
		t.Fatalf("expected signals, got %v / %v", patterns, recommendations)
	}

	joinedPatterns := strings.Join(patterns, "\n")
	if !strings.Contains(joinedPatterns, "number in the title") {
		t.Fatalf("digit signal missing:\n%s", joinedPatterns)
	}
	if !strings.Contains(joinedPatterns, "cost or comparison framing") {
		t.Fatalf("comparison signal missing:\n%s", joinedPatterns)
	}

	joinedRecs := strings.Join(recommendations, "\n")
	if !strings.Contains(joinedRecs, "comparison table") {
		t.Fatalf("comparison recommendation missing:\n%s", joinedRecs)
	}
	if !strings.Contains(joinedRecs, "specific number") {
		t.Fatalf("number recommendation missing:\n%s", joinedRecs)
	}
}

func TestDerivePatternsWeightsPositionByImpressions(t *testing.T) {
	// 300 impressions at position 4 and 100 at position 12 average to 6.0,
	// not the unweighted 8.0.
	recs := []*types.PerformanceRecord{
		hpRec("en", "dental", "Implant Cost 2026", sampleBody(900), 0.05, 4, 15, 300),
		hpRec("en", "dental", "Veneers Price", sampleBody(900), 0.05, 12, 5, 100),
	}

	patterns, _ := derivePatterns(recs)
	joined := strings.Join(patterns, "\n")
	if !strings.Contains(joined, "position 6.0") {
		t.Fatalf("expected impression-weighted position 6.0 in:\n%s", joined)
	}
}

func TestDerivePatternsKoreanComparisonMarkers(t *testing.T) {
	recs := []*types.PerformanceRecord{
		hpRec("ko", "dental", "임플란트 가격 비교 가이드", sampleBody(900), 0.05, 5, 60, 1200),
		hpRec("ko", "dental", "치아 교정 비용 총정리", sampleBody(900), 0.045, 6, 55, 1100),
	}

	patterns, _ := derivePatterns(recs)
	joined := strings.Join(patterns, "\n")
	if !strings.Contains(joined, "cost or comparison framing") {
		t.Fatalf("Korean comparison markers not recognized:\n%s", joined)
	}
}
