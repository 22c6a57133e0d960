package learning

import (
	"fmt"
	"regexp"
	"strings"

	types "github.com/getcarekorea/content-engine/internal/domain"
)

var digitRe = regexp.MustCompile(`\d`)

// comparison markers across the site's main locales; matched case-insensitively.
var comparisonMarkers = []string{"vs", "versus", "compare", "comparison", "cost", "price", "비교", "가격", "费用", "料金"}

// derivePatterns turns high-performer records (with content items preloaded)
// into short observations and imperative recommendations. Pure and
// deterministic so prompt output is reproducible for a given data set.
func derivePatterns(recs []*types.PerformanceRecord) (patterns []string, recommendations []string) {
	items := make([]*types.ContentItem, 0, len(recs))
	for _, r := range recs {
		if r != nil && r.ContentItem != nil {
			items = append(items, r.ContentItem)
		}
	}
	if len(items) == 0 {
		return nil, nil
	}

	var titleLenSum, wordSum int
	var withDigits, withComparison int
	for _, it := range items {
		title := strings.TrimSpace(it.Title)
		titleLenSum += len([]rune(title))
		wordSum += len(strings.Fields(it.Body))
		if digitRe.MatchString(title) {
			withDigits++
		}
		if containsComparisonMarker(title) || containsComparisonMarker(firstWords(it.Body, 200)) {
			withComparison++
		}
	}

	n := len(items)
	avgTitleLen := titleLenSum / n
	avgWords := wordSum / n

	var clickSum, imprSum int64
	var posWeighted float64
	for _, r := range recs {
		if r == nil {
			continue
		}
		clickSum += r.Clicks
		imprSum += r.Impressions
		posWeighted += r.AvgPosition * float64(r.Impressions)
	}

	patterns = append(patterns,
		fmt.Sprintf("High-performing articles average %d-character titles.", avgTitleLen))
	if avgWords > 0 {
		patterns = append(patterns,
			fmt.Sprintf("High-performing articles run about %d words.", avgWords))
	}
	if withDigits*2 >= n {
		patterns = append(patterns,
			fmt.Sprintf("%d of %d high performers use a concrete number in the title.", withDigits, n))
	}
	if withComparison*2 >= n {
		patterns = append(patterns,
			fmt.Sprintf("%d of %d high performers lead with cost or comparison framing.", withComparison, n))
	}
	if imprSum > 0 {
		avgCTR := float64(clickSum) / float64(imprSum)
		avgPos := posWeighted / float64(imprSum)
		patterns = append(patterns,
			fmt.Sprintf("The current high-performer pool averages %.1f%% CTR at position %.1f.", avgCTR*100, avgPos))
	}

	recommendations = append(recommendations,
		fmt.Sprintf("Keep the title close to %d characters and state the concrete benefit.", clampInt(avgTitleLen, 30, 70)))
	if withComparison*2 >= n {
		recommendations = append(recommendations,
			"Include a price or clinic comparison table near the top of the article.")
	}
	if withDigits*2 >= n {
		recommendations = append(recommendations,
			"Put a specific number (price, recovery days, success rate) in the title.")
	}
	if avgWords > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Target roughly %d words; shorter pieces underperform in this pool.", avgWords))
	}
	recommendations = append(recommendations,
		"Answer the searcher's primary question within the first two paragraphs.")

	return patterns, recommendations
}

func containsComparisonMarker(s string) bool {
	s = strings.ToLower(s)
	for _, m := range comparisonMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func firstWords(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
