package searchconsole

// SummarizeQueries folds per-query rows for one page into a single summary.
// Average position is impression-weighted; queries with zero impressions
// contribute nothing to the position average.
func SummarizeQueries(page string, queries []Row) PageSummary {
	out := PageSummary{Page: page, Queries: queries}

	var weightedPosition float64
	for _, q := range queries {
		out.Clicks += q.Clicks
		out.Impressions += q.Impressions
		weightedPosition += q.Position * float64(q.Impressions)
	}
	if out.Impressions > 0 {
		out.CTR = float64(out.Clicks) / float64(out.Impressions)
		out.Position = weightedPosition / float64(out.Impressions)
	}
	return out
}
