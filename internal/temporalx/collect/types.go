package collect

// Workflow and activity registration names. Stable across deploys; changing
// them strands scheduled executions.
const (
	WorkflowName          = "collect_performance"
	ActivityCollect       = "collect_search_metrics"
	ActivityPersistLearn  = "persist_learning_aggregates"
	ScheduledWorkflowID   = "collect-performance-cron"
	defaultCollectionDays = 28
)

type Input struct {
	DaysAgo int `json:"daysAgo"`
}

type Result struct {
	PagesProcessed int      `json:"pagesProcessed"`
	NewRecords     int      `json:"newRecords"`
	UpdatedRecords int      `json:"updatedRecords"`
	HighPerformers int      `json:"highPerformers"`
	AggregateRows  int      `json:"aggregateRows"`
	Errors         []string `json:"errors,omitempty"`
}
