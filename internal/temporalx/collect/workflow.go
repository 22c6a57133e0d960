package collect

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// Workflow runs one collection sweep followed by aggregate pattern
// extraction. Scheduled via cron; also startable on demand.
func Workflow(ctx workflow.Context, in Input) (Result, error) {
	if in.DaysAgo <= 0 {
		in.DaysAgo = defaultCollectionDays
	}

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Hour,
		HeartbeatTimeout:    2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    30 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    10 * time.Minute,
			MaximumAttempts:    3,
		},
	})

	var res Result
	if err := workflow.ExecuteActivity(ctx, ActivityCollect, in).Get(ctx, &res); err != nil {
		return res, err
	}

	// Aggregate extraction is best-effort; a failure here must not fail the
	// collection run that already persisted records.
	var aggregated int
	if err := workflow.ExecuteActivity(ctx, ActivityPersistLearn).Get(ctx, &aggregated); err != nil {
		workflow.GetLogger(ctx).Warn("aggregate extraction failed", "error", err)
	} else {
		res.AggregateRows = aggregated
	}
	return res, nil
}
