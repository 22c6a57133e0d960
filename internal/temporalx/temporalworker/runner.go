package temporalworker

import (
	"context"
	"fmt"

	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/activity"
	temporalsdkclient "go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/getcarekorea/content-engine/internal/platform/logger"
	"github.com/getcarekorea/content-engine/internal/temporalx"
	"github.com/getcarekorea/content-engine/internal/temporalx/collect"
)

type Runner struct {
	log        *logger.Logger
	tc         temporalsdkclient.Client
	activities *collect.Activities
}

func NewRunner(log *logger.Logger, tc temporalsdkclient.Client, activities *collect.Activities) (*Runner, error) {
	if tc == nil {
		return nil, fmt.Errorf("temporal client is not configured")
	}
	if activities == nil {
		return nil, fmt.Errorf("temporal worker missing activities")
	}
	return &Runner{log: log.With("component", "TemporalWorker"), tc: tc, activities: activities}, nil
}

// Start registers the collection workflow and blocks until ctx is canceled.
func (r *Runner) Start(ctx context.Context) error {
	cfg := temporalx.LoadConfig()
	r.log.Info("Starting Temporal worker",
		"address", cfg.Address, "namespace", cfg.Namespace, "task_queue", cfg.TaskQueue)

	w := worker.New(r.tc, cfg.TaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(collect.Workflow, workflow.RegisterOptions{Name: collect.WorkflowName})
	w.RegisterActivityWithOptions(r.activities.Collect, activity.RegisterOptions{Name: collect.ActivityCollect})
	w.RegisterActivityWithOptions(r.activities.PersistAggregates, activity.RegisterOptions{Name: collect.ActivityPersistLearn})

	if err := r.EnsureCronScheduled(ctx); err != nil {
		r.log.Warn("could not schedule recurring collection", "error", err)
	}

	return w.Run(interruptFromContext(ctx))
}

// EnsureCronScheduled starts the cron workflow if it is not already running.
// An already-started error means a previous deploy scheduled it.
func (r *Runner) EnsureCronScheduled(ctx context.Context) error {
	cfg := temporalx.LoadConfig()
	_, err := r.tc.ExecuteWorkflow(ctx, temporalsdkclient.StartWorkflowOptions{
		ID:           collect.ScheduledWorkflowID,
		TaskQueue:    cfg.TaskQueue,
		CronSchedule: cfg.CollectCron,
	}, collect.WorkflowName, collect.Input{})
	if err != nil {
		if _, ok := err.(*serviceerror.WorkflowExecutionAlreadyStarted); ok {
			return nil
		}
		return err
	}
	r.log.Info("collection cron scheduled", "cron", cfg.CollectCron, "workflow_id", collect.ScheduledWorkflowID)
	return nil
}

func interruptFromContext(ctx context.Context) <-chan interface{} {
	ch := make(chan interface{})
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch
}
