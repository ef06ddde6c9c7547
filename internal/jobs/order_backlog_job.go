package jobs

import (
	"context"
	"log/slog"

	"buffet/internal/core/application/usecases/queries"
	"buffet/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// DefaultBacklogSchedule runs the backlog job at second zero of every minute.
const DefaultBacklogSchedule = "0 * * * * *"

// StatusSummarizer counts stored orders per status.
type StatusSummarizer interface {
	Handle(ctx context.Context, query queries.GetStatusSummaryQuery) (queries.StatusSummary, error)
}

// StatusGauge publishes the per-status order counts.
type StatusGauge interface {
	SetStatusCounts(counts map[order.Status]int)
}

// OrderBacklogJob periodically refreshes the per-status order gauges and
// logs how many orders the kitchen still has to hand over.
type OrderBacklogJob struct {
	summarizer StatusSummarizer
	gauge      StatusGauge
	schedule   string
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewOrderBacklogJob creates the job. An empty schedule falls back to
// DefaultBacklogSchedule.
func NewOrderBacklogJob(summarizer StatusSummarizer, gauge StatusGauge, schedule string, logger *slog.Logger) *OrderBacklogJob {
	if schedule == "" {
		schedule = DefaultBacklogSchedule
	}
	return &OrderBacklogJob{
		summarizer: summarizer,
		gauge:      gauge,
		schedule:   schedule,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "order_backlog_job"),
	}
}

// Start registers the job on its schedule and starts the scheduler.
func (j *OrderBacklogJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order backlog job started", "schedule", j.schedule)
	return nil
}

// Run performs one refresh. Failures are logged and leave the gauges as
// they were.
func (j *OrderBacklogJob) Run(ctx context.Context) {
	summary, err := j.summarizer.Handle(ctx, queries.NewGetStatusSummaryQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Order backlog job failed", "error", err)
		return
	}

	j.gauge.SetStatusCounts(summary)
	j.logger.InfoContext(ctx, "Order backlog",
		"pending", summary[order.Pending],
		"preparing", summary[order.Preparing],
		"ready", summary[order.Ready],
		"backlog", summary.Backlog(),
	)
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (j *OrderBacklogJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order backlog job stopped")
}
