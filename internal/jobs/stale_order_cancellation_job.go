package jobs

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultStaleOrderSchedule runs the cancellation at the top of every hour.
const DefaultStaleOrderSchedule = "0 0 * * * *"

type staleOrderCanceller interface {
	Handle(ctx context.Context, cmd commands.CancelStalePendingOrdersCommand) (int, error)
}

// StaleOrderCancellationJob cancels orders left Pending for longer than the
// configured age.
type StaleOrderCancellationJob struct {
	handler   staleOrderCanceller
	olderThan time.Duration
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewStaleOrderCancellationJob(
	handler staleOrderCanceller,
	olderThan time.Duration,
	schedule string,
	logger *slog.Logger,
) *StaleOrderCancellationJob {
	if schedule == "" {
		schedule = DefaultStaleOrderSchedule
	}
	return &StaleOrderCancellationJob{
		handler:   handler,
		olderThan: olderThan,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "stale_order_cancellation_job"),
	}
}

// Start schedules the job. An invalid schedule or age is reported here
// rather than on every tick.
func (j *StaleOrderCancellationJob) Start() error {
	if _, err := commands.NewCancelStalePendingOrdersCommand(j.olderThan, commands.SystemActor); err != nil {
		return err
	}
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale order cancellation job started",
		"schedule", j.schedule,
		"older_than", j.olderThan.String(),
	)
	return nil
}

// Run performs one cancellation pass.
func (j *StaleOrderCancellationJob) Run(ctx context.Context) {
	cmd, err := commands.NewCancelStalePendingOrdersCommand(j.olderThan, commands.SystemActor)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale order cancellation job misconfigured", "error", err)
		return
	}

	cancelled, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale order cancellation job failed", "error", err)
		return
	}
	if cancelled > 0 {
		j.logger.InfoContext(ctx, "Stale pending orders cancelled", "count", cancelled)
	}
}

// Stop waits for a running pass to finish.
func (j *StaleOrderCancellationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Stale order cancellation job stopped")
}
