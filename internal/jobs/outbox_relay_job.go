package jobs

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/ports"

	"github.com/robfig/cron/v3"
)

const (
	// DefaultOutboxRelaySchedule polls the outbox every second.
	DefaultOutboxRelaySchedule = "* * * * * *"

	// DefaultOutboxBatchSize bounds the messages relayed per tick.
	DefaultOutboxBatchSize = 100
)

// OutboxRelayJob publishes committed outbox messages and marks them as sent.
// A message whose publication fails stays pending and is retried on the next
// tick; later messages in the batch are held back to keep them in order.
type OutboxRelayJob struct {
	outbox    ports.OutboxStore
	publisher ports.EventPublisher
	batchSize int
	schedule  string
	clock     func() time.Time
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewOutboxRelayJob(
	outbox ports.OutboxStore,
	publisher ports.EventPublisher,
	schedule string,
	logger *slog.Logger,
) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultOutboxRelaySchedule
	}
	return &OutboxRelayJob{
		outbox:    outbox,
		publisher: publisher,
		batchSize: DefaultOutboxBatchSize,
		schedule:  schedule,
		clock:     time.Now,
		// Overlapping ticks would publish the same batch twice.
		cron:   cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger.With("component", "outbox_relay_job"),
	}
}

// Start schedules the relay.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// Run relays one batch and returns how many messages were published.
func (j *OutboxRelayJob) Run(ctx context.Context) (int, error) {
	pending, err := j.outbox.Pending(ctx, j.batchSize)
	if err != nil {
		return 0, err
	}

	published := 0
	for _, msg := range pending {
		if err := j.publisher.Publish(ctx, msg); err != nil {
			return published, err
		}
		if err := j.outbox.MarkPublished(ctx, msg.ID, j.clock()); err != nil {
			return published, err
		}
		published++
	}

	if published > 0 {
		j.logger.DebugContext(ctx, "Outbox messages relayed", "count", published)
	}
	return published, nil
}

// Stop waits for a running batch to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
