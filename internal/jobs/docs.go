// Package jobs provides scheduled background tasks for the ordering service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules use the six-field format with seconds.
//
// # Available Jobs
//
// 1. OutboxRelayJob - Runs every second by default to publish committed outbox messages
// 2. StaleOrderCancellationJob - Runs hourly by default to cancel orders left Pending too long
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewStaleOrderCancellationJob(cancelStaleHandler, 48*time.Hour, "", logger),
//		jobs.NewOutboxRelayJob(outboxStore, publisher, "", logger),
//	)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The relay stops a batch at the first failed message; it stays pending for the next tick
// - Stale order cancellation logs and skips orders that fail to cancel
// - Failed job starts will stop any already running jobs
package jobs
