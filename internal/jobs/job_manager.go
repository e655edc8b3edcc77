package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	staleOrderJob  *StaleOrderCancellationJob
	outboxRelayJob *OutboxRelayJob
}

func NewJobManager(staleOrderJob *StaleOrderCancellationJob, outboxRelayJob *OutboxRelayJob) *JobManager {
	return &JobManager{
		staleOrderJob:  staleOrderJob,
		outboxRelayJob: outboxRelayJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}

	if err := jm.staleOrderJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.outboxRelayJob.Stop()
		return fmt.Errorf("failed to start stale order cancellation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleOrderJob.Stop()
	jm.outboxRelayJob.Stop()
}
