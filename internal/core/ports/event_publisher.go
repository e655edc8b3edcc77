package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
)

// OutboxMessage is a serialized domain event waiting to be published.
type OutboxMessage struct {
	ID          kernel.UUID
	AggregateID kernel.UUID
	Name        string
	Payload     []byte
	OccurredAt  time.Time
}

// EventPublisher delivers serialized domain events to other systems.
// Delivery is at-least-once; consumers must tolerate duplicates.
type EventPublisher interface {
	Publish(ctx context.Context, msg OutboxMessage) error
}

// OutboxStore reads and acknowledges the outbox written by UnitOfWork.Commit.
type OutboxStore interface {
	// Pending returns up to limit unpublished messages, oldest first.
	Pending(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkPublished(ctx context.Context, id kernel.UUID, at time.Time) error
}
