package ports

import (
	"context"
	"time"
)

// ProcessedEvents remembers inbound event ids so that redelivered events are
// applied only once.
type ProcessedEvents interface {
	// MarkProcessed records id and reports whether it was seen for the first
	// time. Records expire after ttl.
	MarkProcessed(ctx context.Context, id string, ttl time.Duration) (bool, error)

	// Forget removes id, so a failed handler can be retried on redelivery.
	Forget(ctx context.Context, id string) error
}
