// Package eventpublisher publishes outbox messages on Redis pub/sub channels.
package eventpublisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// Envelope is the message published for every domain event.
type Envelope struct {
	ID          kernel.UUID     `json:"id"`
	Name        string          `json:"name"`
	AggregateID kernel.UUID     `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
}

// RedisEventPublisher publishes each message on "<prefix>.<event name>".
type RedisEventPublisher struct {
	client redis.UniversalClient
	prefix string
}

var _ ports.EventPublisher = (*RedisEventPublisher)(nil)

func NewRedisEventPublisher(client redis.UniversalClient, prefix string) *RedisEventPublisher {
	return &RedisEventPublisher{client: client, prefix: prefix}
}

// Channel returns the channel an event with the given name is published on.
func (p *RedisEventPublisher) Channel(name string) string {
	return fmt.Sprintf("%s.%s", p.prefix, name)
}

func (p *RedisEventPublisher) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	body, err := json.Marshal(Envelope{
		ID:          msg.ID,
		Name:        msg.Name,
		AggregateID: msg.AggregateID,
		OccurredAt:  msg.OccurredAt.UTC(),
		Payload:     msg.Payload,
	})
	if err != nil {
		return fmt.Errorf("encode event %s: %w", msg.ID, err)
	}

	if err := p.client.Publish(ctx, p.Channel(msg.Name), body).Err(); err != nil {
		return fmt.Errorf("publish event %s: %w", msg.ID, err)
	}
	return nil
}
