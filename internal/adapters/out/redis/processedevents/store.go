// Package processedevents remembers inbound event ids in Redis.
package processedevents

import (
	"context"
	"fmt"
	"time"

	"ordering/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// RedisProcessedEvents keeps one key per processed event id. A key exists
// until its TTL runs out or Forget removes it.
type RedisProcessedEvents struct {
	client      redis.UniversalClient
	serviceName string
}

var _ ports.ProcessedEvents = (*RedisProcessedEvents)(nil)

func NewRedisProcessedEvents(client redis.UniversalClient, serviceName string) *RedisProcessedEvents {
	return &RedisProcessedEvents{client: client, serviceName: serviceName}
}

func (s *RedisProcessedEvents) Key(id string) string {
	return fmt.Sprintf("%s:processed-event:%s", s.serviceName, id)
}

func (s *RedisProcessedEvents) MarkProcessed(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	first, err := s.client.SetNX(ctx, s.Key(id), time.Now().UTC().Format(time.RFC3339Nano), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("mark event %s processed: %w", id, err)
	}
	return first, nil
}

func (s *RedisProcessedEvents) Forget(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.Key(id)).Err(); err != nil {
		return fmt.Errorf("forget event %s: %w", id, err)
	}
	return nil
}
