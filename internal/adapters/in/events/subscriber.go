package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

type messageHandler interface {
	Handle(ctx context.Context, msg Message) error
}

// RedisSubscriber feeds messages from Redis pub/sub channels into a Handler.
// Failures are logged; pub/sub has no redelivery, so publishers that need
// one resend with the same id.
type RedisSubscriber struct {
	client   redis.UniversalClient
	channels []string
	handler  messageHandler
	logger   *slog.Logger
}

func NewRedisSubscriber(
	client redis.UniversalClient,
	channels []string,
	handler messageHandler,
	logger *slog.Logger,
) *RedisSubscriber {
	return &RedisSubscriber{
		client:   client,
		channels: channels,
		handler:  handler,
		logger:   logger.With("component", "redis_subscriber"),
	}
}

// Run subscribes and blocks until ctx is done or the subscription closes.
// It returns an error only when subscribing fails.
func (s *RedisSubscriber) Run(ctx context.Context) error {
	sub := s.client.Subscribe(ctx, s.channels...)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Subscribed", "channels", s.channels)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			s.dispatch(ctx, m)
		}
	}
}

func (s *RedisSubscriber) dispatch(ctx context.Context, m *redis.Message) {
	var msg Message
	if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
		s.logger.WarnContext(ctx, "Malformed message dropped", "channel", m.Channel, "error", err)
		return
	}
	if err := s.handler.Handle(ctx, msg); err != nil {
		s.logger.WarnContext(ctx, "Message not applied", "channel", m.Channel, "event_id", msg.ID, "error", err)
	}
}
