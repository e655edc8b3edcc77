package eventpublisher_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ordering/internal/adapters/out/redis/eventpublisher"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RedisEventPublisherTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *redis.Client
	publisher *eventpublisher.RedisEventPublisher
}

func TestRedisEventPublisherTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(RedisEventPublisherTestSuite))
}

func (suite *RedisEventPublisherTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	endpoint, err := container.Endpoint(ctx, "")
	suite.Require().NoError(err)

	suite.client = redis.NewClient(&redis.Options{Addr: endpoint})
	suite.publisher = eventpublisher.NewRedisEventPublisher(suite.client, "ordering.events")
}

func (suite *RedisEventPublisherTestSuite) TearDownSuite() {
	if suite.client != nil {
		suite.Require().NoError(suite.client.Close())
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RedisEventPublisherTestSuite) TestPublish_DeliversEnvelopeOnEventChannel() {
	ctx := context.Background()
	msg := ports.OutboxMessage{
		ID:          kernel.NewUUID(),
		AggregateID: kernel.NewUUID(),
		Name:        "OrderPlaced",
		Payload:     []byte(`{"order_number":"ORD-1-ABCDEF12"}`),
		OccurredAt:  time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC),
	}

	sub := suite.client.Subscribe(ctx, suite.publisher.Channel("OrderPlaced"))
	defer sub.Close()
	_, err := sub.Receive(ctx)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.publisher.Publish(ctx, msg))

	received, err := sub.ReceiveMessage(ctx)
	suite.Require().NoError(err)
	suite.Equal("ordering.events.OrderPlaced", received.Channel)

	var envelope eventpublisher.Envelope
	suite.Require().NoError(json.Unmarshal([]byte(received.Payload), &envelope))
	suite.True(msg.ID.IsEqual(envelope.ID))
	suite.True(msg.AggregateID.IsEqual(envelope.AggregateID))
	suite.Equal("OrderPlaced", envelope.Name)
	suite.True(msg.OccurredAt.Equal(envelope.OccurredAt))
	suite.JSONEq(`{"order_number":"ORD-1-ABCDEF12"}`, string(envelope.Payload))
}

func (suite *RedisEventPublisherTestSuite) TestPublish_WithoutSubscribers_Succeeds() {
	err := suite.publisher.Publish(context.Background(), ports.OutboxMessage{
		ID:          kernel.NewUUID(),
		AggregateID: kernel.NewUUID(),
		Name:        "OrderCancelled",
		Payload:     []byte(`{}`),
		OccurredAt:  time.Now(),
	})
	suite.NoError(err)
}

func (suite *RedisEventPublisherTestSuite) TestPublish_ClosedClient_ReturnsError() {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	suite.Require().NoError(client.Close())

	err := eventpublisher.NewRedisEventPublisher(client, "x").Publish(context.Background(), ports.OutboxMessage{
		ID:      kernel.NewUUID(),
		Name:    "OrderPlaced",
		Payload: []byte(`{}`),
	})
	suite.Error(err)
}
