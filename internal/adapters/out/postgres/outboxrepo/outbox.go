// Package outboxrepo stores serialized domain events next to the orders that
// produced them, so that events are written in the same transaction as the
// state change and relayed later.
package outboxrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageDTO is one row of outbox_messages. PublishedAt stays NULL until the
// relay has handed the message to the publisher. Seq is a bigserial that
// orders messages sharing an OccurredAt by insertion.
type MessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Seq         int64      `gorm:"autoIncrement;not null"`
	AggregateID uuid.UUID  `gorm:"type:uuid;index;not null"`
	Name        string     `gorm:"size:64;not null"`
	Payload     []byte     `gorm:"type:bytea;not null"`
	OccurredAt  time.Time  `gorm:"index;not null"`
	PublishedAt *time.Time `gorm:"index"`
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

// MessageFromEvent serializes a domain event into an outbox message with a
// fresh id.
func MessageFromEvent(e order.Event) (ports.OutboxMessage, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return ports.OutboxMessage{}, fmt.Errorf("marshal %s: %w", e.EventName(), err)
	}
	return ports.OutboxMessage{
		ID:          kernel.NewUUID(),
		AggregateID: e.AggregateID(),
		Name:        e.EventName(),
		Payload:     payload,
		OccurredAt:  e.OccurredAt(),
	}, nil
}

// GormOutboxRepository implements ports.OutboxStore and the write side used
// by the unit of work.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add inserts messages. It runs on whatever connection the repository was
// created with, which is the open transaction when called from Commit.
func (r *GormOutboxRepository) Add(ctx context.Context, msgs ...ports.OutboxMessage) error {
	if len(msgs) == 0 {
		return nil
	}
	dtos := make([]MessageDTO, 0, len(msgs))
	for _, m := range msgs {
		dtos = append(dtos, MessageDTO{
			ID:          m.ID.Bytes(),
			AggregateID: m.AggregateID.Bytes(),
			Name:        m.Name,
			Payload:     m.Payload,
			OccurredAt:  m.OccurredAt,
		})
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// Pending returns up to limit unpublished messages, oldest first and in
// insertion order within the same instant.
func (r *GormOutboxRepository) Pending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []MessageDTO
	err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("occurred_at ASC, seq ASC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	msgs := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		id, idErr := kernel.UUIDFromBytes(dto.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		aggregateID, idErr := kernel.UUIDFromBytes(dto.AggregateID[:])
		if idErr != nil {
			return nil, idErr
		}
		msgs = append(msgs, ports.OutboxMessage{
			ID:          id,
			AggregateID: aggregateID,
			Name:        dto.Name,
			Payload:     dto.Payload,
			OccurredAt:  dto.OccurredAt.UTC(),
		})
	}
	return msgs, nil
}

func (r *GormOutboxRepository) MarkPublished(ctx context.Context, id kernel.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id = ? AND published_at IS NULL", id.Bytes()).
		Update("published_at", at).Error
}
