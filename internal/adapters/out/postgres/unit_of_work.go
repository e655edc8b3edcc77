// Package postgres provides the GORM implementation of the Unit of Work.
//
// A unit of work owns one database transaction. Repositories created through
// it run inside that transaction and report every aggregate they save, and
// Commit turns the events recorded on those aggregates into outbox messages
// before committing. State changes and their events are therefore stored
// atomically.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx) // also stores OrderPlaced in outbox_messages
//
// Each UnitOfWork instance is used by a single goroutine; concurrent
// operations create their own instances through the factory.
package postgres

import (
	"context"

	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/adapters/out/postgres/outboxrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate saved during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// eventSource is implemented by aggregates that record domain events.
type eventSource interface {
	PullEvents() []order.Event
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
// Every command handler asks it for a fresh instance, so concurrent requests
// never share transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory whose units of work run on db.
//
// Example:
//
//	db, err := gorm.Open(postgresdriver.Open(configs.DSN()), &gorm.Config{})
//	if err != nil {
//	    return fmt.Errorf("connect database: %w", err)
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work with no transaction and nothing tracked.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and the outbox
// messages produced in it.
//
// Repositories handed out during the transaction report every aggregate they
// save. Commit pulls the pending events from those aggregates and stores them
// in outbox_messages inside the same transaction.
//
// Example usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return fmt.Errorf("begin transaction: %w", err)
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	repo := uow.OrderRepository()
//	o, err := repo.Get(ctx, orderID) // locks the orders row until commit
//	if err != nil {
//	    return err
//	}
//	if err = o.Confirm(actor); err != nil {
//	    return err
//	}
//	if err = repo.Update(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx) // OrderStatusChanged lands in the outbox
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it twice keeps the first transaction.
//
// Returns:
//   - nil if a transaction is open afterwards
//   - the driver error if the connection could not begin one
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit writes the events of every tracked aggregate to the outbox and
// commits. If writing the outbox fails the transaction stays open so that
// the caller's Rollback discards it.
//
// Returns:
//   - gorm.ErrInvalidTransaction if Begin was not called
//   - the outbox or commit error otherwise, nil on success
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if err := uow.flushEvents(ctx); err != nil {
		return err
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// Rollback discards the transaction. After Commit it returns
// gorm.ErrInvalidTransaction, which deferred callers ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// OrderRepository returns an order repository bound to the current
// transaction, or to the plain connection when none is active.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// TrackAggregate registers an aggregate saved by one of the repositories.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) flushEvents(ctx context.Context) error {
	var msgs []ports.OutboxMessage
	for _, tracked := range uow.trackedAggregates {
		source, ok := tracked.Aggregate.(eventSource)
		if !ok {
			continue
		}
		for _, e := range source.PullEvents() {
			msg, err := outboxrepo.MessageFromEvent(e)
			if err != nil {
				return err
			}
			msgs = append(msgs, msg)
		}
	}
	return outboxrepo.NewGormOutboxRepository(uow.tx).Add(ctx, msgs...)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
