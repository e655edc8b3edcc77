// Package commands contains the operations that change orders.
// Every command follows the same pattern: a validated command value, a
// handler that opens a unit of work, loads or builds the aggregate, calls one
// aggregate operation and commits.
package commands

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// Unit of Work interfaces used by the handlers. They are narrower than
// ports.UnitOfWork so that tests can mock exactly what a handler touches.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides the order repository bound to the transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW is the transaction boundary of every order command.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil {
	//       return err
	//   }
	//   defer func() { _ = uow.Rollback(ctx) }()
	//
	//   o, err := uow.OrderRepository().Get(ctx, id)
	//   // ... mutate o, then Update
	//
	//   return uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates a new unit of work per command.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)

// updateOrder loads one order inside a fresh unit of work, applies mutate and
// saves the result in the same transaction. Nothing is saved when mutate fails.
func updateOrder(
	ctx context.Context,
	factory OrderUoWFactory,
	id kernel.UUID,
	mutate func(o *order.Order) error,
) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err = mutate(o); err != nil {
		return err
	}
	if err = repo.Update(ctx, o); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
