package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/guard"
)

var ErrUpdateOrderLineQuantityCommandIsNotConstructed = errors.New(
	"UpdateOrderLineQuantityCommand must be created via NewUpdateOrderLineQuantityCommand constructor",
)

type UpdateOrderLineQuantityCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	lineID   kernel.UUID
	quantity int

	guard guard.ConstructorGuard
}

func NewUpdateOrderLineQuantityCommand(orderID, lineID kernel.UUID, quantity int) (UpdateOrderLineQuantityCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		lineID.Validate(),
		services.NewOrderValidator().ValidateQuantityUpdate(quantity),
	); err != nil {
		return UpdateOrderLineQuantityCommand{}, err
	}
	return UpdateOrderLineQuantityCommand{
		orderID:  orderID,
		lineID:   lineID,
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderLineQuantityCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderLineQuantityCommandIsNotConstructed)
}

func (c UpdateOrderLineQuantityCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateOrderLineQuantityCommand) LineID() kernel.UUID {
	return c.lineID
}

func (c UpdateOrderLineQuantityCommand) Quantity() int {
	return c.quantity
}
