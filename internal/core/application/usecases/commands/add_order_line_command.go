package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/guard"
)

var ErrAddOrderLineCommandIsNotConstructed = errors.New(
	"AddOrderLineCommand must be created via NewAddOrderLineCommand constructor",
)

// AddOrderLineCommand adds a product to an order that can still be modified.
type AddOrderLineCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	line    services.LineInput

	guard guard.ConstructorGuard
}

func NewAddOrderLineCommand(orderID kernel.UUID, line services.LineInput) (AddOrderLineCommand, error) {
	price, priceErr := kernel.NewMoney(line.UnitPrice)
	var lineErr error
	if priceErr == nil {
		lineErr = order.ValidateLineValues(line.ProductID, line.ProductName, line.SKU, line.Quantity, price)
	}
	if err := errors.Join(orderID.Validate(), priceErr, lineErr); err != nil {
		return AddOrderLineCommand{}, err
	}

	return AddOrderLineCommand{
		orderID: orderID,
		line:    line,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AddOrderLineCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderLineCommandIsNotConstructed)
}

func (c AddOrderLineCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AddOrderLineCommand) Line() services.LineInput {
	return c.line
}
