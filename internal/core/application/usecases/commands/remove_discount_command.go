package commands

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrRemoveDiscountCommandIsNotConstructed = errors.New(
	"RemoveDiscountCommand must be created via NewRemoveDiscountCommand constructor",
)

// RemoveDiscountCommand resets an order's discount to zero.
type RemoveDiscountCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

func NewRemoveDiscountCommand(orderID kernel.UUID, reason string) (RemoveDiscountCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RemoveDiscountCommand{}, err
	}
	return RemoveDiscountCommand{
		orderID: orderID,
		reason:  strings.TrimSpace(reason),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveDiscountCommand) Validate() error {
	return c.guard.Validate(ErrRemoveDiscountCommandIsNotConstructed)
}

func (c RemoveDiscountCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RemoveDiscountCommand) Reason() string {
	return c.reason
}
