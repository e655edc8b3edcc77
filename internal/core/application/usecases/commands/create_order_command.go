package commands

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand is a request to place a new order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), 7, delivery, billing,
//	    []services.LineInput{{ProductID: 1, ProductName: "Mug", SKU: "MUG-1", Quantity: 2, UnitPrice: price}},
//	    "ring twice")
//	if err != nil {
//	    return err // a validation error listing every invalid field
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	customerID    int64
	delivery      order.DeliveryAddress
	billing       order.BillingAddress
	lines         []services.LineInput
	customerNotes string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request with OrderValidator and
// returns a validation error collecting every violation.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID int64,
	delivery order.DeliveryAddress,
	billing order.BillingAddress,
	lines []services.LineInput,
	customerNotes string,
) (CreateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}
	if err := services.NewOrderValidator().ValidateCreation(customerID, delivery, billing, lines); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		orderID:       orderID,
		customerID:    customerID,
		delivery:      delivery,
		billing:       billing,
		lines:         append([]services.LineInput(nil), lines...),
		customerNotes: strings.TrimSpace(customerNotes),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) CustomerID() int64 {
	return c.customerID
}

func (c CreateOrderCommand) DeliveryAddress() order.DeliveryAddress {
	return c.delivery
}

func (c CreateOrderCommand) BillingAddress() order.BillingAddress {
	return c.billing
}

func (c CreateOrderCommand) Lines() []services.LineInput {
	return append([]services.LineInput(nil), c.lines...)
}

func (c CreateOrderCommand) CustomerNotes() string {
	return c.customerNotes
}
