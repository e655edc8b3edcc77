package commands

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// Reasons recorded by the convenience constructors.
const (
	ReasonReadyForShipment = "order ready for shipment"
	ReasonShipped          = "order shipped"
	ReasonDelivered        = "order delivered"
	ReasonPaymentReceived  = "payment received"
)

// ChangeOrderStatusCommand moves an order to another status along the
// transition table.
//
// Example:
//
//	cmd, err := NewChangeOrderStatusCommand(id, order.Paid, "card captured", "payments")
//	ship, err := NewMarkShippedCommand(id, "warehouse")
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	newStatus order.Status
	reason    string
	actor     string

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	newStatus order.Status,
	reason string,
	actor string,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		orderID.Validate(),
		newStatus.Validate(),
		requireText("reason", reason),
		requireText("actor", actor),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	cmd.orderID = orderID
	cmd.newStatus = newStatus
	cmd.reason = strings.TrimSpace(reason)
	cmd.actor = strings.TrimSpace(actor)
	return cmd, nil
}

// NewMarkReadyForShipmentCommand moves a Preparing order to ReadyForShipment.
func NewMarkReadyForShipmentCommand(orderID kernel.UUID, actor string) (ChangeOrderStatusCommand, error) {
	return NewChangeOrderStatusCommand(orderID, order.ReadyForShipment, ReasonReadyForShipment, actor)
}

// NewMarkShippedCommand moves a ReadyForShipment order to Shipped.
func NewMarkShippedCommand(orderID kernel.UUID, actor string) (ChangeOrderStatusCommand, error) {
	return NewChangeOrderStatusCommand(orderID, order.Shipped, ReasonShipped, actor)
}

// NewMarkDeliveredCommand moves a Shipped order to Delivered.
func NewMarkDeliveredCommand(orderID kernel.UUID, actor string) (ChangeOrderStatusCommand, error) {
	return NewChangeOrderStatusCommand(orderID, order.Delivered, ReasonDelivered, actor)
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ChangeOrderStatusCommand) NewStatus() order.Status {
	return c.newStatus
}

func (c ChangeOrderStatusCommand) Reason() string {
	return c.reason
}

func (c ChangeOrderStatusCommand) Actor() string {
	return c.actor
}
