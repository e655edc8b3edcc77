package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// ConfirmOrderCommandHandler confirms Pending orders.
type ConfirmOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewConfirmOrderCommandHandler(uowFactory OrderUoWFactory) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{uowFactory: uowFactory}
}

// Handle fails with a not-found error for an unknown order and with an
// invalid-transition error when the order is not Pending.
func (h *ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return updateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.Confirm(cmd.Actor())
	})
}
