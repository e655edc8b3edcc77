package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// ChangeOrderStatusCommandHandler applies ChangeOrderStatusCommand through
// Order.UpdateStatus, which appends the history entry in the same call.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{uowFactory: uowFactory}
}

func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return updateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.UpdateStatus(cmd.NewStatus(), cmd.Reason(), cmd.Actor())
	})
}
