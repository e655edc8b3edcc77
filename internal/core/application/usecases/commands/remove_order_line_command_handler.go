package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// RemoveOrderLineCommandHandler refuses to remove the last line of an order.
type RemoveOrderLineCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRemoveOrderLineCommandHandler(uowFactory OrderUoWFactory) RemoveOrderLineCommandHandler {
	return RemoveOrderLineCommandHandler{uowFactory: uowFactory}
}

func (h *RemoveOrderLineCommandHandler) Handle(ctx context.Context, cmd RemoveOrderLineCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return updateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.RemoveLine(cmd.LineID())
	})
}
