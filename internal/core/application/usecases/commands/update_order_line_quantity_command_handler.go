package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

type UpdateOrderLineQuantityCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewUpdateOrderLineQuantityCommandHandler(uowFactory OrderUoWFactory) UpdateOrderLineQuantityCommandHandler {
	return UpdateOrderLineQuantityCommandHandler{uowFactory: uowFactory}
}

func (h *UpdateOrderLineQuantityCommandHandler) Handle(ctx context.Context, cmd UpdateOrderLineQuantityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return updateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.UpdateLineQuantity(cmd.LineID(), cmd.Quantity())
	})
}
