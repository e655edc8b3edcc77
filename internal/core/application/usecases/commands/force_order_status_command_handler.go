package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

type ForceOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewForceOrderStatusCommandHandler(uowFactory OrderUoWFactory) ForceOrderStatusCommandHandler {
	return ForceOrderStatusCommandHandler{uowFactory: uowFactory}
}

func (h *ForceOrderStatusCommandHandler) Handle(ctx context.Context, cmd ForceOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return updateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.ForceStatus(cmd.NewStatus(), cmd.Reason(), cmd.Admin())
	})
}
