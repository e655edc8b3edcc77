package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
)

// RemoveDiscountCommandHandler removes a discount. Orders without one are
// rejected with a conflict error.
type RemoveDiscountCommandHandler struct {
	uowFactory OrderUoWFactory
	discounts  services.DiscountService
}

func NewRemoveDiscountCommandHandler(uowFactory OrderUoWFactory) RemoveDiscountCommandHandler {
	return RemoveDiscountCommandHandler{
		uowFactory: uowFactory,
		discounts:  services.NewDiscountService(),
	}
}

func (h *RemoveDiscountCommandHandler) Handle(ctx context.Context, cmd RemoveDiscountCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return updateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return h.discounts.RemoveDiscount(o, cmd.Reason())
	})
}
