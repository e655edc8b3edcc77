package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

type AddInternalNotesCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAddInternalNotesCommandHandler(uowFactory OrderUoWFactory) AddInternalNotesCommandHandler {
	return AddInternalNotesCommandHandler{uowFactory: uowFactory}
}

func (h *AddInternalNotesCommandHandler) Handle(ctx context.Context, cmd AddInternalNotesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return updateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.AddAdminNote(cmd.Notes(), cmd.Admin())
	})
}
