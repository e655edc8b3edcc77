package commands

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
)

// AddOrderLineCommandHandler returns the id of the new line.
type AddOrderLineCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAddOrderLineCommandHandler(uowFactory OrderUoWFactory) AddOrderLineCommandHandler {
	return AddOrderLineCommandHandler{uowFactory: uowFactory}
}

func (h *AddOrderLineCommandHandler) Handle(ctx context.Context, cmd AddOrderLineCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	lines, err := buildLines([]services.LineInput{cmd.Line()})
	if err != nil {
		return kernel.UUID{}, err
	}
	line := lines[0]

	err = updateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.AddLine(line)
	})
	if err != nil {
		return kernel.UUID{}, err
	}
	return line.ID(), nil
}
