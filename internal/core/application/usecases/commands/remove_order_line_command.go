package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrRemoveOrderLineCommandIsNotConstructed = errors.New(
	"RemoveOrderLineCommand must be created via NewRemoveOrderLineCommand constructor",
)

type RemoveOrderLineCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	lineID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveOrderLineCommand(orderID, lineID kernel.UUID) (RemoveOrderLineCommand, error) {
	if err := errors.Join(orderID.Validate(), lineID.Validate()); err != nil {
		return RemoveOrderLineCommand{}, err
	}
	return RemoveOrderLineCommand{
		orderID: orderID,
		lineID:  lineID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveOrderLineCommand) Validate() error {
	return c.guard.Validate(ErrRemoveOrderLineCommandIsNotConstructed)
}

func (c RemoveOrderLineCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RemoveOrderLineCommand) LineID() kernel.UUID {
	return c.lineID
}
