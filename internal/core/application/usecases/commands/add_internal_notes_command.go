package commands

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrAddInternalNotesCommandIsNotConstructed = errors.New(
	"AddInternalNotesCommand must be created via NewAddInternalNotesCommand constructor",
)

// AddInternalNotesCommand appends a timestamped, admin-tagged line to an
// order's internal notes.
type AddInternalNotesCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	notes   string
	admin   string

	guard guard.ConstructorGuard
}

func NewAddInternalNotesCommand(orderID kernel.UUID, notes, admin string) (AddInternalNotesCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		requireText("notes", notes),
		requireText("admin_user", admin),
	); err != nil {
		return AddInternalNotesCommand{}, err
	}

	return AddInternalNotesCommand{
		orderID: orderID,
		notes:   strings.TrimSpace(notes),
		admin:   strings.TrimSpace(admin),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AddInternalNotesCommand) Validate() error {
	return c.guard.Validate(ErrAddInternalNotesCommandIsNotConstructed)
}

func (c AddInternalNotesCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AddInternalNotesCommand) Notes() string {
	return c.notes
}

func (c AddInternalNotesCommand) Admin() string {
	return c.admin
}
