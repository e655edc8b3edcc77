package commands

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var ErrForceOrderStatusCommandIsNotConstructed = errors.New(
	"ForceOrderStatusCommand must be created via NewForceOrderStatusCommand constructor",
)

// ForceOrderStatusCommand is an administrator's status change. Despite the
// name the transition table still applies; the change is marked in the
// history reason and announced with OrderModifiedByAdmin.
type ForceOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	newStatus order.Status
	reason    string
	admin     string

	guard guard.ConstructorGuard
}

func NewForceOrderStatusCommand(
	orderID kernel.UUID,
	newStatus order.Status,
	reason string,
	admin string,
) (ForceOrderStatusCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		newStatus.Validate(),
		requireText("reason", reason),
		requireText("admin_user", admin),
	); err != nil {
		return ForceOrderStatusCommand{}, err
	}

	return ForceOrderStatusCommand{
		orderID:   orderID,
		newStatus: newStatus,
		reason:    strings.TrimSpace(reason),
		admin:     strings.TrimSpace(admin),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ForceOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrForceOrderStatusCommandIsNotConstructed)
}

func (c ForceOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ForceOrderStatusCommand) NewStatus() order.Status {
	return c.newStatus
}

func (c ForceOrderStatusCommand) Reason() string {
	return c.reason
}

func (c ForceOrderStatusCommand) Admin() string {
	return c.admin
}
