package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrCancelStalePendingOrdersCommandIsNotConstructed = errors.New(
	"CancelStalePendingOrdersCommand must be created via NewCancelStalePendingOrdersCommand constructor",
)

const (
	// StaleOrderCancellationReason is recorded on every order cancelled for age.
	StaleOrderCancellationReason = "automatic cancellation - order too old"

	// SystemActor authors changes made by the service itself rather than a caller.
	SystemActor = "SYSTEM"
)

// CancelStalePendingOrdersCommand cancels every order that has stayed
// Pending for longer than olderThan.
type CancelStalePendingOrdersCommand struct { //nolint:recvcheck //using for validation
	olderThan time.Duration
	actor     string

	guard guard.ConstructorGuard
}

func NewCancelStalePendingOrdersCommand(olderThan time.Duration, actor string) (CancelStalePendingOrdersCommand, error) {
	var ageErr error
	if olderThan <= 0 {
		ageErr = errs.NewValueIsInvalidErrorWithCause("older_than", fmt.Errorf("%s is not positive", olderThan))
	}
	if err := errors.Join(ageErr, requireText("actor", actor)); err != nil {
		return CancelStalePendingOrdersCommand{}, err
	}

	return CancelStalePendingOrdersCommand{
		olderThan: olderThan,
		actor:     strings.TrimSpace(actor),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CancelStalePendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCancelStalePendingOrdersCommandIsNotConstructed)
}

func (c CancelStalePendingOrdersCommand) OlderThan() time.Duration {
	return c.olderThan
}

func (c CancelStalePendingOrdersCommand) Actor() string {
	return c.actor
}
