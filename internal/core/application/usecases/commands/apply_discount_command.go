package commands

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrApplyDiscountCommandIsNotConstructed = errors.New(
	"ApplyDiscountCommand must be created via one of the NewApply*DiscountCommand constructors",
)

// DiscountKind selects how ApplyDiscountCommand computes the amount.
type DiscountKind int

const (
	DiscountFixed DiscountKind = iota + 1
	DiscountPercentage
	DiscountLoyalty
)

// ApplyDiscountCommand sets the discount of an order. Fixed discounts carry
// an amount, percentage discounts a percentage in [0, 100]; loyalty discounts
// are derived from the customer's previous orders.
type ApplyDiscountCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	kind    DiscountKind
	value   decimal.Decimal
	reason  string

	guard guard.ConstructorGuard
}

// NewApplyFixedDiscountCommand builds a fixed discount of amount. A negative
// amount is a conflict with the order's payment rules rather than malformed
// input; an amount finer than a cent is a validation error.
func NewApplyFixedDiscountCommand(orderID kernel.UUID, amount decimal.Decimal, reason string) (ApplyDiscountCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ApplyDiscountCommand{}, err
	}
	if amount.IsNegative() {
		return ApplyDiscountCommand{}, errs.NewConflictError(
			fmt.Sprintf("discount amount %s must not be negative", amount))
	}
	if _, err := kernel.NewMoney(amount); err != nil {
		return ApplyDiscountCommand{}, err
	}
	return newApplyDiscountCommand(orderID, DiscountFixed, amount, reason), nil
}

func NewApplyPercentageDiscountCommand(orderID kernel.UUID, pct decimal.Decimal, reason string) (ApplyDiscountCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ApplyDiscountCommand{}, err
	}
	return newApplyDiscountCommand(orderID, DiscountPercentage, pct, reason), nil
}

func NewApplyLoyaltyDiscountCommand(orderID kernel.UUID) (ApplyDiscountCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ApplyDiscountCommand{}, err
	}
	return newApplyDiscountCommand(orderID, DiscountLoyalty, decimal.Zero, ""), nil
}

func newApplyDiscountCommand(orderID kernel.UUID, kind DiscountKind, value decimal.Decimal, reason string) ApplyDiscountCommand {
	return ApplyDiscountCommand{
		orderID: orderID,
		kind:    kind,
		value:   value,
		reason:  strings.TrimSpace(reason),
		guard:   guard.NewConstructorGuard(),
	}
}

func (c ApplyDiscountCommand) Validate() error {
	return c.guard.Validate(ErrApplyDiscountCommandIsNotConstructed)
}

func (c ApplyDiscountCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ApplyDiscountCommand) Kind() DiscountKind {
	return c.kind
}

// Value is the amount for fixed discounts and the percentage for percentage
// discounts. It is zero for loyalty discounts.
func (c ApplyDiscountCommand) Value() decimal.Decimal {
	return c.value
}

func (c ApplyDiscountCommand) Reason() string {
	return c.reason
}
