package services

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// LineInput is an order line as requested by a caller, before validation.
type LineInput struct {
	ProductID   int64
	ProductName string
	SKU         string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// OrderValidator checks order creation input. Every violation is collected
// into a single validation error rather than stopping at the first one.
type OrderValidator struct{}

func NewOrderValidator() OrderValidator {
	return OrderValidator{}
}

// ValidateCreation checks the customer, both addresses and the lines.
//
// Rules:
//   - customer id is positive
//   - required address fields are non-blank
//   - 1 to 50 lines, each with a positive product id, a name, a SKU, a
//     quantity in [1, 100] and a unit price in (0, 10000]
//   - product ids are pairwise distinct
func (OrderValidator) ValidateCreation(
	customerID int64,
	delivery order.DeliveryAddress,
	billing order.BillingAddress,
	lines []LineInput,
) error {
	var fields []error

	if customerID <= 0 {
		fields = append(fields, errs.NewValueIsInvalidErrorWithCause(
			"customer_id",
			fmt.Errorf("%d is not greater than 0", customerID),
		))
	}
	fields = append(fields, flatten(delivery.Validate())...)
	fields = append(fields, flatten(billing.Validate())...)

	if len(lines) < order.MinLines || len(lines) > order.MaxLines {
		fields = append(fields, errs.NewValueIsOutOfRangeError("lines", len(lines), order.MinLines, order.MaxLines))
	}

	seen := make(map[int64]int, len(lines))
	for i, l := range lines {
		for _, e := range flatten(validateLineInput(l)) {
			fields = append(fields, fmt.Errorf("lines[%d]: %w", i, e))
		}
		if first, dup := seen[l.ProductID]; dup && l.ProductID > 0 {
			fields = append(fields, fmt.Errorf("lines[%d]: %w", i, errs.NewValueIsInvalidErrorWithCause(
				"product_id",
				fmt.Errorf("product %d already used by lines[%d]", l.ProductID, first),
			)))
			continue
		}
		seen[l.ProductID] = i
	}

	if len(fields) == 0 {
		return nil
	}
	return errs.NewValidationError("order is invalid", fields...)
}

// ValidateQuantityUpdate checks a new quantity for an existing line.
func (OrderValidator) ValidateQuantityUpdate(quantity int) error {
	if err := order.ValidateQuantity(quantity); err != nil {
		return errs.NewValidationError("quantity is invalid", err)
	}
	return nil
}

func validateLineInput(l LineInput) error {
	price, err := kernel.NewMoney(l.UnitPrice)
	if err != nil {
		return errors.Join(
			order.ValidateLineValues(l.ProductID, l.ProductName, l.SKU, l.Quantity, order.MaxUnitPrice),
			errs.NewValueIsOutOfRangeErrorWithCause(
				"unit_price", l.UnitPrice.String(), "0 (exclusive)", order.MaxUnitPrice.String(), err),
		)
	}
	return order.ValidateLineValues(l.ProductID, l.ProductName, l.SKU, l.Quantity, price)
}

// flatten splits an errors.Join result into its parts.
func flatten(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []error{err}
}
