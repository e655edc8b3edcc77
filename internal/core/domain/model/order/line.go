package order

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

const (
	MinLineQuantity = 1
	MaxLineQuantity = 100
)

// MaxUnitPrice is the inclusive upper bound of a line's unit price.
var MaxUnitPrice = kernel.MustMoney("10000")

// Line is one product entry of an order. TotalPrice is always
// UnitPrice × Quantity and is recomputed whenever the quantity changes.
type Line struct {
	id          kernel.UUID
	productID   int64
	productName string
	sku         string
	quantity    int
	unitPrice   kernel.Money
	totalPrice  kernel.Money

	guard guard.ConstructorGuard
}

// NewLine creates a line with a fresh identifier.
func NewLine(productID int64, productName, sku string, quantity int, unitPrice kernel.Money) (*Line, error) {
	return RestoreLine(kernel.NewUUID(), productID, productName, sku, quantity, unitPrice)
}

// RestoreLine rebuilds a persisted line. The total price is derived again
// rather than trusted from storage.
func RestoreLine(
	id kernel.UUID,
	productID int64,
	productName, sku string,
	quantity int,
	unitPrice kernel.Money,
) (*Line, error) {
	if err := errors.Join(
		id.Validate(),
		ValidateLineValues(productID, productName, sku, quantity, unitPrice),
	); err != nil {
		return nil, err
	}

	return &Line{
		id:          id,
		productID:   productID,
		productName: productName,
		sku:         sku,
		quantity:    quantity,
		unitPrice:   unitPrice,
		totalPrice:  unitPrice.MulInt(quantity),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// ValidateLineValues checks the raw values of a line without building it.
// The returned error joins one field error per violation.
func ValidateLineValues(productID int64, productName, sku string, quantity int, unitPrice kernel.Money) error {
	var productErr error
	if productID <= 0 {
		productErr = errs.NewValueIsInvalidErrorWithCause(
			"product_id",
			fmt.Errorf("%d is not greater than 0", productID),
		)
	}
	return errors.Join(
		productErr,
		requireText("product_name", productName),
		requireText("sku", sku),
		ValidateQuantity(quantity),
		validateUnitPrice(unitPrice),
	)
}

// ValidateQuantity checks a line quantity against [MinLineQuantity, MaxLineQuantity].
func ValidateQuantity(quantity int) error {
	if quantity < MinLineQuantity || quantity > MaxLineQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, MinLineQuantity, MaxLineQuantity)
	}
	return nil
}

func validateUnitPrice(price kernel.Money) error {
	if !price.IsPositive() || price.GreaterThan(MaxUnitPrice) {
		return errs.NewValueIsOutOfRangeErrorWithCause(
			"unit_price", price.String(), "0 (exclusive)", MaxUnitPrice.String(),
			fmt.Errorf("unit price must be in (0, %s]", MaxUnitPrice),
		)
	}
	return nil
}

func (l *Line) Validate() error {
	if l == nil {
		return guard.ErrDefaultConstructorGuard
	}
	return l.guard.Validate(nil)
}

func (l *Line) ID() kernel.UUID          { return l.id }
func (l *Line) ProductID() int64         { return l.productID }
func (l *Line) ProductName() string      { return l.productName }
func (l *Line) SKU() string              { return l.sku }
func (l *Line) Quantity() int            { return l.quantity }
func (l *Line) UnitPrice() kernel.Money  { return l.unitPrice }
func (l *Line) TotalPrice() kernel.Money { return l.totalPrice }

// setQuantity changes the quantity and re-derives the total price.
func (l *Line) setQuantity(quantity int) error {
	if err := ValidateQuantity(quantity); err != nil {
		return err
	}
	l.quantity = quantity
	l.totalPrice = l.unitPrice.MulInt(quantity)
	return nil
}
