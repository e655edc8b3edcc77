package services

import (
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var maxPercentage = decimal.NewFromInt(100)

// DiscountService applies monetary adjustments to an order. Every change
// goes through Order.ApplyDiscount, which recomputes the payment summary
// and appends a note describing the change to the internal notes.
type DiscountService struct{}

func NewDiscountService() DiscountService {
	return DiscountService{}
}

// ApplyPercentageDiscount converts pct of the order total into an amount,
// rounded half-up to cents, and applies it as a fixed discount.
func (s DiscountService) ApplyPercentageDiscount(o *order.Order, pct decimal.Decimal, reason string) (kernel.Money, error) {
	if pct.IsNegative() || pct.GreaterThan(maxPercentage) {
		return kernel.Money{}, errs.NewValidationError("discount percentage is invalid",
			errs.NewValueIsOutOfRangeError("percentage", pct.String(), 0, 100))
	}
	amount := o.Payment().Total().Percentage(pct)
	if err := s.ApplyFixedDiscount(o, amount, reason); err != nil {
		return kernel.Money{}, err
	}
	return amount, nil
}

// ApplyFixedDiscount replaces the discount with amount. An amount above the
// order total is a conflict.
func (DiscountService) ApplyFixedDiscount(o *order.Order, amount kernel.Money, reason string) error {
	return o.ApplyDiscount(amount, describe("Discount applied", amount, reason))
}

// RemoveDiscount resets the discount to zero. An order without a discount
// is a conflict.
func (DiscountService) RemoveDiscount(o *order.Order, reason string) error {
	return o.RemoveDiscount(describe("Discount removed", o.Payment().Discount(), reason))
}

// ApplyLoyaltyDiscount applies the tier matching pastOrderCount. Customers
// below the first tier get nothing and the order is left untouched; the
// returned amount is then zero.
func (s DiscountService) ApplyLoyaltyDiscount(o *order.Order, pastOrderCount int) (kernel.Money, error) {
	pct := order.LoyaltyPercentage(pastOrderCount)
	if pct.IsZero() {
		return kernel.ZeroMoney(), nil
	}
	return s.ApplyPercentageDiscount(o, pct,
		fmt.Sprintf("loyalty discount %s%% for %d previous orders", pct, pastOrderCount))
}

// CurrentDiscountPercentage is the discount as a share of the total.
func (DiscountService) CurrentDiscountPercentage(o *order.Order) decimal.Decimal {
	return o.Payment().DiscountPercentage()
}

func (DiscountService) HasDiscount(o *order.Order) bool {
	return o.Payment().HasDiscount()
}

func describe(action string, amount kernel.Money, reason string) string {
	if reason == "" {
		return fmt.Sprintf("%s: %s %s", action, amount, order.Currency)
	}
	return fmt.Sprintf("%s: %s %s - Reason: %s", action, amount, order.Currency, reason)
}
