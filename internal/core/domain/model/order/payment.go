package order

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Currency is the only currency orders are priced in.
const Currency = "EUR"

var (
	// TaxRate is applied to the order total.
	TaxRate = decimal.RequireFromString("0.20")

	// ShippingFee is charged once per order.
	ShippingFee = kernel.MustMoney("5.99")
)

var ErrPaymentSummaryIsNotConstructed = errors.New("PaymentSummary must be created via CalculatePaymentSummary")

// PaymentSummary is the monetary breakdown of an order:
//
//	net = total + tax + shipping - discount
//
// with tax = total × TaxRate and 0 <= discount <= total. A summary is never
// modified; every change produces a new one.
type PaymentSummary struct {
	total    kernel.Money
	tax      kernel.Money
	shipping kernel.Money
	discount kernel.Money
	net      kernel.Money
	currency string

	guard guard.ConstructorGuard
}

// CalculatePaymentSummary derives the summary from the current lines and a
// discount. A discount above the total is a conflict.
func CalculatePaymentSummary(lines []*Line, discount kernel.Money) (PaymentSummary, error) {
	total := kernel.ZeroMoney()
	for _, l := range lines {
		total = total.Add(l.TotalPrice())
	}
	return summaryFromTotal(total, discount)
}

// RestorePaymentSummary rebuilds a persisted summary and rejects one whose
// stored amounts disagree with the formula.
func RestorePaymentSummary(
	total, tax, shipping, discount, net kernel.Money,
	currency string,
) (PaymentSummary, error) {
	if currency != Currency {
		return PaymentSummary{}, errs.NewValueIsInvalidErrorWithCause(
			"currency",
			fmt.Errorf("%q is not %s", currency, Currency),
		)
	}
	expected, err := summaryFromTotal(total, discount)
	if err != nil {
		return PaymentSummary{}, err
	}
	if !expected.tax.Equal(tax) || !expected.shipping.Equal(shipping) || !expected.net.Equal(net) {
		return PaymentSummary{}, errs.NewValueIsInvalidErrorWithCause(
			"payment_summary",
			fmt.Errorf("stored amounts tax=%s shipping=%s net=%s do not match total=%s discount=%s",
				tax, shipping, net, total, discount),
		)
	}
	return expected, nil
}

func summaryFromTotal(total, discount kernel.Money) (PaymentSummary, error) {
	if discount.GreaterThan(total) {
		return PaymentSummary{}, errs.NewConflictError(
			fmt.Sprintf("discount %s exceeds order total %s", discount, total),
		)
	}

	tax := total.MulRate(TaxRate)
	gross := total.Add(tax).Add(ShippingFee)
	net, err := gross.Sub(discount)
	if err != nil {
		return PaymentSummary{}, err
	}

	return PaymentSummary{
		total:    total,
		tax:      tax,
		shipping: ShippingFee,
		discount: discount,
		net:      net,
		currency: Currency,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// LoyaltyPercentage maps a customer's past order count to a discount
// percentage: 50 or more gives 15, 20 or more gives 10, 10 or more gives 5.
func LoyaltyPercentage(pastOrderCount int) decimal.Decimal {
	switch {
	case pastOrderCount >= 50:
		return decimal.NewFromInt(15)
	case pastOrderCount >= 20:
		return decimal.NewFromInt(10)
	case pastOrderCount >= 10:
		return decimal.NewFromInt(5)
	default:
		return decimal.Zero
	}
}

func (p PaymentSummary) Validate() error {
	return p.guard.Validate(ErrPaymentSummaryIsNotConstructed)
}

// WithDiscount returns the summary recomputed for another discount.
func (p PaymentSummary) WithDiscount(discount kernel.Money) (PaymentSummary, error) {
	return summaryFromTotal(p.total, discount)
}

func (p PaymentSummary) Total() kernel.Money    { return p.total }
func (p PaymentSummary) Tax() kernel.Money      { return p.tax }
func (p PaymentSummary) Shipping() kernel.Money { return p.shipping }
func (p PaymentSummary) Discount() kernel.Money { return p.discount }
func (p PaymentSummary) Net() kernel.Money      { return p.net }
func (p PaymentSummary) Currency() string       { return p.currency }

// HasDiscount reports a non-zero discount.
func (p PaymentSummary) HasDiscount() bool {
	return p.discount.IsPositive()
}

// DiscountPercentage is the discount as a percentage of the total, rounded
// half-up to two decimals.
func (p PaymentSummary) DiscountPercentage() decimal.Decimal {
	return p.discount.PercentageOf(p.total)
}
