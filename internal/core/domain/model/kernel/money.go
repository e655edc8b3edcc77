package kernel

import (
	"fmt"

	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of fractional digits kept when rounding.
const moneyScale = 2

var hundred = decimal.NewFromInt(100)

// Money is a non-negative monetary amount. Arithmetic is exact; rounding
// happens only where a business rule asks for it (see Percentage).
// The zero value is a valid zero amount.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns a zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney wraps an amount supplied from outside the domain, such as a unit
// price or a fixed discount.
//
// The amount must be non-negative and carry at most two significant
// decimals. Trailing zeros do not count, so "10.500" is accepted while
// "0.00005" is rejected. Amounts derived by the domain (tax, net) may be
// finer and are rebuilt with RestoreMoney.
//
// Returns:
//   - Money: the wrapped amount
//   - error: ErrValueIsInvalid when the amount is negative or too precise
func NewMoney(amount decimal.Decimal) (Money, error) {
	if !amount.Equal(amount.Truncate(moneyScale)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s has more than %d decimals", amount.String(), moneyScale),
		)
	}
	return RestoreMoney(amount)
}

// RestoreMoney wraps an amount that was computed or persisted by the domain.
// Only negative values are rejected.
func RestoreMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	return Money{amount: amount}, nil
}

// MoneyFromString parses a decimal string such as "10.50".
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(amount)
}

// MustMoney is MoneyFromString for constants known to be valid. It panics otherwise.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns m - other and fails when the result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	return RestoreMoney(m.amount.Sub(other.amount))
}

// MulInt multiplies by a non-negative integer count.
func (m Money) MulInt(n int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(n)))}
}

// MulRate multiplies by a non-negative rate without rounding.
func (m Money) MulRate(rate decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(rate)}
}

// Percentage returns pct percent of m rounded half-up to two decimals.
// pct is expected in [0, 100].
func (m Money) Percentage(pct decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(pct).Div(hundred).Round(moneyScale)}
}

// PercentageOf expresses m as a percentage of whole, rounded half-up to two
// decimals. A zero whole yields zero.
func (m Money) PercentageOf(whole Money) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return m.amount.Mul(hundred).DivRound(whole.amount, moneyScale)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// Equal compares numerically, so 5 equals 5.00.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String formats with two decimals.
func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}
