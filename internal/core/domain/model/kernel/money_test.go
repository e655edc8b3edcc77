package kernel_test

import (
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("accepts zero and positive amounts", func(t *testing.T) {
		zero, err := kernel.NewMoney(decimal.Zero)
		require.NoError(t, err)
		assert.True(t, zero.IsZero())

		m, err := kernel.MoneyFromString("10.5")
		require.NoError(t, err)
		assert.Equal(t, "10.50", m.String())
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := kernel.MoneyFromString("-0.01")

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		_, err := kernel.MoneyFromString("ten")

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects sub-cent amounts", func(t *testing.T) {
		for _, s := range []string{"0.00005", "10.001", "9.999"} {
			_, err := kernel.MoneyFromString(s)

			assert.ErrorIs(t, err, errs.ErrValueIsInvalid, s)
		}
	})

	t.Run("ignores trailing zeros", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.RequireFromString("10.5000"))

		require.NoError(t, err)
		assert.True(t, m.Equal(kernel.MustMoney("10.50")))
	})
}

func TestRestoreMoney(t *testing.T) {
	t.Run("keeps derived precision", func(t *testing.T) {
		m, err := kernel.RestoreMoney(decimal.RequireFromString("2.0010"))

		require.NoError(t, err)
		assert.True(t, m.Decimal().Equal(decimal.RequireFromString("2.001")))
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := kernel.RestoreMoney(decimal.RequireFromString("-0.001"))

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	ten := kernel.MustMoney("10")
	five := kernel.MustMoney("5.00")

	assert.True(t, ten.Add(five).Equal(kernel.MustMoney("15")))
	assert.True(t, five.MulInt(3).Equal(kernel.MustMoney("15")))
	assert.True(t, kernel.MustMoney("25").MulRate(decimal.RequireFromString("0.20")).Equal(five))

	diff, err := ten.Sub(five)
	require.NoError(t, err)
	assert.True(t, diff.Equal(five))

	_, err = five.Sub(ten)
	assert.Error(t, err)

	assert.True(t, ten.GreaterThan(five))
	assert.True(t, five.LessThan(ten))
	assert.True(t, five.Equal(kernel.MustMoney("5")))
}

func TestMoney_Percentage(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		pct    string
		want   string
	}{
		{name: "ten percent of hundred", amount: "100", pct: "10", want: "10.00"},
		{name: "rounds half up", amount: "0.05", pct: "50", want: "0.03"},
		{name: "rounds down below half", amount: "33.33", pct: "10", want: "3.33"},
		{name: "zero percent", amount: "99.99", pct: "0", want: "0.00"},
		{name: "full amount", amount: "42.42", pct: "100", want: "42.42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kernel.MustMoney(tt.amount).Percentage(decimal.RequireFromString(tt.pct))

			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestMoney_PercentageOf(t *testing.T) {
	assert.Equal(t, "10", kernel.MustMoney("10").PercentageOf(kernel.MustMoney("100")).String())
	assert.Equal(t, "33.33", kernel.MustMoney("1").PercentageOf(kernel.MustMoney("3")).String())
	assert.True(t, kernel.MustMoney("1").PercentageOf(kernel.ZeroMoney()).IsZero())
}
