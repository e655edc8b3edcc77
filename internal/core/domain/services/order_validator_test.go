package services_test

import (
	"testing"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func delivery() order.DeliveryAddress {
	return order.DeliveryAddress{
		RecipientName: "Grace Hopper",
		Street:        "1 Harbor Way",
		City:          "Arlington",
		PostalCode:    "22201",
		Country:       "US",
	}
}

func billing() order.BillingAddress {
	return order.BillingAddress{
		BillingName: "Grace Hopper",
		Street:      "1 Harbor Way",
		City:        "Arlington",
		PostalCode:  "22201",
		Country:     "US",
	}
}

func lineInput(productID int64, quantity int, price string) services.LineInput {
	return services.LineInput{
		ProductID:   productID,
		ProductName: "Widget",
		SKU:         "W-1",
		Quantity:    quantity,
		UnitPrice:   decimal.RequireFromString(price),
	}
}

func TestOrderValidator_ValidateCreation(t *testing.T) {
	v := services.NewOrderValidator()

	t.Run("valid input", func(t *testing.T) {
		err := v.ValidateCreation(1, delivery(), billing(), []services.LineInput{
			lineInput(1, 1, "0.01"),
			lineInput(2, 100, "10000"),
		})

		assert.NoError(t, err)
	})

	t.Run("collects every violation", func(t *testing.T) {
		badDelivery := delivery()
		badDelivery.City = ""
		badBilling := billing()
		badBilling.Country = " "

		err := v.ValidateCreation(0, badDelivery, badBilling, []services.LineInput{
			lineInput(1, 0, "5"),
			lineInput(1, 1, "-1"),
			lineInput(3, 1, "10000.01"),
		})

		require.Error(t, err)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))

		var validation *errs.Error
		require.ErrorAs(t, err, &validation)
		assert.ElementsMatch(t, []string{
			"customer_id",
			"delivery_address.city",
			"billing_address.country",
			"quantity",
			"unit_price",
			"product_id",
			"unit_price",
		}, validation.FieldNames())
		assert.Contains(t, err.Error(), "lines[1]")
		assert.Contains(t, err.Error(), "already used by lines[0]")
	})

	t.Run("unit price finer than a cent", func(t *testing.T) {
		err := v.ValidateCreation(1, delivery(), billing(), []services.LineInput{
			lineInput(1, 1, "10.001"),
		})

		require.Error(t, err)
		var validation *errs.Error
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, []string{"unit_price"}, validation.FieldNames())
		assert.Contains(t, err.Error(), "more than 2 decimals")
	})

	t.Run("no lines", func(t *testing.T) {
		err := v.ValidateCreation(1, delivery(), billing(), nil)

		require.Error(t, err)
		var validation *errs.Error
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, []string{"lines"}, validation.FieldNames())
	})

	t.Run("too many lines", func(t *testing.T) {
		lines := make([]services.LineInput, 0, order.MaxLines+1)
		for i := range order.MaxLines + 1 {
			lines = append(lines, lineInput(int64(i+1), 1, "1"))
		}

		err := v.ValidateCreation(1, delivery(), billing(), lines)

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestOrderValidator_ValidateQuantityUpdate(t *testing.T) {
	v := services.NewOrderValidator()

	assert.NoError(t, v.ValidateQuantityUpdate(1))
	assert.NoError(t, v.ValidateQuantityUpdate(100))
	assert.Equal(t, errs.KindValidation, errs.KindOf(v.ValidateQuantityUpdate(0)))
	assert.Equal(t, errs.KindValidation, errs.KindOf(v.ValidateQuantityUpdate(101)))
}
