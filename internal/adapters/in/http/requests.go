package http

import (
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

type createOrderRequest struct {
	CustomerID      int64                 `json:"customer_id"`
	DeliveryAddress order.DeliveryAddress `json:"delivery_address"`
	BillingAddress  order.BillingAddress  `json:"billing_address"`
	Lines           []lineRequest         `json:"lines"`
	CustomerNotes   string                `json:"customer_notes"`
}

type lineRequest struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

func (r lineRequest) input() services.LineInput {
	return services.LineInput{
		ProductID:   r.ProductID,
		ProductName: r.ProductName,
		SKU:         r.SKU,
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
	}
}

type statusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

// discountRequest selects the discount by Type: "fixed" uses Amount,
// "percentage" uses Percentage and "loyalty" uses neither.
type discountRequest struct {
	Type       string          `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
	Reason     string          `json:"reason"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

type notesRequest struct {
	Notes string `json:"notes"`
}
