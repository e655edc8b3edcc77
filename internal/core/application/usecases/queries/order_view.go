// Package queries contains the read operations of the ordering service.
// Queries never change state. Most of them read complete aggregates through
// OrderReader; SearchOrdersQueryHandler reads the orders table directly.
package queries

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// OrderReader is the read side of ports.OrderRepository.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	GetByOrderNumber(ctx context.Context, number string) (*order.Order, error)
	ListByCustomer(ctx context.Context, customerID int64, page ports.Page) ([]*order.Order, error)
	ListByStatus(ctx context.Context, status order.Status, page ports.Page) ([]*order.Order, error)
	ListByCustomerAndStatus(ctx context.Context, customerID int64, status order.Status, page ports.Page) ([]*order.Order, error)
	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
	CountByStatus(ctx context.Context, status order.Status) (int64, error)
	CountByCustomerAndStatus(ctx context.Context, customerID int64, status order.Status) (int64, error)
}

// OrderView is the read model of a complete order. Amounts are decimal
// strings with two places.
type OrderView struct {
	ID              kernel.UUID           `json:"id"`
	Number          string                `json:"order_number"`
	CustomerID      int64                 `json:"customer_id"`
	Status          string                `json:"status"`
	StatusLabel     string                `json:"status_description"`
	DeliveryAddress order.DeliveryAddress `json:"delivery_address"`
	BillingAddress  order.BillingAddress  `json:"billing_address"`
	Lines           []LineView            `json:"lines"`
	Payment         PaymentView           `json:"payment"`
	CustomerNotes   string                `json:"customer_notes,omitempty"`
	InternalNotes   string                `json:"internal_notes,omitempty"`
	CanBeCancelled  bool                  `json:"can_be_cancelled"`
	CanBeModified   bool                  `json:"can_be_modified"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
	ConfirmedAt     *time.Time            `json:"confirmed_at,omitempty"`
	ShippedAt       *time.Time            `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time            `json:"delivered_at,omitempty"`
	History         []HistoryEntryView    `json:"history"`
}

type LineView struct {
	ID          kernel.UUID `json:"id"`
	ProductID   int64       `json:"product_id"`
	ProductName string      `json:"product_name"`
	SKU         string      `json:"sku"`
	Quantity    int         `json:"quantity"`
	UnitPrice   string      `json:"unit_price"`
	TotalPrice  string      `json:"total_price"`
}

type PaymentView struct {
	Total              string `json:"total"`
	Tax                string `json:"tax"`
	Shipping           string `json:"shipping"`
	Discount           string `json:"discount"`
	DiscountPercentage string `json:"discount_percentage"`
	Net                string `json:"net"`
	Currency           string `json:"currency"`
}

type HistoryEntryView struct {
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	Reason         string    `json:"reason"`
	ModifiedBy     string    `json:"modified_by"`
	ModifiedAt     time.Time `json:"modified_at"`
	Notes          string    `json:"notes,omitempty"`
}

// OrderSummary is the list row of an order.
type OrderSummary struct {
	ID         kernel.UUID `json:"id"`
	Number     string      `json:"order_number"`
	CustomerID int64       `json:"customer_id"`
	Status     string      `json:"status"`
	Total      string      `json:"total"`
	Net        string      `json:"net"`
	CreatedAt  time.Time   `json:"created_at"`
}

func newOrderView(o *order.Order) OrderView {
	payment := o.Payment()
	view := OrderView{
		ID:              o.ID(),
		Number:          o.Number(),
		CustomerID:      o.CustomerID(),
		Status:          o.Status().String(),
		StatusLabel:     o.Status().Description(),
		DeliveryAddress: o.DeliveryAddress(),
		BillingAddress:  o.BillingAddress(),
		Lines:           make([]LineView, 0, len(o.Lines())),
		Payment: PaymentView{
			Total:              payment.Total().String(),
			Tax:                payment.Tax().String(),
			Shipping:           payment.Shipping().String(),
			Discount:           payment.Discount().String(),
			DiscountPercentage: payment.DiscountPercentage().StringFixed(2),
			Net:                payment.Net().String(),
			Currency:           payment.Currency(),
		},
		CustomerNotes:  o.CustomerNotes(),
		InternalNotes:  o.InternalNotes(),
		CanBeCancelled: o.CanBeCancelled(),
		CanBeModified:  o.CanBeModified(),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
		ConfirmedAt:    o.ConfirmedAt(),
		ShippedAt:      o.ShippedAt(),
		DeliveredAt:    o.DeliveredAt(),
		History:        newHistoryViews(o.History()),
	}
	for _, l := range o.Lines() {
		view.Lines = append(view.Lines, LineView{
			ID:          l.ID(),
			ProductID:   l.ProductID(),
			ProductName: l.ProductName(),
			SKU:         l.SKU(),
			Quantity:    l.Quantity(),
			UnitPrice:   l.UnitPrice().String(),
			TotalPrice:  l.TotalPrice().String(),
		})
	}
	return view
}

func newHistoryViews(h order.History) []HistoryEntryView {
	views := make([]HistoryEntryView, 0, h.Count())
	for _, e := range h.All() {
		views = append(views, newHistoryEntryView(e))
	}
	return views
}

func newHistoryEntryView(e order.HistoryEntry) HistoryEntryView {
	return HistoryEntryView{
		PreviousStatus: e.PreviousStatus().String(),
		NewStatus:      e.NewStatus().String(),
		Reason:         e.Reason(),
		ModifiedBy:     e.ModifiedBy(),
		ModifiedAt:     e.ModifiedAt(),
		Notes:          e.Notes(),
	}
}

func newOrderSummary(o *order.Order) OrderSummary {
	return OrderSummary{
		ID:         o.ID(),
		Number:     o.Number(),
		CustomerID: o.CustomerID(),
		Status:     o.Status().String(),
		Total:      o.Payment().Total().String(),
		Net:        o.Payment().Net().String(),
		CreatedAt:  o.CreatedAt(),
	}
}

func newOrderSummaries(orders []*order.Order) []OrderSummary {
	out := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		out = append(out, newOrderSummary(o))
	}
	return out
}
