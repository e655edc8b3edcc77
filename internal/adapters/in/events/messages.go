// Package events maps notifications from the payment and shipping services
// onto order commands. Every message is applied at most once per id.
package events

import (
	"encoding/json"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

const (
	PaymentSucceededEvent  = "PaymentSucceeded"
	PaymentFailedEvent     = "PaymentFailed"
	ShipmentCreatedEvent   = "ShipmentCreated"
	ShipmentDeliveredEvent = "ShipmentDelivered"
)

// SystemActor is recorded as the author of status changes caused by
// inbound events.
const SystemActor = commands.SystemActor

// Message is the envelope other services publish. Payload holds one of the
// payload types below, selected by Name.
type Message struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

type PaymentSucceeded struct {
	OrderID       kernel.UUID     `json:"order_id"`
	OrderNumber   string          `json:"order_number"`
	TransactionID string          `json:"transaction_id"`
	PaymentMethod string          `json:"payment_method"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
}

type PaymentFailed struct {
	OrderID         kernel.UUID     `json:"order_id"`
	OrderNumber     string          `json:"order_number"`
	TransactionID   string          `json:"transaction_id"`
	PaymentMethod   string          `json:"payment_method"`
	ErrorCode       string          `json:"error_code"`
	ErrorMessage    string          `json:"error_message"`
	AttemptedAmount decimal.Decimal `json:"attempted_amount"`
	Currency        string          `json:"currency"`
}

type ShipmentCreated struct {
	OrderID               kernel.UUID `json:"order_id"`
	OrderNumber           string      `json:"order_number"`
	ShipmentID            string      `json:"shipment_id"`
	TrackingNumber        string      `json:"tracking_number"`
	Carrier               string      `json:"carrier"`
	ShippingMethod        string      `json:"shipping_method"`
	EstimatedDeliveryDate *time.Time  `json:"estimated_delivery_date,omitempty"`
}

type ShipmentDelivered struct {
	OrderID          kernel.UUID `json:"order_id"`
	OrderNumber      string      `json:"order_number"`
	ShipmentID       string      `json:"shipment_id"`
	TrackingNumber   string      `json:"tracking_number"`
	DeliveredAt      time.Time   `json:"delivered_at"`
	ReceivedBy       string      `json:"received_by"`
	DeliveryLocation string      `json:"delivery_location"`
	DeliveryNotes    string      `json:"delivery_notes"`
}
