package order

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
)

// Event names, used as routing keys by publishers.
const (
	EventOrderPlaced           = "order.placed"
	EventOrderStatusChanged    = "order.status_changed"
	EventOrderCancelled        = "order.cancelled"
	EventOrderReadyForShipment = "order.ready_for_shipment"
	EventOrderModifiedByAdmin  = "order.modified_by_admin"
)

// Admin modification types carried by OrderModifiedByAdmin.
const (
	AdminModificationStatus        = "STATUS_CHANGE"
	AdminModificationInternalNotes = "INTERNAL_NOTES"
)

// Event is a fact recorded by the aggregate. Events are collected on the
// order and drained with PullEvents once the change is persisted.
type Event interface {
	EventName() string
	AggregateID() kernel.UUID
	OccurredAt() time.Time
}

type OrderPlaced struct {
	OrderID     kernel.UUID `json:"order_id"`
	OrderNumber string      `json:"order_number"`
	CustomerID  int64       `json:"customer_id"`
	Occurred    time.Time   `json:"occurred_at"`
}

func (e OrderPlaced) EventName() string        { return EventOrderPlaced }
func (e OrderPlaced) AggregateID() kernel.UUID { return e.OrderID }
func (e OrderPlaced) OccurredAt() time.Time    { return e.Occurred }

type OrderStatusChanged struct {
	OrderID        kernel.UUID `json:"order_id"`
	OrderNumber    string      `json:"order_number"`
	PreviousStatus Status      `json:"previous_status"`
	NewStatus      Status      `json:"new_status"`
	Reason         string      `json:"reason"`
	ChangedBy      string      `json:"changed_by"`
	Occurred       time.Time   `json:"occurred_at"`
}

func (e OrderStatusChanged) EventName() string        { return EventOrderStatusChanged }
func (e OrderStatusChanged) AggregateID() kernel.UUID { return e.OrderID }
func (e OrderStatusChanged) OccurredAt() time.Time    { return e.Occurred }

type OrderCancelled struct {
	OrderID     kernel.UUID `json:"order_id"`
	OrderNumber string      `json:"order_number"`
	CustomerID  int64       `json:"customer_id"`
	Reason      string      `json:"reason"`
	CancelledBy string      `json:"cancelled_by"`
	Occurred    time.Time   `json:"occurred_at"`
}

func (e OrderCancelled) EventName() string        { return EventOrderCancelled }
func (e OrderCancelled) AggregateID() kernel.UUID { return e.OrderID }
func (e OrderCancelled) OccurredAt() time.Time    { return e.Occurred }

type OrderReadyForShipment struct {
	OrderID     kernel.UUID `json:"order_id"`
	OrderNumber string      `json:"order_number"`
	CustomerID  int64       `json:"customer_id"`
	PreparedBy  string      `json:"prepared_by"`
	Occurred    time.Time   `json:"occurred_at"`
}

func (e OrderReadyForShipment) EventName() string        { return EventOrderReadyForShipment }
func (e OrderReadyForShipment) AggregateID() kernel.UUID { return e.OrderID }
func (e OrderReadyForShipment) OccurredAt() time.Time    { return e.Occurred }

type OrderModifiedByAdmin struct {
	OrderID          kernel.UUID `json:"order_id"`
	OrderNumber      string      `json:"order_number"`
	ModificationType string      `json:"modification_type"`
	PreviousValue    string      `json:"previous_value"`
	NewValue         string      `json:"new_value"`
	AdminUser        string      `json:"admin_user"`
	Reason           string      `json:"reason"`
	Occurred         time.Time   `json:"occurred_at"`
}

func (e OrderModifiedByAdmin) EventName() string        { return EventOrderModifiedByAdmin }
func (e OrderModifiedByAdmin) AggregateID() kernel.UUID { return e.OrderID }
func (e OrderModifiedByAdmin) OccurredAt() time.Time    { return e.Occurred }
