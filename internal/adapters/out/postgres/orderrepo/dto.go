// Package orderrepo persists order aggregates in three tables: orders,
// order_lines and order_status_history. Money columns are numeric with four
// decimal places because tax is stored unrounded.
package orderrepo

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Lines and History are loaded with Preload and
// written separately.
type OrderDTO struct {
	ID            uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Number        string             `gorm:"size:64;uniqueIndex;not null"`
	CustomerID    int64              `gorm:"index;not null"`
	Status        string             `gorm:"size:32;index;not null"`
	Delivery      DeliveryAddressDTO `gorm:"embedded;embeddedPrefix:delivery_"`
	Billing       BillingAddressDTO  `gorm:"embedded;embeddedPrefix:billing_"`
	Payment       PaymentDTO         `gorm:"embedded;embeddedPrefix:payment_"`
	CustomerNotes string             `gorm:"type:text"`
	InternalNotes string             `gorm:"type:text"`
	CreatedAt     time.Time          `gorm:"index;not null;autoCreateTime:false"`
	UpdatedAt     time.Time          `gorm:"not null;autoUpdateTime:false"`
	ConfirmedAt   *time.Time
	ShippedAt     *time.Time
	DeliveredAt   *time.Time

	Lines   []OrderLineDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History []HistoryEntryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type DeliveryAddressDTO struct {
	RecipientName          string `gorm:"size:255"`
	Street                 string `gorm:"size:255"`
	City                   string `gorm:"size:128"`
	PostalCode             string `gorm:"size:32"`
	Country                string `gorm:"size:64"`
	AdditionalInstructions string `gorm:"type:text"`
}

type BillingAddressDTO struct {
	BillingName string `gorm:"size:255"`
	Street      string `gorm:"size:255"`
	City        string `gorm:"size:128"`
	PostalCode  string `gorm:"size:32"`
	Country     string `gorm:"size:64"`
	CompanyName string `gorm:"size:255"`
	VATNumber   string `gorm:"column:vat_number;size:64"`
}

type PaymentDTO struct {
	Total    decimal.Decimal `gorm:"type:numeric(16,4);not null"`
	Tax      decimal.Decimal `gorm:"type:numeric(16,4);not null"`
	Shipping decimal.Decimal `gorm:"type:numeric(16,4);not null"`
	Discount decimal.Decimal `gorm:"type:numeric(16,4);not null"`
	Net      decimal.Decimal `gorm:"type:numeric(16,4);not null"`
	Currency string          `gorm:"size:3;not null"`
}

type OrderLineDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	Position    int             `gorm:"not null"`
	ProductID   int64           `gorm:"not null"`
	ProductName string          `gorm:"size:255;not null"`
	SKU         string          `gorm:"column:sku;size:64;not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(16,4);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:numeric(16,4);not null"`
}

func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// HistoryEntryDTO is append-only. (order_id, sequence) is unique, so two
// writers appending the same sequence cannot both commit.
type HistoryEntryDTO struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_order_history_sequence"`
	Sequence       int       `gorm:"not null;uniqueIndex:idx_order_history_sequence"`
	PreviousStatus string    `gorm:"size:32;not null"`
	NewStatus      string    `gorm:"size:32;not null"`
	Reason         string    `gorm:"type:text;not null"`
	ModifiedBy     string    `gorm:"size:255;not null"`
	ModifiedAt     time.Time `gorm:"index;not null"`
	Notes          string    `gorm:"type:text"`
}

func (HistoryEntryDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(o *order.Order) OrderDTO {
	id := o.ID().Bytes()
	delivery := o.DeliveryAddress()
	billing := o.BillingAddress()
	payment := o.Payment()

	dto := OrderDTO{
		ID:         id,
		Number:     o.Number(),
		CustomerID: o.CustomerID(),
		Status:     o.Status().String(),
		Delivery: DeliveryAddressDTO{
			RecipientName:          delivery.RecipientName,
			Street:                 delivery.Street,
			City:                   delivery.City,
			PostalCode:             delivery.PostalCode,
			Country:                delivery.Country,
			AdditionalInstructions: delivery.AdditionalInstructions,
		},
		Billing: BillingAddressDTO{
			BillingName: billing.BillingName,
			Street:      billing.Street,
			City:        billing.City,
			PostalCode:  billing.PostalCode,
			Country:     billing.Country,
			CompanyName: billing.CompanyName,
			VATNumber:   billing.VATNumber,
		},
		Payment: PaymentDTO{
			Total:    payment.Total().Decimal(),
			Tax:      payment.Tax().Decimal(),
			Shipping: payment.Shipping().Decimal(),
			Discount: payment.Discount().Decimal(),
			Net:      payment.Net().Decimal(),
			Currency: payment.Currency(),
		},
		CustomerNotes: o.CustomerNotes(),
		InternalNotes: o.InternalNotes(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
		ConfirmedAt:   o.ConfirmedAt(),
		ShippedAt:     o.ShippedAt(),
		DeliveredAt:   o.DeliveredAt(),
	}

	for i, l := range o.Lines() {
		dto.Lines = append(dto.Lines, OrderLineDTO{
			ID:          l.ID().Bytes(),
			OrderID:     id,
			Position:    i,
			ProductID:   l.ProductID(),
			ProductName: l.ProductName(),
			SKU:         l.SKU(),
			Quantity:    l.Quantity(),
			UnitPrice:   l.UnitPrice().Decimal(),
			TotalPrice:  l.TotalPrice().Decimal(),
		})
	}

	for i, e := range o.History().All() {
		dto.History = append(dto.History, HistoryEntryDTO{
			OrderID:        id,
			Sequence:       i,
			PreviousStatus: e.PreviousStatus().String(),
			NewStatus:      e.NewStatus().String(),
			Reason:         e.Reason(),
			ModifiedBy:     e.ModifiedBy(),
			ModifiedAt:     e.ModifiedAt(),
			Notes:          e.Notes(),
		})
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	payment, err := paymentToDomain(dto.Payment)
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		line, lineErr := lineToDomain(l)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, h := range dto.History {
		entry, entryErr := historyToDomain(h)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:         id,
		Number:     dto.Number,
		CustomerID: dto.CustomerID,
		Status:     status,
		DeliveryAddress: order.DeliveryAddress{
			RecipientName:          dto.Delivery.RecipientName,
			Street:                 dto.Delivery.Street,
			City:                   dto.Delivery.City,
			PostalCode:             dto.Delivery.PostalCode,
			Country:                dto.Delivery.Country,
			AdditionalInstructions: dto.Delivery.AdditionalInstructions,
		},
		BillingAddress: order.BillingAddress{
			BillingName: dto.Billing.BillingName,
			Street:      dto.Billing.Street,
			City:        dto.Billing.City,
			PostalCode:  dto.Billing.PostalCode,
			Country:     dto.Billing.Country,
			CompanyName: dto.Billing.CompanyName,
			VATNumber:   dto.Billing.VATNumber,
		},
		Payment:       payment,
		Lines:         lines,
		History:       history,
		CustomerNotes: dto.CustomerNotes,
		InternalNotes: dto.InternalNotes,
		CreatedAt:     dto.CreatedAt.UTC(),
		UpdatedAt:     dto.UpdatedAt.UTC(),
		ConfirmedAt:   utc(dto.ConfirmedAt),
		ShippedAt:     utc(dto.ShippedAt),
		DeliveredAt:   utc(dto.DeliveredAt),
	})
}

func paymentToDomain(dto PaymentDTO) (order.PaymentSummary, error) {
	total, totalErr := kernel.RestoreMoney(dto.Total)
	tax, taxErr := kernel.RestoreMoney(dto.Tax)
	shipping, shippingErr := kernel.RestoreMoney(dto.Shipping)
	discount, discountErr := kernel.RestoreMoney(dto.Discount)
	net, netErr := kernel.RestoreMoney(dto.Net)
	if err := errors.Join(totalErr, taxErr, shippingErr, discountErr, netErr); err != nil {
		return order.PaymentSummary{}, err
	}
	return order.RestorePaymentSummary(total, tax, shipping, discount, net, dto.Currency)
}

func lineToDomain(dto OrderLineDTO) (*order.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.RestoreMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}
	return order.RestoreLine(id, dto.ProductID, dto.ProductName, dto.SKU, dto.Quantity, price)
}

func historyToDomain(dto HistoryEntryDTO) (order.HistoryEntry, error) {
	previous, previousErr := order.ParseStatus(dto.PreviousStatus)
	next, nextErr := order.ParseStatus(dto.NewStatus)
	if err := errors.Join(previousErr, nextErr); err != nil {
		return order.HistoryEntry{}, err
	}
	return order.RestoreHistoryEntry(previous, next, dto.Reason, dto.ModifiedBy, dto.ModifiedAt.UTC(), dto.Notes)
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
