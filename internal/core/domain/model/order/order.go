package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

const (
	MinLines = 1
	MaxLines = 50

	// ReasonConfirmed is the history reason written by Confirm.
	ReasonConfirmed = "order confirmed"

	// AdminReasonPrefix marks status changes forced by an administrator.
	AdminReasonPrefix = "ADMIN: "
)

var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// now is the aggregate's clock. Timestamps are kept in UTC.
var now = func() time.Time { return time.Now().UTC() }

// Order is the aggregate root of the ordering domain.
//
// Invariants:
//   - id and number are set once and never change
//   - there is always at least one line and at most MaxLines, with distinct product ids
//   - the payment summary matches the lines and the current discount
//   - status only moves along the transition table, and each move appends
//     exactly one HistoryEntry in the same call
//
// Orders are created through NewOrder (new business data) or RestoreOrder
// (rehydration). All mutation goes through methods; events recorded along the
// way are drained with PullEvents.
type Order struct {
	id         kernel.UUID
	number     string
	customerID int64
	status     Status

	delivery DeliveryAddress
	billing  BillingAddress
	payment  PaymentSummary
	lines    []*Line
	history  []HistoryEntry

	customerNotes string
	internalNotes string

	createdAt   time.Time
	updatedAt   time.Time
	confirmedAt *time.Time
	shippedAt   *time.Time
	deliveredAt *time.Time

	events []Event

	guard guard.ConstructorGuard
}

// GenerateOrderNumber builds a candidate business key of the form
// ORD-<unix millis>-<8 upper-case hex chars>. Uniqueness is checked by the caller.
func GenerateOrderNumber(at time.Time) string {
	suffix := strings.ToUpper(kernel.NewUUID().String()[:8])
	return fmt.Sprintf("ORD-%d-%s", at.UnixMilli(), suffix)
}

// NewOrder creates a Pending order with a summary computed from lines and no
// discount. It records OrderPlaced.
//
// Example:
//
//	line, _ := order.NewLine(42, "Keyboard", "KB-01", 2, kernel.MustMoney("10.00"))
//	o, err := order.NewOrder(kernel.NewUUID(), number, 7, delivery, billing, []*order.Line{line}, "")
func NewOrder(
	id kernel.UUID,
	number string,
	customerID int64,
	delivery DeliveryAddress,
	billing BillingAddress,
	lines []*Line,
	customerNotes string,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		customerNotes: strings.TrimSpace(customerNotes),
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setCustomerID(customerID),
		o.setDelivery(delivery),
		o.setBilling(billing),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	payment, err := CalculatePaymentSummary(o.lines, kernel.ZeroMoney())
	if err != nil {
		return nil, err
	}
	o.payment = payment

	at := now()
	o.createdAt = at
	o.updatedAt = at
	o.record(OrderPlaced{
		OrderID:     o.id,
		OrderNumber: o.number,
		CustomerID:  o.customerID,
		Occurred:    at,
	})

	return o, nil
}

// Snapshot carries the persisted state of an order into RestoreOrder.
type Snapshot struct {
	ID              kernel.UUID
	Number          string
	CustomerID      int64
	Status          Status
	DeliveryAddress DeliveryAddress
	BillingAddress  BillingAddress
	Payment         PaymentSummary
	Lines           []*Line
	History         []HistoryEntry
	CustomerNotes   string
	InternalNotes   string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ConfirmedAt     *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
}

// RestoreOrder rehydrates an order from storage. It re-checks the same
// invariants as NewOrder plus the consistency of the stored payment summary,
// and records no events.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		status:        s.Status,
		history:       append([]HistoryEntry(nil), s.History...),
		customerNotes: s.CustomerNotes,
		internalNotes: s.InternalNotes,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		confirmedAt:   s.ConfirmedAt,
		shippedAt:     s.ShippedAt,
		deliveredAt:   s.DeliveredAt,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setNumber(s.Number),
		o.setCustomerID(s.CustomerID),
		s.Status.Validate(),
		o.setDelivery(s.DeliveryAddress),
		o.setBilling(s.BillingAddress),
		o.setLines(s.Lines),
		s.Payment.Validate(),
	); err != nil {
		return nil, err
	}

	expected, err := CalculatePaymentSummary(o.lines, s.Payment.Discount())
	if err != nil {
		return nil, err
	}
	if !expected.Net().Equal(s.Payment.Net()) || !expected.Total().Equal(s.Payment.Total()) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"payment_summary",
			fmt.Errorf("stored total %s does not match lines total %s", s.Payment.Total(), expected.Total()),
		)
	}
	o.payment = expected

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Number() string {
	return o.number
}

func (o *Order) CustomerID() int64 {
	return o.customerID
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) DeliveryAddress() DeliveryAddress {
	return o.delivery
}

func (o *Order) BillingAddress() BillingAddress {
	return o.billing
}

func (o *Order) Payment() PaymentSummary {
	return o.payment
}

// Lines returns the lines in insertion order. The slice is a copy.
func (o *Order) Lines() []*Line {
	return append([]*Line(nil), o.lines...)
}

func (o *Order) CustomerNotes() string {
	return o.customerNotes
}

func (o *Order) InternalNotes() string {
	return o.internalNotes
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *Order) ConfirmedAt() *time.Time {
	return o.confirmedAt
}

func (o *Order) ShippedAt() *time.Time {
	return o.shippedAt
}

func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// History returns a read-only view over the status changes.
func (o *Order) History() History {
	return newHistory(o.history)
}

// CanBeCancelled is true while the order is Pending or Confirmed.
func (o *Order) CanBeCancelled() bool {
	return o.status == Pending || o.status == Confirmed
}

// CanBeModified is true while lines and notes may still change.
func (o *Order) CanBeModified() bool {
	return o.status == Pending || o.status == Confirmed
}

// IsPaid is true once payment was received and the order was not cancelled
// or refunded since.
func (o *Order) IsPaid() bool {
	switch o.status {
	case Paid, Preparing, ReadyForShipment, Shipped, Delivered:
		return true
	default:
		return false
	}
}

func (o *Order) IsDelivered() bool {
	return o.status == Delivered
}

// Confirm moves a Pending order to Confirmed.
func (o *Order) Confirm(actor string) error {
	return o.changeStatus(Confirmed, ReasonConfirmed, actor)
}

// UpdateStatus moves the order to next if the transition table allows it.
// The status change and its history entry happen together or not at all.
func (o *Order) UpdateStatus(next Status, reason, actor string) error {
	return o.changeStatus(next, reason, actor)
}

// Cancel moves a Pending or Confirmed order to Cancelled. Any other status is
// a conflict, even where the transition table would allow cancelling.
func (o *Order) Cancel(reason, actor string) error {
	if !o.CanBeCancelled() {
		return errs.NewConflictError(
			fmt.Sprintf("order %s in status %s cannot be cancelled", o.number, o.status),
		)
	}
	return o.changeStatus(Cancelled, reason, actor)
}

// ForceStatus is the administrator's status change. The reason is prefixed
// with AdminReasonPrefix and the transition table still applies.
func (o *Order) ForceStatus(next Status, reason, admin string) error {
	if err := validationOf("forced status change is invalid",
		requireText("reason", reason),
		requireText("admin_user", admin),
	); err != nil {
		return err
	}

	previous := o.status
	if err := o.changeStatus(next, AdminReasonPrefix+reason, admin); err != nil {
		return err
	}

	o.record(OrderModifiedByAdmin{
		OrderID:          o.id,
		OrderNumber:      o.number,
		ModificationType: AdminModificationStatus,
		PreviousValue:    previous.String(),
		NewValue:         next.String(),
		AdminUser:        admin,
		Reason:           reason,
		Occurred:         o.updatedAt,
	})
	return nil
}

// AddAdminNote appends "[<RFC3339 timestamp> - <admin>] <notes>" to the
// internal notes and records OrderModifiedByAdmin.
func (o *Order) AddAdminNote(notes, admin string) error {
	if err := validationOf("internal notes are invalid",
		requireText("notes", notes),
		requireText("admin_user", admin),
	); err != nil {
		return err
	}

	at := now()
	previous := o.internalNotes
	o.appendInternalNote(fmt.Sprintf("[%s - %s] %s", at.Format(time.RFC3339), admin, strings.TrimSpace(notes)), at)

	o.record(OrderModifiedByAdmin{
		OrderID:          o.id,
		OrderNumber:      o.number,
		ModificationType: AdminModificationInternalNotes,
		PreviousValue:    previous,
		NewValue:         o.internalNotes,
		AdminUser:        admin,
		Reason:           "internal notes added",
		Occurred:         at,
	})
	return nil
}

// AppendInternalNote adds a line to the internal notes.
func (o *Order) AppendInternalNote(note string) error {
	if err := validationOf("internal note is invalid", requireText("note", note)); err != nil {
		return err
	}
	o.appendInternalNote(strings.TrimSpace(note), now())
	return nil
}

// SetCustomerNotes replaces the customer's notes while the order can still be modified.
func (o *Order) SetCustomerNotes(notes string) error {
	if err := o.ensureModifiable(); err != nil {
		return err
	}
	o.customerNotes = strings.TrimSpace(notes)
	o.updatedAt = now()
	return nil
}

// AddLine appends a line and recomputes the payment summary.
func (o *Order) AddLine(line *Line) error {
	if err := o.ensureModifiable(); err != nil {
		return err
	}
	if err := line.Validate(); err != nil {
		return err
	}

	candidate := append(o.Lines(), line)
	if err := validateLineSet(candidate); err != nil {
		return err
	}
	return o.replaceLines(candidate)
}

// RemoveLine drops a line and recomputes the payment summary. The last line
// cannot be removed.
func (o *Order) RemoveLine(lineID kernel.UUID) error {
	if err := o.ensureModifiable(); err != nil {
		return err
	}
	idx := o.lineIndex(lineID)
	if idx < 0 {
		return errs.NewNotFoundError("order line", lineID)
	}
	if len(o.lines) == MinLines {
		return errs.NewConflictError("an order must keep at least one line")
	}

	candidate := make([]*Line, 0, len(o.lines)-1)
	candidate = append(candidate, o.lines[:idx]...)
	candidate = append(candidate, o.lines[idx+1:]...)
	return o.replaceLines(candidate)
}

// UpdateLineQuantity changes a line's quantity and recomputes the payment summary.
func (o *Order) UpdateLineQuantity(lineID kernel.UUID, quantity int) error {
	if err := validationOf("line quantity is invalid", ValidateQuantity(quantity)); err != nil {
		return err
	}
	if err := o.ensureModifiable(); err != nil {
		return err
	}
	idx := o.lineIndex(lineID)
	if idx < 0 {
		return errs.NewNotFoundError("order line", lineID)
	}

	line := o.lines[idx]
	previous := line.Quantity()
	if err := line.setQuantity(quantity); err != nil {
		return err
	}
	if err := o.replaceLines(o.lines); err != nil {
		_ = line.setQuantity(previous)
		return err
	}
	return nil
}

// ApplyDiscount replaces the discount with amount and appends note to the
// internal notes. An amount above the order total is a conflict.
func (o *Order) ApplyDiscount(amount kernel.Money, note string) error {
	payment, err := o.payment.WithDiscount(amount)
	if err != nil {
		return err
	}
	at := now()
	o.payment = payment
	o.updatedAt = at
	if strings.TrimSpace(note) != "" {
		o.appendInternalNote(strings.TrimSpace(note), at)
	}
	return nil
}

// RemoveDiscount resets the discount to zero. Removing a discount that does
// not exist is a conflict.
func (o *Order) RemoveDiscount(note string) error {
	if !o.payment.HasDiscount() {
		return errs.NewConflictError(fmt.Sprintf("order %s has no discount to remove", o.number))
	}
	return o.ApplyDiscount(kernel.ZeroMoney(), note)
}

// PullEvents returns the recorded events and clears them.
func (o *Order) PullEvents() []Event {
	events := o.events
	o.events = nil
	return events
}

func (o *Order) changeStatus(next Status, reason, actor string) error {
	if err := validationOf("status change is invalid",
		next.Validate(),
		requireText("reason", reason),
		requireText("modified_by", actor),
	); err != nil {
		return err
	}
	if !CanTransition(o.status, next) {
		return errs.NewInvalidTransitionError(o.status, next)
	}

	at := now()
	previous := o.status

	o.history = append(o.history, HistoryEntry{
		previous: previous,
		next:     next,
		reason:   reason,
		actor:    actor,
		at:       at,
	})
	o.status = next
	o.updatedAt = at

	switch next { //nolint:exhaustive // only these statuses carry a timestamp
	case Confirmed:
		o.confirmedAt = &at
	case Shipped:
		o.shippedAt = &at
	case Delivered:
		o.deliveredAt = &at
	}

	o.record(OrderStatusChanged{
		OrderID:        o.id,
		OrderNumber:    o.number,
		PreviousStatus: previous,
		NewStatus:      next,
		Reason:         reason,
		ChangedBy:      actor,
		Occurred:       at,
	})

	switch next { //nolint:exhaustive // only these statuses have their own event
	case Cancelled:
		o.record(OrderCancelled{
			OrderID:     o.id,
			OrderNumber: o.number,
			CustomerID:  o.customerID,
			Reason:      reason,
			CancelledBy: actor,
			Occurred:    at,
		})
	case ReadyForShipment:
		o.record(OrderReadyForShipment{
			OrderID:     o.id,
			OrderNumber: o.number,
			CustomerID:  o.customerID,
			PreparedBy:  actor,
			Occurred:    at,
		})
	}

	return nil
}

// replaceLines installs lines if the current discount still fits the new total.
func (o *Order) replaceLines(lines []*Line) error {
	payment, err := CalculatePaymentSummary(lines, o.payment.Discount())
	if err != nil {
		return err
	}
	o.lines = lines
	o.payment = payment
	o.updatedAt = now()
	return nil
}

func (o *Order) appendInternalNote(note string, at time.Time) {
	if o.internalNotes == "" {
		o.internalNotes = note
	} else {
		o.internalNotes += "\n" + note
	}
	o.updatedAt = at
}

func (o *Order) ensureModifiable() error {
	if !o.CanBeModified() {
		return errs.NewConflictError(
			fmt.Sprintf("order %s in status %s can no longer be modified", o.number, o.status),
		)
	}
	return nil
}

func (o *Order) lineIndex(id kernel.UUID) int {
	for i, l := range o.lines {
		if l.ID().IsEqual(id) {
			return i
		}
	}
	return -1
}

func (o *Order) record(e Event) {
	o.events = append(o.events, e)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if err := requireText("order_number", number); err != nil {
		return err
	}
	o.number = number
	return nil
}

func (o *Order) setCustomerID(customerID int64) error {
	if customerID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"customer_id",
			fmt.Errorf("%d is not greater than 0", customerID),
		)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setDelivery(a DeliveryAddress) error {
	if err := a.Validate(); err != nil {
		return err
	}
	o.delivery = a
	return nil
}

func (o *Order) setBilling(a BillingAddress) error {
	if err := a.Validate(); err != nil {
		return err
	}
	o.billing = a
	return nil
}

func (o *Order) setLines(lines []*Line) error {
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	if err := validateLineSet(lines); err != nil {
		return err
	}
	o.lines = append([]*Line(nil), lines...)
	return nil
}

// validateLineSet checks the line count and that product ids are distinct.
func validateLineSet(lines []*Line) error {
	if len(lines) < MinLines || len(lines) > MaxLines {
		return errs.NewValidationError("order lines are invalid",
			errs.NewValueIsOutOfRangeError("lines", len(lines), MinLines, MaxLines))
	}
	seen := make(map[int64]struct{}, len(lines))
	for _, l := range lines {
		if _, dup := seen[l.ProductID()]; dup {
			return errs.NewValidationError("order lines are invalid",
				errs.NewValueIsInvalidErrorWithCause(
					"product_id",
					fmt.Errorf("product %d appears more than once", l.ProductID()),
				))
		}
		seen[l.ProductID()] = struct{}{}
	}
	return nil
}

// validationOf wraps the non-nil field errors into one validation error.
func validationOf(message string, fields ...error) error {
	for _, f := range fields {
		if f != nil {
			return errs.NewValidationError(message, fields...)
		}
	}
	return nil
}
