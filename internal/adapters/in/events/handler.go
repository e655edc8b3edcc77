package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// DefaultDedupeTTL is how long a processed message id is remembered.
const DefaultDedupeTTL = 7 * 24 * time.Hour

var ErrUnknownEvent = errors.New("unknown inbound event")

type statusChanger interface {
	Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) error
}

type orderCanceller interface {
	Handle(ctx context.Context, cmd commands.CancelOrderCommand) error
}

// Handler applies inbound messages. A message whose id was already processed
// is acknowledged without effect. When applying fails for a reason that a
// retry could fix, the id is forgotten so a redelivery runs again.
type Handler struct {
	changeStatus statusChanger
	cancel       orderCanceller
	processed    ports.ProcessedEvents
	ttl          time.Duration
	logger       *slog.Logger
}

func NewHandler(
	changeStatus statusChanger,
	cancel orderCanceller,
	processed ports.ProcessedEvents,
	ttl time.Duration,
	logger *slog.Logger,
) *Handler {
	if ttl <= 0 {
		ttl = DefaultDedupeTTL
	}
	return &Handler{
		changeStatus: changeStatus,
		cancel:       cancel,
		processed:    processed,
		ttl:          ttl,
		logger:       logger.With("component", "inbound_events"),
	}
}

func (h *Handler) Handle(ctx context.Context, msg Message) error {
	apply, ok := h.route(msg.Name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, msg.Name)
	}
	if msg.ID == "" {
		return errs.NewValueIsRequiredError("id")
	}

	first, err := h.processed.MarkProcessed(ctx, msg.ID, h.ttl)
	if err != nil {
		return err
	}
	if !first {
		h.logger.InfoContext(ctx, "Duplicate event skipped", "event_id", msg.ID, "event", msg.Name)
		return nil
	}

	if err := apply(ctx, msg.Payload); err != nil {
		if retryable(err) {
			if forgetErr := h.processed.Forget(ctx, msg.ID); forgetErr != nil {
				err = errors.Join(err, forgetErr)
			}
		}
		h.logger.ErrorContext(ctx, "Inbound event failed", "event_id", msg.ID, "event", msg.Name, "error", err)
		return err
	}

	h.logger.InfoContext(ctx, "Inbound event applied", "event_id", msg.ID, "event", msg.Name)
	return nil
}

func (h *Handler) route(name string) (func(context.Context, json.RawMessage) error, bool) {
	switch name {
	case PaymentSucceededEvent:
		return h.paymentSucceeded, true
	case PaymentFailedEvent:
		return h.paymentFailed, true
	case ShipmentCreatedEvent:
		return h.shipmentCreated, true
	case ShipmentDeliveredEvent:
		return h.shipmentDelivered, true
	default:
		return nil, false
	}
}

func (h *Handler) paymentSucceeded(ctx context.Context, raw json.RawMessage) error {
	var e PaymentSucceeded
	if err := decode(raw, &e); err != nil {
		return err
	}
	reason := fmt.Sprintf("payment confirmed - transaction: %s", e.TransactionID)
	return h.moveTo(ctx, e.OrderID, order.Paid, reason)
}

func (h *Handler) paymentFailed(ctx context.Context, raw json.RawMessage) error {
	var e PaymentFailed
	if err := decode(raw, &e); err != nil {
		return err
	}
	reason := fmt.Sprintf("payment failed - code: %s, reason: %s", e.ErrorCode, e.ErrorMessage)
	cmd, err := commands.NewCancelOrderCommand(e.OrderID, reason, SystemActor)
	if err != nil {
		return err
	}
	return h.cancel.Handle(ctx, cmd)
}

func (h *Handler) shipmentCreated(ctx context.Context, raw json.RawMessage) error {
	var e ShipmentCreated
	if err := decode(raw, &e); err != nil {
		return err
	}
	reason := fmt.Sprintf("shipment created - tracking number: %s", e.TrackingNumber)
	return h.moveTo(ctx, e.OrderID, order.Shipped, reason)
}

func (h *Handler) shipmentDelivered(ctx context.Context, raw json.RawMessage) error {
	var e ShipmentDelivered
	if err := decode(raw, &e); err != nil {
		return err
	}
	reason := fmt.Sprintf("delivery confirmed - received by: %s", e.ReceivedBy)
	return h.moveTo(ctx, e.OrderID, order.Delivered, reason)
}

func (h *Handler) moveTo(ctx context.Context, orderID kernel.UUID, status order.Status, reason string) error {
	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status, reason, SystemActor)
	if err != nil {
		return err
	}
	return h.changeStatus.Handle(ctx, cmd)
}

func decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return errs.NewValueIsRequiredError("payload")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("payload", err)
	}
	return nil
}

// retryable reports whether err may succeed on redelivery. Business rejections
// and malformed payloads never will.
func retryable(err error) bool {
	return errs.KindOf(err) == errs.KindUnknown
}
