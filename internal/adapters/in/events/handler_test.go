package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"ordering/internal/adapters/in/events"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStatusChanger struct{ mock.Mock }

func (m *MockStatusChanger) Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockCanceller struct{ mock.Mock }

func (m *MockCanceller) Handle(ctx context.Context, cmd commands.CancelOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockProcessedEvents struct{ mock.Mock }

func (m *MockProcessedEvents) MarkProcessed(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, id, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockProcessedEvents) Forget(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type handlerMocks struct {
	changer   *MockStatusChanger
	canceller *MockCanceller
	processed *MockProcessedEvents
}

func newHandler() (*events.Handler, handlerMocks) {
	m := handlerMocks{
		changer:   new(MockStatusChanger),
		canceller: new(MockCanceller),
		processed: new(MockProcessedEvents),
	}
	h := events.NewHandler(m.changer, m.canceller, m.processed, time.Hour, slog.New(slog.DiscardHandler))
	return h, m
}

func message(t *testing.T, id, name string, payload any) events.Message {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return events.Message{ID: id, Name: name, Payload: raw}
}

func TestHandler_PaymentSucceeded_MarksPaid(t *testing.T) {
	ctx := t.Context()
	h, m := newHandler()
	orderID := kernel.NewUUID()

	m.processed.On("MarkProcessed", ctx, "evt-1", time.Hour).Return(true, nil).Once()
	m.changer.On("Handle", ctx, mock.MatchedBy(func(cmd commands.ChangeOrderStatusCommand) bool {
		return cmd.OrderID().IsEqual(orderID) &&
			cmd.NewStatus() == order.Paid &&
			cmd.Reason() == "payment confirmed - transaction: tx-42" &&
			cmd.Actor() == events.SystemActor
	})).Return(nil).Once()

	err := h.Handle(ctx, message(t, "evt-1", events.PaymentSucceededEvent, events.PaymentSucceeded{
		OrderID:       orderID,
		TransactionID: "tx-42",
	}))

	require.NoError(t, err)
	m.processed.AssertExpectations(t)
	m.changer.AssertExpectations(t)
}

func TestHandler_PaymentFailed_CancelsWithReason(t *testing.T) {
	ctx := t.Context()
	h, m := newHandler()
	orderID := kernel.NewUUID()

	m.processed.On("MarkProcessed", ctx, "evt-2", time.Hour).Return(true, nil).Once()
	m.canceller.On("Handle", ctx, mock.MatchedBy(func(cmd commands.CancelOrderCommand) bool {
		return cmd.OrderID().IsEqual(orderID) &&
			cmd.Reason() == "payment failed - code: CARD_DECLINED, reason: insufficient funds" &&
			cmd.Actor() == "SYSTEM"
	})).Return(nil).Once()

	err := h.Handle(ctx, message(t, "evt-2", events.PaymentFailedEvent, events.PaymentFailed{
		OrderID:      orderID,
		ErrorCode:    "CARD_DECLINED",
		ErrorMessage: "insufficient funds",
	}))

	require.NoError(t, err)
	m.canceller.AssertExpectations(t)
	m.changer.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestHandler_ShipmentEvents_MoveStatus(t *testing.T) {
	tests := []struct {
		name    string
		event   string
		payload any
		status  order.Status
		reason  string
	}{
		{
			name:    "shipment created",
			event:   events.ShipmentCreatedEvent,
			payload: events.ShipmentCreated{TrackingNumber: "TRK-1"},
			status:  order.Shipped,
			reason:  "shipment created - tracking number: TRK-1",
		},
		{
			name:    "shipment delivered",
			event:   events.ShipmentDeliveredEvent,
			payload: events.ShipmentDelivered{ReceivedBy: "front desk"},
			status:  order.Delivered,
			reason:  "delivery confirmed - received by: front desk",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			h, m := newHandler()
			orderID := kernel.NewUUID()

			raw, err := json.Marshal(tt.payload)
			require.NoError(t, err)
			var withID map[string]any
			require.NoError(t, json.Unmarshal(raw, &withID))
			withID["order_id"] = orderID.String()

			m.processed.On("MarkProcessed", ctx, "evt", time.Hour).Return(true, nil).Once()
			m.changer.On("Handle", ctx, mock.MatchedBy(func(cmd commands.ChangeOrderStatusCommand) bool {
				return cmd.OrderID().IsEqual(orderID) && cmd.NewStatus() == tt.status && cmd.Reason() == tt.reason
			})).Return(nil).Once()

			require.NoError(t, h.Handle(ctx, message(t, "evt", tt.event, withID)))
			m.changer.AssertExpectations(t)
		})
	}
}

func TestHandler_Duplicate_IsSkipped(t *testing.T) {
	ctx := t.Context()
	h, m := newHandler()

	m.processed.On("MarkProcessed", ctx, "evt-1", time.Hour).Return(false, nil).Once()

	err := h.Handle(ctx, message(t, "evt-1", events.PaymentSucceededEvent, events.PaymentSucceeded{
		OrderID: kernel.NewUUID(),
	}))

	require.NoError(t, err)
	m.changer.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestHandler_InfrastructureFailure_ForgetsID(t *testing.T) {
	ctx := t.Context()
	h, m := newHandler()
	dbErr := errors.New("connection reset")

	mock.InOrder(
		m.processed.On("MarkProcessed", ctx, "evt-1", time.Hour).Return(true, nil).Once(),
		m.changer.On("Handle", ctx, mock.Anything).Return(dbErr).Once(),
		m.processed.On("Forget", ctx, "evt-1").Return(nil).Once(),
	)

	err := h.Handle(ctx, message(t, "evt-1", events.ShipmentCreatedEvent, events.ShipmentCreated{
		OrderID: kernel.NewUUID(),
	}))

	require.ErrorIs(t, err, dbErr)
	m.processed.AssertExpectations(t)
}

func TestHandler_BusinessRejection_KeepsID(t *testing.T) {
	ctx := t.Context()
	h, m := newHandler()

	m.processed.On("MarkProcessed", ctx, "evt-1", time.Hour).Return(true, nil).Once()
	m.changer.On("Handle", ctx, mock.Anything).
		Return(errs.NewInvalidTransitionError(order.Pending, order.Paid)).Once()

	err := h.Handle(ctx, message(t, "evt-1", events.PaymentSucceededEvent, events.PaymentSucceeded{
		OrderID: kernel.NewUUID(),
	}))

	require.Error(t, err)
	assert.Equal(t, errs.KindInvalidTransition, errs.KindOf(err))
	m.processed.AssertNotCalled(t, "Forget", mock.Anything, mock.Anything)
}

func TestHandler_MissingOrderID_IsValidationError(t *testing.T) {
	ctx := t.Context()
	h, m := newHandler()

	m.processed.On("MarkProcessed", ctx, "evt-1", time.Hour).Return(true, nil).Once()

	err := h.Handle(ctx, events.Message{ID: "evt-1", Name: events.PaymentSucceededEvent, Payload: []byte(`{}`)})

	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	m.processed.AssertNotCalled(t, "Forget", mock.Anything, mock.Anything)
}

func TestHandler_UnknownEvent(t *testing.T) {
	h, m := newHandler()

	err := h.Handle(t.Context(), events.Message{ID: "evt-1", Name: "CartCheckedOut"})

	require.ErrorIs(t, err, events.ErrUnknownEvent)
	m.processed.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_MissingID(t *testing.T) {
	h, _ := newHandler()

	err := h.Handle(t.Context(), events.Message{Name: events.PaymentFailedEvent, Payload: []byte(`{}`)})

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestHandler_MalformedPayload(t *testing.T) {
	ctx := t.Context()
	h, m := newHandler()
	m.processed.On("MarkProcessed", ctx, "evt-1", time.Hour).Return(true, nil).Once()

	err := h.Handle(ctx, events.Message{ID: "evt-1", Name: events.ShipmentDeliveredEvent, Payload: []byte(`{"order_id":`)})

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	m.processed.AssertNotCalled(t, "Forget", mock.Anything, mock.Anything)
}
