package commands_test

import (
	"errors"
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfirmOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t)
	factory, uow, repo := expectUpdate(ctx, o)

	cmd, err := commands.NewConfirmOrderCommand(o.ID(), "clerk")
	require.NoError(t, err)

	h := commands.NewConfirmOrderCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.Confirmed, o.Status())
	last, ok := o.History().Last()
	require.True(t, ok)
	assert.Equal(t, order.Pending, last.PreviousStatus())
	assert.Equal(t, "clerk", last.ModifiedBy())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestConfirmOrderCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, id).Return(nil, errs.NewNotFoundError("order", id)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	cmd, _ := commands.NewConfirmOrderCommand(id, "clerk")
	h := commands.NewConfirmOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestNewConfirmOrderCommand_BlankActor(t *testing.T) {
	_, err := commands.NewConfirmOrderCommand(kernel.NewUUID(), "  ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestChangeOrderStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t)
	factory, uow, repo := expectRejected(ctx, o)

	cmd, err := commands.NewMarkShippedCommand(o.ID(), "warehouse")
	require.NoError(t, err)

	h := commands.NewChangeOrderStatusCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Equal(t, errs.KindInvalidTransition, errs.KindOf(err))
	assert.Equal(t, order.Pending, o.Status())
	assert.Equal(t, 0, o.History().Count())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t)
	require.NoError(t, o.Confirm("clerk"))
	factory, _, repo := expectUpdate(ctx, o)

	cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), order.Paid, commands.ReasonPaymentReceived, "payments")
	require.NoError(t, err)

	h := commands.NewChangeOrderStatusCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, order.Paid, o.Status())
	assert.True(t, o.IsPaid())
	repo.AssertExpectations(t)
}

func TestMarkCommands_FixedReasons(t *testing.T) {
	id := kernel.NewUUID()

	ready, err := commands.NewMarkReadyForShipmentCommand(id, "warehouse")
	require.NoError(t, err)
	assert.Equal(t, order.ReadyForShipment, ready.NewStatus())
	assert.Equal(t, commands.ReasonReadyForShipment, ready.Reason())

	shipped, err := commands.NewMarkShippedCommand(id, "warehouse")
	require.NoError(t, err)
	assert.Equal(t, order.Shipped, shipped.NewStatus())
	assert.Equal(t, commands.ReasonShipped, shipped.Reason())

	delivered, err := commands.NewMarkDeliveredCommand(id, "carrier")
	require.NoError(t, err)
	assert.Equal(t, order.Delivered, delivered.NewStatus())
	assert.Equal(t, commands.ReasonDelivered, delivered.Reason())
}

func TestNewChangeOrderStatusCommand_UnknownStatus(t *testing.T) {
	_, err := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), order.Unknown, "why", "who")
	require.Error(t, err)
}

func TestCancelOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t)
	factory, _, repo := expectUpdate(ctx, o)

	cmd, err := commands.NewCancelOrderCommand(o.ID(), "changed my mind", "customer")
	require.NoError(t, err)

	h := commands.NewCancelOrderCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, order.Cancelled, o.Status())
	repo.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_PaidOrderConflict(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t)
	require.NoError(t, o.Confirm("clerk"))
	require.NoError(t, o.UpdateStatus(order.Paid, "payment received", "payments"))
	factory, uow, repo := expectRejected(ctx, o)

	cmd, _ := commands.NewCancelOrderCommand(o.ID(), "too late", "customer")
	h := commands.NewCancelOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	assert.Equal(t, order.Paid, o.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_UpdateError(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(errors.New("update error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	cmd, _ := commands.NewCancelOrderCommand(o.ID(), "changed my mind", "customer")
	h := commands.NewCancelOrderCommandHandler(factory)
	require.Error(t, h.Handle(ctx, cmd))
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
