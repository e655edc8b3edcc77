package commands_test

import (
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddOrderLineCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t)
	factory, _, repo := expectUpdate(ctx, o)

	cmd, err := commands.NewAddOrderLineCommand(o.ID(), services.LineInput{
		ProductID: 99, ProductName: "Gadget", SKU: "G-99", Quantity: 2, UnitPrice: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	h := commands.NewAddOrderLineCommandHandler(factory)
	lineID, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NoError(t, lineID.Validate())
	assert.Len(t, o.Lines(), 2)
	assert.True(t, o.Payment().Total().Equal(kernel.MustMoney("120.00")))
	repo.AssertExpectations(t)
}

func TestAddOrderLineCommandHandler_Handle_DuplicateProduct(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t)
	factory, _, _ := expectRejected(ctx, o)

	cmd, _ := commands.NewAddOrderLineCommand(o.ID(), services.LineInput{
		ProductID: 1, ProductName: "Widget", SKU: "W-1", Quantity: 1, UnitPrice: decimal.NewFromInt(25),
	})
	h := commands.NewAddOrderLineCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	assert.Len(t, o.Lines(), 1)
}

func TestNewAddOrderLineCommand_InvalidLine(t *testing.T) {
	_, err := commands.NewAddOrderLineCommand(kernel.NewUUID(), services.LineInput{
		ProductID: 0, ProductName: "", SKU: "X", Quantity: 101, UnitPrice: decimal.NewFromInt(1),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestUpdateOrderLineQuantityCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t)
	lineID := o.Lines()[0].ID()
	factory, _, repo := expectUpdate(ctx, o)

	cmd, err := commands.NewUpdateOrderLineQuantityCommand(o.ID(), lineID, 2)
	require.NoError(t, err)

	h := commands.NewUpdateOrderLineQuantityCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	assert.True(t, o.Payment().Total().Equal(kernel.MustMoney("50.00")))
	repo.AssertExpectations(t)
}

func TestNewUpdateOrderLineQuantityCommand_OutOfRange(t *testing.T) {
	_, err := commands.NewUpdateOrderLineQuantityCommand(kernel.NewUUID(), kernel.NewUUID(), 0)
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestRemoveOrderLineCommandHandler_Handle_LastLine(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t)
	factory, _, _ := expectRejected(ctx, o)

	cmd, err := commands.NewRemoveOrderLineCommand(o.ID(), o.Lines()[0].ID())
	require.NoError(t, err)

	h := commands.NewRemoveOrderLineCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
}

func TestRemoveOrderLineCommandHandler_Handle_UnknownLine(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t)
	factory, _, _ := expectRejected(ctx, o)

	cmd, _ := commands.NewRemoveOrderLineCommand(o.ID(), kernel.NewUUID())
	h := commands.NewRemoveOrderLineCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}
