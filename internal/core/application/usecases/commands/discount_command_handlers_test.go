package commands_test

import (
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApplyDiscountCommandHandler_Handle_Fixed(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t)
	factory, uow, repo := expectUpdate(ctx, o)

	cmd, err := commands.NewApplyFixedDiscountCommand(o.ID(), decimal.RequireFromString("12.50"), "goodwill")
	require.NoError(t, err)

	h := commands.NewApplyDiscountCommandHandler(factory)
	applied, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, applied.Equal(kernel.MustMoney("12.50")))
	assert.True(t, o.Payment().HasDiscount())
	assert.Contains(t, o.InternalNotes(), "goodwill")
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestApplyDiscountCommandHandler_Handle_FixedAboveTotal(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t)
	factory, uow, repo := expectRejected(ctx, o)

	cmd, _ := commands.NewApplyFixedDiscountCommand(o.ID(), decimal.RequireFromString("100.01"), "too generous")
	h := commands.NewApplyDiscountCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	assert.True(t, o.Payment().Discount().IsZero())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestApplyDiscountCommandHandler_Handle_Percentage(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t)
	factory, _, _ := expectUpdate(ctx, o)

	cmd, err := commands.NewApplyPercentageDiscountCommand(o.ID(), decimal.NewFromInt(15), "spring sale")
	require.NoError(t, err)

	h := commands.NewApplyDiscountCommandHandler(factory)
	applied, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, applied.Equal(kernel.MustMoney("15.00")))
}

func TestApplyDiscountCommandHandler_Handle_PercentageOutOfRange(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t)
	factory, _, _ := expectRejected(ctx, o)

	cmd, _ := commands.NewApplyPercentageDiscountCommand(o.ID(), decimal.NewFromInt(101), "typo")
	h := commands.NewApplyDiscountCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestApplyDiscountCommandHandler_Handle_Loyalty(t *testing.T) {
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
		// 21 orders including this one: 20 previous orders earn 10%
		repo.On("CountByCustomer", ctx, o.CustomerID()).Return(int64(21), nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	cmd, err := commands.NewApplyLoyaltyDiscountCommand(o.ID())
	require.NoError(t, err)

	h := commands.NewApplyDiscountCommandHandler(factory)
	applied, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, applied.Equal(kernel.MustMoney("10.00")))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestNewApplyFixedDiscountCommand_NegativeAmount(t *testing.T) {
	_, err := commands.NewApplyFixedDiscountCommand(kernel.NewUUID(), decimal.NewFromInt(-1), "oops")
	require.Error(t, err)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
}

func TestNewApplyFixedDiscountCommand_SubCentAmount(t *testing.T) {
	_, err := commands.NewApplyFixedDiscountCommand(kernel.NewUUID(), decimal.RequireFromString("0.00005"), "rounding")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestRemoveDiscountCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t)
	require.NoError(t, o.ApplyDiscount(kernel.MustMoney("5"), "promo"))
	factory, _, repo := expectUpdate(ctx, o)

	cmd, err := commands.NewRemoveDiscountCommand(o.ID(), "promo expired")
	require.NoError(t, err)

	h := commands.NewRemoveDiscountCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	assert.False(t, o.Payment().HasDiscount())
	repo.AssertExpectations(t)
}

func TestRemoveDiscountCommandHandler_Handle_NoDiscount(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t)
	factory, _, _ := expectRejected(ctx, o)

	cmd, _ := commands.NewRemoveDiscountCommand(o.ID(), "nothing to remove")
	h := commands.NewRemoveDiscountCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
}
