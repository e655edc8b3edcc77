package commands

import (
	"context"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
)

// ApplyDiscountCommandHandler applies fixed, percentage and loyalty
// discounts through services.DiscountService and returns the discount amount
// now on the order.
type ApplyDiscountCommandHandler struct {
	uowFactory OrderUoWFactory
	discounts  services.DiscountService
}

func NewApplyDiscountCommandHandler(uowFactory OrderUoWFactory) ApplyDiscountCommandHandler {
	return ApplyDiscountCommandHandler{
		uowFactory: uowFactory,
		discounts:  services.NewDiscountService(),
	}
}

func (h *ApplyDiscountCommandHandler) Handle(ctx context.Context, cmd ApplyDiscountCommand) (kernel.Money, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.Money{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.Money{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return kernel.Money{}, err
	}

	if err = h.apply(ctx, repo, o, cmd); err != nil {
		return kernel.Money{}, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return kernel.Money{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return kernel.Money{}, err
	}
	return o.Payment().Discount(), nil
}

func (h *ApplyDiscountCommandHandler) apply(
	ctx context.Context,
	repo ports.OrderRepository,
	o *order.Order,
	cmd ApplyDiscountCommand,
) error {
	switch cmd.Kind() {
	case DiscountFixed:
		amount, err := kernel.NewMoney(cmd.Value())
		if err != nil {
			return err
		}
		return h.discounts.ApplyFixedDiscount(o, amount, cmd.Reason())
	case DiscountPercentage:
		_, err := h.discounts.ApplyPercentageDiscount(o, cmd.Value(), cmd.Reason())
		return err
	case DiscountLoyalty:
		count, err := repo.CountByCustomer(ctx, o.CustomerID())
		if err != nil {
			return err
		}
		// the order being discounted is not a previous order
		_, err = h.discounts.ApplyLoyaltyDiscount(o, int(max(count-1, 0)))
		return err
	default:
		return fmt.Errorf("unsupported discount kind %d", cmd.Kind())
	}
}
