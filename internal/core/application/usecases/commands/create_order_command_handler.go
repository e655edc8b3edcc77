package commands

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// maxOrderNumberAttempts bounds the retry loop of order number generation.
const maxOrderNumberAttempts = 10

// CreateOrderCommandHandler places new orders in Pending.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	number, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      func() time.Time
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      time.Now,
	}
}

// Handle builds the order, assigns it a number no other order uses and
// stores it. It returns the assigned order number.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	lines, err := buildLines(cmd.Lines())
	if err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	number, err := h.uniqueOrderNumber(ctx, orderRepo)
	if err != nil {
		return "", err
	}

	o, err := order.NewOrder(
		cmd.OrderID(),
		number,
		cmd.CustomerID(),
		cmd.DeliveryAddress(),
		cmd.BillingAddress(),
		lines,
		cmd.CustomerNotes(),
	)
	if err != nil {
		return "", err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return number, nil
}

func (h *CreateOrderCommandHandler) uniqueOrderNumber(ctx context.Context, repo ports.OrderRepository) (string, error) {
	for range maxOrderNumberAttempts {
		candidate := order.GenerateOrderNumber(h.clock())
		exists, err := repo.ExistsByOrderNumber(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", errs.NewConflictError("could not generate a unique order number")
}

func buildLines(inputs []services.LineInput) ([]*order.Line, error) {
	lines := make([]*order.Line, 0, len(inputs))
	for _, in := range inputs {
		price, err := kernel.NewMoney(in.UnitPrice)
		if err != nil {
			return nil, err
		}
		line, err := order.NewLine(in.ProductID, in.ProductName, in.SKU, in.Quantity, price)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
