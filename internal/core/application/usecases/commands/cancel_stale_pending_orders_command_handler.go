package commands

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/order"
)

// CancelStalePendingOrdersCommandHandler cancels old Pending orders one by
// one. Each order gets its own unit of work, so a failure only skips that
// order; it is logged and the batch continues.
type CancelStalePendingOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
	clock      func() time.Time
}

func NewCancelStalePendingOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	logger *slog.Logger,
) CancelStalePendingOrdersCommandHandler {
	return CancelStalePendingOrdersCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "cancel_stale_pending_orders"),
		clock:      time.Now,
	}
}

// Handle returns how many orders were cancelled. Only a failure to list the
// candidates is returned as an error.
func (h *CancelStalePendingOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd CancelStalePendingOrdersCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	cutoff := h.clock().Add(-cmd.OlderThan())
	stale, err := h.listStale(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, candidate := range stale {
		if ctx.Err() != nil {
			break
		}
		err = updateOrder(ctx, h.uowFactory, candidate.ID(), func(o *order.Order) error {
			return o.Cancel(StaleOrderCancellationReason, cmd.Actor())
		})
		if err != nil {
			h.logger.WarnContext(ctx, "skipping stale order",
				"order_id", candidate.ID().String(),
				"order_number", candidate.Number(),
				"error", err,
			)
			continue
		}
		cancelled++
	}

	h.logger.InfoContext(ctx, "stale pending orders processed",
		"candidates", len(stale),
		"cancelled", cancelled,
		"cutoff", cutoff,
	)
	return cancelled, nil
}

func (h *CancelStalePendingOrdersCommandHandler) listStale(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().ListPendingOlderThan(ctx, cutoff)
}
