package queries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrListStalePendingOrdersQueryIsNotConstructed = errors.New(
	"ListStalePendingOrdersQuery must be created via NewListStalePendingOrdersQuery constructor",
)

// ListStalePendingOrdersQuery lists Pending orders older than a duration,
// oldest first. It shows what CancelStalePendingOrders would cancel.
type ListStalePendingOrdersQuery struct {
	olderThan time.Duration

	guard guard.ConstructorGuard
}

func NewListStalePendingOrdersQuery(olderThan time.Duration) (ListStalePendingOrdersQuery, error) {
	if olderThan <= 0 {
		return ListStalePendingOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"older_than",
			fmt.Errorf("%s is not positive", olderThan),
		)
	}
	return ListStalePendingOrdersQuery{olderThan: olderThan, guard: guard.NewConstructorGuard()}, nil
}

func (q ListStalePendingOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListStalePendingOrdersQueryIsNotConstructed)
}

func (q ListStalePendingOrdersQuery) OlderThan() time.Duration {
	return q.olderThan
}

type ListStalePendingOrdersQueryHandler struct {
	reader OrderReader
	clock  func() time.Time
}

func NewListStalePendingOrdersQueryHandler(reader OrderReader) ListStalePendingOrdersQueryHandler {
	return ListStalePendingOrdersQueryHandler{reader: reader, clock: time.Now}
}

func (h ListStalePendingOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListStalePendingOrdersQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.reader.ListPendingOlderThan(ctx, h.clock().Add(-query.OlderThan()))
	if err != nil {
		return nil, err
	}
	return newOrderSummaries(orders), nil
}
