package queries

import (
	"context"
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// MaxPendingOrdersPerCustomer is the advisory cap checked by
// CanCreateOrderForCustomerQuery. Order creation does not enforce it.
const MaxPendingOrdersPerCustomer = 5

var ErrCanCreateOrderForCustomerQueryIsNotConstructed = errors.New(
	"CanCreateOrderForCustomerQuery must be created via NewCanCreateOrderForCustomerQuery constructor",
)

// CanCreateOrderForCustomerQuery asks whether a customer is below the pending
// order cap.
type CanCreateOrderForCustomerQuery struct {
	customerID int64

	guard guard.ConstructorGuard
}

func NewCanCreateOrderForCustomerQuery(customerID int64) (CanCreateOrderForCustomerQuery, error) {
	if customerID <= 0 {
		return CanCreateOrderForCustomerQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"customer_id",
			fmt.Errorf("%d is not greater than 0", customerID),
		)
	}
	return CanCreateOrderForCustomerQuery{customerID: customerID, guard: guard.NewConstructorGuard()}, nil
}

func (q CanCreateOrderForCustomerQuery) Validate() error {
	return q.guard.Validate(ErrCanCreateOrderForCustomerQueryIsNotConstructed)
}

func (q CanCreateOrderForCustomerQuery) CustomerID() int64 {
	return q.customerID
}

type CanCreateOrderResult struct {
	CustomerID    int64 `json:"customer_id"`
	Allowed       bool  `json:"allowed"`
	PendingOrders int64 `json:"pending_orders"`
	Limit         int   `json:"limit"`
}

type CanCreateOrderForCustomerQueryHandler struct {
	reader OrderReader
}

func NewCanCreateOrderForCustomerQueryHandler(reader OrderReader) CanCreateOrderForCustomerQueryHandler {
	return CanCreateOrderForCustomerQueryHandler{reader: reader}
}

func (h CanCreateOrderForCustomerQueryHandler) Handle(
	ctx context.Context,
	query CanCreateOrderForCustomerQuery,
) (CanCreateOrderResult, error) {
	if err := query.Validate(); err != nil {
		return CanCreateOrderResult{}, err
	}

	pending, err := h.reader.CountByCustomerAndStatus(ctx, query.CustomerID(), order.Pending)
	if err != nil {
		return CanCreateOrderResult{}, err
	}
	return CanCreateOrderResult{
		CustomerID:    query.CustomerID(),
		Allowed:       pending < MaxPendingOrdersPerCustomer,
		PendingOrders: pending,
		Limit:         MaxPendingOrdersPerCustomer,
	}, nil
}
