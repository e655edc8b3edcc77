package queries

import (
	"context"
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists orders of a customer, in a status, or both, newest
// first. At least one filter is required.
type ListOrdersQuery struct {
	customerID int64
	status     order.Status
	page       ports.Page

	guard guard.ConstructorGuard
}

// NewListOrdersQuery builds the query. customerID 0 and status Unknown mean
// "any".
func NewListOrdersQuery(customerID int64, status order.Status, page ports.Page) (ListOrdersQuery, error) {
	var customerErr, statusErr error
	if customerID < 0 {
		customerErr = errs.NewValueIsInvalidErrorWithCause("customer_id", fmt.Errorf("%d is negative", customerID))
	}
	if status != order.Unknown {
		statusErr = status.Validate()
	}
	if customerID == 0 && status == order.Unknown {
		customerErr = errs.NewValueIsRequiredErrorWithCause(
			"customer_id",
			errors.New("either customer_id or status must be given"),
		)
	}
	if err := errors.Join(customerErr, statusErr); err != nil {
		return ListOrdersQuery{}, errs.NewValidationError("list filter is invalid", customerErr, statusErr)
	}

	return ListOrdersQuery{
		customerID: customerID,
		status:     status,
		page:       page.Normalize(),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) CustomerID() int64 {
	return q.customerID
}

func (q ListOrdersQuery) Status() order.Status {
	return q.status
}

func (q ListOrdersQuery) Page() ports.Page {
	return q.page
}

type ListOrdersQueryHandler struct {
	reader OrderReader
}

func NewListOrdersQueryHandler(reader OrderReader) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{reader: reader}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		orders []*order.Order
		err    error
	)
	switch {
	case query.CustomerID() > 0 && query.Status() != order.Unknown:
		orders, err = h.reader.ListByCustomerAndStatus(ctx, query.CustomerID(), query.Status(), query.Page())
	case query.CustomerID() > 0:
		orders, err = h.reader.ListByCustomer(ctx, query.CustomerID(), query.Page())
	default:
		orders, err = h.reader.ListByStatus(ctx, query.Status(), query.Page())
	}
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, newOrderView(o))
	}
	return views, nil
}
