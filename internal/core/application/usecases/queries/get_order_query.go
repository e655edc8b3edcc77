package queries

import (
	"context"
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery or NewGetOrderByNumberQuery constructor",
)

// GetOrderQuery loads one order by id or by order number.
//
// Example:
//
//	query, err := NewGetOrderByNumberQuery("ORD-1700000000000-3F2A9C1B")
//	view, err := NewGetOrderQueryHandler(reader).Handle(ctx, query)
type GetOrderQuery struct {
	id     kernel.UUID
	number string

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(id kernel.UUID) (GetOrderQuery, error) {
	if err := id.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func NewGetOrderByNumberQuery(number string) (GetOrderQuery, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("order_number")
	}
	return GetOrderQuery{number: number, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// ByNumber reports whether the query looks the order up by its number.
func (q GetOrderQuery) ByNumber() bool {
	return q.number != ""
}

func (q GetOrderQuery) ID() kernel.UUID {
	return q.id
}

func (q GetOrderQuery) Number() string {
	return q.number
}

type GetOrderQueryHandler struct {
	reader OrderReader
}

func NewGetOrderQueryHandler(reader OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{reader: reader}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	o, err := h.load(ctx, query)
	if err != nil {
		return OrderView{}, err
	}
	return newOrderView(o), nil
}

func (h GetOrderQueryHandler) load(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if query.ByNumber() {
		return h.reader.GetByOrderNumber(ctx, query.Number())
	}
	return h.reader.Get(ctx, query.ID())
}
