package queries

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// HistoryFilter narrows the returned entries. Zero values disable a filter.
type HistoryFilter struct {
	Actor string
	From  time.Time
	To    time.Time
	// RecentWindow, when set, fills OrderHistoryView.ModifiedRecently.
	RecentWindow time.Duration
}

// GetOrderHistoryQuery returns the status history of one order.
type GetOrderHistoryQuery struct {
	orderID kernel.UUID
	filter  HistoryFilter

	guard guard.ConstructorGuard
}

func NewGetOrderHistoryQuery(orderID kernel.UUID, filter HistoryFilter) (GetOrderHistoryQuery, error) {
	var rangeErr, windowErr error
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		rangeErr = errs.NewValueIsInvalidErrorWithCause("to", fmt.Errorf("%s is before %s",
			filter.To.Format(time.RFC3339), filter.From.Format(time.RFC3339)))
	}
	if filter.RecentWindow < 0 {
		windowErr = errs.NewValueIsInvalidErrorWithCause("window", fmt.Errorf("%s is negative", filter.RecentWindow))
	}
	if err := errors.Join(orderID.Validate(), rangeErr, windowErr); err != nil {
		return GetOrderHistoryQuery{}, err
	}

	filter.Actor = strings.TrimSpace(filter.Actor)
	return GetOrderHistoryQuery{
		orderID: orderID,
		filter:  filter,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

func (q GetOrderHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderHistoryQuery) Filter() HistoryFilter {
	return q.filter
}

// OrderHistoryView lists entries oldest first. Last is the most recent
// matching entry, nil when nothing matched.
type OrderHistoryView struct {
	OrderID          kernel.UUID        `json:"order_id"`
	OrderNumber      string             `json:"order_number"`
	Entries          []HistoryEntryView `json:"entries"`
	Count            int                `json:"count"`
	Last             *HistoryEntryView  `json:"last,omitempty"`
	ModifiedRecently bool               `json:"modified_recently"`
}

var endOfTime = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

type GetOrderHistoryQueryHandler struct {
	reader OrderReader
	clock  func() time.Time
}

func NewGetOrderHistoryQueryHandler(reader OrderReader) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{reader: reader, clock: time.Now}
}

func (h GetOrderHistoryQueryHandler) Handle(ctx context.Context, query GetOrderHistoryQuery) (OrderHistoryView, error) {
	if err := query.Validate(); err != nil {
		return OrderHistoryView{}, err
	}

	o, err := h.reader.Get(ctx, query.OrderID())
	if err != nil {
		return OrderHistoryView{}, err
	}

	history := applyHistoryFilter(o.History(), query.Filter())
	view := OrderHistoryView{
		OrderID:     o.ID(),
		OrderNumber: o.Number(),
		Entries:     newHistoryViews(history),
		Count:       history.Count(),
	}
	if last, ok := history.Last(); ok {
		lastView := newHistoryEntryView(last)
		view.Last = &lastView
	}
	if window := query.Filter().RecentWindow; window > 0 {
		view.ModifiedRecently = o.History().ModifiedWithin(window, h.clock())
	}
	return view, nil
}

func applyHistoryFilter(h order.History, f HistoryFilter) order.History {
	if f.Actor != "" {
		h = h.ByActor(f.Actor)
	}
	if f.From.IsZero() && f.To.IsZero() {
		return h
	}
	to := f.To
	if to.IsZero() {
		to = endOfTime
	}
	return h.Between(f.From, to)
}
