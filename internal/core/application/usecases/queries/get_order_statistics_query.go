package queries

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var ErrGetOrderStatisticsQueryIsNotConstructed = errors.New(
	"GetOrderStatisticsQuery must be created via NewGetOrderStatisticsQuery constructor",
)

// GetOrderStatisticsQuery counts orders per status.
type GetOrderStatisticsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetOrderStatisticsQuery() GetOrderStatisticsQuery {
	return GetOrderStatisticsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetOrderStatisticsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatisticsQueryIsNotConstructed)
}

// OrderStatistics has one entry per status, zero counts included, keyed by
// status name. Total is their sum.
type OrderStatistics struct {
	ByStatus map[string]int64 `json:"by_status"`
	Total    int64            `json:"total"`
}

type GetOrderStatisticsQueryHandler struct {
	reader OrderReader
}

func NewGetOrderStatisticsQueryHandler(reader OrderReader) GetOrderStatisticsQueryHandler {
	return GetOrderStatisticsQueryHandler{reader: reader}
}

func (h GetOrderStatisticsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatisticsQuery,
) (OrderStatistics, error) {
	if err := query.Validate(); err != nil {
		return OrderStatistics{}, err
	}

	statuses := order.AllStatuses()
	stats := OrderStatistics{ByStatus: make(map[string]int64, len(statuses))}
	for _, status := range statuses {
		n, err := h.reader.CountByStatus(ctx, status)
		if err != nil {
			return OrderStatistics{}, err
		}
		stats.ByStatus[status.String()] = n
		stats.Total += n
	}
	return stats, nil
}
