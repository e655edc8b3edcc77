package queries

import (
	"context"

	"ordering/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SearchOrdersQueryHandler reads order summaries straight from the orders
// table without loading lines or history.
//
// Example:
//
//	handler := NewSearchOrdersQueryHandler(db)
//	result, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("order search failed: %w", err)
//	}
type SearchOrdersQueryHandler struct {
	db *gorm.DB
}

func NewSearchOrdersQueryHandler(db *gorm.DB) SearchOrdersQueryHandler {
	return SearchOrdersQueryHandler{db: db}
}

func (h SearchOrdersQueryHandler) Handle(ctx context.Context, query SearchOrdersQuery) (SearchOrdersResult, error) {
	if err := query.Validate(); err != nil {
		return SearchOrdersResult{}, err
	}

	where, args := query.where()
	page := query.Page()
	result := SearchOrdersResult{
		Items:  make([]OrderSummary, 0),
		Offset: page.Offset,
		Limit:  page.Limit,
	}

	if err := h.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM orders`+where, args...).Scan(&result.Total).Error; err != nil {
		return SearchOrdersResult{}, err
	}
	if result.Total == 0 {
		return result, nil
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			customer_id,
			status,
			payment_total,
			payment_net,
			created_at
		FROM orders`+where+`
		ORDER BY created_at DESC, number DESC
		LIMIT ? OFFSET ?
	`, append(args, page.Limit, page.Offset)...).Rows()
	if err != nil {
		return SearchOrdersResult{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			summary    OrderSummary
			id         uuid.UUID
			total, net decimal.Decimal
		)

		err = rows.Scan(
			&id,
			&summary.Number,
			&summary.CustomerID,
			&summary.Status,
			&total,
			&net,
			&summary.CreatedAt,
		)
		if err != nil {
			return SearchOrdersResult{}, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return SearchOrdersResult{}, idErr
		}
		summary.ID = orderID
		summary.Total = total.StringFixed(2)
		summary.Net = net.StringFixed(2)
		summary.CreatedAt = summary.CreatedAt.UTC()
		result.Items = append(result.Items, summary)
	}

	if err = rows.Err(); err != nil {
		return SearchOrdersResult{}, err
	}

	return result, nil
}
