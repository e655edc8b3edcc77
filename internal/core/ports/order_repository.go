package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// DefaultPageLimit and MaxPageLimit bound list queries.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Page selects a window of a list query, ordered by creation time descending.
type Page struct {
	Offset int
	Limit  int
}

// Normalize clamps the page into [0, MaxPageLimit], using DefaultPageLimit
// when no limit was given.
func (p Page) Normalize() Page {
	if p.Offset < 0 {
		p.Offset = 0
	}
	switch {
	case p.Limit <= 0:
		p.Limit = DefaultPageLimit
	case p.Limit > MaxPageLimit:
		p.Limit = MaxPageLimit
	}
	return p
}

// OrderRepository is the persistence contract for order aggregates. Loading
// returns the complete aggregate with its lines and history; lookups of a
// missing order fail with an error classified as not found.
type OrderRepository interface {
	// Add stores a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update stores the current state of an existing order, including lines
	// that were added or removed and history entries appended since loading.
	Update(ctx context.Context, aggregate *order.Order) error

	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	GetByOrderNumber(ctx context.Context, number string) (*order.Order, error)

	ListByCustomer(ctx context.Context, customerID int64, page Page) ([]*order.Order, error)
	ListByStatus(ctx context.Context, status order.Status, page Page) ([]*order.Order, error)
	ListByCustomerAndStatus(
		ctx context.Context,
		customerID int64,
		status order.Status,
		page Page,
	) ([]*order.Order, error)

	// ListPendingOlderThan returns Pending orders created before cutoff,
	// oldest first.
	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*order.Order, error)

	CountByStatus(ctx context.Context, status order.Status) (int64, error)
	CountByCustomer(ctx context.Context, customerID int64) (int64, error)
	CountByCustomerAndStatus(ctx context.Context, customerID int64, status order.Status) (int64, error)
	ExistsByOrderNumber(ctx context.Context, number string) (bool, error)

	// Delete removes an order and everything it owns. Only tests use it.
	Delete(ctx context.Context, id kernel.UUID) error
}
