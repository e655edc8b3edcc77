package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its lines and history.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&dto).Error; err != nil {
			return err
		}
		if err := createLines(tx, dto.Lines); err != nil {
			return err
		}
		return createHistory(tx, dto.History)
	})
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update overwrites the order row, replaces its lines and appends history
// entries that are not stored yet. An aggregate whose history no longer
// extends the stored one was loaded before a concurrent change and is
// rejected with a conflict.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&OrderDTO{}).
			Where("id = ?", dto.ID).
			Select("*").
			Omit(clause.Associations, "id", "created_at").
			Updates(&dto)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}

		if err := tx.Where("order_id = ?", dto.ID).Delete(&OrderLineDTO{}).Error; err != nil {
			return err
		}
		if err := createLines(tx, dto.Lines); err != nil {
			return err
		}
		return appendHistory(tx, dto.ID, dto.History)
	})
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID. Inside a transaction the orders row is
// locked until commit, so concurrent read-modify-write cycles on the same
// order run one after another.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "order", id.String(), "id = ?", id.Bytes())
}

// GetByOrderNumber retrieves an order by its business key.
func (r *GormOrderRepository) GetByOrderNumber(ctx context.Context, number string) (*order.Order, error) {
	return r.first(ctx, "order_number", number, "number = ?", number)
}

func (r *GormOrderRepository) ListByCustomer(
	ctx context.Context,
	customerID int64,
	page ports.Page,
) ([]*order.Order, error) {
	return r.find(ctx, r.paged(page).Where("customer_id = ?", customerID))
}

func (r *GormOrderRepository) ListByStatus(
	ctx context.Context,
	status order.Status,
	page ports.Page,
) ([]*order.Order, error) {
	return r.find(ctx, r.paged(page).Where("status = ?", status.String()))
}

func (r *GormOrderRepository) ListByCustomerAndStatus(
	ctx context.Context,
	customerID int64,
	status order.Status,
	page ports.Page,
) ([]*order.Order, error) {
	return r.find(ctx, r.paged(page).Where("customer_id = ? AND status = ?", customerID, status.String()))
}

// ListPendingOlderThan returns Pending orders created before cutoff, oldest first.
func (r *GormOrderRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	return r.find(ctx, r.db.
		Where("status = ? AND created_at < ?", order.Pending.String(), cutoff).
		Order("created_at ASC"))
}

func (r *GormOrderRepository) CountByStatus(ctx context.Context, status order.Status) (int64, error) {
	return r.count(ctx, "status = ?", status.String())
}

func (r *GormOrderRepository) CountByCustomer(ctx context.Context, customerID int64) (int64, error) {
	return r.count(ctx, "customer_id = ?", customerID)
}

func (r *GormOrderRepository) CountByCustomerAndStatus(
	ctx context.Context,
	customerID int64,
	status order.Status,
) (int64, error) {
	return r.count(ctx, "customer_id = ? AND status = ?", customerID, status.String())
}

func (r *GormOrderRepository) ExistsByOrderNumber(ctx context.Context, number string) (bool, error) {
	n, err := r.count(ctx, "number = ?", number)
	return n > 0, err
}

// Delete removes the order together with its lines and history.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id.Bytes()).Delete(&OrderLineDTO{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", id.Bytes()).Delete(&HistoryEntryDTO{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id.Bytes()).Delete(&OrderDTO{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("order", id.String())
		}
		return nil
	})
}

func (r *GormOrderRepository) first(ctx context.Context, param string, key any, query string, args ...any) (*order.Order, error) {
	var dto OrderDTO
	db := r.db.WithContext(ctx)
	if inTransaction(db) {
		db = db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}
	if err := withChildren(db).Where(query, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, key)
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormOrderRepository) find(ctx context.Context, query *gorm.DB) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := withChildren(query.WithContext(ctx)).Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *GormOrderRepository) paged(page ports.Page) *gorm.DB {
	page = page.Normalize()
	return r.db.Order("created_at DESC").Order("number DESC").Offset(page.Offset).Limit(page.Limit)
}

func (r *GormOrderRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where(query, args...).Count(&n).Error
	return n, err
}

func withChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("sequence ASC") })
}

func createLines(tx *gorm.DB, lines []OrderLineDTO) error {
	if len(lines) == 0 {
		return nil
	}
	return tx.Create(&lines).Error
}

func createHistory(tx *gorm.DB, entries []HistoryEntryDTO) error {
	if len(entries) == 0 {
		return nil
	}
	return tx.Create(&entries).Error
}

// appendHistory inserts the entries from the stored count onwards. The saved
// state must extend the stored history: when it holds fewer entries, or its
// entry at the last stored position differs, the order changed after it was
// loaded and the save is a conflict. A duplicate sequence still violates
// idx_order_history_sequence and aborts the transaction.
func appendHistory(tx *gorm.DB, orderID uuid.UUID, entries []HistoryEntryDTO) error {
	var stored []HistoryEntryDTO
	if err := tx.Where("order_id = ?", orderID).Order("sequence ASC").Find(&stored).Error; err != nil {
		return err
	}
	n := len(stored)
	if n > len(entries) || (n > 0 && !sameEntry(stored[n-1], entries[n-1])) {
		return errs.NewConflictError(fmt.Sprintf("order %s history changed since it was loaded", orderID))
	}
	return createHistory(tx, entries[n:])
}

// sameEntry compares a stored entry with one about to be saved. PostgreSQL
// keeps microseconds, so timestamps match within one.
func sameEntry(stored, saved HistoryEntryDTO) bool {
	gap := stored.ModifiedAt.Sub(saved.ModifiedAt).Abs()
	return stored.PreviousStatus == saved.PreviousStatus &&
		stored.NewStatus == saved.NewStatus &&
		stored.ModifiedBy == saved.ModifiedBy &&
		gap <= time.Microsecond
}

func inTransaction(db *gorm.DB) bool {
	_, ok := db.Statement.ConnPool.(gorm.TxCommitter)
	return ok
}
