package queries_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderReader) GetByOrderNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderReader) ListByCustomer(ctx context.Context, customerID int64, page ports.Page) ([]*order.Order, error) {
	args := m.Called(ctx, customerID, page)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderReader) ListByStatus(ctx context.Context, status order.Status, page ports.Page) ([]*order.Order, error) {
	args := m.Called(ctx, status, page)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderReader) ListByCustomerAndStatus(
	ctx context.Context,
	customerID int64,
	status order.Status,
	page ports.Page,
) ([]*order.Order, error) {
	args := m.Called(ctx, customerID, status, page)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderReader) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderReader) CountByStatus(ctx context.Context, status order.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderReader) CountByCustomerAndStatus(
	ctx context.Context,
	customerID int64,
	status order.Status,
) (int64, error) {
	args := m.Called(ctx, customerID, status)
	return args.Get(0).(int64), args.Error(1)
}

func newTestOrder(t *testing.T, customerID int64) *order.Order {
	t.Helper()
	line, err := order.NewLine(1, "Widget", "W-1", 2, kernel.MustMoney("12.50"))
	require.NoError(t, err)
	o, err := order.NewOrder(
		kernel.NewUUID(),
		order.GenerateOrderNumber(time.Now()),
		customerID,
		order.DeliveryAddress{RecipientName: "Ada", Street: "1 Main St", City: "London", PostalCode: "N1", Country: "GB"},
		order.BillingAddress{BillingName: "Ada", Street: "1 Main St", City: "London", PostalCode: "N1", Country: "GB"},
		[]*order.Line{line},
		"",
	)
	require.NoError(t, err)
	return o
}
