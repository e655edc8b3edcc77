package commands_test

import (
	"context"
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testDelivery() order.DeliveryAddress {
	return order.DeliveryAddress{
		RecipientName: "Alan Turing",
		Street:        "Bletchley Park",
		City:          "Milton Keynes",
		PostalCode:    "MK3 6EB",
		Country:       "GB",
	}
}

func testBilling() order.BillingAddress {
	return order.BillingAddress{
		BillingName: "Alan Turing",
		Street:      "Bletchley Park",
		City:        "Milton Keynes",
		PostalCode:  "MK3 6EB",
		Country:     "GB",
	}
}

func testLines() []services.LineInput {
	return []services.LineInput{
		{ProductID: 1, ProductName: "Enigma rotor", SKU: "ROT-1", Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
		{ProductID: 2, ProductName: "Notebook", SKU: "NB-1", Quantity: 1, UnitPrice: decimal.RequireFromString("5.00")},
	}
}

// testOrder returns a Pending order totalling 100.00 for customer 7.
func testOrder(t *testing.T) *order.Order {
	t.Helper()
	line, err := order.NewLine(1, "Widget", "W-1", 4, kernel.MustMoney("25.00"))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-1-TESTTEST", 7, testDelivery(), testBilling(), []*order.Line{line}, "")
	require.NoError(t, err)
	o.PullEvents()
	return o
}

// expectUpdate wires the happy path of a load-mutate-save command for o.
func expectUpdate(ctx context.Context, o *order.Order) (*MockOrderUoWFactory, *MockOrderUoW, *MockOrderRepository) {
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	return factory, uow, repo
}

// expectRejected wires a command whose mutation fails: nothing is updated
// or committed.
func expectRejected(ctx context.Context, o *order.Order) (*MockOrderUoWFactory, *MockOrderUoW, *MockOrderRepository) {
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	return factory, uow, repo
}
