// Package http exposes the order use cases over a JSON API built on echo.
// Handlers only translate requests into commands and queries and map errors
// to status codes.
package http

import (
	"context"
	"net/http"
	"strings"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// ActorHeader names the caller recorded in history entries. Requests without
// it are attributed to DefaultActor.
const (
	ActorHeader  = "X-Actor"
	DefaultActor = "api"
)

// CommandHandler and QueryHandler are the shapes of the use case handlers.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

type QueryHandler[Q, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Handlers lists every use case the API serves.
type Handlers struct {
	CreateOrder            QueryHandler[commands.CreateOrderCommand, string]
	ConfirmOrder           CommandHandler[commands.ConfirmOrderCommand]
	ChangeOrderStatus      CommandHandler[commands.ChangeOrderStatusCommand]
	CancelOrder            CommandHandler[commands.CancelOrderCommand]
	ApplyDiscount          QueryHandler[commands.ApplyDiscountCommand, kernel.Money]
	RemoveDiscount         CommandHandler[commands.RemoveDiscountCommand]
	AddOrderLine           QueryHandler[commands.AddOrderLineCommand, kernel.UUID]
	RemoveOrderLine        CommandHandler[commands.RemoveOrderLineCommand]
	UpdateOrderLineQty     CommandHandler[commands.UpdateOrderLineQuantityCommand]
	ForceOrderStatus       CommandHandler[commands.ForceOrderStatusCommand]
	AddInternalNotes       CommandHandler[commands.AddInternalNotesCommand]
	CancelStalePending     QueryHandler[commands.CancelStalePendingOrdersCommand, int]
	GetOrder               QueryHandler[queries.GetOrderQuery, queries.OrderView]
	ListOrders             QueryHandler[queries.ListOrdersQuery, []queries.OrderView]
	GetOrderHistory        QueryHandler[queries.GetOrderHistoryQuery, queries.OrderHistoryView]
	GetOrderStatistics     QueryHandler[queries.GetOrderStatisticsQuery, queries.OrderStatistics]
	CanCreateOrder         QueryHandler[queries.CanCreateOrderForCustomerQuery, queries.CanCreateOrderResult]
	ListStalePendingOrders QueryHandler[queries.ListStalePendingOrdersQuery, []queries.OrderSummary]
	SearchOrders           QueryHandler[queries.SearchOrdersQuery, queries.SearchOrdersResult]
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	h Handlers
}

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// Register mounts the routes under /api/v1.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	orders := e.Group("/api/v1/orders")
	orders.POST("", s.CreateOrder)
	orders.GET("", s.ListOrders)
	orders.GET("/:id", s.GetOrder)
	orders.GET("/number/:number", s.GetOrderByNumber)
	orders.GET("/customer/:customerId", s.ListCustomerOrders)
	orders.GET("/customer/:customerId/can-create", s.CanCreateOrder)
	orders.PUT("/:id/status", s.UpdateOrderStatus)
	orders.POST("/:id/confirm", s.ConfirmOrder)
	orders.POST("/:id/cancel", s.CancelOrder)
	orders.GET("/:id/history", s.GetOrderHistory)
	orders.POST("/:id/discount", s.ApplyDiscount)
	orders.DELETE("/:id/discount", s.RemoveDiscount)
	orders.POST("/:id/lines", s.AddOrderLine)
	orders.PUT("/:id/lines/:lineId", s.UpdateOrderLineQuantity)
	orders.DELETE("/:id/lines/:lineId", s.RemoveOrderLine)

	admin := e.Group("/api/v1/admin/orders")
	admin.GET("/statistics", s.GetStatistics)
	admin.GET("/pending-old", s.ListStalePendingOrders)
	admin.GET("/search", s.SearchOrders)
	admin.PUT("/:id/force-status", s.ForceOrderStatus)
	admin.PUT("/:id/internal-notes", s.AddInternalNotes)
	admin.POST("/cancel-old-pending", s.CancelStalePendingOrders)
}

func actor(c echo.Context) string {
	if a := strings.TrimSpace(c.Request().Header.Get(ActorHeader)); a != "" {
		return a
	}
	return DefaultActor
}

// respondWithOrder reloads the order so that every mutating call answers with
// its current state.
func (s *Server) respondWithOrder(c echo.Context, status int, id kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return writeError(c, err)
	}
	view, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(status, view)
}
