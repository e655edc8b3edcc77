package http

import (
	"net/http"
	"strings"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	lines := make([]services.LineInput, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, l.input())
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		req.CustomerID,
		req.DeliveryAddress,
		req.BillingAddress,
		lines,
		req.CustomerNotes,
	)
	if err != nil {
		return writeError(c, err)
	}

	ctx := c.Request().Context()
	number, err := s.h.CreateOrder.Handle(ctx, cmd)
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewGetOrderByNumberQuery(number)
	if err != nil {
		return writeError(c, err)
	}
	view, err := s.h.GetOrder.Handle(ctx, query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, view)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	return s.respondWithOrder(c, http.StatusOK, id)
}

// GetOrderByNumber handles GET /api/v1/orders/number/:number.
func (s *Server) GetOrderByNumber(c echo.Context) error {
	query, err := queries.NewGetOrderByNumberQuery(c.Param("number"))
	if err != nil {
		return writeError(c, err)
	}
	view, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// ListOrders handles GET /api/v1/orders?customer_id=&status=&offset=&limit=.
// At least one of customer_id and status is required.
func (s *Server) ListOrders(c echo.Context) error {
	customerID, err := queryInt64(c, "customer_id")
	if err != nil {
		return writeError(c, err)
	}
	return s.listOrders(c, customerID)
}

// ListCustomerOrders handles GET /api/v1/orders/customer/:customerId.
func (s *Server) ListCustomerOrders(c echo.Context) error {
	customerID, err := pathInt64(c, "customerId")
	if err != nil {
		return writeError(c, err)
	}
	return s.listOrders(c, customerID)
}

func (s *Server) listOrders(c echo.Context, customerID int64) error {
	status, err := queryStatus(c, "status")
	if err != nil {
		return writeError(c, err)
	}
	page, err := queryPage(c)
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewListOrdersQuery(customerID, status, page)
	if err != nil {
		return writeError(c, err)
	}
	views, err := s.h.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, views)
}

// CanCreateOrder handles GET /api/v1/orders/customer/:customerId/can-create.
func (s *Server) CanCreateOrder(c echo.Context) error {
	customerID, err := pathInt64(c, "customerId")
	if err != nil {
		return writeError(c, err)
	}
	query, err := queries.NewCanCreateOrderForCustomerQuery(customerID)
	if err != nil {
		return writeError(c, err)
	}
	result, err := s.h.CanCreateOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(id, status, req.Reason, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	if err := s.h.ChangeOrderStatus.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return s.respondWithOrder(c, http.StatusOK, id)
}

// ConfirmOrder handles POST /api/v1/orders/:id/confirm.
func (s *Server) ConfirmOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	cmd, err := commands.NewConfirmOrderCommand(id, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	if err := s.h.ConfirmOrder.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return s.respondWithOrder(c, http.StatusOK, id)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req reasonRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(id, req.Reason, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	if err := s.h.CancelOrder.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return s.respondWithOrder(c, http.StatusOK, id)
}

// GetOrderHistory handles GET /api/v1/orders/:id/history?actor=&from=&to=&recent_window=.
func (s *Server) GetOrderHistory(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	from, err := queryTime(c, "from")
	if err != nil {
		return writeError(c, err)
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return writeError(c, err)
	}
	window, err := queryDuration(c, "recent_window")
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewGetOrderHistoryQuery(id, queries.HistoryFilter{
		Actor:        c.QueryParam("actor"),
		From:         from,
		To:           to,
		RecentWindow: window,
	})
	if err != nil {
		return writeError(c, err)
	}
	view, err := s.h.GetOrderHistory.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// ApplyDiscount handles POST /api/v1/orders/:id/discount.
func (s *Server) ApplyDiscount(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req discountRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var cmd commands.ApplyDiscountCommand
	switch strings.ToLower(strings.TrimSpace(req.Type)) {
	case "fixed":
		cmd, err = commands.NewApplyFixedDiscountCommand(id, req.Amount, req.Reason)
	case "percentage":
		cmd, err = commands.NewApplyPercentageDiscountCommand(id, req.Percentage, req.Reason)
	case "loyalty":
		cmd, err = commands.NewApplyLoyaltyDiscountCommand(id)
	default:
		return badRequest(c, "type must be one of fixed, percentage, loyalty")
	}
	if err != nil {
		return writeError(c, err)
	}

	if _, err := s.h.ApplyDiscount.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return s.respondWithOrder(c, http.StatusOK, id)
}

// RemoveDiscount handles DELETE /api/v1/orders/:id/discount?reason=.
func (s *Server) RemoveDiscount(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	cmd, err := commands.NewRemoveDiscountCommand(id, c.QueryParam("reason"))
	if err != nil {
		return writeError(c, err)
	}
	if err := s.h.RemoveDiscount.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return s.respondWithOrder(c, http.StatusOK, id)
}

// AddOrderLine handles POST /api/v1/orders/:id/lines.
func (s *Server) AddOrderLine(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req lineRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewAddOrderLineCommand(id, req.input())
	if err != nil {
		return writeError(c, err)
	}
	if _, err := s.h.AddOrderLine.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return s.respondWithOrder(c, http.StatusCreated, id)
}

// UpdateOrderLineQuantity handles PUT /api/v1/orders/:id/lines/:lineId.
func (s *Server) UpdateOrderLineQuantity(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	lineID, err := pathUUID(c, "lineId")
	if err != nil {
		return writeError(c, err)
	}
	var req quantityRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewUpdateOrderLineQuantityCommand(id, lineID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	if err := s.h.UpdateOrderLineQty.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return s.respondWithOrder(c, http.StatusOK, id)
}

// RemoveOrderLine handles DELETE /api/v1/orders/:id/lines/:lineId.
func (s *Server) RemoveOrderLine(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	lineID, err := pathUUID(c, "lineId")
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewRemoveOrderLineCommand(id, lineID)
	if err != nil {
		return writeError(c, err)
	}
	if err := s.h.RemoveOrderLine.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return s.respondWithOrder(c, http.StatusOK, id)
}
