package http

import (
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// GetStatistics handles GET /api/v1/admin/orders/statistics.
func (s *Server) GetStatistics(c echo.Context) error {
	stats, err := s.h.GetOrderStatistics.Handle(c.Request().Context(), queries.NewGetOrderStatisticsQuery())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// ListStalePendingOrders handles GET /api/v1/admin/orders/pending-old?hours=24.
func (s *Server) ListStalePendingOrders(c echo.Context) error {
	olderThan, err := queryHours(c, "hours", 24)
	if err != nil {
		return writeError(c, err)
	}
	query, err := queries.NewListStalePendingOrdersQuery(olderThan)
	if err != nil {
		return writeError(c, err)
	}
	summaries, err := s.h.ListStalePendingOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, summaries)
}

// SearchOrders handles GET /api/v1/admin/orders/search.
func (s *Server) SearchOrders(c echo.Context) error {
	customerID, err := queryInt64(c, "customer_id")
	if err != nil {
		return writeError(c, err)
	}
	status, err := queryStatus(c, "status")
	if err != nil {
		return writeError(c, err)
	}
	from, err := queryTime(c, "created_from")
	if err != nil {
		return writeError(c, err)
	}
	to, err := queryTime(c, "created_to")
	if err != nil {
		return writeError(c, err)
	}
	page, err := queryPage(c)
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewSearchOrdersQuery(queries.SearchCriteria{
		CustomerID:   customerID,
		Status:       status,
		NumberPrefix: c.QueryParam("order_number"),
		CreatedFrom:  from,
		CreatedTo:    to,
	}, page)
	if err != nil {
		return writeError(c, err)
	}
	result, err := s.h.SearchOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// ForceOrderStatus handles PUT /api/v1/admin/orders/:id/force-status.
func (s *Server) ForceOrderStatus(c echo.Context) error {
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

	cmd, err := commands.NewForceOrderStatusCommand(id, status, req.Reason, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	if err := s.h.ForceOrderStatus.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return s.respondWithOrder(c, http.StatusOK, id)
}

// AddInternalNotes handles PUT /api/v1/admin/orders/:id/internal-notes.
func (s *Server) AddInternalNotes(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req notesRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewAddInternalNotesCommand(id, req.Notes, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	if err := s.h.AddInternalNotes.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return s.respondWithOrder(c, http.StatusOK, id)
}

type cancelStaleResponse struct {
	Cancelled      int `json:"cancelled"`
	HoursThreshold int `json:"hours_threshold"`
}

// CancelStalePendingOrders handles POST /api/v1/admin/orders/cancel-old-pending?hours_threshold=48.
func (s *Server) CancelStalePendingOrders(c echo.Context) error {
	olderThan, err := queryHours(c, "hours_threshold", 48)
	if err != nil {
		return writeError(c, err)
	}
	cmd, err := commands.NewCancelStalePendingOrdersCommand(olderThan, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	n, err := s.h.CancelStalePending.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cancelStaleResponse{Cancelled: n, HoursThreshold: int(olderThan.Hours())})
}
