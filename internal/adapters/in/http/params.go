package http

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValidationError("invalid path parameter",
			errs.NewValueIsInvalidErrorWithCause(name, err))
	}
	return id, nil
}

func pathInt64(c echo.Context, name string) (int64, error) {
	n, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, errs.NewValidationError("invalid path parameter",
			errs.NewValueIsInvalidErrorWithCause(name, err))
	}
	return n, nil
}

func queryInt64(c echo.Context, name string) (int64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.NewValidationError("invalid query parameter",
			errs.NewValueIsInvalidErrorWithCause(name, err))
	}
	return n, nil
}

func queryHours(c echo.Context, name string, fallback int) (time.Duration, error) {
	n, err := queryInt64(c, name)
	if err != nil {
		return 0, err
	}
	if n == 0 && strings.TrimSpace(c.QueryParam(name)) == "" {
		n = int64(fallback)
	}
	return time.Duration(n) * time.Hour, nil
}

func queryTime(c echo.Context, name string) (time.Time, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errs.NewValidationError("invalid query parameter",
			errs.NewValueIsInvalidErrorWithCause(name, err))
	}
	return t, nil
}

func queryDuration(c echo.Context, name string) (time.Duration, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errs.NewValidationError("invalid query parameter",
			errs.NewValueIsInvalidErrorWithCause(name, err))
	}
	return d, nil
}

func queryStatus(c echo.Context, name string) (order.Status, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return order.Unknown, nil
	}
	s, err := order.ParseStatus(raw)
	if err != nil {
		return order.Unknown, errs.NewValidationError("invalid query parameter", err)
	}
	return s, nil
}

func queryPage(c echo.Context) (ports.Page, error) {
	offset, err := queryInt64(c, "offset")
	if err != nil {
		return ports.Page{}, err
	}
	limit, err := queryInt64(c, "limit")
	if err != nil {
		return ports.Page{}, err
	}
	if offset < 0 || limit < 0 {
		return ports.Page{}, errs.NewValidationError("invalid query parameter",
			errs.NewValueIsInvalidErrorWithCause("page", fmt.Errorf("offset %d, limit %d", offset, limit)))
	}
	return ports.Page{Offset: int(offset), Limit: int(limit)}, nil
}
