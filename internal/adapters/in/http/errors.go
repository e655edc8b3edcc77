package http

import (
	"errors"
	"net/http"

	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int      `json:"code"`
	Kind    string   `json:"kind"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

func statusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindInvalidTransition, errs.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c echo.Context, err error) error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return c.JSON(httpErr.Code, Error{
			Code:    httpErr.Code,
			Kind:    errs.KindValidation.String(),
			Message: "Invalid request",
		})
	}

	kind := errs.KindOf(err)
	code := statusOf(kind)
	body := Error{Code: code, Kind: kind.String(), Message: err.Error()}
	if code == http.StatusInternalServerError {
		c.Logger().Error(err)
		body.Message = "Internal server error"
		return c.JSON(code, body)
	}

	var tagged *errs.Error
	if errors.As(err, &tagged) {
		body.Fields = tagged.FieldNames()
	}
	return c.JSON(code, body)
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Kind:    errs.KindValidation.String(),
		Message: message,
	})
}
