package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gastos-backend/internal/domain"
)

// ProblemDetails represents an RFC 7807 Problem Details response.
type ProblemDetails struct {
	Type     string                  `json:"type"`
	Title    string                  `json:"title"`
	Status   int                     `json:"status"`
	Detail   string                  `json:"detail,omitempty"`
	Instance string                  `json:"instance,omitempty"`
	Errors   []domain.FieldViolation `json:"errors,omitempty"`
}

// Error types
const (
	ErrorTypeValidation = "https://gastos.app/errors/validation"
	ErrorTypeNotFound   = "https://gastos.app/errors/not-found"
	ErrorTypeConflict   = "https://gastos.app/errors/conflict"
	ErrorTypeInternal   = "https://gastos.app/errors/internal"
)

// NewValidationError creates a 400 response carrying the collected
// field violations.
func NewValidationError(c echo.Context, detail string, violations []domain.FieldViolation) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   violations,
	})
}

// NewNotFoundError creates a 404 response.
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewConflictError creates a 409 response.
func NewConflictError(c echo.Context, detail string) error {
	return c.JSON(http.StatusConflict, ProblemDetails{
		Type:     ErrorTypeConflict,
		Title:    "Conflict",
		Status:   http.StatusConflict,
		Instance: c.Request().URL.Path,
		Detail:   detail,
	})
}

// NewInternalError creates a 500 response. The underlying error detail
// is included only in development mode; production clients get the
// fallback message.
func NewInternalError(c echo.Context, dev bool, err error, fallback string) error {
	detail := fallback
	if dev && err != nil {
		detail = err.Error()
	}
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}
