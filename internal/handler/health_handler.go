package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gastos-backend/internal/config"
	"gastos-backend/internal/database"
)

// HealthHandler reports service liveness and database reachability.
type HealthHandler struct {
	db *database.DB
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthResponse is the health endpoint payload.
type HealthResponse struct {
	Status   string         `json:"status"`
	Database DatabaseHealth `json:"database"`
	Version  string         `json:"version"`
}

// DatabaseHealth describes the persistence backend state.
type DatabaseHealth struct {
	Connected bool   `json:"connected"`
	Backend   string `json:"backend"`
}

// Check godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Check(c echo.Context) error {
	connected := h.db.Ping(c.Request().Context()) == nil

	status := "ok"
	code := http.StatusOK
	if !connected {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	return c.JSON(code, HealthResponse{
		Status: status,
		Database: DatabaseHealth{
			Connected: connected,
			Backend:   string(h.db.Kind()),
		},
		Version: config.Version,
	})
}
