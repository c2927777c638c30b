package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes wires all handlers under the /api prefix.
func RegisterRoutes(
	e *echo.Echo,
	transactionHandler *TransactionHandler,
	categoryHandler *CategoryHandler,
	summaryHandler *SummaryHandler,
	healthHandler *HealthHandler,
) {
	api := e.Group("/api")

	api.GET("/health", healthHandler.Check)

	transactions := api.Group("/transactions")
	transactions.GET("", transactionHandler.List)
	transactions.POST("", transactionHandler.Create)
	transactions.GET("/:id", transactionHandler.Get)
	transactions.PUT("/:id", transactionHandler.Update)
	transactions.DELETE("/:id", transactionHandler.Delete)

	categories := api.Group("/categories")
	categories.GET("", categoryHandler.List)
	categories.POST("", categoryHandler.Create)
	categories.GET("/stats", categoryHandler.Stats)
	categories.GET("/:id", categoryHandler.Get)
	categories.PUT("/:id", categoryHandler.Update)
	categories.DELETE("/:id", categoryHandler.Delete)

	api.GET("/summary", summaryHandler.Summary)
	api.GET("/reports/monthly/:year", summaryHandler.Monthly)
}
