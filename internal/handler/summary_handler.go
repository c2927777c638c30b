package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"gastos-backend/internal/domain"
	"gastos-backend/internal/service"
	"gastos-backend/internal/util"
)

// SummaryHandler handles summary and reporting requests.
type SummaryHandler struct {
	summaryService *service.SummaryService
	dev            bool
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryService *service.SummaryService, dev bool) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService, dev: dev}
}

// SummaryResponse is the date-range summary in API responses.
type SummaryResponse struct {
	TotalIncome        string                  `json:"totalIncome"`
	TotalExpenses      string                  `json:"totalExpenses"`
	Balance            string                  `json:"balance"`
	ExpensesByCategory []CategoryTotalResponse `json:"expensesByCategory"`
	IncomeByCategory   []CategoryTotalResponse `json:"incomeByCategory"`
}

// CategoryTotalResponse is one per-category breakdown entry.
type CategoryTotalResponse struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

// MonthlyTotalResponse is one month/kind row of the yearly report.
type MonthlyTotalResponse struct {
	Month int    `json:"month"`
	Kind  string `json:"kind"`
	Total string `json:"total"`
}

func toCategoryTotals(totals []domain.CategoryTotal) []CategoryTotalResponse {
	out := make([]CategoryTotalResponse, len(totals))
	for i, t := range totals {
		out[i] = CategoryTotalResponse{Category: t.Category, Total: t.Total.StringFixed(2)}
	}
	return out
}

// Summary godoc
// @Summary Get income/expense summary
// @Description Totals, balance and per-category breakdowns for an optional date range
// @Tags summary
// @Produce json
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} SummaryResponse
// @Failure 400 {object} ProblemDetails
// @Router /summary [get]
func (h *SummaryHandler) Summary(c echo.Context) error {
	var filters domain.StatisticsFilters

	if startStr := c.QueryParam("startDate"); startStr != "" {
		parsed, err := util.ParseDate(startStr)
		if err != nil {
			return NewValidationError(c, "Invalid startDate format (use YYYY-MM-DD)", nil)
		}
		filters.StartDate = &parsed
	}
	if endStr := c.QueryParam("endDate"); endStr != "" {
		parsed, err := util.ParseDate(endStr)
		if err != nil {
			return NewValidationError(c, "Invalid endDate format (use YYYY-MM-DD)", nil)
		}
		filters.EndDate = &parsed
	}

	stats, err := h.summaryService.Statistics(c.Request().Context(), filters)
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute summary")
		return NewInternalError(c, h.dev, err, "Failed to compute summary")
	}

	return c.JSON(http.StatusOK, SummaryResponse{
		TotalIncome:        stats.TotalIncome.StringFixed(2),
		TotalExpenses:      stats.TotalExpenses.StringFixed(2),
		Balance:            stats.Balance.StringFixed(2),
		ExpensesByCategory: toCategoryTotals(stats.ExpensesByCategory),
		IncomeByCategory:   toCategoryTotals(stats.IncomeByCategory),
	})
}

// Monthly godoc
// @Summary Get monthly totals for a year
// @Description Per-month, per-kind totals; months without transactions are omitted
// @Tags summary
// @Produce json
// @Param year path int true "Calendar year (2000-2100)"
// @Success 200 {array} MonthlyTotalResponse
// @Failure 400 {object} ProblemDetails
// @Router /reports/monthly/{year} [get]
func (h *SummaryHandler) Monthly(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || !service.ValidReportYear(year) {
		return NewValidationError(c, "Invalid year (must be between 2000 and 2100)", nil)
	}

	totals, err := h.summaryService.MonthlyData(c.Request().Context(), year)
	if err != nil {
		log.Error().Err(err).Int("year", year).Msg("Failed to compute monthly report")
		return NewInternalError(c, h.dev, err, "Failed to compute monthly report")
	}

	response := make([]MonthlyTotalResponse, len(totals))
	for i, t := range totals {
		response[i] = MonthlyTotalResponse{Month: t.Month, Kind: string(t.Kind), Total: t.Total.StringFixed(2)}
	}
	return c.JSON(http.StatusOK, response)
}
