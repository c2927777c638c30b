package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"gastos-backend/internal/domain"
	"gastos-backend/internal/service"
	"gastos-backend/internal/util"
)

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	transactionService *service.TransactionService
	dev                bool
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService *service.TransactionService, dev bool) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, dev: dev}
}

// TransactionRequest represents a transaction candidate in request
// bodies. Amount is a json.Number so clients may send either a numeric
// literal or a quoted decimal string.
type TransactionRequest struct {
	Kind        string      `json:"kind"`
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Date        string      `json:"date"`
}

func (r TransactionRequest) toInput() domain.TransactionInput {
	return domain.TransactionInput{
		Kind:        r.Kind,
		Amount:      r.Amount.String(),
		Description: r.Description,
		Category:    r.Category,
		Date:        r.Date,
	}
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID          int64  `json:"id"`
	Kind        string `json:"kind"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toTransactionResponse(tx *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID,
		Kind:        string(tx.Kind),
		Amount:      tx.Amount.StringFixed(2),
		Description: tx.Description,
		Category:    tx.Category,
		Date:        util.FormatDate(tx.Date),
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   tx.UpdatedAt.Format(time.RFC3339),
	}
}

// List godoc
// @Summary List transactions
// @Description Get transactions with optional kind/category/date filters
// @Tags transactions
// @Produce json
// @Param kind query string false "Transaction kind (income or expense)"
// @Param category query string false "Category name"
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Param limit query int false "Maximum number of rows"
// @Success 200 {array} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Router /transactions [get]
func (h *TransactionHandler) List(c echo.Context) error {
	var filters domain.TransactionFilters

	if kindStr := c.QueryParam("kind"); kindStr != "" {
		kind := domain.Kind(kindStr)
		if !kind.Valid() {
			return NewValidationError(c, "Invalid kind (must be 'income' or 'expense')", nil)
		}
		filters.Kind = &kind
	}
	if category := c.QueryParam("category"); category != "" {
		filters.Category = &category
	}
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
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			return NewValidationError(c, "Invalid limit (must be a positive integer)", nil)
		}
		filters.Limit = &limit
	}

	transactions, err := h.transactionService.List(c.Request().Context(), filters)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list transactions")
		return NewInternalError(c, h.dev, err, "Failed to list transactions")
	}

	response := make([]TransactionResponse, len(transactions))
	for i, tx := range transactions {
		response[i] = toTransactionResponse(tx)
	}
	return c.JSON(http.StatusOK, response)
}

// Get godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} TransactionResponse
// @Failure 404 {object} ProblemDetails
// @Router /transactions/{id} [get]
func (h *TransactionHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	tx, err := h.transactionService.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Int64("transaction_id", id).Msg("Failed to get transaction")
		return NewInternalError(c, h.dev, err, "Failed to get transaction")
	}
	return c.JSON(http.StatusOK, toTransactionResponse(tx))
}

// Create godoc
// @Summary Create a transaction
// @Description Create a new income or expense transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body TransactionRequest true "Transaction candidate"
// @Success 201 {object} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Router /transactions [post]
func (h *TransactionHandler) Create(c echo.Context) error {
	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	tx, err := h.transactionService.Create(c.Request().Context(), req.toInput())
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return NewValidationError(c, verr.Error(), verr.Violations)
		}
		log.Error().Err(err).Msg("Failed to create transaction")
		return NewInternalError(c, h.dev, err, "Failed to create transaction")
	}

	log.Info().Int64("transaction_id", tx.ID).Str("kind", string(tx.Kind)).Str("category", tx.Category).Msg("Transaction created")
	return c.JSON(http.StatusCreated, toTransactionResponse(tx))
}

// Update godoc
// @Summary Update a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param request body TransactionRequest true "Transaction candidate"
// @Success 200 {object} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /transactions/{id} [put]
func (h *TransactionHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	tx, err := h.transactionService.Update(c.Request().Context(), id, req.toInput())
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return NewValidationError(c, verr.Error(), verr.Violations)
		}
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Int64("transaction_id", id).Msg("Failed to update transaction")
		return NewInternalError(c, h.dev, err, "Failed to update transaction")
	}

	log.Info().Int64("transaction_id", tx.ID).Msg("Transaction updated")
	return c.JSON(http.StatusOK, toTransactionResponse(tx))
}

// Delete godoc
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ProblemDetails
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	deleted, err := h.transactionService.Delete(c.Request().Context(), id)
	if err != nil {
		log.Error().Err(err).Int64("transaction_id", id).Msg("Failed to delete transaction")
		return NewInternalError(c, h.dev, err, "Failed to delete transaction")
	}
	if !deleted {
		return NewNotFoundError(c, "Transaction not found")
	}

	log.Info().Int64("transaction_id", id).Msg("Transaction deleted")
	return c.JSON(http.StatusOK, map[string]string{"message": "Transaction deleted successfully"})
}

// parseID parses the :id path parameter.
func parseID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
