package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"gastos-backend/internal/domain"
	"gastos-backend/internal/service"
)

// CategoryHandler handles category-related HTTP requests.
type CategoryHandler struct {
	categoryService *service.CategoryService
	dev             bool
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService *service.CategoryService, dev bool) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, dev: dev}
}

// CategoryRequest represents a category candidate in request bodies.
type CategoryRequest struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

func (r CategoryRequest) toInput() domain.CategoryInput {
	return domain.CategoryInput{
		Name:        r.Name,
		Kind:        r.Kind,
		Description: r.Description,
		Color:       r.Color,
		Icon:        r.Icon,
	}
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	Icon        string `json:"icon,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// CategoryUsageResponse is a category plus its usage aggregates.
type CategoryUsageResponse struct {
	CategoryResponse
	TransactionCount int64  `json:"transactionCount"`
	TotalAmount      string `json:"totalAmount"`
	AvgAmount        string `json:"avgAmount"`
}

func toCategoryResponse(cat *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          cat.ID,
		Name:        cat.Name,
		Kind:        string(cat.Kind),
		Description: cat.Description,
		Color:       cat.Color,
		Icon:        cat.Icon,
		CreatedAt:   cat.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   cat.UpdatedAt.Format(time.RFC3339),
	}
}

// parseKindParam parses the optional ?kind= query parameter.
func parseKindParam(c echo.Context) (*domain.Kind, error) {
	kindStr := c.QueryParam("kind")
	if kindStr == "" {
		return nil, nil
	}
	kind := domain.Kind(kindStr)
	if !kind.Valid() {
		return nil, errors.New("invalid kind")
	}
	return &kind, nil
}

// List godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Param kind query string false "Category kind (income or expense)"
// @Success 200 {array} CategoryResponse
// @Failure 400 {object} ProblemDetails
// @Router /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	kind, err := parseKindParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid kind (must be 'income' or 'expense')", nil)
	}

	categories, err := h.categoryService.List(c.Request().Context(), kind)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list categories")
		return NewInternalError(c, h.dev, err, "Failed to list categories")
	}

	response := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		response[i] = toCategoryResponse(cat)
	}
	return c.JSON(http.StatusOK, response)
}

// Stats godoc
// @Summary List categories with usage statistics
// @Description Every category plus transaction count, total and average amount
// @Tags categories
// @Produce json
// @Param kind query string false "Category kind (income or expense)"
// @Success 200 {array} CategoryUsageResponse
// @Failure 400 {object} ProblemDetails
// @Router /categories/stats [get]
func (h *CategoryHandler) Stats(c echo.Context) error {
	kind, err := parseKindParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid kind (must be 'income' or 'expense')", nil)
	}

	usages, err := h.categoryService.ListWithUsage(c.Request().Context(), kind)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list category stats")
		return NewInternalError(c, h.dev, err, "Failed to list category stats")
	}

	response := make([]CategoryUsageResponse, len(usages))
	for i, u := range usages {
		response[i] = CategoryUsageResponse{
			CategoryResponse: toCategoryResponse(&u.Category),
			TransactionCount: u.TransactionCount,
			TotalAmount:      u.TotalAmount.StringFixed(2),
			AvgAmount:        u.AvgAmount.StringFixed(2),
		}
	}
	return c.JSON(http.StatusOK, response)
}

// Get godoc
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} CategoryResponse
// @Failure 404 {object} ProblemDetails
// @Router /categories/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	cat, err := h.categoryService.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		log.Error().Err(err).Int64("category_id", id).Msg("Failed to get category")
		return NewInternalError(c, h.dev, err, "Failed to get category")
	}
	return c.JSON(http.StatusOK, toCategoryResponse(cat))
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body CategoryRequest true "Category candidate"
// @Success 201 {object} CategoryResponse
// @Failure 400 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	cat, err := h.categoryService.Create(c.Request().Context(), req.toInput())
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return NewValidationError(c, verr.Error(), verr.Violations)
		}
		if errors.Is(err, domain.ErrCategoryNameTaken) {
			return NewConflictError(c, "Category name already exists")
		}
		log.Error().Err(err).Msg("Failed to create category")
		return NewInternalError(c, h.dev, err, "Failed to create category")
	}

	log.Info().Int64("category_id", cat.ID).Str("name", cat.Name).Msg("Category created")
	return c.JSON(http.StatusCreated, toCategoryResponse(cat))
}

// Update godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body CategoryRequest true "Category candidate"
// @Success 200 {object} CategoryResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /categories/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	cat, err := h.categoryService.Update(c.Request().Context(), id, req.toInput())
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return NewValidationError(c, verr.Error(), verr.Violations)
		}
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		if errors.Is(err, domain.ErrCategoryNameTaken) {
			return NewConflictError(c, "Category name already exists")
		}
		log.Error().Err(err).Int64("category_id", id).Msg("Failed to update category")
		return NewInternalError(c, h.dev, err, "Failed to update category")
	}

	log.Info().Int64("category_id", cat.ID).Msg("Category updated")
	return c.JSON(http.StatusOK, toCategoryResponse(cat))
}

// Delete godoc
// @Summary Delete a category
// @Description Fails with 409 while transactions still reference the category name
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	if err := h.categoryService.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		var inUse *domain.CategoryInUseError
		if errors.As(err, &inUse) {
			return NewConflictError(c, inUse.Error())
		}
		log.Error().Err(err).Int64("category_id", id).Msg("Failed to delete category")
		return NewInternalError(c, h.dev, err, "Failed to delete category")
	}

	log.Info().Int64("category_id", id).Msg("Category deleted")
	return c.JSON(http.StatusOK, map[string]string{"message": "Category deleted successfully"})
}
