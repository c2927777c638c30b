package domain

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Category is a named bucket for transactions of one kind. Name is
// unique; transactions reference it by name, not by id.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Kind        Kind      `json:"kind"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

const (
	MaxCategoryDescriptionLength = 255
	MaxCategoryIconLength        = 50
)

var colorPattern = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// CategoryInput is an unvalidated category candidate from the API.
type CategoryInput struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

// Validate checks every field and returns a normalized Category or a
// *ValidationError with all violations collected.
func (in CategoryInput) Validate() (*Category, error) {
	verr := &ValidationError{}

	// Limits count characters, not bytes, so accented names keep
	// their full budget.
	name := strings.TrimSpace(in.Name)
	if name == "" {
		verr.Add("name", "name is required")
	} else if utf8.RuneCountInString(name) > MaxCategoryNameLength {
		verr.Add("name", "name must be 100 characters or less")
	}

	kind := Kind(in.Kind)
	if !kind.Valid() {
		verr.Add("kind", "kind must be income or expense")
	}

	description := strings.TrimSpace(in.Description)
	if utf8.RuneCountInString(description) > MaxCategoryDescriptionLength {
		verr.Add("description", "description must be 255 characters or less")
	}

	color := strings.TrimSpace(in.Color)
	if color != "" && !colorPattern.MatchString(color) {
		verr.Add("color", "color must be a 6-digit hex code")
	}

	icon := strings.TrimSpace(in.Icon)
	if utf8.RuneCountInString(icon) > MaxCategoryIconLength {
		verr.Add("icon", "icon must be 50 characters or less")
	}

	if verr.HasViolations() {
		return nil, verr
	}

	return &Category{
		Name:        name,
		Kind:        kind,
		Description: description,
		Color:       color,
		Icon:        icon,
	}, nil
}

// CategoryUsage pairs a category with aggregates over the transactions
// that reference it by name. Zero-valued when nothing references it.
type CategoryUsage struct {
	Category
	TransactionCount int64           `json:"transactionCount"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	AvgAmount        decimal.Decimal `json:"avgAmount"`
}

// CategoryRepository is the persistence contract for categories.
// GetByName matches case-insensitively and returns (nil, nil) when no
// row exists, since absence is the expected answer during uniqueness
// checks.
type CategoryRepository interface {
	List(ctx context.Context, kind *Kind) ([]*Category, error)
	GetByID(ctx context.Context, id int64) (*Category, error)
	GetByName(ctx context.Context, name string) (*Category, error)
	Create(ctx context.Context, c *Category) (*Category, error)
	Update(ctx context.Context, id int64, c *Category) (*Category, error)
	Delete(ctx context.Context, id int64) (bool, error)
	ListWithUsage(ctx context.Context, kind *Kind) ([]*CategoryUsage, error)
}
