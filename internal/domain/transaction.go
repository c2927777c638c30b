package domain

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Kind discriminates money flowing in from money flowing out. Both
// transactions and categories carry one.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Valid reports whether k is one of the two known kinds.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Transaction is a single recorded income or expense. Category is a
// loose string reference to Category.Name, not a foreign key: renaming
// a category does not touch existing transactions.
type Transaction struct {
	ID          int64           `json:"id"`
	Kind        Kind            `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

const (
	MaxDescriptionLength  = 255
	MaxCategoryNameLength = 100
)

// TransactionInput is an unvalidated candidate as it arrives from the
// API. Amount and Date stay strings until Validate coerces them.
type TransactionInput struct {
	Kind        string `json:"kind"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Date        string `json:"date"`
}

// Validate checks every field and returns a normalized Transaction, or
// a *ValidationError listing all violations. It never fails fast: a
// candidate with three bad fields reports three messages.
func (in TransactionInput) Validate() (*Transaction, error) {
	verr := &ValidationError{}

	kind := Kind(in.Kind)
	if !kind.Valid() {
		verr.Add("kind", "kind must be income or expense")
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	switch {
	case err != nil:
		verr.Add("amount", "amount must be a number")
	case !amount.IsPositive():
		verr.Add("amount", "amount must be greater than 0")
	case amount.Exponent() < -2:
		verr.Add("amount", "amount cannot have more than 2 decimal places")
	}

	// Length limits count characters, not bytes: accented names like
	// "Alimentación" must not burn two units per rune.
	description := strings.TrimSpace(in.Description)
	if description == "" {
		verr.Add("description", "description is required")
	} else if utf8.RuneCountInString(description) > MaxDescriptionLength {
		verr.Add("description", "description must be 255 characters or less")
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		verr.Add("category", "category is required")
	} else if utf8.RuneCountInString(category) > MaxCategoryNameLength {
		verr.Add("category", "category must be 100 characters or less")
	}

	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		verr.Add("date", "date must be a valid date in YYYY-MM-DD format")
	}

	if verr.HasViolations() {
		return nil, verr
	}

	return &Transaction{
		Kind:        kind,
		Amount:      amount,
		Description: description,
		Category:    category,
		Date:        date,
	}, nil
}

// TransactionFilters narrows a listing. Nil fields are ignored; the
// supplied ones are AND-combined.
type TransactionFilters struct {
	Kind      *Kind
	Category  *string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     *int
}

// StatisticsFilters bounds the summary aggregation by date.
type StatisticsFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// TransactionRepository is the persistence contract for transactions.
type TransactionRepository interface {
	List(ctx context.Context, filters TransactionFilters) ([]*Transaction, error)
	GetByID(ctx context.Context, id int64) (*Transaction, error)
	Create(ctx context.Context, tx *Transaction) (*Transaction, error)
	Update(ctx context.Context, id int64, tx *Transaction) (*Transaction, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Statistics(ctx context.Context, filters StatisticsFilters) (*Statistics, error)
	MonthlyTotals(ctx context.Context, year int) ([]MonthlyTotal, error)
	CountByCategory(ctx context.Context, category string) (int64, error)
}
