// Package testutil provides in-memory mock repositories for service
// and handler tests.
package testutil

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gastos-backend/internal/domain"
)

// MockTransactionRepository is a mock implementation of domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions map[int64]*domain.Transaction
	NextID       int64
	Err          error
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[int64]*domain.Transaction),
		NextID:       1,
	}
}

// AddTransaction adds a transaction to the mock repository (helper for tests)
func (m *MockTransactionRepository) AddTransaction(tx *domain.Transaction) *domain.Transaction {
	if tx.ID == 0 {
		tx.ID = m.NextID
		m.NextID++
	} else if tx.ID >= m.NextID {
		m.NextID = tx.ID + 1
	}
	m.Transactions[tx.ID] = tx
	return tx
}

// List retrieves transactions matching the filters, newest first
func (m *MockTransactionRepository) List(ctx context.Context, filters domain.TransactionFilters) ([]*domain.Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := []*domain.Transaction{}
	for _, tx := range m.Transactions {
		if filters.Kind != nil && tx.Kind != *filters.Kind {
			continue
		}
		if filters.Category != nil && tx.Category != *filters.Category {
			continue
		}
		if filters.StartDate != nil && tx.Date.Before(*filters.StartDate) {
			continue
		}
		if filters.EndDate != nil && tx.Date.After(*filters.EndDate) {
			continue
		}
		result = append(result, tx)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	if filters.Limit != nil && len(result) > *filters.Limit {
		result = result[:*filters.Limit]
	}
	return result, nil
}

// GetByID retrieves a transaction by ID
func (m *MockTransactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if tx, ok := m.Transactions[id]; ok {
		return tx, nil
	}
	return nil, domain.ErrTransactionNotFound
}

// Create stores a new transaction
func (m *MockTransactionRepository) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	stored := *tx
	stored.ID = m.NextID
	m.NextID++
	now := time.Now().UTC().Truncate(time.Second)
	stored.CreatedAt = now
	stored.UpdatedAt = now
	m.Transactions[stored.ID] = &stored
	return &stored, nil
}

// Update overwrites an existing transaction
func (m *MockTransactionRepository) Update(ctx context.Context, id int64, tx *domain.Transaction) (*domain.Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	existing, ok := m.Transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	updated := *tx
	updated.ID = id
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	m.Transactions[id] = &updated
	return &updated, nil
}

// Delete removes a transaction and reports whether it existed
func (m *MockTransactionRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	if _, ok := m.Transactions[id]; !ok {
		return false, nil
	}
	delete(m.Transactions, id)
	return true, nil
}

// Statistics computes totals and breakdowns from the stored transactions
func (m *MockTransactionRepository) Statistics(ctx context.Context, filters domain.StatisticsFilters) (*domain.Statistics, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	stats := &domain.Statistics{
		ExpensesByCategory: []domain.CategoryTotal{},
		IncomeByCategory:   []domain.CategoryTotal{},
	}
	incomeByCat := map[string]decimal.Decimal{}
	expensesByCat := map[string]decimal.Decimal{}
	for _, tx := range m.Transactions {
		if filters.StartDate != nil && tx.Date.Before(*filters.StartDate) {
			continue
		}
		if filters.EndDate != nil && tx.Date.After(*filters.EndDate) {
			continue
		}
		switch tx.Kind {
		case domain.KindIncome:
			stats.TotalIncome = stats.TotalIncome.Add(tx.Amount)
			incomeByCat[tx.Category] = incomeByCat[tx.Category].Add(tx.Amount)
		case domain.KindExpense:
			stats.TotalExpenses = stats.TotalExpenses.Add(tx.Amount)
			expensesByCat[tx.Category] = expensesByCat[tx.Category].Add(tx.Amount)
		}
	}
	stats.Balance = stats.TotalIncome.Sub(stats.TotalExpenses)
	for cat, total := range expensesByCat {
		stats.ExpensesByCategory = append(stats.ExpensesByCategory, domain.CategoryTotal{Category: cat, Total: total})
	}
	for cat, total := range incomeByCat {
		stats.IncomeByCategory = append(stats.IncomeByCategory, domain.CategoryTotal{Category: cat, Total: total})
	}
	sort.Slice(stats.ExpensesByCategory, func(i, j int) bool {
		return stats.ExpensesByCategory[i].Total.GreaterThan(stats.ExpensesByCategory[j].Total)
	})
	sort.Slice(stats.IncomeByCategory, func(i, j int) bool {
		return stats.IncomeByCategory[i].Total.GreaterThan(stats.IncomeByCategory[j].Total)
	})
	return stats, nil
}

// MonthlyTotals computes per-month, per-kind sums for one year
func (m *MockTransactionRepository) MonthlyTotals(ctx context.Context, year int) ([]domain.MonthlyTotal, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	type key struct {
		month int
		kind  domain.Kind
	}
	sums := map[key]decimal.Decimal{}
	for _, tx := range m.Transactions {
		if tx.Date.Year() != year {
			continue
		}
		k := key{month: int(tx.Date.Month()), kind: tx.Kind}
		sums[k] = sums[k].Add(tx.Amount)
	}
	totals := []domain.MonthlyTotal{}
	for k, total := range sums {
		totals = append(totals, domain.MonthlyTotal{Month: k.month, Kind: k.kind, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Month != totals[j].Month {
			return totals[i].Month < totals[j].Month
		}
		return totals[i].Kind < totals[j].Kind
	})
	return totals, nil
}

// CountByCategory counts transactions referencing the category name
func (m *MockTransactionRepository) CountByCategory(ctx context.Context, category string) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	var count int64
	for _, tx := range m.Transactions {
		if tx.Category == category {
			count++
		}
	}
	return count, nil
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[int64]*domain.Category
	NextID     int64
	Err        error
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[int64]*domain.Category),
		NextID:     1,
	}
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockCategoryRepository) AddCategory(c *domain.Category) *domain.Category {
	if c.ID == 0 {
		c.ID = m.NextID
		m.NextID++
	} else if c.ID >= m.NextID {
		m.NextID = c.ID + 1
	}
	m.Categories[c.ID] = c
	return c
}

// List retrieves categories, optionally filtered by kind, ordered by name
func (m *MockCategoryRepository) List(ctx context.Context, kind *domain.Kind) ([]*domain.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := []*domain.Category{}
	for _, c := range m.Categories {
		if kind != nil && c.Kind != *kind {
			continue
		}
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// GetByID retrieves a category by ID
func (m *MockCategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if c, ok := m.Categories[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// GetByName retrieves a category by case-insensitive name, (nil, nil) on absence
func (m *MockCategoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, c := range m.Categories {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, nil
}

// Create stores a new category, enforcing name uniqueness
func (m *MockCategoryRepository) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, existing := range m.Categories {
		if strings.EqualFold(existing.Name, c.Name) {
			return nil, domain.ErrCategoryNameTaken
		}
	}
	stored := *c
	stored.ID = m.NextID
	m.NextID++
	now := time.Now().UTC().Truncate(time.Second)
	stored.CreatedAt = now
	stored.UpdatedAt = now
	m.Categories[stored.ID] = &stored
	return &stored, nil
}

// Update overwrites an existing category
func (m *MockCategoryRepository) Update(ctx context.Context, id int64, c *domain.Category) (*domain.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	existing, ok := m.Categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	for _, other := range m.Categories {
		if other.ID != id && strings.EqualFold(other.Name, c.Name) {
			return nil, domain.ErrCategoryNameTaken
		}
	}
	updated := *c
	updated.ID = id
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	m.Categories[id] = &updated
	return &updated, nil
}

// Delete removes a category and reports whether it existed
func (m *MockCategoryRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	if _, ok := m.Categories[id]; !ok {
		return false, nil
	}
	delete(m.Categories, id)
	return true, nil
}

// ListWithUsage returns categories with zero usage aggregates. Tests
// exercising real aggregation use the SQL repositories instead.
func (m *MockCategoryRepository) ListWithUsage(ctx context.Context, kind *domain.Kind) ([]*domain.CategoryUsage, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	categories, err := m.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	usages := make([]*domain.CategoryUsage, len(categories))
	for i, c := range categories {
		usages[i] = &domain.CategoryUsage{Category: *c}
	}
	return usages, nil
}
