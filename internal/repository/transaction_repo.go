package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gastos-backend/internal/database"
	"gastos-backend/internal/domain"
)

const transactionColumns = "id, kind, amount_cents, description, category, date, created_at, updated_at"

// TransactionRepository implements domain.TransactionRepository over
// either backend through the shared database handle.
type TransactionRepository struct {
	db *database.DB
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *database.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// List retrieves transactions matching all supplied filters, newest
// date first. An empty result is an empty slice, never an error.
func (r *TransactionRepository) List(ctx context.Context, filters domain.TransactionFilters) ([]*domain.Transaction, error) {
	query := "SELECT " + transactionColumns + " FROM transactions"
	var conds []string
	var args []any

	if filters.Kind != nil {
		conds = append(conds, "kind = ?")
		args = append(args, string(*filters.Kind))
	}
	if filters.Category != nil {
		conds = append(conds, "category = ?")
		args = append(args, *filters.Category)
	}
	if filters.StartDate != nil {
		conds = append(conds, "date >= ?")
		args = append(args, *filters.StartDate)
	}
	if filters.EndDate != nil {
		conds = append(conds, "date <= ?")
		args = append(args, *filters.EndDate)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date DESC, created_at DESC, id DESC"
	if filters.Limit != nil && *filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, *filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	transactions := []*domain.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return transactions, nil
}

// GetByID retrieves one transaction or domain.ErrTransactionNotFound.
func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+transactionColumns+" FROM transactions WHERE id = ?", id)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query transaction: %w", err)
	}
	return tx, nil
}

// Create inserts a validated transaction and returns the stored record
// with its generated id and server-assigned timestamps.
func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	now := time.Now().UTC().Truncate(time.Second)
	id, err := r.db.InsertID(ctx,
		`INSERT INTO transactions (kind, amount_cents, description, category, date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(tx.Kind), toCents(tx.Amount), tx.Description, tx.Category, tx.Date, now, now)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	stored := *tx
	stored.ID = id
	stored.CreatedAt = now
	stored.UpdatedAt = now
	return &stored, nil
}

// Update overwrites all mutable fields of the row matching id and
// returns the refreshed record, or domain.ErrTransactionNotFound.
func (r *TransactionRepository) Update(ctx context.Context, id int64, tx *domain.Transaction) (*domain.Transaction, error) {
	now := time.Now().UTC().Truncate(time.Second)
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET kind = ?, amount_cents = ?, description = ?, category = ?, date = ?, updated_at = ?
		 WHERE id = ?`,
		string(tx.Kind), toCents(tx.Amount), tx.Description, tx.Category, tx.Date, now, id)
	if err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	if affected == 0 {
		return nil, domain.ErrTransactionNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes the row and reports whether anything was deleted.
// Deleting a missing id is not an error.
func (r *TransactionRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete transaction: %w", err)
	}
	return affected > 0, nil
}

// Statistics aggregates totals and per-category breakdowns over the
// date range. Totals default to zero and breakdowns to empty slices
// when nothing matches.
func (r *TransactionRepository) Statistics(ctx context.Context, filters domain.StatisticsFilters) (*domain.Statistics, error) {
	var conds []string
	var args []any
	if filters.StartDate != nil {
		conds = append(conds, "date >= ?")
		args = append(args, *filters.StartDate)
	}
	if filters.EndDate != nil {
		conds = append(conds, "date <= ?")
		args = append(args, *filters.EndDate)
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var incomeCents, expenseCents int64
	err := r.db.QueryRowContext(ctx,
		`SELECT
			COALESCE(SUM(CASE WHEN kind = 'income' THEN amount_cents ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN kind = 'expense' THEN amount_cents ELSE 0 END), 0)
		 FROM transactions`+where,
		args...).Scan(&incomeCents, &expenseCents)
	if err != nil {
		return nil, fmt.Errorf("query totals: %w", err)
	}

	stats := &domain.Statistics{
		TotalIncome:        fromCents(incomeCents),
		TotalExpenses:      fromCents(expenseCents),
		Balance:            fromCents(incomeCents - expenseCents),
		ExpensesByCategory: []domain.CategoryTotal{},
		IncomeByCategory:   []domain.CategoryTotal{},
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT kind, category, SUM(amount_cents) AS total
		 FROM transactions`+where+`
		 GROUP BY kind, category
		 ORDER BY total DESC`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("query breakdowns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind, category string
		var cents int64
		if err := rows.Scan(&kind, &category, &cents); err != nil {
			return nil, fmt.Errorf("scan breakdown: %w", err)
		}
		entry := domain.CategoryTotal{Category: category, Total: fromCents(cents)}
		if domain.Kind(kind) == domain.KindExpense {
			stats.ExpensesByCategory = append(stats.ExpensesByCategory, entry)
		} else {
			stats.IncomeByCategory = append(stats.IncomeByCategory, entry)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate breakdowns: %w", err)
	}
	return stats, nil
}

// MonthlyTotals returns {month, kind, total} rows for the given year,
// grouped by month and kind. Months with no transactions are absent.
func (r *TransactionRepository) MonthlyTotals(ctx context.Context, year int) ([]domain.MonthlyTotal, error) {
	d := r.db.Dialect()
	query := fmt.Sprintf(
		`SELECT %s AS month, kind, SUM(amount_cents) AS total
		 FROM transactions
		 WHERE %s = ?
		 GROUP BY month, kind
		 ORDER BY month, kind`,
		d.MonthExpr("date"), d.YearExpr("date"))

	rows, err := r.db.QueryContext(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("query monthly totals: %w", err)
	}
	defer rows.Close()

	totals := []domain.MonthlyTotal{}
	for rows.Next() {
		var month int
		var kind string
		var cents int64
		if err := rows.Scan(&month, &kind, &cents); err != nil {
			return nil, fmt.Errorf("scan monthly total: %w", err)
		}
		totals = append(totals, domain.MonthlyTotal{
			Month: month,
			Kind:  domain.Kind(kind),
			Total: fromCents(cents),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monthly totals: %w", err)
	}
	return totals, nil
}

// CountByCategory counts transactions whose category string equals the
// given name exactly.
func (r *TransactionRepository) CountByCategory(ctx context.Context, category string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions WHERE category = ?", category).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count transactions by category: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var tx domain.Transaction
	var kind string
	var cents int64
	if err := row.Scan(&tx.ID, &kind, &cents, &tx.Description, &tx.Category, &tx.Date, &tx.CreatedAt, &tx.UpdatedAt); err != nil {
		return nil, err
	}
	tx.Kind = domain.Kind(kind)
	tx.Amount = fromCents(cents)
	return &tx, nil
}

// toCents converts a validated 2-decimal amount to integer cents.
func toCents(amount decimal.Decimal) int64 {
	return amount.Shift(2).IntPart()
}

func fromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
