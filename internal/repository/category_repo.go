package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"gastos-backend/internal/database"
	"gastos-backend/internal/domain"
)

const categoryColumns = "id, name, kind, description, color, icon, created_at, updated_at"

// CategoryRepository implements domain.CategoryRepository over either
// backend through the shared database handle.
type CategoryRepository struct {
	db *database.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *database.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List retrieves categories, optionally filtered by kind, ordered by name.
func (r *CategoryRepository) List(ctx context.Context, kind *domain.Kind) ([]*domain.Category, error) {
	query := "SELECT " + categoryColumns + " FROM categories"
	var args []any
	if kind != nil {
		query += " WHERE kind = ?"
		args = append(args, string(*kind))
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves one category or domain.ErrCategoryNotFound.
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+categoryColumns+" FROM categories WHERE id = ?", id)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query category: %w", err)
	}
	return c, nil
}

// GetByName retrieves a category by case-insensitive exact name match.
// Absence is not an error: it returns (nil, nil), since callers use
// this for uniqueness checks where no row is the expected answer.
// SQLite's LOWER folds ASCII only, so non-ASCII case pairs ("ÁREA" vs
// "área") match on Postgres but not on SQLite.
func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+categoryColumns+" FROM categories WHERE LOWER(name) = LOWER(?)", name)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query category by name: %w", err)
	}
	return c, nil
}

// Create inserts a validated category. A unique-constraint violation
// from either driver is normalized to domain.ErrCategoryNameTaken.
func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	now := time.Now().UTC().Truncate(time.Second)
	id, err := r.db.InsertID(ctx,
		`INSERT INTO categories (name, kind, description, color, icon, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.Name, string(c.Kind), c.Description, c.Color, c.Icon, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrCategoryNameTaken
		}
		return nil, fmt.Errorf("insert category: %w", err)
	}

	stored := *c
	stored.ID = id
	stored.CreatedAt = now
	stored.UpdatedAt = now
	return &stored, nil
}

// Update overwrites all mutable fields of the row matching id and
// returns the refreshed record.
func (r *CategoryRepository) Update(ctx context.Context, id int64, c *domain.Category) (*domain.Category, error) {
	now := time.Now().UTC().Truncate(time.Second)
	res, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, kind = ?, description = ?, color = ?, icon = ?, updated_at = ?
		 WHERE id = ?`,
		c.Name, string(c.Kind), c.Description, c.Color, c.Icon, now, id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrCategoryNameTaken
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	if affected == 0 {
		return nil, domain.ErrCategoryNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes the row and reports whether anything was deleted.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	return affected > 0, nil
}

// ListWithUsage returns every category joined with aggregates over the
// transactions referencing it by name: count, total and average amount,
// zero-valued when nothing references it. Ordered by name.
func (r *CategoryRepository) ListWithUsage(ctx context.Context, kind *domain.Kind) ([]*domain.CategoryUsage, error) {
	query := `SELECT c.id, c.name, c.kind, c.description, c.color, c.icon, c.created_at, c.updated_at,
			COUNT(t.id) AS transaction_count,
			COALESCE(SUM(t.amount_cents), 0) AS total_cents,
			COALESCE(AVG(t.amount_cents), 0) AS avg_cents
		FROM categories c
		LEFT JOIN transactions t ON t.category = c.name`
	var args []any
	if kind != nil {
		query += " WHERE c.kind = ?"
		args = append(args, string(*kind))
	}
	query += `
		GROUP BY c.id, c.name, c.kind, c.description, c.color, c.icon, c.created_at, c.updated_at
		ORDER BY c.name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query category usage: %w", err)
	}
	defer rows.Close()

	usages := []*domain.CategoryUsage{}
	for rows.Next() {
		var u domain.CategoryUsage
		var kindStr string
		var totalCents int64
		var avgCents float64
		err := rows.Scan(&u.ID, &u.Name, &kindStr, &u.Description, &u.Color, &u.Icon, &u.CreatedAt, &u.UpdatedAt,
			&u.TransactionCount, &totalCents, &avgCents)
		if err != nil {
			return nil, fmt.Errorf("scan category usage: %w", err)
		}
		u.Kind = domain.Kind(kindStr)
		u.TotalAmount = fromCents(totalCents)
		u.AvgAmount = centsToAverage(avgCents)
		usages = append(usages, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category usage: %w", err)
	}
	return usages, nil
}

// centsToAverage converts an averaged cents value (fractional, since
// AVG divides) back to a 2-decimal amount.
func centsToAverage(avgCents float64) decimal.Decimal {
	return decimal.NewFromFloat(avgCents).Shift(-2).Round(2)
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var c domain.Category
	var kind string
	if err := row.Scan(&c.ID, &c.Name, &kind, &c.Description, &c.Color, &c.Icon, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Kind = domain.Kind(kind)
	return &c, nil
}
