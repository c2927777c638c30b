package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"gastos-backend/internal/database"
	"gastos-backend/internal/domain"
)

// newTestDB opens an in-memory SQLite database with the schema applied.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Connect(context.Background(), database.Config{
		Driver:     "sqlite",
		SQLitePath: ":memory:",
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}
	return db
}

func testTransaction(kind domain.Kind, amount, category, date string) *domain.Transaction {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return &domain.Transaction{
		Kind:        kind,
		Amount:      decimal.RequireFromString(amount),
		Description: "test " + category,
		Category:    category,
		Date:        d,
	}
}

func mustCreateTransaction(t *testing.T, repo *TransactionRepository, tx *domain.Transaction) *domain.Transaction {
	t.Helper()
	stored, err := repo.Create(context.Background(), tx)
	if err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}
	return stored
}

func testCategory(name string, kind domain.Kind) *domain.Category {
	return &domain.Category{
		Name: name,
		Kind: kind,
	}
}

func mustCreateCategory(t *testing.T, repo *CategoryRepository, c *domain.Category) *domain.Category {
	t.Helper()
	stored, err := repo.Create(context.Background(), c)
	if err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	return stored
}
