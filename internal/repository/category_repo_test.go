package repository

import (
	"context"
	"errors"
	"testing"

	"gastos-backend/internal/domain"
)

func TestCategoryCreateAndGetByID(t *testing.T) {
	repo := NewCategoryRepository(newTestDB(t))

	stored := mustCreateCategory(t, repo, &domain.Category{
		Name:        "Alimentación",
		Kind:        domain.KindExpense,
		Description: "Supermercado y restaurantes",
		Color:       "#FF5733",
		Icon:        "🍽️",
	})

	if stored.ID == 0 {
		t.Error("Expected generated id, got 0")
	}

	got, err := repo.GetByID(context.Background(), stored.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got.Name != "Alimentación" {
		t.Errorf("Expected name Alimentación, got %s", got.Name)
	}
	if got.Kind != domain.KindExpense {
		t.Errorf("Expected kind expense, got %s", got.Kind)
	}
	if got.Color != "#FF5733" {
		t.Errorf("Expected color #FF5733, got %s", got.Color)
	}
}

func TestCategoryGetByID_NotFound(t *testing.T) {
	repo := NewCategoryRepository(newTestDB(t))

	_, err := repo.GetByID(context.Background(), 42)
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryGetByName_CaseInsensitive(t *testing.T) {
	repo := NewCategoryRepository(newTestDB(t))

	mustCreateCategory(t, repo, testCategory("Transporte", domain.KindExpense))

	got, err := repo.GetByName(context.Background(), "transporte")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got == nil {
		t.Fatal("Expected case-insensitive match, got nil")
	}
	if got.Name != "Transporte" {
		t.Errorf("Expected stored casing, got %s", got.Name)
	}
}

func TestCategoryGetByName_AbsenceIsNotError(t *testing.T) {
	repo := NewCategoryRepository(newTestDB(t))

	got, err := repo.GetByName(context.Background(), "Inexistente")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for absent name, got %+v", got)
	}
}

func TestCategoryCreate_DuplicateName(t *testing.T) {
	repo := NewCategoryRepository(newTestDB(t))

	mustCreateCategory(t, repo, testCategory("Ocio", domain.KindExpense))

	_, err := repo.Create(context.Background(), testCategory("Ocio", domain.KindExpense))
	if !errors.Is(err, domain.ErrCategoryNameTaken) {
		t.Errorf("Expected ErrCategoryNameTaken, got %v", err)
	}
}

func TestCategoryList_FilterByKind(t *testing.T) {
	repo := NewCategoryRepository(newTestDB(t))

	mustCreateCategory(t, repo, testCategory("Salario", domain.KindIncome))
	mustCreateCategory(t, repo, testCategory("Ocio", domain.KindExpense))
	mustCreateCategory(t, repo, testCategory("Alimentación", domain.KindExpense))

	kind := domain.KindExpense
	got, err := repo.List(context.Background(), &kind)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 expense categories, got %d", len(got))
	}
	// Ordered by name
	if got[0].Name != "Alimentación" || got[1].Name != "Ocio" {
		t.Errorf("Expected name ordering, got %s then %s", got[0].Name, got[1].Name)
	}

	all, err := repo.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 categories, got %d", len(all))
	}
}

func TestCategoryUpdate(t *testing.T) {
	repo := NewCategoryRepository(newTestDB(t))

	stored := mustCreateCategory(t, repo, testCategory("Ocio", domain.KindExpense))

	updated, err := repo.Update(context.Background(), stored.ID, &domain.Category{
		Name:        "Entretenimiento",
		Kind:        domain.KindExpense,
		Description: "Cine y salidas",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.Name != "Entretenimiento" {
		t.Errorf("Expected renamed category, got %s", updated.Name)
	}
	if updated.Description != "Cine y salidas" {
		t.Errorf("Expected updated description, got %s", updated.Description)
	}
}

func TestCategoryUpdate_NotFound(t *testing.T) {
	repo := NewCategoryRepository(newTestDB(t))

	_, err := repo.Update(context.Background(), 77, testCategory("Ocio", domain.KindExpense))
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryUpdate_DuplicateName(t *testing.T) {
	repo := NewCategoryRepository(newTestDB(t))

	mustCreateCategory(t, repo, testCategory("Ocio", domain.KindExpense))
	other := mustCreateCategory(t, repo, testCategory("Transporte", domain.KindExpense))

	_, err := repo.Update(context.Background(), other.ID, testCategory("Ocio", domain.KindExpense))
	if !errors.Is(err, domain.ErrCategoryNameTaken) {
		t.Errorf("Expected ErrCategoryNameTaken, got %v", err)
	}
}

func TestCategoryDelete_Twice(t *testing.T) {
	repo := NewCategoryRepository(newTestDB(t))

	stored := mustCreateCategory(t, repo, testCategory("Ocio", domain.KindExpense))

	deleted, err := repo.Delete(context.Background(), stored.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !deleted {
		t.Error("Expected first delete to report true")
	}

	deleted, err = repo.Delete(context.Background(), stored.ID)
	if err != nil {
		t.Fatalf("Expected no error on second delete, got %v", err)
	}
	if deleted {
		t.Error("Expected second delete to report false")
	}
}

func TestCategoryRename_DoesNotCascade(t *testing.T) {
	db := newTestDB(t)
	categoryRepo := NewCategoryRepository(db)
	transactionRepo := NewTransactionRepository(db)

	stored := mustCreateCategory(t, categoryRepo, testCategory("Ocio", domain.KindExpense))
	tx := mustCreateTransaction(t, transactionRepo, testTransaction(domain.KindExpense, "25.00", "Ocio", "2025-06-01"))

	_, err := categoryRepo.Update(context.Background(), stored.ID, testCategory("Entretenimiento", domain.KindExpense))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got, err := transactionRepo.GetByID(context.Background(), tx.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got.Category != "Ocio" {
		t.Errorf("Expected transaction to keep old category name, got %s", got.Category)
	}
}

func TestCategoryListWithUsage(t *testing.T) {
	db := newTestDB(t)
	categoryRepo := NewCategoryRepository(db)
	transactionRepo := NewTransactionRepository(db)

	mustCreateCategory(t, categoryRepo, testCategory("Ocio", domain.KindExpense))
	mustCreateCategory(t, categoryRepo, testCategory("Transporte", domain.KindExpense))

	mustCreateTransaction(t, transactionRepo, testTransaction(domain.KindExpense, "10.00", "Ocio", "2025-06-01"))
	mustCreateTransaction(t, transactionRepo, testTransaction(domain.KindExpense, "30.00", "Ocio", "2025-06-02"))

	usages, err := categoryRepo.ListWithUsage(context.Background(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(usages) != 2 {
		t.Fatalf("Expected 2 usage rows, got %d", len(usages))
	}

	// Ordered by name: Ocio before Transporte
	ocio := usages[0]
	if ocio.Name != "Ocio" {
		t.Fatalf("Expected Ocio first, got %s", ocio.Name)
	}
	if ocio.TransactionCount != 2 {
		t.Errorf("Expected 2 transactions, got %d", ocio.TransactionCount)
	}
	if ocio.TotalAmount.StringFixed(2) != "40.00" {
		t.Errorf("Expected total 40.00, got %s", ocio.TotalAmount.StringFixed(2))
	}
	if ocio.AvgAmount.StringFixed(2) != "20.00" {
		t.Errorf("Expected average 20.00, got %s", ocio.AvgAmount.StringFixed(2))
	}

	transporte := usages[1]
	if transporte.TransactionCount != 0 {
		t.Errorf("Expected 0 transactions, got %d", transporte.TransactionCount)
	}
	if transporte.TotalAmount.StringFixed(2) != "0.00" {
		t.Errorf("Expected zero total, got %s", transporte.TotalAmount.StringFixed(2))
	}
}
