package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gastos-backend/internal/domain"
	"gastos-backend/internal/testutil"
)

func addTx(repo *testutil.MockTransactionRepository, kind domain.Kind, amount, category, date string) {
	d, _ := time.Parse("2006-01-02", date)
	repo.AddTransaction(&domain.Transaction{
		Kind:     kind,
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Date:     d,
	})
}

func TestSummaryService_Statistics_Empty(t *testing.T) {
	transactionRepo := testutil.NewMockTransactionRepository()
	svc := NewSummaryService(transactionRepo)

	stats, err := svc.Statistics(context.Background(), domain.StatisticsFilters{})

	require.NoError(t, err)
	assert.True(t, stats.TotalIncome.IsZero())
	assert.True(t, stats.TotalExpenses.IsZero())
	assert.True(t, stats.Balance.IsZero())
	assert.NotNil(t, stats.ExpensesByCategory)
	assert.NotNil(t, stats.IncomeByCategory)
}

func TestSummaryService_Statistics_Balance(t *testing.T) {
	transactionRepo := testutil.NewMockTransactionRepository()
	svc := NewSummaryService(transactionRepo)

	addTx(transactionRepo, domain.KindIncome, "1500.00", "Salario", "2025-06-01")
	addTx(transactionRepo, domain.KindExpense, "400.00", "Vivienda", "2025-06-05")
	addTx(transactionRepo, domain.KindExpense, "100.00", "Ocio", "2025-06-10")

	stats, err := svc.Statistics(context.Background(), domain.StatisticsFilters{})

	require.NoError(t, err)
	assert.Equal(t, "1500.00", stats.TotalIncome.StringFixed(2))
	assert.Equal(t, "500.00", stats.TotalExpenses.StringFixed(2))
	assert.Equal(t, "1000.00", stats.Balance.StringFixed(2))
}

func TestSummaryService_Statistics_DateRange(t *testing.T) {
	transactionRepo := testutil.NewMockTransactionRepository()
	svc := NewSummaryService(transactionRepo)

	addTx(transactionRepo, domain.KindExpense, "10.00", "Ocio", "2025-01-15")
	addTx(transactionRepo, domain.KindExpense, "20.00", "Ocio", "2025-02-15")

	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	stats, err := svc.Statistics(context.Background(), domain.StatisticsFilters{StartDate: &start})

	require.NoError(t, err)
	assert.Equal(t, "20.00", stats.TotalExpenses.StringFixed(2))
}

func TestSummaryService_MonthlyData(t *testing.T) {
	transactionRepo := testutil.NewMockTransactionRepository()
	svc := NewSummaryService(transactionRepo)

	addTx(transactionRepo, domain.KindIncome, "100.00", "Salario", "2024-03-05")
	addTx(transactionRepo, domain.KindIncome, "200.00", "Salario", "2025-03-05")

	totals, err := svc.MonthlyData(context.Background(), 2024)

	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, 3, totals[0].Month)
	assert.Equal(t, domain.KindIncome, totals[0].Kind)
	assert.Equal(t, "100.00", totals[0].Total.StringFixed(2))
}

func TestValidReportYear(t *testing.T) {
	for _, y := range []int{2000, 2024, 2100} {
		assert.True(t, ValidReportYear(y), "year %d", y)
	}
	for _, y := range []int{0, 1999, 2101, -5} {
		assert.False(t, ValidReportYear(y), "year %d", y)
	}
}
