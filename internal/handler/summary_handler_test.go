package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"gastos-backend/internal/domain"
	"gastos-backend/internal/service"
	"gastos-backend/internal/testutil"
)

func newSummaryHandler() (*SummaryHandler, *testutil.MockTransactionRepository) {
	transactionRepo := testutil.NewMockTransactionRepository()
	summaryService := service.NewSummaryService(transactionRepo)
	return NewSummaryHandler(summaryService, true), transactionRepo
}

func TestSummary_ZeroDefaults(t *testing.T) {
	e := echo.New()
	handler, _ := newSummaryHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Summary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response SummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.TotalIncome != "0.00" || response.TotalExpenses != "0.00" || response.Balance != "0.00" {
		t.Errorf("Expected zero totals, got %+v", response)
	}
	if response.ExpensesByCategory == nil || response.IncomeByCategory == nil {
		t.Error("Expected empty arrays, got null")
	}
}

func TestSummary_WithData(t *testing.T) {
	e := echo.New()
	handler, transactionRepo := newSummaryHandler()

	transactionRepo.AddTransaction(&domain.Transaction{
		Kind:     domain.KindIncome,
		Amount:   decimal.RequireFromString("1000.00"),
		Category: "Salario",
		Date:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	transactionRepo.AddTransaction(&domain.Transaction{
		Kind:     domain.KindExpense,
		Amount:   decimal.RequireFromString("250.00"),
		Category: "Vivienda",
		Date:     time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Summary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response SummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Balance != "750.00" {
		t.Errorf("Expected balance 750.00, got %s", response.Balance)
	}
	if len(response.ExpensesByCategory) != 1 || response.ExpensesByCategory[0].Category != "Vivienda" {
		t.Errorf("Expected Vivienda breakdown, got %v", response.ExpensesByCategory)
	}
}

func TestSummary_InvalidStartDate(t *testing.T) {
	e := echo.New()
	handler, _ := newSummaryHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/summary?startDate=15-06-2025", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Summary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestMonthly_Success(t *testing.T) {
	e := echo.New()
	handler, transactionRepo := newSummaryHandler()

	transactionRepo.AddTransaction(&domain.Transaction{
		Kind:     domain.KindIncome,
		Amount:   decimal.RequireFromString("100.00"),
		Category: "Salario",
		Date:     time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/reports/monthly/2024", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("year")
	c.SetParamValues("2024")

	if err := handler.Monthly(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response []MonthlyTotalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(response))
	}
	if response[0].Month != 3 || response[0].Kind != "income" || response[0].Total != "100.00" {
		t.Errorf("Expected {3, income, 100.00}, got %+v", response[0])
	}
}

func TestMonthly_YearOutOfRange(t *testing.T) {
	e := echo.New()
	handler, _ := newSummaryHandler()

	for _, year := range []string{"1999", "2101", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/reports/monthly/"+year, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("year")
		c.SetParamValues(year)

		if err := handler.Monthly(c); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400 for year %s, got %d", year, rec.Code)
		}
	}
}
