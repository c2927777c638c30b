package service

import (
	"context"

	"gastos-backend/internal/domain"
)

// Year bounds accepted by the monthly report.
const (
	MinReportYear = 2000
	MaxReportYear = 2100
)

// SummaryService exposes the cross-cutting aggregation queries built
// on the transaction repository.
type SummaryService struct {
	transactionRepo domain.TransactionRepository
}

// NewSummaryService creates a new SummaryService.
func NewSummaryService(transactionRepo domain.TransactionRepository) *SummaryService {
	return &SummaryService{transactionRepo: transactionRepo}
}

// Statistics computes totals, balance and per-category breakdowns for
// the given date range.
func (s *SummaryService) Statistics(ctx context.Context, filters domain.StatisticsFilters) (*domain.Statistics, error) {
	return s.transactionRepo.Statistics(ctx, filters)
}

// MonthlyData returns per-month, per-kind totals for one calendar
// year. Months without transactions are absent from the result.
func (s *SummaryService) MonthlyData(ctx context.Context, year int) ([]domain.MonthlyTotal, error) {
	return s.transactionRepo.MonthlyTotals(ctx, year)
}

// ValidReportYear reports whether year is inside the accepted range.
func ValidReportYear(year int) bool {
	return year >= MinReportYear && year <= MaxReportYear
}
