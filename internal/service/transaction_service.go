package service

import (
	"context"

	"gastos-backend/internal/domain"
)

// TransactionService handles transaction business logic: candidates are
// validated before they ever reach the repository.
type TransactionService struct {
	transactionRepo domain.TransactionRepository
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(transactionRepo domain.TransactionRepository) *TransactionService {
	return &TransactionService{transactionRepo: transactionRepo}
}

// List retrieves transactions matching the filters.
func (s *TransactionService) List(ctx context.Context, filters domain.TransactionFilters) ([]*domain.Transaction, error) {
	return s.transactionRepo.List(ctx, filters)
}

// Get retrieves one transaction by id.
func (s *TransactionService) Get(ctx context.Context, id int64) (*domain.Transaction, error) {
	return s.transactionRepo.GetByID(ctx, id)
}

// Create validates the candidate and persists it.
func (s *TransactionService) Create(ctx context.Context, in domain.TransactionInput) (*domain.Transaction, error) {
	tx, err := in.Validate()
	if err != nil {
		return nil, err
	}
	return s.transactionRepo.Create(ctx, tx)
}

// Update validates the candidate and overwrites the row matching id.
func (s *TransactionService) Update(ctx context.Context, id int64, in domain.TransactionInput) (*domain.Transaction, error) {
	tx, err := in.Validate()
	if err != nil {
		return nil, err
	}
	return s.transactionRepo.Update(ctx, id, tx)
}

// Delete removes a transaction, reporting whether a row was removed.
func (s *TransactionService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.transactionRepo.Delete(ctx, id)
}
