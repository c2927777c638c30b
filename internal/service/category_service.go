package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"gastos-backend/internal/domain"
)

// CategoryService handles category business logic: validation,
// name uniqueness, and the in-use guard on deletion.
type CategoryService struct {
	categoryRepo    domain.CategoryRepository
	transactionRepo domain.TransactionRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo domain.CategoryRepository, transactionRepo domain.TransactionRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, transactionRepo: transactionRepo}
}

// List retrieves categories, optionally filtered by kind.
func (s *CategoryService) List(ctx context.Context, kind *domain.Kind) ([]*domain.Category, error) {
	return s.categoryRepo.List(ctx, kind)
}

// Get retrieves one category by id.
func (s *CategoryService) Get(ctx context.Context, id int64) (*domain.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

// ListWithUsage retrieves categories with their usage aggregates.
func (s *CategoryService) ListWithUsage(ctx context.Context, kind *domain.Kind) ([]*domain.CategoryUsage, error) {
	return s.categoryRepo.ListWithUsage(ctx, kind)
}

// Create validates the candidate, rejects a name already taken by any
// category (case-insensitive), then persists it.
func (s *CategoryService) Create(ctx context.Context, in domain.CategoryInput) (*domain.Category, error) {
	category, err := in.Validate()
	if err != nil {
		return nil, err
	}

	existing, err := s.categoryRepo.GetByName(ctx, category.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrCategoryNameTaken
	}

	return s.categoryRepo.Create(ctx, category)
}

// Update validates the candidate and overwrites the row matching id.
// The new name may collide only with the row being updated itself.
func (s *CategoryService) Update(ctx context.Context, id int64, in domain.CategoryInput) (*domain.Category, error) {
	category, err := in.Validate()
	if err != nil {
		return nil, err
	}

	existing, err := s.categoryRepo.GetByName(ctx, category.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, domain.ErrCategoryNameTaken
	}

	return s.categoryRepo.Update(ctx, id, category)
}

// Delete removes a category unless transactions still reference its
// name, in which case it fails with the usage count. The count and the
// delete run as two separate statements, not one transaction: a
// concurrent insert referencing the name can slip between them. That
// matches the original system's behavior.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.transactionRepo.CountByCategory(ctx, category.Name)
	if err != nil {
		return err
	}
	if count > 0 {
		return &domain.CategoryInUseError{Count: count}
	}

	deleted, err := s.categoryRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// InitializeDefaults idempotently ensures the default catalog exists,
// creating only the categories missing by name. Individual duplicate
// failures are logged and skipped so the rest of the catalog still
// gets created.
func (s *CategoryService) InitializeDefaults(ctx context.Context) error {
	for _, def := range DefaultCategories {
		existing, err := s.categoryRepo.GetByName(ctx, def.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		if _, err := s.categoryRepo.Create(ctx, &def); err != nil {
			if errors.Is(err, domain.ErrCategoryNameTaken) {
				log.Warn().Str("name", def.Name).Msg("Default category already exists, skipping")
				continue
			}
			return err
		}
		log.Info().Str("name", def.Name).Str("kind", string(def.Kind)).Msg("Default category created")
	}
	return nil
}
