package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/mapper"
	"github.com/imanage/imanage-api/internal/repository"
	"go.uber.org/zap"
)

// ExpenseCategoryService manages expense categories. Predefined categories
// are seeded by migration and keep their name forever.
type ExpenseCategoryService struct {
	categoryRepo *repository.ExpenseCategoryRepository
	logger       *zap.Logger
}

func NewExpenseCategoryService(categoryRepo *repository.ExpenseCategoryRepository, logger *zap.Logger) *ExpenseCategoryService {
	return &ExpenseCategoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

func (s *ExpenseCategoryService) load(ctx context.Context, id uuid.UUID) (*domain.ExpenseCategory, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense category: %w", err)
	}
	if category == nil {
		return nil, domain.NewNotFoundError("expense category")
	}
	return category, nil
}

func (s *ExpenseCategoryService) Create(ctx context.Context, req *domain.ExpenseCategoryRequest) (*domain.ExpenseCategoryDTO, error) {
	category := &domain.ExpenseCategory{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		IsCustom:    true,
	}

	if err := s.categoryRepo.Create(ctx, category, nil); err != nil {
		return nil, fmt.Errorf("failed to create expense category: %w", err)
	}

	dto := mapper.ToExpenseCategoryDTO(category)
	return &dto, nil
}

func (s *ExpenseCategoryService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ExpenseCategoryDTO, error) {
	category, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToExpenseCategoryDTO(category)
	return &dto, nil
}

// Update edits a category. Predefined categories may only change their
// description.
func (s *ExpenseCategoryService) Update(ctx context.Context, id uuid.UUID, req *domain.ExpenseCategoryRequest) (*domain.ExpenseCategoryDTO, error) {
	category, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if !category.IsCustom && name != category.Name {
		return nil, domain.NewValidationError("name", fmt.Sprintf("Predefined category %q cannot be renamed", category.Name))
	}

	category.Name = name
	category.Description = req.Description
	if err := s.categoryRepo.Update(ctx, category, nil); err != nil {
		return nil, fmt.Errorf("failed to update expense category: %w", err)
	}

	dto := mapper.ToExpenseCategoryDTO(category)
	return &dto, nil
}

// Delete removes a custom category. Transactions store the category name, so
// rows already booked under it are left untouched.
func (s *ExpenseCategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	category, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !category.IsCustom {
		return domain.NewConflictError(fmt.Sprintf("Predefined category %q cannot be deleted", category.Name))
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete expense category: %w", err)
	}
	return nil
}

func (s *ExpenseCategoryService) List(ctx context.Context) ([]domain.ExpenseCategoryDTO, error) {
	categories, err := s.categoryRepo.List(ctx, repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list expense categories: %w", err)
	}

	dtos := make([]domain.ExpenseCategoryDTO, len(categories))
	for i := range categories {
		dtos[i] = mapper.ToExpenseCategoryDTO(&categories[i])
	}
	return dtos, nil
}
