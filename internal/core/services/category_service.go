package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pfa-dev/personal_finance_app/internal/apperrors"
	"github.com/pfa-dev/personal_finance_app/internal/core/domain"
	portsrepo "github.com/pfa-dev/personal_finance_app/internal/core/ports/repositories"
	portssvc "github.com/pfa-dev/personal_finance_app/internal/core/ports/services"
	"github.com/pfa-dev/personal_finance_app/internal/dto"
	"github.com/pfa-dev/personal_finance_app/internal/middleware"
)

// categoryService serves both category namespaces; every call is scoped by
// the CategoryType discriminant. Name uniqueness (case-insensitive, per
// type) is enforced by the repository inside the mutation's atomic scope.
type categoryService struct {
	categoryRepo portsrepo.CategoryRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo portsrepo.CategoryRepository) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: repo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, categoryType domain.CategoryType, req dto.CreateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !categoryType.Valid() {
		return nil, fmt.Errorf("%w: unknown category type %q", apperrors.ErrValidation, categoryType)
	}

	now := time.Now().UTC()
	category := domain.Category{
		CategoryID:  uuid.NewString(),
		Type:        categoryType,
		Name:        req.Name,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to save category in repository", slog.String("error", err.Error()), slog.String("category_type", string(categoryType)))
		}
		return nil, err
	}

	logger.Info("Category created successfully", slog.String("category_id", category.CategoryID), slog.String("category_type", string(categoryType)))
	return &category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, categoryType domain.CategoryType, categoryID string) (*domain.Category, error) {
	if !categoryType.Valid() {
		return nil, fmt.Errorf("%w: unknown category type %q", apperrors.ErrValidation, categoryType)
	}
	return s.categoryRepo.FindCategoryByID(ctx, categoryType, categoryID)
}

func (s *categoryService) ListCategories(ctx context.Context, categoryType domain.CategoryType) ([]domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !categoryType.Valid() {
		return nil, fmt.Errorf("%w: unknown category type %q", apperrors.ErrValidation, categoryType)
	}

	categories, err := s.categoryRepo.ListCategories(ctx, categoryType)
	if err != nil {
		logger.Error("Failed to list categories from repository", slog.String("error", err.Error()), slog.String("category_type", string(categoryType)))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, categoryType domain.CategoryType, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !categoryType.Valid() {
		return nil, fmt.Errorf("%w: unknown category type %q", apperrors.ErrValidation, categoryType)
	}

	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryType, categoryID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		category.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		category.Description = *req.Description
		updated = true
	}

	if !updated {
		return category, nil
	}

	category.LastUpdatedAt = time.Now().UTC()
	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to update category in repository", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		}
		return nil, err
	}

	logger.Info("Category updated successfully", slog.String("category_id", categoryID), slog.String("category_type", string(categoryType)))
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, categoryType domain.CategoryType, categoryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !categoryType.Valid() {
		return fmt.Errorf("%w: unknown category type %q", apperrors.ErrValidation, categoryType)
	}

	if err := s.categoryRepo.DeleteCategory(ctx, categoryType, categoryID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to delete category in repository", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		}
		return err
	}

	logger.Info("Category deleted successfully", slog.String("category_id", categoryID), slog.String("category_type", string(categoryType)))
	return nil
}
