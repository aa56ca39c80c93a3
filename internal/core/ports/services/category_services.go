package services

import (
	"context"

	"github.com/pfa-dev/personal_finance_app/internal/core/domain"
	"github.com/pfa-dev/personal_finance_app/internal/dto"
)

// CategorySvcFacade exposes category operations for both namespaces; the
// CategoryType argument selects income or expense.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, categoryType domain.CategoryType, req dto.CreateCategoryRequest) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, categoryType domain.CategoryType, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, categoryType domain.CategoryType) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, categoryType domain.CategoryType, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, categoryType domain.CategoryType, categoryID string) error
}
