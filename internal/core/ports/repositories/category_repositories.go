package repositories

import (
	"context"

	"github.com/pfa-dev/personal_finance_app/internal/core/domain"
)

// CategoryRepository defines storage operations for both category
// namespaces. Every method takes the CategoryType discriminant; the two
// namespaces share nothing but the schema.
type CategoryRepository interface {
	// SaveCategory persists a new category. It fails with
	// apperrors.ErrConflict when another category of the same type already
	// uses the name under case-insensitive comparison; the uniqueness check
	// and the insert run in one atomic scope.
	SaveCategory(ctx context.Context, category domain.Category) error

	// FindCategoryByID retrieves a category within the given namespace.
	FindCategoryByID(ctx context.Context, categoryType domain.CategoryType, categoryID string) (*domain.Category, error)

	// ListCategories retrieves all categories of one type ordered by name.
	ListCategories(ctx context.Context, categoryType domain.CategoryType) ([]domain.Category, error)

	// UpdateCategory updates a category's name and description. The
	// case-insensitive name uniqueness check excludes the record itself.
	UpdateCategory(ctx context.Context, category domain.Category) error

	// DeleteCategory removes a category. It fails with apperrors.ErrConflict
	// if any transaction of the matching type references it; transactions of
	// the other type never block the delete.
	DeleteCategory(ctx context.Context, categoryType domain.CategoryType, categoryID string) error
}
