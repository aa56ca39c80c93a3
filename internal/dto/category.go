package dto

import (
	"time"

	"github.com/pfa-dev/personal_finance_app/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a category. The
// namespace (income/expense) comes from the route, not the body.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateCategoryRequest defines the data allowed for updating a category.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID    string              `json:"categoryID"`
	Type          domain.CategoryType `json:"type"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	CreatedAt     time.Time           `json:"createdAt"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse.
func ToCategoryResponse(cat *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:    cat.CategoryID,
		Type:          cat.Type,
		Name:          cat.Name,
		Description:   cat.Description,
		CreatedAt:     cat.CreatedAt,
		LastUpdatedAt: cat.LastUpdatedAt,
	}
}

// ListCategoriesResponse wraps the list of categories of one type.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}
