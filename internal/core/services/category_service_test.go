package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pfa-dev/personal_finance_app/internal/apperrors"
	"github.com/pfa-dev/personal_finance_app/internal/core/domain"
	portssvc "github.com/pfa-dev/personal_finance_app/internal/core/ports/services"
	"github.com/pfa-dev/personal_finance_app/internal/core/services"
	"github.com/pfa-dev/personal_finance_app/internal/dto"
)

// MockCategoryRepository is a mock type for the CategoryRepository interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryType domain.CategoryType, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryType, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, categoryType domain.CategoryType) ([]domain.Category, error) {
	args := m.Called(ctx, categoryType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, categoryType domain.CategoryType, categoryID string) error {
	args := m.Called(ctx, categoryType, categoryID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type CategoryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCategoryRepository
	service  portssvc.CategorySvcFacade
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCategoryRepository)
	suite.service = services.NewCategoryService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *CategoryServiceTestSuite) TestCreateCategory_Success() {
	ctx := context.Background()
	req := dto.CreateCategoryRequest{Name: "Groceries", Description: "Food shopping"}

	suite.mockRepo.On("SaveCategory", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.Type == domain.Expense && c.Name == "Groceries"
	})).Return(nil).Once()

	created, err := suite.service.CreateCategory(ctx, domain.Expense, req)

	suite.Require().NoError(err)
	suite.NotEmpty(created.CategoryID)
	suite.Equal(domain.Expense, created.Type)
	suite.Equal(req.Name, created.Name)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_InvalidType() {
	ctx := context.Background()

	created, err := suite.service.CreateCategory(ctx, domain.CategoryType("SAVINGS"), dto.CreateCategoryRequest{Name: "x"})

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCategory", mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_DuplicateName() {
	ctx := context.Background()

	suite.mockRepo.On("SaveCategory", ctx, mock.AnythingOfType("domain.Category")).Return(apperrors.ErrConflict).Once()

	created, err := suite.service.CreateCategory(ctx, domain.Income, dto.CreateCategoryRequest{Name: "Salary"})

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrConflict)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestGetCategoryByID_ScopedToNamespace() {
	ctx := context.Background()
	testID := uuid.NewString()

	// The same ID looked up in the other namespace must not resolve.
	suite.mockRepo.On("FindCategoryByID", ctx, domain.Income, testID).Return(nil, apperrors.ErrNotFound).Once()

	category, err := suite.service.GetCategoryByID(ctx, domain.Income, testID)

	suite.Require().Error(err)
	suite.Nil(category)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestListCategories_EmptyIsNotNil() {
	ctx := context.Background()

	suite.mockRepo.On("ListCategories", ctx, domain.Expense).Return(nil, nil).Once()

	categories, err := suite.service.ListCategories(ctx, domain.Expense)

	suite.Require().NoError(err)
	suite.NotNil(categories)
	suite.Len(categories, 0)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestUpdateCategory_PartialPatch() {
	ctx := context.Background()
	testID := uuid.NewString()
	existing := &domain.Category{
		CategoryID:  testID,
		Type:        domain.Expense,
		Name:        "Rent",
		Description: "monthly",
	}
	newDesc := "monthly housing"

	suite.mockRepo.On("FindCategoryByID", ctx, domain.Expense, testID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateCategory", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.Name == "Rent" && c.Description == newDesc
	})).Return(nil).Once()

	updated, err := suite.service.UpdateCategory(ctx, domain.Expense, testID, dto.UpdateCategoryRequest{Description: &newDesc})

	suite.Require().NoError(err)
	suite.Equal("Rent", updated.Name)
	suite.Equal(newDesc, updated.Description)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_ConflictWhenReferenced() {
	ctx := context.Background()
	testID := uuid.NewString()

	suite.mockRepo.On("DeleteCategory", ctx, domain.Expense, testID).Return(apperrors.ErrConflict).Once()

	err := suite.service.DeleteCategory(ctx, domain.Expense, testID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)

	suite.mockRepo.AssertExpectations(suite.T())
}

func TestCategoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
