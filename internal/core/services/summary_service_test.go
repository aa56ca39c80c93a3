package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pfa-dev/personal_finance_app/internal/apperrors"
	"github.com/pfa-dev/personal_finance_app/internal/core/domain"
	portssvc "github.com/pfa-dev/personal_finance_app/internal/core/ports/services"
	"github.com/pfa-dev/personal_finance_app/internal/core/services"
)

// MockSummaryRepository is a mock type for the SummaryRepository interface
type MockSummaryRepository struct {
	mock.Mock
}

func (m *MockSummaryRepository) TotalBalance(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockSummaryRepository) SumAmountByType(ctx context.Context, categoryType domain.CategoryType, dateRange domain.DateRange) (decimal.Decimal, error) {
	args := m.Called(ctx, categoryType, dateRange)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockSummaryRepository) SumByCategory(ctx context.Context, categoryType domain.CategoryType, dateRange domain.DateRange) ([]domain.CategorySum, error) {
	args := m.Called(ctx, categoryType, dateRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategorySum), args.Error(1)
}

func (m *MockSummaryRepository) MonthlyTotals(ctx context.Context, year int) ([]domain.MonthlySummary, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlySummary), args.Error(1)
}

// --- Test Suite Setup ---

type SummaryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockSummaryRepository
	service  portssvc.SummarySvcFacade
	now      time.Time
}

func (suite *SummaryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSummaryRepository)
	suite.now = time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC) // Wednesday
	suite.service = services.NewSummaryService(suite.mockRepo,
		services.WithClock(func() time.Time { return suite.now }),
	)
}

// --- Test Cases ---

func (suite *SummaryServiceTestSuite) TestTotalBalance() {
	ctx := context.Background()

	suite.mockRepo.On("TotalBalance", ctx).Return(decimal.NewFromInt(1234), nil).Once()

	total, err := suite.service.TotalBalance(ctx)

	suite.Require().NoError(err)
	suite.True(total.Equal(decimal.NewFromInt(1234)))

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SummaryServiceTestSuite) TestIncomeSum_DefaultPeriodIsThisMonth() {
	ctx := context.Background()
	expectedRange := domain.DateRange{
		Start: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("SumAmountByType", ctx, domain.Income, expectedRange).Return(decimal.NewFromInt(500), nil).Once()

	total, resolved, err := suite.service.IncomeSum(ctx, "", nil)

	suite.Require().NoError(err)
	suite.True(total.Equal(decimal.NewFromInt(500)))
	suite.Equal(expectedRange, resolved)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SummaryServiceTestSuite) TestExpenseSum_ThisWeekStartsMonday() {
	ctx := context.Background()
	expectedRange := domain.DateRange{
		Start: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("SumAmountByType", ctx, domain.Expense, expectedRange).Return(decimal.NewFromInt(75), nil).Once()

	_, resolved, err := suite.service.ExpenseSum(ctx, domain.PeriodThisWeek, nil)

	suite.Require().NoError(err)
	suite.Equal(expectedRange, resolved)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SummaryServiceTestSuite) TestExpenseSum_SundayWeekStart() {
	ctx := context.Background()
	svc := services.NewSummaryService(suite.mockRepo,
		services.WithClock(func() time.Time { return suite.now }),
		services.WithWeekStart(time.Sunday),
	)
	expectedRange := domain.DateRange{
		Start: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("SumAmountByType", ctx, domain.Expense, expectedRange).Return(decimal.Zero, nil).Once()

	_, resolved, err := svc.ExpenseSum(ctx, domain.PeriodThisWeek, nil)

	suite.Require().NoError(err)
	suite.Equal(expectedRange, resolved)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SummaryServiceTestSuite) TestIncomeSum_CustomWithoutRangeFails() {
	ctx := context.Background()

	_, _, err := suite.service.IncomeSum(ctx, domain.PeriodCustom, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SumAmountByType", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SummaryServiceTestSuite) TestIncomeByCategory_EmptyIsNotNil() {
	ctx := context.Background()

	suite.mockRepo.On("SumByCategory", ctx, domain.Income, mock.AnythingOfType("domain.DateRange")).Return(nil, nil).Once()

	sums, _, err := suite.service.IncomeByCategory(ctx, domain.PeriodThisYear, nil)

	suite.Require().NoError(err)
	suite.NotNil(sums)
	suite.Len(sums, 0)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SummaryServiceTestSuite) TestExpenseByCategory_CustomRange() {
	ctx := context.Background()
	custom := &domain.DateRange{
		Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
	}
	expected := []domain.CategorySum{
		{CategoryID: "c1", CategoryName: "Rent", Total: decimal.NewFromInt(900)},
		{CategoryID: "c2", CategoryName: "Food", Total: decimal.NewFromInt(300)},
	}

	suite.mockRepo.On("SumByCategory", ctx, domain.Expense, *custom).Return(expected, nil).Once()

	sums, resolved, err := suite.service.ExpenseByCategory(ctx, domain.PeriodCustom, custom)

	suite.Require().NoError(err)
	suite.Equal(expected, sums)
	suite.Equal(*custom, resolved)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SummaryServiceTestSuite) TestMonthlyData_FillsAllTwelveMonths() {
	ctx := context.Background()
	sparse := []domain.MonthlySummary{
		{Month: 3, Income: decimal.NewFromInt(100), Expense: decimal.NewFromInt(40)},
		{Month: 11, Income: decimal.NewFromInt(60), Expense: decimal.Zero},
	}

	suite.mockRepo.On("MonthlyTotals", ctx, 2025).Return(sparse, nil).Once()

	months, err := suite.service.MonthlyData(ctx, 2025)

	suite.Require().NoError(err)
	suite.Require().Len(months, 12)
	for i, m := range months {
		suite.Equal(i+1, m.Month)
	}
	suite.True(months[2].Income.Equal(decimal.NewFromInt(100)))
	suite.True(months[10].Income.Equal(decimal.NewFromInt(60)))
	suite.True(months[0].Income.IsZero())
	suite.True(months[0].Expense.IsZero())

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SummaryServiceTestSuite) TestMonthlyData_RejectsInvalidYear() {
	ctx := context.Background()

	months, err := suite.service.MonthlyData(ctx, 0)

	suite.Require().Error(err)
	suite.Nil(months)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "MonthlyTotals", mock.Anything, mock.Anything)
}

func TestSummaryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SummaryServiceTestSuite))
}
