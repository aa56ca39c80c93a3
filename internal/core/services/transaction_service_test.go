package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pfa-dev/personal_finance_app/internal/apperrors"
	"github.com/pfa-dev/personal_finance_app/internal/core/domain"
	portssvc "github.com/pfa-dev/personal_finance_app/internal/core/ports/services"
	"github.com/pfa-dev/personal_finance_app/internal/core/services"
	"github.com/pfa-dev/personal_finance_app/internal/dto"
)

// MockTransactionRepository is a mock type for the TransactionRepository interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionWithDetails(ctx context.Context, transactionID string) (*domain.TransactionWithDetails, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionWithDetails), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsWithDetails(ctx context.Context) ([]domain.TransactionWithDetails, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionWithDetails), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByCategory(ctx context.Context, categoryType domain.CategoryType, categoryID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, categoryType, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByDateRange(ctx context.Context, dateRange domain.DateRange) ([]domain.Transaction, error) {
	args := m.Called(ctx, dateRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, balanceChanges)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, balanceChanges)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, transactionID, balanceChanges)
	return args.Error(0)
}

// --- Test Suite Setup ---

type TransactionServiceTestSuite struct {
	suite.Suite
	mockRepo *MockTransactionRepository
	service  portssvc.TransactionSvcFacade
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransactionRepository)
	suite.service = services.NewTransactionService(suite.mockRepo)
}

func deltasEqual(expected map[string]decimal.Decimal) func(map[string]decimal.Decimal) bool {
	return func(actual map[string]decimal.Decimal) bool {
		if len(actual) != len(expected) {
			return false
		}
		for id, want := range expected {
			got, ok := actual[id]
			if !ok || !got.Equal(want) {
				return false
			}
		}
		return true
	}
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_IncomeDelta() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.CreateTransactionRequest{
		Amount:     decimal.NewFromInt(100),
		Date:       "2025-03-10",
		AccountID:  accountID,
		Type:       domain.Income,
		CategoryID: uuid.NewString(),
	}

	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(deltasEqual(map[string]decimal.Decimal{accountID: decimal.NewFromInt(100)})),
	).Return(nil).Once()

	created, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().NoError(err)
	suite.NotEmpty(created.TransactionID)
	suite.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), created.Date)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ExpenseDelta() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.CreateTransactionRequest{
		Amount:     decimal.NewFromInt(40),
		Date:       "2025-03-11",
		AccountID:  accountID,
		Type:       domain.Expense,
		CategoryID: uuid.NewString(),
	}

	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(deltasEqual(map[string]decimal.Decimal{accountID: decimal.NewFromInt(-40)})),
	).Return(nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RejectsNonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Amount:     decimal.Zero,
		Date:       "2025-03-10",
		AccountID:  uuid.NewString(),
		Type:       domain.Income,
		CategoryID: uuid.NewString(),
	}

	created, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_MissingAccountAborts() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Amount:     decimal.NewFromInt(10),
		Date:       "2025-03-10",
		AccountID:  uuid.NewString(),
		Type:       domain.Income,
		CategoryID: uuid.NewString(),
	}

	suite.mockRepo.On("SaveTransaction", ctx, mock.Anything, mock.Anything).Return(apperrors.ErrNotFound).Once()

	created, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_AmountChangeCombinesDelta() {
	ctx := context.Background()
	accountID := uuid.NewString()
	txnID := uuid.NewString()
	oldTxn := &domain.Transaction{
		TransactionID: txnID,
		Amount:        decimal.NewFromInt(100),
		Date:          time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		AccountID:     accountID,
		Type:          domain.Income,
		CategoryID:    uuid.NewString(),
	}
	newAmount := decimal.NewFromInt(150)

	suite.mockRepo.On("FindTransactionByID", ctx, txnID).Return(oldTxn, nil).Once()
	// 100 income becomes 150 income: one combined +50 delta.
	suite.mockRepo.On("UpdateTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Amount.Equal(newAmount) && t.AccountID == accountID
	}), mock.MatchedBy(deltasEqual(map[string]decimal.Decimal{accountID: decimal.NewFromInt(50)})),
	).Return(nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, txnID, dto.UpdateTransactionRequest{Amount: &newAmount})

	suite.Require().NoError(err)
	suite.True(updated.Amount.Equal(newAmount))

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_TypeFlipDelta() {
	ctx := context.Background()
	accountID := uuid.NewString()
	txnID := uuid.NewString()
	oldTxn := &domain.Transaction{
		TransactionID: txnID,
		Amount:        decimal.NewFromInt(30),
		Date:          time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		AccountID:     accountID,
		Type:          domain.Expense,
		CategoryID:    uuid.NewString(),
	}
	newType := domain.Income

	suite.mockRepo.On("FindTransactionByID", ctx, txnID).Return(oldTxn, nil).Once()
	// -30 expense becomes +30 income: combined delta +60.
	suite.mockRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(deltasEqual(map[string]decimal.Decimal{accountID: decimal.NewFromInt(60)})),
	).Return(nil).Once()

	_, err := suite.service.UpdateTransaction(ctx, txnID, dto.UpdateTransactionRequest{Type: &newType})

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_AccountMoveTwoDeltas() {
	ctx := context.Background()
	oldAccount := uuid.NewString()
	newAccount := uuid.NewString()
	txnID := uuid.NewString()
	oldTxn := &domain.Transaction{
		TransactionID: txnID,
		Amount:        decimal.NewFromInt(75),
		Date:          time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		AccountID:     oldAccount,
		Type:          domain.Expense,
		CategoryID:    uuid.NewString(),
	}

	suite.mockRepo.On("FindTransactionByID", ctx, txnID).Return(oldTxn, nil).Once()
	// The old account gets the expense back, the new account pays it.
	suite.mockRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(deltasEqual(map[string]decimal.Decimal{
			oldAccount: decimal.NewFromInt(75),
			newAccount: decimal.NewFromInt(-75),
		})),
	).Return(nil).Once()

	_, err := suite.service.UpdateTransaction(ctx, txnID, dto.UpdateTransactionRequest{AccountID: &newAccount})

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_EmptyPatchIsNoOp() {
	ctx := context.Background()
	txnID := uuid.NewString()
	oldTxn := &domain.Transaction{
		TransactionID: txnID,
		Amount:        decimal.NewFromInt(20),
		AccountID:     uuid.NewString(),
		Type:          domain.Income,
	}

	suite.mockRepo.On("FindTransactionByID", ctx, txnID).Return(oldTxn, nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, txnID, dto.UpdateTransactionRequest{})

	suite.Require().NoError(err)
	suite.Equal(oldTxn, updated)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything, mock.Anything)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_InverseDelta() {
	ctx := context.Background()
	accountID := uuid.NewString()
	txnID := uuid.NewString()
	txn := &domain.Transaction{
		TransactionID: txnID,
		Amount:        decimal.NewFromInt(55),
		AccountID:     accountID,
		Type:          domain.Income,
	}

	suite.mockRepo.On("FindTransactionByID", ctx, txnID).Return(txn, nil).Once()
	suite.mockRepo.On("DeleteTransaction", ctx, txnID,
		mock.MatchedBy(deltasEqual(map[string]decimal.Decimal{accountID: decimal.NewFromInt(-55)})),
	).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, txnID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactions_CategoryFilterRequiresType() {
	ctx := context.Background()

	txns, err := suite.service.ListTransactions(ctx, dto.ListTransactionsParams{CategoryID: uuid.NewString()})

	suite.Require().Error(err)
	suite.Nil(txns)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_DateRangeFilter() {
	ctx := context.Background()
	expectedRange := domain.DateRange{
		Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("ListTransactionsByDateRange", ctx, expectedRange).Return([]domain.Transaction{}, nil).Once()

	txns, err := suite.service.ListTransactions(ctx, dto.ListTransactionsParams{
		StartDate: "2025-01-01",
		EndDate:   "2025-01-31",
	})

	suite.Require().NoError(err)
	suite.NotNil(txns)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactions_OpenEndedRangeUsesClock() {
	ctx := context.Background()
	now := time.Date(2025, 6, 5, 9, 0, 0, 0, time.UTC)
	svc := services.NewTransactionService(suite.mockRepo, services.WithTxnClock(func() time.Time { return now }))

	// A missing end bound defaults to the injected clock's date, not the
	// wall clock.
	expectedRange := domain.DateRange{
		Start: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
	}
	suite.mockRepo.On("ListTransactionsByDateRange", ctx, expectedRange).Return([]domain.Transaction{}, nil).Once()

	_, err := svc.ListTransactions(ctx, dto.ListTransactionsParams{StartDate: "2025-06-01"})

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactions_PeriodFilter() {
	ctx := context.Background()
	now := time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC) // Wednesday
	svc := services.NewTransactionService(suite.mockRepo, services.WithTxnClock(func() time.Time { return now }))

	expectedRange := domain.DateRange{
		Start: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), // Monday
		End:   time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC), // Sunday
	}
	suite.mockRepo.On("ListTransactionsByDateRange", ctx, expectedRange).Return([]domain.Transaction{}, nil).Once()

	_, err := svc.ListTransactions(ctx, dto.ListTransactionsParams{Period: "this-week"})

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
