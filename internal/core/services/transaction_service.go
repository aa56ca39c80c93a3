package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pfa-dev/personal_finance_app/internal/apperrors"
	"github.com/pfa-dev/personal_finance_app/internal/core/domain"
	portsrepo "github.com/pfa-dev/personal_finance_app/internal/core/ports/repositories"
	portssvc "github.com/pfa-dev/personal_finance_app/internal/core/ports/services"
	"github.com/pfa-dev/personal_finance_app/internal/dto"
	"github.com/pfa-dev/personal_finance_app/internal/middleware"
)

// transactionService owns the write path for transactions. It validates the
// request, merges patches against the stored row, and computes the signed
// balance deltas the repository applies atomically alongside the row write.
type transactionService struct {
	txnRepo   portsrepo.TransactionRepository
	weekStart time.Weekday
	nowFn     func() time.Time
}

// TransactionServiceOption configures optional parameters.
type TransactionServiceOption func(*transactionService)

// WithTxnClock overrides the time source, for tests.
func WithTxnClock(nowFn func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.nowFn = nowFn
	}
}

// WithTxnWeekStart sets the weekday period resolution treats as the start of
// the week.
func WithTxnWeekStart(d time.Weekday) TransactionServiceOption {
	return func(s *transactionService) {
		s.weekStart = d
	}
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(repo portsrepo.TransactionRepository, opts ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	s := &transactionService{
		txnRepo:   repo,
		weekStart: time.Monday,
		nowFn:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, req.Type)
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	now := s.nowFn().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Amount:        req.Amount,
		Description:   req.Description,
		Date:          date,
		AccountID:     req.AccountID,
		Type:          req.Type,
		CategoryID:    req.CategoryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	balanceChanges := map[string]decimal.Decimal{
		txn.AccountID: txn.Delta(),
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn, balanceChanges); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to save transaction in repository", slog.String("error", err.Error()), slog.String("transaction_id", txn.TransactionID))
		}
		return nil, err
	}

	logger.Info("Transaction created successfully",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", txn.AccountID),
		slog.String("amount", txn.Amount.String()),
	)
	return &txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, transactionID)
}

func (s *transactionService) GetTransactionWithDetails(ctx context.Context, transactionID string) (*domain.TransactionWithDetails, error) {
	return s.txnRepo.FindTransactionWithDetails(ctx, transactionID)
}

func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txns, err := s.listFiltered(ctx, params)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to list transactions from repository", slog.String("error", err.Error()))
		}
		return nil, err
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

// listFiltered dispatches on the first filter dimension present: account,
// category, explicit date range, then symbolic period.
func (s *transactionService) listFiltered(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	switch {
	case params.AccountID != "":
		return s.txnRepo.ListTransactionsByAccount(ctx, params.AccountID)

	case params.CategoryID != "":
		if params.Type == "" {
			return nil, fmt.Errorf("%w: type is required when filtering by category", apperrors.ErrValidation)
		}
		return s.txnRepo.ListTransactionsByCategory(ctx, domain.CategoryType(params.Type), params.CategoryID)

	case params.StartDate != "" || params.EndDate != "":
		dateRange, err := s.rangeFromBounds(params.StartDate, params.EndDate)
		if err != nil {
			return nil, err
		}
		return s.txnRepo.ListTransactionsByDateRange(ctx, dateRange)

	case params.Period != "":
		dateRange, err := domain.ResolvePeriod(domain.Period(params.Period), s.nowFn(), s.weekStart, nil)
		if err != nil {
			return nil, err
		}
		return s.txnRepo.ListTransactionsByDateRange(ctx, dateRange)

	default:
		return s.txnRepo.ListTransactions(ctx)
	}
}

func (s *transactionService) ListTransactionsWithDetails(ctx context.Context) ([]domain.TransactionWithDetails, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txns, err := s.txnRepo.ListTransactionsWithDetails(ctx)
	if err != nil {
		logger.Error("Failed to list transactions with details from repository", slog.String("error", err.Error()))
		return nil, err
	}
	if txns == nil {
		return []domain.TransactionWithDetails{}, nil
	}
	return txns, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	oldTxn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	// An empty patch is a no-op: no row write, no balance movement.
	if req.IsEmpty() {
		return oldTxn, nil
	}

	merged := *oldTxn
	if req.Amount != nil {
		merged.Amount = *req.Amount
	}
	if req.Description != nil {
		merged.Description = *req.Description
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		merged.Date = date
	}
	if req.AccountID != nil {
		merged.AccountID = *req.AccountID
	}
	if req.Type != nil {
		merged.Type = *req.Type
	}
	if req.CategoryID != nil {
		merged.CategoryID = *req.CategoryID
	}

	if !merged.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if !merged.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, merged.Type)
	}

	merged.LastUpdatedAt = s.nowFn().UTC()

	// Reverse the old effect and apply the new one. When the account did not
	// change the two legs collapse into one signed delta.
	balanceChanges := make(map[string]decimal.Decimal)
	if merged.AccountID == oldTxn.AccountID {
		combined := merged.Delta().Sub(oldTxn.Delta())
		if !combined.IsZero() {
			balanceChanges[merged.AccountID] = combined
		}
	} else {
		balanceChanges[oldTxn.AccountID] = oldTxn.Delta().Neg()
		balanceChanges[merged.AccountID] = merged.Delta()
	}

	if err := s.txnRepo.UpdateTransaction(ctx, merged, balanceChanges); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to update transaction in repository", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return nil, err
	}

	logger.Info("Transaction updated successfully", slog.String("transaction_id", transactionID))
	return &merged, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}

	balanceChanges := map[string]decimal.Decimal{
		txn.AccountID: txn.Delta().Neg(),
	}

	if err := s.txnRepo.DeleteTransaction(ctx, transactionID, balanceChanges); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete transaction in repository", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return err
	}

	logger.Info("Transaction deleted successfully", slog.String("transaction_id", transactionID))
	return nil
}

// parseDate parses a calendar date in 2006-01-02 form to UTC midnight.
func parseDate(value string) (time.Time, error) {
	date, err := time.ParseInLocation(time.DateOnly, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", apperrors.ErrValidation, value)
	}
	return date, nil
}

// rangeFromBounds builds an inclusive range from explicit string bounds,
// substituting the epoch and today for missing ends.
func (s *transactionService) rangeFromBounds(startDate, endDate string) (domain.DateRange, error) {
	start := domain.DateOf(time.Unix(0, 0))
	end := domain.DateOf(s.nowFn())

	if startDate != "" {
		parsed, err := parseDate(startDate)
		if err != nil {
			return domain.DateRange{}, err
		}
		start = parsed
	}
	if endDate != "" {
		parsed, err := parseDate(endDate)
		if err != nil {
			return domain.DateRange{}, err
		}
		end = parsed
	}
	if end.Before(start) {
		return domain.DateRange{}, fmt.Errorf("%w: end date %s precedes start date %s",
			apperrors.ErrValidation, end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	return domain.DateRange{Start: start, End: end}, nil
}
