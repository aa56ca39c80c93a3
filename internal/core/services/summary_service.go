package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pfa-dev/personal_finance_app/internal/apperrors"
	"github.com/pfa-dev/personal_finance_app/internal/core/domain"
	portsrepo "github.com/pfa-dev/personal_finance_app/internal/core/ports/repositories"
	portssvc "github.com/pfa-dev/personal_finance_app/internal/core/ports/services"
	"github.com/pfa-dev/personal_finance_app/internal/middleware"
)

// summaryService resolves symbolic periods into concrete date ranges and
// delegates the aggregation to the summary repository.
type summaryService struct {
	summaryRepo portsrepo.SummaryRepository
	weekStart   time.Weekday
	nowFn       func() time.Time
}

// SummaryServiceOption configures optional parameters.
type SummaryServiceOption func(*summaryService)

// WithClock overrides the time source, for tests.
func WithClock(nowFn func() time.Time) SummaryServiceOption {
	return func(s *summaryService) {
		s.nowFn = nowFn
	}
}

// WithWeekStart sets the weekday period resolution treats as the start of
// the week.
func WithWeekStart(d time.Weekday) SummaryServiceOption {
	return func(s *summaryService) {
		s.weekStart = d
	}
}

// NewSummaryService creates a new summary service.
func NewSummaryService(repo portsrepo.SummaryRepository, opts ...SummaryServiceOption) portssvc.SummarySvcFacade {
	s := &summaryService{
		summaryRepo: repo,
		weekStart:   time.Monday,
		nowFn:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.SummarySvcFacade = (*summaryService)(nil)

func (s *summaryService) TotalBalance(ctx context.Context) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	total, err := s.summaryRepo.TotalBalance(ctx)
	if err != nil {
		logger.Error("Failed to compute total balance", slog.String("error", err.Error()))
		return decimal.Zero, err
	}
	return total, nil
}

func (s *summaryService) IncomeSum(ctx context.Context, period domain.Period, custom *domain.DateRange) (decimal.Decimal, domain.DateRange, error) {
	return s.sumByType(ctx, domain.Income, period, custom)
}

func (s *summaryService) ExpenseSum(ctx context.Context, period domain.Period, custom *domain.DateRange) (decimal.Decimal, domain.DateRange, error) {
	return s.sumByType(ctx, domain.Expense, period, custom)
}

func (s *summaryService) sumByType(ctx context.Context, categoryType domain.CategoryType, period domain.Period, custom *domain.DateRange) (decimal.Decimal, domain.DateRange, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	dateRange, err := s.resolveRange(period, custom)
	if err != nil {
		return decimal.Zero, domain.DateRange{}, err
	}

	total, err := s.summaryRepo.SumAmountByType(ctx, categoryType, dateRange)
	if err != nil {
		logger.Error("Failed to sum transaction amounts",
			slog.String("error", err.Error()),
			slog.String("category_type", string(categoryType)),
		)
		return decimal.Zero, domain.DateRange{}, err
	}
	return total, dateRange, nil
}

func (s *summaryService) IncomeByCategory(ctx context.Context, period domain.Period, custom *domain.DateRange) ([]domain.CategorySum, domain.DateRange, error) {
	return s.byCategory(ctx, domain.Income, period, custom)
}

func (s *summaryService) ExpenseByCategory(ctx context.Context, period domain.Period, custom *domain.DateRange) ([]domain.CategorySum, domain.DateRange, error) {
	return s.byCategory(ctx, domain.Expense, period, custom)
}

func (s *summaryService) byCategory(ctx context.Context, categoryType domain.CategoryType, period domain.Period, custom *domain.DateRange) ([]domain.CategorySum, domain.DateRange, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	dateRange, err := s.resolveRange(period, custom)
	if err != nil {
		return nil, domain.DateRange{}, err
	}

	sums, err := s.summaryRepo.SumByCategory(ctx, categoryType, dateRange)
	if err != nil {
		logger.Error("Failed to sum transactions by category",
			slog.String("error", err.Error()),
			slog.String("category_type", string(categoryType)),
		)
		return nil, domain.DateRange{}, err
	}
	if sums == nil {
		sums = []domain.CategorySum{}
	}
	return sums, dateRange, nil
}

func (s *summaryService) MonthlyData(ctx context.Context, year int) ([]domain.MonthlySummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if year <= 0 {
		return nil, fmt.Errorf("%w: year must be a positive number", apperrors.ErrValidation)
	}

	rows, err := s.summaryRepo.MonthlyTotals(ctx, year)
	if err != nil {
		logger.Error("Failed to compute monthly totals", slog.String("error", err.Error()), slog.Int("year", year))
		return nil, err
	}

	// The repository may skip empty months; the response always carries all 12.
	months := make([]domain.MonthlySummary, 12)
	for i := range months {
		months[i] = domain.MonthlySummary{
			Month:   i + 1,
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
	}
	for _, row := range rows {
		if row.Month < 1 || row.Month > 12 {
			return nil, fmt.Errorf("%w: month %d out of range", apperrors.ErrStore, row.Month)
		}
		months[row.Month-1] = row
	}
	return months, nil
}

// resolveRange treats an empty period as this-month before delegating to
// domain.ResolvePeriod.
func (s *summaryService) resolveRange(period domain.Period, custom *domain.DateRange) (domain.DateRange, error) {
	if period == "" {
		period = domain.PeriodThisMonth
	}
	dateRange, err := domain.ResolvePeriod(period, s.nowFn(), s.weekStart, custom)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return domain.DateRange{}, err
		}
		return domain.DateRange{}, fmt.Errorf("failed to resolve period %q: %w", period, err)
	}
	return dateRange, nil
}
