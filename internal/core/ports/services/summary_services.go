package services

import (
	"context"

	"github.com/pfa-dev/personal_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummarySvcFacade exposes the time-windowed aggregates.
type SummarySvcFacade interface {
	TotalBalance(ctx context.Context) (decimal.Decimal, error)
	IncomeSum(ctx context.Context, period domain.Period, custom *domain.DateRange) (decimal.Decimal, domain.DateRange, error)
	ExpenseSum(ctx context.Context, period domain.Period, custom *domain.DateRange) (decimal.Decimal, domain.DateRange, error)
	IncomeByCategory(ctx context.Context, period domain.Period, custom *domain.DateRange) ([]domain.CategorySum, domain.DateRange, error)
	ExpenseByCategory(ctx context.Context, period domain.Period, custom *domain.DateRange) ([]domain.CategorySum, domain.DateRange, error)
	// MonthlyData always returns exactly 12 rows ordered by month ascending.
	MonthlyData(ctx context.Context, year int) ([]domain.MonthlySummary, error)
}
