package repositories

import (
	"context"

	"github.com/pfa-dev/personal_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummaryRepository defines the read-side aggregation queries.
type SummaryRepository interface {
	// TotalBalance sums the cached balance over all accounts.
	TotalBalance(ctx context.Context) (decimal.Decimal, error)

	// SumAmountByType sums transaction amounts of one type over the
	// inclusive date range.
	SumAmountByType(ctx context.Context, categoryType domain.CategoryType, dateRange domain.DateRange) (decimal.Decimal, error)

	// SumByCategory groups matching transactions by category, attaches the
	// category name, excludes groups whose sum is not strictly positive, and
	// orders by sum descending (ties by name).
	SumByCategory(ctx context.Context, categoryType domain.CategoryType, dateRange domain.DateRange) ([]domain.CategorySum, error)

	// MonthlyTotals returns the income and expense sums per calendar month of
	// year, ordered by month ascending. Months without transactions may be
	// omitted; the service fills the gaps.
	MonthlyTotals(ctx context.Context, year int) ([]domain.MonthlySummary, error)
}
