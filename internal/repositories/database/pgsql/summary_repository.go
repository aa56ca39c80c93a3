package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/pfa-dev/personal_finance_app/internal/core/domain"
	portsrepo "github.com/pfa-dev/personal_finance_app/internal/core/ports/repositories"
)

type PgxSummaryRepository struct {
	BaseRepository
}

// newPgxSummaryRepository creates a new repository for the read-side
// aggregation queries.
func newPgxSummaryRepository(pool *pgxpool.Pool) *PgxSummaryRepository {
	return &PgxSummaryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SummaryRepository = (*PgxSummaryRepository)(nil)

// TotalBalance sums the cached balance over all accounts.
func (r *PgxSummaryRepository) TotalBalance(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, `SELECT COALESCE(SUM(balance), 0) FROM accounts;`).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum account balances: %w", err)
	}
	return total, nil
}

// SumAmountByType sums transaction amounts of one type over the inclusive
// date range.
func (r *PgxSummaryRepository) SumAmountByType(ctx context.Context, categoryType domain.CategoryType, dateRange domain.DateRange) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE transaction_type = $1 AND transaction_date BETWEEN $2 AND $3;
	`
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, string(categoryType), dateRange.Start, dateRange.End).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum %s amounts: %w", categoryType, err)
	}
	return total, nil
}

// SumByCategory groups matching transactions by category with the name
// resolved, drops non-positive groups, and orders by sum descending with
// name as the tiebreaker.
func (r *PgxSummaryRepository) SumByCategory(ctx context.Context, categoryType domain.CategoryType, dateRange domain.DateRange) ([]domain.CategorySum, error) {
	query := `
		SELECT c.category_id, c.name, SUM(t.amount) AS total
		FROM transactions t
		JOIN categories c ON c.category_id = t.category_id AND c.category_type = t.transaction_type
		WHERE t.transaction_type = $1 AND t.transaction_date BETWEEN $2 AND $3
		GROUP BY c.category_id, c.name
		HAVING SUM(t.amount) > 0
		ORDER BY total DESC, c.name ASC;
	`
	rows, err := r.Pool.Query(ctx, query, string(categoryType), dateRange.Start, dateRange.End)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s sums by category: %w", categoryType, err)
	}
	defer rows.Close()

	var sums []domain.CategorySum
	for rows.Next() {
		var s domain.CategorySum
		if err := rows.Scan(&s.CategoryID, &s.CategoryName, &s.Total); err != nil {
			return nil, fmt.Errorf("failed to scan category sum row: %w", err)
		}
		sums = append(sums, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating category sum rows: %w", err)
	}
	return sums, nil
}

// MonthlyTotals returns the income and expense sums per calendar month of
// year. Months without transactions are omitted here; the service fills
// the gaps.
func (r *PgxSummaryRepository) MonthlyTotals(ctx context.Context, year int) ([]domain.MonthlySummary, error) {
	query := `
		SELECT EXTRACT(MONTH FROM transaction_date)::int AS month,
		       COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'INCOME'), 0) AS income,
		       COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'EXPENSE'), 0) AS expense
		FROM transactions
		WHERE EXTRACT(YEAR FROM transaction_date)::int = $1
		GROUP BY month
		ORDER BY month;
	`
	rows, err := r.Pool.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly totals for %d: %w", year, err)
	}
	defer rows.Close()

	var months []domain.MonthlySummary
	for rows.Next() {
		var m domain.MonthlySummary
		if err := rows.Scan(&m.Month, &m.Income, &m.Expense); err != nil {
			return nil, fmt.Errorf("failed to scan monthly total row: %w", err)
		}
		months = append(months, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating monthly total rows: %w", err)
	}
	return months, nil
}
