package dto

import (
	"time"

	"github.com/pfa-dev/personal_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummaryQuery defines the period selector shared by the summary endpoints.
type SummaryQuery struct {
	Period    string `form:"period,default=this-month" binding:"omitempty,period"`
	StartDate string `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
}

// CustomRange builds the DateRange for a custom period, or nil when either
// bound is missing.
func (q SummaryQuery) CustomRange() (*domain.DateRange, error) {
	if q.StartDate == "" || q.EndDate == "" {
		return nil, nil
	}
	start, err := time.Parse(time.DateOnly, q.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(time.DateOnly, q.EndDate)
	if err != nil {
		return nil, err
	}
	return &domain.DateRange{Start: start, End: end}, nil
}

// TotalBalanceResponse reports the sum of all account balances.
type TotalBalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// SumResponse reports one time-windowed amount sum with the resolved range.
type SumResponse struct {
	Total     decimal.Decimal `json:"total"`
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
}

// CategorySumsResponse wraps the per-category sums for one period.
type CategorySumsResponse struct {
	Categories []domain.CategorySum `json:"categories"`
	StartDate  string               `json:"startDate"`
	EndDate    string               `json:"endDate"`
}

// MonthlyDataResponse wraps the 12-month income/expense series for a year.
type MonthlyDataResponse struct {
	Year   int                     `json:"year"`
	Months []domain.MonthlySummary `json:"months"`
}
