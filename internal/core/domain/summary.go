package domain

import "github.com/shopspring/decimal"

// CategorySum is one row of a per-category aggregation: the summed amount of
// all matching transactions in a period, with the category name resolved.
type CategorySum struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	Total        decimal.Decimal `json:"total"`
}

// MonthlySummary reports the independent income and expense sums for one
// calendar month of a year. Months without transactions report zero for both.
type MonthlySummary struct {
	Month   int             `json:"month"` // 1..12
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}
