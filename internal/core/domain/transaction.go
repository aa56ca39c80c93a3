package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single dated movement of money affecting exactly
// one account. Amount is always positive; the sign is implied by Type.
// CategoryID must resolve in the namespace matching Type.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	Amount        decimal.Decimal `json:"amount"`        // Positive value
	Description   string          `json:"description"`
	Date          time.Time       `json:"date"` // Calendar date, UTC midnight
	AccountID     string          `json:"accountID"`  // FK -> Account
	Type          CategoryType    `json:"type"`       // INCOME or EXPENSE
	CategoryID    string          `json:"categoryID"` // FK into the Type's namespace
	AuditFields
}

// Delta returns the signed balance change the transaction implies for its
// account: +Amount for income, -Amount for expense.
func (t Transaction) Delta() decimal.Decimal {
	if t.Type == Income {
		return t.Amount
	}
	return t.Amount.Neg()
}

// TransactionWithDetails is a read-only projection of Transaction with the
// account and category names resolved at query time; never stored.
type TransactionWithDetails struct {
	Transaction
	AccountName  string `json:"accountName"`
	CategoryName string `json:"categoryName"`
}
