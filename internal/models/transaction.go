package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a row in the transactions table. Amount is stored
// positive; transaction_type carries the sign.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	Amount          decimal.Decimal `db:"amount"`
	Description     string          `db:"description"`
	TransactionDate time.Time       `db:"transaction_date"`
	AccountID       string          `db:"account_id"`
	TransactionType string          `db:"transaction_type"`
	CategoryID      string          `db:"category_id"`
	AuditFields
}
