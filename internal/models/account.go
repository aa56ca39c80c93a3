package models

import (
	"github.com/shopspring/decimal"
)

// Account represents a row in the accounts table. Balance is the persisted
// running cache adjusted by the transaction repository.
type Account struct {
	AccountID   string          `db:"account_id"`
	Name        string          `db:"name"`
	AccountType string          `db:"account_type"`
	Balance     decimal.Decimal `db:"balance"`
	Description string          `db:"description"`
	AuditFields
}
