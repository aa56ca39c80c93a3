package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType labels the kind of money pool an account represents.
// It is an open string in practice; these are the values the UI offers.
type AccountType string

const (
	Bank       AccountType = "BANK"
	Cash       AccountType = "CASH"
	Credit     AccountType = "CREDIT"
	Investment AccountType = "INVESTMENT"
	Mobile     AccountType = "MOBILE"
)

// Account represents a named money pool with a cached running balance.
// Balance always equals the initial balance plus the signed sum of all
// currently existing transactions referencing the account; it is seeded at
// creation and mutated only through the transaction service's balance deltas.
type Account struct {
	AccountID   string          `json:"accountID"`   // Primary Key (UUID)
	Name        string          `json:"name"`        // User-defined name, uniqueness not enforced
	Type        AccountType     `json:"type"`        // BANK, CASH, etc.
	Balance     decimal.Decimal `json:"balance"`     // Derived cache, signed
	Description string          `json:"description"` // Nullable user description
	AuditFields
}
