package repositories

import (
	"context"

	"github.com/pfa-dev/personal_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionWithDetails resolves the account and category names at
	// query time.
	FindTransactionWithDetails(ctx context.Context, transactionID string) (*domain.TransactionWithDetails, error)

	// ListTransactions retrieves all transactions, newest date first.
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)

	ListTransactionsWithDetails(ctx context.Context) ([]domain.TransactionWithDetails, error)

	ListTransactionsByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error)

	ListTransactionsByCategory(ctx context.Context, categoryType domain.CategoryType, categoryID string) ([]domain.Transaction, error)

	// ListTransactionsByDateRange retrieves transactions whose date falls in
	// the inclusive range.
	ListTransactionsByDateRange(ctx context.Context, dateRange domain.DateRange) ([]domain.Transaction, error)
}

// TransactionWriter defines the mutating operations. Every method runs one
// atomic scope covering the referential-integrity checks (account exists,
// category exists in the namespace matching the transaction type), the row
// write, and the account balance adjustments. balanceChanges maps account ID
// to the signed delta to apply as an atomic read-modify-write; a missing
// target account aborts the whole scope with apperrors.ErrNotFound.
type TransactionWriter interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error

	// UpdateTransaction replaces the stored row with txn (already merged by
	// the service) and applies the compensating balance deltas.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error

	DeleteTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal) error
}

// TransactionRepository combines all transaction-related repository operations.
type TransactionRepository interface {
	TransactionReader
	TransactionWriter
}
