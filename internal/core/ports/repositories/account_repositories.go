package repositories

import (
	"context"

	"github.com/pfa-dev/personal_finance_app/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs. IDs that do
	// not exist are simply absent from the returned map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves all accounts ordered by name.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account with its seeded initial balance.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an account's name, type, and description.
	// The balance column is never written here.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account. It fails with apperrors.ErrConflict
	// if any transaction references the account; the reference check and the
	// delete run in one atomic scope.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountRepository combines all account-related repository operations.
type AccountRepository interface {
	AccountReader
	AccountWriter
}
