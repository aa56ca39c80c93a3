package services

import (
	"context"

	"github.com/pfa-dev/personal_finance_app/internal/core/domain"
	"github.com/pfa-dev/personal_finance_app/internal/dto"
)

// AccountSvcFacade exposes account operations to the transport layer.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
	// DeleteAccount fails with apperrors.ErrConflict while any transaction
	// references the account.
	DeleteAccount(ctx context.Context, accountID string) error
}
