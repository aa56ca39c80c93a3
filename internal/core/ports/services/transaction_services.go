package services

import (
	"context"

	"github.com/pfa-dev/personal_finance_app/internal/core/domain"
	"github.com/pfa-dev/personal_finance_app/internal/dto"
)

// TransactionSvcFacade exposes transaction operations. Every mutation keeps
// the affected account balances consistent within one atomic store scope.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	GetTransactionWithDetails(ctx context.Context, transactionID string) (*domain.TransactionWithDetails, error)
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error)
	ListTransactionsWithDetails(ctx context.Context) ([]domain.TransactionWithDetails, error)
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID string) error
}
