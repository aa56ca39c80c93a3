package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/pfa-dev/personal_finance_app/internal/apperrors"
	"github.com/pfa-dev/personal_finance_app/internal/core/domain"
	portsrepo "github.com/pfa-dev/personal_finance_app/internal/core/ports/repositories"
	"github.com/pfa-dev/personal_finance_app/internal/models"
	"github.com/pfa-dev/personal_finance_app/internal/utils/mapping"
)

const transactionColumns = "transaction_id, amount, description, transaction_date, account_id, transaction_type, category_id, created_at, last_updated_at"

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo *PgxAccountRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
// The account repository supplies the in-transaction locking and balance
// update helpers.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo *PgxAccountRepository) *PgxTransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.Amount,
		&m.Description,
		&m.TransactionDate,
		&m.AccountID,
		&m.TransactionType,
		&m.CategoryID,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveTransaction inserts the transaction row and applies the balance deltas
// in one database transaction. The referenced account rows are locked FOR
// UPDATE first, so the existence check and the balance read-modify-write
// cannot race with concurrent writers.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	m := mapping.ToModelTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.accountRepo.lockAccountsForUpdate(ctx, tx, accountIDsOf(balanceChanges)); err != nil {
		return err
	}
	if err := r.ensureCategoryExists(ctx, tx, m.TransactionType, m.CategoryID); err != nil {
		return err
	}

	query := `
		INSERT INTO transactions (transaction_id, amount, description, transaction_date, account_id, transaction_type, category_id, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, query,
		m.TransactionID,
		m.Amount,
		m.Description,
		m.TransactionDate,
		m.AccountID,
		m.TransactionType,
		m.CategoryID,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}

	if err := r.accountRepo.updateBalancesInTx(ctx, tx, balanceChanges, m.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateTransaction replaces the stored row with the already-merged txn and
// applies the compensating balance deltas atomically.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	m := mapping.ToModelTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.accountRepo.lockAccountsForUpdate(ctx, tx, accountIDsOf(balanceChanges)); err != nil {
		return err
	}
	if err := r.ensureCategoryExists(ctx, tx, m.TransactionType, m.CategoryID); err != nil {
		return err
	}

	query := `
		UPDATE transactions
		SET amount = $2, description = $3, transaction_date = $4, account_id = $5, transaction_type = $6, category_id = $7, last_updated_at = $8
		WHERE transaction_id = $1;
	`
	ct, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.Amount,
		m.Description,
		m.TransactionDate,
		m.AccountID,
		m.TransactionType,
		m.CategoryID,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, m.TransactionID)
	}

	if err := r.accountRepo.updateBalancesInTx(ctx, tx, balanceChanges, m.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction removes the row and applies the inverse balance deltas
// atomically.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.accountRepo.lockAccountsForUpdate(ctx, tx, accountIDsOf(balanceChanges)); err != nil {
		return err
	}

	ct, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}

	if err := r.accountRepo.updateBalancesInTx(ctx, tx, balanceChanges, time.Now().UTC()); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

const detailsQuery = `
	SELECT t.transaction_id, t.amount, t.description, t.transaction_date, t.account_id, t.transaction_type, t.category_id, t.created_at, t.last_updated_at,
	       a.name AS account_name, c.name AS category_name
	FROM transactions t
	JOIN accounts a ON a.account_id = t.account_id
	JOIN categories c ON c.category_id = t.category_id AND c.category_type = t.transaction_type
`

func scanTransactionWithDetails(row pgx.Row) (domain.TransactionWithDetails, error) {
	var m models.Transaction
	var accountName, categoryName string
	err := row.Scan(
		&m.TransactionID,
		&m.Amount,
		&m.Description,
		&m.TransactionDate,
		&m.AccountID,
		&m.TransactionType,
		&m.CategoryID,
		&m.CreatedAt,
		&m.LastUpdatedAt,
		&accountName,
		&categoryName,
	)
	if err != nil {
		return domain.TransactionWithDetails{}, err
	}
	return domain.TransactionWithDetails{
		Transaction:  mapping.ToDomainTransaction(m),
		AccountName:  accountName,
		CategoryName: categoryName,
	}, nil
}

// FindTransactionWithDetails resolves the account and category names at
// query time.
func (r *PgxTransactionRepository) FindTransactionWithDetails(ctx context.Context, transactionID string) (*domain.TransactionWithDetails, error) {
	query := detailsQuery + ` WHERE t.transaction_id = $1;`

	d, err := scanTransactionWithDetails(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to find transaction with details %s: %w", transactionID, err)
	}
	return &d, nil
}

// ListTransactions retrieves all transactions, newest date first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY transaction_date DESC, created_at DESC;`
	return r.queryTransactions(ctx, query)
}

// ListTransactionsWithDetails retrieves all transactions with resolved names.
func (r *PgxTransactionRepository) ListTransactionsWithDetails(ctx context.Context) ([]domain.TransactionWithDetails, error) {
	query := detailsQuery + ` ORDER BY t.transaction_date DESC, t.created_at DESC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions with details: %w", err)
	}
	defer rows.Close()

	var txns []domain.TransactionWithDetails
	for rows.Next() {
		d, err := scanTransactionWithDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction details row: %w", err)
		}
		txns = append(txns, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating transaction details rows: %w", err)
	}
	return txns, nil
}

// ListTransactionsByAccount retrieves transactions for one account.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE account_id = $1 ORDER BY transaction_date DESC, created_at DESC;`
	return r.queryTransactions(ctx, query, accountID)
}

// ListTransactionsByCategory retrieves transactions for one category within
// its namespace.
func (r *PgxTransactionRepository) ListTransactionsByCategory(ctx context.Context, categoryType domain.CategoryType, categoryID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_type = $1 AND category_id = $2 ORDER BY transaction_date DESC, created_at DESC;`
	return r.queryTransactions(ctx, query, string(categoryType), categoryID)
}

// ListTransactionsByDateRange retrieves transactions whose date falls in the
// inclusive range.
func (r *PgxTransactionRepository) ListTransactionsByDateRange(ctx context.Context, dateRange domain.DateRange) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_date BETWEEN $1 AND $2 ORDER BY transaction_date DESC, created_at DESC;`
	return r.queryTransactions(ctx, query, dateRange.Start, dateRange.End)
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating transaction rows: %w", err)
	}
	return txns, nil
}

// ensureCategoryExists verifies the category resolves in the namespace
// matching the transaction type.
func (r *PgxTransactionRepository) ensureCategoryExists(ctx context.Context, tx pgx.Tx, categoryType, categoryID string) error {
	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE category_type = $1 AND category_id = $2);`,
		categoryType, categoryID,
	).Scan(&exists)
	if err != nil {
		if isInvalidTextRepresentation(err) {
			return fmt.Errorf("%w: %s category %s", apperrors.ErrNotFound, categoryType, categoryID)
		}
		return fmt.Errorf("failed to check category existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s category %s", apperrors.ErrNotFound, categoryType, categoryID)
	}
	return nil
}

func accountIDsOf(balanceChanges map[string]decimal.Decimal) []string {
	ids := make([]string, 0, len(balanceChanges))
	for id := range balanceChanges {
		ids = append(ids, id)
	}
	return ids
}
