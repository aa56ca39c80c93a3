package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pfa-dev/personal_finance_app/internal/apperrors"
	"github.com/pfa-dev/personal_finance_app/internal/core/domain"
	portsrepo "github.com/pfa-dev/personal_finance_app/internal/core/ports/repositories"
)

// Store implements every repository interface with in-memory maps guarded by
// one mutex, so each exported call is an atomic scope: validations run first
// and either everything is applied or nothing is.
type Store struct {
	mu sync.RWMutex

	accounts     map[string]domain.Account
	categories   map[categoryKey]domain.Category
	transactions map[string]domain.Transaction
}

// categoryKey identifies a category. The income and expense namespaces are
// disjoint, so the id alone is never a key.
type categoryKey struct {
	Type domain.CategoryType
	ID   string
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		accounts:     make(map[string]domain.Account),
		categories:   make(map[categoryKey]domain.Category),
		transactions: make(map[string]domain.Transaction),
	}
}

// NewRepositoryProvider wires the in-memory backend. All repositories share
// one store so the referential checks see the same data.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	s := NewStore()
	return portsrepo.RepositoryProvider{
		AccountRepo:     s,
		CategoryRepo:    s,
		TransactionRepo: s,
		SummaryRepo:     s,
	}
}

var (
	_ portsrepo.AccountRepository     = (*Store)(nil)
	_ portsrepo.CategoryRepository    = (*Store)(nil)
	_ portsrepo.TransactionRepository = (*Store)(nil)
	_ portsrepo.SummaryRepository     = (*Store)(nil)
)

// --- AccountRepository ---

func (s *Store) SaveAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.AccountID]; exists {
		return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrConflict, account.AccountID)
	}
	s.accounts[account.AccountID] = account
	return nil
}

func (s *Store) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return &account, nil
}

func (s *Store) FindAccountsByIDs(_ context.Context, accountIDs []string) (map[string]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if account, ok := s.accounts[id]; ok {
			accounts[id] = account
		}
	}
	return accounts, nil
}

func (s *Store) ListAccounts(_ context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]domain.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Name < accounts[j].Name
	})
	return accounts, nil
}

func (s *Store) UpdateAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.accounts[account.AccountID]
	if !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, account.AccountID)
	}

	// The balance cache is owned by the transaction write path.
	stored.Name = account.Name
	stored.Type = account.Type
	stored.Description = account.Description
	stored.LastUpdatedAt = account.LastUpdatedAt
	s.accounts[account.AccountID] = stored
	return nil
}

func (s *Store) DeleteAccount(_ context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[accountID]; !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	for _, txn := range s.transactions {
		if txn.AccountID == accountID {
			return fmt.Errorf("%w: account %s is referenced by transactions", apperrors.ErrConflict, accountID)
		}
	}
	delete(s.accounts, accountID)
	return nil
}

// --- CategoryRepository ---

func (s *Store) SaveCategory(_ context.Context, category domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := categoryKey{Type: category.Type, ID: category.CategoryID}
	if _, exists := s.categories[key]; exists {
		return fmt.Errorf("%w: category with ID %s already exists", apperrors.ErrConflict, category.CategoryID)
	}
	if s.categoryNameTaken(category.Type, category.Name, "") {
		return fmt.Errorf("%w: category name %q already exists for type %s", apperrors.ErrConflict, category.Name, category.Type)
	}
	s.categories[key] = category
	return nil
}

func (s *Store) FindCategoryByID(_ context.Context, categoryType domain.CategoryType, categoryID string) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	category, ok := s.categories[categoryKey{Type: categoryType, ID: categoryID}]
	if !ok {
		return nil, fmt.Errorf("%w: %s category %s", apperrors.ErrNotFound, categoryType, categoryID)
	}
	return &category, nil
}

func (s *Store) ListCategories(_ context.Context, categoryType domain.CategoryType) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var categories []domain.Category
	for _, category := range s.categories {
		if category.Type == categoryType {
			categories = append(categories, category)
		}
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

func (s *Store) UpdateCategory(_ context.Context, category domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := categoryKey{Type: category.Type, ID: category.CategoryID}
	stored, ok := s.categories[key]
	if !ok {
		return fmt.Errorf("%w: %s category %s", apperrors.ErrNotFound, category.Type, category.CategoryID)
	}
	if s.categoryNameTaken(category.Type, category.Name, category.CategoryID) {
		return fmt.Errorf("%w: category name %q already exists for type %s", apperrors.ErrConflict, category.Name, category.Type)
	}

	stored.Name = category.Name
	stored.Description = category.Description
	stored.LastUpdatedAt = category.LastUpdatedAt
	s.categories[key] = stored
	return nil
}

func (s *Store) DeleteCategory(_ context.Context, categoryType domain.CategoryType, categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := categoryKey{Type: categoryType, ID: categoryID}
	if _, ok := s.categories[key]; !ok {
		return fmt.Errorf("%w: %s category %s", apperrors.ErrNotFound, categoryType, categoryID)
	}
	// Only references from the matching namespace block the delete.
	for _, txn := range s.transactions {
		if txn.CategoryID == categoryID && txn.Type == categoryType {
			return fmt.Errorf("%w: category %s is referenced by transactions", apperrors.ErrConflict, categoryID)
		}
	}
	delete(s.categories, key)
	return nil
}

func (s *Store) categoryNameTaken(categoryType domain.CategoryType, name, excludeID string) bool {
	for key, category := range s.categories {
		if key.Type != categoryType || key.ID == excludeID {
			continue
		}
		if strings.EqualFold(category.Name, name) {
			return true
		}
	}
	return false
}

// --- TransactionRepository ---

func (s *Store) SaveTransaction(_ context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkGuards(txn, balanceChanges); err != nil {
		return err
	}
	if _, exists := s.transactions[txn.TransactionID]; exists {
		return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrConflict, txn.TransactionID)
	}

	s.transactions[txn.TransactionID] = txn
	s.applyBalanceChanges(balanceChanges, txn.LastUpdatedAt)
	return nil
}

func (s *Store) UpdateTransaction(_ context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[txn.TransactionID]; !ok {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, txn.TransactionID)
	}
	if err := s.checkGuards(txn, balanceChanges); err != nil {
		return err
	}

	s.transactions[txn.TransactionID] = txn
	s.applyBalanceChanges(balanceChanges, txn.LastUpdatedAt)
	return nil
}

func (s *Store) DeleteTransaction(_ context.Context, transactionID string, balanceChanges map[string]decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[transactionID]; !ok {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	for accountID := range balanceChanges {
		if _, ok := s.accounts[accountID]; !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
	}

	delete(s.transactions, transactionID)
	s.applyBalanceChanges(balanceChanges, time.Now().UTC())
	return nil
}

func (s *Store) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	txn, ok := s.transactions[transactionID]
	if !ok {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return &txn, nil
}

func (s *Store) FindTransactionWithDetails(_ context.Context, transactionID string) (*domain.TransactionWithDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	txn, ok := s.transactions[transactionID]
	if !ok {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	d := s.withDetails(txn)
	return &d, nil
}

func (s *Store) ListTransactions(_ context.Context) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listWhere(func(domain.Transaction) bool { return true }), nil
}

func (s *Store) ListTransactionsWithDetails(_ context.Context) ([]domain.TransactionWithDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	txns := s.listWhere(func(domain.Transaction) bool { return true })
	details := make([]domain.TransactionWithDetails, len(txns))
	for i, txn := range txns {
		details[i] = s.withDetails(txn)
	}
	return details, nil
}

func (s *Store) ListTransactionsByAccount(_ context.Context, accountID string) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listWhere(func(t domain.Transaction) bool { return t.AccountID == accountID }), nil
}

func (s *Store) ListTransactionsByCategory(_ context.Context, categoryType domain.CategoryType, categoryID string) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listWhere(func(t domain.Transaction) bool {
		return t.CategoryID == categoryID && t.Type == categoryType
	}), nil
}

func (s *Store) ListTransactionsByDateRange(_ context.Context, dateRange domain.DateRange) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listWhere(func(t domain.Transaction) bool {
		return !t.Date.Before(dateRange.Start) && !t.Date.After(dateRange.End)
	}), nil
}

// checkGuards validates every reference a transaction write depends on.
// Called with the lock held, before any mutation.
func (s *Store) checkGuards(txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	if _, ok := s.accounts[txn.AccountID]; !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, txn.AccountID)
	}
	for accountID := range balanceChanges {
		if _, ok := s.accounts[accountID]; !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
	}
	if _, ok := s.categories[categoryKey{Type: txn.Type, ID: txn.CategoryID}]; !ok {
		return fmt.Errorf("%w: %s category %s", apperrors.ErrNotFound, txn.Type, txn.CategoryID)
	}
	return nil
}

// applyBalanceChanges adds the signed deltas to the cached balances. Called
// with the lock held, after all guards passed.
func (s *Store) applyBalanceChanges(balanceChanges map[string]decimal.Decimal, now time.Time) {
	for accountID, delta := range balanceChanges {
		if delta.IsZero() {
			continue
		}
		account := s.accounts[accountID]
		account.Balance = account.Balance.Add(delta)
		account.LastUpdatedAt = now
		s.accounts[accountID] = account
	}
}

func (s *Store) listWhere(keep func(domain.Transaction) bool) []domain.Transaction {
	var txns []domain.Transaction
	for _, txn := range s.transactions {
		if keep(txn) {
			txns = append(txns, txn)
		}
	}
	sort.Slice(txns, func(i, j int) bool {
		if !txns[i].Date.Equal(txns[j].Date) {
			return txns[i].Date.After(txns[j].Date)
		}
		return txns[i].CreatedAt.After(txns[j].CreatedAt)
	})
	return txns
}

func (s *Store) withDetails(txn domain.Transaction) domain.TransactionWithDetails {
	d := domain.TransactionWithDetails{Transaction: txn}
	if account, ok := s.accounts[txn.AccountID]; ok {
		d.AccountName = account.Name
	}
	if category, ok := s.categories[categoryKey{Type: txn.Type, ID: txn.CategoryID}]; ok {
		d.CategoryName = category.Name
	}
	return d
}

// --- SummaryRepository ---

func (s *Store) TotalBalance(_ context.Context) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, account := range s.accounts {
		total = total.Add(account.Balance)
	}
	return total, nil
}

func (s *Store) SumAmountByType(_ context.Context, categoryType domain.CategoryType, dateRange domain.DateRange) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, txn := range s.transactions {
		if txn.Type == categoryType && inRange(txn.Date, dateRange) {
			total = total.Add(txn.Amount)
		}
	}
	return total, nil
}

func (s *Store) SumByCategory(_ context.Context, categoryType domain.CategoryType, dateRange domain.DateRange) ([]domain.CategorySum, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[string]decimal.Decimal)
	for _, txn := range s.transactions {
		if txn.Type == categoryType && inRange(txn.Date, dateRange) {
			totals[txn.CategoryID] = totals[txn.CategoryID].Add(txn.Amount)
		}
	}

	var sums []domain.CategorySum
	for categoryID, total := range totals {
		if !total.IsPositive() {
			continue
		}
		sum := domain.CategorySum{CategoryID: categoryID, Total: total}
		if category, ok := s.categories[categoryKey{Type: categoryType, ID: categoryID}]; ok {
			sum.CategoryName = category.Name
		}
		sums = append(sums, sum)
	}
	sort.Slice(sums, func(i, j int) bool {
		if !sums[i].Total.Equal(sums[j].Total) {
			return sums[i].Total.GreaterThan(sums[j].Total)
		}
		return sums[i].CategoryName < sums[j].CategoryName
	})
	return sums, nil
}

func (s *Store) MonthlyTotals(_ context.Context, year int) ([]domain.MonthlySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	income := make(map[int]decimal.Decimal)
	expense := make(map[int]decimal.Decimal)
	for _, txn := range s.transactions {
		if txn.Date.Year() != year {
			continue
		}
		month := int(txn.Date.Month())
		switch txn.Type {
		case domain.Income:
			income[month] = income[month].Add(txn.Amount)
		case domain.Expense:
			expense[month] = expense[month].Add(txn.Amount)
		}
	}

	var months []domain.MonthlySummary
	for month := 1; month <= 12; month++ {
		in, hasIn := income[month]
		out, hasOut := expense[month]
		if !hasIn && !hasOut {
			continue
		}
		months = append(months, domain.MonthlySummary{Month: month, Income: in, Expense: out})
	}
	return months, nil
}

func inRange(date time.Time, dateRange domain.DateRange) bool {
	return !date.Before(dateRange.Start) && !date.After(dateRange.End)
}
