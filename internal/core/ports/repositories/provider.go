package repositories

// RepositoryProvider bundles the repositories a storage backend must supply.
// Both the pgsql and the in-memory backend return one of these.
type RepositoryProvider struct {
	AccountRepo     AccountRepository
	CategoryRepo    CategoryRepository
	TransactionRepo TransactionRepository
	SummaryRepo     SummaryRepository
}
