package dto

import (
	"time"

	"github.com/pfa-dev/personal_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
// Amount positivity and the category namespace are enforced by the service.
type CreateTransactionRequest struct {
	Amount      decimal.Decimal     `json:"amount" binding:"required"`
	Description string              `json:"description"`
	Date        string              `json:"date" binding:"required,datetime=2006-01-02"`
	AccountID   string              `json:"accountID" binding:"required"`
	Type        domain.CategoryType `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	CategoryID  string              `json:"categoryID" binding:"required"`
}

// UpdateTransactionRequest is the patch value type for transaction edits.
// Absent fields keep the stored value; the merge happens once, in the
// transaction service, before the balance deltas are computed.
type UpdateTransactionRequest struct {
	Amount      *decimal.Decimal     `json:"amount"`
	Description *string              `json:"description"`
	Date        *string              `json:"date" binding:"omitempty,datetime=2006-01-02"`
	AccountID   *string              `json:"accountID"`
	Type        *domain.CategoryType `json:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
	CategoryID  *string              `json:"categoryID"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (r UpdateTransactionRequest) IsEmpty() bool {
	return r.Amount == nil && r.Description == nil && r.Date == nil &&
		r.AccountID == nil && r.Type == nil && r.CategoryID == nil
}

// ListTransactionsParams defines the query filters for listing transactions.
// At most one filter dimension is applied: account, category (with its
// type), explicit date range, or symbolic period.
type ListTransactionsParams struct {
	AccountID  string `form:"accountID"`
	CategoryID string `form:"categoryID"`
	Type       string `form:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
	StartDate  string `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate    string `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Period     string `form:"period" binding:"omitempty,period"`
	Details    bool   `form:"details"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string              `json:"transactionID"`
	Amount        decimal.Decimal     `json:"amount"`
	Description   string              `json:"description"`
	Date          string              `json:"date"`
	AccountID     string              `json:"accountID"`
	Type          domain.CategoryType `json:"type"`
	CategoryID    string              `json:"categoryID"`
	AccountName   string              `json:"accountName,omitempty"`
	CategoryName  string              `json:"categoryName,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		Amount:        txn.Amount,
		Description:   txn.Description,
		Date:          txn.Date.Format(time.DateOnly),
		AccountID:     txn.AccountID,
		Type:          txn.Type,
		CategoryID:    txn.CategoryID,
		CreatedAt:     txn.CreatedAt,
		LastUpdatedAt: txn.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ToTransactionDetailsResponse converts the denormalized projection.
func ToTransactionDetailsResponse(txn *domain.TransactionWithDetails) TransactionResponse {
	res := ToTransactionResponse(&txn.Transaction)
	res.AccountName = txn.AccountName
	res.CategoryName = txn.CategoryName
	return res
}

// ToTransactionDetailsResponses converts a slice of denormalized projections.
func ToTransactionDetailsResponses(txns []domain.TransactionWithDetails) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionDetailsResponse(&txns[i])
	}
	return res
}

// ListTransactionsResponse wraps the list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}
