package mapping

import (
	"github.com/pfa-dev/personal_finance_app/internal/core/domain"
	"github.com/pfa-dev/personal_finance_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		Amount:          d.Amount,
		Description:     d.Description,
		TransactionDate: d.Date,
		AccountID:       d.AccountID,
		TransactionType: string(d.Type),
		CategoryID:      d.CategoryID,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		Amount:        m.Amount,
		Description:   m.Description,
		Date:          m.TransactionDate,
		AccountID:     m.AccountID,
		Type:          domain.CategoryType(m.TransactionType),
		CategoryID:    m.CategoryID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactions converts a slice of model transactions
func ToDomainTransactions(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
