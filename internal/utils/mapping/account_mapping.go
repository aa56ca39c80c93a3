package mapping

import (
	"github.com/pfa-dev/personal_finance_app/internal/core/domain"
	"github.com/pfa-dev/personal_finance_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		Name:        d.Name,
		AccountType: string(d.Type),
		Balance:     d.Balance,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		Name:        m.Name,
		Type:        domain.AccountType(m.AccountType),
		Balance:     m.Balance,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
