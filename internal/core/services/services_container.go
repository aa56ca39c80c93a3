package services

import (
	portsrepo "github.com/pfa-dev/personal_finance_app/internal/core/ports/repositories"
	portssvc "github.com/pfa-dev/personal_finance_app/internal/core/ports/services"
	"github.com/pfa-dev/personal_finance_app/internal/platform/config"
)

// NewServiceContainer creates the service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:  NewAccountService(repos.AccountRepo),
		Category: NewCategoryService(repos.CategoryRepo),
		Transaction: NewTransactionService(repos.TransactionRepo,
			WithTxnWeekStart(cfg.WeekStart),
		),
		Summary: NewSummaryService(repos.SummaryRepo,
			WithWeekStart(cfg.WeekStart),
		),
	}
}
