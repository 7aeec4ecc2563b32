package services

import (
	portsrepo "github.com/socioges/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/socioges/treasury_backend/internal/core/ports/services"
)

// NewServiceProvider wires every service against the repository provider.
func NewServiceProvider(repos *portsrepo.RepositoryProvider) *portssvc.ServiceProvider {
	return &portssvc.ServiceProvider{
		AccountSvc:        NewAccountService(repos.AccountRepo),
		LedgerSvc:         NewLedgerService(repos.LedgerRepo, repos.AccountRepo, repos.CategoryRepo),
		ReconciliationSvc: NewReconciliationService(repos.ReconciliationRepo, repos.AccountRepo),
		CategorySvc:       NewCategoryService(repos.CategoryRepo),
	}
}
