package services

// ServiceProvider holds all service facades needed by the HTTP layer.
type ServiceProvider struct {
	AccountSvc        AccountSvcFacade
	LedgerSvc         LedgerSvcFacade
	ReconciliationSvc ReconciliationSvcFacade
	CategorySvc       CategorySvcFacade
}
