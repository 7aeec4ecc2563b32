package services

import (
	"context"
	"time"

	"github.com/socioges/treasury_backend/internal/core/domain"
	"github.com/socioges/treasury_backend/internal/dto"
)

// ReconciliationSvcFacade defines the reconciliation operations.
type ReconciliationSvcFacade interface {
	// CalculateExpectedBalance replays opening balance plus the target day's
	// ledger history, without trusting the stored current balance. Pure
	// read: invoking it twice with no intervening mutation returns
	// identical results.
	CalculateExpectedBalance(ctx context.Context, accountID string, date time.Time) (*domain.ExpectedBalance, error)

	CreateReconciliation(ctx context.Context, req dto.CreateReconciliationRequest, creatorUserID string) (*domain.CashReconciliation, error)
	GetReconciliationByID(ctx context.Context, reconciliationID string) (*domain.CashReconciliation, error)
	ListReconciliationsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.CashReconciliation, error)

	// UpdateReconciliation amends the counted closing balance and/or notes;
	// the stored expected balance is historical and never recalculated.
	UpdateReconciliation(ctx context.Context, reconciliationID string, req dto.UpdateReconciliationRequest, userID string) (*domain.CashReconciliation, error)
}
