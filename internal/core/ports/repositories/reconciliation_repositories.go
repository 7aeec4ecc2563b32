package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/socioges/treasury_backend/internal/core/domain"
)

// ReconciliationReader defines the pure read operations behind the expected
// balance calculation. None of these may take locks or write anything.
type ReconciliationReader interface {
	FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.CashReconciliation, error)

	// FindLatestReconciliationBefore finds the most recent reconciliation
	// for the account strictly before the given date. Returns
	// apperrors.ErrNotFound when the account has never been reconciled.
	FindLatestReconciliationBefore(ctx context.Context, accountID string, date time.Time) (*domain.CashReconciliation, error)

	ListReconciliationsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.CashReconciliation, error)

	// SumEntriesForDate sums income and expense amounts for the account
	// restricted to the target date. Both sums are returned positive.
	SumEntriesForDate(ctx context.Context, accountID string, date time.Time) (incomes decimal.Decimal, expenses decimal.Decimal, err error)

	// SumTransfersForDate sums incoming and outgoing transfer amounts for
	// the account restricted to the target date. Both sums are positive.
	SumTransfersForDate(ctx context.Context, accountID string, date time.Time) (incoming decimal.Decimal, outgoing decimal.Decimal, err error)
}

// ReconciliationWriter defines write operations for reconciliation snapshots.
type ReconciliationWriter interface {
	// SaveReconciliation inserts a new snapshot. Returns
	// apperrors.ErrDuplicate when one already exists for (account, date).
	SaveReconciliation(ctx context.Context, rec domain.CashReconciliation) error

	// UpdateReconciliation amends closing balance, difference and notes.
	// Opening and expected balances are frozen at creation time.
	UpdateReconciliation(ctx context.Context, rec domain.CashReconciliation) error
}

// ReconciliationRepositoryFacade combines both reconciliation interfaces.
type ReconciliationRepositoryFacade interface {
	ReconciliationReader
	ReconciliationWriter
}
