package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/socioges/treasury_backend/internal/core/domain"
	"github.com/socioges/treasury_backend/internal/utils/accounting"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's descriptive fields.
	// Balances are never written through this method.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account that has no referencing ledger
	// history. Returns apperrors.ErrConstraint when history exists.
	DeleteAccount(ctx context.Context, accountID string) error

	// OverrideAccountBalance sets current_balance to an explicit value under
	// a row lock and returns the balance it replaced. Administrative escape
	// hatch; callers must log before/after values.
	OverrideAccountBalance(ctx context.Context, accountID string, newBalance decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error)
}

// AccountTransactionSupport defines the balance-mutation primitives used by
// the ledger repositories inside their transactions.
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects the accounts and locks their rows
	// (SELECT ... FOR UPDATE) in ascending account id order, so concurrent
	// transfers over the same pair cannot deadlock. Must be called within a
	// transaction. Returns apperrors.ErrNotFound if any account is missing.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceDelta atomically adds a signed amount to one account's
	// current_balance. Must be called within a transaction that already
	// holds the row lock.
	ApplyBalanceDelta(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, userID string, now time.Time) error

	// ApplyBalanceChanges applies every non-zero delta in the map through
	// ApplyBalanceDelta, in ascending account id order.
	ApplyBalanceChanges(ctx context.Context, tx pgx.Tx, changes accounting.BalanceChanges, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
