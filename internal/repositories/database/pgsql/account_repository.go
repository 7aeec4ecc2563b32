package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/socioges/treasury_backend/internal/apperrors"
	"github.com/socioges/treasury_backend/internal/core/domain"
	portsrepo "github.com/socioges/treasury_backend/internal/core/ports/repositories"
	"github.com/socioges/treasury_backend/internal/models"
	"github.com/socioges/treasury_backend/internal/utils/accounting"
	"github.com/socioges/treasury_backend/internal/utils/mapping"
)

const accountColumns = `account_id, name, account_type, currency_code, initial_balance, current_balance, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool, LockTimeout: lockTimeout}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Name,
		&m.AccountType,
		&m.CurrencyCode,
		&m.InitialBalance,
		&m.CurrentBalance,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.AccountType,
		m.CurrencyCode,
		m.InitialBalance,
		m.CurrentBalance,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, mapPgError(err))
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// FindAccountsByIDs retrieves multiple accounts keyed by ID. Missing IDs are
// simply absent from the map.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`

	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		result[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating accounts: %w", err)
	}
	return result, nil
}

// ListAccounts retrieves a paginated list of accounts ordered by name.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY name LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var ms []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating accounts: %w", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// UpdateAccount persists descriptive fields. Balances and initial_balance are
// deliberately not in the SET list; they only move through the delta
// primitives or OverrideAccountBalance.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET name = $2, description = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.Description,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", m.AccountID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", m.AccountID))
	}
	return nil
}

// DeleteAccount removes an account with no ledger history. Referencing rows
// make the delete fail on the FK constraints, surfaced as ErrConstraint.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
	}
	return nil
}

// OverrideAccountBalance sets current_balance to an explicit value under a
// row lock and returns the balance it replaced.
func (r *PgxAccountRepository) OverrideAccountBalance(ctx context.Context, accountID string, newBalance decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer r.Rollback(ctx, tx)

	var oldBalance decimal.Decimal
	err = tx.QueryRow(ctx, `SELECT current_balance FROM accounts WHERE account_id = $1 FOR UPDATE;`, accountID).Scan(&oldBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
		}
		return decimal.Zero, fmt.Errorf("failed to lock account %s: %w", accountID, mapPgError(err))
	}

	_, err = tx.Exec(ctx, `
		UPDATE accounts
		SET current_balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`, accountID, newBalance, now, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to override balance of account %s: %w", accountID, mapPgError(err))
	}

	if err := r.Commit(ctx, tx); err != nil {
		return decimal.Zero, err
	}
	return oldBalance, nil
}

// FindAccountsByIDsForUpdate locks the account rows within the given
// transaction. Ordering by account_id keeps lock acquisition deterministic
// across concurrent mutations, which rules out lock-order deadlocks.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`

	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", mapPgError(err))
	}
	defer rows.Close()

	result := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account: %w", err)
		}
		result[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating locked accounts: %w", mapPgError(err))
	}

	for _, id := range accountIDs {
		if _, found := result[id]; !found {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", id))
		}
	}
	return result, nil
}

// ApplyBalanceDelta adds a signed amount to one account's running balance.
// The caller must already hold the row lock via FindAccountsByIDsForUpdate.
func (r *PgxAccountRepository) ApplyBalanceDelta(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, userID string, now time.Time) error {
	tag, err := tx.Exec(ctx, `
		UPDATE accounts
		SET current_balance = current_balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`, accountID, delta, now, userID)
	if err != nil {
		return fmt.Errorf("failed to apply balance delta to account %s: %w", accountID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
	}
	return nil
}

// ApplyBalanceChanges applies every non-zero delta in ascending account id
// order, matching the lock acquisition order.
func (r *PgxAccountRepository) ApplyBalanceChanges(ctx context.Context, tx pgx.Tx, changes accounting.BalanceChanges, userID string, now time.Time) error {
	ids := changes.AccountIDs()
	sort.Strings(ids)

	for _, id := range ids {
		delta := changes[id]
		if delta.IsZero() {
			continue
		}
		if err := r.ApplyBalanceDelta(ctx, tx, id, delta, userID, now); err != nil {
			return err
		}
	}
	return nil
}
