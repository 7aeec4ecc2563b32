package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/socioges/treasury_backend/internal/apperrors"
	"github.com/socioges/treasury_backend/internal/core/domain"
	portsrepo "github.com/socioges/treasury_backend/internal/core/ports/repositories"
	"github.com/socioges/treasury_backend/internal/models"
	"github.com/socioges/treasury_backend/internal/utils/accounting"
	"github.com/socioges/treasury_backend/internal/utils/mapping"
)

const entryColumns = `entry_id, entry_kind, account_id, category_id, amount, entry_date, description, created_at, created_by, last_updated_at, last_updated_by`

const transferColumns = `transfer_id, from_account_id, to_account_id, amount, transfer_type_id, transfer_date, description, created_at, created_by, last_updated_at, last_updated_by`

// PgxLedgerRepository owns the transactions behind every ledger mutation:
// record write plus account balance deltas commit together or not at all.
type PgxLedgerRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxLedgerRepository creates a new repository for entry and transfer data.
func newPgxLedgerRepository(pool *pgxpool.Pool, lockTimeout time.Duration, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool, LockTimeout: lockTimeout},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func scanEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryKind,
		&m.AccountID,
		&m.CategoryID,
		&m.Amount,
		&m.EntryDate,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanTransfer(row pgx.Row) (models.Transfer, error) {
	var m models.Transfer
	err := row.Scan(
		&m.TransferID,
		&m.FromAccountID,
		&m.ToAccountID,
		&m.Amount,
		&m.TransferTypeID,
		&m.TransferDate,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// lockAccounts acquires the row locks for every account the deltas touch.
// Must run before any statement that references the accounts: an insert or
// update first would take the FK's share lock on the account rows, and two
// concurrent mutations on the same account could then deadlock upgrading to
// the exclusive lock.
func (r *PgxLedgerRepository) lockAccounts(ctx context.Context, tx pgx.Tx, changes accounting.BalanceChanges) error {
	_, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, changes.AccountIDs())
	return err
}

// FindEntryByID retrieves an entry constrained to one kind, so an income ID
// passed to an expense route is a not-found, not a leak.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, kind domain.EntryKind, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE entry_id = $1 AND entry_kind = $2;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID, string(kind)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("entry %s not found", entryID))
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}

	entry := mapping.ToDomainLedgerEntry(m)
	return &entry, nil
}

// ListEntriesByAccount retrieves entries of one kind, newest date first.
func (r *PgxLedgerRepository) ListEntriesByAccount(ctx context.Context, kind domain.EntryKind, accountID string, limit int, offset int) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE account_id = $1 AND entry_kind = $2
		ORDER BY entry_date DESC, created_at DESC
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, string(kind), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var ms []models.LedgerEntry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating entries: %w", err)
	}
	return mapping.ToDomainLedgerEntrySlice(ms), nil
}

// SaveEntry inserts the entry and applies its balance effect in one
// transaction.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry, changes accounting.BalanceChanges) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.saveEntryInTx(ctx, tx, entry, changes); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// saveEntryInTx locks the account rows, inserts the entry, then applies the
// deltas. Lock acquisition comes first; see lockAccounts.
func (r *PgxLedgerRepository) saveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry, changes accounting.BalanceChanges) error {
	if err := r.lockAccounts(ctx, tx, changes); err != nil {
		return err
	}

	m := mapping.ToModelLedgerEntry(entry)
	query := `
		INSERT INTO ledger_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID,
		m.EntryKind,
		m.AccountID,
		m.CategoryID,
		m.Amount,
		m.EntryDate,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry %s: %w", m.EntryID, mapPgError(err))
	}

	return r.accountRepo.ApplyBalanceChanges(ctx, tx, changes, entry.CreatedBy, entry.CreatedAt)
}

// lockEntryRow re-reads the stored entry under a row lock and verifies it
// still matches the version the caller's deltas were computed from. A
// concurrent edit between read and lock surfaces as ErrConflict.
func (r *PgxLedgerRepository) lockEntryRow(ctx context.Context, tx pgx.Tx, prev domain.LedgerEntry) error {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE entry_id = $1 AND entry_kind = $2 FOR UPDATE;`

	m, err := scanEntry(tx.QueryRow(ctx, query, prev.EntryID, string(prev.EntryKind)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError(fmt.Sprintf("entry %s not found", prev.EntryID))
		}
		return fmt.Errorf("failed to lock entry %s: %w", prev.EntryID, mapPgError(err))
	}

	stored := mapping.ToDomainLedgerEntry(m)
	if !stored.Amount.Equal(prev.Amount) || stored.AccountID != prev.AccountID || !stored.LastUpdatedAt.Equal(prev.LastUpdatedAt) {
		return fmt.Errorf("%w: entry %s was modified concurrently", apperrors.ErrConflict, prev.EntryID)
	}
	return nil
}

// UpdateEntry persists the new version and applies the merged deltas. Lock
// order is entry row, then account rows, then writes.
func (r *PgxLedgerRepository) UpdateEntry(ctx context.Context, prev domain.LedgerEntry, next domain.LedgerEntry, changes accounting.BalanceChanges) error {
	m := mapping.ToModelLedgerEntry(next)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockEntryRow(ctx, tx, prev); err != nil {
		return err
	}
	if err := r.lockAccounts(ctx, tx, changes); err != nil {
		return err
	}

	query := `
		UPDATE ledger_entries
		SET account_id = $2, category_id = $3, amount = $4, entry_date = $5, description = $6, last_updated_at = $7, last_updated_by = $8
		WHERE entry_id = $1;
	`
	_, err = tx.Exec(ctx, query,
		m.EntryID,
		m.AccountID,
		m.CategoryID,
		m.Amount,
		m.EntryDate,
		m.Description,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry %s: %w", m.EntryID, mapPgError(err))
	}

	if err := r.accountRepo.ApplyBalanceChanges(ctx, tx, changes, next.LastUpdatedBy, next.LastUpdatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteEntry removes the entry and reverses its balance effect.
func (r *PgxLedgerRepository) DeleteEntry(ctx context.Context, prev domain.LedgerEntry, changes accounting.BalanceChanges) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockEntryRow(ctx, tx, prev); err != nil {
		return err
	}
	if err := r.lockAccounts(ctx, tx, changes); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM ledger_entries WHERE entry_id = $1;`, prev.EntryID); err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", prev.EntryID, mapPgError(err))
	}

	if err := r.accountRepo.ApplyBalanceChanges(ctx, tx, changes, prev.LastUpdatedBy, time.Now()); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindTransferByID retrieves a transfer by its ID.
func (r *PgxLedgerRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE transfer_id = $1;`

	m, err := scanTransfer(r.Pool.QueryRow(ctx, query, transferID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transfer %s not found", transferID))
		}
		return nil, fmt.Errorf("failed to find transfer %s: %w", transferID, err)
	}

	transfer := mapping.ToDomainTransfer(m)
	return &transfer, nil
}

// ListTransfersByAccount retrieves transfers touching the account as either
// leg, newest date first.
func (r *PgxLedgerRepository) ListTransfersByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers
		WHERE from_account_id = $1 OR to_account_id = $1
		ORDER BY transfer_date DESC, created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	defer rows.Close()

	var ms []models.Transfer
	for rows.Next() {
		m, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating transfers: %w", err)
	}
	return mapping.ToDomainTransferSlice(ms), nil
}

// SaveTransfer inserts the transfer and moves both balances in one
// transaction. A half-applied transfer is impossible by construction.
func (r *PgxLedgerRepository) SaveTransfer(ctx context.Context, transfer domain.Transfer, changes accounting.BalanceChanges) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.saveTransferInTx(ctx, tx, transfer, changes); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// saveTransferInTx locks both account rows, inserts the transfer, then
// applies the deltas. Lock acquisition comes first; see lockAccounts.
func (r *PgxLedgerRepository) saveTransferInTx(ctx context.Context, tx pgx.Tx, transfer domain.Transfer, changes accounting.BalanceChanges) error {
	if err := r.lockAccounts(ctx, tx, changes); err != nil {
		return err
	}

	m := mapping.ToModelTransfer(transfer)
	query := `
		INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		m.TransferID,
		m.FromAccountID,
		m.ToAccountID,
		m.Amount,
		m.TransferTypeID,
		m.TransferDate,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transfer %s: %w", m.TransferID, mapPgError(err))
	}

	return r.accountRepo.ApplyBalanceChanges(ctx, tx, changes, transfer.CreatedBy, transfer.CreatedAt)
}

func (r *PgxLedgerRepository) lockTransferRow(ctx context.Context, tx pgx.Tx, prev domain.Transfer) error {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE transfer_id = $1 FOR UPDATE;`

	m, err := scanTransfer(tx.QueryRow(ctx, query, prev.TransferID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError(fmt.Sprintf("transfer %s not found", prev.TransferID))
		}
		return fmt.Errorf("failed to lock transfer %s: %w", prev.TransferID, mapPgError(err))
	}

	stored := mapping.ToDomainTransfer(m)
	if !stored.Amount.Equal(prev.Amount) || stored.FromAccountID != prev.FromAccountID || stored.ToAccountID != prev.ToAccountID || !stored.LastUpdatedAt.Equal(prev.LastUpdatedAt) {
		return fmt.Errorf("%w: transfer %s was modified concurrently", apperrors.ErrConflict, prev.TransferID)
	}
	return nil
}

// UpdateTransfer persists the new version and applies the merged deltas,
// which may touch up to four accounts when both legs move.
func (r *PgxLedgerRepository) UpdateTransfer(ctx context.Context, prev domain.Transfer, next domain.Transfer, changes accounting.BalanceChanges) error {
	m := mapping.ToModelTransfer(next)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockTransferRow(ctx, tx, prev); err != nil {
		return err
	}
	if err := r.lockAccounts(ctx, tx, changes); err != nil {
		return err
	}

	query := `
		UPDATE transfers
		SET from_account_id = $2, to_account_id = $3, amount = $4, transfer_type_id = $5, transfer_date = $6, description = $7, last_updated_at = $8, last_updated_by = $9
		WHERE transfer_id = $1;
	`
	_, err = tx.Exec(ctx, query,
		m.TransferID,
		m.FromAccountID,
		m.ToAccountID,
		m.Amount,
		m.TransferTypeID,
		m.TransferDate,
		m.Description,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transfer %s: %w", m.TransferID, mapPgError(err))
	}

	if err := r.accountRepo.ApplyBalanceChanges(ctx, tx, changes, next.LastUpdatedBy, next.LastUpdatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteTransfer removes the transfer and restores both balances.
func (r *PgxLedgerRepository) DeleteTransfer(ctx context.Context, prev domain.Transfer, changes accounting.BalanceChanges) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockTransferRow(ctx, tx, prev); err != nil {
		return err
	}
	if err := r.lockAccounts(ctx, tx, changes); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM transfers WHERE transfer_id = $1;`, prev.TransferID); err != nil {
		return fmt.Errorf("failed to delete transfer %s: %w", prev.TransferID, mapPgError(err))
	}

	if err := r.accountRepo.ApplyBalanceChanges(ctx, tx, changes, prev.LastUpdatedBy, time.Now()); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
