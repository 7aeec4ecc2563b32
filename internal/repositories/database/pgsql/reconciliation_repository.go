package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/socioges/treasury_backend/internal/apperrors"
	"github.com/socioges/treasury_backend/internal/core/domain"
	portsrepo "github.com/socioges/treasury_backend/internal/core/ports/repositories"
	"github.com/socioges/treasury_backend/internal/models"
	"github.com/socioges/treasury_backend/internal/utils/mapping"
)

const reconciliationColumns = `reconciliation_id, account_id, reconciliation_date, opening_balance, closing_balance, expected_balance, difference, notes, created_at, created_by, last_updated_at, last_updated_by`

type PgxReconciliationRepository struct {
	BaseRepository
}

// newPgxReconciliationRepository creates a new repository for reconciliation data.
func newPgxReconciliationRepository(pool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.ReconciliationRepositoryFacade {
	return &PgxReconciliationRepository{BaseRepository: BaseRepository{Pool: pool, LockTimeout: lockTimeout}}
}

// Ensure PgxReconciliationRepository implements portsrepo.ReconciliationRepositoryFacade
var _ portsrepo.ReconciliationRepositoryFacade = (*PgxReconciliationRepository)(nil)

func scanReconciliation(row pgx.Row) (models.CashReconciliation, error) {
	var m models.CashReconciliation
	err := row.Scan(
		&m.ReconciliationID,
		&m.AccountID,
		&m.Date,
		&m.OpeningBalance,
		&m.ClosingBalance,
		&m.ExpectedBalance,
		&m.Difference,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindReconciliationByID retrieves a snapshot by its ID.
func (r *PgxReconciliationRepository) FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.CashReconciliation, error) {
	query := `SELECT ` + reconciliationColumns + ` FROM cash_reconciliations WHERE reconciliation_id = $1;`

	m, err := scanReconciliation(r.Pool.QueryRow(ctx, query, reconciliationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("reconciliation %s not found", reconciliationID))
		}
		return nil, fmt.Errorf("failed to find reconciliation %s: %w", reconciliationID, err)
	}

	rec := mapping.ToDomainReconciliation(m)
	return &rec, nil
}

// FindLatestReconciliationBefore finds the most recent snapshot for the
// account strictly before the given date.
func (r *PgxReconciliationRepository) FindLatestReconciliationBefore(ctx context.Context, accountID string, date time.Time) (*domain.CashReconciliation, error) {
	query := `
		SELECT ` + reconciliationColumns + `
		FROM cash_reconciliations
		WHERE account_id = $1 AND reconciliation_date < $2::date
		ORDER BY reconciliation_date DESC
		LIMIT 1;
	`
	m, err := scanReconciliation(r.Pool.QueryRow(ctx, query, accountID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no reconciliation for account %s before %s", accountID, date.Format("2006-01-02")))
		}
		return nil, fmt.Errorf("failed to find latest reconciliation: %w", err)
	}

	rec := mapping.ToDomainReconciliation(m)
	return &rec, nil
}

// ListReconciliationsByAccount retrieves snapshots, newest date first.
func (r *PgxReconciliationRepository) ListReconciliationsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.CashReconciliation, error) {
	query := `
		SELECT ` + reconciliationColumns + `
		FROM cash_reconciliations
		WHERE account_id = $1
		ORDER BY reconciliation_date DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reconciliations: %w", err)
	}
	defer rows.Close()

	var ms []models.CashReconciliation
	for rows.Next() {
		m, err := scanReconciliation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reconciliation: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating reconciliations: %w", err)
	}
	return mapping.ToDomainReconciliationSlice(ms), nil
}

// SumEntriesForDate sums income and expense amounts for one calendar day.
// COALESCE keeps a day with no records at zero rather than NULL.
func (r *PgxReconciliationRepository) SumEntriesForDate(ctx context.Context, accountID string, date time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE entry_kind = 'INCOME'), 0),
			COALESCE(SUM(amount) FILTER (WHERE entry_kind = 'EXPENSE'), 0)
		FROM ledger_entries
		WHERE account_id = $1 AND entry_date = $2::date;
	`
	var incomes, expenses decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID, date).Scan(&incomes, &expenses); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum entries: %w", err)
	}
	return incomes, expenses, nil
}

// SumTransfersForDate sums incoming and outgoing transfer amounts for one
// calendar day.
func (r *PgxReconciliationRepository) SumTransfersForDate(ctx context.Context, accountID string, date time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE to_account_id = $1), 0),
			COALESCE(SUM(amount) FILTER (WHERE from_account_id = $1), 0)
		FROM transfers
		WHERE (from_account_id = $1 OR to_account_id = $1) AND transfer_date = $2::date;
	`
	var incoming, outgoing decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID, date).Scan(&incoming, &outgoing); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum transfers: %w", err)
	}
	return incoming, outgoing, nil
}

// SaveReconciliation inserts a new snapshot. The unique index on
// (account_id, reconciliation_date) makes a second snapshot for the same day
// fail as ErrDuplicate.
func (r *PgxReconciliationRepository) SaveReconciliation(ctx context.Context, rec domain.CashReconciliation) error {
	m := mapping.ToModelReconciliation(rec)

	query := `
		INSERT INTO cash_reconciliations (` + reconciliationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ReconciliationID,
		m.AccountID,
		m.Date,
		m.OpeningBalance,
		m.ClosingBalance,
		m.ExpectedBalance,
		m.Difference,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save reconciliation %s: %w", m.ReconciliationID, mapPgError(err))
	}
	return nil
}

// UpdateReconciliation amends closing balance, difference and notes only.
func (r *PgxReconciliationRepository) UpdateReconciliation(ctx context.Context, rec domain.CashReconciliation) error {
	m := mapping.ToModelReconciliation(rec)

	query := `
		UPDATE cash_reconciliations
		SET closing_balance = $2, difference = $3, notes = $4, last_updated_at = $5, last_updated_by = $6
		WHERE reconciliation_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ReconciliationID,
		m.ClosingBalance,
		m.Difference,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update reconciliation %s: %w", m.ReconciliationID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("reconciliation %s not found", m.ReconciliationID))
	}
	return nil
}
