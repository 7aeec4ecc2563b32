package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/socioges/treasury_backend/internal/apperrors"
)

// Postgres error codes this layer cares about.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgLockNotAvailable    = "55P03"
	pgDeadlockDetected    = "40P01"
	pgSerializationError  = "40001"
)

// BaseRepository provides common functionality for all repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool

	// LockTimeout bounds how long a transaction waits on a row lock before
	// failing with a retryable conflict instead of queueing indefinitely.
	LockTimeout time.Duration
}

// Begin starts a new database transaction with the configured lock timeout.
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	if r.LockTimeout > 0 {
		// SET LOCAL scopes the timeout to this transaction only.
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.LockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, stmt); err != nil {
			_ = tx.Rollback(ctx)
			return nil, apperrors.NewAppError(500, "failed to set lock timeout", err)
		}
	}
	return tx, nil
}

// Commit commits a transaction.
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", mapPgError(err))
	}
	return nil
}

// Rollback rolls back a transaction.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// mapPgError translates driver-level Postgres errors into the sentinel errors
// services branch on. Lock-wait timeouts and deadlocks both surface as the
// retryable ErrConflict.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, pgErr.ConstraintName)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: %s", apperrors.ErrConstraint, pgErr.ConstraintName)
	case pgLockNotAvailable, pgDeadlockDetected, pgSerializationError:
		return fmt.Errorf("%w: %s", apperrors.ErrConflict, pgErr.Message)
	}
	return err
}
