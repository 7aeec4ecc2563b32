package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for transaction management.
// Every balance mutation runs inside exactly one transaction obtained here;
// "commit, then do more work" patterns are not allowed.
type TransactionManager interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction.
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
