package pgsql

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/socioges/treasury_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx repository against one pool. The
// lock timeout applies to all transactions started by these repositories.
func NewRepositoryProvider(dbPool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool, lockTimeout)
	ledgerRepo := newPgxLedgerRepository(dbPool, lockTimeout, accountRepo)
	reconciliationRepo := newPgxReconciliationRepository(dbPool, lockTimeout)
	categoryRepo := newPgxCategoryRepository(dbPool, lockTimeout)

	return portsrepo.RepositoryProvider{
		AccountRepo:        accountRepo,
		LedgerRepo:         ledgerRepo,
		ReconciliationRepo: reconciliationRepo,
		CategoryRepo:       categoryRepo,
	}
}
