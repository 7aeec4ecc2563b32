package repositories

import (
	"context"

	"github.com/socioges/treasury_backend/internal/core/domain"
	"github.com/socioges/treasury_backend/internal/utils/accounting"
)

// EntryReader defines read operations for expense/income records.
type EntryReader interface {
	// FindEntryByID retrieves an entry by ID, constrained to the given kind.
	FindEntryByID(ctx context.Context, kind domain.EntryKind, entryID string) (*domain.LedgerEntry, error)

	// ListEntriesByAccount retrieves a paginated list of entries of one kind
	// for an account, newest entry date first.
	ListEntriesByAccount(ctx context.Context, kind domain.EntryKind, accountID string, limit int, offset int) ([]domain.LedgerEntry, error)
}

// EntryWriter defines the atomic mutation operations for expense/income
// records. Each method runs as one database transaction: record write plus
// every implied balance delta land together or not at all.
type EntryWriter interface {
	// SaveEntry inserts the entry and applies its balance effect.
	SaveEntry(ctx context.Context, entry domain.LedgerEntry, changes accounting.BalanceChanges) error

	// UpdateEntry persists the new version of the entry and applies the
	// already-merged reverse-then-apply deltas. The stored row is re-read
	// under lock and compared against prev; a mismatch (concurrent edit)
	// returns apperrors.ErrConflict.
	UpdateEntry(ctx context.Context, prev domain.LedgerEntry, next domain.LedgerEntry, changes accounting.BalanceChanges) error

	// DeleteEntry removes the entry and reverses its balance effect, with
	// the same prev-version guard as UpdateEntry.
	DeleteEntry(ctx context.Context, prev domain.LedgerEntry, changes accounting.BalanceChanges) error
}

// TransferReader defines read operations for transfers.
type TransferReader interface {
	FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error)

	// ListTransfersByAccount retrieves transfers touching the account as
	// either leg, newest transfer date first.
	ListTransfersByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.Transfer, error)
}

// TransferWriter defines the atomic mutation operations for transfers. Both
// legs always move inside the same transaction.
type TransferWriter interface {
	SaveTransfer(ctx context.Context, transfer domain.Transfer, changes accounting.BalanceChanges) error
	UpdateTransfer(ctx context.Context, prev domain.Transfer, next domain.Transfer, changes accounting.BalanceChanges) error
	DeleteTransfer(ctx context.Context, prev domain.Transfer, changes accounting.BalanceChanges) error
}

// LedgerRepositoryFacade combines every ledger mutation and read interface.
type LedgerRepositoryFacade interface {
	EntryReader
	EntryWriter
	TransferReader
	TransferWriter
}
