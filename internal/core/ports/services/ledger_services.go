package services

import (
	"context"

	"github.com/socioges/treasury_backend/internal/core/domain"
	"github.com/socioges/treasury_backend/internal/dto"
)

// LedgerSvcFacade defines the mutation-coordinator operations for expense,
// income and transfer records. The kind parameter selects expense vs income;
// expenses and incomes share one code path and differ only in sign.
type LedgerSvcFacade interface {
	CreateEntry(ctx context.Context, kind domain.EntryKind, req dto.CreateEntryRequest, creatorUserID string) (*domain.LedgerEntry, error)
	GetEntryByID(ctx context.Context, kind domain.EntryKind, entryID string) (*domain.LedgerEntry, error)
	ListEntriesByAccount(ctx context.Context, kind domain.EntryKind, params dto.ListEntriesParams) ([]domain.LedgerEntry, error)
	UpdateEntry(ctx context.Context, kind domain.EntryKind, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.LedgerEntry, error)
	DeleteEntry(ctx context.Context, kind domain.EntryKind, entryID string, userID string) error

	CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, creatorUserID string) (*domain.Transfer, error)
	GetTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error)
	ListTransfersByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.Transfer, error)
	UpdateTransfer(ctx context.Context, transferID string, req dto.UpdateTransferRequest, userID string) (*domain.Transfer, error)
	DeleteTransfer(ctx context.Context, transferID string, userID string) error
}
