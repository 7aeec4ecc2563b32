package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/socioges/treasury_backend/internal/apperrors"
	"github.com/socioges/treasury_backend/internal/core/domain"
	portsrepo "github.com/socioges/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/socioges/treasury_backend/internal/core/ports/services"
	"github.com/socioges/treasury_backend/internal/dto"
	"github.com/socioges/treasury_backend/internal/middleware"
	"github.com/socioges/treasury_backend/internal/utils/accounting"
)

var (
	ErrInvalidAmount    = errors.New("amount must be strictly positive")
	ErrSameAccount      = errors.New("transfer source and destination accounts must differ")
	ErrAccountNotFound  = errors.New("account not found")
	ErrAccountInactive  = errors.New("account is inactive")
	ErrCategoryMismatch = errors.New("category does not apply to this entry kind")
)

// ledgerService coordinates every expense, income and transfer mutation. It
// validates input, computes the merged balance deltas for the touched
// accounts and hands record plus deltas to the repository, which applies both
// inside a single locked transaction.
type ledgerService struct {
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:   ledgerRepo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, amount.String())
	}
	return nil
}

// resolveAccount fetches the account and confirms it can take new records.
func (s *ledgerService) resolveAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrAccountInactive, accountID)
	}
	return account, nil
}

// validateCategory checks the optional category reference against the entry
// kind. An expense cannot carry an income category or vice versa.
func (s *ledgerService) validateCategory(ctx context.Context, kind domain.EntryKind, categoryID *string) error {
	if categoryID == nil {
		return nil
	}
	category, err := s.categoryRepo.FindCategoryByID(ctx, *categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: category %s not found", apperrors.ErrValidation, *categoryID)
		}
		return fmt.Errorf("failed to fetch category %s: %w", *categoryID, err)
	}
	if category.Kind != kind {
		return fmt.Errorf("%w: category %s is for %s", ErrCategoryMismatch, *categoryID, category.Kind)
	}
	return nil
}

func (s *ledgerService) CreateEntry(ctx context.Context, kind domain.EntryKind, req dto.CreateEntryRequest, creatorUserID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}
	if _, err := s.resolveAccount(ctx, req.AccountID); err != nil {
		return nil, err
	}
	if err := s.validateCategory(ctx, kind, req.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now()
	entry := domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		EntryKind:   kind,
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		EntryDate:   req.Date,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	changes := accounting.NewBalanceChanges()
	changes.ApplyEntry(entry, false)

	if err := s.ledgerRepo.SaveEntry(ctx, entry, changes); err != nil {
		logger.Error("Failed to save entry", slog.String("entryKind", string(kind)), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	logger.Info("Entry created",
		slog.String("entryID", entry.EntryID),
		slog.String("entryKind", string(kind)),
		slog.String("accountID", entry.AccountID),
		slog.String("amount", entry.Amount.String()),
	)
	return &entry, nil
}

func (s *ledgerService) GetEntryByID(ctx context.Context, kind domain.EntryKind, entryID string) (*domain.LedgerEntry, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, kind, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch entry %s: %w", entryID, err)
	}
	return entry, nil
}

func (s *ledgerService) ListEntriesByAccount(ctx context.Context, kind domain.EntryKind, params dto.ListEntriesParams) ([]domain.LedgerEntry, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, params.AccountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, params.AccountID)
		}
		return nil, fmt.Errorf("failed to fetch account %s: %w", params.AccountID, err)
	}
	entries, err := s.ledgerRepo.ListEntriesByAccount(ctx, kind, params.AccountID, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// UpdateEntry edits an expense or income in place. The old version's effect
// is reversed and the new version's applied in one merged delta map, so when
// both versions reference the same account only the net difference moves.
func (s *ledgerService) UpdateEntry(ctx context.Context, kind domain.EntryKind, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	prev, err := s.ledgerRepo.FindEntryByID(ctx, kind, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch entry %s: %w", entryID, err)
	}

	next := *prev
	if req.Amount != nil {
		next.Amount = *req.Amount
	}
	if req.AccountID != nil {
		next.AccountID = *req.AccountID
	}
	if req.CategoryID != nil {
		next.CategoryID = req.CategoryID
	}
	if req.Date != nil {
		next.EntryDate = *req.Date
	}
	if req.Description != nil {
		next.Description = *req.Description
	}

	if err := validateAmount(next.Amount); err != nil {
		return nil, err
	}
	if _, err := s.resolveAccount(ctx, next.AccountID); err != nil {
		return nil, err
	}
	if req.CategoryID != nil {
		if err := s.validateCategory(ctx, kind, next.CategoryID); err != nil {
			return nil, err
		}
	}

	next.LastUpdatedAt = time.Now()
	next.LastUpdatedBy = userID

	changes := accounting.NewBalanceChanges()
	changes.ApplyEntry(*prev, true)
	changes.ApplyEntry(next, false)

	if err := s.ledgerRepo.UpdateEntry(ctx, *prev, next, changes); err != nil {
		logger.Error("Failed to update entry", slog.String("entryID", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	logger.Info("Entry updated", slog.String("entryID", entryID), slog.String("entryKind", string(kind)))
	return &next, nil
}

// DeleteEntry removes an expense or income and reverses its balance effect.
func (s *ledgerService) DeleteEntry(ctx context.Context, kind domain.EntryKind, entryID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	prev, err := s.ledgerRepo.FindEntryByID(ctx, kind, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to fetch entry %s: %w", entryID, err)
	}

	changes := accounting.NewBalanceChanges()
	changes.ApplyEntry(*prev, true)

	if err := s.ledgerRepo.DeleteEntry(ctx, *prev, changes); err != nil {
		logger.Error("Failed to delete entry", slog.String("entryID", entryID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	logger.Info("Entry deleted", slog.String("entryID", entryID), slog.String("entryKind", string(kind)), slog.String("deletedBy", userID))
	return nil
}

// resolveTransferAccounts validates both legs in one read.
func (s *ledgerService) resolveTransferAccounts(ctx context.Context, fromAccountID, toAccountID string) error {
	if fromAccountID == toAccountID {
		return fmt.Errorf("%w: %s", ErrSameAccount, fromAccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, []string{fromAccountID, toAccountID})
	if err != nil {
		return fmt.Errorf("failed to fetch transfer accounts: %w", err)
	}
	for _, id := range []string{fromAccountID, toAccountID} {
		account, found := accounts[id]
		if !found {
			return fmt.Errorf("%w: %s", ErrAccountNotFound, id)
		}
		if !account.IsActive {
			return fmt.Errorf("%w: %s", ErrAccountInactive, id)
		}
	}
	return nil
}

func (s *ledgerService) validateTransferType(ctx context.Context, transferTypeID *string) error {
	if transferTypeID == nil {
		return nil
	}
	if _, err := s.categoryRepo.FindTransferTypeByID(ctx, *transferTypeID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: transfer type %s not found", apperrors.ErrValidation, *transferTypeID)
		}
		return fmt.Errorf("failed to fetch transfer type %s: %w", *transferTypeID, err)
	}
	return nil
}

func (s *ledgerService) CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, creatorUserID string) (*domain.Transfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}
	if err := s.resolveTransferAccounts(ctx, req.FromAccountID, req.ToAccountID); err != nil {
		return nil, err
	}
	if err := s.validateTransferType(ctx, req.TransferTypeID); err != nil {
		return nil, err
	}

	now := time.Now()
	transfer := domain.Transfer{
		TransferID:     uuid.NewString(),
		FromAccountID:  req.FromAccountID,
		ToAccountID:    req.ToAccountID,
		Amount:         req.Amount,
		TransferTypeID: req.TransferTypeID,
		TransferDate:   req.Date,
		Description:    req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	changes := accounting.NewBalanceChanges()
	changes.ApplyTransfer(transfer, false)

	if err := s.ledgerRepo.SaveTransfer(ctx, transfer, changes); err != nil {
		logger.Error("Failed to save transfer", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save transfer: %w", err)
	}

	logger.Info("Transfer created",
		slog.String("transferID", transfer.TransferID),
		slog.String("fromAccountID", transfer.FromAccountID),
		slog.String("toAccountID", transfer.ToAccountID),
		slog.String("amount", transfer.Amount.String()),
	)
	return &transfer, nil
}

func (s *ledgerService) GetTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	transfer, err := s.ledgerRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch transfer %s: %w", transferID, err)
	}
	return transfer, nil
}

func (s *ledgerService) ListTransfersByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.Transfer, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}
	transfers, err := s.ledgerRepo.ListTransfersByAccount(ctx, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	return transfers, nil
}

// UpdateTransfer follows the same reverse-then-apply shape as UpdateEntry; up
// to four accounts can net into the merged delta map when both legs move.
func (s *ledgerService) UpdateTransfer(ctx context.Context, transferID string, req dto.UpdateTransferRequest, userID string) (*domain.Transfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	prev, err := s.ledgerRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch transfer %s: %w", transferID, err)
	}

	next := *prev
	if req.Amount != nil {
		next.Amount = *req.Amount
	}
	if req.FromAccountID != nil {
		next.FromAccountID = *req.FromAccountID
	}
	if req.ToAccountID != nil {
		next.ToAccountID = *req.ToAccountID
	}
	if req.TransferTypeID != nil {
		next.TransferTypeID = req.TransferTypeID
	}
	if req.Date != nil {
		next.TransferDate = *req.Date
	}
	if req.Description != nil {
		next.Description = *req.Description
	}

	if err := validateAmount(next.Amount); err != nil {
		return nil, err
	}
	if err := s.resolveTransferAccounts(ctx, next.FromAccountID, next.ToAccountID); err != nil {
		return nil, err
	}
	if req.TransferTypeID != nil {
		if err := s.validateTransferType(ctx, next.TransferTypeID); err != nil {
			return nil, err
		}
	}

	next.LastUpdatedAt = time.Now()
	next.LastUpdatedBy = userID

	changes := accounting.NewBalanceChanges()
	changes.ApplyTransfer(*prev, true)
	changes.ApplyTransfer(next, false)

	if err := s.ledgerRepo.UpdateTransfer(ctx, *prev, next, changes); err != nil {
		logger.Error("Failed to update transfer", slog.String("transferID", transferID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update transfer: %w", err)
	}

	logger.Info("Transfer updated", slog.String("transferID", transferID))
	return &next, nil
}

// DeleteTransfer removes a transfer and restores both balances.
func (s *ledgerService) DeleteTransfer(ctx context.Context, transferID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	prev, err := s.ledgerRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to fetch transfer %s: %w", transferID, err)
	}

	changes := accounting.NewBalanceChanges()
	changes.ApplyTransfer(*prev, true)

	if err := s.ledgerRepo.DeleteTransfer(ctx, *prev, changes); err != nil {
		logger.Error("Failed to delete transfer", slog.String("transferID", transferID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete transfer: %w", err)
	}

	logger.Info("Transfer deleted", slog.String("transferID", transferID), slog.String("deletedBy", userID))
	return nil
}
