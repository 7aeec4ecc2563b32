package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/socioges/treasury_backend/internal/apperrors"
	"github.com/socioges/treasury_backend/internal/core/domain"
	portsrepo "github.com/socioges/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/socioges/treasury_backend/internal/core/ports/services"
	"github.com/socioges/treasury_backend/internal/dto"
	"github.com/socioges/treasury_backend/internal/middleware"
)

var ErrDuplicateReconciliation = errors.New("a reconciliation already exists for this account and date")

// reconciliationService derives expected balances from recorded history and
// persists cash count snapshots. All reads are plain pool reads; the only
// write is the snapshot insert, which never touches account balances.
type reconciliationService struct {
	reconciliationRepo portsrepo.ReconciliationRepositoryFacade
	accountRepo        portsrepo.AccountRepositoryFacade
}

// NewReconciliationService creates a new ReconciliationService.
func NewReconciliationService(reconciliationRepo portsrepo.ReconciliationRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		reconciliationRepo: reconciliationRepo,
		accountRepo:        accountRepo,
	}
}

// Ensure reconciliationService implements the portssvc.ReconciliationSvcFacade interface
var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// CalculateExpectedBalance replays one day of ledger history on top of an
// opening balance. The opening balance is the closing balance of the most
// recent prior reconciliation, or the account's initial balance when the
// account has never been reconciled. The stored current balance is never
// consulted: that independence is what makes the comparison meaningful.
func (s *reconciliationService) CalculateExpectedBalance(ctx context.Context, accountID string, date time.Time) (*domain.ExpectedBalance, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}

	opening := account.InitialBalance
	latest, err := s.reconciliationRepo.FindLatestReconciliationBefore(ctx, accountID, date)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to fetch latest reconciliation: %w", err)
	}
	if latest != nil {
		opening = latest.ClosingBalance
	}

	incomes, expenses, err := s.reconciliationRepo.SumEntriesForDate(ctx, accountID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to sum entries: %w", err)
	}
	incoming, outgoing, err := s.reconciliationRepo.SumTransfersForDate(ctx, accountID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to sum transfers: %w", err)
	}

	expected := opening.Add(incomes).Sub(expenses).Add(incoming).Sub(outgoing)

	return &domain.ExpectedBalance{
		AccountID:         accountID,
		Date:              date,
		OpeningBalance:    opening,
		Incomes:           incomes,
		Expenses:          expenses,
		IncomingTransfers: incoming,
		OutgoingTransfers: outgoing,
		Expected:          expected,
	}, nil
}

// CreateReconciliation freezes the expected balance calculation for the day
// next to the physically counted closing balance. At most one snapshot per
// account per date.
func (s *reconciliationService) CreateReconciliation(ctx context.Context, req dto.CreateReconciliationRequest, creatorUserID string) (*domain.CashReconciliation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expected, err := s.CalculateExpectedBalance(ctx, req.AccountID, req.Date)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rec := domain.CashReconciliation{
		ReconciliationID: uuid.NewString(),
		AccountID:        req.AccountID,
		Date:             req.Date,
		OpeningBalance:   expected.OpeningBalance,
		ClosingBalance:   req.ClosingBalance,
		ExpectedBalance:  expected.Expected,
		Difference:       req.ClosingBalance.Sub(expected.Expected),
		Notes:            req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.reconciliationRepo.SaveReconciliation(ctx, rec); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account %s, date %s", ErrDuplicateReconciliation, req.AccountID, req.Date.Format("2006-01-02"))
		}
		logger.Error("Failed to save reconciliation", slog.String("accountID", req.AccountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save reconciliation: %w", err)
	}

	if !rec.Difference.IsZero() {
		logger.Warn("Reconciliation recorded with discrepancy",
			slog.String("reconciliationID", rec.ReconciliationID),
			slog.String("accountID", rec.AccountID),
			slog.String("difference", rec.Difference.String()),
		)
	} else {
		logger.Info("Reconciliation recorded", slog.String("reconciliationID", rec.ReconciliationID), slog.String("accountID", rec.AccountID))
	}
	return &rec, nil
}

func (s *reconciliationService) GetReconciliationByID(ctx context.Context, reconciliationID string) (*domain.CashReconciliation, error) {
	rec, err := s.reconciliationRepo.FindReconciliationByID(ctx, reconciliationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch reconciliation %s: %w", reconciliationID, err)
	}
	return rec, nil
}

func (s *reconciliationService) ListReconciliationsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.CashReconciliation, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}
	recs, err := s.reconciliationRepo.ListReconciliationsByAccount(ctx, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reconciliations: %w", err)
	}
	return recs, nil
}

// UpdateReconciliation amends the counted closing balance and/or notes. The
// stored expected balance is a historical fact and is never recalculated;
// only the difference moves with the corrected count.
func (s *reconciliationService) UpdateReconciliation(ctx context.Context, reconciliationID string, req dto.UpdateReconciliationRequest, userID string) (*domain.CashReconciliation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rec, err := s.reconciliationRepo.FindReconciliationByID(ctx, reconciliationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch reconciliation %s: %w", reconciliationID, err)
	}

	if req.ClosingBalance != nil {
		rec.ClosingBalance = *req.ClosingBalance
		rec.Difference = rec.ClosingBalance.Sub(rec.ExpectedBalance)
	}
	if req.Notes != nil {
		rec.Notes = *req.Notes
	}
	rec.LastUpdatedAt = time.Now()
	rec.LastUpdatedBy = userID

	if err := s.reconciliationRepo.UpdateReconciliation(ctx, *rec); err != nil {
		logger.Error("Failed to update reconciliation", slog.String("reconciliationID", reconciliationID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update reconciliation: %w", err)
	}

	logger.Info("Reconciliation updated", slog.String("reconciliationID", reconciliationID))
	return rec, nil
}
