package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/socioges/treasury_backend/internal/apperrors"
	"github.com/socioges/treasury_backend/internal/core/domain"
	portsrepo "github.com/socioges/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/socioges/treasury_backend/internal/core/ports/services"
	"github.com/socioges/treasury_backend/internal/dto"
	"github.com/socioges/treasury_backend/internal/middleware"
)

var ErrAccountHasHistory = errors.New("account has ledger history and cannot be deleted")

// accountService provides account lifecycle operations.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		Name:           req.Name,
		AccountType:    req.AccountType,
		CurrencyCode:   strings.ToUpper(req.CurrencyCode),
		InitialBalance: req.InitialBalance,
		// A new account has no history, so current equals initial.
		CurrentBalance: req.InitialBalance,
		Description:    req.Description,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("accountID", account.AccountID), slog.String("name", account.Name))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("accountID", accountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	logger.Info("Account updated", slog.String("accountID", accountID))
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		if errors.Is(err, apperrors.ErrConstraint) {
			return fmt.Errorf("%w: %s", ErrAccountHasHistory, accountID)
		}
		logger.Error("Failed to delete account", slog.String("accountID", accountID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete account: %w", err)
	}

	logger.Info("Account deleted", slog.String("accountID", accountID), slog.String("deletedBy", userID))
	return nil
}

// AdjustAccountBalance overrides current_balance with an explicit value,
// bypassing the ledger-derived computation. Deliberately loud in the logs:
// after this the ledger no longer explains the stored balance.
func (s *accountService) AdjustAccountBalance(ctx context.Context, accountID string, req dto.AdjustBalanceRequest, userID string) (*dto.AdjustBalanceResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}

	oldBalance, err := s.accountRepo.OverrideAccountBalance(ctx, accountID, req.NewBalance, userID, time.Now())
	if err != nil {
		logger.Error("Failed to override account balance", slog.String("accountID", accountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to override account balance: %w", err)
	}

	logger.Warn("Account balance manually adjusted",
		slog.String("accountID", accountID),
		slog.String("oldBalance", oldBalance.String()),
		slog.String("newBalance", req.NewBalance.String()),
		slog.String("adjustedBy", userID),
		slog.String("notes", req.Notes),
	)

	return &dto.AdjustBalanceResponse{
		AccountID:  accountID,
		OldBalance: oldBalance,
		NewBalance: req.NewBalance,
		Difference: req.NewBalance.Sub(oldBalance),
	}, nil
}
