package services

import (
	"context"

	"github.com/socioges/treasury_backend/internal/core/domain"
	"github.com/socioges/treasury_backend/internal/dto"
)

// AccountSvcFacade defines the account operations exposed to the HTTP layer.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeleteAccount removes an account with no ledger history; with history
	// it fails and the account must be deactivated instead.
	DeleteAccount(ctx context.Context, accountID string, userID string) error

	// AdjustAccountBalance is the administrative escape hatch: it overrides
	// current_balance with an explicit value, bypassing the ledger-derived
	// computation, and logs before/after values.
	AdjustAccountBalance(ctx context.Context, accountID string, req dto.AdjustBalanceRequest, userID string) (*dto.AdjustBalanceResponse, error)
}
