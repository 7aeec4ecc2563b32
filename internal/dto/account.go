package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/socioges/treasury_backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=CASH BANK OTHER"`
	CurrencyCode   string             `json:"currencyCode" binding:"required,len=3"`
	InitialBalance decimal.Decimal    `json:"initialBalance"`
	Description    string             `json:"description"` // Optional
}

// UpdateAccountRequest defines the fields allowed for updating an account.
// Pointers distinguish zero-value updates from fields not provided.
// Initial balance and currency are immutable after creation.
type UpdateAccountRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// AdjustBalanceRequest defines the manual balance override input.
type AdjustBalanceRequest struct {
	NewBalance decimal.Decimal `json:"newBalance" binding:"required"`
	Notes      string          `json:"notes"`
}

// AdjustBalanceResponse reports a manual balance override.
type AdjustBalanceResponse struct {
	AccountID  string          `json:"accountID"`
	OldBalance decimal.Decimal `json:"oldBalance"`
	NewBalance decimal.Decimal `json:"newBalance"`
	Difference decimal.Decimal `json:"difference"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string             `json:"accountID"`
	Name           string             `json:"name"`
	AccountType    domain.AccountType `json:"accountType"`
	CurrencyCode   string             `json:"currencyCode"`
	InitialBalance decimal.Decimal    `json:"initialBalance"`
	CurrentBalance decimal.Decimal    `json:"currentBalance"`
	Description    string             `json:"description"`
	IsActive       bool               `json:"isActive"`
	CreatedAt      time.Time          `json:"createdAt"`
	LastUpdatedAt  time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		Name:           acc.Name,
		AccountType:    acc.AccountType,
		CurrencyCode:   acc.CurrencyCode,
		InitialBalance: acc.InitialBalance,
		CurrentBalance: acc.CurrentBalance,
		Description:    acc.Description,
		IsActive:       acc.IsActive,
		CreatedAt:      acc.CreatedAt,
		LastUpdatedAt:  acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of accounts to response DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}
