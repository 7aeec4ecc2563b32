package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/socioges/treasury_backend/internal/core/domain"
)

// CreateEntryRequest defines the data needed to record an expense or income.
// The kind comes from the route, not the payload.
type CreateEntryRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,positiveamount"`
	AccountID   string          `json:"accountID" binding:"required,uuid"`
	CategoryID  *string         `json:"categoryID" binding:"omitempty,uuid"`
	Date        time.Time       `json:"date" binding:"required"`
	Description string          `json:"description"`
}

// UpdateEntryRequest defines the fields allowed when editing an entry.
// Any subset of amount/account/category/date/description may change.
type UpdateEntryRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"omitempty,positiveamount"`
	AccountID   *string          `json:"accountID" binding:"omitempty,uuid"`
	CategoryID  *string          `json:"categoryID" binding:"omitempty,uuid"`
	Date        *time.Time       `json:"date"`
	Description *string          `json:"description"`
}

// EntryResponse defines the data returned for an expense or income record.
type EntryResponse struct {
	EntryID     string           `json:"entryID"`
	EntryKind   domain.EntryKind `json:"entryKind"`
	AccountID   string           `json:"accountID"`
	CategoryID  *string          `json:"categoryID,omitempty"`
	Amount      decimal.Decimal  `json:"amount"`
	Date        time.Time        `json:"date"`
	Description string           `json:"description"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// ToEntryResponse converts a domain.LedgerEntry to its response DTO.
func ToEntryResponse(e *domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		EntryID:     e.EntryID,
		EntryKind:   e.EntryKind,
		AccountID:   e.AccountID,
		CategoryID:  e.CategoryID,
		Amount:      e.Amount,
		Date:        e.EntryDate,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

// ToEntryResponses converts a slice of entries to response DTOs.
func ToEntryResponses(entries []domain.LedgerEntry) []EntryResponse {
	res := make([]EntryResponse, len(entries))
	for i := range entries {
		res[i] = ToEntryResponse(&entries[i])
	}
	return res
}

// ListEntriesParams defines query parameters for listing entries.
type ListEntriesParams struct {
	AccountID string `form:"accountID" binding:"required,uuid"`
	Limit     int    `form:"limit,default=20"`
	Offset    int    `form:"offset,default=0"`
}
