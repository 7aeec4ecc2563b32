package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/socioges/treasury_backend/internal/core/domain"
)

// CreateTransferRequest defines the data needed to move money between accounts.
type CreateTransferRequest struct {
	Amount         decimal.Decimal `json:"amount" binding:"required,positiveamount"`
	FromAccountID  string          `json:"fromAccountID" binding:"required,uuid"`
	ToAccountID    string          `json:"toAccountID" binding:"required,uuid"`
	TransferTypeID *string         `json:"transferTypeID" binding:"omitempty,uuid"`
	Date           time.Time       `json:"date" binding:"required"`
	Description    string          `json:"description"`
}

// UpdateTransferRequest defines the fields allowed when editing a transfer.
type UpdateTransferRequest struct {
	Amount         *decimal.Decimal `json:"amount" binding:"omitempty,positiveamount"`
	FromAccountID  *string          `json:"fromAccountID" binding:"omitempty,uuid"`
	ToAccountID    *string          `json:"toAccountID" binding:"omitempty,uuid"`
	TransferTypeID *string          `json:"transferTypeID" binding:"omitempty,uuid"`
	Date           *time.Time       `json:"date"`
	Description    *string          `json:"description"`
}

// TransferResponse defines the data returned for a transfer.
type TransferResponse struct {
	TransferID     string          `json:"transferID"`
	FromAccountID  string          `json:"fromAccountID"`
	ToAccountID    string          `json:"toAccountID"`
	Amount         decimal.Decimal `json:"amount"`
	TransferTypeID *string         `json:"transferTypeID,omitempty"`
	Date           time.Time       `json:"date"`
	Description    string          `json:"description"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToTransferResponse converts a domain.Transfer to its response DTO.
func ToTransferResponse(t *domain.Transfer) TransferResponse {
	return TransferResponse{
		TransferID:     t.TransferID,
		FromAccountID:  t.FromAccountID,
		ToAccountID:    t.ToAccountID,
		Amount:         t.Amount,
		TransferTypeID: t.TransferTypeID,
		Date:           t.TransferDate,
		Description:    t.Description,
		CreatedAt:      t.CreatedAt,
	}
}

// ToTransferResponses converts a slice of transfers to response DTOs.
func ToTransferResponses(transfers []domain.Transfer) []TransferResponse {
	res := make([]TransferResponse, len(transfers))
	for i := range transfers {
		res[i] = ToTransferResponse(&transfers[i])
	}
	return res
}
