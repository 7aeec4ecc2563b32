package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/socioges/treasury_backend/internal/core/domain"
)

// CreateReconciliationRequest defines the data needed to snapshot a count.
type CreateReconciliationRequest struct {
	AccountID      string          `json:"accountID" binding:"required,uuid"`
	Date           time.Time       `json:"date" binding:"required"`
	ClosingBalance decimal.Decimal `json:"closingBalance"` // Physically counted; may legitimately be zero or negative
	Notes          string          `json:"notes"`
}

// UpdateReconciliationRequest amends the counted balance or notes of an
// existing snapshot. The expected balance is never recalculated.
type UpdateReconciliationRequest struct {
	ClosingBalance *decimal.Decimal `json:"closingBalance"`
	Notes          *string          `json:"notes"`
}

// ExpectedBalanceResponse is the read-only replay of one day of history.
type ExpectedBalanceResponse struct {
	AccountID         string          `json:"accountID"`
	Date              time.Time       `json:"date"`
	OpeningBalance    decimal.Decimal `json:"openingBalance"`
	Incomes           decimal.Decimal `json:"incomes"`
	Expenses          decimal.Decimal `json:"expenses"`
	IncomingTransfers decimal.Decimal `json:"incomingTransfers"`
	OutgoingTransfers decimal.Decimal `json:"outgoingTransfers"`
	ExpectedBalance   decimal.Decimal `json:"expectedBalance"`
}

// ToExpectedBalanceResponse converts the domain calculation result.
func ToExpectedBalanceResponse(eb *domain.ExpectedBalance) ExpectedBalanceResponse {
	return ExpectedBalanceResponse{
		AccountID:         eb.AccountID,
		Date:              eb.Date,
		OpeningBalance:    eb.OpeningBalance,
		Incomes:           eb.Incomes,
		Expenses:          eb.Expenses,
		IncomingTransfers: eb.IncomingTransfers,
		OutgoingTransfers: eb.OutgoingTransfers,
		ExpectedBalance:   eb.Expected,
	}
}

// ReconciliationResponse defines the data returned for a snapshot.
type ReconciliationResponse struct {
	ReconciliationID string          `json:"reconciliationID"`
	AccountID        string          `json:"accountID"`
	Date             time.Time       `json:"date"`
	OpeningBalance   decimal.Decimal `json:"openingBalance"`
	ClosingBalance   decimal.Decimal `json:"closingBalance"`
	ExpectedBalance  decimal.Decimal `json:"expectedBalance"`
	Difference       decimal.Decimal `json:"difference"`
	Notes            string          `json:"notes"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// ToReconciliationResponse converts a domain.CashReconciliation.
func ToReconciliationResponse(r *domain.CashReconciliation) ReconciliationResponse {
	return ReconciliationResponse{
		ReconciliationID: r.ReconciliationID,
		AccountID:        r.AccountID,
		Date:             r.Date,
		OpeningBalance:   r.OpeningBalance,
		ClosingBalance:   r.ClosingBalance,
		ExpectedBalance:  r.ExpectedBalance,
		Difference:       r.Difference,
		Notes:            r.Notes,
		CreatedAt:        r.CreatedAt,
	}
}

// ToReconciliationResponses converts a slice of snapshots.
func ToReconciliationResponses(recs []domain.CashReconciliation) []ReconciliationResponse {
	res := make([]ReconciliationResponse, len(recs))
	for i := range recs {
		res[i] = ToReconciliationResponse(&recs[i])
	}
	return res
}
