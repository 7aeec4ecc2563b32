package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashReconciliation is a point-in-time comparison of a physically counted
// closing balance against a balance derived purely from recorded history.
// One row exists per (account, date); the snapshot is historical and the
// expected/opening figures are never recalculated after creation.
type CashReconciliation struct {
	ReconciliationID string          `json:"reconciliationID"`
	AccountID        string          `json:"accountID"`
	Date             time.Time       `json:"date"`
	OpeningBalance   decimal.Decimal `json:"openingBalance"`
	ClosingBalance   decimal.Decimal `json:"closingBalance"`  // Physically counted
	ExpectedBalance  decimal.Decimal `json:"expectedBalance"` // Calculated at creation
	Difference       decimal.Decimal `json:"difference"`      // closing - expected
	Notes            string          `json:"notes"`
	AuditFields
}

// ExpectedBalance is the result of replaying one day of ledger history on
// top of an opening balance, independent of the stored current balance.
type ExpectedBalance struct {
	AccountID         string          `json:"accountID"`
	Date              time.Time       `json:"date"`
	OpeningBalance    decimal.Decimal `json:"openingBalance"`
	Incomes           decimal.Decimal `json:"incomes"`
	Expenses          decimal.Decimal `json:"expenses"`
	IncomingTransfers decimal.Decimal `json:"incomingTransfers"`
	OutgoingTransfers decimal.Decimal `json:"outgoingTransfers"`
	Expected          decimal.Decimal `json:"expectedBalance"`
}
