package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashReconciliation represents one arqueo row; unique per (account, date).
type CashReconciliation struct {
	ReconciliationID string          `db:"reconciliation_id"`
	AccountID        string          `db:"account_id"`
	Date             time.Time       `db:"reconciliation_date"`
	OpeningBalance   decimal.Decimal `db:"opening_balance"`
	ClosingBalance   decimal.Decimal `db:"closing_balance"`
	ExpectedBalance  decimal.Decimal `db:"expected_balance"`
	Difference       decimal.Decimal `db:"difference"`
	Notes            string          `db:"notes"`
	AuditFields
}
