package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer represents a paired debit/credit across two distinct accounts for
// the same amount. Both legs are always applied within one database
// transaction; a half-applied transfer must be impossible.
type Transfer struct {
	TransferID     string          `json:"transferID"`
	FromAccountID  string          `json:"fromAccountID"`
	ToAccountID    string          `json:"toAccountID"`
	Amount         decimal.Decimal `json:"amount"`         // Positive value
	TransferTypeID *string         `json:"transferTypeID"` // Optional tag
	TransferDate   time.Time       `json:"transferDate"`
	Description    string          `json:"description"`
	AuditFields
}

// EffectOn returns the signed amount by which this transfer moves the given
// account: -amount for the source leg, +amount for the destination leg and
// zero for unrelated accounts.
func (t Transfer) EffectOn(accountID string) decimal.Decimal {
	switch accountID {
	case t.FromAccountID:
		return t.Amount.Neg()
	case t.ToAccountID:
		return t.Amount
	}
	return decimal.Zero
}
