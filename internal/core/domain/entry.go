package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind discriminates the two single-account ledger record kinds.
type EntryKind string

const (
	Expense EntryKind = "EXPENSE"
	Income  EntryKind = "INCOME"
)

// LedgerEntry represents an expense or income record affecting exactly one
// account's balance. Amount is always positive; the sign of its effect on
// the account comes from the kind.
type LedgerEntry struct {
	EntryID     string          `json:"entryID"`
	EntryKind   EntryKind       `json:"entryKind"`
	AccountID   string          `json:"accountID"`
	CategoryID  *string         `json:"categoryID"` // Optional
	Amount      decimal.Decimal `json:"amount"`     // Positive value
	EntryDate   time.Time       `json:"entryDate"`  // Calendar date of the fact, not the write
	Description string          `json:"description"`
	AuditFields
}

// Effect returns the signed amount by which this entry moves its account's
// current balance: income credits (+), expense debits (-).
func (e LedgerEntry) Effect() decimal.Decimal {
	if e.EntryKind == Expense {
		return e.Amount.Neg()
	}
	return e.Amount
}
