package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind discriminates expense and income rows in ledger_entries.
type EntryKind string

const (
	Expense EntryKind = "EXPENSE"
	Income  EntryKind = "INCOME"
)

// LedgerEntry represents an expense or income row.
type LedgerEntry struct {
	EntryID     string          `db:"entry_id"`
	EntryKind   EntryKind       `db:"entry_kind"`
	AccountID   string          `db:"account_id"`
	CategoryID  *string         `db:"category_id"` // Nullable
	Amount      decimal.Decimal `db:"amount"`
	EntryDate   time.Time       `db:"entry_date"`
	Description string          `db:"description"`
	AuditFields
}
