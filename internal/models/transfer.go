package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer represents an inter-account transfer row.
type Transfer struct {
	TransferID     string          `db:"transfer_id"`
	FromAccountID  string          `db:"from_account_id"`
	ToAccountID    string          `db:"to_account_id"`
	Amount         decimal.Decimal `db:"amount"`
	TransferTypeID *string         `db:"transfer_type_id"` // Nullable
	TransferDate   time.Time       `db:"transfer_date"`
	Description    string          `db:"description"`
	AuditFields
}
