package models

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies where the money physically lives.
type AccountType string

const (
	Cash  AccountType = "CASH"
	Bank  AccountType = "BANK"
	Other AccountType = "OTHER"
)

// Account represents a treasury account row.
type Account struct {
	AccountID      string          `db:"account_id"`
	Name           string          `db:"name"`
	AccountType    AccountType     `db:"account_type"`
	CurrencyCode   string          `db:"currency_code"`
	InitialBalance decimal.Decimal `db:"initial_balance"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	Description    string          `db:"description"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
