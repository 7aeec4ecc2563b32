package domain

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

// Account represents a treasury account within the core domain.
// CurrentBalance is the persisted running total; outside an in-flight
// mutation it always equals InitialBalance plus the signed sum of every
// existing income, expense and transfer leg that references the account.
type Account struct {
	AccountID      string          `json:"accountID"`
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"accountType"`
	CurrencyCode   string          `json:"currencyCode"`
	InitialBalance decimal.Decimal `json:"initialBalance"` // Immutable after creation
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	Description    string          `json:"description"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}
