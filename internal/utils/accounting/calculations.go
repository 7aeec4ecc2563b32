package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/socioges/treasury_backend/internal/core/domain"
)

// BalanceChanges accumulates the signed deltas an operation applies to each
// touched account. The same map shape is used by create, update and delete so
// there is a single arithmetic path regardless of whether the old and new
// versions of a record reference the same account.
type BalanceChanges map[string]decimal.Decimal

// NewBalanceChanges returns an empty delta map.
func NewBalanceChanges() BalanceChanges {
	return make(BalanceChanges)
}

// Add accumulates a signed delta for an account.
func (bc BalanceChanges) Add(accountID string, delta decimal.Decimal) {
	bc[accountID] = bc[accountID].Add(delta)
}

// ApplyEntry adds the entry's effect to the map. Pass reverse=true to undo a
// previously applied entry (the update path reverses the old version before
// applying the new one).
func (bc BalanceChanges) ApplyEntry(e domain.LedgerEntry, reverse bool) {
	effect := e.Effect()
	if reverse {
		effect = effect.Neg()
	}
	bc.Add(e.AccountID, effect)
}

// ApplyTransfer adds both legs of the transfer to the map.
func (bc BalanceChanges) ApplyTransfer(t domain.Transfer, reverse bool) {
	out := t.Amount.Neg()
	in := t.Amount
	if reverse {
		out, in = in, out
	}
	bc.Add(t.FromAccountID, out)
	bc.Add(t.ToAccountID, in)
}

// AccountIDs returns the accounts with a recorded delta, including zero nets.
// Zero nets still matter: the accounts must exist and be lockable.
func (bc BalanceChanges) AccountIDs() []string {
	ids := make([]string, 0, len(bc))
	for id := range bc {
		ids = append(ids, id)
	}
	return ids
}
