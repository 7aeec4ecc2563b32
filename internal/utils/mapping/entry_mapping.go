package mapping

import (
	"github.com/socioges/treasury_backend/internal/core/domain"
	"github.com/socioges/treasury_backend/internal/models"
)

// ToModelLedgerEntry converts a domain.LedgerEntry for DB storage.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:     d.EntryID,
		EntryKind:   models.EntryKind(d.EntryKind),
		AccountID:   d.AccountID,
		CategoryID:  d.CategoryID,
		Amount:      d.Amount,
		EntryDate:   d.EntryDate,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a models.LedgerEntry from the DB.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:     m.EntryID,
		EntryKind:   domain.EntryKind(m.EntryKind),
		AccountID:   m.AccountID,
		CategoryID:  m.CategoryID,
		Amount:      m.Amount,
		EntryDate:   m.EntryDate,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts a slice of entry models.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
