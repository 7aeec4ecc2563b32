package mapping

import (
	"github.com/socioges/treasury_backend/internal/core/domain"
	"github.com/socioges/treasury_backend/internal/models"
)

// ToModelReconciliation converts a domain.CashReconciliation for DB storage.
func ToModelReconciliation(d domain.CashReconciliation) models.CashReconciliation {
	return models.CashReconciliation{
		ReconciliationID: d.ReconciliationID,
		AccountID:        d.AccountID,
		Date:             d.Date,
		OpeningBalance:   d.OpeningBalance,
		ClosingBalance:   d.ClosingBalance,
		ExpectedBalance:  d.ExpectedBalance,
		Difference:       d.Difference,
		Notes:            d.Notes,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReconciliation converts a models.CashReconciliation from the DB.
func ToDomainReconciliation(m models.CashReconciliation) domain.CashReconciliation {
	return domain.CashReconciliation{
		ReconciliationID: m.ReconciliationID,
		AccountID:        m.AccountID,
		Date:             m.Date,
		OpeningBalance:   m.OpeningBalance,
		ClosingBalance:   m.ClosingBalance,
		ExpectedBalance:  m.ExpectedBalance,
		Difference:       m.Difference,
		Notes:            m.Notes,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainReconciliationSlice converts a slice of reconciliation models.
func ToDomainReconciliationSlice(ms []models.CashReconciliation) []domain.CashReconciliation {
	ds := make([]domain.CashReconciliation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainReconciliation(m)
	}
	return ds
}
