package mapping

import (
	"github.com/socioges/treasury_backend/internal/core/domain"
	"github.com/socioges/treasury_backend/internal/models"
)

// ToModelTransfer converts a domain.Transfer for DB storage.
func ToModelTransfer(d domain.Transfer) models.Transfer {
	return models.Transfer{
		TransferID:     d.TransferID,
		FromAccountID:  d.FromAccountID,
		ToAccountID:    d.ToAccountID,
		Amount:         d.Amount,
		TransferTypeID: d.TransferTypeID,
		TransferDate:   d.TransferDate,
		Description:    d.Description,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransfer converts a models.Transfer from the DB.
func ToDomainTransfer(m models.Transfer) domain.Transfer {
	return domain.Transfer{
		TransferID:     m.TransferID,
		FromAccountID:  m.FromAccountID,
		ToAccountID:    m.ToAccountID,
		Amount:         m.Amount,
		TransferTypeID: m.TransferTypeID,
		TransferDate:   m.TransferDate,
		Description:    m.Description,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransferSlice converts a slice of transfer models.
func ToDomainTransferSlice(ms []models.Transfer) []domain.Transfer {
	ds := make([]domain.Transfer, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransfer(m)
	}
	return ds
}
