package mapping

import (
	"github.com/socioges/treasury_backend/internal/core/domain"
	"github.com/socioges/treasury_backend/internal/models"
)

// ToModelCategory converts a domain.Category for DB storage.
func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID:  d.CategoryID,
		Name:        d.Name,
		Kind:        models.EntryKind(d.Kind),
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCategory converts a models.Category from the DB.
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Kind:        domain.EntryKind(m.Kind),
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransferType converts a models.TransferType from the DB.
func ToDomainTransferType(m models.TransferType) domain.TransferType {
	return domain.TransferType{
		TransferTypeID: m.TransferTypeID,
		Name:           m.Name,
	}
}
