package models

// Category represents an expense/income category row.
type Category struct {
	CategoryID string    `db:"category_id"`
	Name       string    `db:"name"`
	Kind       EntryKind `db:"kind"`
	IsActive   bool      `db:"is_active"`
	AuditFields
}

// TransferType represents a transfer tag row (seeded by migration).
type TransferType struct {
	TransferTypeID string `db:"transfer_type_id"`
	Name           string `db:"name"`
}
