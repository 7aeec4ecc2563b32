package domain

// Category labels an expense or income entry. Referenced optionally.
type Category struct {
	CategoryID string    `json:"categoryID"`
	Name       string    `json:"name"`
	Kind       EntryKind `json:"kind"` // Which entry kind this category applies to
	IsActive   bool      `json:"isActive"`
	AuditFields
}

// TransferType tags a transfer (e.g. bank deposit, cash withdrawal).
type TransferType struct {
	TransferTypeID string `json:"transferTypeID"`
	Name           string `json:"name"`
}
