package dto

import (
	"github.com/socioges/treasury_backend/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a category.
type CreateCategoryRequest struct {
	Name string           `json:"name" binding:"required"`
	Kind domain.EntryKind `json:"kind" binding:"required,oneof=EXPENSE INCOME"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string           `json:"categoryID"`
	Name       string           `json:"name"`
	Kind       domain.EntryKind `json:"kind"`
	IsActive   bool             `json:"isActive"`
}

// ToCategoryResponse converts a domain.Category.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		Kind:       c.Kind,
		IsActive:   c.IsActive,
	}
}

// ToCategoryResponses converts a slice of categories.
func ToCategoryResponses(cats []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(cats))
	for i := range cats {
		res[i] = ToCategoryResponse(&cats[i])
	}
	return res
}

// TransferTypeResponse defines the data returned for a transfer type tag.
type TransferTypeResponse struct {
	TransferTypeID string `json:"transferTypeID"`
	Name           string `json:"name"`
}

// ToTransferTypeResponses converts a slice of transfer types.
func ToTransferTypeResponses(tts []domain.TransferType) []TransferTypeResponse {
	res := make([]TransferTypeResponse, len(tts))
	for i, tt := range tts {
		res[i] = TransferTypeResponse{TransferTypeID: tt.TransferTypeID, Name: tt.Name}
	}
	return res
}
